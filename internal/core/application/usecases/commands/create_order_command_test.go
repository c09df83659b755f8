package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustAddress(t *testing.T) order.StreetAddress {
	t.Helper()
	address, err := order.NewStreetAddress("1 Main St", "10001", "New York")
	require.NoError(t, err)
	return address
}

func mustItem(t *testing.T, productID restaurant.ProductID, quantity int, price, subTotal string) commands.CreateOrderItem {
	t.Helper()
	item, err := commands.NewCreateOrderItem(productID, quantity, mustMoney(t, price), mustMoney(t, subTotal))
	require.NoError(t, err)
	return item
}

func TestNewCreateOrderItem(t *testing.T) {
	t.Run("should create item", func(t *testing.T) {
		productID := restaurant.NewProductID()

		item, err := commands.NewCreateOrderItem(productID, 2, mustMoney(t, "12.50"), mustMoney(t, "25.00"))

		require.NoError(t, err)
		assert.Equal(t, productID, item.ProductID())
		assert.Equal(t, 2, item.Quantity())
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderItem(
			restaurant.NewProductID(), 0, mustMoney(t, "12.50"), mustMoney(t, "0.00"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with unconstructed product id", func(t *testing.T) {
		_, err := commands.NewCreateOrderItem(
			restaurant.ProductID{}, 1, mustMoney(t, "12.50"), mustMoney(t, "12.50"))

		require.Error(t, err)
	})
}

func TestNewCreateOrderCommand(t *testing.T) {
	productID := restaurant.NewProductID()

	t.Run("should create command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), mustAddress(t), mustMoney(t, "25.00"),
			[]commands.CreateOrderItem{mustItem(t, productID, 2, "12.50", "25.00")})

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Len(t, cmd.Items(), 1)
	})

	t.Run("should fail without items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), mustAddress(t), mustMoney(t, "25.00"), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.UUID{}, kernel.UUID{}, order.StreetAddress{}, kernel.Money{}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		cmd := commands.CreateOrderCommand{}

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})

	t.Run("product ids are distinct and in first-seen order", func(t *testing.T) {
		otherID := restaurant.NewProductID()
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), mustAddress(t), mustMoney(t, "50.00"),
			[]commands.CreateOrderItem{
				mustItem(t, productID, 1, "12.50", "12.50"),
				mustItem(t, otherID, 1, "12.50", "12.50"),
				mustItem(t, productID, 2, "12.50", "25.00"),
			})
		require.NoError(t, err)

		assert.Equal(t, []restaurant.ProductID{productID, otherID}, cmd.ProductIDs())
	})
}
