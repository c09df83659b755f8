// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"strings"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// failureMessagesDelimiter flattens failure messages into one text column.
// Messages never contain the delimiter; they are produced by the domain, not
// by users.
const failureMessagesDelimiter = ","

// OrderDTO represents the database row for an order aggregate. Items live in
// their own table and are loaded with the order.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;index"`
	TrackingID      uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Address         AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Price           decimal.Decimal `gorm:"type:numeric(19,2)"`
	Status          int
	FailureMessages string
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the delivery address embedded within the order row.
type AddressDTO struct {
	Street     string
	PostalCode string
	City       string
}

// OrderItemDTO represents one order line. The line id is scoped to the
// order, together they form the primary key. Product data is denormalized so
// the order keeps the prices confirmed at creation even if the menu changes.
type OrderItemDTO struct {
	OrderID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID           int64           `gorm:"primaryKey;autoIncrement:false"`
	ProductID    uuid.UUID       `gorm:"type:uuid"`
	ProductName  string
	ProductPrice decimal.Decimal `gorm:"type:numeric(19,2)"`
	Price        decimal.Decimal `gorm:"type:numeric(19,2)"`
	Quantity     int
	SubTotal     decimal.Decimal `gorm:"type:numeric(19,2)"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:      aggregate.ID().Bytes(),
			ID:           item.ID(),
			ProductID:    item.Product().ID().Bytes(),
			ProductName:  item.Product().Name(),
			ProductPrice: item.Product().Price().Amount(),
			Price:        item.Price().Amount(),
			Quantity:     item.Quantity(),
			SubTotal:     item.SubTotal().Amount(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		TrackingID:   aggregate.TrackingID().Bytes(),
		Address: AddressDTO{
			Street:     aggregate.DeliveryAddress().Street(),
			PostalCode: aggregate.DeliveryAddress().PostalCode(),
			City:       aggregate.DeliveryAddress().City(),
		},
		Price:           aggregate.Price().Amount(),
		Status:          int(aggregate.Status()),
		FailureMessages: strings.Join(aggregate.FailureMessages(), failureMessagesDelimiter),
		Items:           items,
	}
}

// toDomain converts a database row back into an order aggregate using the
// Restore constructors.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := orderIDFromBytes(dto.ID)
	if err != nil {
		return nil, err
	}

	customerUUID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := customer.CustomerIDFromUUID(customerUUID)
	if err != nil {
		return nil, err
	}

	restaurantUUID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := restaurant.RestaurantIDFromUUID(restaurantUUID)
	if err != nil {
		return nil, err
	}

	trackingUUID, err := kernel.UUIDFromBytes(dto.TrackingID[:])
	if err != nil {
		return nil, err
	}
	trackingID, err := order.TrackingIDFromUUID(trackingUUID)
	if err != nil {
		return nil, err
	}

	address, err := order.NewStreetAddress(dto.Address.Street, dto.Address.PostalCode, dto.Address.City)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(id, itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		restaurantID,
		address,
		price,
		items,
		trackingID,
		order.Status(dto.Status),
		splitFailureMessages(dto.FailureMessages),
	)
}

func itemToDomain(orderID order.OrderID, dto OrderItemDTO) (*order.OrderItem, error) {
	productUUID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	productID, err := restaurant.ProductIDFromUUID(productUUID)
	if err != nil {
		return nil, err
	}

	productPrice, err := kernel.NewMoney(dto.ProductPrice)
	if err != nil {
		return nil, err
	}
	product, err := restaurant.NewProduct(productID, dto.ProductName, productPrice)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	subTotal, err := kernel.NewMoney(dto.SubTotal)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderItem(dto.ID, orderID, product, dto.Quantity, price, subTotal)
}

func orderIDFromBytes(raw uuid.UUID) (order.OrderID, error) {
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return order.OrderID{}, err
	}
	return order.OrderIDFromUUID(id)
}

func splitFailureMessages(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, failureMessagesDelimiter)
}
