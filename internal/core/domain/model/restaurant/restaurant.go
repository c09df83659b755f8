package restaurant

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

// ErrRestaurantIsNotConstructed is returned when using an improperly
// initialized Restaurant.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// RestaurantID is the strongly typed identity of a restaurant.
type RestaurantID struct {
	kernel.UUID
}

// NewRestaurantID generates a fresh restaurant identity.
func NewRestaurantID() RestaurantID {
	return RestaurantID{kernel.NewUUID()}
}

// RestaurantIDFromUUID wraps an existing UUID as a restaurant identity.
// Returns an error if the UUID is not properly constructed.
func RestaurantIDFromUUID(id kernel.UUID) (RestaurantID, error) {
	if err := id.Validate(); err != nil {
		return RestaurantID{}, err
	}
	return RestaurantID{id}, nil
}

// Restaurant is a read-only snapshot of a restaurant at order creation time:
// its active flag and the menu products the order references, each carrying
// the canonical price. The snapshot is the authority the order is validated
// against; the ordering core never mutates restaurant state.
type Restaurant struct {
	id       RestaurantID
	products []Product
	active   bool

	guard guard.ConstructorGuard
}

// NewRestaurant creates a restaurant snapshot. An empty product list is
// valid: it means the restaurant carries none of the products an order
// asked about, which the order validation reports as a menu violation.
func NewRestaurant(id RestaurantID, products []Product, active bool) (*Restaurant, error) {
	restaurant := &Restaurant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		restaurant.setID(id),
		restaurant.setProducts(products),
	); err != nil {
		return nil, err
	}

	restaurant.active = active
	return restaurant, nil
}

// ID returns the restaurant's identity.
func (r *Restaurant) ID() RestaurantID {
	return r.id
}

// IsActive reports whether the restaurant is currently accepting orders.
func (r *Restaurant) IsActive() bool {
	return r.active
}

// Products returns the menu products carried by this snapshot.
func (r *Restaurant) Products() []Product {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

// Validate ensures the Restaurant was created through NewRestaurant.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) setID(id RestaurantID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setProducts(products []Product) error {
	for _, product := range products {
		if err := product.Validate(); err != nil {
			return err
		}
	}

	r.products = make([]Product, len(products))
	copy(r.products, products)
	return nil
}
