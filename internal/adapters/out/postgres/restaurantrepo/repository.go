// Package restaurantrepo provides read access to the restaurants and
// products tables. The order creation workflow loads a restaurant snapshot:
// activity status plus the currently priced products an order references.
package restaurantrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RestaurantDTO represents the database row of a restaurant.
type RestaurantDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Active bool
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO represents one menu entry of a restaurant.
type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Price        decimal.Decimal `gorm:"type:numeric(19,2)"`
	Available    bool
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// GormRestaurantRepository implements ports.RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository.
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// Get retrieves the restaurant snapshot restricted to the listed products.
// Products the restaurant does not carry, and products currently marked
// unavailable, are absent from the snapshot; the domain turns that absence
// into a menu violation.
func (r *GormRestaurantRepository) Get(
	ctx context.Context,
	id restaurant.RestaurantID,
	productIDs []restaurant.ProductID,
) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var restaurantDTO RestaurantDTO
	err := r.db.WithContext(ctx).First(&restaurantDTO, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return nil, errs.NewPersistenceErrorWithCause("get restaurant", err)
	}

	rawIDs := make([]uuid.UUID, 0, len(productIDs))
	for _, productID := range productIDs {
		rawIDs = append(rawIDs, productID.Bytes())
	}

	var productDTOs []ProductDTO
	err = r.db.WithContext(ctx).
		Find(&productDTOs, "restaurant_id = ? AND available AND id IN ?", id.Bytes(), rawIDs).Error
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("get restaurant products", err)
	}

	products := make([]restaurant.Product, 0, len(productDTOs))
	for _, dto := range productDTOs {
		product, productErr := productToDomain(dto)
		if productErr != nil {
			return nil, productErr
		}
		products = append(products, product)
	}

	return restaurant.NewRestaurant(id, products, restaurantDTO.Active)
}

func productToDomain(dto ProductDTO) (restaurant.Product, error) {
	productUUID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return restaurant.Product{}, err
	}
	productID, err := restaurant.ProductIDFromUUID(productUUID)
	if err != nil {
		return restaurant.Product{}, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return restaurant.Product{}, err
	}

	return restaurant.NewProduct(productID, dto.Name, price)
}
