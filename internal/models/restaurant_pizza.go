package models

import "gorm.io/gorm"

// Price bounds of a restaurant pizza listing, inclusive
const (
	MinPrice = 1
	MaxPrice = 30
)

// RestaurantPizza is a priced listing of a pizza at a restaurant
type RestaurantPizza struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Price        float64 `json:"price" gorm:"not null;check:price >= 1 AND price <= 30" validate:"gte=1,lte=30"`
	RestaurantID uint    `json:"restaurant_id" gorm:"not null;index" validate:"required"`
	PizzaID      uint    `json:"pizza_id" gorm:"not null;index" validate:"required"`

	Restaurant Restaurant `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" validate:"-"`
	Pizza      Pizza      `json:"-" gorm:"foreignKey:PizzaID" validate:"-"`
}

func (RestaurantPizza) TableName() string {
	return "restaurant_pizzas"
}

// BeforeSave rejects listings that break the price range or miss a reference.
// The error is a validator.ValidationErrors and reaches the caller through gorm's Error.
func (rp *RestaurantPizza) BeforeSave(tx *gorm.DB) error {
	return rp.Validate()
}

// Validate checks the declared constraints of the listing
func (rp *RestaurantPizza) Validate() error {
	return validate.Struct(rp)
}
