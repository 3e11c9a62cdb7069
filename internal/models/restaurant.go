package models

import "gorm.io/gorm"

// Restaurant represents a restaurant and the pizzas it offers
type Restaurant struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null" validate:"required"`
	Address string `json:"address"`

	RestaurantPizzas []RestaurantPizza `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// BeforeSave validates the restaurant before it is written
func (r *Restaurant) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// Validate checks the declared constraints of the restaurant
func (r *Restaurant) Validate() error {
	return validate.Struct(r)
}
