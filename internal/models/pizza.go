package models

import "gorm.io/gorm"

// Pizza represents a pizza that restaurants can list on their menus
type Pizza struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null" validate:"required"`
	Ingredients string `json:"ingredients" gorm:"not null" validate:"required"`
}

func (Pizza) TableName() string {
	return "pizzas"
}

// BeforeSave validates the pizza before it is written
func (p *Pizza) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// Validate checks the declared constraints of the pizza
func (p *Pizza) Validate() error {
	return validate.Struct(p)
}
