package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/restaurant-pizza-api/internal/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateRestaurantPizzaInput carries the decoded request body; nil means the field was absent
type CreateRestaurantPizzaInput struct {
	Price        *float64
	PizzaID      *int64
	RestaurantID *int64
}

// RestaurantPizzaService provides methods to manage restaurant pizza listings
type RestaurantPizzaService interface {
	// CreateRestaurantPizza looks up both referenced rows and inserts the listing in one transaction.
	// The returned listing has Restaurant and Pizza loaded.
	CreateRestaurantPizza(ctx context.Context, input CreateRestaurantPizzaInput) (models.RestaurantPizza, error)
}

type restaurantPizzaService struct {
	db *gorm.DB
}

// NewRestaurantPizzaService creates a new instance of RestaurantPizzaService
func NewRestaurantPizzaService(db *gorm.DB) RestaurantPizzaService {
	return &restaurantPizzaService{db: db}
}

func (s *restaurantPizzaService) CreateRestaurantPizza(ctx context.Context, input CreateRestaurantPizzaInput) (models.RestaurantPizza, error) {
	var created models.RestaurantPizza
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := findByOptionalID(tx, &restaurant, input.RestaurantID); err != nil {
			return notFound(err, ErrRestaurantNotFound)
		}
		var pizza models.Pizza
		if err := findByOptionalID(tx, &pizza, input.PizzaID); err != nil {
			return notFound(err, ErrPizzaNotFound)
		}

		listing := models.RestaurantPizza{
			RestaurantID: restaurant.ID,
			PizzaID:      pizza.ID,
		}
		if input.Price != nil {
			listing.Price = *input.Price
		}

		// The BeforeSave hook validates the listing; associations are already persisted
		if err := tx.Omit(clause.Associations).Create(&listing).Error; err != nil {
			return validation(err)
		}

		listing.Restaurant = restaurant
		listing.Pizza = pizza
		created = listing
		return nil
	})
	if err != nil {
		return models.RestaurantPizza{}, err
	}
	return created, nil
}

// findByOptionalID loads dest by primary key; a missing or non-positive id is reported as not found
func findByOptionalID(tx *gorm.DB, dest any, id *int64) error {
	if id == nil || *id <= 0 {
		return gorm.ErrRecordNotFound
	}
	return tx.First(dest, *id).Error
}

// validation wraps model validation failures in ErrValidation and passes other errors through
func validation(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", ErrValidation, verrs.Error())
	}
	return err
}
