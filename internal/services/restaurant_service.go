package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/restaurant-pizza-api/internal/models"
	"gorm.io/gorm"
)

// RestaurantService provides methods to interact with the restaurant table
type RestaurantService interface {
	// GetAllRestaurants retrieves all restaurants without their listings
	GetAllRestaurants(ctx context.Context) ([]models.Restaurant, error)
	// GetRestaurantByID retrieves a restaurant with its listings and their pizzas
	GetRestaurantByID(ctx context.Context, id uint) (models.Restaurant, error)
	// CreateRestaurant inserts a new restaurant
	CreateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error)
	// DeleteRestaurant deletes a restaurant and all of its listings
	DeleteRestaurant(ctx context.Context, id uint) error
}

type restaurantService struct {
	db *gorm.DB
}

// NewRestaurantService creates a new instance of RestaurantService
func NewRestaurantService(db *gorm.DB) RestaurantService {
	return &restaurantService{db: db}
}

func (s *restaurantService) GetAllRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, id uint) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).
		Preload("RestaurantPizzas", func(db *gorm.DB) *gorm.DB { return db.Order("restaurant_pizzas.id") }).
		Preload("RestaurantPizzas.Pizza").
		First(&restaurant, id).Error
	if err != nil {
		return models.Restaurant{}, notFound(err, ErrRestaurantNotFound)
	}
	return restaurant, nil
}

func (s *restaurantService) CreateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error) {
	if err := s.db.WithContext(ctx).Omit("RestaurantPizzas").Create(&restaurant).Error; err != nil {
		return models.Restaurant{}, validation(err)
	}
	return restaurant, nil
}

// DeleteRestaurant removes the listings first so the cascade holds even where
// the database does not enforce foreign keys.
func (s *restaurantService) DeleteRestaurant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.Select("id").First(&restaurant, id).Error; err != nil {
			return notFound(err, ErrRestaurantNotFound)
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.RestaurantPizza{}).Error; err != nil {
			return fmt.Errorf("delete listings of restaurant %d: %w", id, err)
		}
		if err := tx.Delete(&models.Restaurant{}, id).Error; err != nil {
			return fmt.Errorf("delete restaurant %d: %w", id, err)
		}
		return nil
	})
}

// notFound translates gorm's missing-row error into the given sentinel
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
