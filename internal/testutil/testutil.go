// Package testutil builds migrated in-memory databases and fixtures for tests.
package testutil

import (
	"testing"

	"github.com/franciscosanchezn/restaurant-pizza-api/internal/database"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory sqlite database private to the test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:     database.DriverSQLite,
		Path:       ":memory:",
		MaxRetries: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	return db
}

// Fixtures holds the rows inserted by Seed
type Fixtures struct {
	Restaurants      []models.Restaurant
	Pizzas           []models.Pizza
	RestaurantPizzas []models.RestaurantPizza
}

// Seed inserts three restaurants, three pizzas and listings for the first two restaurants.
// The third restaurant has no listings.
func Seed(t *testing.T, db *gorm.DB) Fixtures {
	t.Helper()

	fx := Fixtures{
		Restaurants: []models.Restaurant{
			{Name: "Karen's Pizza Shack", Address: "address1"},
			{Name: "Sanjay's Pizza", Address: "address2"},
			{Name: "Kiki's Pizza", Address: "address3"},
		},
		Pizzas: []models.Pizza{
			{Name: "Emma", Ingredients: "Dough, Tomato Sauce, Cheese"},
			{Name: "Geri", Ingredients: "Dough, Tomato Sauce, Cheese, Pepperoni"},
			{Name: "Melanie", Ingredients: "Dough, Sauce, Ricotta, Red peppers, Mustard"},
		},
	}
	require.NoError(t, db.Create(&fx.Restaurants).Error)
	require.NoError(t, db.Create(&fx.Pizzas).Error)

	fx.RestaurantPizzas = []models.RestaurantPizza{
		{Price: 1, RestaurantID: fx.Restaurants[0].ID, PizzaID: fx.Pizzas[0].ID},
		{Price: 4, RestaurantID: fx.Restaurants[0].ID, PizzaID: fx.Pizzas[1].ID},
		{Price: 5, RestaurantID: fx.Restaurants[1].ID, PizzaID: fx.Pizzas[2].ID},
	}
	require.NoError(t, db.Omit("Restaurant", "Pizza").Create(&fx.RestaurantPizzas).Error)

	return fx
}

// CountListings returns how many restaurant_pizzas rows reference the restaurant
func CountListings(t *testing.T, db *gorm.DB, restaurantID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.RestaurantPizza{}).Where("restaurant_id = ?", restaurantID).Count(&count).Error)
	return count
}

// CountRows returns the number of rows of the model's table
func CountRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
