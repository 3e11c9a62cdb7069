package services

import "errors"

var (
	// ErrRestaurantNotFound is returned when no restaurant has the requested id
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrPizzaNotFound is returned when no pizza has the requested id
	ErrPizzaNotFound = errors.New("pizza not found")
	// ErrValidation wraps model validation failures raised while saving
	ErrValidation = errors.New("validation failed")
)
