package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/restaurant-pizza-api/internal/models"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// CreateRestaurantPizzaRequest is the body of POST /restaurant_pizzas
type CreateRestaurantPizzaRequest struct {
	Price        *float64 `json:"price" example:"5"`
	PizzaID      *int64   `json:"pizza_id" example:"1"`
	RestaurantID *int64   `json:"restaurant_id" example:"3"`
}

// RestaurantPizzaController handles HTTP requests related to restaurant pizza listings
type RestaurantPizzaController interface {
	// CreateRestaurantPizza lists a pizza at a restaurant
	CreateRestaurantPizza(c *gin.Context)
}

type restaurantPizzaController struct {
	service services.RestaurantPizzaService
}

// NewRestaurantPizzaController creates a new instance of RestaurantPizzaController
func NewRestaurantPizzaController(service services.RestaurantPizzaService) RestaurantPizzaController {
	return &restaurantPizzaController{service: service}
}

// CreateRestaurantPizza godoc
// @Summary Create a restaurant pizza
// @Description List an existing pizza at an existing restaurant for a price between 1 and 30
// @Tags restaurant_pizzas
// @Accept json
// @Produce json
// @Param restaurant_pizza body CreateRestaurantPizzaRequest true "Listing"
// @Success 201 {object} models.RestaurantPizzaCreated
// @Failure 400 {object} models.ErrorsResponse
// @Failure 404 {object} models.ErrorsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /restaurant_pizzas [post]
func (c *restaurantPizzaController) CreateRestaurantPizza(ctx *gin.Context) {
	var request CreateRestaurantPizzaRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		log.WithError(err).Debug("Rejected restaurant pizza body")
		ctx.JSON(http.StatusBadRequest, models.NewErrorsResponse(models.MsgValidationErrors))
		return
	}

	created, err := c.service.CreateRestaurantPizza(ctx.Request.Context(), services.CreateRestaurantPizzaInput{
		Price:        request.Price,
		PizzaID:      request.PizzaID,
		RestaurantID: request.RestaurantID,
	})
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound), errors.Is(err, services.ErrPizzaNotFound):
		ctx.JSON(http.StatusNotFound, models.NewErrorsResponse(models.MsgRestaurantPizzaNotFound))
	case errors.Is(err, services.ErrValidation):
		log.WithError(err).Debug("Rejected restaurant pizza")
		ctx.JSON(http.StatusBadRequest, models.NewErrorsResponse(models.MsgValidationErrors))
	case err != nil:
		internalError(ctx, err, "Failed to create restaurant pizza")
	default:
		ctx.JSON(http.StatusCreated, created.Created())
	}
}
