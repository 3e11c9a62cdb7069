package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/restaurant-pizza-api/internal/models"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RestaurantController handles HTTP requests related to restaurants
type RestaurantController interface {
	// GetAllRestaurants lists all restaurants
	GetAllRestaurants(c *gin.Context)
	// GetRestaurantByID returns a restaurant with its pizza listings
	GetRestaurantByID(c *gin.Context)
	// DeleteRestaurant deletes a restaurant and its listings
	DeleteRestaurant(c *gin.Context)
}

type restaurantController struct {
	service services.RestaurantService
}

// NewRestaurantController creates a new instance of RestaurantController
func NewRestaurantController(service services.RestaurantService) RestaurantController {
	return &restaurantController{service: service}
}

// GetAllRestaurants godoc
// @Summary List restaurants
// @Description Get all restaurants without their pizza listings
// @Tags restaurants
// @Produce json
// @Success 200 {array} models.RestaurantSummary
// @Failure 500 {object} models.ErrorResponse
// @Router /restaurants [get]
func (c *restaurantController) GetAllRestaurants(ctx *gin.Context) {
	restaurants, err := c.service.GetAllRestaurants(ctx.Request.Context())
	if err != nil {
		internalError(ctx, err, "Failed to retrieve restaurants")
		return
	}
	ctx.JSON(http.StatusOK, models.RestaurantSummaries(restaurants))
}

// GetRestaurantByID godoc
// @Summary Get restaurant by ID
// @Description Get a single restaurant with its pizza listings
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.RestaurantDetail
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /restaurants/{id} [get]
func (c *restaurantController) GetRestaurantByID(ctx *gin.Context) {
	id, ok := restaurantID(ctx)
	if !ok {
		return
	}

	restaurant, err := c.service.GetRestaurantByID(ctx.Request.Context(), id)
	if errors.Is(err, services.ErrRestaurantNotFound) {
		ctx.JSON(http.StatusNotFound, models.NewErrorResponse(models.MsgRestaurantNotFound))
		return
	}
	if err != nil {
		internalError(ctx, err, "Failed to retrieve restaurant")
		return
	}
	ctx.JSON(http.StatusOK, restaurant.Detail())
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Description Delete a restaurant and all of its pizza listings
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /restaurants/{id} [delete]
func (c *restaurantController) DeleteRestaurant(ctx *gin.Context) {
	id, ok := restaurantID(ctx)
	if !ok {
		return
	}

	err := c.service.DeleteRestaurant(ctx.Request.Context(), id)
	if errors.Is(err, services.ErrRestaurantNotFound) {
		ctx.JSON(http.StatusNotFound, models.NewErrorResponse(models.MsgRestaurantNotFound))
		return
	}
	if err != nil {
		internalError(ctx, err, "Failed to delete restaurant")
		return
	}

	log.WithField("restaurant_id", id).Info("Restaurant deleted")
	ctx.Status(http.StatusNoContent)
}

// restaurantID parses the :id path parameter. Anything that is not a positive
// integer cannot name a restaurant, so it is answered with the not-found body.
func restaurantID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusNotFound, models.NewErrorResponse(models.MsgRestaurantNotFound))
		return 0, false
	}
	return uint(id), true
}

// internalError logs the cause and answers with an opaque 500
func internalError(ctx *gin.Context, err error, message string) {
	log.WithFields(log.Fields{
		"path":  ctx.FullPath(),
		"error": err.Error(),
	}).Error(message)
	ctx.JSON(http.StatusInternalServerError, models.NewErrorResponse(message))
}
