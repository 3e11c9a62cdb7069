// Package router maps methods and URL patterns to the resource handlers.
package router

import (
	"context"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/restaurant-pizza-api/docs" // registers the OpenAPI document
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/controllers"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ServiceName is reported by the health check
const ServiceName = "restaurant-pizza-api"

// indexPage is served on GET /
const indexPage = "<h1>Code challenge</h1>"

// Route binds one method and path pattern to a handler
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Controllers groups the resource handlers served by the API
type Controllers struct {
	Restaurants      controllers.RestaurantController
	Pizzas           controllers.PizzaController
	RestaurantPizzas controllers.RestaurantPizzaController
}

// Options configures the engine built by New
type Options struct {
	// AllowedOrigins is passed to the CORS middleware
	AllowedOrigins []string
	// Registry receives the HTTP metrics and is exposed on /metrics; nil disables both
	Registry *prometheus.Registry
	// Pinger backs the health check; nil reports healthy unconditionally
	Pinger func(ctx context.Context) error
	// Logger receives one entry per request; nil uses the standard logrus logger
	Logger logrus.FieldLogger
}

// Routes returns the resource route table
func Routes(c Controllers) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/restaurants", Handler: c.Restaurants.GetAllRestaurants},
		{Method: http.MethodGet, Path: "/restaurants/:id", Handler: c.Restaurants.GetRestaurantByID},
		{Method: http.MethodDelete, Path: "/restaurants/:id", Handler: c.Restaurants.DeleteRestaurant},
		{Method: http.MethodGet, Path: "/pizzas", Handler: c.Pizzas.GetAllPizzas},
		{Method: http.MethodPost, Path: "/restaurant_pizzas", Handler: c.RestaurantPizzas.CreateRestaurantPizza},
	}
}

// Register adds every route of the table to the router
func Register(r gin.IRoutes, routes []Route) {
	for _, route := range routes {
		r.Handle(route.Method, route.Path, route.Handler)
	}
}

// New builds the gin engine with middleware, the resource routes and the operational endpoints
func New(c Controllers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))
	if opts.Registry != nil {
		router.Use(middleware.NewMetrics(opts.Registry).Handler())
	}
	router.Use(middleware.CORS(opts.AllowedOrigins))

	router.GET("/", indexHandler)
	router.GET("/health", healthCheckHandler(opts.Pinger))
	Register(router, Routes(c))

	if opts.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// indexHandler serves the static greeting page
// @Summary Index
// @Description Static HTML greeting
// @Tags index
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func indexHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service and its database are reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logrus.WithError(err).Error("Health check failed")
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   ServiceName,
		})
	}
}
