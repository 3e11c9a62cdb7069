package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/restaurant-pizza-api/internal/controllers"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/database"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/models"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/services"
	"github.com/franciscosanchezn/restaurant-pizza-api/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, testutil.Fixtures) {
	t.Helper()
	db := testutil.NewTestDB(t)
	fx := testutil.Seed(t, db)

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	engine := New(Controllers{
		Restaurants:      controllers.NewRestaurantController(services.NewRestaurantService(db)),
		Pizzas:           controllers.NewPizzaController(services.NewPizzaService(db)),
		RestaurantPizzas: controllers.NewRestaurantPizzaController(services.NewRestaurantPizzaService(db)),
	}, Options{
		AllowedOrigins: []string{"*"},
		Registry:       prometheus.NewRegistry(),
		Pinger:         func(ctx context.Context) error { return database.Ping(ctx, db) },
		Logger:         quiet,
	})
	return engine, db, fx
}

func do(engine http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRoutesTable(t *testing.T) {
	routes := Routes(Controllers{
		Restaurants:      controllers.NewRestaurantController(nil),
		Pizzas:           controllers.NewPizzaController(nil),
		RestaurantPizzas: controllers.NewRestaurantPizzaController(nil),
	})

	var got []string
	for _, r := range routes {
		got = append(got, r.Method+" "+r.Path)
		assert.NotNil(t, r.Handler)
	}
	assert.ElementsMatch(t, []string{
		"GET /restaurants",
		"GET /restaurants/:id",
		"DELETE /restaurants/:id",
		"GET /pizzas",
		"POST /restaurant_pizzas",
	}, got)
}

func TestIndex(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := do(engine, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "<h1>Code challenge</h1>", w.Body.String())
}

func TestRestaurantDetailCountsListings(t *testing.T) {
	engine, db, fx := newTestServer(t)

	for _, r := range fx.Restaurants {
		w := do(engine, http.MethodGet, fmt.Sprintf("/restaurants/%d", r.ID), "")
		require.Equal(t, http.StatusOK, w.Code)

		var body models.RestaurantDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, r.ID, body.ID)
		assert.Equal(t, r.Name, body.Name)
		assert.Equal(t, r.Address, body.Address)
		assert.Len(t, body.RestaurantPizzas, int(testutil.CountListings(t, db, r.ID)))
	}
}

func TestMissingRestaurant(t *testing.T) {
	engine, _, _ := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := do(engine, method, "/restaurants/4242", "")

		assert.Equal(t, http.StatusNotFound, w.Code, method)
		assert.JSONEq(t, `{"error": "Restaurant not found"}`, w.Body.String(), method)
	}
}

func TestDeleteThenGet(t *testing.T) {
	engine, db, fx := newTestServer(t)
	target := fx.Restaurants[1]
	path := fmt.Sprintf("/restaurants/%d", target.ID)

	w := do(engine, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())

	w = do(engine, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, testutil.CountListings(t, db, target.ID))
	assert.Equal(t, int64(len(fx.Pizzas)), testutil.CountRows(t, db, &models.Pizza{}))
}

func TestPizzaList(t *testing.T) {
	engine, db, _ := newTestServer(t)

	w := do(engine, http.MethodGet, "/pizzas", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, int(testutil.CountRows(t, db, &models.Pizza{})))
	for _, p := range body {
		assert.Len(t, p, 3)
		assert.Contains(t, p, "id")
		assert.Contains(t, p, "name")
		assert.Contains(t, p, "ingredients")
	}
}

func TestCreatedListingIsVisibleOnRestaurant(t *testing.T) {
	engine, _, fx := newTestServer(t)
	restaurant, pizza := fx.Restaurants[2], fx.Pizzas[2]

	w := do(engine, http.MethodPost, "/restaurant_pizzas",
		fmt.Sprintf(`{"price": 30, "pizza_id": %d, "restaurant_id": %d}`, pizza.ID, restaurant.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.RestaurantPizzaCreated
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 30.0, created.Price)
	assert.Equal(t, pizza.ID, created.PizzaID)
	assert.Equal(t, restaurant.ID, created.RestaurantID)
	assert.Equal(t, pizza.Name, created.Pizza.Name)
	assert.Equal(t, restaurant.Address, created.Restaurant.Address)

	w = do(engine, http.MethodGet, fmt.Sprintf("/restaurants/%d", restaurant.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail models.RestaurantDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.RestaurantPizzas, 1)
	assert.Equal(t, created.ID, detail.RestaurantPizzas[0].ID)
}

func TestCreateListingRejected(t *testing.T) {
	engine, db, fx := newTestServer(t)
	before := testutil.CountRows(t, db, &models.RestaurantPizza{})

	w := do(engine, http.MethodPost, "/restaurant_pizzas",
		fmt.Sprintf(`{"price": 5, "pizza_id": 777, "restaurant_id": %d}`, fx.Restaurants[0].ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"errors": ["Restaurant/Pizza not found"]}`, w.Body.String())

	for _, price := range []int{0, 35} {
		w = do(engine, http.MethodPost, "/restaurant_pizzas",
			fmt.Sprintf(`{"price": %d, "pizza_id": %d, "restaurant_id": %d}`, price, fx.Pizzas[0].ID, fx.Restaurants[0].ID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"errors": ["validation errors"]}`, w.Body.String())
	}

	assert.Equal(t, before, testutil.CountRows(t, db, &models.RestaurantPizza{}))
}

func TestHealth(t *testing.T) {
	engine, db, _ := newTestServer(t)

	w := do(engine, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, ServiceName, body["service"])

	require.NoError(t, database.Close(db))
	w = do(engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthWithoutPinger(t *testing.T) {
	engine := New(Controllers{
		Restaurants:      controllers.NewRestaurantController(nil),
		Pizzas:           controllers.NewPizzaController(nil),
		RestaurantPizzas: controllers.NewRestaurantPizzaController(nil),
	}, Options{Pinger: nil})

	w := do(engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(engine, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "metrics are only served with a registry")
}

func TestMetricsEndpoint(t *testing.T) {
	engine, _, _ := newTestServer(t)
	do(engine, http.MethodGet, "/pizzas", "")

	w := do(engine, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `restaurant_api_http_requests_total{method="GET",route="/pizzas",status="200"} 1`)
}

func TestSwaggerDocument(t *testing.T) {
	engine, _, _ := newTestServer(t)

	w := do(engine, http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/restaurant_pizzas")
}

func TestRecoveryTurnsPanicsIntoServerErrors(t *testing.T) {
	engine, _, _ := newTestServer(t)
	engine.GET("/boom", func(c *gin.Context) { panic(errors.New("boom")) })

	w := do(engine, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
