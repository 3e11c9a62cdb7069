package models

// RestaurantSummary is the list shape of a restaurant
type RestaurantSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RestaurantDetail is the single-restaurant shape, including its pizza listings
type RestaurantDetail struct {
	ID               uint                  `json:"id"`
	Name             string                `json:"name"`
	Address          string                `json:"address"`
	RestaurantPizzas []RestaurantPizzaView `json:"restaurant_pizzas"`
}

// PizzaSummary is the list shape of a pizza, also nested in listings
type PizzaSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

// RestaurantPizzaView is a listing as nested inside a restaurant detail
type RestaurantPizzaView struct {
	ID           uint         `json:"id"`
	Price        float64      `json:"price"`
	PizzaID      uint         `json:"pizza_id"`
	RestaurantID uint         `json:"restaurant_id"`
	Pizza        PizzaSummary `json:"pizza"`
}

// RestaurantPizzaCreated is returned after a listing is created
type RestaurantPizzaCreated struct {
	ID           uint              `json:"id"`
	Price        float64           `json:"price"`
	PizzaID      uint              `json:"pizza_id"`
	RestaurantID uint              `json:"restaurant_id"`
	Pizza        PizzaSummary      `json:"pizza"`
	Restaurant   RestaurantSummary `json:"restaurant"`
}

func (r Restaurant) Summary() RestaurantSummary {
	return RestaurantSummary{ID: r.ID, Name: r.Name, Address: r.Address}
}

// Detail projects the restaurant with its listings; RestaurantPizzas.Pizza must be loaded
func (r Restaurant) Detail() RestaurantDetail {
	items := make([]RestaurantPizzaView, 0, len(r.RestaurantPizzas))
	for _, rp := range r.RestaurantPizzas {
		items = append(items, rp.View())
	}
	return RestaurantDetail{
		ID:               r.ID,
		Name:             r.Name,
		Address:          r.Address,
		RestaurantPizzas: items,
	}
}

func (p Pizza) Summary() PizzaSummary {
	return PizzaSummary{ID: p.ID, Name: p.Name, Ingredients: p.Ingredients}
}

func (rp RestaurantPizza) View() RestaurantPizzaView {
	return RestaurantPizzaView{
		ID:           rp.ID,
		Price:        rp.Price,
		PizzaID:      rp.PizzaID,
		RestaurantID: rp.RestaurantID,
		Pizza:        rp.Pizza.Summary(),
	}
}

// Created projects a freshly inserted listing; Pizza and Restaurant must be loaded
func (rp RestaurantPizza) Created() RestaurantPizzaCreated {
	return RestaurantPizzaCreated{
		ID:           rp.ID,
		Price:        rp.Price,
		PizzaID:      rp.PizzaID,
		RestaurantID: rp.RestaurantID,
		Pizza:        rp.Pizza.Summary(),
		Restaurant:   rp.Restaurant.Summary(),
	}
}

// RestaurantSummaries projects a list of restaurants, never returning nil
func RestaurantSummaries(restaurants []Restaurant) []RestaurantSummary {
	out := make([]RestaurantSummary, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.Summary())
	}
	return out
}

// PizzaSummaries projects a list of pizzas, never returning nil
func PizzaSummaries(pizzas []Pizza) []PizzaSummary {
	out := make([]PizzaSummary, 0, len(pizzas))
	for _, p := range pizzas {
		out = append(out, p.Summary())
	}
	return out
}
