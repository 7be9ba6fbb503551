// Package catalog provides the static restaurant and menu data.
// The table is read-only for the process lifetime and is never mutated;
// image paths are relative and joined with the configured server URL when
// messages are built.
package catalog

// Item is one menu item of a restaurant.
type Item struct {
	Title     string // Display name (e.g., "Cheese Pizza")
	Price     string // Decimal price string (e.g., "8.99")
	ImagePath string // Asset path relative to the public server URL
}

// Restaurant is one catalog entry, keyed by its postback payload.
type Restaurant struct {
	Key       string // Postback payload key (e.g., "restaurant_campus_pizza")
	Name      string // Display name
	Subtitle  string // Carousel subtitle
	ImagePath string // Asset path relative to the public server URL
	Items     []Item // Menu items, in display order
}

// restaurants is the catalog, in carousel display order.
var restaurants = []Restaurant{
	{
		Key:       "restaurant_campus_pizza",
		Name:      "Campus Pizza",
		Subtitle:  "Hand-tossed pies, open late",
		ImagePath: "assets/restaurants/campus_pizza.jpg",
		Items: []Item{
			{Title: "Cheese Pizza", Price: "8.99", ImagePath: "assets/items/cheese_pizza.jpg"},
			{Title: "Pepperoni Pizza", Price: "10.49", ImagePath: "assets/items/pepperoni_pizza.jpg"},
			{Title: "Veggie Supreme", Price: "11.25", ImagePath: "assets/items/veggie_supreme.jpg"},
		},
	},
	{
		Key:       "restaurant_sunrise_sushi",
		Name:      "Sunrise Sushi",
		Subtitle:  "Fresh rolls and bento boxes",
		ImagePath: "assets/restaurants/sunrise_sushi.jpg",
		Items: []Item{
			{Title: "California Roll", Price: "6.50", ImagePath: "assets/items/california_roll.jpg"},
			{Title: "Spicy Tuna Roll", Price: "7.75", ImagePath: "assets/items/spicy_tuna_roll.jpg"},
			{Title: "Salmon Bento", Price: "12.99", ImagePath: "assets/items/salmon_bento.jpg"},
		},
	},
	{
		Key:       "restaurant_burger_barn",
		Name:      "Burger Barn",
		Subtitle:  "Smash burgers and shakes",
		ImagePath: "assets/restaurants/burger_barn.jpg",
		Items: []Item{
			{Title: "Classic Smash", Price: "7.25", ImagePath: "assets/items/classic_smash.jpg"},
			{Title: "Double Bacon", Price: "9.95", ImagePath: "assets/items/double_bacon.jpg"},
			{Title: "Garden Burger", Price: "7.99", ImagePath: "assets/items/garden_burger.jpg"},
		},
	},
}

// index maps postback keys to catalog entries. Built once at init.
var index = func() map[string]*Restaurant {
	m := make(map[string]*Restaurant, len(restaurants))
	for i := range restaurants {
		m[restaurants[i].Key] = &restaurants[i]
	}
	return m
}()

// Restaurants returns all catalog entries in display order.
// The returned slice must not be modified.
func Restaurants() []Restaurant {
	return restaurants
}

// Lookup returns the restaurant for the exact postback key.
func Lookup(key string) (*Restaurant, bool) {
	r, ok := index[key]
	return r, ok
}
