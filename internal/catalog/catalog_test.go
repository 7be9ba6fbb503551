package catalog

import "testing"

func TestRestaurants_StableOrder(t *testing.T) {
	all := Restaurants()
	if len(all) != 3 {
		t.Fatalf("Expected 3 restaurants, got %d", len(all))
	}

	wantKeys := []string{
		"restaurant_campus_pizza",
		"restaurant_sunrise_sushi",
		"restaurant_burger_barn",
	}
	for i, key := range wantKeys {
		if all[i].Key != key {
			t.Errorf("Restaurants()[%d].Key = %q, want %q", i, all[i].Key, key)
		}
	}
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("restaurant_campus_pizza")
	if !ok {
		t.Fatal("Lookup(restaurant_campus_pizza) not found")
	}
	if r.Name != "Campus Pizza" {
		t.Errorf("Name = %q, want Campus Pizza", r.Name)
	}
	if len(r.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(r.Items))
	}
	if r.Items[0].Title != "Cheese Pizza" {
		t.Errorf("First item = %q, want Cheese Pizza (table order)", r.Items[0].Title)
	}

	if _, ok := Lookup("restaurant_nowhere"); ok {
		t.Error("Lookup(restaurant_nowhere) unexpectedly found")
	}
	// Exact-key lookup only, no prefix matching.
	if _, ok := Lookup("campus_pizza"); ok {
		t.Error("Lookup without prefix unexpectedly found")
	}
}

func TestCatalog_EveryItemComplete(t *testing.T) {
	for _, r := range Restaurants() {
		if r.Key == "" || r.Name == "" || r.ImagePath == "" {
			t.Errorf("Restaurant %+v has empty fields", r)
		}
		for _, item := range r.Items {
			if item.Title == "" || item.Price == "" || item.ImagePath == "" {
				t.Errorf("Item %+v of %s has empty fields", item, r.Key)
			}
		}
	}
}
