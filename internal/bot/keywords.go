package bot

import "strings"

// foodKeywords trigger the restaurant carousel when any of them appears as a
// substring of the lowercased message text. Substring on purpose, not word
// match: "hungryman" still counts as hungry.
var foodKeywords = []string{
	"hungry",
	"food",
	"meal",
	"snack",
	"cuisine",
	"drink",
	"chow",
	"breakfast",
	"lunch",
	"dinner",
	"brunch",
	"buffet",
}

// matchesFoodKeyword reports whether the text mentions food.
func matchesFoodKeyword(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range foodKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
