package preferences

import (
	"maps"
	"slices"

	"github.com/go-ports/gomate/internal/models"
)

var translations = map[models.Language]map[string]string{
	models.LanguageEnglish: {
		"home":            "Home",
		"explore":         "Explore",
		"favorites":       "Favorites",
		"notifications":   "Notifications",
		"profile":         "Profile",
		"settings":        "Settings",
		"login":           "Login",
		"register":        "Register",
		"logout":          "Logout",
		"search":          "Search destinations",
		"welcome":         "Welcome to GoMate",
		"destinations":    "Destinations",
		"name":            "Name",
		"email":           "Email",
		"password":        "Password",
		"confirmPassword": "Confirm Password",
		"save":            "Save",
		"cancel":          "Cancel",
		"darkMode":        "Dark Mode",
		"language":        "Language",
		"markAllRead":     "Mark all as read",
		"clearAll":        "Clear all",
		"noFavorites":     "No favorites yet",
		"noNotifications": "No notifications",
		"bestTimeToVisit": "Best time to visit",
		"highlights":      "Highlights",
		"transport":       "Transport",
		"all":             "All",
		"cultural":        "Cultural",
		"nature":          "Nature",
		"beach":           "Beach",
		"wildlife":        "Wildlife",
		"adventure":       "Adventure",
	},
	models.LanguageSinhala: {
		"home":            "මුල් පිටුව",
		"explore":         "ගවේෂණය",
		"favorites":       "ප්‍රියතම",
		"notifications":   "දැනුම්දීම්",
		"profile":         "පැතිකඩ",
		"settings":        "සැකසුම්",
		"login":           "පිවිසෙන්න",
		"register":        "ලියාපදිංචි වන්න",
		"logout":          "ඉවත් වන්න",
		"search":          "ගමනාන්ත සොයන්න",
		"welcome":         "GoMate වෙත සාදරයෙන් පිළිගනිමු",
		"destinations":    "ගමනාන්ත",
		"name":            "නම",
		"email":           "විද්‍යුත් තැපෑල",
		"password":        "මුරපදය",
		"confirmPassword": "මුරපදය තහවුරු කරන්න",
		"save":            "සුරකින්න",
		"cancel":          "අවලංගු කරන්න",
		"darkMode":        "අඳුරු මාදිලිය",
		"language":        "භාෂාව",
		"markAllRead":     "සියල්ල කියවූ ලෙස සලකුණු කරන්න",
		"clearAll":        "සියල්ල මකන්න",
		"noFavorites":     "තවම ප්‍රියතම නැත",
		"noNotifications": "දැනුම්දීම් නැත",
		"bestTimeToVisit": "පැමිණීමට හොඳම කාලය",
		"highlights":      "විශේෂාංග",
		"transport":       "ප්‍රවාහනය",
		"all":             "සියල්ල",
		"cultural":        "සංස්කෘතික",
		"nature":          "සොබාදහම",
		"beach":           "වෙරළ",
		"wildlife":        "වනජීවී",
		"adventure":       "වික්‍රමාන්විත",
	},
}

// Translate returns the text for key in lang, or key itself when the table
// has no entry.
func Translate(lang models.Language, key string) string {
	if v, ok := translations[lang][key]; ok {
		return v
	}
	return key
}

// TranslationKeys returns the keys of the English table, sorted.
func TranslationKeys() []string {
	return slices.Sorted(maps.Keys(translations[models.LanguageEnglish]))
}
