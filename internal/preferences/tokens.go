package preferences

import "github.com/go-ports/gomate/internal/models"

// Colors is the palette of one theme.
type Colors struct {
	Primary       string `json:"primary" yaml:"primary"`
	Secondary     string `json:"secondary" yaml:"secondary"`
	Background    string `json:"background" yaml:"background"`
	Surface       string `json:"surface" yaml:"surface"`
	Card          string `json:"card" yaml:"card"`
	Text          string `json:"text" yaml:"text"`
	TextSecondary string `json:"textSecondary" yaml:"text_secondary"`
	Border        string `json:"border" yaml:"border"`
	Accent        string `json:"accent" yaml:"accent"`
	Error         string `json:"error" yaml:"error"`
	Success       string `json:"success" yaml:"success"`
	TabBar        string `json:"tabBar" yaml:"tab_bar"`
	StatusBar     string `json:"statusBar" yaml:"status_bar"`
}

// Shadow describes the drop shadow used by cards.
type Shadow struct {
	Color     string  `json:"color" yaml:"color"`
	OffsetX   int     `json:"offsetX" yaml:"offset_x"`
	OffsetY   int     `json:"offsetY" yaml:"offset_y"`
	Opacity   float64 `json:"opacity" yaml:"opacity"`
	Radius    int     `json:"radius" yaml:"radius"`
	Elevation int     `json:"elevation" yaml:"elevation"`
}

// Tokens is the full derived style set for a theme.
type Tokens struct {
	Theme    models.Theme `json:"theme" yaml:"theme"`
	Colors   Colors       `json:"colors" yaml:"colors"`
	Shadow   Shadow       `json:"shadow" yaml:"shadow"`
	Gradient []string     `json:"gradient" yaml:"gradient"`
}

var lightTokens = Tokens{
	Theme: models.ThemeLight,
	Colors: Colors{
		Primary:       "#0A7EA4",
		Secondary:     "#F4A261",
		Background:    "#F5F7FA",
		Surface:       "#FFFFFF",
		Card:          "#FFFFFF",
		Text:          "#11181C",
		TextSecondary: "#687076",
		Border:        "#E1E4E8",
		Accent:        "#2A9D8F",
		Error:         "#E63946",
		Success:       "#2E7D32",
		TabBar:        "#FFFFFF",
		StatusBar:     "dark-content",
	},
	Shadow: Shadow{
		Color:     "#000000",
		OffsetX:   0,
		OffsetY:   2,
		Opacity:   0.1,
		Radius:    8,
		Elevation: 3,
	},
	Gradient: []string{"#0A7EA4", "#2A9D8F"},
}

var darkTokens = Tokens{
	Theme: models.ThemeDark,
	Colors: Colors{
		Primary:       "#4FC3F7",
		Secondary:     "#FFB74D",
		Background:    "#121212",
		Surface:       "#1E1E1E",
		Card:          "#242424",
		Text:          "#ECEDEE",
		TextSecondary: "#9BA1A6",
		Border:        "#2C2C2E",
		Accent:        "#4DB6AC",
		Error:         "#EF5350",
		Success:       "#66BB6A",
		TabBar:        "#1E1E1E",
		StatusBar:     "light-content",
	},
	Shadow: Shadow{
		Color:     "#000000",
		OffsetX:   0,
		OffsetY:   2,
		Opacity:   0.4,
		Radius:    10,
		Elevation: 5,
	},
	Gradient: []string{"#1E3C72", "#2A5298"},
}

// TokensFor returns a copy of the token set for t. Anything but dark is light.
func TokensFor(t models.Theme) Tokens {
	src := lightTokens
	if t == models.ThemeDark {
		src = darkTokens
	}
	src.Gradient = append([]string(nil), src.Gradient...)
	return src
}
