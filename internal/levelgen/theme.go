package levelgen

import (
	"fmt"
	"strings"
)

// Theme is the visual tile set of a level.
type Theme string

const (
	ThemeFruit     Theme = "FRUIT"
	ThemeButterfly Theme = "BUTTERFLY"
	ThemeDrink     Theme = "DRINK"
	ThemeCake      Theme = "CAKE"
)

// Themes lists every theme in selection order.
var Themes = []Theme{ThemeFruit, ThemeButterfly, ThemeDrink, ThemeCake}

func (t Theme) String() string {
	return string(t)
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTheme converts a theme name (case-insensitive) to a Theme.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, s)
	}
	return t, nil
}

// PickTheme draws a theme uniformly.
func PickTheme(rng Rand) Theme {
	return Themes[rng.IntN(len(Themes))]
}
