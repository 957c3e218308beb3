package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	goghthemes "github.com/willyv3/gogh-themes"

	"github.com/willyv3/ghprofile/internal/contrib"
)

// Theme provides all colors for the application.
type Theme struct {
	Name string

	// Base colors
	Background string
	Foreground string
	Subtle     string

	// Primary ANSI colors (0-7)
	Black   string
	Red     string
	Green   string
	Yellow  string
	Blue    string
	Magenta string
	Cyan    string
	White   string

	// Bright ANSI colors (8-15)
	BrightBlack   string
	BrightRed     string
	BrightGreen   string
	BrightYellow  string
	BrightBlue    string
	BrightMagenta string
	BrightCyan    string
	BrightWhite   string

	// Semantic aliases
	Gray   string
	Border string

	// Levels colours contribution cells, indexed by contrib.Level.
	Levels [contrib.Levels]string
}

// LevelColor returns the cell colour for a contribution level.
func (t Theme) LevelColor(l contrib.Level) string {
	if l < 0 || int(l) >= len(t.Levels) {
		return t.Levels[contrib.LevelNone]
	}
	return t.Levels[l]
}

const defaultThemeName = "github"

// githubTheme is GitHub's dark palette with its green contribution scale.
var githubTheme = Theme{
	Name:       defaultThemeName,
	Background: "#0d1117",
	Foreground: "#e6edf3",
	Subtle:     "#161b22",

	Black:   "#484f58",
	Red:     "#ff7b72",
	Green:   "#3fb950",
	Yellow:  "#d29922",
	Blue:    "#58a6ff",
	Magenta: "#bc8cff",
	Cyan:    "#39c5cf",
	White:   "#b1bac4",

	BrightBlack:   "#6e7681",
	BrightRed:     "#ffa198",
	BrightGreen:   "#56d364",
	BrightYellow:  "#e3b341",
	BrightBlue:    "#79c0ff",
	BrightMagenta: "#d2a8ff",
	BrightCyan:    "#56d4dd",
	BrightWhite:   "#ffffff",

	Gray:   "#7d8590",
	Border: "#30363d",

	Levels: [contrib.Levels]string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
}

// themes registry: the built-in github theme plus every gogh theme
var themes = make(map[string]Theme)

// CurrentTheme is the active theme
var CurrentTheme Theme

// currentThemeName tracks the current theme name for cycling
var currentThemeName string

// themeOrder is github first, then the gogh themes alphabetically
var themeOrder []string

// InitTheme loads the registry and activates a theme. A theme file takes
// precedence over the name. On error the github theme stays active.
func InitTheme(name, file string) error {
	loadAllThemes()

	setTheme(defaultThemeName)

	if file != "" {
		yt, err := LoadThemeFromYAML(file)
		if err != nil {
			return err
		}
		theme := yt.ConvertToTheme()
		registerTheme(theme)
		setTheme(theme.Name)
		return nil
	}

	if name == "" {
		return nil
	}
	if _, ok := themes[name]; !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	setTheme(name)
	return nil
}

// loadAllThemes fills the registry from gogh-themes
func loadAllThemes() {
	themes = make(map[string]Theme)
	themes[defaultThemeName] = githubTheme

	for name, gt := range goghthemes.All() {
		theme := Theme{
			Name:       name,
			Background: gt.Background,
			Foreground: gt.Foreground,
			Subtle:     generateShade(gt.Background, 1.3),

			Black:   gt.Black,
			Red:     gt.Red,
			Green:   gt.Green,
			Yellow:  gt.Yellow,
			Blue:    gt.Blue,
			Magenta: gt.Magenta,
			Cyan:    gt.Cyan,
			White:   gt.White,

			BrightBlack:   gt.BrightBlack,
			BrightRed:     gt.BrightRed,
			BrightGreen:   gt.BrightGreen,
			BrightYellow:  gt.BrightYellow,
			BrightBlue:    gt.BrightBlue,
			BrightMagenta: gt.BrightMagenta,
			BrightCyan:    gt.BrightCyan,
			BrightWhite:   gt.BrightWhite,

			Gray:   gt.White,
			Border: gt.BrightBlack,
		}
		theme.Levels = levelScale(theme.Subtle, gt.Green)
		themes[name] = theme
	}

	buildThemeOrder()
}

// levelScale builds the five contribution colours from an empty-cell colour
// and a full-intensity accent.
func levelScale(none, accent string) [contrib.Levels]string {
	return [contrib.Levels]string{
		none,
		generateShade(accent, 0.3),
		generateShade(accent, 0.5),
		generateShade(accent, 0.75),
		accent,
	}
}

func registerTheme(t Theme) {
	if _, exists := themes[t.Name]; !exists {
		themes[t.Name] = t
		buildThemeOrder()
		return
	}
	themes[t.Name] = t
}

// buildThemeOrder creates the cycling order
func buildThemeOrder() {
	themeOrder = make([]string, 0, len(themes))
	for name := range themes {
		if name != defaultThemeName {
			themeOrder = append(themeOrder, name)
		}
	}
	sort.Strings(themeOrder)
	themeOrder = append([]string{defaultThemeName}, themeOrder...)
}

func setTheme(name string) {
	CurrentTheme = themes[name]
	currentThemeName = name
	InitStyles()
}

// NextTheme cycles to the next theme in the rotation
func NextTheme() string {
	if len(themeOrder) == 0 {
		return currentThemeName
	}

	currentIndex := 0
	for i, name := range themeOrder {
		if name == currentThemeName {
			currentIndex = i
			break
		}
	}

	setTheme(themeOrder[(currentIndex+1)%len(themeOrder)])
	return currentThemeName
}

// ThemeNames lists every registered theme in cycling order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// generateShade scales the brightness of a hex colour.
// factor < 1.0 darkens, factor > 1.0 brightens. Invalid input is returned
// unchanged.
func generateShade(hexColor string, factor float64) string {
	hex := strings.TrimPrefix(hexColor, "#")
	if len(hex) != 6 {
		return hexColor
	}

	var rgb [3]int64
	for i := range rgb {
		v, err := strconv.ParseInt(hex[i*2:i*2+2], 16, 64)
		if err != nil {
			return hexColor
		}
		v = int64(float64(v) * factor)
		rgb[i] = min(max(v, 0), 255)
	}

	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
