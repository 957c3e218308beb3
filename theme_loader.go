package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLTheme represents the structure of theme YAML files
// These come from terminal color schemes with 16 ANSI colors
type YAMLTheme struct {
	Name       string `yaml:"name"`
	Author     string `yaml:"author"`
	Variant    string `yaml:"variant"` // dark or light
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`

	// 16 ANSI colors (color_01 through color_16)
	Color01 string `yaml:"color_01"` // Black
	Color02 string `yaml:"color_02"` // Red
	Color03 string `yaml:"color_03"` // Green
	Color04 string `yaml:"color_04"` // Yellow
	Color05 string `yaml:"color_05"` // Blue
	Color06 string `yaml:"color_06"` // Magenta
	Color07 string `yaml:"color_07"` // Cyan
	Color08 string `yaml:"color_08"` // White
	Color09 string `yaml:"color_09"` // Bright Black
	Color10 string `yaml:"color_10"` // Bright Red
	Color11 string `yaml:"color_11"` // Bright Green
	Color12 string `yaml:"color_12"` // Bright Yellow
	Color13 string `yaml:"color_13"` // Bright Blue
	Color14 string `yaml:"color_14"` // Bright Magenta
	Color15 string `yaml:"color_15"` // Bright Cyan
	Color16 string `yaml:"color_16"` // Bright White

	// Optional explicit contribution scale, lowest level first.
	Contributions []string `yaml:"contributions"`
}

// ConvertToTheme converts a YAML theme to our internal Theme structure.
// Without an explicit scale the contribution levels are derived from the
// bright green.
func (yt *YAMLTheme) ConvertToTheme() Theme {
	t := Theme{
		Name:       yt.Name,
		Background: yt.Background,
		Foreground: yt.Foreground,
		Subtle:     generateShade(yt.Background, 1.3),

		Black:   yt.Color01,
		Red:     yt.Color02,
		Green:   yt.Color03,
		Yellow:  yt.Color04,
		Blue:    yt.Color05,
		Magenta: yt.Color06,
		Cyan:    yt.Color07,
		White:   yt.Color08,

		BrightBlack:   yt.Color09,
		BrightRed:     yt.Color10,
		BrightGreen:   yt.Color11,
		BrightYellow:  yt.Color12,
		BrightBlue:    yt.Color13,
		BrightMagenta: yt.Color14,
		BrightCyan:    yt.Color15,
		BrightWhite:   yt.Color16,

		Gray:   yt.Color08,
		Border: yt.Color09,
	}

	t.Levels = levelScale(t.Subtle, yt.Color11)
	if len(yt.Contributions) == len(t.Levels) {
		copy(t.Levels[:], yt.Contributions)
	}
	return t
}

// LoadThemeFromYAML loads a single YAML theme file. A theme without a name
// is named after its file.
func LoadThemeFromYAML(filePath string) (*YAMLTheme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var yamlTheme YAMLTheme
	if err := yaml.Unmarshal(data, &yamlTheme); err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", filePath, err)
	}
	if yamlTheme.Background == "" || yamlTheme.Foreground == "" {
		return nil, fmt.Errorf("theme %s: background and foreground are required", filePath)
	}

	if yamlTheme.Name == "" {
		base := filepath.Base(filePath)
		yamlTheme.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &yamlTheme, nil
}
