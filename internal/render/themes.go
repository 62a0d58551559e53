package render

import (
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
)

type itermEntry struct {
	Key   string
	Color color.Color
}

// iterm emits the plist keys in the sorted order iTerm2 itself writes.
func (r *Renderer) iterm(c map[string]color.Color) ([]byte, error) {
	entries := []itermEntry{
		{"Background Color", c[schema.RoleBackground]},
		{"Bold Color", c[schema.RoleForeground]},
		{"Cursor Color", c[schema.RoleForeground]},
		{"Cursor Text Color", c[schema.RoleBackground]},
		{"Foreground Color", c[schema.RoleForeground]},
		{"Link Color", c[schema.RoleLink]},
		{"Selected Text Color", c[schema.RoleSelectedText]},
		{"Selection Color", c[schema.RoleSelected]},
	}
	return r.execute("itermcolors", entries)
}

func (r *Renderer) hyper(c map[string]color.Color) ([]byte, error) {
	return r.execute("hyper", struct {
		Background color.Color
		Foreground color.Color
		Selected   color.Color
	}{
		Background: c[schema.RoleBackground],
		Foreground: c[schema.RoleForeground],
		Selected:   c[schema.RoleSelected],
	})
}

type warpTheme struct {
	Name           string             `yaml:"name"`
	Accent         string             `yaml:"accent"`
	Background     string             `yaml:"background"`
	Foreground     string             `yaml:"foreground"`
	Details        string             `yaml:"details"`
	TerminalColors warpTerminalColors `yaml:"terminal_colors"`
}

type warpTerminalColors struct {
	Normal warpANSI `yaml:"normal"`
	Bright warpANSI `yaml:"bright"`
}

type warpANSI struct {
	Black   string `yaml:"black"`
	Red     string `yaml:"red"`
	Green   string `yaml:"green"`
	Yellow  string `yaml:"yellow"`
	Blue    string `yaml:"blue"`
	Magenta string `yaml:"magenta"`
	Cyan    string `yaml:"cyan"`
	White   string `yaml:"white"`
}

var warpStandardColors = warpTerminalColors{
	Normal: warpANSI{
		Black:   "#000000",
		Red:     "#cd3131",
		Green:   "#0dbc79",
		Yellow:  "#e5e510",
		Blue:    "#2472c8",
		Magenta: "#bc3fbc",
		Cyan:    "#11a8cd",
		White:   "#e5e5e5",
	},
	Bright: warpANSI{
		Black:   "#666666",
		Red:     "#f14c4c",
		Green:   "#23d18b",
		Yellow:  "#f5f543",
		Blue:    "#3b8eea",
		Magenta: "#d670d6",
		Cyan:    "#29b8db",
		White:   "#e5e5e5",
	},
}

// warp drops alpha: Warp themes only accept #rrggbb.
func warp(c map[string]color.Color) ([]byte, error) {
	bg := c[schema.RoleBackground]
	details := "lighter"
	if color.IsDark(bg) {
		details = "darker"
	}
	return yaml.Marshal(warpTheme{
		Name:           "colorterm",
		Accent:         c[schema.RoleAccent].Hex(),
		Background:     bg.Hex(),
		Foreground:     c[schema.RoleForeground].Hex(),
		Details:        details,
		TerminalColors: warpStandardColors,
	})
}
