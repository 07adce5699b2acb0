// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/numfield/internal/logger"
)

// TomlStyleDef represents a single style definition in the TOML file
type TomlStyleDef struct {
	Fg        *string `toml:"fg"` // Use pointers to detect missing values
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme represents the structure of a theme file
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file. Styles it does not define are
// taken from the built-in theme.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	return decodeTheme(string(data), strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath)))
}

func decodeTheme(data, fallbackName string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme '%s': %w", fallbackName, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", fallbackName, metadata.Undecoded())
	}
	if tomlTheme.Name == "" {
		tomlTheme.Name = fallbackName
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style, len(Dark.Styles)),
	}
	for name, style := range Dark.Styles {
		theme.Styles[name] = style
	}

	baseStyle := Dark.Styles[StyleDefault]
	if def, ok := tomlTheme.Styles[StyleDefault]; ok {
		if baseStyle, err = convertTomlStyle(def, tcell.StyleDefault); err != nil {
			return nil, fmt.Errorf("theme '%s': style 'Default': %w", theme.Name, err)
		}
		theme.Styles[StyleDefault] = baseStyle
	}

	// Other styles inherit from the theme's Default
	for name, def := range tomlTheme.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertTomlStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	logger.Debugf("Loaded theme '%s' (%d styles)", theme.Name, len(theme.Styles))
	return theme, nil
}

// convertTomlStyle converts the TOML definition to a tcell.Style, inheriting from a base
func convertTomlStyle(tomlStyle TomlStyleDef, baseStyle tcell.Style) (tcell.Style, error) {
	style := baseStyle

	if tomlStyle.Fg != nil {
		color, err := parseColorString(*tomlStyle.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *tomlStyle.Fg, err)
		}
		style = style.Foreground(color)
	}
	if tomlStyle.Bg != nil {
		color, err := parseColorString(*tomlStyle.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *tomlStyle.Bg, err)
		}
		style = style.Background(color)
	}

	if tomlStyle.Bold != nil {
		style = style.Bold(*tomlStyle.Bold)
	}
	if tomlStyle.Italic != nil {
		style = style.Italic(*tomlStyle.Italic)
	}
	if tomlStyle.Underline != nil {
		style = style.Underline(*tomlStyle.Underline)
	}
	if tomlStyle.Reverse != nil {
		style = style.Reverse(*tomlStyle.Reverse)
	}
	return style, nil
}

// parseColorString accepts #RRGGBB, the W3C color names tcell knows, "reset"
// and "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
	}
	if c := tcell.GetColor(s); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
