// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/numfield/internal/logger"
	"github.com/bethropolis/numfield/internal/numeric"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // Embed logger config under [logger] table
	Engine EngineConfig  `toml:"engine"`
	Fields []FieldConfig `toml:"fields"`
	UI     UIConfig      `toml:"ui"`

	undecoded []string
}

// EngineConfig holds settings shared by every field session.
type EngineConfig struct {
	HistorySize int          `toml:"history_size"` // 0 = unbounded
	Defaults    FieldOptions `toml:"defaults"`
}

// FieldConfig describes one numeric field of the form.
type FieldConfig struct {
	Name        string       `toml:"name"`
	Value       string       `toml:"value"`
	OptionsJSON string       `toml:"options_json"`
	Options     FieldOptions `toml:"options"`
}

// FieldOptions is the TOML shape of an option bag. Values stay loosely typed:
// numbers, numeric strings and fail keywords all decode.
type FieldOptions struct {
	Mode     string `toml:"mode"`
	Min      any    `toml:"min"`
	Max      any    `toml:"max"`
	MinFail  any    `toml:"min_fail"`
	MaxFail  any    `toml:"max_fail"`
	Integer  any    `toml:"integer"`
	Decimals any    `toml:"decimals"`
	Length   any    `toml:"length"`
}

// UIConfig holds terminal host settings.
type UIConfig struct {
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusBarHeight int    `toml:"status_bar_height"`
	ThemeFile       string `toml:"theme_file"` // TOML theme, empty for the built-in one
}

// ToOptions converts the table into an engine option bag.
func (o FieldOptions) ToOptions() numeric.Options {
	return numeric.Options{
		Mode:     strings.ToLower(o.Mode),
		Min:      o.Min,
		Max:      o.Max,
		MinFail:  o.MinFail,
		MaxFail:  o.MaxFail,
		Integer:  o.Integer,
		Decimals: o.Decimals,
		Length:   o.Length,
	}
}

// ResolvedOptions returns the field's own option bag: the TOML table merged over
// whatever options_json carries.
func (f FieldConfig) ResolvedOptions() numeric.Options {
	table := f.Options.ToOptions()
	if strings.TrimSpace(f.OptionsJSON) == "" {
		return table
	}
	return numeric.Merge(numeric.ParseOptionsJSON(f.OptionsJSON), table)
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Engine: EngineConfig{
			HistorySize: DefaultHistorySize,
		},
		UI: UIConfig{
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// DefaultFields is the form shown when the config file declares none.
func DefaultFields() []FieldConfig {
	return []FieldConfig{
		{Name: "amount", Options: FieldOptions{Min: -1000, Max: 1000, Decimals: 2, MaxFail: "maxValue"}},
		{Name: "quantity", Options: FieldOptions{Mode: "integer", Min: 0, Integer: 4}},
		{Name: "ratio", Options: FieldOptions{Min: 0, Max: 1, MaxFail: "clear"}},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// It returns the loaded config and an error (nil if file not found or loaded successfully).
func loadFromFile(filePath string, into *Config, verbose bool) (toml.MetaData, bool, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return toml.MetaData{}, false, nil // File not found is not an error here
	}
	if err != nil {
		return toml.MetaData{}, false, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, into)
	if err != nil {
		return metadata, false, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	return metadata, true, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Engine.HistorySize < 0 {
		c.Engine.HistorySize = defaults.Engine.HistorySize
	}
	if c.UI.StatusBarHeight <= 0 {
		c.UI.StatusBarHeight = defaults.UI.StatusBarHeight
	}

	if len(c.Fields) == 0 {
		c.Fields = DefaultFields()
	}
	seen := make(map[string]int, len(c.Fields))
	for i := range c.Fields {
		f := &c.Fields[i]
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			f.Name = fmt.Sprintf("field%d", i+1)
		}
		// names label events and the status bar, keep them distinct
		if n := seen[f.Name]; n > 0 {
			f.Name = fmt.Sprintf("%s#%d", f.Name, n+1)
		}
		seen[f.Name]++
	}
}

// Undecoded returns the config file keys that did not map onto any setting.
// They are reported once the logger exists.
func (c *Config) Undecoded() []string { return c.undecoded }

// Load reads defaults, the file at path (if present) and flag overrides, then
// validates the result. It keeps no global state.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	var err error
	if path != "" {
		var md toml.MetaData
		var found bool
		md, found, err = loadFromFile(path, cfg, false)
		if found {
			for _, k := range md.Undecoded() {
				cfg.undecoded = append(cfg.undecoded, k.String())
			}
		}
	}
	if flags != nil {
		flags.ApplyOverrides(cfg, false)
	}
	cfg.validate()
	return cfg, err
}

// DefaultPath returns ~/.config/numfield/config.toml, or "" if the user config
// directory cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		effectivePath := configFilePath
		if effectivePath == "" {
			effectivePath = DefaultPath()
		}
		loadedConfig, loadErr = Load(effectivePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
