// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/numfield/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	HistorySize     *int
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	DebugLog        *bool
	SystemClipboard *bool

	fs *flag.FlagSet
}

// DefineFlags sets up the command-line flags on fs and associates them with the Flags struct fields.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.HistorySize = fs.Int("history", -1, "Undo history entries per field, 0 for unbounded - Overrides config file") // Use -1 to indicate unset
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
}

// ParseFlags defines the flags on the default command line and parses it.
// It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(flag.CommandLine)
	flag.Parse()
	return flag.Args()
}

// Parse defines the flags on fs and parses args into it.
func (f *Flags) Parse(fs *flag.FlagSet, args []string) error {
	f.DefineFlags(fs)
	return fs.Parse(args)
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid
		case "history":
			if *f.HistorySize >= 0 {
				cfg.Engine.HistorySize = *f.HistorySize // Only override if non-negative
			}
		case "system-clipboard":
			cfg.UI.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			if tags := splitCommaList(*f.EnableTags); tags != nil {
				cfg.Logger.EnabledTags = tags
			}
		case "log-disable-tags":
			if tags := splitCommaList(*f.DisableTags); tags != nil {
				cfg.Logger.DisabledTags = tags
			}
		case "log-packages":
			if pkgs := splitCommaList(*f.EnablePkgs); pkgs != nil {
				cfg.Logger.EnabledPackages = pkgs
			}
		case "log-disable-packages":
			if pkgs := splitCommaList(*f.DisablePkgs); pkgs != nil {
				cfg.Logger.DisabledPackages = pkgs
			}
		}
	})
}

// Helper function to split comma-separated list
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
