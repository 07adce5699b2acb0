// cmd/numfield/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/numfield/internal/app"
	"github.com/bethropolis/numfield/internal/config"
	"github.com/bethropolis/numfield/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	flags.ParseFlags()
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}
	logger.SetFilterDebug(*flags.DebugLog)

	cfgPath := *flags.ConfigFilePath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, cfgErr := config.LoadConfig(cfgPath, &flags)
	if cfg == nil {
		stlog.Fatalf("Failed to load configuration: %v", cfgErr)
	}

	// --- Logger Initialization ---
	out, closeLog, err := openLog(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("%v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, out)

	logger.Infof("Starting %s %s...", config.AppName, version)
	if cfgErr != nil {
		logger.Errorf("Config: %v (continuing with defaults)", cfgErr)
	}
	if keys := cfg.Undecoded(); len(keys) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", cfgPath, keys)
	}
	logger.Debugf("Config file: %s, %d field(s), history %d", cfgPath, len(cfg.Fields), cfg.Engine.HistorySize)

	// --- Create and Run App ---
	numApp, err := app.NewApp(cfg, cfgPath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		closeLog()
		os.Exit(1)
	}
	if err := numApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}

// openLog resolves the log destination: "-" is stderr, empty is the default
// file in the working directory.
func openLog(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		path = config.DefaultLogFileName
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
