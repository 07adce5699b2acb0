package config

import "time"

// Base application details
const AppName = "numfield"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "numfield.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Engine
const DefaultHistorySize = 100
const SystemClipboard = true
