package config

// Default configuration values.
const (
	DefaultFormat   = "text"
	DefaultColor    = ColorAuto
	DefaultDatabase = ".xunit/history.db"
	DefaultDotEnv   = ".env"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EnvPrefix prefixes every environment override, e.g. XUNIT_FORMAT.
const EnvPrefix = "XUNIT_"

// DefaultFiles are tried in order when no config file is named.
var DefaultFiles = []string{"xunit.yaml", "xunit.yml", "xunit.cue"}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidColors defines the allowed color modes.
var ValidColors = []string{ColorAuto, ColorAlways, ColorNever}
