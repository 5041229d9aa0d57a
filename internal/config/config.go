// Package config loads xunit settings.
//
// Settings are layered: defaults, then an optional YAML or CUE file, then
// a .env file, then XUNIT_* environment variables. Command-line flags are
// applied last by the CLI. Files of either format are validated against the
// embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Config holds all settings for a harness run.
type Config struct {
	Format   string   `json:"format"`
	Verbose  bool     `json:"verbose"`
	Color    string   `json:"color"`
	Progress bool     `json:"progress"`
	Database string   `json:"database"` // empty disables run history
	Include  []string `json:"include"`  // class name globs; empty means all

	// Source is the file the settings were read from, if any.
	Source string `json:"-"`
}

// fileConfig mirrors Config for strict YAML decoding. Pointers distinguish
// absent keys from zero values.
type fileConfig struct {
	Format   *string  `yaml:"format" json:"format,omitempty"`
	Verbose  *bool    `yaml:"verbose" json:"verbose,omitempty"`
	Color    *string  `yaml:"color" json:"color,omitempty"`
	Progress *bool    `yaml:"progress" json:"progress,omitempty"`
	Database *string  `yaml:"database" json:"database,omitempty"`
	Include  []string `yaml:"include" json:"include,omitempty"`
}

// Error codes for LoadError.
const (
	ErrCodeReadFailed  = "E201" // File could not be read
	ErrCodeParseFailed = "E202" // YAML or CUE syntax error
	ErrCodeSchema      = "E203" // File violates the schema
	ErrCodeUnsupported = "E204" // Unknown file extension
	ErrCodeInvalidEnv  = "E205" // Bad environment override
	ErrCodeInvalid     = "E206" // Invalid merged setting
)

// LoadError describes a configuration problem.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Format:   DefaultFormat,
		Color:    DefaultColor,
		Progress: false,
		Database: DefaultDatabase,
	}
}

// Load builds a Config from defaults, the file at path, the .env file in
// the working directory, and the process environment. An empty path looks
// for DefaultFiles in the working directory and skips the file layer when
// none exists.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		path = findDefault(".")
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := LoadDotEnv(DefaultDotEnv); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findDefault(dir string) string {
	for _, name := range DefaultFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFile overlays the settings in a .yaml, .yml or .cue file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading config: %v", err)}
	}

	ctx := cuecontext.New()
	var file cue.Value

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var fc fileConfig
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", path, err)}
		}
		asJSON, err := json.Marshal(fc)
		if err != nil {
			return &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", path, err)}
		}
		file = ctx.CompileBytes(asJSON, cue.Filename(path))
	case ".cue":
		file = ctx.CompileBytes(data, cue.Filename(path))
	default:
		return &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported config file %s: want .yaml, .yml or .cue", path)}
	}

	if err := file.Err(); err != nil {
		return cueLoadError(ErrCodeParseFailed, err)
	}

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cueLoadError(ErrCodeSchema, err)
	}

	merged := schema.LookupPath(cue.ParsePath("#Config")).Unify(file)
	if err := merged.Validate(cue.Concrete(true)); err != nil {
		return cueLoadError(ErrCodeSchema, err)
	}

	out, err := merged.MarshalJSON()
	if err != nil {
		return cueLoadError(ErrCodeSchema, err)
	}
	if err := json.Unmarshal(out, c); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: err.Error()}
	}

	c.Source = path
	return nil
}

func cueLoadError(code string, err error) *LoadError {
	le := &LoadError{Code: code, Message: cueerrors.Details(err, nil)}
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		le.Pos = positions[0]
	}
	le.Message = strings.TrimSpace(le.Message)
	return le
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("loading %s: %v", path, err)}
	}
	return nil
}

// ApplyEnv overlays XUNIT_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "FORMAT"); ok {
		c.Format = v
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		c.Color = v
	}
	if v, ok := lookup(EnvPrefix + "DATABASE"); ok {
		c.Database = v
	}
	if v, ok := lookup(EnvPrefix + "INCLUDE"); ok {
		c.Include = splitList(v)
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"VERBOSE", &c.Verbose},
		{"PROGRESS", &c.Progress},
	}
	for _, b := range bools {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return &LoadError{Code: ErrCodeInvalidEnv, Message: fmt.Sprintf("%s%s=%q is not a boolean", EnvPrefix, b.name, v)}
		}
		*b.dst = parsed
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the merged settings.
func (c *Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("invalid format %q: must be one of %v", c.Format, ValidFormats)}
	}
	if !slices.Contains(ValidColors, c.Color) {
		return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("invalid color %q: must be one of %v", c.Color, ValidColors)}
	}
	for _, pattern := range c.Include {
		if _, err := path.Match(pattern, ""); err != nil {
			return &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("invalid include pattern %q: %v", pattern, err)}
		}
	}
	return nil
}

// Included reports whether the class passes the include filter.
func (c *Config) Included(class string) bool {
	if len(c.Include) == 0 {
		return true
	}
	for _, pattern := range c.Include {
		if ok, _ := path.Match(pattern, class); ok {
			return true
		}
	}
	return false
}
