// Package config assembles the run configuration from defaults, an optional
// YAML file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/rulecfg"
)

// DefaultFile is read from the working directory when no file is given
const DefaultFile = ".gtlint.yaml"

// Environment variables
const (
	EnvSettings   = "GTLINT_SETTINGS"
	EnvForm       = "GTLINT_FORM"
	EnvGuidelines = "GTLINT_GUIDELINES"
	EnvCategories = "GTLINT_CATEGORIES"
	EnvFormat     = "GTLINT_FORMAT"
	EnvExtension  = "GTLINT_EXT"
	EnvWorkers    = "GTLINT_WORKERS"
)

// Formats lists the report formats
var Formats = []string{"terminal", "json", "yaml", "markdown", "html"}

// ErrInvalid is returned by Validate
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of one run
type Config struct {
	// Settings is the directory holding the categories and guidelines
	// files; empty uses the built-in settings
	Settings   string   `yaml:"settings"`
	Form       string   `yaml:"form"`
	Extension  string   `yaml:"extension"`
	Categories []string `yaml:"categories"`
	// Guidelines names the guideline set to check; empty disables checking
	Guidelines string `yaml:"guidelines"`
	Format     string `yaml:"format"`

	Legacy    bool   `yaml:"legacy_grammar"`
	Separator string `yaml:"separator"`
	Delimiter string `yaml:"delimiter"`

	PerFile      bool          `yaml:"per_file"`
	Workers      int           `yaml:"workers"`
	MatchTimeout time.Duration `yaml:"match_timeout"`
	Verbose      bool          `yaml:"verbose"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Form:       string(corpus.FormNFC),
		Extension:  corpus.DefaultExtension,
		Categories: []string{"Fraktur"},
		Guidelines: "OCRD-1",
		Format:     "terminal",
	}
}

// Load returns the defaults overlaid with the YAML file at path and the
// environment, after loading a .env file if one exists. An empty path
// reads DefaultFile when present.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.MergeFile(path); err != nil {
		return nil, err
	}
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile overlays the YAML file at path. A missing file is only an
// error when the path was given explicitly.
func (c *Config) MergeFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads the given env files, ".env" by default, without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays values found through lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSettings); ok {
		c.Settings = v
	}
	if v, ok := lookup(EnvForm); ok {
		c.Form = v
	}
	if v, ok := lookup(EnvGuidelines); ok {
		c.Guidelines = v
	}
	if v, ok := lookup(EnvCategories); ok {
		c.Categories = SplitList(v)
	}
	if v, ok := lookup(EnvFormat); ok {
		c.Format = v
	}
	if v, ok := lookup(EnvExtension); ok {
		c.Extension = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return nil
}

// SplitList splits a comma separated list, dropping empty items
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if _, err := corpus.ParseForm(c.Form); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: unknown format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(Formats, ", "))
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("%w: match timeout must not be negative", ErrInvalid)
	}
	g := c.Grammar()
	if g.Separator == g.Delimiter {
		return fmt.Errorf("%w: separator and delimiter are both %q", ErrInvalid, g.Separator)
	}
	return nil
}

// NormalForm returns the parsed normalization form
func (c *Config) NormalForm() corpus.Form {
	f, err := corpus.ParseForm(c.Form)
	if err != nil {
		return corpus.FormNFC
	}
	return f
}

// Grammar returns the rule grammar. Explicit separator and delimiter
// settings win over the legacy switch.
func (c *Config) Grammar() rulecfg.Grammar {
	g := rulecfg.DefaultGrammar
	if c.Legacy {
		g = rulecfg.LegacyGrammar
	}
	if c.Separator != "" {
		g.Separator = c.Separator
	}
	if c.Delimiter != "" {
		g.Delimiter = c.Delimiter
	}
	return g
}
