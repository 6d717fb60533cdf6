package rulecfg

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Kind names one of the two settings files
type Kind string

const (
	Categories Kind = "categories"
	Guidelines Kind = "guidelines"
)

//go:embed settings/categories settings/guidelines
var settingsFS embed.FS

// Default returns the built-in settings of the given kind
func Default(kind Kind) (*Config, error) {
	name := path.Join("settings", string(kind))
	f, err := settingsFS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown settings kind %q: %w", kind, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, ParseOptions{Grammar: DefaultGrammar, File: "builtin:" + string(kind)})
}

// Load reads and parses a configuration file.
// A missing file is not an error and yields an empty Config.
func Load(path string, opts ParseOptions) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("open configuration: %w", err)
	}
	defer func() { _ = f.Close() }()

	if opts.File == "" {
		opts.File = path
	}
	cfg, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}

// LoadSettings loads the settings file of the given kind from dir.
// An empty dir selects the built-in settings.
func LoadSettings(dir string, kind Kind, opts ParseOptions) (*Config, error) {
	if dir == "" {
		return Default(kind)
	}
	return Load(filepath.Join(dir, string(kind)), opts)
}
