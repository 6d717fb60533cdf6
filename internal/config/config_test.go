package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/rulecfg"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if cfg.Guidelines != "OCRD-1" {
		t.Errorf("Guidelines = %q, want OCRD-1", cfg.Guidelines)
	}
	if !reflect.DeepEqual(cfg.Categories, []string{"Fraktur"}) {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if cfg.NormalForm() != corpus.FormNFC {
		t.Errorf("NormalForm() = %q", cfg.NormalForm())
	}
	if cfg.Grammar() != rulecfg.DefaultGrammar {
		t.Errorf("Grammar() = %+v", cfg.Grammar())
	}
}

func TestMergeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gtlint.yaml")
	content := `settings: ./settings
form: NFD
categories: [Punctuation, Digits]
guidelines: OCRD-2
per_file: true
match_timeout: 2s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := cfg.MergeFile(path); err != nil {
		t.Fatalf("MergeFile: %v", err)
	}

	if cfg.Settings != "./settings" || cfg.Form != "NFD" || cfg.Guidelines != "OCRD-2" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Categories, []string{"Punctuation", "Digits"}) {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if !cfg.PerFile || cfg.MatchTimeout != 2*time.Second {
		t.Errorf("PerFile = %v, MatchTimeout = %v", cfg.PerFile, cfg.MatchTimeout)
	}
	// Unset keys keep their defaults
	if cfg.Format != "terminal" || cfg.Extension != corpus.DefaultExtension {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestMergeFileMissing(t *testing.T) {
	cfg := Defaults()
	if err := cfg.MergeFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("explicit missing file must fail")
	}

	t.Chdir(t.TempDir())
	if err := cfg.MergeFile(""); err != nil {
		t.Errorf("missing default file: %v", err)
	}
}

func TestMergeFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("categories: {"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Defaults().MergeFile(path); err == nil {
		t.Error("invalid YAML must fail")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	err := cfg.ApplyEnv(lookupMap(map[string]string{
		EnvSettings:   "/srv/gt",
		EnvForm:       "nfkc",
		EnvGuidelines: "",
		EnvCategories: "Fraktur, Punctuation,,",
		EnvWorkers:    "3",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Settings != "/srv/gt" || cfg.Workers != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	// An empty value is still set and disables guideline checking
	if cfg.Guidelines != "" {
		t.Errorf("Guidelines = %q, want empty", cfg.Guidelines)
	}
	if !reflect.DeepEqual(cfg.Categories, []string{"Fraktur", "Punctuation"}) {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if cfg.NormalForm() != corpus.FormNFKC {
		t.Errorf("NormalForm() = %q", cfg.NormalForm())
	}

	if err := Defaults().ApplyEnv(lookupMap(map[string]string{EnvWorkers: "many"})); err == nil {
		t.Error("non-numeric workers must fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GTLINT_FORM=NFD\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvForm, "NFKD")
	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	// Variables that are already set win over the file
	if got := os.Getenv(EnvForm); got != "NFKD" {
		t.Errorf("%s = %q, want NFKD", EnvForm, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"form", func(c *Config) { c.Form = "NFX" }},
		{"format", func(c *Config) { c.Format = "xml" }},
		{"workers", func(c *Config) { c.Workers = -1 }},
		{"timeout", func(c *Config) { c.MatchTimeout = -time.Second }},
		{"grammar", func(c *Config) { c.Separator = "|"; c.Delimiter = "|" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestGrammar(t *testing.T) {
	cfg := Defaults()
	cfg.Legacy = true
	if cfg.Grammar() != rulecfg.LegacyGrammar {
		t.Errorf("legacy Grammar() = %+v", cfg.Grammar())
	}
	cfg.Delimiter = ";"
	want := rulecfg.Grammar{Separator: "=", Delimiter: ";"}
	if cfg.Grammar() != want {
		t.Errorf("Grammar() = %+v, want %+v", cfg.Grammar(), want)
	}
}
