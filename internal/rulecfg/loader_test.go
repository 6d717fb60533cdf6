package rulecfg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	categories, err := Default(Categories)
	if err != nil {
		t.Fatalf("Default(categories): %v", err)
	}
	if _, ok := categories.Set("Fraktur"); !ok {
		t.Error("built-in categories lack Fraktur")
	}

	guidelines, err := Default(Guidelines)
	if err != nil {
		t.Fatalf("Default(guidelines): %v", err)
	}
	for _, name := range []string{"OCRD-1", "OCRD-2", "OCRD-3"} {
		set, ok := guidelines.Set(name)
		if !ok {
			t.Errorf("built-in guidelines lack %s", name)
			continue
		}
		if set.Len() == 0 {
			t.Errorf("%s has no rules", name)
		}
	}

	set, _ := guidelines.Set("OCRD-1")
	rule := set.Rule("DoubleSpaceREGEX")
	if rule == nil || rule.Kind != KindRegex || rule.Predicates[0].Token != "  +" {
		t.Errorf("OCRD-1 DoubleSpaceREGEX = %+v", rule)
	}
}

func TestDefaultUnknownKind(t *testing.T) {
	if _, err := Default(Kind("nope")); err == nil {
		t.Error("Default(nope) succeeded, want error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "guidelines"), ParseOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Empty() {
		t.Errorf("missing file gave %d sets, want none", cfg.Len())
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	src := "[Mine]\nVowels==a||e||i||o||u\n"
	if err := os.WriteFile(filepath.Join(dir, "categories"), []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadSettings(dir, Categories, ParseOptions{})
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	set, ok := cfg.Set("Mine")
	if !ok || len(set.Rule("Vowels").Predicates) != 5 {
		t.Errorf("Mine = %+v", set)
	}

	builtin, err := LoadSettings("", Categories, ParseOptions{})
	if err != nil {
		t.Fatalf("LoadSettings(builtin): %v", err)
	}
	if _, ok := builtin.Set("Fraktur"); !ok {
		t.Error("empty dir must select built-in settings")
	}
}

func TestLoadReportsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guidelines")
	if err := os.WriteFile(path, []byte("[A]\nX==1-2-3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(path, ParseOptions{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.File != path {
		t.Errorf("File = %q, want %q", pe.File, path)
	}
}
