package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm/gtlint/internal/config"
	"github.com/pthm/gtlint/internal/reporter"
)

// execute runs a fresh command tree, so flag values and their changed
// state never leak between tests
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string][]byte{
		"page1.gt.txt":     []byte("ſchön  Tag\n"),
		"sub/page2.gt.txt": []byte("Zwey Bücher."),
		"broken.gt.txt":    {0xff, 0xfe, 'a'},
		"notes.md":         []byte("ignored"),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestAnalyzeJSON(t *testing.T) {
	dir := writeCorpus(t)
	out, stderr, err := execute(t, "analyze", "-f", "json", "-v", dir)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var doc reporter.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Files != 2 || len(doc.Skipped) != 1 {
		t.Errorf("files = %d, skipped = %+v", doc.Files, doc.Skipped)
	}
	if len(doc.Categories) != 2 || doc.Categories[1].Name != "Fraktur" {
		t.Errorf("categories = %+v", doc.Categories)
	}
	if doc.Guideline == nil || doc.Guideline.Set != "OCRD-1" || doc.Guideline.Total != 2 {
		t.Errorf("guideline = %+v", doc.Guideline)
	}
	if !strings.Contains(stderr, "1 files skipped") || !strings.Contains(stderr, "broken.gt.txt") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestAnalyzeTerminal(t *testing.T) {
	dir := writeCorpus(t)
	out, _, err := execute(t, "analyze", "--guidelines", "", "--categorize", "Punctuation", dir)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"Corpus: 2 files", "overall", "Punctuation", "Stops"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Guideline") {
		t.Error("an empty guideline set must disable checking")
	}
}

func TestAnalyzeLegacySettings(t *testing.T) {
	dir := writeCorpus(t)
	settings := t.TempDir()
	if err := os.WriteFile(filepath.Join(settings, "categories"), []byte("[Mine]\nVowels=a,e,o,\nUmlaut=0x00FC\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "analyze", "-f", "json", "-s", settings, "--legacy-grammar", "-c", "Mine", dir)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var doc reporter.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Categories) != 2 || doc.Categories[1].Name != "Mine" {
		t.Fatalf("categories = %+v", doc.Categories)
	}
	// Settings without a guidelines file check nothing
	if doc.Guideline == nil || doc.Guideline.Found {
		t.Errorf("guideline = %+v", doc.Guideline)
	}
	mine := doc.Categories[1]
	if len(mine.Children) != 2 || mine.Children[1].Name != "Umlaut" || mine.Children[1].Total != 1 {
		t.Errorf("Mine = %+v", mine)
	}
}

func TestCheck(t *testing.T) {
	dir := writeCorpus(t)

	out, _, err := execute(t, "check", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "Found 2 violations of OCRD-1") {
		t.Errorf("output = %s", out)
	}
	if strings.Contains(out, "overall") {
		t.Error("check must not build category trees")
	}

	_, _, err = execute(t, "check", "--strict", dir)
	if !errors.Is(err, ErrViolations) {
		t.Errorf("strict check = %v, want ErrViolations", err)
	}

	_, _, err = execute(t, "check", "--strict", "-g", "OCRD-9", dir)
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("unknown set = %v", err)
	}

	if _, _, err := execute(t, "check", "-g", "", dir); err == nil {
		t.Error("check without a guideline set must fail")
	}
}

func TestCheckPerFile(t *testing.T) {
	dir := writeCorpus(t)
	out, _, err := execute(t, "check", "-f", "json", "--per-file", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var doc reporter.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Guideline.Files) != 1 || !strings.HasSuffix(doc.Guideline.Files[0].File, "page1.gt.txt") {
		t.Errorf("files = %+v", doc.Guideline.Files)
	}
}

func TestRules(t *testing.T) {
	out, _, err := execute(t, "rules", "guidelines", "-f", "json")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	var sets []ruleSetDoc
	if err := json.Unmarshal([]byte(out), &sets); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	var names []string
	for _, s := range sets {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != "OCRD-1,OCRD-2,OCRD-3" {
		t.Errorf("sets = %v", names)
	}
	if sets[0].Rules[0].Predicates[0] != "U+017F" {
		t.Errorf("first predicate = %q", sets[0].Rules[0].Predicates[0])
	}

	out, _, err = execute(t, "rules")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if !strings.Contains(out, "[Fraktur] categories") || !strings.Contains(out, "[OCRD-3] guidelines") {
		t.Errorf("output = %s", out)
	}

	if _, _, err := execute(t, "rules", "bogus"); err == nil {
		t.Error("unknown kind must fail")
	}
}

func TestBrowse(t *testing.T) {
	dir := writeCorpus(t)
	out, _, err := execute(t, "browse", "--print", dir)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if !strings.Contains(out, "overall") || !strings.Contains(out, "LATIN SMALL LETTER LONG S") {
		t.Errorf("output = %s", out)
	}

	if _, _, err := execute(t, "browse", dir); err == nil {
		t.Error("browse without a terminal must fail")
	}
}

func TestInvalidConfiguration(t *testing.T) {
	_, _, err := execute(t, "analyze", "--form", "NFX", t.TempDir())
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}

	if _, _, err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("a missing path must fail")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "gtlint ") {
		t.Errorf("version = %q", out)
	}
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	dir := writeCorpus(t)

	var doc reporter.Document
	for _, set := range []string{"Punctuation", "Fraktur"} {
		out, _, err := execute(t, "analyze", "-f", "json", "-g", "", "-c", set, dir)
		if err != nil {
			t.Fatalf("analyze -c %s: %v", set, err)
		}
		doc = reporter.Document{}
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(doc.Categories) != 2 || doc.Categories[1].Name != set {
			t.Errorf("-c %s: categories = %+v", set, doc.Categories)
		}
	}

	out, _, err := execute(t, "analyze", "-f", "json", "-g", "", dir)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	doc = reporter.Document{}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Categories) != 2 || doc.Categories[1].Name != "Fraktur" {
		t.Errorf("default categories = %+v", doc.Categories)
	}
}
