package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/gtlint/internal/config"
	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/ui"
)

var (
	// Global flags
	verbose       bool
	format        string
	configPath    string
	settingsDir   string
	form          string
	extension     string
	categorize    []string
	guidelines    string
	legacyGrammar bool
	perFile       bool
	workers       int
)

// NewRootCmd builds the gtlint command tree. Each call binds fresh flag
// sets to the package flag variables.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gtlint",
		Short: "Character statistics and guideline checks for OCR ground truth",
		Long: `gtlint analyses corpora of OCR ground truth text files.

It files every distinct character into Unicode categories, applies
custom categories from a settings file, and counts violations of a
named set of transcription guidelines.

Settings are read from a directory holding "categories" and
"guidelines" files. Without a settings directory the built-in
Fraktur, Punctuation and OCRD-1..3 sets are used.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "List skipped files")
	pf.StringVarP(&format, "format", "f", "terminal", "Output format ("+strings.Join(config.Formats, ", ")+")")
	pf.StringVar(&configPath, "config", "", "Configuration file (default "+config.DefaultFile+" if present)")
	pf.StringVarP(&settingsDir, "settings", "s", "", "Directory with categories and guidelines files")
	pf.StringVar(&form, "form", string(corpus.FormNFC), "Unicode normalization form (NFC, NFD, NFKC, NFKD, none)")
	pf.StringVar(&extension, "ext", corpus.DefaultExtension, "Extension of ground truth files")
	pf.StringSliceVarP(&categorize, "categorize", "c", []string{"Fraktur"}, "Custom category sets to apply")
	pf.StringVarP(&guidelines, "guidelines", "g", "OCRD-1", "Guideline set to check, empty to disable")
	pf.BoolVar(&legacyGrammar, "legacy-grammar", false, "Parse settings with the legacy Name=a,b grammar")
	pf.BoolVar(&perFile, "per-file", false, "Attribute guideline violations to files")
	pf.IntVar(&workers, "workers", 0, "Concurrent file reads (default GOMAXPROCS)")

	root.AddCommand(
		newAnalyzeCmd(),
		newCheckCmd(),
		newRulesCmd(),
		newBrowseCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves the run configuration. Flags override the file and
// environment only when they were set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("settings") {
		cfg.Settings = settingsDir
	}
	if flags.Changed("form") {
		cfg.Form = form
	}
	if flags.Changed("ext") {
		cfg.Extension = extension
	}
	if flags.Changed("categorize") {
		cfg.Categories = categorize
	}
	if flags.Changed("guidelines") {
		cfg.Guidelines = guidelines
	}
	if flags.Changed("legacy-grammar") {
		cfg.Legacy = legacyGrammar
	}
	if flags.Changed("per-file") {
		cfg.PerFile = perFile
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newUI(cmd *cobra.Command, cfg *config.Config) *ui.UI {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Format)
}
