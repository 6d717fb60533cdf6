package cmd

import (
	"context"
	"fmt"

	"github.com/pthm/gtlint/internal/category"
	"github.com/pthm/gtlint/internal/config"
	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/guideline"
	"github.com/pthm/gtlint/internal/reporter"
	"github.com/pthm/gtlint/internal/rulecfg"
	"github.com/pthm/gtlint/internal/stats"
	"github.com/pthm/gtlint/internal/ui"
	"github.com/pthm/gtlint/internal/unidata"
)

type stages struct {
	categorize bool
	validate   bool
}

// runPipeline discovers and reads the corpus, then runs the requested
// engines. Engines only read the corpus once it is loaded.
func runPipeline(ctx context.Context, cfg *config.Config, u *ui.UI, args []string, st stages) (*reporter.Report, error) {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	// Stage 1: Load rule settings
	progress.SetStage(ui.StageLoadSettings)
	opts := rulecfg.ParseOptions{Grammar: cfg.Grammar()}

	var categories, rules *rulecfg.Config
	var err error
	if st.categorize {
		categories, err = rulecfg.LoadSettings(cfg.Settings, rulecfg.Categories, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to load categories: %w", err)
		}
	}
	validate := st.validate && cfg.Guidelines != ""
	if validate {
		rules, err = rulecfg.LoadSettings(cfg.Settings, rulecfg.Guidelines, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to load guidelines: %w", err)
		}
	}

	// Stage 2: Read the corpus
	files, err := corpus.Discover(paths, corpus.DiscoverOptions{Extension: cfg.Extension})
	if err != nil {
		return nil, err
	}
	progress.SetStage(ui.StageReadCorpus)
	progress.SetFileCount(len(files))

	c, err := corpus.Load(ctx, files, corpus.LoadOptions{
		Form:    cfg.NormalForm(),
		Workers: cfg.Workers,
		OnFile:  progress.FileDone,
	})
	if err != nil {
		return nil, err
	}
	rep := reporter.NewReport(c, cfg.NormalForm())

	// Stage 3: Categorize
	if st.categorize {
		progress.SetStage(ui.StageCategorize)
		cat := category.New(unidata.Default())
		rep.Builtin = stats.Summarize(cat.Builtin(c.Index))
		for _, tree := range cat.CustomAll(c.Index, categories, cfg.Categories) {
			rep.Custom = append(rep.Custom, stats.Summarize(tree))
		}
	}

	// Stage 4: Check guidelines
	if validate {
		progress.SetStage(ui.StageValidate)
		progress.SetOperation(cfg.Guidelines)
		v := guideline.New(rules, guideline.Options{PerFile: cfg.PerFile, MatchTimeout: cfg.MatchTimeout})
		rep.Guideline, err = v.Validate(c, cfg.Guidelines)
		if err != nil {
			return nil, err
		}
	}

	// Stop progress before reporting
	progress.Done(nil)
	progress = nil

	if len(files) == 0 {
		u.Warn("no %s files found", cfg.Extension)
	}
	// Document formats keep stdout clean, so skipped files go to stderr
	if u.IsDocument() && len(c.Skipped) > 0 {
		u.Warn("%d files skipped", len(c.Skipped))
		if cfg.Verbose {
			for _, s := range c.Skipped {
				u.Warn("skipped %s: %v", s.Path, s.Err)
			}
		}
	}
	return rep, nil
}

func writeReport(u *ui.UI, cfg *config.Config, rep *reporter.Report) error {
	r, err := reporter.New(cfg.Format, u.Writer, u, reporter.Options{Verbose: cfg.Verbose})
	if err != nil {
		return err
	}
	if err := r.Report(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
