package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrViolations is returned by check --strict when the corpus breaks the
// guideline set
var ErrViolations = errors.New("guideline violations found")

var strict bool

func newCheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check ground truth against a guideline set",
		Long: `Count violations of a guideline set without building category trees.

With --strict the command fails when any violation is found or the
guideline set is not configured, which suits CI pipelines.

Examples:
  gtlint check data/
  gtlint check --strict --guidelines OCRD-3 --per-file data/`,
		RunE: runCheck,
	}
	c.Flags().BoolVar(&strict, "strict", false, "Exit with an error on any violation")
	return c
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Guidelines == "" {
		return fmt.Errorf("no guideline set selected")
	}
	u := newUI(cmd, cfg)

	rep, err := runPipeline(cmd.Context(), cfg, u, args, stages{validate: true})
	if err != nil {
		return err
	}
	if err := writeReport(u, cfg, rep); err != nil {
		return err
	}

	if !strict {
		return nil
	}
	if !rep.Guideline.Found {
		return fmt.Errorf("guideline set %q is not configured", cfg.Guidelines)
	}
	if n := rep.Violations(); n > 0 {
		return fmt.Errorf("%w: %d in %d rules", ErrViolations, n, len(rep.Guideline.Rules))
	}
	return nil
}
