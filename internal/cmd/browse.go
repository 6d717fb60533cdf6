package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/gtlint/internal/stats"
	"github.com/pthm/gtlint/internal/ui"
)

var browsePrint bool

func newBrowseCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "browse [paths...]",
		Short: "Interactive view of the category trees",
		Long: `Displays the built-in and custom category trees of a corpus as an
interactive, collapsible tree.

Controls:
  ↑/k, ↓/j    Navigate up/down
  ←/h, →/l    Collapse/expand nodes
  Enter/Space Toggle expand/collapse
  e           Expand all
  c           Toggle character rows
  p           Toggle percentages
  q           Quit

Examples:
  gtlint browse data/
  gtlint browse --print --categorize Punctuation data/`,
		RunE: runBrowse,
	}
	c.Flags().BoolVarP(&browsePrint, "print", "p", false, "Print the expanded tree instead of interactive mode")
	return c
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	u := newUI(cmd, cfg)

	// Check if interactive mode is available (unless --print is used)
	if !browsePrint && !u.IsInteractive() {
		return fmt.Errorf("browse command requires an interactive terminal (TTY). Use --print for non-interactive output")
	}

	rep, err := runPipeline(cmd.Context(), cfg, u, args, stages{categorize: true})
	if err != nil {
		return err
	}
	trees := append([]*stats.Sums{rep.Builtin}, rep.Custom...)

	if browsePrint {
		m := ui.NewTreeModel(trees, u.Styles)
		m.ExpandAll()
		fmt.Fprint(u.Writer, m.Render())
		return nil
	}
	if err := ui.RunBrowser(trees, u.Styles); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
