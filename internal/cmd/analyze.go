package cmd

import (
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Categorize the characters of a ground truth corpus",
		Long: `Count every character of the ground truth files, file it into the
built-in Unicode category tree and the selected custom categories, and
check the corpus against a guideline set.

Directories are searched recursively for files with the configured
extension.

Examples:
  gtlint analyze data/
  gtlint analyze --categorize Fraktur,Punctuation --guidelines OCRD-2 data/
  gtlint analyze --format html data/ > report.html`,
		Aliases: []string{"analyse"},
		RunE:    runAnalyze,
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	u := newUI(cmd, cfg)

	rep, err := runPipeline(cmd.Context(), cfg, u, args, stages{categorize: true, validate: true})
	if err != nil {
		return err
	}
	return writeReport(u, cfg, rep)
}
