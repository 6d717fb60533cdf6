package reporter

import (
	"fmt"
	"io"

	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/guideline"
	"github.com/pthm/gtlint/internal/stats"
	"github.com/pthm/gtlint/internal/ui"
)

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the analysis results
	Report(r *Report) error
}

// Report holds everything one analysis run produced
type Report struct {
	Files   []string
	Skipped []corpus.Skip
	Form    corpus.Form
	// Characters and Distinct describe the whole corpus
	Characters int
	Distinct   int
	// Builtin is nil when only guidelines were checked
	Builtin *stats.Sums
	Custom  []*stats.Sums
	// Guideline is nil when guideline checking is disabled
	Guideline *guideline.Result
}

// NewReport collects the corpus figures of a run
func NewReport(c *corpus.Corpus, form corpus.Form) *Report {
	r := &Report{
		Skipped:    c.Skipped,
		Form:       form,
		Characters: c.Index.Total(),
		Distinct:   c.Index.Len(),
	}
	for _, doc := range c.Docs {
		r.Files = append(r.Files, doc.Name)
	}
	return r
}

// Violations returns the guideline violation count, zero when disabled
func (r *Report) Violations() int {
	if r.Guideline == nil {
		return 0
	}
	return r.Guideline.Total()
}

// Options controls reporter construction
type Options struct {
	// Verbose lists skipped files individually
	Verbose bool
	// Title is used by document formats
	Title string
}

// New returns the reporter for format
func New(format string, w io.Writer, u *ui.UI, opts Options) (Reporter, error) {
	if opts.Title == "" {
		opts.Title = "Ground truth report"
	}
	switch format {
	case "", "terminal":
		return NewTerminalReporter(w, u, opts.Verbose), nil
	case "json":
		return NewJSONReporter(w), nil
	case "yaml":
		return NewYAMLReporter(w), nil
	case "markdown":
		return NewMarkdownReporter(w, opts.Title), nil
	case "html":
		return NewHTMLReporter(w, opts.Title), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
