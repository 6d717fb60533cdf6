package reporter

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pthm/gtlint/internal/guideline"
	"github.com/pthm/gtlint/internal/stats"
	"github.com/pthm/gtlint/internal/unidata"
)

// MarkdownReporter outputs results as Markdown tables
type MarkdownReporter struct {
	w     io.Writer
	title string
}

// NewMarkdownReporter creates a new Markdown reporter
func NewMarkdownReporter(w io.Writer, title string) *MarkdownReporter {
	return &MarkdownReporter{w: w, title: title}
}

// Report outputs the report as Markdown
func (r *MarkdownReporter) Report(rep *Report) error {
	_, err := io.WriteString(r.w, renderMarkdown(rep, r.title))
	return err
}

func renderMarkdown(rep *Report, title string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Files | Characters | Distinct | Form |\n")
	sb.WriteString("|---:|---:|---:|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %s |\n", len(rep.Files), rep.Characters, rep.Distinct, rep.Form)

	if len(rep.Skipped) > 0 {
		sb.WriteString("\n## Skipped files\n\n")
		for _, s := range rep.Skipped {
			fmt.Fprintf(&sb, "- `%s`: %s\n", s.Path, s.Err)
		}
	}

	if rep.Builtin != nil {
		writeTreeTable(&sb, rep.Builtin)
	}
	for _, tree := range rep.Custom {
		writeTreeTable(&sb, tree)
	}
	if rep.Guideline != nil {
		writeGuideline(&sb, rep.Guideline)
	}
	return sb.String()
}

func writeTreeTable(sb *strings.Builder, tree *stats.Sums) {
	fmt.Fprintf(sb, "\n## Categories: %s\n\n", escapeCell(tree.Name))
	sb.WriteString("| Category | Character | Codepoint | Name | Count | Share |\n")
	sb.WriteString("|---|---|---|---|---:|---:|\n")
	fmt.Fprintf(sb, "| **%s** | | | | %d | 100.0%% |\n", escapeCell(tree.Name), tree.Total)
	writeRows(sb, tree, tree.Total, nil)
}

func writeRows(sb *strings.Builder, parent *stats.Sums, total int, path []string) {
	if parent.IsLeaf() {
		category := escapeCell(strings.Join(path, " / "))
		for _, cc := range parent.Counts {
			fmt.Fprintf(sb, "| %s | %s | %s | %s | %d | %.1f%% |\n",
				category, markdownRune(cc.Rune), Codepoint(cc.Rune),
				escapeCell(runeName(cc.Rune)), cc.Count, share(cc.Count, total))
		}
		return
	}
	for _, child := range parent.Children {
		childPath := append(path[:len(path):len(path)], child.Name)
		fmt.Fprintf(sb, "| %s | | | | %d | %.1f%% |\n",
			escapeCell(strings.Join(childPath, " / ")), child.Total, share(child.Total, total))
		writeRows(sb, child, total, childPath)
	}
}

func writeGuideline(sb *strings.Builder, res *guideline.Result) {
	fmt.Fprintf(sb, "\n## Guideline: %s\n\n", escapeCell(res.Set))
	if !res.Found {
		fmt.Fprintf(sb, "Guideline set `%s` is not configured.\n", res.Set)
		return
	}
	if len(res.Rules) == 0 {
		sb.WriteString("No violations.\n")
		return
	}

	sb.WriteString("| Rule | Match | Count |\n")
	sb.WriteString("|---|---|---:|\n")
	for _, rr := range res.Rules {
		for _, pc := range rr.Patterns {
			fmt.Fprintf(sb, "| %s | `%s` | %d |\n", escapeCell(rr.Name), escapeCell(visibleSpaces(pc.Pattern)), pc.Count)
		}
		for _, cc := range rr.Chars {
			fmt.Fprintf(sb, "| %s | %s %s | %d |\n", escapeCell(rr.Name), markdownRune(cc.Rune), Codepoint(cc.Rune), cc.Count)
		}
	}
	fmt.Fprintf(sb, "| **Total** | | %d |\n", res.Total())

	if len(res.Files) > 0 {
		sb.WriteString("\n### Per file\n\n")
		sb.WriteString("| File | Rule | Predicate | Count |\n")
		sb.WriteString("|---|---|---|---:|\n")
		for _, fr := range res.Files {
			for _, v := range fr.Violations {
				fmt.Fprintf(sb, "| %s | %s | `%s` | %d |\n",
					escapeCell(fr.File), escapeCell(v.Rule), escapeCell(visibleSpaces(v.Predicate)), v.Count)
			}
		}
	}
}

func share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// markdownRune renders r for a table cell, leaving invisible characters
// to their codepoint
func markdownRune(r rune) string {
	switch unidata.Lookup(r).Major() {
	case "Z", "C":
		return ""
	}
	if r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
		return "'\\" + string(r) + "'"
	}
	return DisplayRune(r)
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

// visibleSpaces shows spaces in patterns, which code spans would trim
func visibleSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "␣")
}

// HTMLReporter outputs the Markdown report converted to HTML
type HTMLReporter struct {
	w     io.Writer
	title string
	md    goldmark.Markdown
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(w io.Writer, title string) *HTMLReporter {
	return &HTMLReporter{
		w:     w,
		title: title,
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Report outputs the report as a standalone HTML page
func (r *HTMLReporter) Report(rep *Report) error {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(renderMarkdown(rep, r.title)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	_, err := fmt.Fprintf(r.w, htmlPage, html.EscapeString(r.title), body.String())
	return err
}

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 0.2em 0.6em; }
</style>
</head>
<body>
%s</body>
</html>
`
