package reporter

import (
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/pthm/gtlint/internal/guideline"
	"github.com/pthm/gtlint/internal/stats"
	"github.com/pthm/gtlint/internal/ui"
	"github.com/pthm/gtlint/internal/unidata"
)

// TerminalReporter outputs results to the terminal as indented trees
type TerminalReporter struct {
	w       io.Writer
	styles  *ui.Styles
	verbose bool
}

// NewTerminalReporter creates a new terminal reporter. A nil UI renders
// plain text.
func NewTerminalReporter(w io.Writer, u *ui.UI, verbose bool) *TerminalReporter {
	styles := ui.NewStyles(false)
	if u != nil {
		styles = u.Styles
	}
	return &TerminalReporter{w: w, styles: styles, verbose: verbose}
}

// Report outputs the report to the terminal
func (r *TerminalReporter) Report(rep *Report) error {
	s := r.styles

	fmt.Fprintf(r.w, "%s %d files, %d characters, %d distinct (%s)\n",
		s.Header.Render("Corpus:"), len(rep.Files), rep.Characters, rep.Distinct, rep.Form)
	r.printSkipped(rep)

	if rep.Builtin != nil {
		r.printTree(rep.Builtin)
	}
	for _, tree := range rep.Custom {
		r.printTree(tree)
	}
	if rep.Guideline != nil {
		r.printGuideline(rep.Guideline)
	}
	return nil
}

func (r *TerminalReporter) printSkipped(rep *Report) {
	if len(rep.Skipped) == 0 {
		return
	}
	s := r.styles
	fmt.Fprintln(r.w, s.Warning.Render(fmt.Sprintf("%s %d files skipped", s.IconWarning, len(rep.Skipped))))
	if !r.verbose {
		return
	}
	for _, skip := range rep.Skipped {
		fmt.Fprintf(r.w, "  %s %s\n", skip.Path, s.Subheader.Render(skip.Err.Error()))
	}
}

func (r *TerminalReporter) printTree(tree *stats.Sums) {
	s := r.styles
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s %s\n", s.Header.Render(tree.Name), s.Count.Render(strconv.Itoa(tree.Total)))
	if tree.Total == 0 && len(tree.Children) == 0 {
		fmt.Fprintf(r.w, "%s%s\n", s.TreeLast, s.Subheader.Render("(no characters)"))
		return
	}
	r.printChildren(tree, "")
}

func (r *TerminalReporter) printChildren(parent *stats.Sums, prefix string) {
	s := r.styles

	if parent.IsLeaf() {
		for i, cc := range parent.Counts {
			conn, _ := s.Connector(i == len(parent.Counts)-1)
			fmt.Fprintf(r.w, "%s%s%s %s %s  %s\n",
				prefix, conn,
				DisplayRune(cc.Rune),
				s.Codepoint.Render(Codepoint(cc.Rune)),
				s.Subheader.Render(runeName(cc.Rune)),
				s.Count.Render(strconv.Itoa(cc.Count)))
		}
		return
	}

	for i, child := range parent.Children {
		conn, indent := s.Connector(i == len(parent.Children)-1)
		fmt.Fprintf(r.w, "%s%s%s  %s  %s\n",
			prefix, conn,
			s.Category.Render(child.Name),
			s.Count.Render(strconv.Itoa(child.Total)),
			s.Subheader.Render(fmt.Sprintf("%.1f%%", parent.Share(child.Total))))
		r.printChildren(child, prefix+indent)
	}
}

func (r *TerminalReporter) printGuideline(res *guideline.Result) {
	s := r.styles
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Header.Render("Guideline "+res.Set))

	if !res.Found {
		fmt.Fprintln(r.w, s.Warning.Render(fmt.Sprintf("  %s guideline set %q is not configured", s.IconWarning, res.Set)))
		return
	}

	for _, rr := range res.Rules {
		fmt.Fprintf(r.w, "  %s %s  %s\n",
			s.Error.Render(s.IconError), rr.Name, s.Count.Render(strconv.Itoa(rr.Total)))
		for _, pc := range rr.Patterns {
			fmt.Fprintf(r.w, "      %s  %d\n", s.Codepoint.Render(strconv.Quote(pc.Pattern)), pc.Count)
		}
		for _, cc := range rr.Chars {
			fmt.Fprintf(r.w, "      %s %s %s  %d\n",
				DisplayRune(cc.Rune), s.Codepoint.Render(Codepoint(cc.Rune)),
				s.Subheader.Render(runeName(cc.Rune)), cc.Count)
		}
	}

	if len(res.Files) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render("Per file"))
		for _, fr := range res.Files {
			fmt.Fprintf(r.w, "  %s  %s\n", fr.File, s.Count.Render(strconv.Itoa(fr.Total)))
			for _, v := range fr.Violations {
				fmt.Fprintf(r.w, "      %s %s  %d\n", v.Rule, s.Rule.Render(v.Predicate), v.Count)
			}
		}
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))
	if total := res.Total(); total > 0 {
		fmt.Fprintln(r.w, s.Error.Render(fmt.Sprintf("Found %d violations of %s in %d rules", total, res.Set, len(res.Rules))))
	} else {
		fmt.Fprintln(r.w, s.Success.Render(fmt.Sprintf("%s No violations of %s", s.IconSuccess, res.Set)))
	}
}

// DisplayRune renders r so that invisible and combining characters stay
// recognisable
func DisplayRune(r rune) string {
	switch {
	case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r):
		return "'◌" + string(r) + "'"
	case unicode.IsGraphic(r) && !unicode.IsSpace(r):
		return "'" + string(r) + "'"
	default:
		return strconv.QuoteRuneToASCII(r)
	}
}

func runeName(r rune) string {
	if name := unidata.Lookup(r).Name; name != "" {
		return name
	}
	return unidata.Unnamed
}
