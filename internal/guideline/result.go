package guideline

import (
	"github.com/pthm/gtlint/internal/rulecfg"
)

// PatternCount is the number of matches of one regex pattern
type PatternCount struct {
	Pattern string
	Count   int
}

// CharCount is the number of occurrences of one offending character
type CharCount struct {
	Rune  rune
	Count int
}

// RuleResult holds the violations of one rule. Regex rules fill Patterns,
// character rules fill Chars; zero counts are never recorded.
type RuleResult struct {
	Name     string
	Kind     rulecfg.RuleKind
	Patterns []PatternCount
	Chars    []CharCount
	Total    int
}

// Violation attributes a count in one file to a rule predicate
type Violation struct {
	Rule      string
	Predicate string
	Count     int
}

// FileResult lists the violations found in one file
type FileResult struct {
	File       string
	Violations []Violation
	Total      int
}

// Result is the outcome of validating a corpus against one rule set
type Result struct {
	Set string
	// Found is false when the rule set is not configured
	Found bool
	Rules []*RuleResult
	// Files is only filled when per-file attribution is enabled
	Files []*FileResult
}

// Total returns the number of violations over all rules
func (r *Result) Total() int {
	total := 0
	for _, rr := range r.Rules {
		total += rr.Total
	}
	return total
}

// Rule returns the result of the named rule, or nil when it found nothing
func (r *Result) Rule(name string) *RuleResult {
	for _, rr := range r.Rules {
		if rr.Name == name {
			return rr
		}
	}
	return nil
}

// File returns the per-file result of the named file, or nil
func (r *Result) File(name string) *FileResult {
	for _, fr := range r.Files {
		if fr.File == name {
			return fr
		}
	}
	return nil
}

// tally accumulates per-file violations keyed by (rule, predicate)
type tally struct {
	files []*FileResult
	index map[string]*FileResult
	pos   map[string]map[[2]string]int
}

func newTally(files []string) *tally {
	t := &tally{
		index: make(map[string]*FileResult, len(files)),
		pos:   make(map[string]map[[2]string]int, len(files)),
	}
	for _, f := range files {
		t.file(f)
	}
	return t
}

func (t *tally) file(name string) *FileResult {
	if fr, ok := t.index[name]; ok {
		return fr
	}
	fr := &FileResult{File: name}
	t.index[name] = fr
	t.pos[name] = make(map[[2]string]int)
	t.files = append(t.files, fr)
	return fr
}

func (t *tally) add(file, rule, predicate string, n int) {
	if t == nil || n == 0 {
		return
	}
	fr := t.file(file)
	key := [2]string{rule, predicate}
	if i, ok := t.pos[file][key]; ok {
		fr.Violations[i].Count += n
	} else {
		t.pos[file][key] = len(fr.Violations)
		fr.Violations = append(fr.Violations, Violation{Rule: rule, Predicate: predicate, Count: n})
	}
	fr.Total += n
}

// results drops files without violations
func (t *tally) results() []*FileResult {
	if t == nil {
		return nil
	}
	out := make([]*FileResult, 0, len(t.files))
	for _, fr := range t.files {
		if fr.Total > 0 {
			out = append(out, fr)
		}
	}
	return out
}
