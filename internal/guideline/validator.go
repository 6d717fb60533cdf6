// Package guideline scores a corpus against a guideline rule set.
package guideline

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/rulecfg"
	"github.com/pthm/gtlint/internal/unidata"
)

// ErrInvalidPattern indicates a regex rule pattern that does not compile
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError locates a pattern that failed to compile
type PatternError struct {
	Set     string
	Rule    string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("guideline %s, rule %s: %v %q: %v", e.Set, e.Rule, ErrInvalidPattern, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}

// Options controls validation
type Options struct {
	// PerFile enables per-file attribution of violations
	PerFile bool
	// MatchTimeout bounds a single regex scan; zero means no limit
	MatchTimeout time.Duration
}

// Validator evaluates guideline rule sets
type Validator struct {
	cfg   *rulecfg.Config
	opts  Options
	table *unidata.Table
}

// New creates a validator over the given guideline configuration
func New(cfg *rulecfg.Config, opts Options) *Validator {
	return &Validator{cfg: cfg, opts: opts, table: unidata.Default()}
}

// Validate counts violations of the named rule set in c. An unknown set
// yields an empty result with Found unset.
func (v *Validator) Validate(c *corpus.Corpus, name string) (*Result, error) {
	res := &Result{Set: name}
	set, ok := v.cfg.Set(name)
	if !ok {
		return res, nil
	}
	res.Found = true

	var t *tally
	if v.opts.PerFile {
		t = newTally(c.Index.Files())
	}

	for _, rule := range set.Rules() {
		var rr *RuleResult
		switch rule.Kind {
		case rulecfg.KindRegex:
			var err error
			rr, err = v.regexRule(c, name, rule, t)
			if err != nil {
				return nil, err
			}
		default:
			rr = v.charRule(c.Index, rule, t)
		}
		if rr.Total > 0 {
			res.Rules = append(res.Rules, rr)
		}
	}

	res.Files = t.results()
	return res, nil
}

// regexRule counts non-overlapping matches per document. Matches never
// span two documents.
func (v *Validator) regexRule(c *corpus.Corpus, set string, rule *rulecfg.Rule, t *tally) (*RuleResult, error) {
	rr := &RuleResult{Name: rule.Name, Kind: rule.Kind}

	compiled := make([]*regexp2.Regexp, 0, len(rule.Predicates))
	patterns := make([]rulecfg.Predicate, 0, len(rule.Predicates))
	for _, p := range rule.Predicates {
		if p.Kind != rulecfg.PredicateRegex {
			continue
		}
		re, err := regexp2.Compile(p.Token, regexp2.None)
		if err != nil {
			return nil, &PatternError{Set: set, Rule: rule.Name, Pattern: p.Token, Err: err}
		}
		if v.opts.MatchTimeout > 0 {
			re.MatchTimeout = v.opts.MatchTimeout
		}
		compiled = append(compiled, re)
		patterns = append(patterns, p)
	}

	for i, re := range compiled {
		total := 0
		for _, doc := range c.Docs {
			n, err := countMatches(re, doc.Text)
			if err != nil {
				return nil, fmt.Errorf("guideline %s, rule %s: match %q in %s: %w", set, rule.Name, patterns[i].Token, doc.Name, err)
			}
			t.add(doc.Name, rule.Name, patterns[i].String(), n)
			total += n
		}
		if total > 0 {
			rr.Patterns = append(rr.Patterns, PatternCount{Pattern: patterns[i].Token, Count: total})
			rr.Total += total
		}
	}
	return rr, nil
}

func countMatches(re *regexp2.Regexp, text string) (int, error) {
	n := 0
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	return n, err
}

// charRule adds the corpus count of every character matched by a rule
// predicate. A character counts once per rule and is attributed to its
// first matching predicate.
func (v *Validator) charRule(idx *corpus.Index, rule *rulecfg.Rule, t *tally) *RuleResult {
	rr := &RuleResult{Name: rule.Name, Kind: rule.Kind}

	var files []string
	if t != nil {
		files = idx.Files()
	}
	for _, r := range idx.Runes() {
		info := v.table.Lookup(r)
		for _, p := range rule.Predicates {
			if !p.MatchCodepoint(r) && !p.MatchName(info.Compact, true) {
				continue
			}
			n := idx.Count(r)
			rr.Chars = append(rr.Chars, CharCount{Rune: r, Count: n})
			rr.Total += n
			for _, f := range files {
				t.add(f, rule.Name, p.String(), idx.FileCount(f, r))
			}
			break
		}
	}
	return rr
}
