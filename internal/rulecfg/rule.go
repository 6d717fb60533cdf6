package rulecfg

import (
	"fmt"
	"strings"
)

// PredicateKind tags the variant held by a Predicate
type PredicateKind int

const (
	PredicateExact PredicateKind = iota
	PredicateRange
	PredicateName
	PredicateRegex
)

func (k PredicateKind) String() string {
	switch k {
	case PredicateExact:
		return "exact"
	case PredicateRange:
		return "range"
	case PredicateName:
		return "name"
	case PredicateRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// Predicate is a single match test of a rule.
//
// Exact uses Low. Range matches Low <= cp < High. Name and Regex use Token.
type Predicate struct {
	Kind  PredicateKind
	Low   rune
	High  rune
	Token string
}

// Exact returns a predicate matching exactly one codepoint
func Exact(cp rune) Predicate {
	return Predicate{Kind: PredicateExact, Low: cp}
}

// Range returns a half-open codepoint range predicate; bounds are sorted.
func Range(a, b rune) Predicate {
	if b < a {
		a, b = b, a
	}
	return Predicate{Kind: PredicateRange, Low: a, High: b}
}

// NameSubstring returns a predicate matching characters whose name contains token
func NameSubstring(token string) Predicate {
	return Predicate{Kind: PredicateName, Token: token}
}

// Regex returns a predicate holding an uncompiled pattern
func Regex(pattern string) Predicate {
	return Predicate{Kind: PredicateRegex, Token: pattern}
}

// MatchCodepoint reports whether an exact or range predicate covers r.
// Name and regex predicates never match here.
func (p Predicate) MatchCodepoint(r rune) bool {
	switch p.Kind {
	case PredicateExact:
		return r == p.Low
	case PredicateRange:
		return p.Low <= r && r < p.High
	default:
		return false
	}
}

// MatchName reports whether a name predicate's token occurs in name.
// With fold set, the token is compared upper-cased.
func (p Predicate) MatchName(name string, fold bool) bool {
	if p.Kind != PredicateName {
		return false
	}
	token := p.Token
	if fold {
		token = strings.ToUpper(token)
	}
	return strings.Contains(name, token)
}

func (p Predicate) String() string {
	switch p.Kind {
	case PredicateExact:
		return fmt.Sprintf("U+%04X", p.Low)
	case PredicateRange:
		return fmt.Sprintf("U+%04X..U+%04X", p.Low, p.High)
	case PredicateName:
		return "name:" + p.Token
	case PredicateRegex:
		return "regex:" + p.Token
	default:
		return "unknown"
	}
}

// RuleKind selects the evaluation path of a rule
type RuleKind int

const (
	// KindCharacter rules hold exact, range and name predicates
	KindCharacter RuleKind = iota
	// KindRegex rules hold patterns evaluated against whole texts
	KindRegex
)

func (k RuleKind) String() string {
	if k == KindRegex {
		return "regex"
	}
	return "character"
}

// regexMarker in a rule name selects KindRegex
const regexMarker = "REGEX"

// KindForName derives the rule kind from its name, case-insensitively
func KindForName(name string) RuleKind {
	if strings.Contains(strings.ToUpper(name), regexMarker) {
		return KindRegex
	}
	return KindCharacter
}

// Rule is a named, ordered list of predicates
type Rule struct {
	Name       string
	Kind       RuleKind
	Predicates []Predicate
}

// RuleSet is one [section] of a configuration file
type RuleSet struct {
	Name  string
	rules []*Rule
	index map[string]*Rule
}

// NewRuleSet creates an empty rule set
func NewRuleSet(name string) *RuleSet {
	return &RuleSet{
		Name:  name,
		index: make(map[string]*Rule),
	}
}

// Rules returns the rules in the order they were first seen
func (s *RuleSet) Rules() []*Rule {
	if s == nil {
		return nil
	}
	return s.rules
}

// Rule returns the named rule, or nil
func (s *RuleSet) Rule(name string) *Rule {
	if s == nil {
		return nil
	}
	return s.index[name]
}

// Len returns the number of rules
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// ensureRule returns the named rule, creating it on first sight
func (s *RuleSet) ensureRule(name string) *Rule {
	if r, ok := s.index[name]; ok {
		return r
	}
	r := &Rule{Name: name, Kind: KindForName(name)}
	s.index[name] = r
	s.rules = append(s.rules, r)
	return r
}

// Add appends predicates to the named rule, creating it when missing
func (s *RuleSet) Add(name string, preds ...Predicate) *Rule {
	r := s.ensureRule(name)
	r.Predicates = append(r.Predicates, preds...)
	return r
}

// Config is the parsed content of one configuration file
type Config struct {
	sets  map[string]*RuleSet
	order []string
}

// NewConfig creates an empty configuration
func NewConfig() *Config {
	return &Config{sets: make(map[string]*RuleSet)}
}

// Set returns the named rule set and whether it exists
func (c *Config) Set(name string) (*RuleSet, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.sets[name]
	return s, ok
}

// Names returns rule set names in file order
func (c *Config) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Len returns the number of rule sets
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Empty reports whether no configuration was observed
func (c *Config) Empty() bool {
	return c.Len() == 0
}

// EnsureSet returns the named rule set, creating it on first sight
func (c *Config) EnsureSet(name string) *RuleSet {
	if s, ok := c.sets[name]; ok {
		return s
	}
	s := NewRuleSet(name)
	c.sets[name] = s
	c.order = append(c.order, name)
	return s
}
