package rulecfg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Grammar defines the rule separator and value delimiter tokens
type Grammar struct {
	Separator string `yaml:"separator"`
	Delimiter string `yaml:"delimiter"`
}

var (
	// DefaultGrammar is used by current settings files: Name==a||b
	DefaultGrammar = Grammar{Separator: "==", Delimiter: "||"}
	// LegacyGrammar is used by early settings files: Name=a,b
	LegacyGrammar = Grammar{Separator: "=", Delimiter: ","}
)

// ParseOptions controls Parse
type ParseOptions struct {
	Grammar Grammar
	// File is only used to locate errors
	File string
}

func (o *ParseOptions) applyDefaults() {
	if o.Grammar.Separator == "" {
		o.Grammar.Separator = DefaultGrammar.Separator
	}
	if o.Grammar.Delimiter == "" {
		o.Grammar.Delimiter = DefaultGrammar.Delimiter
	}
}

// Parse reads a line-oriented configuration.
//
// Semantics:
// - blank lines and lines starting with "#" are ignored
// - "[Name]" opens a rule set
// - "Rule<sep>values" introduces a rule; following lines without a separator continue it
// - values are split on the delimiter and converted to predicates
//
// Input without at least one section and one rule yields an empty Config.
func Parse(r io.Reader, opts ParseOptions) (*Config, error) {
	opts.applyDefaults()

	p := &parser{
		opts: opts,
		cfg:  NewConfig(),
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		p.line++
		if err := p.parseLine(s.Text()); err != nil {
			return nil, err
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan configuration: %w", err)
	}

	if !p.sawRule {
		return NewConfig(), nil
	}
	return p.cfg, nil
}

// ParseString parses configuration from a string
func ParseString(src string, opts ParseOptions) (*Config, error) {
	return Parse(strings.NewReader(src), opts)
}

type parser struct {
	opts    ParseOptions
	cfg     *Config
	set     *RuleSet
	rule    *Rule
	line    int
	sawRule bool
}

func (p *parser) fail(token string, err error) error {
	return &ParseError{File: p.opts.File, Line: p.line, Token: token, Err: err}
}

func (p *parser) parseLine(raw string) error {
	line := p.trimLine(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if strings.HasPrefix(line, "[") {
		if len(line) < 3 || !strings.HasSuffix(line, "]") {
			return p.fail(line, ErrMalformedSection)
		}
		name := strings.TrimSpace(line[1 : len(line)-1])
		if name == "" {
			return p.fail(line, ErrMalformedSection)
		}
		p.set = p.cfg.EnsureSet(name)
		p.rule = nil
		return nil
	}

	if p.set == nil {
		return p.fail(line, ErrOrphanEntry)
	}

	value := line
	if idx := strings.Index(line, p.opts.Grammar.Separator); idx >= 0 {
		name := stripSpace(line[:idx])
		if name == "" {
			return p.fail(line, ErrEmptyRuleName)
		}
		p.rule = p.set.ensureRule(name)
		p.sawRule = true
		value = line[idx+len(p.opts.Grammar.Separator):]
	} else if p.rule == nil {
		return p.fail(line, ErrOrphanEntry)
	}
	if p.rule.Kind == KindRegex {
		value = p.regexValue(raw, value != line)
	}

	for _, tok := range strings.Split(value, p.opts.Grammar.Delimiter) {
		if p.rule.Kind == KindRegex {
			if tok != "" {
				p.rule.Predicates = append(p.rule.Predicates, Regex(tok))
			}
			continue
		}

		tok = stripSpace(tok)
		if tok == "" {
			continue
		}
		pred, err := ParseToken(tok)
		if err != nil {
			return p.fail(tok, err)
		}
		p.rule.Predicates = append(p.rule.Predicates, pred)
	}
	return nil
}

// regexValue returns the patterns part of a raw regex rule line. Patterns
// keep trailing whitespace; only indentation and padding after a dangling
// delimiter are dropped.
func (p *parser) regexValue(raw string, hasName bool) string {
	sep, d := p.opts.Grammar.Separator, p.opts.Grammar.Delimiter
	value := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if hasName {
		value = value[strings.Index(value, sep)+len(sep):]
	} else {
		value = strings.TrimPrefix(value, d)
	}
	if t := strings.TrimRightFunc(value, unicode.IsSpace); strings.HasSuffix(t, d) || t == "" {
		value = t
	}
	return value
}

// trimLine strips surrounding whitespace and dangling delimiters
func (p *parser) trimLine(raw string) string {
	d := p.opts.Grammar.Delimiter
	line := strings.TrimSpace(raw)
	for {
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, d), d))
		if trimmed == line {
			return line
		}
		line = trimmed
	}
}

// ParseToken converts one whitespace-free value token of a character rule
// into a predicate.
//
// "-" alone is the literal hyphen-minus. Every other token containing "-"
// must be a numeric "low-high" range. Digit-only tokens are decimal
// codepoints, "0x" tokens hex codepoints, longer tokens name substrings and
// single characters their own codepoint.
func ParseToken(tok string) (Predicate, error) {
	if tok == "-" {
		return Exact('-'), nil
	}

	if strings.Contains(tok, "-") {
		parts := strings.Split(tok, "-")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Predicate{}, ErrMalformedRange
		}
		lo, err := parseNumber(parts[0])
		if err != nil {
			return Predicate{}, fmt.Errorf("%w: bound %q", ErrMalformedRange, parts[0])
		}
		hi, err := parseNumber(parts[1])
		if err != nil {
			return Predicate{}, fmt.Errorf("%w: bound %q", ErrMalformedRange, parts[1])
		}
		return Range(lo, hi), nil
	}

	if isDecimal(tok) || hasHexPrefix(tok) {
		cp, err := parseNumber(tok)
		if err != nil {
			return Predicate{}, err
		}
		return Exact(cp), nil
	}

	if utf8.RuneCountInString(tok) > 1 {
		return NameSubstring(tok), nil
	}

	r, _ := utf8.DecodeRuneInString(tok)
	return Exact(r), nil
}

// parseNumber parses a decimal or 0x-prefixed hex codepoint.
// The exclusive upper bound of the codespace is accepted for range ends.
func parseNumber(s string) (rune, error) {
	base := 10
	digits := s
	if hasHexPrefix(s) {
		base = 16
		digits = s[2:]
	} else if !isDecimal(s) {
		return 0, ErrMalformedNumber
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil || v > unicode.MaxRune+1 {
		return 0, ErrMalformedNumber
	}
	return rune(v), nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// stripSpace removes all whitespace
func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
