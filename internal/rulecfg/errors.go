package rulecfg

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed is the root of every grammar violation reported by Parse.
var ErrMalformed = errors.New("malformed configuration")

// Sentinel errors wrapped by ParseError
var (
	// ErrMalformedRange indicates a hyphenated token that is not "low-high".
	ErrMalformedRange = fmt.Errorf("%w: malformed range", ErrMalformed)
	// ErrMalformedNumber indicates a numeric or hex token with bad digits or out of range.
	ErrMalformedNumber = fmt.Errorf("%w: malformed number", ErrMalformed)
	// ErrMalformedSection indicates an unterminated or empty [section] header.
	ErrMalformedSection = fmt.Errorf("%w: malformed section header", ErrMalformed)
	// ErrOrphanEntry indicates a value line with no enclosing section or rule.
	ErrOrphanEntry = fmt.Errorf("%w: entry outside of a section or rule", ErrMalformed)
	// ErrEmptyRuleName indicates a separator line with nothing before the separator.
	ErrEmptyRuleName = fmt.Errorf("%w: empty rule name", ErrMalformed)
)

// ParseError locates a grammar violation in a configuration source
type ParseError struct {
	File  string
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	loc := "line " + strconv.Itoa(e.Line)
	if e.File != "" {
		loc = e.File + ":" + strconv.Itoa(e.Line)
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: %v: %q", loc, e.Err, e.Token)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
