// Package unidata answers the Unicode character database questions the
// categorizer and validator ask: formal name and general category.
package unidata

import (
	"fmt"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/runenames"
)

// DefaultCacheSize is the number of characters kept by the default table
const DefaultCacheSize = 4096

// Unassigned is the general category of characters in no table
const Unassigned = "Cn"

// Unnamed is the subcategory of characters without a formal name
const Unnamed = "<unnamed>"

// Info describes one character
type Info struct {
	Rune rune
	// Name is the formal Unicode name, empty when the character has none
	Name string
	// Compact is Name with spaces removed, used for substring rules
	Compact string
	// Category is the two-letter general category, e.g. "Lu"
	Category string
}

// Major returns the one-letter major class of the category
func (i Info) Major() string {
	return i.Category[:1]
}

// Minor returns the second letter of the category
func (i Info) Minor() string {
	return i.Category[1:]
}

// Subcategory returns the first word of the name, the coarse label used
// below the major class of the built-in tree.
func (i Info) Subcategory() string {
	if i.Name == "" {
		return Unnamed
	}
	if idx := strings.IndexByte(i.Name, ' '); idx >= 0 {
		return i.Name[:idx]
	}
	return i.Name
}

// categories are the assigned general categories. Cn is the fallback and
// aggregate tables such as LC are left out so letters keep Lu or Ll.
var categories = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Cc", unicode.Cc}, {"Cf", unicode.Cf}, {"Co", unicode.Co}, {"Cs", unicode.Cs},
	{"Ll", unicode.Ll}, {"Lm", unicode.Lm}, {"Lo", unicode.Lo}, {"Lt", unicode.Lt}, {"Lu", unicode.Lu},
	{"Mc", unicode.Mc}, {"Me", unicode.Me}, {"Mn", unicode.Mn},
	{"Nd", unicode.Nd}, {"Nl", unicode.Nl}, {"No", unicode.No},
	{"Pc", unicode.Pc}, {"Pd", unicode.Pd}, {"Pe", unicode.Pe}, {"Pf", unicode.Pf},
	{"Pi", unicode.Pi}, {"Po", unicode.Po}, {"Ps", unicode.Ps},
	{"Sc", unicode.Sc}, {"Sk", unicode.Sk}, {"Sm", unicode.Sm}, {"So", unicode.So},
	{"Zl", unicode.Zl}, {"Zp", unicode.Zp}, {"Zs", unicode.Zs},
}

// Category returns the two-letter general category of r
func Category(r rune) string {
	for _, c := range categories {
		if unicode.Is(c.table, r) {
			return c.name
		}
	}
	return Unassigned
}

// Name returns the formal Unicode name of r. Characters of the
// algorithmically named ranges get their derived name; controls,
// surrogates and private use characters have none.
func Name(r rune) string {
	name := runenames.Name(r)
	if !strings.HasPrefix(name, "<") {
		return name
	}
	switch {
	case strings.HasPrefix(name, "<CJK Ideograph"):
		return fmt.Sprintf("CJK UNIFIED IDEOGRAPH-%04X", r)
	case strings.HasPrefix(name, "<Tangut Ideograph"):
		return fmt.Sprintf("TANGUT IDEOGRAPH-%04X", r)
	case name == "<Hangul Syllable>":
		return hangulName(r)
	}
	return ""
}

const (
	hangulBase  = 0xAC00
	hangulCount = 11172
	jamoV       = 21
	jamoT       = 28
)

var (
	jamoLeading  = [...]string{"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H"}
	jamoVowel    = [...]string{"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU", "EU", "YI", "I"}
	jamoTrailing = [...]string{"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG", "LM", "LB", "LS", "LT", "LP", "LH", "M", "B", "BS", "S", "SS", "NG", "J", "C", "K", "T", "P", "H"}
)

// hangulName composes the name of a precomposed Hangul syllable from its
// jamo short names.
func hangulName(r rune) string {
	s := int(r - hangulBase)
	if s < 0 || s >= hangulCount {
		return ""
	}
	l := s / (jamoV * jamoT)
	v := s % (jamoV * jamoT) / jamoT
	t := s % jamoT
	return "HANGUL SYLLABLE " + jamoLeading[l] + jamoVowel[v] + jamoTrailing[t]
}

// Table is a cached character database
type Table struct {
	cache *lru.Cache[rune, Info]
}

// NewTable creates a table caching up to size characters
func NewTable(size int) (*Table, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[rune, Info](size)
	if err != nil {
		return nil, err
	}
	return &Table{cache: cache}, nil
}

// Lookup returns the Info of r
func (t *Table) Lookup(r rune) Info {
	if info, ok := t.cache.Get(r); ok {
		return info
	}
	name := Name(r)
	info := Info{
		Rune:     r,
		Name:     name,
		Compact:  strings.ReplaceAll(name, " ", ""),
		Category: Category(r),
	}
	t.cache.Add(r, info)
	return info
}

var defaultTable = func() *Table {
	t, err := NewTable(DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	return t
}()

// Default returns the process-wide table
func Default() *Table {
	return defaultTable
}

// Lookup returns the Info of r from the default table
func Lookup(r rune) Info {
	return defaultTable.Lookup(r)
}
