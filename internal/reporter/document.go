package reporter

import (
	"fmt"

	"github.com/pthm/gtlint/internal/guideline"
	"github.com/pthm/gtlint/internal/stats"
	"github.com/pthm/gtlint/internal/unidata"
)

// Document is the serialisable form of a Report shared by the JSON and YAML
// reporters
type Document struct {
	Form       string         `json:"form" yaml:"form"`
	Files      int            `json:"files" yaml:"files"`
	Characters int            `json:"characters" yaml:"characters"`
	Distinct   int            `json:"distinct" yaml:"distinct"`
	Skipped    []SkippedFile  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Categories []CategoryNode `json:"categories" yaml:"categories"`
	Guideline  *GuidelineDoc  `json:"guideline,omitempty" yaml:"guideline,omitempty"`
}

// SkippedFile is a file left out of the corpus
type SkippedFile struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}

// CategoryNode is one node of a category tree
type CategoryNode struct {
	Name       string         `json:"name" yaml:"name"`
	Total      int            `json:"total" yaml:"total"`
	Distinct   int            `json:"distinct" yaml:"distinct"`
	Children   []CategoryNode `json:"children,omitempty" yaml:"children,omitempty"`
	Characters []CharEntry    `json:"characters,omitempty" yaml:"characters,omitempty"`
}

// CharEntry is one counted character
type CharEntry struct {
	Char      string `json:"char" yaml:"char"`
	Codepoint string `json:"codepoint" yaml:"codepoint"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Count     int    `json:"count" yaml:"count"`
}

// GuidelineDoc is the outcome of a guideline check
type GuidelineDoc struct {
	Set   string    `json:"set" yaml:"set"`
	Found bool      `json:"found" yaml:"found"`
	Total int       `json:"total" yaml:"total"`
	Rules []RuleDoc `json:"rules" yaml:"rules"`
	Files []FileDoc `json:"files,omitempty" yaml:"files,omitempty"`
}

// RuleDoc lists the violations of one rule
type RuleDoc struct {
	Name       string       `json:"name" yaml:"name"`
	Kind       string       `json:"kind" yaml:"kind"`
	Total      int          `json:"total" yaml:"total"`
	Patterns   []PatternDoc `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Characters []CharEntry  `json:"characters,omitempty" yaml:"characters,omitempty"`
}

// PatternDoc is the match count of one pattern
type PatternDoc struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Count   int    `json:"count" yaml:"count"`
}

// FileDoc lists the violations found in one file
type FileDoc struct {
	File       string         `json:"file" yaml:"file"`
	Total      int            `json:"total" yaml:"total"`
	Violations []ViolationDoc `json:"violations" yaml:"violations"`
}

// ViolationDoc attributes a count to a rule predicate
type ViolationDoc struct {
	Rule      string `json:"rule" yaml:"rule"`
	Predicate string `json:"predicate" yaml:"predicate"`
	Count     int    `json:"count" yaml:"count"`
}

// NewDocument converts a report
func NewDocument(r *Report) Document {
	doc := Document{
		Form:       string(r.Form),
		Files:      len(r.Files),
		Characters: r.Characters,
		Distinct:   r.Distinct,
		Categories: make([]CategoryNode, 0, 1+len(r.Custom)),
	}
	for _, s := range r.Skipped {
		doc.Skipped = append(doc.Skipped, SkippedFile{File: s.Path, Reason: s.Err.Error()})
	}
	if r.Builtin != nil {
		doc.Categories = append(doc.Categories, categoryNode(r.Builtin))
	}
	for _, s := range r.Custom {
		doc.Categories = append(doc.Categories, categoryNode(s))
	}
	if r.Guideline != nil {
		doc.Guideline = guidelineDoc(r.Guideline)
	}
	return doc
}

func categoryNode(s *stats.Sums) CategoryNode {
	n := CategoryNode{Name: s.Name, Total: s.Total, Distinct: s.Distinct}
	for _, child := range s.Children {
		n.Children = append(n.Children, categoryNode(child))
	}
	for _, cc := range s.Counts {
		n.Characters = append(n.Characters, charEntry(cc.Rune, cc.Count))
	}
	return n
}

func charEntry(r rune, count int) CharEntry {
	return CharEntry{
		Char:      string(r),
		Codepoint: Codepoint(r),
		Name:      unidata.Lookup(r).Name,
		Count:     count,
	}
}

func guidelineDoc(res *guideline.Result) *GuidelineDoc {
	g := &GuidelineDoc{
		Set:   res.Set,
		Found: res.Found,
		Total: res.Total(),
		Rules: make([]RuleDoc, 0, len(res.Rules)),
	}
	for _, rr := range res.Rules {
		rd := RuleDoc{Name: rr.Name, Kind: rr.Kind.String(), Total: rr.Total}
		for _, pc := range rr.Patterns {
			rd.Patterns = append(rd.Patterns, PatternDoc{Pattern: pc.Pattern, Count: pc.Count})
		}
		for _, cc := range rr.Chars {
			rd.Characters = append(rd.Characters, charEntry(cc.Rune, cc.Count))
		}
		g.Rules = append(g.Rules, rd)
	}
	for _, fr := range res.Files {
		fd := FileDoc{File: fr.File, Total: fr.Total}
		for _, v := range fr.Violations {
			fd.Violations = append(fd.Violations, ViolationDoc{Rule: v.Rule, Predicate: v.Predicate, Count: v.Count})
		}
		g.Files = append(g.Files, fd)
	}
	return g
}

// Codepoint formats r as U+XXXX
func Codepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
