// Package stats derives subtotals for category trees.
package stats

import (
	"github.com/pthm/gtlint/internal/category"
)

// CharCount is one leaf entry
type CharCount struct {
	Rune  rune
	Count int
}

// Sums mirrors a category tree with totals at every node
type Sums struct {
	Name string
	// Total is the number of character occurrences below this node
	Total int
	// Distinct is the number of leaf entries below this node. A character
	// filed under several custom sub-names is counted once per entry.
	Distinct int
	Children []*Sums
	// Counts holds the leaf entries, only set for leaves
	Counts []CharCount
}

// IsLeaf reports whether s summarizes a leaf
func (s *Sums) IsLeaf() bool {
	return s.Children == nil
}

// Summarize computes totals bottom-up over any depth. The tree is only
// read, so summarizing again yields the same result.
func Summarize(n category.Node) *Sums {
	switch n := n.(type) {
	case *category.Leaf:
		s := &Sums{Name: n.Key(), Counts: make([]CharCount, 0, n.Len())}
		for _, r := range n.Runes() {
			c := n.Count(r)
			s.Counts = append(s.Counts, CharCount{Rune: r, Count: c})
			s.Total += c
		}
		s.Distinct = len(s.Counts)
		return s

	case *category.Branch:
		s := &Sums{Name: n.Key(), Children: make([]*Sums, 0, n.Len())}
		for _, child := range n.Children() {
			cs := Summarize(child)
			s.Children = append(s.Children, cs)
			s.Total += cs.Total
			s.Distinct += cs.Distinct
		}
		return s

	default:
		return &Sums{}
	}
}

// Find follows child names from s, returning nil when a name is missing
func (s *Sums) Find(path ...string) *Sums {
	cur := s
	for _, name := range path {
		var next *Sums
		for _, child := range cur.Children {
			if child.Name == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Share returns part as a percentage of s.Total
func (s *Sums) Share(part int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(s.Total)
}
