// Package category buckets the characters of a corpus into the built-in
// Unicode category tree and into custom trees described by rule sets.
package category

import (
	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/rulecfg"
	"github.com/pthm/gtlint/internal/unidata"
)

// BuiltinRoot is the key of the built-in tree's root
const BuiltinRoot = "overall"

// Categorizer builds category trees from a frequency index
type Categorizer struct {
	table *unidata.Table
}

// New creates a categorizer; a nil table uses the default one
func New(table *unidata.Table) *Categorizer {
	if table == nil {
		table = unidata.Default()
	}
	return &Categorizer{table: table}
}

// Builtin nests every character of idx as
// overall -> major class -> first name word -> category -> character.
func (c *Categorizer) Builtin(idx *corpus.Index) *Branch {
	root := NewBranch(BuiltinRoot)
	for _, r := range idx.Runes() {
		info := c.table.Lookup(r)
		root.
			EnsureBranch(info.Major()).
			EnsureBranch(info.Subcategory()).
			EnsureLeaf(info.Category).
			Add(r, idx.Count(r))
	}
	return root
}

// Custom files every character of idx under each rule of set it matches.
// A nil set produces an empty tree named name.
func (c *Categorizer) Custom(idx *corpus.Index, name string, set *rulecfg.RuleSet) *Branch {
	root := NewBranch(name)
	if set == nil {
		return root
	}

	for _, r := range idx.Runes() {
		info := c.table.Lookup(r)
		for _, rule := range set.Rules() {
			if matches(rule, info) {
				root.EnsureLeaf(rule.Name).Add(r, idx.Count(r))
			}
		}
	}
	return root
}

// CustomAll builds one custom tree per requested name. Names missing
// from cfg yield empty trees.
func (c *Categorizer) CustomAll(idx *corpus.Index, cfg *rulecfg.Config, names []string) []*Branch {
	trees := make([]*Branch, 0, len(names))
	for _, name := range names {
		set, _ := cfg.Set(name)
		trees = append(trees, c.Custom(idx, name, set))
	}
	return trees
}

// matches reports whether any predicate of a character rule covers info.
// Name substrings are case-sensitive against the space-free name.
func matches(rule *rulecfg.Rule, info unidata.Info) bool {
	if rule.Kind == rulecfg.KindRegex {
		return false
	}
	for _, p := range rule.Predicates {
		if p.MatchCodepoint(info.Rune) || p.MatchName(info.Compact, false) {
			return true
		}
	}
	return false
}

// Builtin categorizes idx with the default table
func Builtin(idx *corpus.Index) *Branch {
	return New(nil).Builtin(idx)
}

// Custom categorizes idx by set with the default table
func Custom(idx *corpus.Index, name string, set *rulecfg.RuleSet) *Branch {
	return New(nil).Custom(idx, name, set)
}
