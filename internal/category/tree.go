package category

import "fmt"

// Node is either a *Branch or a *Leaf
type Node interface {
	Key() string
	node()
}

// Branch holds ordered, uniquely keyed children
type Branch struct {
	key      string
	children []Node
	index    map[string]Node
}

// NewBranch creates an empty branch
func NewBranch(key string) *Branch {
	return &Branch{key: key, index: make(map[string]Node)}
}

func (b *Branch) Key() string { return b.key }
func (b *Branch) node()       {}

// Children returns the children in insertion order
func (b *Branch) Children() []Node {
	return b.children
}

// Len returns the number of children
func (b *Branch) Len() int {
	return len(b.children)
}

// Child returns the child under key without creating it
func (b *Branch) Child(key string) (Node, bool) {
	n, ok := b.index[key]
	return n, ok
}

// EnsureBranch returns the branch child under key, creating it when missing.
// It panics if key already holds a leaf.
func (b *Branch) EnsureBranch(key string) *Branch {
	if n, ok := b.index[key]; ok {
		child, isBranch := n.(*Branch)
		if !isBranch {
			panic(fmt.Sprintf("category: %q under %q is a leaf, not a branch", key, b.key))
		}
		return child
	}
	child := NewBranch(key)
	b.add(child)
	return child
}

// EnsureLeaf returns the leaf child under key, creating it when missing.
// It panics if key already holds a branch.
func (b *Branch) EnsureLeaf(key string) *Leaf {
	if n, ok := b.index[key]; ok {
		child, isLeaf := n.(*Leaf)
		if !isLeaf {
			panic(fmt.Sprintf("category: %q under %q is a branch, not a leaf", key, b.key))
		}
		return child
	}
	child := NewLeaf(key)
	b.add(child)
	return child
}

func (b *Branch) add(n Node) {
	b.index[n.Key()] = n
	b.children = append(b.children, n)
}

// Leaf maps characters to counts
type Leaf struct {
	key    string
	counts map[rune]int
	order  []rune
}

// NewLeaf creates an empty leaf
func NewLeaf(key string) *Leaf {
	return &Leaf{key: key, counts: make(map[rune]int)}
}

func (l *Leaf) Key() string { return l.key }
func (l *Leaf) node()       {}

// Add adds n occurrences of r
func (l *Leaf) Add(r rune, n int) {
	if _, seen := l.counts[r]; !seen {
		l.order = append(l.order, r)
	}
	l.counts[r] += n
}

// Count returns the count of r
func (l *Leaf) Count(r rune) int {
	return l.counts[r]
}

// Runes returns the characters in insertion order
func (l *Leaf) Runes() []rune {
	return l.order
}

// Len returns the number of distinct characters
func (l *Leaf) Len() int {
	return len(l.order)
}

// Leaves calls fn for every leaf below n with the keys leading to it
func Leaves(n Node, fn func(path []string, leaf *Leaf)) {
	walkLeaves(n, nil, fn)
}

func walkLeaves(n Node, path []string, fn func([]string, *Leaf)) {
	path = append(path, n.Key())
	switch n := n.(type) {
	case *Leaf:
		fn(append([]string(nil), path...), n)
	case *Branch:
		for _, child := range n.children {
			walkLeaves(child, path, fn)
		}
	}
}
