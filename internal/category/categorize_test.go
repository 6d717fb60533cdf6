package category

import (
	"reflect"
	"testing"

	"github.com/pthm/gtlint/internal/corpus"
	"github.com/pthm/gtlint/internal/rulecfg"
)

func testCorpus(texts ...string) *corpus.Corpus {
	names := make([]string, len(texts))
	byName := make(map[string]string, len(texts))
	for i, text := range texts {
		names[i] = string(rune('a' + i))
		byName[names[i]] = text
	}
	return corpus.FromTexts(names, byName, corpus.FormNFC)
}

func leaf(t *testing.T, root *Branch, path ...string) *Leaf {
	t.Helper()
	var n Node = root
	for _, key := range path {
		b, ok := n.(*Branch)
		if !ok {
			t.Fatalf("%q is not a branch", n.Key())
		}
		child, ok := b.Child(key)
		if !ok {
			t.Fatalf("missing %q below %q", key, b.Key())
		}
		n = child
	}
	l, ok := n.(*Leaf)
	if !ok {
		t.Fatalf("%v is not a leaf", path)
	}
	return l
}

func TestBuiltin(t *testing.T) {
	c := testCorpus("Aa1", "a, ſ")
	tree := Builtin(c.Index)

	if tree.Key() != BuiltinRoot {
		t.Errorf("root = %q, want %q", tree.Key(), BuiltinRoot)
	}

	tests := []struct {
		path  []string
		r     rune
		count int
	}{
		{[]string{"L", "LATIN", "Lu"}, 'A', 1},
		{[]string{"L", "LATIN", "Ll"}, 'a', 2},
		{[]string{"L", "LATIN", "Ll"}, 'ſ', 1},
		{[]string{"N", "DIGIT", "Nd"}, '1', 1},
		{[]string{"P", "COMMA", "Po"}, ',', 1},
		{[]string{"Z", "SPACE", "Zs"}, ' ', 1},
	}
	for _, tt := range tests {
		if got := leaf(t, tree, tt.path...).Count(tt.r); got != tt.count {
			t.Errorf("%v[%q] = %d, want %d", tt.path, tt.r, got, tt.count)
		}
	}
}

func TestBuiltinEveryCharacterOnce(t *testing.T) {
	c := testCorpus("Größe – 12 ½ ﬀ\n", "ͤe⁠")
	tree := Builtin(c.Index)

	seen := make(map[rune]int)
	Leaves(tree, func(path []string, l *Leaf) {
		if len(path) != 4 {
			t.Errorf("leaf path %v has depth %d, want 4", path, len(path))
		}
		for _, r := range l.Runes() {
			seen[r]++
			if l.Count(r) != c.Index.Count(r) {
				t.Errorf("%q count %d, want %d", r, l.Count(r), c.Index.Count(r))
			}
		}
	})

	for _, r := range c.Index.Runes() {
		if seen[r] != 1 {
			t.Errorf("%q appears in %d leaves, want 1", r, seen[r])
		}
	}
	if len(seen) != c.Index.Len() {
		t.Errorf("tree holds %d characters, index %d", len(seen), c.Index.Len())
	}
}

func TestBuiltinEmpty(t *testing.T) {
	tree := Builtin(testCorpus().Index)
	if tree.Len() != 0 {
		t.Errorf("empty corpus tree has %d children", tree.Len())
	}
}

func TestCustom(t *testing.T) {
	cfg, err := rulecfg.ParseString(`
[Fraktur]
LongS==0x017F
Ligatures==LIGATURE
Vowels==a||e||0x0069-0x006A
Letters==LATINSMALLLETTER
Lower==ligature
Shadow==SHADOWREGEX
`, rulecfg.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	set, _ := cfg.Set("Fraktur")

	c := testCorpus("ſieﬀ", "ee")
	tree := Custom(c.Index, "Fraktur", set)

	if tree.Key() != "Fraktur" {
		t.Errorf("root = %q", tree.Key())
	}

	var keys []string
	for _, child := range tree.Children() {
		keys = append(keys, child.Key())
	}
	// Lower never matches: name substrings are case-sensitive here.
	if want := []string{"LongS", "Letters", "Vowels", "Ligatures"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("children = %v, want %v", keys, want)
	}

	if got := leaf(t, tree, "Vowels").Count('e'); got != 3 {
		t.Errorf("Vowels[e] = %d, want 3", got)
	}
	if got := leaf(t, tree, "Vowels").Count('i'); got != 1 {
		t.Errorf("Vowels[i] = %d, want 1", got)
	}
	// A character may sit under several sub-names
	if leaf(t, tree, "Letters").Count('ſ') != 1 || leaf(t, tree, "LongS").Count('ſ') != 1 {
		t.Error("long s must be filed under LongS and Letters")
	}
	if got := leaf(t, tree, "Ligatures").Runes(); !reflect.DeepEqual(got, []rune{'ﬀ'}) {
		t.Errorf("Ligatures = %q", got)
	}
}

func TestCustomAllAbsentName(t *testing.T) {
	cfg, err := rulecfg.ParseString("[Known]\nAll==0x0000-0x110000", rulecfg.ParseOptions{})
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	c := testCorpus("abc")
	trees := New(nil).CustomAll(c.Index, cfg, []string{"Known", "Unknown"})
	if len(trees) != 2 {
		t.Fatalf("len(trees) = %d, want 2", len(trees))
	}
	if trees[0].Key() != "Known" || leaf(t, trees[0], "All").Len() != 3 {
		t.Errorf("Known tree = %+v", trees[0])
	}
	if trees[1].Key() != "Unknown" || trees[1].Len() != 0 {
		t.Errorf("Unknown tree must be empty, got %d children", trees[1].Len())
	}
}

func TestBranchEnsure(t *testing.T) {
	root := NewBranch("root")
	a := root.EnsureBranch("a")
	if root.EnsureBranch("a") != a {
		t.Error("EnsureBranch must return the existing branch")
	}
	l := a.EnsureLeaf("x")
	l.Add('q', 2)
	a.EnsureLeaf("x").Add('q', 3)
	if l.Count('q') != 5 {
		t.Errorf("merged count = %d, want 5", l.Count('q'))
	}

	if _, ok := root.Child("missing"); ok {
		t.Error("Child must not create nodes")
	}
	if root.Len() != 1 {
		t.Errorf("Len() = %d after lookup, want 1", root.Len())
	}

	defer func() {
		if recover() == nil {
			t.Error("EnsureBranch over a leaf must panic")
		}
	}()
	a.EnsureBranch("x")
}
