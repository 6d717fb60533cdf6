package corpus

// Index counts characters over the whole corpus and per file.
// The global count of a character is the sum of its per-file counts.
type Index struct {
	counts map[rune]int
	order  []rune
	total  int
	files  []*fileCounts
	byName map[string]*fileCounts
}

// fileCounts holds the character counts local to one file
type fileCounts struct {
	name   string
	counts map[rune]int
	order  []rune
	total  int
}

func newFileCounts(name string) *fileCounts {
	return &fileCounts{name: name, counts: make(map[rune]int)}
}

func (fc *fileCounts) add(r rune, n int) {
	if _, seen := fc.counts[r]; !seen {
		fc.order = append(fc.order, r)
	}
	fc.counts[r] += n
	fc.total += n
}

// countText counts the characters of one document
func countText(name, text string) *fileCounts {
	fc := newFileCounts(name)
	for _, r := range text {
		fc.add(r, 1)
	}
	return fc
}

func newIndex() *Index {
	return &Index{
		counts: make(map[rune]int),
		byName: make(map[string]*fileCounts),
	}
}

// merge folds one file's counts into the index. Counts only ever add, so
// the order in which partial counts arrive does not change the totals.
func (idx *Index) merge(fc *fileCounts) {
	local, ok := idx.byName[fc.name]
	if !ok {
		local = newFileCounts(fc.name)
		idx.byName[fc.name] = local
		idx.files = append(idx.files, local)
	}
	for _, r := range fc.order {
		n := fc.counts[r]
		local.add(r, n)
		if _, seen := idx.counts[r]; !seen {
			idx.order = append(idx.order, r)
		}
		idx.counts[r] += n
		idx.total += n
	}
}

// BuildIndex counts the characters of the given documents
func BuildIndex(docs []Document) *Index {
	idx := newIndex()
	for _, doc := range docs {
		idx.merge(countText(doc.Name, doc.Text))
	}
	return idx
}

// Count returns the corpus-wide count of r
func (idx *Index) Count(r rune) int {
	return idx.counts[r]
}

// Runes returns the distinct characters in first-seen order
func (idx *Index) Runes() []rune {
	return idx.order
}

// Len returns the number of distinct characters
func (idx *Index) Len() int {
	return len(idx.order)
}

// Total returns the number of characters counted
func (idx *Index) Total() int {
	return idx.total
}

// Files returns the counted file names in load order
func (idx *Index) Files() []string {
	names := make([]string, len(idx.files))
	for i, fc := range idx.files {
		names[i] = fc.name
	}
	return names
}

// FileCount returns the count of r within one file
func (idx *Index) FileCount(file string, r rune) int {
	fc, ok := idx.byName[file]
	if !ok {
		return 0
	}
	return fc.counts[r]
}

// FileRunes returns the distinct characters of one file in first-seen order
func (idx *Index) FileRunes(file string) []rune {
	fc, ok := idx.byName[file]
	if !ok {
		return nil
	}
	return fc.order
}

// FileTotal returns the number of characters counted in one file
func (idx *Index) FileTotal(file string) int {
	fc, ok := idx.byName[file]
	if !ok {
		return 0
	}
	return fc.total
}
