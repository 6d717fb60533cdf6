// Package corpus reads ground truth files and counts their characters.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidUTF8 marks a file that cannot be decoded as text
var ErrInvalidUTF8 = errors.New("not valid UTF-8")

// Document is the normalized text of one file
type Document struct {
	Name string
	Text string
}

// Skip records a file left out of the corpus
type Skip struct {
	Path string
	Err  error
}

// Corpus is the read-only input of the analysis engines
type Corpus struct {
	Docs    []Document
	Index   *Index
	Skipped []Skip
}

// LoadOptions controls Load
type LoadOptions struct {
	Form Form
	// Workers bounds concurrent reads; zero uses GOMAXPROCS
	Workers int
	// OnFile is called after each file has been read, possibly concurrently
	OnFile func(path string)
}

type readResult struct {
	doc    Document
	counts *fileCounts
	err    error
}

// Load reads, normalizes and counts the given files. Files that cannot be
// read or decoded are recorded in Skipped and the load continues.
func Load(ctx context.Context, paths []string, opts LoadOptions) (*Corpus, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]readResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = readFile(path, opts.Form)
			if opts.OnFile != nil {
				opts.OnFile(path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	// Merge in input order so first-seen ordering is deterministic
	c := &Corpus{Index: newIndex()}
	for i, res := range results {
		if res.err != nil {
			c.Skipped = append(c.Skipped, Skip{Path: paths[i], Err: res.err})
			continue
		}
		c.Docs = append(c.Docs, res.doc)
		c.Index.merge(res.counts)
	}
	return c, nil
}

func readFile(path string, form Form) readResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return readResult{err: err}
	}
	if !utf8.Valid(data) {
		return readResult{err: ErrInvalidUTF8}
	}

	text := prepare(string(data), form)
	return readResult{
		doc:    Document{Name: path, Text: text},
		counts: countText(path, text),
	}
}

// prepare trims surrounding whitespace and normalizes, the same for files
// and in-memory texts
func prepare(text string, form Form) string {
	return Normalize(strings.TrimSpace(text), form)
}

// FromTexts builds a corpus from in-memory texts keyed by name, in the
// order given by names.
func FromTexts(names []string, texts map[string]string, form Form) *Corpus {
	c := &Corpus{}
	for _, name := range names {
		c.Docs = append(c.Docs, Document{Name: name, Text: prepare(texts[name], form)})
	}
	c.Index = BuildIndex(c.Docs)
	return c
}
