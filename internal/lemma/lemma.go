// Package lemma maps surface word forms to dictionary headwords.
package lemma

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kmantas/sedes/internal/greek"
)

// Lemmatizer resolves a surface word form, at an optional location, to a
// lemma. Implementations return ok=false when the form is unknown; callers
// fall back to the word form itself as the condition key.
type Lemmatizer interface {
	Lookup(word, location string) (lemma string, ok bool)
}

// Table is a read-only Lemmatizer backed by an in-memory form→lemma table,
// with per-location overrides for forms whose lemma depends on context.
// Both maps are fixed at construction; the zero value knows nothing.
type Table struct {
	forms     map[string]string
	locations map[string]string
}

// NewTable builds a Table from form→lemma pairs.
func NewTable(forms map[string]string) *Table {
	t := &Table{
		forms:     make(map[string]string, len(forms)),
		locations: make(map[string]string),
	}
	for form, l := range forms {
		t.forms[greek.Normalize(form)] = greek.Normalize(l)
	}
	return t
}

// AddLocationOverride pins the lemma of word at one exact location,
// overriding the form table there.
func (t *Table) AddLocationOverride(word, location, lemma string) {
	t.locations[locationKey(word, location)] = greek.Normalize(lemma)
}

// Lookup implements Lemmatizer.
func (t *Table) Lookup(word, location string) (string, bool) {
	word = greek.Normalize(word)
	if location != "" {
		if l, ok := t.locations[locationKey(word, location)]; ok {
			return l, true
		}
	}
	l, ok := t.forms[word]
	return l, ok
}

func locationKey(word, location string) string {
	return location + "\x00" + word
}

// LoadTable reads a tab-separated form→lemma table: one "form<TAB>lemma"
// pair per line, "#" comments and blank lines ignored. An optional third
// column pins the pair to one location ("book.line").
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lemma table: %w", err)
	}
	defer func() { _ = f.Close() }()

	t := NewTable(nil)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 2:
			t.forms[greek.Normalize(fields[0])] = greek.Normalize(fields[1])
		case 3:
			t.AddLocationOverride(fields[0], fields[2], fields[1])
		default:
			return nil, fmt.Errorf("lemma table %s:%d: want 2 or 3 tab-separated fields, got %d", path, lineNo, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lemma table: %w", err)
	}
	return t, nil
}
