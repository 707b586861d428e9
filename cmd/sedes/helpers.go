package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/corpus"
	"github.com/kmantas/sedes/internal/hexameter"
	"github.com/kmantas/sedes/internal/lemma"
	"github.com/kmantas/sedes/internal/sedes"
	"github.com/kmantas/sedes/internal/storage"
)

// openStorage opens the configured database and brings its schema up to
// date.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// buildAnalyzer creates the analyzer, layering a user override table on top
// of the built-in one. User entries win on conflict.
func buildAnalyzer(knownPath string) (*sedes.Analyzer, error) {
	table := hexameter.DefaultKnown()
	if knownPath != "" {
		user, err := hexameter.LoadKnown(knownPath)
		if err != nil {
			return nil, err
		}
		for text, words := range user {
			table[text] = words
		}
	}
	return sedes.NewAnalyzer(table), nil
}

// buildLemmatizer loads the lemma table, or returns nil when no table is
// configured.
func buildLemmatizer(path string) (lemma.Lemmatizer, error) {
	if path == "" {
		return nil, nil
	}
	table, err := lemma.LoadTable(path)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// workName derives a work identifier from the input filename when the
// --work flag is not given.
func workName(path, flag string) string {
	if flag != "" {
		return flag
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readSources reads verse lines from the given files, or from stdin when
// none are given. Malformed locations and sequence warnings are logged and
// the lines kept.
func readSources(paths []string, work string) ([]corpus.SourceLine, error) {
	warn := func(err error) {
		common.LogWarn("corpus warning", common.Fields{"error": err.Error()})
	}

	if len(paths) == 0 {
		if work == "" {
			work = "stdin"
		}
		return corpus.ReadAll(corpus.NewTextReader(os.Stdin, work), warn)
	}

	var lines []corpus.SourceLine
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		read, err := corpus.ReadAll(corpus.NewTextReader(f, workName(path, work)), warn)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		lines = append(lines, read...)
	}
	return lines, nil
}

// outputWriter opens path for writing, or returns stdout when path is empty.
// The returned close function is a no-op for stdout.
func outputWriter(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
