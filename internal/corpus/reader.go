// Package corpus reads verse lines from document sources, runs the scansion
// pipeline over them, and converts the results to and from CSV.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/model"
)

// SourceLine is one verse line read from a document source.
type SourceLine struct {
	Work    string
	Locator model.Locator
	Line    model.Line
}

// Reader yields the lines of a document in order. Next returns io.EOF when
// the document is exhausted.
type Reader interface {
	Next() (SourceLine, error)
}

// TextReader reads plain Unicode verse, one metrical line per text line.
// Three tab-separated layouts are accepted, per line:
//
//	text
//	line_n <TAB> text
//	book_n <TAB> line_n <TAB> text
//
// Lines without explicit numbers are numbered by guessing the successor of
// the previous location. Blank lines are skipped; a line consisting of
// "#book n" switches the current book and resets the line counter.
type TextReader struct {
	scanner *bufio.Scanner
	work    string
	loc     model.Locator
	started bool
}

// NewTextReader creates a TextReader for the named work.
func NewTextReader(r io.Reader, work string) *TextReader {
	return &TextReader{scanner: bufio.NewScanner(r), work: work}
}

// Next implements Reader. Out-of-sequence line numbers are reported as a
// warning through the diagnostic log by the caller; Next itself never fails
// on them.
func (t *TextReader) Next() (SourceLine, error) {
	for t.scanner.Scan() {
		raw := strings.TrimRight(t.scanner.Text(), " \t\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if book, ok := strings.CutPrefix(raw, "#book "); ok {
			t.loc = model.Locator{BookN: strings.TrimSpace(book)}
			continue
		}

		var loc model.Locator
		switch fields := strings.SplitN(raw, "\t", 3); len(fields) {
		case 1:
			loc = t.loc.Successor()
			raw = fields[0]
		case 2:
			loc = model.Locator{BookN: t.loc.BookN, LineN: fields[0]}
			raw = fields[1]
		default:
			loc = model.Locator{BookN: fields[0], LineN: fields[1]}
			raw = fields[2]
		}
		t.loc = loc
		t.started = true
		return SourceLine{Work: t.work, Locator: loc, Line: model.NewLine(raw)}, nil
	}
	if err := t.scanner.Err(); err != nil {
		return SourceLine{}, fmt.Errorf("failed to read source: %w", err)
	}
	return SourceLine{}, io.EOF
}

// ReadAll drains a Reader, reporting out-of-sequence and duplicate
// locations through warn (which may be nil). Duplicate locations keep both
// lines.
func ReadAll(r Reader, warn func(error)) ([]SourceLine, error) {
	var lines []SourceLine
	seen := make(map[string]bool)
	var prev *model.Locator
	for {
		sl, err := r.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}

		key := sl.Work + "\x00" + sl.Locator.String()
		if seen[key] && warn != nil {
			warn(common.NewLineError(common.ErrDuplicateLocation, sl.Work, sl.Locator.String()))
		}
		seen[key] = true

		if prev != nil && !prev.MayPrecede(sl.Locator) && warn != nil {
			warn(common.NewLineError(
				fmt.Errorf("after line %s, expected %s", prev, prev.Successor()),
				sl.Work, sl.Locator.String()))
		}
		loc := sl.Locator
		prev = &loc

		lines = append(lines, sl)
	}
}
