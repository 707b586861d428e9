// Package appositive groups appositive word sequences, such as article plus
// noun, into single analytic units.
package appositive

import (
	"github.com/kmantas/sedes/internal/model"
)

// Merger decides how the words of one line group into analytic units. The
// result is a partition of word indices: each inner slice lists the indices
// (into the line's word records) that form one unit, in order.
type Merger interface {
	Merge(words []model.WordRecord) [][]int
}

// Identity is the default Merger: every word is its own unit.
type Identity struct{}

// Merge implements Merger.
func (Identity) Merge(words []model.WordRecord) [][]int {
	units := make([][]int, len(words))
	for i := range words {
		units[i] = []int{i}
	}
	return units
}

// SharedSedes groups consecutive words that begin at the same sedes: an
// elided particle and its host form one unit.
type SharedSedes struct{}

// Merge implements Merger.
func (SharedSedes) Merge(words []model.WordRecord) [][]int {
	var units [][]int
	for i, w := range words {
		n := len(units)
		if n > 0 {
			prev := words[units[n-1][0]]
			if w.SedesKnown && prev.SedesKnown && w.Sedes == prev.Sedes {
				units[n-1] = append(units[n-1], i)
				continue
			}
		}
		units = append(units, []int{i})
	}
	return units
}

// Apply merges records according to m, line by line. Each unit becomes one
// record: the words joined by spaces, the shapes concatenated, and the
// sedes of the unit's first word. Word numbers are reassigned within each
// line.
func Apply(m Merger, records []model.WordRecord) []model.WordRecord {
	var out []model.WordRecord
	for start := 0; start < len(records); {
		end := start + 1
		for end < len(records) && sameLine(records[end], records[start]) {
			end++
		}
		line := records[start:end]
		for n, unit := range m.Merge(line) {
			merged := line[unit[0]]
			for _, i := range unit[1:] {
				merged.Word += " " + line[i].Word
				merged.MetricalShape += line[i].MetricalShape
				merged.ToneShape += line[i].ToneShape
				if line[i].Lemma != "" {
					if merged.Lemma != "" {
						merged.Lemma += " "
					}
					merged.Lemma += line[i].Lemma
				}
			}
			merged.WordN = n + 1
			out = append(out, merged)
		}
		start = end
	}
	return out
}

func sameLine(a, b model.WordRecord) bool {
	return a.Work == b.Work && a.BookN == b.BookN && a.LineN == b.LineN
}
