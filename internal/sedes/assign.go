// Package sedes maps a resolved scansion onto per-word metrical positions
// and drives the whole-line analysis pipeline.
package sedes

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/greek"
	"github.com/kmantas/sedes/internal/hexameter"
)

// Assigned is one word of a line with the sedes at which it begins, its raw
// "+"/"-" metrical shape, and its tone shape: one marker per slot encoding
// the pitch accent ("." unaccented, "/" acute, "\" grave, "~" circumflex,
// with a "-" suffix on long slots). Overridden lines carry no tone shape.
type Assigned struct {
	Word  string
	Shape string
	Tone  string
	Sedes float64
}

// trimWord strips every character that is not part of a word: everything
// except letters, digits, the combining diacritics, and the elision
// apostrophe.
func trimWord(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '’' || greek.IsDiacritical(c) {
			return c
		}
		return -1
	}, s)
}

// piece is one cluster of a word together with its resolved slot value.
type piece struct {
	text  string
	value hexameter.SlotValue
}

// partitionWords groups a scansion's clusters into words, discarding
// punctuation. Punctuation inside an interword cluster attaches to the end
// of the previous word or the start of the next depending on which side of
// the space it falls.
func partitionWords(scansion hexameter.Scansion) [][]piece {
	var words [][]piece
	var current []piece

	queue := make([]piece, len(scansion))
	for i, c := range scansion {
		queue[i] = piece{text: c.Text, value: c.Value}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		parts := strings.SplitN(p.text, " ", 2)
		trimmed := trimWord(parts[0])
		if trimmed != "" {
			current = append(current, piece{text: trimmed, value: p.value})
		}
		if (len(parts) == 1 && trimmed != p.text) || len(parts) > 1 {
			// Word break.
			if len(current) > 0 {
				words = append(words, current)
				current = nil
			}
			if len(parts) > 1 {
				// Whatever follows the space starts the next word.
				if rest := trimWord(parts[1]); rest != "" {
					queue = append([]piece{{text: rest, value: p.value}}, queue...)
				}
			}
		}
	}
	if len(current) > 0 {
		words = append(words, current)
	}
	return words
}

// Assign walks a single resolved scansion left to right and records, for
// each word, the sedes of its first metrically significant vowel. The
// counter starts at 1 and advances by 0.5 per short and 1.0 per long. A
// word with no slots of its own (an elided particle) inherits the sedes of
// the following word.
//
// The slot durations of a full line must total exactly 12.0; any other
// total means the rule tables and the hexameter template disagree, which is
// a fatal defect, not a per-line condition.
func Assign(scansion hexameter.Scansion) ([]Assigned, error) {
	var result []Assigned

	// Words buffered until their shared sedes is known.
	var words, shapes, tones []string
	sedesKnown := false
	var wordSedes float64

	position := 1.0
	for _, sub := range partitionWords(scansion) {
		var word, shape, tone strings.Builder
		for _, p := range sub {
			word.WriteString(p.text)
			if p.value == hexameter.ShortSlot || p.value == hexameter.LongSlot {
				shape.WriteByte(byte(p.value))
				marker, err := toneMarker(p.text, p.value)
				if err != nil {
					return nil, err
				}
				tone.WriteString(marker)
				if !sedesKnown {
					sedesKnown = true
					wordSedes = position
				}
			}
			position += p.value.Duration()
		}
		words = append(words, word.String())
		shapes = append(shapes, shape.String())
		tones = append(tones, tone.String())

		if sedesKnown {
			for i := range words {
				result = append(result, Assigned{Word: words[i], Sedes: wordSedes, Shape: shapes[i], Tone: tones[i]})
			}
			words = words[:0]
			shapes = shapes[:0]
			tones = tones[:0]
			sedesKnown = false
		}
	}

	if total := position - 1.0; total != 12.0 {
		return nil, fmt.Errorf("%w: scansion durations total %v, want 12", common.ErrInternalConsistency, total)
	}
	if len(words) > 0 {
		return nil, fmt.Errorf("%w: trailing words %q have no metrical slot", common.ErrInternalConsistency, words)
	}
	return result, nil
}

// toneMarker encodes the pitch accent of one slot-bearing cluster: "."
// unaccented, "/" acute, "\" grave, "~" circumflex, with a "-" suffix when
// the slot is long.
func toneMarker(cluster string, value hexameter.SlotValue) (string, error) {
	accent, ok := greek.ToneAccent(cluster)
	if !ok {
		return "", fmt.Errorf("%w: multiple pitch accents in cluster %q", common.ErrInternalConsistency, cluster)
	}
	var marker string
	switch accent {
	case 0:
		marker = "."
	case greek.AcuteAccent:
		marker = "/"
	case greek.GraveAccent:
		marker = `\`
	case greek.PerispomeniAccent:
		marker = "~"
	}
	if value == hexameter.LongSlot {
		marker += "-"
	}
	return marker, nil
}

// recoverKnown rebuilds word sedes values from a hand-vetted scansion.
// Empty words are skipped: they let a vetted entry start at a sedes other
// than 1 when one metrical line is split across printed lines. Vetted
// entries are exempt from the 12.0 total check for the same reason.
func recoverKnown(known []hexameter.KnownWord) []Assigned {
	var result []Assigned
	position := 1.0
	for _, k := range known {
		if k.Word != "" {
			result = append(result, Assigned{Word: k.Word, Sedes: position, Shape: k.Shape})
		}
		for i := 0; i < len(k.Shape); i++ {
			switch k.Shape[i] {
			case '-':
				position += 0.5
			case '+':
				position += 1.0
			}
		}
	}
	return result
}
