package hexameter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kmantas/sedes/internal/greek"
)

// KnownWord is one word of a manually vetted scansion: the word text and its
// raw "+"/"-" metrical shape. An empty Word with a non-empty Shape lets a
// vetted entry start at a sedes other than 1, for metrical lines split
// across printed lines. An empty Shape marks a word with no vowel slots of
// its own, such as an elided particle.
type KnownWord struct {
	Word  string `yaml:"word"`
	Shape string `yaml:"shape"`
}

// KnownScansions maps the quote-stripped, NFD-normalized text of a line to
// its hand-vetted scansion. Lines found here bypass the enumerator entirely:
// the table is an override mechanism, not a resolution heuristic. The table
// is read-only after construction and is injected into the analyzer, so
// tests can substitute fixtures.
type KnownScansions map[string][]KnownWord

// knownEntry is the YAML file representation of one override.
type knownEntry struct {
	Line  string      `yaml:"line"`
	Words []KnownWord `yaml:"words"`
}

// Lookup returns the vetted scansion for text, which must already be
// quote-stripped. Matching is exact after NFD normalization.
func (k KnownScansions) Lookup(text string) ([]KnownWord, bool) {
	words, ok := k[greek.Normalize(text)]
	return words, ok
}

// Add registers a vetted scansion under the normalized form of text.
func (k KnownScansions) Add(text string, words []KnownWord) {
	normalized := make([]KnownWord, len(words))
	for i, w := range words {
		normalized[i] = KnownWord{Word: greek.Normalize(w.Word), Shape: w.Shape}
	}
	k[greek.Normalize(text)] = normalized
}

// ParseKnown reads a YAML override table.
func ParseKnown(data []byte) (KnownScansions, error) {
	var entries []knownEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse override table: %w", err)
	}
	table := make(KnownScansions, len(entries))
	for _, entry := range entries {
		for _, w := range entry.Words {
			for _, c := range w.Shape {
				if c != '+' && c != '-' {
					return nil, fmt.Errorf("override for %q: bad shape %q", entry.Line, w.Shape)
				}
			}
		}
		table.Add(entry.Line, entry.Words)
	}
	return table, nil
}

// LoadKnown reads a YAML override table from path.
func LoadKnown(path string) (KnownScansions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override table: %w", err)
	}
	return ParseKnown(data)
}

// AppendKnown appends one override entry to the YAML file at path, creating
// the file if needed. Used by the review flow when a candidate scansion is
// accepted.
func AppendKnown(path, line string, words []KnownWord) error {
	data, err := yaml.Marshal([]knownEntry{{Line: line, Words: words}})
	if err != nil {
		return fmt.Errorf("failed to marshal override entry: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open override table: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append override entry: %w", err)
	}
	return nil
}

// DefaultKnown returns the built-in override table: lines whose correct
// scansion is vetted but falls outside what the enumerator's rule tables
// can recover (synizesis across breathing marks, hiatus licensed by lost
// digamma, and the like).
func DefaultKnown() KnownScansions {
	table := make(KnownScansions)

	// Il. 1.1. Synizesis of -εω in Πηληϊάδεω.
	table.Add("μῆνιν ἄειδε θεὰ Πηληϊάδεω Ἀχιλῆος", []KnownWord{
		{Word: "μῆνιν", Shape: "+-"},
		{Word: "ἄειδε", Shape: "-+-"},
		{Word: "θεὰ", Shape: "-+"},
		{Word: "Πηληϊάδεω", Shape: "++--+"},
		{Word: "Ἀχιλῆος", Shape: "--++"},
	})

	// Formulaic gift-receiving line; synizesis in ἑῷ.
	table.Add("δῶκεν ἔπειτα φέρειν, ὃ δʼ ἐδέξατο χαίρων ἑῷ θυμῷ", []KnownWord{
		{Word: "δῶκεν", Shape: "+-"},
		{Word: "ἔπειτα", Shape: "-+-"},
		{Word: "φέρειν", Shape: "-+"},
		{Word: "ὃ", Shape: "-"},
		{Word: "δʼ", Shape: ""},
		{Word: "ἐδέξατο", Shape: "-+--"},
		{Word: "χαίρων", Shape: "+-"},
		{Word: "ἑῷ", Shape: "-"},
		{Word: "θυμῷ", Shape: "++"},
	})

	return table
}
