package hexameter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKnown(t *testing.T) {
	data := []byte(`
- line: μῆνιν ἄειδε
  words:
    - word: μῆνιν
      shape: "+-"
    - word: ἄειδε
      shape: "-+-"
`)
	table, err := ParseKnown(data)
	require.NoError(t, err)

	words, ok := table.Lookup("μῆνιν ἄειδε")
	require.True(t, ok)
	require.Len(t, words, 2)
	assert.Equal(t, "+-", words[0].Shape)
}

func TestParseKnownBadShape(t *testing.T) {
	data := []byte(`
- line: μῆνιν
  words:
    - word: μῆνιν
      shape: "+x"
`)
	_, err := ParseKnown(data)
	assert.Error(t, err)
}

func TestLookupNormalizes(t *testing.T) {
	table := make(KnownScansions)
	// Precomposed entry, decomposed query.
	table.Add("μῆνιν", []KnownWord{{Word: "μῆνιν", Shape: "+-"}})
	_, ok := table.Lookup("μῆνιν")
	assert.True(t, ok)
}

func TestAppendKnownRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known.yaml")

	require.NoError(t, AppendKnown(path, "μῆνιν ἄειδε", []KnownWord{
		{Word: "μῆνιν", Shape: "+-"},
		{Word: "ἄειδε", Shape: "-+-"},
	}))
	require.NoError(t, AppendKnown(path, "ἄνδρα μοι", []KnownWord{
		{Word: "ἄνδρα", Shape: "+-"},
		{Word: "μοι", Shape: "-"},
	}))

	table, err := LoadKnown(path)
	require.NoError(t, err)
	assert.Len(t, table, 2)

	words, ok := table.Lookup("ἄνδρα μοι")
	require.True(t, ok)
	assert.Equal(t, "μοι", words[1].Word)
}

func TestDefaultKnown(t *testing.T) {
	table := DefaultKnown()

	words, ok := table.Lookup("μῆνιν ἄειδε θεὰ Πηληϊάδεω Ἀχιλῆος")
	require.True(t, ok)
	require.Len(t, words, 5)
	assert.Equal(t, "++--+", words[3].Shape)

	// Every built-in entry's durations must fill a hexameter line.
	for line, entry := range table {
		var total float64
		for _, w := range entry {
			for _, c := range w.Shape {
				switch c {
				case '+':
					total += 1.0
				case '-':
					total += 0.5
				}
			}
		}
		assert.InDelta(t, 12.0, total, 1e-9, "line %q", line)
	}
}
