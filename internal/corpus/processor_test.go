package corpus

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmantas/sedes/internal/greek"
	"github.com/kmantas/sedes/internal/lemma"
	"github.com/kmantas/sedes/internal/model"
	"github.com/kmantas/sedes/internal/sedes"
)

func sourceLines(t *testing.T, text string) []SourceLine {
	t.Helper()
	lines, err := ReadAll(NewTextReader(strings.NewReader(text), "test"), nil)
	require.NoError(t, err)
	return lines
}

func TestProcess(t *testing.T) {
	text := "ἄνδρα μοι ἔννεπε, μοῦσα, πολύτροπον, ὃς μάλα πολλὰ\n" +
		"τῶν τῶν τῶν τῶν τά τά τά τά τά τῶν τῶν τῶν τῶν\n" +
		"τῶν τῶν\n" +
		"arma virumque cano\n"
	lines := sourceLines(t, text)
	require.Len(t, lines, 4)

	processor := NewProcessor(sedes.NewAnalyzer(nil), nil, 4)
	results, stats, err := processor.Process(context.Background(), lines)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, Stats{
		Total:        4,
		Resolved:     1,
		Ambiguous:    1,
		Unscannable:  1,
		Unrecognized: 1,
	}, stats)

	// Results come back in source order regardless of worker scheduling.
	assert.Equal(t, "1", results[0].Locator.LineN)
	assert.Equal(t, model.StatusResolved, results[0].Status)
	assert.Equal(t, model.StatusAmbiguous, results[1].Status)
	assert.Equal(t, model.StatusUnscannable, results[2].Status)
	assert.Equal(t, model.StatusUnrecognized, results[3].Status)

	// Resolved lines carry sedes on every record.
	require.Len(t, results[0].Records, 8)
	for _, r := range results[0].Records {
		assert.True(t, r.SedesKnown)
	}
	// Excluded lines keep their words, sedes withheld.
	require.Len(t, results[2].Records, 2)
	assert.False(t, results[2].Records[0].SedesKnown)
	assert.NotNil(t, results[1].Err)
	assert.Len(t, results[1].Candidates, 2)
}

func TestProcessLemmatizes(t *testing.T) {
	table := lemma.NewTable(map[string]string{"ἄνδρα": "ἀνήρ"})
	lines := sourceLines(t, "ἄνδρα μοι ἔννεπε, μοῦσα, πολύτροπον, ὃς μάλα πολλὰ\n")

	processor := NewProcessor(sedes.NewAnalyzer(nil), table, 1)
	results, _, err := processor.Process(context.Background(), lines)
	require.NoError(t, err)
	require.Len(t, results, 1)

	first := results[0].Records[0]
	assert.Equal(t, greek.Normalize("ἀνήρ"), first.Lemma)
	// Unknown forms keep an empty lemma; consumers fall back to the word.
	assert.Equal(t, "", results[0].Records[1].Lemma)
}

func TestProcessProgress(t *testing.T) {
	lines := sourceLines(t, "τῶν τῶν\nτῶν τῶν\nτῶν τῶν\n")
	processor := NewProcessor(sedes.NewAnalyzer(nil), nil, 2)

	var calls []int
	processor.OnProgress(func(done int) { calls = append(calls, done) })

	_, _, err := processor.Process(context.Background(), lines)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestProcessCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := sourceLines(t, "τῶν τῶν\n")
	processor := NewProcessor(sedes.NewAnalyzer(nil), nil, 1)
	_, _, err := processor.Process(ctx, lines)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusesByLine(t *testing.T) {
	lines := sourceLines(t, "τῶν τῶν\n")
	processor := NewProcessor(sedes.NewAnalyzer(nil), nil, 1)
	results, _, err := processor.Process(context.Background(), lines)
	require.NoError(t, err)

	statuses := StatusesByLine(results)
	assert.Equal(t, model.StatusUnscannable, statuses["test\x00\x001"])
}

func TestFormatCandidates(t *testing.T) {
	candidates := [][]sedes.WordSedes{
		{{Word: "τά", Shape: "–"}, {Word: "τά", Shape: "⏑"}},
	}
	formatted := FormatCandidates(candidates)
	require.Len(t, formatted, 1)
	assert.Equal(t, "τά:– τά:⏑", formatted[0])
}
