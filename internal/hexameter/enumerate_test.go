package hexameter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmantas/sedes/internal/greek"
)

func enumerate(t *testing.T, line string) []Scansion {
	t.Helper()
	clusters, err := greek.Classify(line)
	require.NoError(t, err)
	scansions, err := Enumerate(clusters)
	require.NoError(t, err)
	return scansions
}

func TestEnumerateResolved(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		pattern string
	}{
		{
			name:    "all spondees",
			line:    strings.TrimSpace(strings.Repeat("τῶν ", 12)),
			pattern: "++++++++++++",
		},
		{
			name: "all dactyls with correption",
			// The one surviving reading shortens μοι in hiatus.
			line:    "ἄνδρα μοι ἔννεπε, μοῦσα, πολύτροπον, ὃς μάλα πολλὰ",
			pattern: "+--+--+--+--+--++",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scansions := enumerate(t, tt.line)
			require.Len(t, scansions, 1)
			assert.Equal(t, tt.pattern, scansions[0].Pattern())
			assert.InDelta(t, 12.0, scansions[0].TotalDuration(), 1e-9)
		})
	}
}

func TestEnumerateAmbiguous(t *testing.T) {
	// Thirteen slots: one dactyl among feet one through five, and the
	// indeterminate middle syllables admit it at two different feet.
	line := "τῶν τῶν τῶν τῶν τά τά τά τά τά τῶν τῶν τῶν τῶν"
	scansions := enumerate(t, line)
	require.Len(t, scansions, 2)

	patterns := []string{scansions[0].Pattern(), scansions[1].Pattern()}
	assert.ElementsMatch(t, []string{
		"++++" + "+--" + "++" + "++" + "++",
		"++++" + "++" + "+--" + "++" + "++",
	}, patterns)
	for _, s := range scansions {
		assert.InDelta(t, 12.0, s.TotalDuration(), 1e-9)
	}
}

func TestEnumerateUnscannable(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "too short", line: "τῶν τῶν"},
		{name: "too long", line: strings.TrimSpace(strings.Repeat("τῶν ", 18))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scansions := enumerate(t, tt.line)
			assert.Empty(t, scansions)
		})
	}
}

func TestEnumerateFinalAnceps(t *testing.T) {
	// A final short vowel is brevis in longo: both readings collapse to a
	// recorded long, leaving a single scansion.
	line := strings.TrimSpace(strings.Repeat("τῶν ", 11)) + " τά"
	scansions := enumerate(t, line)
	require.Len(t, scansions, 1)
	pattern := scansions[0].Pattern()
	assert.Equal(t, "++++++++++++", pattern)
	assert.Equal(t, byte('+'), pattern[len(pattern)-1])
}

func TestEnumerateDeterministic(t *testing.T) {
	line := "ἄνδρα μοι ἔννεπε, μοῦσα, πολύτροπον, ὃς μάλα πολλὰ"
	first := enumerate(t, line)
	second := enumerate(t, line)
	assert.Equal(t, first, second)
}

func TestResolve(t *testing.T) {
	one := Scansion{{Text: "τῶν", Value: LongSlot}}
	two := Scansion{{Text: "τῶν", Value: ShortSlot}}

	assert.Equal(t, Unscannable, Resolve(nil).Status)
	assert.Equal(t, Resolved, Resolve([]Scansion{one}).Status)
	assert.Equal(t, Ambiguous, Resolve([]Scansion{one, two}).Status)
}

func TestFormatShape(t *testing.T) {
	assert.Equal(t, "–⏑⏑", FormatShape("+--"))
	assert.Equal(t, "", FormatShape(""))
}
