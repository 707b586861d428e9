package sedes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/greek"
	"github.com/kmantas/sedes/internal/hexameter"
)

func scan(t *testing.T, line string) hexameter.Scansion {
	t.Helper()
	clusters, err := greek.Classify(line)
	require.NoError(t, err)
	scansions, err := hexameter.Enumerate(clusters)
	require.NoError(t, err)
	require.Len(t, scansions, 1)
	return scansions[0]
}

func TestAssign(t *testing.T) {
	assigned, err := Assign(scan(t, "ἄνδρα μοι ἔννεπε, μοῦσα, πολύτροπον, ὃς μάλα πολλὰ"))
	require.NoError(t, err)

	want := []Assigned{
		{Word: "ἄνδρα", Shape: "+-", Tone: "/-.", Sedes: 1},
		{Word: "μοι", Shape: "-", Tone: ".", Sedes: 2.5},
		{Word: "ἔννεπε", Shape: "+--", Tone: "/-..", Sedes: 3},
		{Word: "μοῦσα", Shape: "+-", Tone: "~-.", Sedes: 5},
		{Word: "πολύτροπον", Shape: "-+--", Tone: "./-..", Sedes: 6.5},
		{Word: "ὃς", Shape: "+", Tone: `\-`, Sedes: 9},
		{Word: "μάλα", Shape: "--", Tone: "/.", Sedes: 10},
		{Word: "πολλὰ", Shape: "++", Tone: `.-\-`, Sedes: 11},
	}
	require.Len(t, assigned, len(want))
	for i, w := range want {
		assert.Equal(t, greek.Normalize(w.Word), assigned[i].Word, "word %d", i)
		assert.Equal(t, w.Shape, assigned[i].Shape, "shape of %s", w.Word)
		assert.Equal(t, w.Tone, assigned[i].Tone, "tone of %s", w.Word)
		assert.Equal(t, w.Sedes, assigned[i].Sedes, "sedes of %s", w.Word)
	}
}

func TestToneMarker(t *testing.T) {
	tests := []struct {
		cluster string
		value   hexameter.SlotValue
		want    string
	}{
		{"α", hexameter.ShortSlot, "."},
		{greek.Normalize("ά"), hexameter.ShortSlot, "/"},
		{greek.Normalize("ὰ"), hexameter.ShortSlot, `\`},
		{greek.Normalize("ᾶ"), hexameter.ShortSlot, "~"},
		{"α", hexameter.LongSlot, ".-"},
		{greek.Normalize("ά"), hexameter.LongSlot, "/-"},
		{greek.Normalize("ὰ"), hexameter.LongSlot, `\-`},
		{greek.Normalize("οῦ"), hexameter.LongSlot, "~-"},
	}
	for _, tt := range tests {
		marker, err := toneMarker(tt.cluster, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, marker, "cluster %q", tt.cluster)
	}

	// Two pitch accents in one cluster cannot come from well-formed text.
	_, err := toneMarker("ά̀", hexameter.ShortSlot)
	assert.ErrorIs(t, err, common.ErrInternalConsistency)
}

func TestAssignMonotonic(t *testing.T) {
	assigned, err := Assign(scan(t, "ἄνδρα μοι ἔννεπε, μοῦσα, πολύτροπον, ὃς μάλα πολλὰ"))
	require.NoError(t, err)

	prev := 0.0
	for _, a := range assigned {
		assert.Greater(t, a.Sedes, prev)
		prev = a.Sedes
	}
	assert.LessOrEqual(t, prev, 12.0)
}

func TestAssignShortDurations(t *testing.T) {
	scansion := hexameter.Scansion{
		{Text: "τ", Value: hexameter.NoSlot},
		{Text: "ω", Value: hexameter.LongSlot},
	}
	_, err := Assign(scansion)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInternalConsistency)
}

func TestAssignTrailingSlotlessWord(t *testing.T) {
	scansion := hexameter.Scansion{}
	for i := 0; i < 12; i++ {
		scansion = append(scansion, hexameter.ScannedCluster{Text: "ω", Value: hexameter.LongSlot})
	}
	scansion = append(scansion,
		hexameter.ScannedCluster{Text: " ", Value: hexameter.NoSlot},
		hexameter.ScannedCluster{Text: "δ", Value: hexameter.NoSlot},
	)
	_, err := Assign(scansion)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInternalConsistency)
}

func TestRecoverKnownElision(t *testing.T) {
	table := hexameter.DefaultKnown()
	known, ok := table.Lookup("δῶκεν ἔπειτα φέρειν, ὃ δʼ ἐδέξατο χαίρων ἑῷ θυμῷ")
	require.True(t, ok)

	assigned := recoverKnown(known)
	require.Len(t, assigned, 9)

	wantSedes := []float64{1, 2.5, 4.5, 6, 6.5, 6.5, 9, 10.5, 11}
	for i, want := range wantSedes {
		assert.Equal(t, want, assigned[i].Sedes, "word %d (%s)", i, assigned[i].Word)
	}
	// The elided particle carries no slots and shares the sedes of the word
	// that follows it.
	assert.Equal(t, "", assigned[4].Shape)
	assert.Equal(t, assigned[5].Sedes, assigned[4].Sedes)
}
