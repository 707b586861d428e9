package appositive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmantas/sedes/internal/model"
)

func record(lineN string, wordN int, word, shape string, sedes float64) model.WordRecord {
	return model.WordRecord{
		Work:          "Il",
		BookN:         "1",
		LineN:         lineN,
		WordN:         wordN,
		Word:          word,
		MetricalShape: shape,
		Sedes:         sedes,
		SedesKnown:    true,
	}
}

func TestIdentityMerge(t *testing.T) {
	words := []model.WordRecord{
		record("1", 1, "μῆνιν", "–⏑", 1),
		record("1", 2, "ἄειδε", "⏑–⏑", 2.5),
	}
	assert.Equal(t, [][]int{{0}, {1}}, Identity{}.Merge(words))
}

func TestSharedSedesMerge(t *testing.T) {
	// An elided particle carries no slots and shares the sedes of the
	// following word; the pair forms one unit.
	words := []model.WordRecord{
		record("96", 1, "δῶκεν", "–⏑", 1),
		record("96", 2, "δʼ", "", 2.5),
		record("96", 3, "υἱὸς", "⏑–", 2.5),
		record("96", 4, "Διὸς", "⏑⏑", 4.5),
	}
	assert.Equal(t, [][]int{{0}, {1, 2}, {3}}, SharedSedes{}.Merge(words))
}

func TestSharedSedesMergeWithheld(t *testing.T) {
	// Withheld sedes never match, even when the zero values are equal.
	words := []model.WordRecord{
		{Work: "Il", BookN: "1", LineN: "1", WordN: 1, Word: "τῶν"},
		{Work: "Il", BookN: "1", LineN: "1", WordN: 2, Word: "τῶν"},
	}
	assert.Equal(t, [][]int{{0}, {1}}, SharedSedes{}.Merge(words))
}

func TestApply(t *testing.T) {
	records := []model.WordRecord{
		record("96", 1, "δῶκεν", "–⏑", 1),
		record("96", 2, "δʼ", "", 2.5),
		record("96", 3, "υἱὸς", "⏑–", 2.5),
	}
	records[0].Lemma = "δίδωμι"
	records[2].Lemma = "υἱός"
	records[2].ToneShape = `.\-`

	merged := Apply(SharedSedes{}, records)
	require.Len(t, merged, 2)

	assert.Equal(t, "δῶκεν", merged[0].Word)
	assert.Equal(t, 1, merged[0].WordN)

	unit := merged[1]
	assert.Equal(t, "δʼ υἱὸς", unit.Word)
	assert.Equal(t, "⏑–", unit.MetricalShape)
	assert.Equal(t, `.\-`, unit.ToneShape)
	assert.Equal(t, "υἱός", unit.Lemma)
	assert.Equal(t, 2.5, unit.Sedes)
	assert.Equal(t, 2, unit.WordN)
}

func TestApplyKeepsLinesSeparate(t *testing.T) {
	// Identical sedes on consecutive lines must not merge across the
	// line boundary.
	records := []model.WordRecord{
		record("1", 1, "μῆνιν", "–⏑", 1),
		record("2", 1, "οὐλομένην", "–⏑⏑–", 1),
	}
	merged := Apply(SharedSedes{}, records)
	require.Len(t, merged, 2)
	assert.Equal(t, "μῆνιν", merged[0].Word)
	assert.Equal(t, "οὐλομένην", merged[1].Word)
	assert.Equal(t, 1, merged[1].WordN)
}

func TestApplyIdentityIsNoOp(t *testing.T) {
	records := []model.WordRecord{
		record("1", 1, "μῆνιν", "–⏑", 1),
		record("1", 2, "ἄειδε", "⏑–⏑", 2.5),
	}
	assert.Equal(t, records, Apply(Identity{}, records))
}
