package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func sampleImport() []ImportLine {
	return []ImportLine{
		{
			BookN:  "1",
			LineN:  "1",
			Text:   "μῆνιν ἄειδε θεὰ",
			Status: model.StatusResolved,
			Records: []model.WordRecord{
				{Work: "Il", BookN: "1", LineN: "1", WordN: 1, Word: "μῆνιν", Lemma: "μῆνις", Sedes: 1, SedesKnown: true, MetricalShape: "–⏑", ToneShape: "~-."},
				{Work: "Il", BookN: "1", LineN: "1", WordN: 2, Word: "ἄειδε", Sedes: 2.5, SedesKnown: true, MetricalShape: "⏑–⏑", ToneShape: "/.-."},
			},
		},
		{
			BookN:  "1",
			LineN:  "2",
			Text:   "τῶν τῶν",
			Status: model.StatusUnscannable,
			Records: []model.WordRecord{
				{Work: "Il", BookN: "1", LineN: "2", WordN: 1, Word: "τῶν"},
				{Work: "Il", BookN: "1", LineN: "2", WordN: 2, Word: "τῶν"},
			},
		},
	}
}

func TestImportLinesRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	importID, err := store.ImportLines(ctx, "Il", sampleImport(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, importID)

	records, err := store.GetWordRecords(ctx, "Il")
	require.NoError(t, err)
	require.Len(t, records, 4)

	first := records[0]
	assert.Equal(t, "μῆνιν", first.Word)
	assert.Equal(t, "μῆνις", first.Lemma)
	assert.True(t, first.SedesKnown)
	assert.Equal(t, 1.0, first.Sedes)
	assert.Equal(t, "–⏑", first.MetricalShape)
	assert.Equal(t, "~-.", first.ToneShape)

	second := records[1]
	assert.Equal(t, 2.5, second.Sedes)

	// Withheld sedes stays withheld across the round trip.
	third := records[2]
	assert.Equal(t, "2", third.LineN)
	assert.False(t, third.SedesKnown)
	assert.Zero(t, third.Sedes)
}

func TestGetWordRecordsOrder(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Insert out of order; line numbers must sort numerically, not
	// lexically, so 2 precedes 10.
	lines := []ImportLine{
		{BookN: "1", LineN: "10", Status: model.StatusResolved, Records: []model.WordRecord{
			{Work: "Od", BookN: "1", LineN: "10", WordN: 1, Word: "πολλὰ"},
		}},
		{BookN: "1", LineN: "2", Status: model.StatusResolved, Records: []model.WordRecord{
			{Work: "Od", BookN: "1", LineN: "2", WordN: 1, Word: "πλάγχθη"},
		}},
	}
	_, err := store.ImportLines(ctx, "Od", lines, nil)
	require.NoError(t, err)

	records, err := store.GetWordRecords(ctx, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[0].LineN)
	assert.Equal(t, "10", records[1].LineN)
}

func TestGetWordRecordsFiltersByWork(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.ImportLines(ctx, "Il", sampleImport(), nil)
	require.NoError(t, err)

	records, err := store.GetWordRecords(ctx, "Od")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestImportLinesDuplicateLocation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.ImportLines(ctx, "Il", sampleImport(), nil)
	require.NoError(t, err)

	var warnings []error
	_, err = store.ImportLines(ctx, "Il", sampleImport()[:1], func(w error) {
		warnings = append(warnings, w)
	})
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], common.ErrDuplicateLocation)

	// Both copies are kept.
	records, err := store.GetWordRecords(ctx, "Il")
	require.NoError(t, err)
	assert.Len(t, records, 6)
}

func TestGetLineStatuses(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.ImportLines(ctx, "Il", sampleImport(), nil)
	require.NoError(t, err)

	statuses, err := store.GetLineStatuses(ctx, "Il")
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, model.StatusResolved, statuses["Il\x001\x001"])
	assert.Equal(t, model.StatusUnscannable, statuses["Il\x001\x002"])
}

func TestGetStats(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.ImportLines(ctx, "Il", sampleImport(), nil)
	require.NoError(t, err)
	_, err = store.ImportLines(ctx, "Od", []ImportLine{
		{BookN: "1", LineN: "1", Status: model.StatusAmbiguous},
	}, nil)
	require.NoError(t, err)

	stats, err := store.GetStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, WorkStats{Work: "Il", Total: 2, Resolved: 1, Unscannable: 1}, stats[0])
	assert.Equal(t, WorkStats{Work: "Od", Total: 1, Ambiguous: 1}, stats[1])
}

func TestMigrateIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}
