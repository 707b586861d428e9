package corpus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmantas/sedes/internal/expectancy"
	"github.com/kmantas/sedes/internal/model"
)

func sampleRecords() []model.WordRecord {
	return []model.WordRecord{
		{
			Work: "Il", BookN: "1", LineN: "1", WordN: 1,
			Word: "μῆνιν", Lemma: "μῆνις", MetricalShape: "–⏑", ToneShape: "~-.",
			Sedes: 1, SedesKnown: true,
		},
		{
			Work: "Il", BookN: "1", LineN: "1", WordN: 2,
			Word: "ἄειδε", Lemma: "ἀείδω", MetricalShape: "⏑–⏑", ToneShape: "/.-.",
			Sedes: 2.5, SedesKnown: true,
		},
		{
			Work: "Il", BookN: "1", LineN: "2", WordN: 1,
			Word: "οὐλομένην", MetricalShape: "",
		},
	}
}

func TestWordRecordsRoundTrip(t *testing.T) {
	records := sampleRecords()
	statuses := map[string]model.ScanStatus{
		"Il\x001\x001": model.StatusResolved,
		"Il\x001\x002": model.StatusAmbiguous,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWordRecords(&buf, records, statuses))

	got, err := ReadWordRecords(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, records[0], got[0])
	assert.Equal(t, records[1], got[1])
	// Withheld sedes survives as withheld, not as zero.
	assert.False(t, got[2].SedesKnown)
	assert.Equal(t, 0.0, got[2].Sedes)
}

func TestWriteWordRecordsStatusColumn(t *testing.T) {
	var buf bytes.Buffer
	statuses := map[string]model.ScanStatus{"Il\x001\x001": model.StatusResolved}
	require.NoError(t, WriteWordRecords(&buf, sampleRecords()[:1], statuses))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "work,book_n,line_n,word_n,word,lemma,sedes,metrical_shape,tone_shape,scanned", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",RESOLVED"))
	assert.Contains(t, lines[1], ",1,μῆνιν,")
	assert.Contains(t, lines[1], ",~-.,")
}

func TestReadWordRecordsMissingColumn(t *testing.T) {
	_, err := ReadWordRecords(strings.NewReader("work,book_n\nIl,1\n"))
	assert.Error(t, err)
}

func TestRowsExcludesWithheldSedes(t *testing.T) {
	rows := Rows(sampleRecords())
	require.Len(t, rows, 2)
	assert.Equal(t, "μῆνιν", rows[0]["word"])
	assert.Equal(t, "~-.", rows[0]["tone_shape"])
	assert.Equal(t, "2.5", rows[1]["sedes"])
}

func TestWriteExpectancy(t *testing.T) {
	spec := expectancy.GroupingSpec{DistVars: []string{"sedes"}, CondVars: []string{"lemma"}}
	records := []expectancy.Record{
		{CondValues: []string{"μῆνις"}, DistValues: []string{"1"}, X: 3, Z: -0.5, ZKnown: true},
		{CondValues: []string{"μῆνις"}, DistValues: []string{"3"}, X: 7},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpectancy(&buf, spec, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "lemma,sedes,x,z", lines[0])
	assert.Equal(t, "μῆνις,1,3,-0.5", lines[1])
	// An undefined z-score is an empty field, not zero.
	assert.Equal(t, "μῆνις,3,7,", lines[2])
}
