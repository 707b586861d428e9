package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kmantas/sedes/internal/expectancy"
	"github.com/kmantas/sedes/internal/model"
)

// wordRecordHeader is the column layout of the word-record CSV that the
// scan command writes and the expectancy command reads.
var wordRecordHeader = []string{
	"work", "book_n", "line_n", "word_n", "word", "lemma", "sedes", "metrical_shape", "tone_shape", "scanned",
}

// WriteWordRecords writes records as CSV with a header row. Withheld sedes
// values are written as empty fields, distinguishable from any real value.
func WriteWordRecords(w io.Writer, records []model.WordRecord, statuses map[string]model.ScanStatus) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(wordRecordHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		status := statuses[recordLineKey(r)]
		row := []string{
			r.Work, r.BookN, r.LineN,
			strconv.Itoa(r.WordN),
			r.Word, r.Lemma,
			r.SedesString(),
			r.MetricalShape,
			r.ToneShape,
			string(status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadWordRecords reads a word-record CSV produced by WriteWordRecords.
func ReadWordRecords(r io.Reader) ([]model.WordRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(wordRecordHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range wordRecordHeader[:9] {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("word-record CSV is missing column %q", name)
		}
	}

	var records []model.WordRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		record := model.WordRecord{
			Work:          row[index["work"]],
			BookN:         row[index["book_n"]],
			LineN:         row[index["line_n"]],
			Word:          row[index["word"]],
			Lemma:         row[index["lemma"]],
			MetricalShape: row[index["metrical_shape"]],
			ToneShape:     row[index["tone_shape"]],
		}
		if record.WordN, err = strconv.Atoi(row[index["word_n"]]); err != nil {
			return nil, fmt.Errorf("bad word_n %q: %w", row[index["word_n"]], err)
		}
		if s := row[index["sedes"]]; s != "" {
			if record.Sedes, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("bad sedes %q: %w", s, err)
			}
			record.SedesKnown = true
		}
		records = append(records, record)
	}
}

// Rows converts word records to the named-field rows the expectancy engine
// consumes. Records with withheld sedes are excluded: they carry no
// distribution value.
func Rows(records []model.WordRecord) []expectancy.Row {
	rows := make([]expectancy.Row, 0, len(records))
	for _, r := range records {
		if !r.SedesKnown {
			continue
		}
		rows = append(rows, expectancy.Row{
			"work":           r.Work,
			"book_n":         r.BookN,
			"line_n":         r.LineN,
			"word_n":         strconv.Itoa(r.WordN),
			"word":           r.Word,
			"lemma":          r.Lemma,
			"sedes":          r.SedesString(),
			"metrical_shape": r.MetricalShape,
			"tone_shape":     r.ToneShape,
		})
	}
	return rows
}

// WriteExpectancy writes expectancy records as CSV. Undefined z-scores are
// written as empty fields.
func WriteExpectancy(w io.Writer, spec expectancy.GroupingSpec, records []expectancy.Record) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(spec.CondVars)+len(spec.DistVars)+2)
	header = append(header, spec.CondVars...)
	header = append(header, spec.DistVars...)
	header = append(header, "x", "z")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := make([]string, 0, len(header))
		row = append(row, r.CondValues...)
		row = append(row, r.DistValues...)
		row = append(row, strconv.Itoa(r.X))
		if r.ZKnown {
			row = append(row, strconv.FormatFloat(r.Z, 'g', -1, 64))
		} else {
			row = append(row, "")
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordLineKey(r model.WordRecord) string {
	return r.Work + "\x00" + r.BookN + "\x00" + r.LineN
}
