package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/model"
)

// ImportLines stores one processing run's lines and word records under a
// fresh import batch ID. Duplicate locations already present in the store
// are kept and reported through warn (which may be nil).
func (s *SQLiteStorage) ImportLines(ctx context.Context, work string, lines []ImportLine, warn func(error)) (string, error) {
	importID := uuid.New().String()

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, work) VALUES (?, ?)`, importID, work); err != nil {
		return "", fmt.Errorf("failed to create import batch: %w", err)
	}

	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lines (work, book_n, line_n, text, status, import_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare line insert: %w", err)
	}
	defer func() { _ = lineStmt.Close() }()

	wordStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO word_records (work, book_n, line_n, word_n, word, lemma, sedes, metrical_shape, tone_shape, import_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare word insert: %w", err)
	}
	defer func() { _ = wordStmt.Close() }()

	for _, line := range lines {
		var existing int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM lines WHERE work = ? AND book_n = ? AND line_n = ? AND import_id != ?`,
			work, line.BookN, line.LineN, importID).Scan(&existing)
		if err != nil {
			return "", fmt.Errorf("failed to check for duplicate location: %w", err)
		}
		if existing > 0 && warn != nil {
			warn(common.NewLineError(common.ErrDuplicateLocation, work, line.BookN+"."+line.LineN))
		}

		if _, err := lineStmt.ExecContext(ctx,
			work, line.BookN, line.LineN, line.Text, string(line.Status), importID); err != nil {
			return "", fmt.Errorf("failed to insert line: %w", err)
		}
		for _, r := range line.Records {
			if _, err := wordStmt.ExecContext(ctx,
				r.Work, r.BookN, r.LineN, r.WordN, r.Word, r.Lemma,
				r.SedesString(), r.MetricalShape, r.ToneShape, importID); err != nil {
				return "", fmt.Errorf("failed to insert word record: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}
	return importID, nil
}

// ImportLine is one line of an import batch.
type ImportLine struct {
	BookN   string
	LineN   string
	Text    string
	Status  model.ScanStatus
	Records []model.WordRecord
}

// GetWordRecords returns stored word records, optionally filtered by work.
// Records come back ordered by work, book, line, and word number.
func (s *SQLiteStorage) GetWordRecords(ctx context.Context, work string) ([]model.WordRecord, error) {
	query := `
		SELECT work, book_n, line_n, word_n, word, lemma, sedes, metrical_shape, tone_shape
		FROM word_records
	`
	var args []any
	if work != "" {
		query += ` WHERE work = ?`
		args = append(args, work)
	}
	query += ` ORDER BY work, book_n, CAST(line_n AS INTEGER), line_n, word_n`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query word records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.WordRecord
	for rows.Next() {
		var r model.WordRecord
		var lemma, sedes, shape, tone sql.NullString
		if err := rows.Scan(&r.Work, &r.BookN, &r.LineN, &r.WordN, &r.Word, &lemma, &sedes, &shape, &tone); err != nil {
			return nil, fmt.Errorf("failed to scan word record: %w", err)
		}
		r.Lemma = lemma.String
		r.MetricalShape = shape.String
		r.ToneShape = tone.String
		if sedes.String != "" {
			value, err := strconv.ParseFloat(sedes.String, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: stored sedes %q", common.ErrInternalConsistency, sedes.String)
			}
			r.Sedes = value
			r.SedesKnown = true
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetLineStatuses returns each stored line's scansion outcome, keyed the
// way the CSV writer expects.
func (s *SQLiteStorage) GetLineStatuses(ctx context.Context, work string) (map[string]model.ScanStatus, error) {
	query := `SELECT work, book_n, line_n, status FROM lines`
	var args []any
	if work != "" {
		query += ` WHERE work = ?`
		args = append(args, work)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query line statuses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	statuses := make(map[string]model.ScanStatus)
	for rows.Next() {
		var lineWork, bookN, lineN, status string
		if err := rows.Scan(&lineWork, &bookN, &lineN, &status); err != nil {
			return nil, fmt.Errorf("failed to scan line status: %w", err)
		}
		statuses[lineWork+"\x00"+bookN+"\x00"+lineN] = model.ScanStatus(status)
	}
	return statuses, rows.Err()
}

// WorkStats counts line outcomes for one work.
type WorkStats struct {
	Work         string
	Total        int
	Resolved     int
	Overridden   int
	Ambiguous    int
	Unscannable  int
	Unrecognized int
}

// GetStats returns per-work scansion outcome counts.
func (s *SQLiteStorage) GetStats(ctx context.Context) ([]WorkStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT work, status, COUNT(*)
		FROM lines
		GROUP BY work, status
		ORDER BY work
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byWork := make(map[string]*WorkStats)
	var order []string
	for rows.Next() {
		var work, status string
		var count int
		if err := rows.Scan(&work, &status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats, ok := byWork[work]
		if !ok {
			stats = &WorkStats{Work: work}
			byWork[work] = stats
			order = append(order, work)
		}
		stats.Total += count
		switch model.ScanStatus(status) {
		case model.StatusResolved:
			stats.Resolved += count
		case model.StatusOverridden:
			stats.Overridden += count
		case model.StatusAmbiguous:
			stats.Ambiguous += count
		case model.StatusUnscannable:
			stats.Unscannable += count
		case model.StatusUnrecognized:
			stats.Unrecognized += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]WorkStats, 0, len(order))
	for _, work := range order {
		out = append(out, *byWork[work])
	}
	return out, nil
}
