package corpus

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/lemma"
	"github.com/kmantas/sedes/internal/model"
	"github.com/kmantas/sedes/internal/sedes"
)

// LineResult is the outcome of analyzing one source line. Records always
// lists every word of the line; for ambiguous and unscannable lines every
// record has its sedes withheld and Candidates preserves the competing
// scansions.
type LineResult struct {
	SourceLine
	Err        error
	Status     model.ScanStatus
	Records    []model.WordRecord
	Candidates [][]sedes.WordSedes
}

// Stats counts line outcomes for one processing run.
type Stats struct {
	Total        int
	Resolved     int
	Overridden   int
	Ambiguous    int
	Unscannable  int
	Unrecognized int
}

// Processor runs the scansion pipeline over a corpus. Lines are independent
// pure transformations, so they are analyzed in parallel; results are
// collected in original order so output is deterministic.
type Processor struct {
	analyzer   *sedes.Analyzer
	lemmatizer lemma.Lemmatizer
	jobs       int
	progress   func(done int)
}

// NewProcessor creates a Processor. The lemmatizer may be nil, leaving the
// lemma field empty (downstream consumers fall back to the word form).
func NewProcessor(analyzer *sedes.Analyzer, lemmatizer lemma.Lemmatizer, jobs int) *Processor {
	if jobs < 1 {
		jobs = 1
	}
	return &Processor{analyzer: analyzer, lemmatizer: lemmatizer, jobs: jobs}
}

// OnProgress registers a callback invoked once per completed line.
func (p *Processor) OnProgress(fn func(done int)) {
	p.progress = fn
}

// Process analyzes every line. Per-line conditions are recorded on the
// line's result and logged; only fatal internal-consistency failures abort
// the run, with full context.
func (p *Processor) Process(ctx context.Context, lines []SourceLine) ([]LineResult, Stats, error) {
	results := make([]LineResult, len(lines))

	indexes := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var fatal error
	done := 0

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for w := 0; w < p.jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				result, err := p.analyzeLine(lines[i])
				mu.Lock()
				if err != nil && fatal == nil {
					fatal = err
					cancel()
				}
				results[i] = result
				done++
				if p.progress != nil {
					p.progress(done)
				}
				mu.Unlock()
			}
		}()
	}

	for i := range lines {
		select {
		case indexes <- i:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(indexes)
	wg.Wait()

	if fatal != nil {
		return nil, Stats{}, fatal
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case model.StatusResolved:
			stats.Resolved++
		case model.StatusOverridden:
			stats.Overridden++
		case model.StatusAmbiguous:
			stats.Ambiguous++
		case model.StatusUnscannable:
			stats.Unscannable++
		case model.StatusUnrecognized:
			stats.Unrecognized++
		}
	}
	return results, stats, nil
}

func (p *Processor) analyzeLine(sl SourceLine) (LineResult, error) {
	analysis, err := p.analyzer.Analyze(sl.Line)
	if err != nil {
		return LineResult{}, fmt.Errorf("%s %s: %w", sl.Work, sl.Locator, err)
	}

	result := LineResult{
		SourceLine: sl,
		Status:     analysis.Status,
		Candidates: analysis.Candidates,
	}
	if analysis.Err != nil {
		result.Err = common.NewLineError(analysis.Err, sl.Work, sl.Locator.String())
		p.logDiagnostic(sl, analysis)
	}

	result.Records = make([]model.WordRecord, len(analysis.Words))
	for i, w := range analysis.Words {
		record := model.WordRecord{
			Work:          sl.Work,
			BookN:         sl.Locator.BookN,
			LineN:         sl.Locator.LineN,
			WordN:         w.WordN,
			Word:          w.Word,
			Sedes:         w.Sedes,
			SedesKnown:    w.SedesKnown,
			MetricalShape: w.Shape,
			ToneShape:     w.Tone,
		}
		if p.lemmatizer != nil {
			if l, ok := p.lemmatizer.Lookup(w.Word, sl.Locator.String()); ok {
				record.Lemma = l
			}
		}
		result.Records[i] = record
	}
	return result, nil
}

// logDiagnostic emits the machine-readable diagnostic for a line excluded
// from automatic scansion. slog serializes writes, so concurrent workers
// need no further coordination.
func (p *Processor) logDiagnostic(sl SourceLine, analysis sedes.Analysis) {
	fields := common.Fields{
		"work":   sl.Work,
		"book_n": sl.Locator.BookN,
		"line_n": sl.Locator.LineN,
		"status": string(analysis.Status),
		"text":   sl.Line.Text(),
	}
	if len(analysis.Candidates) > 0 {
		fields["candidates"] = FormatCandidates(analysis.Candidates)
	}
	common.LogWarn("line excluded from automatic scansion", fields)
}

// FormatCandidates renders competing scansions word by word for human
// review: one "word:shape" list per candidate.
func FormatCandidates(candidates [][]sedes.WordSedes) []string {
	out := make([]string, len(candidates))
	for i, candidate := range candidates {
		parts := make([]string, len(candidate))
		for j, w := range candidate {
			parts[j] = fmt.Sprintf("%s:%s", w.Word, w.Shape)
		}
		out[i] = strings.Join(parts, " ")
	}
	return out
}

// StatusesByLine indexes results by line for CSV output.
func StatusesByLine(results []LineResult) map[string]model.ScanStatus {
	statuses := make(map[string]model.ScanStatus, len(results))
	for _, r := range results {
		statuses[r.Work+"\x00"+r.Locator.BookN+"\x00"+r.Locator.LineN] = r.Status
	}
	return statuses
}

// AllRecords flattens results into one record list, in line order.
func AllRecords(results []LineResult) []model.WordRecord {
	var records []model.WordRecord
	for _, r := range results {
		records = append(records, r.Records...)
	}
	return records
}
