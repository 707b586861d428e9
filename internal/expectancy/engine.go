package expectancy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kmantas/sedes/internal/common"
)

// Row is one processed word's worth of named field values, as produced by
// the scansion pipeline (work, book_n, line_n, word_n, word, lemma, sedes,
// metrical_shape).
type Row map[string]string

// value extracts a named field from the row. An absent or empty condition
// or distribution value falls back to the literal word form.
func (r Row) value(name string) string {
	if v, ok := r[name]; ok && v != "" {
		return v
	}
	return r["word"]
}

// Record is the expectancy statistic for one observed (condition,
// distribution) value combination. X is the occurrence count; Z is the
// weighted z-score, defined only when ZKnown is true. A partition with zero
// weighted variance legitimately has no z-score; ZKnown distinguishes that
// state from missing data.
type Record struct {
	CondValues []string
	DistValues []string
	X          int
	Z          float64
	ZKnown     bool
}

// keySep joins multi-variable key values. NUL cannot appear in field values
// read from CSV rows, so joined keys compare the same as value tuples.
const keySep = "\x00"

type distEntry struct {
	values []string
	x      int
}

type condGroup struct {
	values []string
	dists  map[string]*distEntry
}

// Compute partitions rows by the spec's condition variables, counts
// occurrences of each distinct distribution value within each partition,
// and attaches a weighted z-score to every count. The result is sorted by
// condition key, then distribution key.
//
// The statistic is the weighted one: each occurrence count x is weighted by
// its own magnitude, so the weighted mean is Σx²/Σx and the weighted
// population variance is Σ[x·(x−mean)²]/Σx. An ordinary standard deviation
// over the distinct counts gives materially different, and here wrong,
// numbers; it remains available through Unweighted for comparison with
// legacy datasets, and the two must never be mixed in one dataset.
func Compute(rows []Row, spec GroupingSpec) ([]Record, error) {
	return compute(rows, spec, weightedStats)
}

// Unweighted is the legacy variant of Compute: ordinary mean and population
// standard deviation over the partition's counts, each distinct value
// counted once.
func Unweighted(rows []Row, spec GroupingSpec) ([]Record, error) {
	return compute(rows, spec, unweightedStats)
}

func compute(rows []Row, spec GroupingSpec, stats func([]int) (float64, float64)) ([]Record, error) {
	groups := make(map[string]*condGroup)
	for _, row := range rows {
		condValues := fieldValues(row, spec.CondVars)
		condKey := strings.Join(condValues, keySep)
		group, ok := groups[condKey]
		if !ok {
			group = &condGroup{values: condValues, dists: make(map[string]*distEntry)}
			groups[condKey] = group
		}

		distValues := fieldValues(row, spec.DistVars)
		distKey := strings.Join(distValues, keySep)
		entry, ok := group.dists[distKey]
		if !ok {
			entry = &distEntry{values: distValues}
			group.dists[distKey] = entry
		}
		entry.x++
	}

	var records []Record
	for _, group := range groups {
		xs := make([]int, 0, len(group.dists))
		for _, entry := range group.dists {
			if entry.x <= 0 {
				return nil, fmt.Errorf("%w: non-positive count %d in partition %q",
					common.ErrInternalConsistency, entry.x, strings.Join(group.values, ","))
			}
			xs = append(xs, entry.x)
		}
		if len(xs) == 0 {
			continue
		}

		mean, stddev := stats(xs)
		for _, entry := range group.dists {
			record := Record{
				CondValues: group.values,
				DistValues: entry.values,
				X:          entry.x,
			}
			if stddev != 0 {
				record.Z = (float64(entry.x) - mean) / stddev
				record.ZKnown = true
			}
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		ci := strings.Join(records[i].CondValues, keySep)
		cj := strings.Join(records[j].CondValues, keySep)
		if ci != cj {
			return ci < cj
		}
		return strings.Join(records[i].DistValues, keySep) < strings.Join(records[j].DistValues, keySep)
	})
	return records, nil
}

func fieldValues(row Row, names []string) []string {
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = row.value(name)
	}
	return values
}

// weightedStats treats each occurrence count as if it occurred that many
// times: a count of x contributes x copies of the value x. Weighted mean is
// therefore Σx²/Σx and the weighted population variance Σ[x·(x−mean)²]/Σx.
func weightedStats(xs []int) (mean, stddev float64) {
	var sum, sumSquares float64
	for _, x := range xs {
		sum += float64(x)
		sumSquares += float64(x) * float64(x)
	}
	mean = sumSquares / sum

	var variance float64
	for _, x := range xs {
		d := float64(x) - mean
		variance += float64(x) * d * d
	}
	variance /= sum
	return mean, math.Sqrt(variance)
}

// unweightedStats is the ordinary mean and population standard deviation of
// the counts, each distinct value counted once.
func unweightedStats(xs []int) (mean, stddev float64) {
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	mean = sum / n

	var variance float64
	for _, x := range xs {
		d := float64(x) - mean
		variance += d * d
	}
	variance /= n
	return mean, math.Sqrt(variance)
}
