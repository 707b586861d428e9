package sedes

import (
	"errors"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/greek"
	"github.com/kmantas/sedes/internal/hexameter"
	"github.com/kmantas/sedes/internal/model"
)

// WordSedes is one word of an analyzed line. Sedes is defined only when
// SedesKnown is true; Shape uses the Unicode longum/breve notation, Tone
// the per-slot accent markers of Assigned.
type WordSedes struct {
	Word       string
	Shape      string
	Tone       string
	WordN      int
	Sedes      float64
	SedesKnown bool
}

// Analysis is the full outcome of analyzing one line. For resolved and
// overridden lines Words carries sedes values; for ambiguous and
// unscannable lines Words still lists the line's words, with sedes
// withheld, and Candidates preserves every competing scansion for manual
// review. Err holds the recoverable per-line condition, if any.
type Analysis struct {
	Err        error
	Status     model.ScanStatus
	Words      []WordSedes
	Candidates [][]WordSedes
}

// Analyzer runs the scansion pipeline: manual-override lookup, quantity
// classification, scansion enumeration, ambiguity resolution, and sedes
// assignment. The override table is injected at construction and never
// mutated.
type Analyzer struct {
	known hexameter.KnownScansions
}

// NewAnalyzer creates an Analyzer with the given override table. A nil
// table disables overrides.
func NewAnalyzer(known hexameter.KnownScansions) *Analyzer {
	if known == nil {
		known = make(hexameter.KnownScansions)
	}
	return &Analyzer{known: known}
}

// Analyze analyzes one line. The returned error is non-nil only for fatal
// internal-consistency failures, which must abort the whole run; every
// per-line condition is reported inside the Analysis.
func (a *Analyzer) Analyze(line model.Line) (Analysis, error) {
	text := line.TextWithoutQuotes()

	if known, ok := a.known.Lookup(text); ok {
		return Analysis{
			Status: model.StatusOverridden,
			Words:  withSedes(recoverKnown(known)),
		}, nil
	}

	clusters, err := greek.Classify(text)
	if err != nil {
		return Analysis{
			Status: model.StatusUnrecognized,
			Err:    err,
			Words:  withoutSedes(line.Words()),
		}, nil
	}

	scansions, err := hexameter.Enumerate(clusters)
	if err != nil {
		return Analysis{
			Status: model.StatusUnscannable,
			Err:    err,
			Words:  withoutSedes(line.Words()),
		}, nil
	}

	switch result := hexameter.Resolve(scansions); result.Status {
	case hexameter.Resolved:
		assigned, err := Assign(result.Scansions[0])
		if err != nil {
			// A scansion that passed the template but does not total 12.0
			// means the rule tables themselves are inconsistent.
			return Analysis{}, err
		}
		return Analysis{
			Status: model.StatusResolved,
			Words:  withSedes(assigned),
		}, nil

	case hexameter.Ambiguous:
		candidates := make([][]WordSedes, 0, len(result.Scansions))
		for _, scansion := range result.Scansions {
			assigned, err := Assign(scansion)
			if err != nil {
				return Analysis{}, err
			}
			candidates = append(candidates, withSedes(assigned))
		}
		return Analysis{
			Status:     model.StatusAmbiguous,
			Err:        common.ErrAmbiguous,
			Words:      withoutSedes(line.Words()),
			Candidates: candidates,
		}, nil

	default:
		return Analysis{
			Status: model.StatusUnscannable,
			Err:    common.ErrUnscannable,
			Words:  withoutSedes(line.Words()),
		}, nil
	}
}

// IsFatal reports whether err from Analyze must abort the corpus run.
func IsFatal(err error) bool {
	return err != nil && errors.Is(err, common.ErrInternalConsistency)
}

func withSedes(assigned []Assigned) []WordSedes {
	words := make([]WordSedes, len(assigned))
	for i, a := range assigned {
		words[i] = WordSedes{
			Word:       a.Word,
			WordN:      i + 1,
			Sedes:      a.Sedes,
			SedesKnown: true,
			Shape:      hexameter.FormatShape(a.Shape),
			Tone:       a.Tone,
		}
	}
	return words
}

func withoutSedes(words []string) []WordSedes {
	out := make([]WordSedes, len(words))
	for i, w := range words {
		out[i] = WordSedes{Word: w, WordN: i + 1}
	}
	return out
}
