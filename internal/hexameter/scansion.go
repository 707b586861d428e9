// Package hexameter enumerates the metrically valid scansions of a line of
// dactylic hexameter and classifies the outcome as resolved, ambiguous, or
// unscannable.
package hexameter

import (
	"strings"

	"github.com/kmantas/sedes/internal/greek"
)

// SlotValue is the resolved quantity of one cluster in a complete scansion.
type SlotValue byte

// Slot value constants. NoSlot marks consonants, interword text, and vowels
// merged away by synizesis; they occupy no metrical slot.
const (
	NoSlot    SlotValue = 0
	ShortSlot SlotValue = '-'
	LongSlot  SlotValue = '+'
)

// Duration returns the metrical duration of the slot: 0.5 for a short,
// 1.0 for a long, 0 for no slot.
func (v SlotValue) Duration() float64 {
	switch v {
	case ShortSlot:
		return 0.5
	case LongSlot:
		return 1.0
	}
	return 0
}

// ScannedCluster pairs a character cluster with its resolved quantity.
type ScannedCluster struct {
	Text  string
	Value SlotValue
}

// Scansion is a complete, internally consistent assignment of quantities to
// every cluster of a line. Scansions are immutable values; candidate
// scansions of the same line share no state.
type Scansion []ScannedCluster

// Pattern renders the scansion's slot quantities as a string of "+" and "-",
// one per metrical slot.
func (s Scansion) Pattern() string {
	var b strings.Builder
	for _, c := range s {
		if c.Value != NoSlot {
			b.WriteByte(byte(c.Value))
		}
	}
	return b.String()
}

// TotalDuration sums the durations of the scansion's slots. A full
// hexameter line totals exactly 12.0.
func (s Scansion) TotalDuration() float64 {
	var total float64
	for _, c := range s {
		total += c.Value.Duration()
	}
	return total
}

// FormatShape converts a raw "+"/"-" metrical shape to the Unicode
// longum/breve notation used in output: "+-" becomes "–⏑".
func FormatShape(shape string) string {
	var b strings.Builder
	for i := 0; i < len(shape); i++ {
		switch shape[i] {
		case '+':
			b.WriteRune('–')
		case '-':
			b.WriteRune('⏑')
		}
	}
	return b.String()
}

// Status classifies the outcome of enumerating a line's scansions.
type Status int

// Outcome constants.
const (
	// Resolved means exactly one scansion survived.
	Resolved Status = iota
	// Overridden means a manual override supplied the scansion verbatim.
	Overridden
	// Ambiguous means more than one scansion survived.
	Ambiguous
	// Unscannable means no assignment satisfies the hexameter template.
	Unscannable
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Overridden:
		return "overridden"
	case Ambiguous:
		return "ambiguous"
	case Unscannable:
		return "unscannable"
	}
	return "unknown"
}

// Result is the tagged outcome of scansion enumeration for one line.
// Scansions holds the single survivor when Status is Resolved, every
// surviving candidate when Ambiguous, and nothing when Unscannable.
type Result struct {
	Scansions []Scansion
	Status    Status
}

// Resolve classifies a set of surviving scansions.
func Resolve(scansions []Scansion) Result {
	switch len(scansions) {
	case 0:
		return Result{Status: Unscannable}
	case 1:
		return Result{Status: Resolved, Scansions: scansions}
	}
	return Result{Status: Ambiguous, Scansions: scansions}
}

// quantityOptions expands a provisional quantity into the candidate slot
// values the enumerator may branch over, each with a cost. The natural
// reading costs nothing; correption shortening and synizesis merging cost
// one each. Minimum total cost breaks ties between complete scansions.
func quantityOptions(q greek.Quantity) []option {
	switch q {
	case greek.Short:
		return []option{{value: ShortSlot}}
	case greek.Long:
		return []option{{value: LongSlot}}
	case greek.Indeterminate, greek.IndeterminateCorreption:
		return []option{{value: LongSlot}, {value: ShortSlot}}
	case greek.LongCorreption:
		return []option{{value: LongSlot}, {value: ShortSlot, cost: 1}}
	case greek.ShortSynizesis:
		return []option{{value: ShortSlot}, {value: NoSlot, cost: 1}}
	}
	return nil
}

type option struct {
	value SlotValue
	cost  int
}
