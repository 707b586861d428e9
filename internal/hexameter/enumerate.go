package hexameter

import (
	"fmt"

	"github.com/kmantas/sedes/internal/common"
	"github.com/kmantas/sedes/internal/greek"
)

// maxSearchStates bounds the backtracking search. The branching factor is at
// most two per vowel slot and grammatical constraints prune most branches
// early, so a well-formed line explores a few dozen states; the bound exists
// to fail cleanly on malformed input rather than hang.
const maxSearchStates = 1 << 16

// partial is one frontier entry of the depth-first search: a prefix of slot
// assignments plus the template position reached by consuming that prefix.
// foot runs 1..6 while scanning and 7 once the sixth foot is closed; pos is
// the index of the next slot within the current foot.
type partial struct {
	values []SlotValue
	next   int
	foot   int
	pos    int
	cost   int
}

// Enumerate produces every complete assignment of quantities to the line's
// vowel slots that satisfies the fixed hexameter template: six feet, feet
// one through five each a dactyl or spondee, foot six a spondee whose final
// slot tolerates a short (brevis in longo) and is always recorded long.
//
// Branches carry costs (correption and synizesis cost one each); only
// minimum-cost survivors are returned, deduplicated by slot pattern. The
// search is exhaustive over an explicit stack, never recursive.
func Enumerate(clusters []greek.Cluster) ([]Scansion, error) {
	var slots []int // cluster index of each vowel cluster, in line order
	for i, c := range clusters {
		if c.Type == greek.Vowel {
			slots = append(slots, i)
		}
	}

	var complete []partial
	bestCost := -1

	stack := []partial{{foot: 1}}
	states := 0
	for len(stack) > 0 {
		states++
		if states > maxSearchStates {
			return nil, fmt.Errorf("%w: %d states", common.ErrDepthExceeded, states)
		}

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.next == len(slots) {
			if s.foot == 7 {
				if bestCost < 0 || s.cost < bestCost {
					bestCost = s.cost
				}
				complete = append(complete, s)
			}
			continue
		}
		if bestCost >= 0 && s.cost > bestCost {
			continue
		}

		options := quantityOptions(clusters[slots[s.next]].Quantity)
		for i := len(options) - 1; i >= 0; i-- {
			opt := options[i]
			child, ok := advance(s, opt)
			if ok {
				stack = append(stack, child)
			}
		}
	}

	var survivors []Scansion
	seen := make(map[string]bool)
	for _, s := range complete {
		if s.cost != bestCost {
			continue
		}
		scansion := assemble(clusters, slots, s.values)
		key := scansion.Pattern() + "/" + skipKey(s.values)
		if seen[key] {
			continue
		}
		seen[key] = true
		survivors = append(survivors, scansion)
	}
	return survivors, nil
}

// advance consumes one candidate value and steps the template automaton,
// returning false when the branch cannot extend to a valid hexameter.
func advance(s partial, opt option) (partial, bool) {
	child := partial{
		values: append(append([]SlotValue(nil), s.values...), opt.value),
		next:   s.next + 1,
		foot:   s.foot,
		pos:    s.pos,
		cost:   s.cost + opt.cost,
	}

	if opt.value == NoSlot {
		// Synizesis merge: the vowel occupies no metrical slot.
		return child, true
	}
	if s.foot > 6 {
		// Slots past the end of the sixth foot.
		return partial{}, false
	}

	switch s.pos {
	case 0:
		// Every foot begins with a longum.
		if opt.value != LongSlot {
			return partial{}, false
		}
		child.pos = 1
	case 1:
		if s.foot == 6 {
			// Final slot: anceps. Recorded long regardless of the natural
			// quantity, so competing short/long candidates collapse.
			child.values[len(child.values)-1] = LongSlot
			child.foot = 7
			child.pos = 0
			return child, true
		}
		if opt.value == LongSlot {
			// Spondee complete.
			child.foot = s.foot + 1
			child.pos = 0
		} else {
			child.pos = 2
		}
	case 2:
		// Second short of a dactyl.
		if opt.value != ShortSlot {
			return partial{}, false
		}
		child.foot = s.foot + 1
		child.pos = 0
	}
	return child, true
}

// assemble expands per-slot values back over the full cluster sequence.
func assemble(clusters []greek.Cluster, slots []int, values []SlotValue) Scansion {
	scansion := make(Scansion, len(clusters))
	for i, c := range clusters {
		scansion[i] = ScannedCluster{Text: c.Text, Value: NoSlot}
	}
	for i, clusterIndex := range slots {
		scansion[clusterIndex].Value = values[i]
	}
	return scansion
}

// skipKey distinguishes scansions whose slot patterns agree but whose
// synizesis merges differ.
func skipKey(values []SlotValue) string {
	b := make([]byte, len(values))
	for i, v := range values {
		if v == NoSlot {
			b[i] = '.'
		} else {
			b[i] = 'x'
		}
	}
	return string(b)
}
