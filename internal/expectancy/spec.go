// Package expectancy computes, for every observed (condition, distribution)
// value combination in a corpus, how unusual that combination is relative to
// the condition group's own weighted distribution.
package expectancy

import (
	"fmt"
)

// GroupingSpec names the fields that the engine partitions and counts by.
// CondVars partition the corpus into condition groups; DistVars identify the
// values counted within each group. Either side may be empty: no condition
// variables means one global partition, no distribution variables collapses
// counts to partition size.
type GroupingSpec struct {
	DistVars []string
	CondVars []string
}

// ParseGroupingSpec parses a "dist/cond" grouping specification: a
// comma-separated list of distribution variables, optionally followed by a
// slash and a comma-separated list of condition variables. A backslash
// escapes the character after it.
func ParseGroupingSpec(spec string) (GroupingSpec, error) {
	var distVars, condVars []string
	current := &distVars
	inCond := false
	var name []rune
	escaped := false

	endName := func(sawComma bool) error {
		if len(name) == 0 {
			if sawComma || len(*current) > 0 {
				return fmt.Errorf("empty variable name in %q", spec)
			}
			return nil
		}
		*current = append(*current, string(name))
		name = name[:0]
		return nil
	}

	for _, c := range spec {
		if escaped {
			name = append(name, c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case ',':
			if err := endName(true); err != nil {
				return GroupingSpec{}, err
			}
		case '/':
			if inCond {
				return GroupingSpec{}, fmt.Errorf("more than one %q in %q", "/", spec)
			}
			if err := endName(false); err != nil {
				return GroupingSpec{}, err
			}
			current = &condVars
			inCond = true
		default:
			name = append(name, c)
		}
	}
	if escaped {
		return GroupingSpec{}, fmt.Errorf("end of string after %q in %q", "\\", spec)
	}
	if err := endName(false); err != nil {
		return GroupingSpec{}, err
	}

	return GroupingSpec{DistVars: distVars, CondVars: condVars}, nil
}
