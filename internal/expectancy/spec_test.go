package expectancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupingSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
		dist []string
		cond []string
	}{
		{name: "empty", spec: "", dist: nil, cond: nil},
		{name: "bare slash", spec: "/", dist: nil, cond: nil},
		{name: "dist only", spec: "aaa", dist: []string{"aaa"}, cond: nil},
		{name: "dist and cond", spec: "aaa/bbb", dist: []string{"aaa"}, cond: []string{"bbb"}},
		{name: "lists", spec: "aaa,bbb/ccc,ddd", dist: []string{"aaa", "bbb"}, cond: []string{"ccc", "ddd"}},
		{name: "trailing slash", spec: "aaa/", dist: []string{"aaa"}, cond: nil},
		{name: "leading slash", spec: "/aaa", dist: nil, cond: []string{"aaa"}},
		{name: "escaped comma", spec: `aaa\,bbb/ccc`, dist: []string{"aaa,bbb"}, cond: []string{"ccc"}},
		{name: "escaped slash", spec: `aaa\/bbb/ccc`, dist: []string{"aaa/bbb"}, cond: []string{"ccc"}},
		{name: "escaped backslash", spec: `aaa\\bbb/ccc`, dist: []string{`aaa\bbb`}, cond: []string{"ccc"}},
		{name: "escaped ordinary character", spec: `aaa\abbb/ccc`, dist: []string{"aaaabbb"}, cond: []string{"ccc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGroupingSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.dist, got.DistVars)
			assert.Equal(t, tt.cond, got.CondVars)
		})
	}
}

func TestParseGroupingSpecErrors(t *testing.T) {
	for _, spec := range []string{
		`\`,
		`aaa\`,
		`aaa/\`,
		"aaa,",
		"aaa,/",
		"aaa/,bbb",
		"aaa/bbb,",
		"aaa,,bbb",
		"aaa/bbb/ccc",
	} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseGroupingSpec(spec)
			assert.Error(t, err)
		})
	}
}
