// Package greek segments decomposed Greek text into letter clusters and
// assigns each vowel cluster a provisional metrical quantity.
package greek

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kmantas/sedes/internal/common"
)

// ClusterType classifies a character cluster.
type ClusterType int

// Cluster type constants.
const (
	Other ClusterType = iota
	Consonant
	Vowel
	Diacritical
)

// Quantity is the provisional metrical value of a cluster. Non-vowel
// clusters carry None. Indeterminate values are resolved by the scansion
// enumerator; the correption and synizesis variants tell the enumerator
// which branches to explore and at what cost.
type Quantity int

// Quantity constants.
const (
	None Quantity = iota
	Short
	Long
	Indeterminate
	LongCorreption
	IndeterminateCorreption
	ShortSynizesis
)

func (q Quantity) String() string {
	switch q {
	case None:
		return ""
	case Short:
		return "-"
	case Long:
		return "+"
	case Indeterminate:
		return "?"
	case LongCorreption:
		return "+^"
	case IndeterminateCorreption:
		return "?^"
	case ShortSynizesis:
		return "-~"
	}
	return "!"
}

// Cluster is a maximal run of one or more base letters plus combining
// diacritics: a consonant group, a vowel or diphthong, or interword text.
type Cluster struct {
	Text     string
	Type     ClusterType
	Quantity Quantity
}

var consonants = map[rune]bool{
	'β': true, 'γ': true, 'δ': true, 'ζ': true, 'θ': true, 'κ': true,
	'λ': true, 'μ': true, 'ν': true, 'ξ': true, 'π': true, 'ρ': true,
	'ς': true, 'σ': true, 'τ': true, 'φ': true, 'χ': true, 'ψ': true,
	'ϝ': true, // digamma
	'ϲ': true, // lunate sigma
}

var vowels = map[rune]bool{
	'α': true, 'ε': true, 'η': true, 'ι': true, 'ο': true, 'υ': true, 'ω': true,
}

const (
	smoothBreathing = '̓'
	roughBreathing  = '̔'
	acuteAccent     = '́'
	circumflex      = '͂'
	graveAccent     = '̀'
	diaeresis       = '̈'
	iotaSubscript   = 'ͅ'
	dotBelow        = '̣'
)

var diacriticals = map[rune]bool{
	smoothBreathing: true,
	roughBreathing:  true,
	acuteAccent:     true,
	circumflex:      true,
	graveAccent:     true,
	diaeresis:       true,
	iotaSubscript:   true,
	dotBelow:        true,
}

// naturalLength maps vowels whose length is grammatically fixed. Alpha,
// iota, and upsilon are absent: their length is indeterminate.
var naturalLength = map[rune]Quantity{
	'ε': Short,
	'η': Long,
	'ο': Short,
	'ω': Long,
}

// doubleConsonants count as two consonants for lengthening by position.
var doubleConsonants = map[rune]bool{
	'ζ': true,
	'ξ': true,
	'ψ': true,
}

// diphthongs holds the recognized two-vowel combinations, unaccented.
var diphthongs = map[string]bool{
	"αι": true, "αυ": true,
	"ει": true, "ευ": true,
	"ηυ": true,
	"οι": true, "ου": true,
	"υι": true,
}

// synizesisCandidates are the vowel clusters that may merge with a
// following vowel in the same word.
var synizesisCandidates = map[string]bool{
	"ε":       true,
	"έ": true,
}

// Normalize puts text into the canonical form the classifier expects:
// canonically decomposed (NFD) Unicode.
func Normalize(text string) string {
	return norm.NFD.String(text)
}

func charType(c rune) ClusterType {
	switch {
	case consonants[c]:
		return Consonant
	case vowels[c]:
		return Vowel
	case diacriticals[c]:
		return Diacritical
	}
	return Other
}

// glyphType is the type of a glyph or cluster, determined by its first rune.
func glyphType(g string) ClusterType {
	for _, c := range g {
		return charType(c)
	}
	return Other
}

// The three pitch-bearing combining accents.
const (
	AcuteAccent       = acuteAccent
	GraveAccent       = graveAccent
	PerispomeniAccent = circumflex
)

// ToneAccent returns the pitch accent carried by a cluster, or 0 when the
// cluster is unaccented. ok is false when the cluster carries more than one
// pitch accent, which no well-formed text does.
func ToneAccent(cluster string) (accent rune, ok bool) {
	for _, c := range cluster {
		switch c {
		case AcuteAccent, GraveAccent, PerispomeniAccent:
			if accent != 0 {
				return 0, false
			}
			accent = c
		}
	}
	return accent, true
}

// IsDiacritical reports whether c is one of the Greek combining diacritics.
func IsDiacritical(c rune) bool {
	return diacriticals[c]
}

// StripDiacriticals removes combining diacritics from a cluster.
func StripDiacriticals(cluster string) string {
	return strings.Map(func(c rune) rune {
		if diacriticals[c] {
			return -1
		}
		return c
	}, cluster)
}

func validDiphthong(glyph1, glyph2 string) bool {
	unaccented := string([]rune(glyph1)[0]) + string([]rune(glyph2)[0])
	return diphthongs[unaccented]
}

// glyphs groups each base character with its trailing combining diacritics.
func glyphs(s string) []string {
	var out []string
	for _, c := range s {
		if charType(c) == Diacritical && len(out) > 0 {
			out[len(out)-1] += string(c)
		} else {
			out = append(out, string(c))
		}
	}
	return out
}

// clusterGlyphs merges adjacent glyphs of the same type, forming consonant
// groups, diphthongs, and interword runs.
func clusterGlyphs(gs []string) []string {
	var clusters []string
	for _, g := range gs {
		if len(clusters) == 0 {
			clusters = append(clusters, g)
			continue
		}

		last := clusters[len(clusters)-1]
		if glyphType(g) != glyphType(last) {
			clusters = append(clusters, g)
			continue
		}
		if glyphType(g) != Vowel {
			clusters[len(clusters)-1] += g
			continue
		}

		// Two adjacent vowels. A diphthong forms only when the cluster in
		// progress is a single unaccented vowel and the new glyph carries
		// no diaeresis.
		switch {
		case len([]rune(last)) > 1:
			clusters = append(clusters, g)
		case strings.ContainsRune(g, diaeresis):
			clusters = append(clusters, g)
		case validDiphthong(last, g):
			clusters[len(clusters)-1] += g
		default:
			clusters = append(clusters, g)
		}
	}
	return clusters
}

// checkRecognized verifies that every letter in the text belongs to the
// Greek vowel or consonant inventories. Whitespace, punctuation, and the
// elision apostrophes are permitted as interword text.
func checkRecognized(clusters []string) error {
	for _, cluster := range clusters {
		if glyphType(cluster) != Other {
			continue
		}
		for _, c := range cluster {
			if strings.ContainsRune(" \t,.·;:!()[]—-‘’ʼ\"«»", c) {
				continue
			}
			return fmt.Errorf("%w: %q", common.ErrUnrecognizedCharacter, string(c))
		}
	}
	return nil
}

// Classify segments one line of decomposed Greek text into clusters and
// assigns each a provisional metrical quantity. It is a pure function: it
// never modifies shared state and identical input yields identical output.
func Classify(line string) ([]Cluster, error) {
	line = strings.ToLower(Normalize(line))
	clusters := clusterGlyphs(glyphs(line))
	if err := checkRecognized(clusters); err != nil {
		return nil, err
	}

	out := make([]Cluster, len(clusters))
	for i, text := range clusters {
		out[i] = Cluster{
			Text:     text,
			Type:     glyphType(text),
			Quantity: metricalLength(clusters, i),
		}
	}
	return out, nil
}

// metricalLength computes the provisional quantity of cluster i.
func metricalLength(clusters []string, i int) Quantity {
	c := clusters[i]
	if glyphType(c) != Vowel {
		return None
	}

	unaccented := StripDiacriticals(c)
	var length Quantity
	if len([]rune(unaccented)) > 1 {
		// Diphthong.
		length = Long
	} else if l, ok := naturalLength[[]rune(unaccented)[0]]; ok {
		length = l
	} else {
		length = Indeterminate
	}

	// A circumflex is always on a long vowel.
	if strings.ContainsRune(c, circumflex) {
		length = Long
	}

	if followedByMultipleConsonants(clusters, i) {
		length = Long
	}
	if followedByVowelInNextWord(clusters, i) {
		// Correption: a long vowel in hiatus may shorten.
		if length == Long {
			length = LongCorreption
		} else if length == Indeterminate {
			length = IndeterminateCorreption
		}
	}
	if synizesisCandidates[c] && followedByVowelInSameWord(clusters, i) {
		length = ShortSynizesis
	}

	return length
}

// followedByMultipleConsonants reports whether cluster i precedes two or
// more consonants before the next vowel, crossing word boundaries. Double
// consonants count twice. A rho as the second element of a cluster does not
// reliably lengthen and is not counted.
func followedByMultipleConsonants(clusters []string, i int) bool {
	count := 0
	for j := i + 1; j < len(clusters); j++ {
		switch glyphType(clusters[j]) {
		case Vowel:
			return false
		case Consonant:
			for _, c := range StripDiacriticals(clusters[j]) {
				switch {
				case doubleConsonants[c]:
					count += 2
				case count > 0 && c == 'ρ':
					// Mute plus rho leaves the preceding vowel free.
				default:
					count++
				}
			}
			if count > 1 {
				return true
			}
		}
		// Interword clusters are skipped.
	}
	return false
}

// followedByVowelInNextWord reports hiatus: cluster i is word-final and the
// next word begins with a vowel.
func followedByVowelInNextWord(clusters []string, i int) bool {
	if i+2 >= len(clusters) {
		return false
	}
	return glyphType(clusters[i+1]) == Other && glyphType(clusters[i+2]) == Vowel
}

func followedByVowelInSameWord(clusters []string, i int) bool {
	if i+1 >= len(clusters) {
		return false
	}
	return glyphType(clusters[i+1]) == Vowel
}
