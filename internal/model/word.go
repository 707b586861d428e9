package model

import "strconv"

// ScanStatus indicates how a line's scansion was determined.
type ScanStatus string

// Scan status constants.
const (
	StatusResolved     ScanStatus = "RESOLVED"
	StatusOverridden   ScanStatus = "OVERRIDDEN"
	StatusAmbiguous    ScanStatus = "AMBIGUOUS"
	StatusUnscannable  ScanStatus = "UNSCANNABLE"
	StatusUnrecognized ScanStatus = "UNRECOGNIZED"
)

// WordRecord is one word of a processed line, with the sedes at which it
// begins. Sedes is defined only when SedesKnown is true: lines that are
// ambiguous or unscannable withhold sedes for every word.
type WordRecord struct {
	Work          string
	BookN         string
	LineN         string
	Word          string
	Lemma         string
	MetricalShape string
	ToneShape     string
	WordN         int
	Sedes         float64
	SedesKnown    bool
}

// SedesString formats a sedes value the way the output CSV carries it:
// "1", "2.5", "10.5". Returns the empty string when the sedes is withheld.
func (w WordRecord) SedesString() string {
	if !w.SedesKnown {
		return ""
	}
	return FormatSedes(w.Sedes)
}

// FormatSedes renders a sedes value without a trailing ".0".
func FormatSedes(sedes float64) string {
	return strconv.FormatFloat(sedes, 'g', -1, 64)
}
