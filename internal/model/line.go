package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// Line is an immutable ordered sequence of tokens read from a document source.
type Line struct {
	Tokens []Token
}

// NewLine tokenizes text into a Line.
func NewLine(text string) Line {
	return Line{Tokens: TrimTokens(Tokenize(text))}
}

// Text returns the full text of the line.
func (l Line) Text() string {
	var b []byte
	for _, token := range l.Tokens {
		b = append(b, token.Text...)
	}
	return string(b)
}

// TextWithoutQuotes returns the line text with quotation-mark tokens removed
// and surrounding whitespace re-trimmed. Manual-override lookups match on
// this form.
func (l Line) TextWithoutQuotes() string {
	kept := make([]Token, 0, len(l.Tokens))
	for _, token := range l.Tokens {
		if token.Type == TokenOpenQuote || token.Type == TokenCloseQuote {
			continue
		}
		kept = append(kept, token)
	}
	var b []byte
	for _, token := range TrimTokens(kept) {
		b = append(b, token.Text...)
	}
	return string(b)
}

// Words returns the word tokens of the line, in order.
func (l Line) Words() []string {
	var words []string
	for _, token := range l.Tokens {
		if token.Type == TokenWord {
			words = append(words, token.Text)
		}
	}
	return words
}

// Locator identifies a line by book number and line number. Both are strings:
// line numbers may carry appendix letters, as in "5a".
type Locator struct {
	BookN string
	LineN string
}

var lineNPattern = regexp.MustCompile(`^([0-9]*)(.*)$`)

// splitLineN splits a line number into its integer part and the rest.
func splitLineN(lineN string) (int, string, bool) {
	m := lineNPattern.FindStringSubmatch(lineN)
	if m[1] == "" {
		return 0, m[2], false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, m[2], false
	}
	return n, m[2], true
}

// Successor guesses the line number that follows this one.
func (loc Locator) Successor() Locator {
	number, _, ok := splitLineN(loc.LineN)
	if !ok {
		number = 0
	}
	return Locator{BookN: loc.BookN, LineN: strconv.Itoa(number + 1)}
}

// MayPrecede reports whether other is a plausible location to follow loc.
// Within a book, line n may be followed by n+1, n+1"a", or n"a"; an appendix
// letter may be followed by the next letter. A new book starts over at line
// "1" or "1a".
func (loc Locator) MayPrecede(other Locator) bool {
	selfNumber, selfExtra, selfOK := splitLineN(loc.LineN)
	otherNumber, otherExtra, otherOK := splitLineN(other.LineN)

	if !selfOK || loc.BookN != other.BookN {
		return !otherOK || (otherNumber == 1 && (otherExtra == "" || otherExtra == "a"))
	}
	if !otherOK {
		return false
	}
	if selfNumber != otherNumber {
		return otherNumber == selfNumber+1 && (otherExtra == "" || otherExtra == "a")
	}
	if selfExtra == "" {
		return otherExtra == "a"
	}
	return len(selfExtra) == 1 && len(otherExtra) == 1 && otherExtra[0] == selfExtra[0]+1
}

func (loc Locator) String() string {
	if loc.BookN == "" {
		return loc.LineN
	}
	return fmt.Sprintf("%s.%s", loc.BookN, loc.LineN)
}
