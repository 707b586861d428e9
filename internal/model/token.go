// Package model defines the core domain types used throughout the application.
package model

import (
	"regexp"
	"strings"
)

// TokenType distinguishes words from interword text and quotation marks.
type TokenType int

// Token type constants.
const (
	TokenWord TokenType = iota
	TokenNonWord
	TokenOpenQuote
	TokenCloseQuote
)

// Token represents part of a line's text.
type Token struct {
	Text string
	Type TokenType
}

// wordRunes matches a run of word characters: letters, digits, the Greek
// combining diacritics, and the right single quotation mark used to mark
// elision. The modifier-letter apostrophe (U+02BC) is a letter and needs no
// special case.
var wordRunes = regexp.MustCompile("[\\p{L}\\p{N}_̣̓̔́͂̀̈ͅ’]+")

// Tokenize splits text into a sequence of word, non-word, and quotation-mark
// tokens.
func Tokenize(text string) []Token {
	var tokens []Token
	prevEnd := 0
	for _, m := range wordRunes.FindAllStringIndex(text, -1) {
		tokens = appendNonWord(tokens, text[prevEnd:m[0]])
		if word := text[m[0]:m[1]]; word != "" {
			tokens = append(tokens, Token{Type: TokenWord, Text: word})
		}
		prevEnd = m[1]
	}
	return appendNonWord(tokens, text[prevEnd:])
}

// appendNonWord splits quotation marks out of an interword run. The right
// single quotation mark marks elision and counts as word material, so only
// the marks that cannot be elision are classified here.
func appendNonWord(tokens []Token, text string) []Token {
	run := ""
	flush := func() {
		if run != "" {
			tokens = append(tokens, Token{Type: TokenNonWord, Text: run})
			run = ""
		}
	}
	for _, c := range text {
		switch c {
		case '«', '‘':
			flush()
			tokens = append(tokens, Token{Type: TokenOpenQuote, Text: string(c)})
		case '»':
			flush()
			tokens = append(tokens, Token{Type: TokenCloseQuote, Text: string(c)})
		default:
			run += string(c)
		}
	}
	flush()
	return tokens
}

// ConsolidateTokens merges runs of consecutive word and non-word tokens.
func ConsolidateTokens(tokens []Token) []Token {
	var out []Token
	for _, token := range tokens {
		n := len(out)
		if n > 0 && token.Type == out[n-1].Type && (token.Type == TokenWord || token.Type == TokenNonWord) {
			out[n-1].Text += token.Text
			continue
		}
		out = append(out, token)
	}
	return out
}

// TrimTokens consolidates tokens and strips leading and trailing whitespace.
func TrimTokens(tokens []Token) []Token {
	out := ConsolidateTokens(tokens)
	if len(out) > 0 && out[0].Type == TokenNonWord {
		out[0].Text = strings.TrimLeft(out[0].Text, " \t\n\r")
		if out[0].Text == "" {
			out = out[1:]
		}
	}
	if len(out) > 0 && out[len(out)-1].Type == TokenNonWord {
		out[len(out)-1].Text = strings.TrimRight(out[len(out)-1].Text, " \t\n\r")
		if out[len(out)-1].Text == "" {
			out = out[:len(out)-1]
		}
	}
	return out
}
