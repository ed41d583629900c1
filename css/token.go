// Package css implements a two-stage CSS parser: a tokenizer producing a
// deterministic token sequence per CSS Syntax Module 3, and a combinator
// layer that consumes that sequence into qualified rules and declarations.
package css

// Kind discriminates the token types produced by the tokenizer, per CSS
// Syntax Module 3 §4 "Tokenization".
type Kind int

const (
	Ident Kind = iota
	AtKeyword
	String
	BadString
	Hash
	Number
	Percentage
	Dimension
	URL
	BadURL
	Function
	Delim
	Colon
	Semicolon
	Comma
	CurlyBraceOpen
	CurlyBraceClose
	ParenOpen
	ParenClose
	BracketOpen
	BracketClose
	Whitespace
	Comment
	CDO
	CDC
	EOF
)

// HashFlag distinguishes a hash-token that could also be parsed as an
// identifier (Id) from one that merely begins with a valid ident code point
// (Unrestricted), per the "type flag" of
// https://drafts.csswg.org/css-syntax/#hash-token-diagram.
type HashFlag int

const (
	HashUnrestricted HashFlag = iota
	HashID
)

// NumericValue is the numeric payload of a Number, Percentage, or Dimension
// token, carrying both the parsed value and whether the CSS Syntax "type"
// flag is integer or number — CSS distinguishes the two at the value level
// even when they format identically.
type NumericValue struct {
	Value     float64
	IsInteger bool
}

// Token is one lexical unit of a CSS source, per CSS Syntax Module 3's
// token grammar. Only the fields relevant to Kind are populated;
// string-valued fields hold interned handles rather than borrowed slices so
// a token outlives the source text it was read from.
type Token struct {
	Kind Kind

	// Ident, AtKeyword, String, BadString, Hash, Function, URL, BadURL
	Value InternedString

	// Hash
	HashFlag HashFlag

	// Number, Percentage, Dimension
	Num NumericValue

	// Dimension
	Unit InternedString

	// Delim
	Delim rune
}

// IsWhitespace reports whether t is a Whitespace token, used throughout the
// parser's lookahead queue to collapse whitespace runs.
func (t Token) IsWhitespace() bool {
	return t.Kind == Whitespace
}
