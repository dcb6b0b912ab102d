// Package token defines the lexical tokens of the TOML format together
// with their exact source text and byte position, so that a document can
// be reproduced byte-for-byte from its token stream.
package token

// Kind is the type of a token.
type Kind string

// Span marks a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int
	End   int
}

// Token represents a lexical token. Text is the exact source slice the
// token was read from, including quotes and prefixes.
type Token struct {
	Kind Kind
	Text string
	Span Span
}

const (
	// Special tokens
	ILLEGAL Kind = "ILLEGAL" // An invalid token; Text carries the reason
	EOF     Kind = "EOF"     // End of input

	// Trivia
	WHITESPACE Kind = "WHITESPACE" // A run of spaces and tabs
	NEWLINE    Kind = "NEWLINE"    // "\n" or "\r\n"
	COMMENT    Kind = "COMMENT"    // # to end of line, including the '#'

	// Keys
	BAREKEY Kind = "BAREKEY" // key, some-key, 1234

	// Strings; the four quoting styles are distinct kinds
	STRING           Kind = "STRING"           // "basic"
	LITERALSTRING    Kind = "LITERALSTRING"    // 'literal'
	MULTILINESTRING  Kind = "MULTILINESTRING"  // """basic"""
	MULTILINELITERAL Kind = "MULTILINELITERAL" // '''literal'''

	// Numbers and other scalars
	INTEGER Kind = "INTEGER" // 42, 0xBEEF, 0o755, 0b101, 1_000
	FLOAT   Kind = "FLOAT"   // 3.14, 6.626e-34, inf, nan
	BOOL    Kind = "BOOL"    // true, false

	// Date-time variants, classified by shape
	DATETIME      Kind = "DATETIME"      // 1979-05-27T07:32:00Z
	LOCALDATETIME Kind = "LOCALDATETIME" // 1979-05-27T07:32:00
	LOCALDATE     Kind = "LOCALDATE"     // 1979-05-27
	LOCALTIME     Kind = "LOCALTIME"     // 07:32:00

	// Punctuation
	EQUALS    Kind = "="
	DOT       Kind = "."
	COMMA     Kind = ","
	LBRACKET  Kind = "["
	RBRACKET  Kind = "]"
	DLBRACKET Kind = "[["
	DRBRACKET Kind = "]]"
	LBRACE    Kind = "{"
	RBRACE    Kind = "}"
)

// IsString reports whether k is one of the four string kinds.
func (k Kind) IsString() bool {
	switch k {
	case STRING, LITERALSTRING, MULTILINESTRING, MULTILINELITERAL:
		return true
	}
	return false
}

// IsDatetime reports whether k is one of the four date-time kinds.
func (k Kind) IsDatetime() bool {
	switch k {
	case DATETIME, LOCALDATETIME, LOCALDATE, LOCALTIME:
		return true
	}
	return false
}

// IsTrivia reports whether k is non-semantic source content.
func (k Kind) IsTrivia() bool {
	return k == WHITESPACE || k == NEWLINE || k == COMMENT
}
