// Package lexer turns TOML source text into a stream of tokens that
// preserves every byte of the input, including whitespace and comments.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/KimNorgaard/go-toml/token"
)

// Lexer holds the state for tokenizing TOML source. It keeps just enough
// context to tell keys from values: '=' switches to value position, a
// newline outside any bracket switches back, '{' opens a new key position
// and ',' inside an inline table returns to it.
type Lexer struct {
	input   []byte
	pos     int    // index of the byte under examination
	inValue bool   // whether the lexer is in value position
	stack   []byte // open '[' and '{' scopes
}

// New creates and returns a new Lexer over input.
func New(input []byte) *Lexer {
	return &Lexer{input: input}
}

// NextToken scans the input and returns the next token. The token's Text
// is the exact source slice, so concatenating the Text of every token
// reproduces the input. Errors are reported as ILLEGAL tokens whose Text
// holds the reason and whose Span marks the offending bytes.
func (l *Lexer) NextToken() token.Token {
	start := l.pos
	if start >= len(l.input) {
		return token.Token{Kind: token.EOF, Span: token.Span{Start: start, End: start}}
	}
	switch ch := l.input[start]; {
	case ch == ' ' || ch == '\t':
		i := start
		for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
			i++
		}
		return l.emit(token.WHITESPACE, start, i)
	case ch == '\n':
		if len(l.stack) == 0 {
			l.inValue = false
		}
		return l.emit(token.NEWLINE, start, start+1)
	case ch == '\r':
		if l.at(start+1) == '\n' {
			if len(l.stack) == 0 {
				l.inValue = false
			}
			return l.emit(token.NEWLINE, start, start+2)
		}
		return l.illegal("carriage return not followed by line feed", start, start+1)
	case ch == '#':
		i := start
		for i < len(l.input) {
			c := l.input[i]
			if c == '\n' || (c == '\r' && l.at(i+1) == '\n') {
				break
			}
			if (c < 0x20 && c != '\t') || c == 0x7f {
				return l.illegal(fmt.Sprintf("control character U+%04X in comment", c), i, i+1)
			}
			n := runeLen(l.input, i)
			if n == 0 {
				return l.illegal("invalid UTF-8 encoding", i, i+1)
			}
			i += n
		}
		return l.emit(token.COMMENT, start, i)
	case ch == '[':
		if !l.inValue && l.at(start+1) == '[' {
			return l.emit(token.DLBRACKET, start, start+2)
		}
		l.stack = append(l.stack, '[')
		return l.emit(token.LBRACKET, start, start+1)
	case ch == ']':
		if !l.inValue && l.at(start+1) == ']' {
			return l.emit(token.DRBRACKET, start, start+2)
		}
		if len(l.stack) == 0 {
			return l.illegal("unmatched closing bracket", start, start+1)
		}
		l.stack = l.stack[:len(l.stack)-1]
		return l.emit(token.RBRACKET, start, start+1)
	case ch == '{':
		l.stack = append(l.stack, '{')
		l.inValue = false
		return l.emit(token.LBRACE, start, start+1)
	case ch == '}':
		if len(l.stack) == 0 {
			return l.illegal("unmatched closing brace", start, start+1)
		}
		l.stack = l.stack[:len(l.stack)-1]
		l.inValue = true
		return l.emit(token.RBRACE, start, start+1)
	case ch == '=':
		l.inValue = true
		return l.emit(token.EQUALS, start, start+1)
	case ch == ',':
		if len(l.stack) > 0 && l.stack[len(l.stack)-1] == '{' {
			l.inValue = false
		}
		return l.emit(token.COMMA, start, start+1)
	case ch == '.':
		if l.inValue {
			return l.illegal("invalid character '.' in value", start, start+1)
		}
		return l.emit(token.DOT, start, start+1)
	case ch == '"':
		return l.readBasicString(start)
	case ch == '\'':
		return l.readLiteralString(start)
	default:
		if l.inValue {
			return l.readValue(start)
		}
		if isBareKeyChar(ch) {
			i := start
			for i < len(l.input) && isBareKeyChar(l.input[i]) {
				i++
			}
			return l.emit(token.BAREKEY, start, i)
		}
		return l.illegal(fmt.Sprintf("invalid character %q in key", ch), start, start+1)
	}
}

func (l *Lexer) emit(kind token.Kind, start, end int) token.Token {
	l.pos = end
	return token.Token{
		Kind: kind,
		Text: string(l.input[start:end]),
		Span: token.Span{Start: start, End: end},
	}
}

func (l *Lexer) illegal(msg string, start, end int) token.Token {
	l.pos = len(l.input)
	return token.Token{Kind: token.ILLEGAL, Text: msg, Span: token.Span{Start: start, End: end}}
}

// at returns the byte at index i, or 0 past the end of the input.
func (l *Lexer) at(i int) byte {
	if i < len(l.input) {
		return l.input[i]
	}
	return 0
}

func (l *Lexer) readBasicString(start int) token.Token {
	if l.at(start+1) == '"' && l.at(start+2) == '"' {
		return l.readMultiline(start, '"', token.MULTILINESTRING)
	}
	i := start + 1
	for i < len(l.input) {
		switch ch := l.input[i]; {
		case ch == '"':
			return l.emit(token.STRING, start, i+1)
		case ch == '\n' || ch == '\r':
			return l.illegal("unterminated string", start, i)
		case ch == '\\':
			n, msg := escapeLen(l.input, i, false)
			if msg != "" {
				return l.illegal(msg, i, min(i+n, len(l.input)))
			}
			i += n
		case (ch < 0x20 && ch != '\t') || ch == 0x7f:
			return l.illegal(fmt.Sprintf("control character U+%04X in string", ch), i, i+1)
		default:
			n := runeLen(l.input, i)
			if n == 0 {
				return l.illegal("invalid UTF-8 encoding", i, i+1)
			}
			i += n
		}
	}
	return l.illegal("unterminated string", start, len(l.input))
}

func (l *Lexer) readLiteralString(start int) token.Token {
	if l.at(start+1) == '\'' && l.at(start+2) == '\'' {
		return l.readMultiline(start, '\'', token.MULTILINELITERAL)
	}
	i := start + 1
	for i < len(l.input) {
		switch ch := l.input[i]; {
		case ch == '\'':
			return l.emit(token.LITERALSTRING, start, i+1)
		case ch == '\n' || ch == '\r':
			return l.illegal("unterminated string", start, i)
		case (ch < 0x20 && ch != '\t') || ch == 0x7f:
			return l.illegal(fmt.Sprintf("control character U+%04X in string", ch), i, i+1)
		default:
			n := runeLen(l.input, i)
			if n == 0 {
				return l.illegal("invalid UTF-8 encoding", i, i+1)
			}
			i += n
		}
	}
	return l.illegal("unterminated string", start, len(l.input))
}

// readMultiline scans a multiline string opened by three quote bytes.
// A run of three to five quotes terminates it: the quotes beyond the
// closing three belong to the content.
func (l *Lexer) readMultiline(start int, quote byte, kind token.Kind) token.Token {
	i := start + 3
	for i < len(l.input) {
		ch := l.input[i]
		if ch == quote {
			j := i
			for j < len(l.input) && l.input[j] == quote {
				j++
			}
			if n := j - i; n >= 3 {
				if n > 5 {
					return l.illegal("too many quotes at end of multiline string", i, j)
				}
				return l.emit(kind, start, j)
			}
			i = j
			continue
		}
		if quote == '"' && ch == '\\' {
			n, msg := escapeLen(l.input, i, true)
			if msg != "" {
				return l.illegal(msg, i, min(i+n, len(l.input)))
			}
			i += n
			continue
		}
		n := runeLen(l.input, i)
		if n == 0 {
			return l.illegal("invalid UTF-8 encoding", i, i+1)
		}
		i += n
	}
	return l.illegal("unterminated multiline string", start, len(l.input))
}

// escapeLen validates the escape sequence starting at the backslash at
// input[i] and returns how many bytes it spans.
func escapeLen(input []byte, i int, multiline bool) (int, string) {
	if i+1 >= len(input) {
		return 1, "unterminated escape sequence"
	}
	switch c := input[i+1]; c {
	case 'b', 't', 'n', 'f', 'r', '"', '\\':
		return 2, ""
	case 'u':
		if !hexDigits(input, i+2, 4) {
			return 2, "invalid unicode escape"
		}
		return 6, ""
	case 'U':
		if !hexDigits(input, i+2, 8) {
			return 2, "invalid unicode escape"
		}
		return 10, ""
	default:
		if multiline && (c == ' ' || c == '\t' || c == '\n' || c == '\r') {
			// Line-ending backslash; the skipped whitespace is scanned
			// as ordinary content.
			return 2, ""
		}
		return 2, fmt.Sprintf("invalid escape sequence \\%c", c)
	}
}

// runeLen returns the byte length of the UTF-8 encoding at input[i], or
// zero when the bytes are not valid UTF-8.
func runeLen(input []byte, i int) int {
	if input[i] < utf8.RuneSelf {
		return 1
	}
	_, size := utf8.DecodeRune(input[i:])
	if size == 1 {
		return 0
	}
	return size
}

func hexDigits(input []byte, i, n int) bool {
	if i+n > len(input) {
		return false
	}
	for _, c := range input[i : i+n] {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

// readValue scans a scalar in value position: a boolean, a number, or a
// date-time. Strings, arrays and inline tables are handled by NextToken.
func (l *Lexer) readValue(start int) token.Token {
	switch ch := l.input[start]; {
	case ch == 't' || ch == 'f' || ch == 'i' || ch == 'n':
		i := start
		for i < len(l.input) && l.input[i] >= 'a' && l.input[i] <= 'z' {
			i++
		}
		switch string(l.input[start:i]) {
		case "true", "false":
			return l.emit(token.BOOL, start, i)
		case "inf", "nan":
			return l.emit(token.FLOAT, start, i)
		}
		return l.illegal(fmt.Sprintf("invalid value %q", l.input[start:i]), start, i)
	case ch == '+' || ch == '-' || isDigit(ch):
		return l.readNumber(start)
	default:
		return l.illegal(fmt.Sprintf("invalid character %q in value", ch), start, start+1)
	}
}

func (l *Lexer) readNumber(start int) token.Token {
	i := start
	signed := false
	if l.input[i] == '+' || l.input[i] == '-' {
		signed = true
		i++
	}
	if i >= len(l.input) {
		return l.illegal("incomplete number", start, len(l.input))
	}
	if c := l.input[i]; c == 'i' || c == 'n' {
		j := i
		for j < len(l.input) && l.input[j] >= 'a' && l.input[j] <= 'z' {
			j++
		}
		if s := string(l.input[i:j]); s == "inf" || s == "nan" {
			return l.emit(token.FLOAT, start, j)
		}
		return l.illegal(fmt.Sprintf("invalid value %q", l.input[start:j]), start, j)
	}
	if !signed && l.input[i] == '0' && i+1 < len(l.input) {
		switch l.input[i+1] {
		case 'x':
			return l.readPrefixedInt(start, i+2, isHexDigit)
		case 'o':
			return l.readPrefixedInt(start, i+2, func(c byte) bool { return c >= '0' && c <= '7' })
		case 'b':
			return l.readPrefixedInt(start, i+2, func(c byte) bool { return c == '0' || c == '1' })
		}
	}

	isFloat := false
	sawDot := false
	sawExp := false
	lastDigit := false
	datetimePossible := !signed
	intEnd := -1 // where the integer part stops, for the leading-zero check
	j := i
scan:
	for j < len(l.input) {
		switch c := l.input[j]; {
		case isDigit(c):
			lastDigit = true
			j++
		case c == '_':
			if !lastDigit {
				return l.illegal("underscore must follow a digit", j, j+1)
			}
			if !isDigit(l.at(j + 1)) {
				return l.illegal("underscore must precede a digit", j, j+1)
			}
			lastDigit = false
			datetimePossible = false
			j++
		case c == '.':
			if sawDot || sawExp || !lastDigit {
				return l.illegal("misplaced decimal point", j, j+1)
			}
			if !isDigit(l.at(j + 1)) {
				return l.illegal("decimal point must be followed by a digit", j, j+1)
			}
			sawDot, isFloat = true, true
			if intEnd < 0 {
				intEnd = j
			}
			datetimePossible = false
			lastDigit = false
			j++
		case c == 'e' || c == 'E':
			if sawExp || !lastDigit {
				return l.illegal("misplaced exponent", j, j+1)
			}
			sawExp, isFloat = true, true
			if intEnd < 0 {
				intEnd = j
			}
			datetimePossible = false
			lastDigit = false
			j++
			if c := l.at(j); c == '+' || c == '-' {
				j++
			}
		case c == '-' || c == ':':
			if datetimePossible && !isFloat {
				return l.readDatetime(start)
			}
			return l.illegal(fmt.Sprintf("invalid character %q in number", c), j, j+1)
		case isValueEnd(c):
			break scan
		default:
			return l.illegal(fmt.Sprintf("invalid character %q in number", c), j, j+1)
		}
	}
	if !lastDigit {
		return l.illegal("incomplete number", start, j)
	}
	if intEnd < 0 {
		intEnd = j
	}
	if digits := l.input[i:intEnd]; len(digits) > 1 && digits[0] == '0' {
		return l.illegal("leading zeros are not allowed", start, j)
	}
	if !isFloat {
		return l.emit(token.INTEGER, start, j)
	}
	return l.emit(token.FLOAT, start, j)
}

func (l *Lexer) readPrefixedInt(start, digStart int, valid func(byte) bool) token.Token {
	i := digStart
	lastDigit := false
	for i < len(l.input) {
		switch c := l.input[i]; {
		case valid(c):
			lastDigit = true
			i++
		case c == '_':
			if !lastDigit {
				return l.illegal("underscore must follow a digit", i, i+1)
			}
			if !valid(l.at(i + 1)) {
				return l.illegal("underscore must precede a digit", i, i+1)
			}
			lastDigit = false
			i++
		case isValueEnd(c):
			if !lastDigit {
				return l.illegal("incomplete integer", start, i)
			}
			return l.emit(token.INTEGER, start, i)
		default:
			return l.illegal(fmt.Sprintf("invalid digit %q in integer", c), i, i+1)
		}
	}
	if !lastDigit {
		return l.illegal("incomplete integer", start, len(l.input))
	}
	return l.emit(token.INTEGER, start, len(l.input))
}

func (l *Lexer) readDatetime(start int) token.Token {
	i := start
	for i < len(l.input) && isDatetimeChar(l.input[i]) {
		i++
	}
	kind := classifyDatetime(l.input[start:i])
	if kind == token.ILLEGAL {
		return l.illegal("malformed date-time", start, i)
	}
	return l.emit(kind, start, i)
}

// classifyDatetime picks the date-time kind from the shape of the text.
// Only the shape is checked here; the parser validates the components.
func classifyDatetime(text []byte) token.Kind {
	hasDate := len(text) >= 10 && text[4] == '-' && text[7] == '-'
	if !hasDate {
		if len(text) >= 8 && text[2] == ':' && text[5] == ':' {
			return token.LOCALTIME
		}
		return token.ILLEGAL
	}
	if len(text) == 10 {
		return token.LOCALDATE
	}
	if text[10] != 'T' && text[10] != 't' {
		return token.ILLEGAL
	}
	rest := text[11:]
	if len(rest) < 8 {
		return token.ILLEGAL
	}
	if last := rest[len(rest)-1]; last == 'Z' || last == 'z' {
		return token.DATETIME
	}
	for k := 8; k < len(rest); k++ {
		if rest[k] == '+' || rest[k] == '-' {
			return token.DATETIME
		}
	}
	return token.LOCALDATETIME
}

// isValueEnd reports whether c may legally follow a number or date-time.
func isValueEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ',', ']', '}', '#':
		return true
	}
	return false
}

func isDatetimeChar(c byte) bool {
	return isDigit(c) || c == '-' || c == ':' || c == '.' ||
		c == 'T' || c == 't' || c == 'Z' || c == 'z' || c == '+'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isBareKeyChar(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || isDigit(c) || c == '_' || c == '-'
}
