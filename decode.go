package toml

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-toml/token"
)

// unescapeBasic decodes the body of a single-line basic string. The
// lexer has already validated the escape shapes, so only the code-point
// range of \u and \U escapes can still fail here.
func unescapeBasic(s string, span token.Span) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		n, err := writeEscape(&sb, s[i:], span)
		if err != nil {
			return "", err
		}
		i += n
	}
	return sb.String(), nil
}

// decodeMultilineBasic decodes a multiline basic string token, trimming
// the newline right after the opening delimiter and applying
// line-ending backslashes.
func decodeMultilineBasic(text string, span token.Span) (string, error) {
	s := trimLeadingNewline(text[3 : len(text)-3])
	var sb strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(s) && isEscapeWS(s[i+1]) {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j < len(s) && (s[j] == '\n' || s[j] == '\r') {
				for j < len(s) && isEscapeWS(s[j]) {
					j++
				}
				i = j
				continue
			}
			return "", &ParseError{Kind: ErrLex, Span: span,
				Msg: "backslash must be the last non-whitespace character on its line"}
		}
		n, err := writeEscape(&sb, s[i:], span)
		if err != nil {
			return "", err
		}
		i += n
	}
	return sb.String(), nil
}

// writeEscape decodes the escape sequence at the start of s and returns
// how many bytes it spans.
func writeEscape(sb *strings.Builder, s string, span token.Span) (int, error) {
	switch s[1] {
	case 'b':
		sb.WriteByte('\b')
	case 't':
		sb.WriteByte('\t')
	case 'n':
		sb.WriteByte('\n')
	case 'f':
		sb.WriteByte('\f')
	case 'r':
		sb.WriteByte('\r')
	case '"':
		sb.WriteByte('"')
	case '\\':
		sb.WriteByte('\\')
	case 'u':
		return 6, writeEscapedRune(sb, s[2:6], span)
	case 'U':
		return 10, writeEscapedRune(sb, s[2:10], span)
	}
	return 2, nil
}

func writeEscapedRune(sb *strings.Builder, hex string, span token.Span) error {
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		return &ParseError{Kind: ErrLex, Span: span,
			Msg: fmt.Sprintf("escape \\u%s is not a unicode scalar value", hex)}
	}
	sb.WriteRune(rune(n))
	return nil
}

func trimLeadingNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	if strings.HasPrefix(s, "\n") {
		return s[1:]
	}
	return s
}

func isEscapeWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
