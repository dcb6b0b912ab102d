package lexer_test

import (
	"strings"
	"testing"

	"github.com/KimNorgaard/go-toml/internal/lexer"
	"github.com/KimNorgaard/go-toml/token"
	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := "# header\n" +
		"title = \"TOML Example\"  # trailing\n" +
		"count = 42\n" +
		"ratio = 6.626e-34\n" +
		"ok = true\n" +
		"\n" +
		"[server.alpha]\n" +
		"ports = [ 8001, 8002 ]\n" +
		"point = { x = 1, y = -2 }\n" +
		"\n" +
		"[[products]]\n" +
		"name = 'hammer'\n"

	expectedTokens := []struct {
		expectedKind token.Kind
		expectedText string
	}{
		{token.COMMENT, "# header"},
		{token.NEWLINE, "\n"},
		{token.BAREKEY, "title"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.STRING, `"TOML Example"`},
		{token.WHITESPACE, "  "},
		{token.COMMENT, "# trailing"},
		{token.NEWLINE, "\n"},
		{token.BAREKEY, "count"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.INTEGER, "42"},
		{token.NEWLINE, "\n"},
		{token.BAREKEY, "ratio"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.FLOAT, "6.626e-34"},
		{token.NEWLINE, "\n"},
		{token.BAREKEY, "ok"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.BOOL, "true"},
		{token.NEWLINE, "\n"},
		{token.NEWLINE, "\n"},
		{token.LBRACKET, "["},
		{token.BAREKEY, "server"},
		{token.DOT, "."},
		{token.BAREKEY, "alpha"},
		{token.RBRACKET, "]"},
		{token.NEWLINE, "\n"},
		{token.BAREKEY, "ports"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.LBRACKET, "["},
		{token.WHITESPACE, " "},
		{token.INTEGER, "8001"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.INTEGER, "8002"},
		{token.WHITESPACE, " "},
		{token.RBRACKET, "]"},
		{token.NEWLINE, "\n"},
		{token.BAREKEY, "point"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.LBRACE, "{"},
		{token.WHITESPACE, " "},
		{token.BAREKEY, "x"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.INTEGER, "1"},
		{token.COMMA, ","},
		{token.WHITESPACE, " "},
		{token.BAREKEY, "y"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.INTEGER, "-2"},
		{token.WHITESPACE, " "},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.NEWLINE, "\n"},
		{token.DLBRACKET, "[["},
		{token.BAREKEY, "products"},
		{token.DRBRACKET, "]]"},
		{token.NEWLINE, "\n"},
		{token.BAREKEY, "name"},
		{token.WHITESPACE, " "},
		{token.EQUALS, "="},
		{token.WHITESPACE, " "},
		{token.LITERALSTRING, "'hammer'"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	l := lexer.New([]byte(input))

	for i, tt := range expectedTokens {
		tok := l.NextToken()
		require.Equal(t, tt.expectedKind, tok.Kind, "test[%d] - wrong token kind. expected=%q, got=%q (%q)", i, tt.expectedKind, tok.Kind, tok.Text)
		require.Equal(t, tt.expectedText, tok.Text, "test[%d] - wrong text. expected=%q, got=%q", i, tt.expectedText, tok.Text)
	}
}

// Concatenating the text of every token must reproduce the input exactly.
func TestTokenTextCoversInput(t *testing.T) {
	inputs := []string{
		"a = 1\r\nb = \"two\" # done\r\n",
		"[x.'y z']\n  indented = [\n    1,\n    2,\n  ]\n",
		"t = 1979-05-27T07:32:00Z\nd = 1979-05-27\nlt = 07:32:00\n",
		"m = \"\"\"\nline one\nline two\"\"\"\n",
		"s = \"café ☕\"  # naïve comment\nl = 'déjà vu'\n",
	}
	for _, input := range inputs {
		l := lexer.New([]byte(input))
		var sb strings.Builder
		for {
			tok := l.NextToken()
			require.NotEqual(t, token.ILLEGAL, tok.Kind, "input %q: %s", input, tok.Text)
			if tok.Kind == token.EOF {
				break
			}
			sb.WriteString(tok.Text)
		}
		require.Equal(t, input, sb.String())
	}
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		input        string
		expectedKind token.Kind
	}{
		{"0", token.INTEGER},
		{"+99", token.INTEGER},
		{"-17", token.INTEGER},
		{"1_000_000", token.INTEGER},
		{"0xDEADbeef", token.INTEGER},
		{"0o755", token.INTEGER},
		{"0b1101", token.INTEGER},
		{"3.14", token.FLOAT},
		{"-0.01", token.FLOAT},
		{"5e+22", token.FLOAT},
		{"6.626e-34", token.FLOAT},
		{"inf", token.FLOAT},
		{"-inf", token.FLOAT},
		{"nan", token.FLOAT},
		{"+nan", token.FLOAT},
		{"true", token.BOOL},
		{"false", token.BOOL},
		{"1979-05-27T07:32:00Z", token.DATETIME},
		{"1979-05-27T00:32:00.999-07:00", token.DATETIME},
		{"1979-05-27T07:32:00", token.LOCALDATETIME},
		{"1979-05-27", token.LOCALDATE},
		{"07:32:00", token.LOCALTIME},
		{"00:32:00.999999", token.LOCALTIME},
		{`"basic"`, token.STRING},
		{"'literal'", token.LITERALSTRING},
		{`"""multi"""`, token.MULTILINESTRING},
		{"'''multi'''", token.MULTILINELITERAL},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := lexer.New([]byte("k = " + tt.input))
			var tok token.Token
			for range 4 {
				tok = l.NextToken()
			}
			tok = l.NextToken()
			require.Equal(t, tt.expectedKind, tok.Kind, "got %q (%q)", tok.Kind, tok.Text)
			require.Equal(t, tt.input, tok.Text)
			require.Equal(t, token.EOF, l.NextToken().Kind)
		})
	}
}

func TestIllegalTokens(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedText string
	}{
		{
			name:         "unterminated string",
			input:        `k = "hello`,
			expectedText: "unterminated string",
		},
		{
			name:         "unterminated multiline string",
			input:        `k = """hello`,
			expectedText: "unterminated multiline string",
		},
		{
			name:         "newline in string",
			input:        "k = \"hello\nworld\"",
			expectedText: "unterminated string",
		},
		{
			name:         "invalid escape",
			input:        `k = "a\qc"`,
			expectedText: `invalid escape sequence \q`,
		},
		{
			name:         "short unicode escape",
			input:        `k = "\u12G4"`,
			expectedText: "invalid unicode escape",
		},
		{
			name:         "bare carriage return",
			input:        "k = 1\rx = 2",
			expectedText: "carriage return not followed by line feed",
		},
		{
			name:         "leading zeros",
			input:        "k = 042",
			expectedText: "leading zeros are not allowed",
		},
		{
			name:         "leading zeros in float",
			input:        "k = 03.14",
			expectedText: "leading zeros are not allowed",
		},
		{
			name:         "leading zeros before exponent",
			input:        "k = 01e2",
			expectedText: "leading zeros are not allowed",
		},
		{
			name:         "trailing underscore",
			input:        "k = 1_",
			expectedText: "underscore must precede a digit",
		},
		{
			name:         "double decimal point",
			input:        "k = 1.2.3",
			expectedText: "misplaced decimal point",
		},
		{
			name:         "bare decimal point",
			input:        "k = .5",
			expectedText: `invalid character '.' in value`,
		},
		{
			name:         "empty hex integer",
			input:        "k = 0x",
			expectedText: "incomplete integer",
		},
		{
			name:         "bad value word",
			input:        "k = yes",
			expectedText: `invalid value "yes"`,
		},
		{
			name:         "malformed date",
			input:        "k = 1979-05",
			expectedText: "malformed date-time",
		},
		{
			name:         "control character in string",
			input:        "k = \"a\x01b\"",
			expectedText: "control character U+0001 in string",
		},
		{
			name:         "control character in comment",
			input:        "# a\x01",
			expectedText: "control character U+0001 in comment",
		},
		{
			name:         "invalid utf-8 in string",
			input:        "k = \"a\xffb\"",
			expectedText: "invalid UTF-8 encoding",
		},
		{
			name:         "invalid utf-8 in literal string",
			input:        "k = 'caf\xe9'",
			expectedText: "invalid UTF-8 encoding",
		},
		{
			name:         "invalid utf-8 in comment",
			input:        "# caf\xe9",
			expectedText: "invalid UTF-8 encoding",
		},
		{
			name:         "unmatched closing bracket in value",
			input:        "k = ]",
			expectedText: "unmatched closing bracket",
		},
		{
			name:         "invalid key character",
			input:        "k@y = 1",
			expectedText: `invalid character '@' in key`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lexer.New([]byte(tt.input))
			for {
				tok := l.NextToken()
				require.NotEqual(t, token.EOF, tok.Kind, "reached EOF without an illegal token")
				if tok.Kind == token.ILLEGAL {
					require.Equal(t, tt.expectedText, tok.Text)
					return
				}
			}
		})
	}
}

func TestMultilineQuoteRuns(t *testing.T) {
	// Up to two extra quotes at the end belong to the string content.
	l := lexer.New([]byte(`k = """two quotes: """""`))
	var tok token.Token
	for range 5 {
		tok = l.NextToken()
	}
	require.Equal(t, token.MULTILINESTRING, tok.Kind)
	require.Equal(t, `"""two quotes: """""`, tok.Text)

	l = lexer.New([]byte(`k = """six: """"""`))
	for range 5 {
		tok = l.NextToken()
	}
	require.Equal(t, token.ILLEGAL, tok.Kind)
	require.Equal(t, "too many quotes at end of multiline string", tok.Text)
}
