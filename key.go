package toml

import "strings"

// A Key is one segment of a key path. It keeps the raw source spelling
// (quoted form, escapes, case) alongside the logical name used for
// lookup, so that serialization reproduces the original text while two
// spellings of the same name still collide.
type Key struct {
	text string
	name string
}

func newKey(text, name string) Key {
	return Key{text: text, name: name}
}

// KeyFromName builds a Key for name with canonical spelling: bare form
// when the name allows it, basic-string quoting otherwise.
func KeyFromName(name string) Key {
	if isBareName(name) {
		return Key{text: name, name: name}
	}
	return Key{text: quoteBasic(name), name: name}
}

// Name returns the logical key name.
func (k Key) Name() string { return k.name }

// Text returns the raw source spelling, including any quoting.
func (k Key) Text() string { return k.text }

func isBareName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') ||
			('0' <= c && c <= '9') || c == '_' || c == '-' {
			continue
		}
		return false
	}
	return true
}

// quoteBasic renders s as a TOML basic string.
func quoteBasic(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(escapeUnicode(r))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func escapeUnicode(r rune) string {
	const hex = "0123456789ABCDEF"
	buf := []byte(`\u0000`)
	for i := 5; i >= 2; i-- {
		buf[i] = hex[r&0xf]
		r >>= 4
	}
	return string(buf)
}

func joinKeys(path []Key) string {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = k.Text()
	}
	return strings.Join(parts, ".")
}

func keyNames(path []Key) []string {
	names := make([]string, len(path))
	for i, k := range path {
		names[i] = k.Name()
	}
	return names
}

func keysFromNames(names []string) []Key {
	keys := make([]Key, len(names))
	for i, n := range names {
		keys[i] = KeyFromName(n)
	}
	return keys
}
