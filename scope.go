package toml

import "strings"

// A Scope is the header of a standard table or of one array-of-tables
// element: the bracketed path with its surrounding trivia. The root
// table has no Scope. The header text is kept verbatim from the source
// and only regenerated when the scope is synthesized by a mutation.
type Scope struct {
	lead  string // trivia before the opening bracket
	text  string // "[a.b]" or "[[a.b]]", verbatim
	path  []Key
	array bool
	trail string // same-line trivia after the header, with its newline
	table *Table
}

func newScope(path []Key, array bool) *Scope {
	opening, closing := "[", "]"
	if array {
		opening, closing = "[[", "]]"
	}
	return &Scope{
		text:  opening + joinKeys(path) + closing,
		path:  path,
		array: array,
		trail: "\n",
	}
}

// Path returns the logical names of the header path segments.
func (s *Scope) Path() []string { return keyNames(s.path) }

// IsArray reports whether the scope heads an array-of-tables element.
func (s *Scope) IsArray() bool { return s.array }

// Table returns the table the scope introduces.
func (s *Scope) Table() *Table { return s.table }

func (s *Scope) write(sb *strings.Builder) {
	sb.WriteString(s.lead)
	sb.WriteString(s.text)
	sb.WriteString(s.trail)
}
