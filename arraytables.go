package toml

import (
	"iter"
	"strings"
)

// An ArrayOfTables is an ordered sequence of tables sharing one header
// path, one [[path]] header per element. An array of tables with no
// elements has no text at all.
type ArrayOfTables struct {
	doc    *Document
	path   []Key
	tables []*Table
}

// Kind returns KindArrayOfTables.
func (a *ArrayOfTables) Kind() Kind { return KindArrayOfTables }

// Len returns the number of element tables.
func (a *ArrayOfTables) Len() int { return len(a.tables) }

// At returns the element table at index i, or nil when out of range.
func (a *ArrayOfTables) At(i int) *Table {
	if i < 0 || i >= len(a.tables) {
		return nil
	}
	return a.tables[i]
}

// Last returns the most recently appended element table, or nil when
// the array is empty.
func (a *ArrayOfTables) Last() *Table {
	if len(a.tables) == 0 {
		return nil
	}
	return a.tables[len(a.tables)-1]
}

// Tables iterates over the element tables in order.
func (a *ArrayOfTables) Tables() iter.Seq[*Table] {
	return func(yield func(*Table) bool) {
		for _, t := range a.tables {
			if !yield(t) {
				return
			}
		}
	}
}

// Append adds a new element table with a synthesized [[path]] header at
// the end of the document and returns it.
func (a *ArrayOfTables) Append() *Table {
	t := newTable(a.doc)
	t.path = a.path
	sc := newScope(a.path, true)
	sc.lead = a.doc.scopeLead()
	sc.table = t
	t.scope = sc
	a.doc.scopes = append(a.doc.scopes, sc)
	a.tables = append(a.tables, t)
	return t
}

func (a *ArrayOfTables) appendParsed(t *Table) {
	a.tables = append(a.tables, t)
}

// write is a no-op: an array of tables serializes through its element
// scopes, never in value position.
func (a *ArrayOfTables) write(*strings.Builder) {}
