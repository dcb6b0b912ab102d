package toml

import (
	"io"
	"strings"
)

// A Document is a parsed TOML file: the root table, the table headers
// in source order, and any trivia at the end of the file. Serializing
// an unmutated Document reproduces the source bytes exactly; mutations
// leave the formatting of untouched items alone.
//
// A Document may be read concurrently, but a mutation needs exclusive
// access for its duration.
type Document struct {
	root   *Table
	scopes []*Scope
	trail  string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.root = newTable(d)
	return d
}

// Root returns the document's root table.
func (d *Document) Root() *Table { return d.root }

// Get resolves a key path from the root. See (*Table).Get.
func (d *Document) Get(path ...string) Item { return d.root.Get(path...) }

// Has reports whether key is a direct child of the root table.
func (d *Document) Has(key string) bool { return d.root.Has(key) }

// Insert sets the value at path from the root. See (*Table).Insert.
func (d *Document) Insert(path []string, v *Value) error {
	return d.root.Insert(path, v)
}

// Remove detaches the item at path from the root. See (*Table).Remove.
func (d *Document) Remove(path ...string) Item { return d.root.Remove(path...) }

// FindOrInsertTable returns the table at path from the root, creating
// it when absent. See (*Table).FindOrInsertTable.
func (d *Document) FindOrInsertTable(path ...string) (*Table, error) {
	return d.root.FindOrInsertTable(path...)
}

// FindOrInsertArrayOfTables returns the array of tables at path from
// the root, creating it when absent. See
// (*Table).FindOrInsertArrayOfTables.
func (d *Document) FindOrInsertArrayOfTables(path ...string) (*ArrayOfTables, error) {
	return d.root.FindOrInsertArrayOfTables(path...)
}

// String serializes the document: the root table's key-value lines,
// then each header with its table's lines in source order, then the
// end-of-file trivia.
func (d *Document) String() string {
	var sb strings.Builder
	d.root.writeBlock(&sb)
	for _, sc := range d.scopes {
		sc.write(&sb)
		sc.table.writeBlock(&sb)
	}
	sb.WriteString(d.trail)
	return sb.String()
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// scopeLead is the leading trivia for a synthesized header: a blank
// line, unless the header starts the document.
func (d *Document) scopeLead() string {
	if len(d.root.entries) == 0 && len(d.scopes) == 0 {
		return ""
	}
	return "\n"
}

func (d *Document) dropScopes(scopes []*Scope) {
	if len(scopes) == 0 {
		return
	}
	doomed := make(map[*Scope]bool, len(scopes))
	for _, sc := range scopes {
		doomed[sc] = true
	}
	kept := d.scopes[:0]
	for _, sc := range d.scopes {
		if !doomed[sc] {
			kept = append(kept, sc)
		}
	}
	d.scopes = kept
}
