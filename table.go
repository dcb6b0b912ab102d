package toml

import (
	"iter"
	"strings"
)

// An entry is one key-value line in a table's block, or one pair in an
// inline table. It owns the formatting of the whole line: leading
// trivia, the raw key path text, the spacing around '=', and the
// same-line trailing trivia.
type entry struct {
	lead    string
	keyText string
	path    []Key
	sep     string // from the end of the key through '=' and its spacing
	value   Item
	after   string // inline only: trivia between the value and its comma
	comma   bool   // inline only
	trail   string // block only: same-line trivia and the newline
}

// A Table is an ordered mapping from keys to values, tables and arrays
// of tables. Standard tables carry their header Scope; inline tables
// serialize in braces as part of a key-value line. Tables created
// implicitly, by a dotted key or by a deeper header path, have no text
// of their own: dotted-table entries live in the block of an ancestor,
// and header-implicit tables exist only through their children.
type Table struct {
	doc      *Document
	inline   bool
	implicit bool
	dotted   bool
	scope    *Scope
	path     []Key  // absolute path from the root
	block    *Table // table whose entries hold this table's key-value text
	prefix   []Key  // key path from block to this table (dotted tables)
	entries  []*entry
	children map[string]Item
	order    []string
	trail    string // inline only: trivia before '}'
}

func newTable(doc *Document) *Table {
	t := &Table{doc: doc, children: map[string]Item{}}
	t.block = t
	return t
}

// Kind returns KindInlineTable for inline tables and KindTable otherwise.
func (t *Table) Kind() Kind {
	if t.inline {
		return KindInlineTable
	}
	return KindTable
}

// IsInline reports whether the table was written in braces.
func (t *Table) IsInline() bool { return t.inline }

// IsImplicit reports whether the table exists only through a dotted key
// or a deeper header path, with no header or braces of its own.
func (t *Table) IsImplicit() bool { return t.implicit }

// Scope returns the table's header scope, or nil for the root table,
// inline tables and implicit tables.
func (t *Table) Scope() *Scope { return t.scope }

// Len returns the number of direct children.
func (t *Table) Len() int { return len(t.order) }

// Has reports whether key is among the table's direct children.
func (t *Table) Has(key string) bool {
	_, ok := t.children[key]
	return ok
}

// Get resolves a key path through nested tables and returns the item at
// its end, or nil when any segment is absent. An array of tables ends
// the traversal: Get does not pick an element implicitly.
func (t *Table) Get(path ...string) Item {
	if len(path) == 0 {
		return nil
	}
	cur := t
	for i, name := range path {
		it, ok := cur.children[name]
		if !ok {
			return nil
		}
		if i == len(path)-1 {
			return it
		}
		sub, ok := it.(*Table)
		if !ok {
			return nil
		}
		cur = sub
	}
	return nil
}

// All iterates over the table's direct children in insertion order.
func (t *Table) All() iter.Seq2[string, Item] {
	return func(yield func(string, Item) bool) {
		for _, name := range t.order {
			if !yield(name, t.children[name]) {
				return
			}
		}
	}
}

// Insert sets the value at path, creating implicit intermediate tables
// as needed. When the path already names a plain value, the value is
// replaced in place: its spelling is regenerated while the key spelling
// and the line's trivia stay as they were. A path segment occupied by
// anything other than a table fails with a KeyConflictError, and the
// document is left unchanged.
func (t *Table) Insert(path []string, v *Value) error {
	if len(path) == 0 {
		return &KeyConflictError{Path: path}
	}
	cur := t
	i := 0
	for i < len(path)-1 {
		it, ok := cur.children[path[i]]
		if !ok {
			break
		}
		sub, ok := it.(*Table)
		if !ok {
			return &KeyConflictError{Path: path[:i+1]}
		}
		cur = sub
		i++
	}
	rest := path[i:]
	if len(rest) == 1 {
		if it, ok := cur.children[rest[0]]; ok {
			old, ok := it.(*Value)
			if !ok {
				return &KeyConflictError{Path: path}
			}
			*old = *v
			return nil
		}
	}

	block := cur.block
	if block == nil {
		// A header-implicit table gains a header of its own the first
		// time a value lands directly in it.
		cur.materialize()
		block = cur
	}

	keys := keysFromNames(rest)
	parent := cur
	for j := 0; j < len(rest)-1; j++ {
		sub := newTable(t.doc)
		sub.implicit, sub.dotted = true, true
		sub.block = block
		sub.prefix = appendKey(parent.prefix, keys[j])
		sub.path = appendKey(parent.path, keys[j])
		parent.setChild(rest[j], sub)
		parent = sub
	}
	parent.setChild(rest[len(rest)-1], v)

	e := &entry{
		keyText: joinKeys(append(append([]Key{}, cur.prefix...), keys...)),
		path:    append(append([]Key{}, cur.prefix...), keys...),
		sep:     " = ",
		value:   v,
	}
	if block.inline {
		e.lead = " "
		if n := len(block.entries); n > 0 {
			block.entries[n-1].comma = true
		}
		if block.trail == "" {
			block.trail = " "
		}
	} else {
		e.trail = "\n"
		if !blockEndsLine(block) {
			e.lead = "\n"
		}
	}
	block.entries = append(block.entries, e)
	return nil
}

// blockEndsLine reports whether the block's serialized text ends with a
// newline. The final line of a document may lack one.
func blockEndsLine(block *Table) bool {
	if n := len(block.entries); n > 0 {
		return strings.HasSuffix(block.entries[n-1].trail, "\n")
	}
	if block.scope != nil {
		return strings.HasSuffix(block.scope.trail, "\n")
	}
	return true
}

// Remove detaches the item at path and returns it, or returns nil when
// the path is absent. The trivia of surviving siblings is untouched.
// Implicit intermediate tables left empty by the removal are pruned;
// removing a standard table or an array of tables drops its headers and
// those of every nested table.
func (t *Table) Remove(path ...string) Item {
	if len(path) == 0 {
		return nil
	}
	chain := []*Table{t}
	cur := t
	for _, name := range path[:len(path)-1] {
		sub, ok := cur.children[name].(*Table)
		if !ok {
			return nil
		}
		chain = append(chain, sub)
		cur = sub
	}
	name := path[len(path)-1]
	it, ok := cur.children[name]
	if !ok {
		return nil
	}

	switch x := it.(type) {
	case *Value:
		removeEntryWithValue(cur.block, x)
	case *Table:
		if x.inline {
			removeEntryWithValue(cur.block, x)
		} else {
			if x.dotted && x.block != nil {
				removeEntriesWithPrefix(x.block, keyNames(x.prefix))
			}
			t.doc.dropScopes(collectScopes(x))
		}
	case *ArrayOfTables:
		t.doc.dropScopes(collectScopes(x))
	}
	cur.removeChild(name)

	for j := len(chain) - 1; j >= 1; j-- {
		tb := chain[j]
		if !tb.implicit || len(tb.children) > 0 {
			break
		}
		chain[j-1].removeChild(path[j-1])
	}
	return it
}

// FindOrInsertTable returns the table at path, creating standard tables
// along the way when absent. Newly created final tables get a header
// appended to the document; intermediates stay implicit, as a dotted
// header path would leave them. A segment occupied by a value or an
// array of tables fails with a KeyConflictError.
func (t *Table) FindOrInsertTable(path ...string) (*Table, error) {
	cur := t
	for i, name := range path {
		it, ok := cur.children[name]
		if ok {
			sub, ok := it.(*Table)
			if !ok {
				return nil, &KeyConflictError{Path: path[:i+1]}
			}
			cur = sub
			continue
		}
		sub := newTable(t.doc)
		sub.path = appendKey(cur.path, KeyFromName(name))
		switch {
		case cur.inline || cur.dotted:
			// No header can appear inside an inline table's braces;
			// the new table lives as dotted entries in the same block.
			sub.implicit, sub.dotted = true, true
			sub.block = cur.block
			sub.prefix = appendKey(cur.prefix, KeyFromName(name))
		case i == len(path)-1:
			sub.materialize()
		default:
			sub.implicit = true
			sub.block = nil
		}
		cur.setChild(name, sub)
		cur = sub
	}
	return cur, nil
}

// FindOrInsertArrayOfTables returns the array of tables at path,
// creating an empty one (and implicit intermediate tables) when absent.
// A segment occupied by anything else fails with a KeyConflictError.
func (t *Table) FindOrInsertArrayOfTables(path ...string) (*ArrayOfTables, error) {
	if len(path) == 0 {
		return nil, &KeyConflictError{Path: path}
	}
	cur := t
	for i, name := range path[:len(path)-1] {
		it, ok := cur.children[name]
		if ok {
			sub, ok := it.(*Table)
			if !ok {
				return nil, &KeyConflictError{Path: path[:i+1]}
			}
			cur = sub
			continue
		}
		sub := newTable(t.doc)
		sub.path = appendKey(cur.path, KeyFromName(name))
		sub.implicit = true
		sub.block = nil
		cur.setChild(name, sub)
		cur = sub
	}
	if cur.inline || cur.dotted {
		return nil, &KeyConflictError{Path: path}
	}
	name := path[len(path)-1]
	if it, ok := cur.children[name]; ok {
		aot, ok := it.(*ArrayOfTables)
		if !ok {
			return nil, &KeyConflictError{Path: path}
		}
		return aot, nil
	}
	aot := &ArrayOfTables{
		doc:  t.doc,
		path: appendKey(cur.path, KeyFromName(name)),
	}
	cur.setChild(name, aot)
	return aot, nil
}

// materialize turns a table with no text of its own into a standard
// table with a synthesized header appended to the document.
func (t *Table) materialize() {
	sc := newScope(t.path, false)
	sc.lead = t.doc.scopeLead()
	sc.table = t
	t.scope = sc
	t.implicit = false
	t.dotted = false
	t.block = t
	t.prefix = nil
	t.doc.scopes = append(t.doc.scopes, sc)
}

func (t *Table) setChild(name string, it Item) {
	if _, ok := t.children[name]; !ok {
		t.order = append(t.order, name)
	}
	t.children[name] = it
}

func (t *Table) removeChild(name string) {
	if _, ok := t.children[name]; !ok {
		return
	}
	delete(t.children, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func removeEntryWithValue(block *Table, it Item) {
	if block == nil {
		return
	}
	for i, e := range block.entries {
		if e.value == it {
			block.entries = append(block.entries[:i], block.entries[i+1:]...)
			// A trailing comma is not valid inside braces.
			if n := len(block.entries); block.inline && i == n && n > 0 {
				block.entries[n-1].comma = false
				block.entries[n-1].after = ""
			}
			return
		}
	}
}

func removeEntriesWithPrefix(block *Table, prefix []string) {
	kept := block.entries[:0]
	for _, e := range block.entries {
		if !pathHasPrefix(e.path, prefix) {
			kept = append(kept, e)
		}
	}
	block.entries = kept
}

func pathHasPrefix(path []Key, prefix []string) bool {
	if len(path) < len(prefix) {
		return false
	}
	for i, name := range prefix {
		if path[i].Name() != name {
			return false
		}
	}
	return true
}

// collectScopes gathers the header scopes of an item and everything
// nested under it, in no particular order.
func collectScopes(it Item) []*Scope {
	var scopes []*Scope
	switch x := it.(type) {
	case *Table:
		if x.scope != nil {
			scopes = append(scopes, x.scope)
		}
		for _, name := range x.order {
			scopes = append(scopes, collectScopes(x.children[name])...)
		}
	case *ArrayOfTables:
		for _, tb := range x.tables {
			scopes = append(scopes, collectScopes(tb)...)
		}
	}
	return scopes
}

func appendKey(base []Key, k Key) []Key {
	p := make([]Key, len(base)+1)
	copy(p, base)
	p[len(base)] = k
	return p
}

func (t *Table) writeBlock(sb *strings.Builder) {
	for _, e := range t.entries {
		sb.WriteString(e.lead)
		sb.WriteString(e.keyText)
		sb.WriteString(e.sep)
		e.value.write(sb)
		sb.WriteString(e.trail)
	}
}

func (t *Table) write(sb *strings.Builder) {
	if !t.inline {
		return
	}
	sb.WriteByte('{')
	for _, e := range t.entries {
		sb.WriteString(e.lead)
		sb.WriteString(e.keyText)
		sb.WriteString(e.sep)
		e.value.write(sb)
		sb.WriteString(e.after)
		if e.comma {
			sb.WriteByte(',')
		}
	}
	sb.WriteString(t.trail)
	sb.WriteByte('}')
}
