package toml

import (
	"iter"
	"strings"
)

// An Array is an ordered sequence of values. Each element keeps the
// trivia around it, so arrays spread over several lines, with comments
// between elements and trailing commas, serialize back exactly.
type Array struct {
	elems []arrayElem
	trail string // trivia between the last element (or '[') and ']'
}

type arrayElem struct {
	lead  string // trivia after '[' or the previous comma
	value Item
	after string // trivia between the value and its comma
	comma bool
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element at index i, or nil when out of range.
func (a *Array) At(i int) Item {
	if i < 0 || i >= len(a.elems) {
		return nil
	}
	return a.elems[i].value
}

// Values iterates over the elements in order.
func (a *Array) Values() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, e := range a.elems {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Append adds v at the end of the array with canonical spacing. The
// trivia of existing elements is untouched.
func (a *Array) Append(v Item) {
	if n := len(a.elems); n > 0 {
		a.elems[n-1].comma = true
		a.elems = append(a.elems, arrayElem{lead: " ", value: v})
	} else {
		a.elems = append(a.elems, arrayElem{value: v})
	}
}

// RemoveAt detaches and returns the element at index i, or nil when out
// of range.
func (a *Array) RemoveAt(i int) Item {
	if i < 0 || i >= len(a.elems) {
		return nil
	}
	v := a.elems[i].value
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
	if n := len(a.elems); n > 0 && i == n {
		a.elems[n-1].comma = false
		a.elems[n-1].after = ""
	}
	return v
}

func (a *Array) write(sb *strings.Builder) {
	sb.WriteByte('[')
	for _, e := range a.elems {
		sb.WriteString(e.lead)
		e.value.write(sb)
		sb.WriteString(e.after)
		if e.comma {
			sb.WriteByte(',')
		}
	}
	sb.WriteString(a.trail)
	sb.WriteByte(']')
}
