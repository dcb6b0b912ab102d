package toml

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-toml/token"
)

// ErrorKind classifies a ParseError.
type ErrorKind string

const (
	// ErrLex marks a malformed token: an unterminated string, a bad
	// escape, a misplaced underscore in a number, and so on.
	ErrLex ErrorKind = "LexError"
	// ErrUnexpectedToken marks a grammar violation, such as a missing
	// '=' or trailing content after a table header.
	ErrUnexpectedToken ErrorKind = "UnexpectedToken"
	// ErrDuplicateKey marks a key defined twice in the same table.
	ErrDuplicateKey ErrorKind = "DuplicateKey"
	// ErrTableRedefinition marks a header that names an already-defined
	// table, or extends an inline or dotted-key table.
	ErrTableRedefinition ErrorKind = "TableRedefinition"
	// ErrTypeConflict marks a key path reused with an incompatible item
	// kind, such as [[x]] where x is a plain value.
	ErrTypeConflict ErrorKind = "TypeConflict"
	// ErrIntegerOverflow marks an integer literal outside the int64 range.
	ErrIntegerOverflow ErrorKind = "IntegerOverflow"
)

// A ParseError describes a failure while parsing TOML source. Span
// locates the offending bytes in the input; rendering source context is
// left to the caller.
type ParseError struct {
	Kind ErrorKind
	Span token.Span
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: %s at byte %d: %s", e.Kind, e.Span.Start, e.Msg)
}

// A KeyConflictError reports a mutation whose path runs through a key
// that holds something other than a table.
type KeyConflictError struct {
	Path []string
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("toml: key %q does not name a table", strings.Join(e.Path, "."))
}

// A ValueAccessError reports a typed accessor called on a Value of a
// different kind.
type ValueAccessError struct {
	Want Kind
	Got  Kind
}

func (e *ValueAccessError) Error() string {
	return fmt.Sprintf("toml: value is %s, not %s", e.Got, e.Want)
}
