package toml

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies what an Item holds.
type Kind string

const (
	KindString         Kind = "string"
	KindInteger        Kind = "integer"
	KindFloat          Kind = "float"
	KindBool           Kind = "bool"
	KindOffsetDatetime Kind = "offset-datetime"
	KindLocalDatetime  Kind = "local-datetime"
	KindLocalDate      Kind = "local-date"
	KindLocalTime      Kind = "local-time"
	KindArray          Kind = "array"
	KindInlineTable    Kind = "inline-table"
	KindTable          Kind = "table"
	KindArrayOfTables  Kind = "array-of-tables"
)

// An Item is anything a key can map to: a *Value, a *Table, or an
// *ArrayOfTables.
type Item interface {
	Kind() Kind
	write(sb *strings.Builder)
}

// A Value is a scalar or array value. It retains the exact source
// spelling of the literal next to the decoded value; the two always
// agree, because changing the value programmatically regenerates the
// spelling.
type Value struct {
	kind Kind
	text string
	str  string
	num  int64
	flt  float64
	boo  bool
	tim  time.Time
	arr  *Array
}

// Datetime layouts for each of the four TOML date-time kinds.
// time.Parse and time.Format handle fractional seconds implicitly.
const (
	layoutOffsetDatetime = "2006-01-02T15:04:05Z07:00"
	layoutLocalDatetime  = "2006-01-02T15:04:05"
	layoutLocalDate      = "2006-01-02"
	layoutLocalTime      = "15:04:05"
)

// NewString returns a string Value with canonical basic-string spelling.
func NewString(s string) *Value {
	return &Value{kind: KindString, text: quoteBasic(s), str: s}
}

// NewInteger returns an integer Value with canonical decimal spelling.
func NewInteger(i int64) *Value {
	return &Value{kind: KindInteger, text: strconv.FormatInt(i, 10), num: i}
}

// NewFloat returns a float Value with canonical spelling.
func NewFloat(f float64) *Value {
	return &Value{kind: KindFloat, text: formatFloat(f), flt: f}
}

// NewBool returns a boolean Value.
func NewBool(b bool) *Value {
	text := "false"
	if b {
		text = "true"
	}
	return &Value{kind: KindBool, text: text, boo: b}
}

// NewDatetime returns an offset date-time Value in RFC 3339 form.
func NewDatetime(t time.Time) *Value {
	return &Value{kind: KindOffsetDatetime, text: t.Format(layoutOffsetDatetime), tim: t}
}

// NewLocalDatetime returns a local date-time Value; t's location is ignored.
func NewLocalDatetime(t time.Time) *Value {
	return &Value{kind: KindLocalDatetime, text: t.Format(layoutLocalDatetime), tim: t}
}

// NewLocalDate returns a local date Value; t's clock and location are ignored.
func NewLocalDate(t time.Time) *Value {
	return &Value{kind: KindLocalDate, text: t.Format(layoutLocalDate), tim: t}
}

// NewLocalTime returns a local time Value; t's date and location are ignored.
func NewLocalTime(t time.Time) *Value {
	return &Value{kind: KindLocalTime, text: t.Format(layoutLocalTime), tim: t}
}

// NewArray returns an empty array Value with canonical spelling.
func NewArray() *Value {
	return &Value{kind: KindArray, arr: &Array{}}
}

// Kind returns the value's kind.
func (v *Value) Kind() Kind { return v.kind }

// Raw returns the exact source spelling of the value. For arrays it is
// assembled from the stored element spellings and trivia.
func (v *Value) Raw() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

// AsString returns the decoded string.
func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &ValueAccessError{Want: KindString, Got: v.kind}
	}
	return v.str, nil
}

// AsInt returns the decoded integer.
func (v *Value) AsInt() (int64, error) {
	if v.kind != KindInteger {
		return 0, &ValueAccessError{Want: KindInteger, Got: v.kind}
	}
	return v.num, nil
}

// AsFloat returns the decoded float.
func (v *Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, &ValueAccessError{Want: KindFloat, Got: v.kind}
	}
	return v.flt, nil
}

// AsBool returns the decoded boolean.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &ValueAccessError{Want: KindBool, Got: v.kind}
	}
	return v.boo, nil
}

// AsTime returns the decoded date-time for any of the four date-time
// kinds. Local kinds carry a UTC time with zero values for the missing
// components.
func (v *Value) AsTime() (time.Time, error) {
	switch v.kind {
	case KindOffsetDatetime, KindLocalDatetime, KindLocalDate, KindLocalTime:
		return v.tim, nil
	}
	return time.Time{}, &ValueAccessError{Want: KindOffsetDatetime, Got: v.kind}
}

// AsArray returns the underlying array.
func (v *Value) AsArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, &ValueAccessError{Want: KindArray, Got: v.kind}
	}
	return v.arr, nil
}

// SetString replaces the value with a string, regenerating the spelling.
func (v *Value) SetString(s string) { *v = *NewString(s) }

// SetInt replaces the value with an integer, regenerating the spelling.
func (v *Value) SetInt(i int64) { *v = *NewInteger(i) }

// SetFloat replaces the value with a float, regenerating the spelling.
func (v *Value) SetFloat(f float64) { *v = *NewFloat(f) }

// SetBool replaces the value with a boolean, regenerating the spelling.
func (v *Value) SetBool(b bool) { *v = *NewBool(b) }

func (v *Value) write(sb *strings.Builder) {
	if v.kind == KindArray {
		v.arr.write(sb)
		return
	}
	sb.WriteString(v.text)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
