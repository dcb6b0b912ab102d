package toml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KimNorgaard/go-toml/internal/lexer"
	"github.com/KimNorgaard/go-toml/token"
)

// parser consumes the token stream and builds a Document, enforcing the
// TOML grammar and the key-uniqueness and table-definition rules. It is
// fail-fast: the first violation aborts the parse and no document is
// returned.
type parser struct {
	l    *lexer.Lexer
	doc  *Document
	cur  token.Token
	peek token.Token
}

func newParser(input []byte) *parser {
	p := &parser{l: lexer.New(input), doc: NewDocument()}
	p.next()
	p.next()
	return p
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *parser) parse() (*Document, error) {
	cur := p.doc.root
	for {
		lead := p.trivia()
		switch p.cur.Kind {
		case token.EOF:
			p.doc.trail = lead
			return p.doc, nil
		case token.ILLEGAL:
			return nil, p.lexError()
		case token.LBRACKET, token.DLBRACKET:
			tbl, err := p.parseHeader(lead)
			if err != nil {
				return nil, err
			}
			cur = tbl
		default:
			if err := p.parseKeyValue(cur, lead); err != nil {
				return nil, err
			}
		}
	}
}

// trivia consumes a run of whitespace, newline and comment tokens and
// returns their concatenated text.
func (p *parser) trivia() string {
	var sb strings.Builder
	for p.cur.Kind.IsTrivia() {
		sb.WriteString(p.cur.Text)
		p.next()
	}
	return sb.String()
}

func (p *parser) lexError() error {
	return &ParseError{Kind: ErrLex, Span: p.cur.Span, Msg: p.cur.Text}
}

func (p *parser) unexpected(format string, args ...any) error {
	return &ParseError{Kind: ErrUnexpectedToken, Span: p.cur.Span, Msg: fmt.Sprintf(format, args...)}
}

// parseKeyValue parses one `key = value` line into tbl's block.
func (p *parser) parseKeyValue(tbl *Table, lead string) error {
	path, keyText, spans, pend, err := p.parseKeyPath()
	if err != nil {
		return err
	}
	if p.cur.Kind != token.EQUALS {
		return p.unexpected("expected '=' after key, got %q", p.cur.Text)
	}
	sep := pend + p.cur.Text
	p.next()
	if p.cur.Kind == token.WHITESPACE {
		sep += p.cur.Text
		p.next()
	}
	val, err := p.parseValue()
	if err != nil {
		return err
	}
	trail, err := p.parseTrail()
	if err != nil {
		return err
	}
	e := &entry{
		lead:    lead,
		keyText: keyText,
		path:    path,
		sep:     sep,
		value:   val,
		trail:   trail,
	}
	return p.defineEntry(tbl, e, spans)
}

// parseKeyPath parses a dotted key path. It returns the segments, the
// raw path text including any spacing around the dots, the span of each
// segment, and any pending whitespace read past the last segment.
func (p *parser) parseKeyPath() ([]Key, string, []token.Span, string, error) {
	var sb strings.Builder
	var path []Key
	var spans []token.Span
	for {
		k, err := p.keySegment()
		if err != nil {
			return nil, "", nil, "", err
		}
		sb.WriteString(p.cur.Text)
		path = append(path, k)
		spans = append(spans, p.cur.Span)
		p.next()
		ws := ""
		if p.cur.Kind == token.WHITESPACE {
			ws = p.cur.Text
			p.next()
		}
		if p.cur.Kind != token.DOT {
			return path, sb.String(), spans, ws, nil
		}
		sb.WriteString(ws)
		sb.WriteString(p.cur.Text)
		p.next()
		if p.cur.Kind == token.WHITESPACE {
			sb.WriteString(p.cur.Text)
			p.next()
		}
	}
}

func (p *parser) keySegment() (Key, error) {
	switch p.cur.Kind {
	case token.BAREKEY:
		return newKey(p.cur.Text, p.cur.Text), nil
	case token.STRING:
		name, err := unescapeBasic(p.cur.Text[1:len(p.cur.Text)-1], p.cur.Span)
		if err != nil {
			return Key{}, err
		}
		return newKey(p.cur.Text, name), nil
	case token.LITERALSTRING:
		return newKey(p.cur.Text, p.cur.Text[1:len(p.cur.Text)-1]), nil
	case token.ILLEGAL:
		return Key{}, p.lexError()
	default:
		return Key{}, p.unexpected("expected key, got %q", p.cur.Text)
	}
}

// defineEntry attaches a parsed key-value entry to tbl, creating dotted
// intermediate tables and enforcing uniqueness.
func (p *parser) defineEntry(tbl *Table, e *entry, spans []token.Span) error {
	cur := tbl
	for i, k := range e.path[:len(e.path)-1] {
		it, ok := cur.children[k.Name()]
		if !ok {
			sub := newTable(p.doc)
			sub.implicit, sub.dotted = true, true
			sub.block = tbl
			sub.prefix = e.path[:i+1]
			sub.path = appendKey(cur.path, k)
			cur.setChild(k.Name(), sub)
			cur = sub
			continue
		}
		sub, ok := it.(*Table)
		if !ok {
			return &ParseError{Kind: ErrTypeConflict, Span: spans[i],
				Msg: fmt.Sprintf("key %q does not name a table", k.Name())}
		}
		if sub.inline {
			return &ParseError{Kind: ErrTableRedefinition, Span: spans[i],
				Msg: fmt.Sprintf("cannot extend inline table %q", k.Name())}
		}
		if !sub.dotted {
			return &ParseError{Kind: ErrTableRedefinition, Span: spans[i],
				Msg: fmt.Sprintf("cannot extend table %q with a dotted key", k.Name())}
		}
		cur = sub
	}
	last := e.path[len(e.path)-1]
	if cur.Has(last.Name()) {
		return &ParseError{Kind: ErrDuplicateKey, Span: spans[len(spans)-1],
			Msg: fmt.Sprintf("key %q is already defined", last.Name())}
	}
	cur.setChild(last.Name(), e.value)
	tbl.entries = append(tbl.entries, e)
	return nil
}

// parseHeader parses a [path] or [[path]] line, resolves it against the
// document, and returns the table the header opens.
func (p *parser) parseHeader(lead string) (*Table, error) {
	array := p.cur.Kind == token.DLBRACKET
	var text strings.Builder
	text.WriteString(p.cur.Text)
	p.next()
	if p.cur.Kind == token.WHITESPACE {
		text.WriteString(p.cur.Text)
		p.next()
	}
	path, keyText, spans, pend, err := p.parseKeyPath()
	if err != nil {
		return nil, err
	}
	text.WriteString(keyText)
	text.WriteString(pend)
	closing := token.RBRACKET
	if array {
		closing = token.DRBRACKET
	}
	if p.cur.Kind != closing {
		return nil, p.unexpected("expected %q to close table header, got %q", string(closing), p.cur.Text)
	}
	text.WriteString(p.cur.Text)
	p.next()
	trail, err := p.parseTrail()
	if err != nil {
		return nil, err
	}
	sc := &Scope{
		lead:  lead,
		text:  text.String(),
		path:  path,
		array: array,
		trail: trail,
	}
	return p.resolveHeader(sc, spans)
}

// resolveHeader walks the header path from the root, creating implicit
// tables for missing intermediates, and defines the table or appends
// the array-of-tables element the header names.
func (p *parser) resolveHeader(sc *Scope, spans []token.Span) (*Table, error) {
	cur := p.doc.root
	for i, k := range sc.path[:len(sc.path)-1] {
		it, ok := cur.children[k.Name()]
		if !ok {
			sub := newTable(p.doc)
			sub.implicit = true
			sub.block = nil
			sub.path = appendKey(cur.path, k)
			cur.setChild(k.Name(), sub)
			cur = sub
			continue
		}
		switch x := it.(type) {
		case *Table:
			if x.inline {
				return nil, &ParseError{Kind: ErrTableRedefinition, Span: spans[i],
					Msg: fmt.Sprintf("cannot extend inline table %q", k.Name())}
			}
			cur = x
		case *ArrayOfTables:
			cur = x.Last()
		default:
			return nil, &ParseError{Kind: ErrTypeConflict, Span: spans[i],
				Msg: fmt.Sprintf("key %q does not name a table", k.Name())}
		}
	}

	last := sc.path[len(sc.path)-1]
	lastSpan := spans[len(spans)-1]
	if sc.array {
		var aot *ArrayOfTables
		if it, ok := cur.children[last.Name()]; ok {
			aot, ok = it.(*ArrayOfTables)
			if !ok {
				return nil, &ParseError{Kind: ErrTypeConflict, Span: lastSpan,
					Msg: fmt.Sprintf("key %q is not an array of tables", last.Name())}
			}
		} else {
			aot = &ArrayOfTables{doc: p.doc, path: appendKey(cur.path, last)}
			cur.setChild(last.Name(), aot)
		}
		t := newTable(p.doc)
		t.path = aot.path
		t.scope = sc
		sc.table = t
		aot.appendParsed(t)
		p.doc.scopes = append(p.doc.scopes, sc)
		return t, nil
	}

	if it, ok := cur.children[last.Name()]; ok {
		x, ok := it.(*Table)
		if !ok {
			return nil, &ParseError{Kind: ErrTypeConflict, Span: lastSpan,
				Msg: fmt.Sprintf("key %q does not name a table", last.Name())}
		}
		// Only a table implied by a deeper header may be defined after
		// the fact; dotted and inline tables stay closed.
		if !x.implicit || x.dotted || x.inline {
			return nil, &ParseError{Kind: ErrTableRedefinition, Span: lastSpan,
				Msg: fmt.Sprintf("table %q is already defined", last.Name())}
		}
		x.implicit = false
		x.block = x
		x.scope = sc
		sc.table = x
		p.doc.scopes = append(p.doc.scopes, sc)
		return x, nil
	}
	t := newTable(p.doc)
	t.path = appendKey(cur.path, last)
	t.scope = sc
	sc.table = t
	cur.setChild(last.Name(), t)
	p.doc.scopes = append(p.doc.scopes, sc)
	return t, nil
}

// parseTrail parses the rest of a line after a value or header: optional
// whitespace, an optional comment, and the newline (or end of input).
func (p *parser) parseTrail() (string, error) {
	var sb strings.Builder
	if p.cur.Kind == token.WHITESPACE {
		sb.WriteString(p.cur.Text)
		p.next()
	}
	if p.cur.Kind == token.COMMENT {
		sb.WriteString(p.cur.Text)
		p.next()
	}
	switch p.cur.Kind {
	case token.NEWLINE:
		sb.WriteString(p.cur.Text)
		p.next()
		return sb.String(), nil
	case token.EOF:
		return sb.String(), nil
	case token.ILLEGAL:
		return "", p.lexError()
	default:
		return "", p.unexpected("expected end of line, got %q", p.cur.Text)
	}
}

func (p *parser) parseValue() (Item, error) {
	switch p.cur.Kind {
	case token.STRING:
		s, err := unescapeBasic(p.cur.Text[1:len(p.cur.Text)-1], p.cur.Span)
		if err != nil {
			return nil, err
		}
		v := &Value{kind: KindString, text: p.cur.Text, str: s}
		p.next()
		return v, nil
	case token.LITERALSTRING:
		v := &Value{kind: KindString, text: p.cur.Text, str: p.cur.Text[1 : len(p.cur.Text)-1]}
		p.next()
		return v, nil
	case token.MULTILINESTRING:
		s, err := decodeMultilineBasic(p.cur.Text, p.cur.Span)
		if err != nil {
			return nil, err
		}
		v := &Value{kind: KindString, text: p.cur.Text, str: s}
		p.next()
		return v, nil
	case token.MULTILINELITERAL:
		v := &Value{kind: KindString, text: p.cur.Text, str: trimLeadingNewline(p.cur.Text[3 : len(p.cur.Text)-3])}
		p.next()
		return v, nil
	case token.INTEGER:
		v, err := decodeInteger(p.cur.Text, p.cur.Span)
		if err != nil {
			return nil, err
		}
		p.next()
		return v, nil
	case token.FLOAT:
		v, err := decodeFloat(p.cur.Text, p.cur.Span)
		if err != nil {
			return nil, err
		}
		p.next()
		return v, nil
	case token.BOOL:
		v := &Value{kind: KindBool, text: p.cur.Text, boo: p.cur.Text == "true"}
		p.next()
		return v, nil
	case token.DATETIME, token.LOCALDATETIME, token.LOCALDATE, token.LOCALTIME:
		v, err := decodeDatetime(p.cur.Kind, p.cur.Text, p.cur.Span)
		if err != nil {
			return nil, err
		}
		p.next()
		return v, nil
	case token.LBRACKET:
		return p.parseArray()
	case token.LBRACE:
		return p.parseInlineTable()
	case token.ILLEGAL:
		return nil, p.lexError()
	default:
		return nil, p.unexpected("expected value, got %q", p.cur.Text)
	}
}

func (p *parser) parseArray() (Item, error) {
	p.next()
	arr := &Array{}
	for {
		lead := p.trivia()
		switch p.cur.Kind {
		case token.RBRACKET:
			arr.trail = lead
			p.next()
			return &Value{kind: KindArray, arr: arr}, nil
		case token.EOF:
			return nil, p.unexpected("unterminated array")
		case token.ILLEGAL:
			return nil, p.lexError()
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		after := p.trivia()
		switch p.cur.Kind {
		case token.COMMA:
			arr.elems = append(arr.elems, arrayElem{lead: lead, value: v, after: after, comma: true})
			p.next()
		case token.RBRACKET:
			arr.elems = append(arr.elems, arrayElem{lead: lead, value: v})
			arr.trail = after
			p.next()
			return &Value{kind: KindArray, arr: arr}, nil
		case token.ILLEGAL:
			return nil, p.lexError()
		default:
			return nil, p.unexpected("expected ',' or ']' in array, got %q", p.cur.Text)
		}
	}
}

func (p *parser) parseInlineTable() (Item, error) {
	p.next()
	t := newTable(p.doc)
	t.inline = true
	needKey := false
	for {
		ws := ""
		if p.cur.Kind == token.WHITESPACE {
			ws = p.cur.Text
			p.next()
		}
		switch p.cur.Kind {
		case token.RBRACE:
			if needKey {
				return nil, p.unexpected("trailing comma in inline table")
			}
			t.trail = ws
			p.next()
			return t, nil
		case token.NEWLINE:
			return nil, p.unexpected("newline inside inline table")
		case token.EOF:
			return nil, p.unexpected("unterminated inline table")
		case token.ILLEGAL:
			return nil, p.lexError()
		}
		path, keyText, spans, pend, err := p.parseKeyPath()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != token.EQUALS {
			return nil, p.unexpected("expected '=' after key, got %q", p.cur.Text)
		}
		sep := pend + p.cur.Text
		p.next()
		if p.cur.Kind == token.WHITESPACE {
			sep += p.cur.Text
			p.next()
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		e := &entry{lead: ws, keyText: keyText, path: path, sep: sep, value: val}
		if err := p.defineEntry(t, e, spans); err != nil {
			return nil, err
		}
		ws2 := ""
		if p.cur.Kind == token.WHITESPACE {
			ws2 = p.cur.Text
			p.next()
		}
		switch p.cur.Kind {
		case token.COMMA:
			e.after = ws2
			e.comma = true
			needKey = true
			p.next()
		case token.RBRACE:
			t.trail = ws2
			p.next()
			return t, nil
		case token.NEWLINE:
			return nil, p.unexpected("newline inside inline table")
		case token.ILLEGAL:
			return nil, p.lexError()
		default:
			return nil, p.unexpected("expected ',' or '}' in inline table, got %q", p.cur.Text)
		}
	}
}

func decodeInteger(text string, span token.Span) (*Value, error) {
	s := strings.ReplaceAll(text, "_", "")
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, &ParseError{Kind: ErrIntegerOverflow, Span: span,
				Msg: fmt.Sprintf("integer %s does not fit in 64 bits", text)}
		}
		return nil, &ParseError{Kind: ErrLex, Span: span,
			Msg: fmt.Sprintf("invalid integer %q", text)}
	}
	return &Value{kind: KindInteger, text: text, num: n}, nil
}

// decodeFloat decodes a float literal. Literals beyond the float64
// range round to ±Inf, matching strconv; only malformed text fails.
func decodeFloat(text string, span token.Span) (*Value, error) {
	s := strings.ReplaceAll(text, "_", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &ParseError{Kind: ErrLex, Span: span,
			Msg: fmt.Sprintf("invalid float %q", text)}
	}
	return &Value{kind: KindFloat, text: text, flt: f}, nil
}

func decodeDatetime(kind token.Kind, text string, span token.Span) (*Value, error) {
	var layout string
	var vkind Kind
	switch kind {
	case token.DATETIME:
		layout, vkind = layoutOffsetDatetime, KindOffsetDatetime
	case token.LOCALDATETIME:
		layout, vkind = layoutLocalDatetime, KindLocalDatetime
	case token.LOCALDATE:
		layout, vkind = layoutLocalDate, KindLocalDate
	default:
		layout, vkind = layoutLocalTime, KindLocalTime
	}
	norm := strings.Map(func(r rune) rune {
		switch r {
		case 't':
			return 'T'
		case 'z':
			return 'Z'
		}
		return r
	}, text)
	tm, err := time.Parse(layout, norm)
	if err != nil {
		return nil, &ParseError{Kind: ErrLex, Span: span,
			Msg: fmt.Sprintf("invalid date-time %q", text)}
	}
	return &Value{kind: vkind, text: text, tim: tm}, nil
}
