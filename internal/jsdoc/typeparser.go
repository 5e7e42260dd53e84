package jsdoc

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseType parses a Closure-style type expression such as
// "Array.<string>", "{a: number, b}", "(string|number)=" or
// "function(Object, ...*):boolean".
func ParseType(src string) (*Type, error) {
	p := &typeParser{src: src}
	t, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("type %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) eof() bool { return p.pos >= len(p.src) }

func (p *typeParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) consume(s string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *typeParser) expect(s string) error {
	if !p.consume(s) {
		if p.eof() {
			return p.errorf("expected %q, got end of input", s)
		}
		return p.errorf("expected %q", s)
	}
	return nil
}

func (p *typeParser) parseUnion() (*Type, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	elements := []*Type{first}
	for p.consume("|") {
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	if len(elements) == 1 {
		return first, nil
	}
	return &Type{Kind: UnionType, Elements: elements}, nil
}

// atTerminator reports whether the next significant character ends the
// current expression.
func (p *typeParser) atTerminator() bool {
	p.skipSpace()
	if p.eof() {
		return true
	}
	return strings.IndexByte(",|)>}]=", p.peek()) >= 0
}

func (p *typeParser) parseUnary() (*Type, error) {
	p.skipSpace()
	switch {
	case p.consume("..."):
		if p.atTerminator() {
			return &Type{Kind: RestType}, nil
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Type{Kind: RestType, Expression: inner}, nil
	case p.consume("?"):
		if p.atTerminator() {
			return p.parsePostfix(&Type{Kind: NullableLiteral}), nil
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Type{Kind: OptionalType, Expression: inner}, nil
	case p.consume("!"):
		return p.parseUnary()
	}

	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(t), nil
}

func (p *typeParser) parsePostfix(t *Type) *Type {
	for {
		switch {
		case p.consume("[]"):
			t = &Type{Kind: TypeApplication, Expression: Name("Array"), Applications: []*Type{t}}
		case p.consume("="), p.consume("?"):
			t = &Type{Kind: OptionalType, Expression: t}
		case p.consume("!"):
		default:
			return t
		}
	}
}

func (p *typeParser) parsePrimary() (*Type, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}

	switch p.peek() {
	case '*':
		p.pos++
		return &Type{Kind: AllLiteral}, nil
	case '(':
		p.pos++
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case '{':
		p.pos++
		return p.parseRecord()
	case '[':
		p.pos++
		elements, err := p.parseList("]")
		if err != nil {
			return nil, err
		}
		return &Type{Kind: ArrayType, Elements: elements}, nil
	}

	name := p.parseName()
	if name == "" {
		return nil, p.errorf("unexpected %q", string(p.peek()))
	}

	if name == "function" {
		save := p.pos
		if p.consume("(") {
			return p.parseFunction()
		}
		p.pos = save
	}

	if p.consume(".<") || p.consume("<") {
		apps, err := p.parseList(">")
		if err != nil {
			return nil, err
		}
		return &Type{Kind: TypeApplication, Expression: Name(name), Applications: apps}, nil
	}

	return Name(name), nil
}

// parseName reads a dotted identifier, stopping before ".<".
func (p *typeParser) parseName() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '.' {
			if strings.HasPrefix(p.src[p.pos:], ".<") || strings.HasPrefix(p.src[p.pos:], "...") {
				break
			}
			p.pos++
			continue
		}
		if isNameChar(c) {
			p.pos++
			continue
		}
		if c == '"' || c == '\'' {
			end := strings.IndexByte(p.src[p.pos+1:], c)
			if end < 0 {
				break
			}
			p.pos += end + 2
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isNameChar(c byte) bool {
	return c == '_' || c == '$' || c == '/' || c == '-' || c == '~' || c == '#' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c >= 0x80
}

func (p *typeParser) parseList(closing string) ([]*Type, error) {
	var items []*Type
	if p.consume(closing) {
		return items, nil
	}
	for {
		item, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.consume(",") {
			continue
		}
		if err := p.expect(closing); err != nil {
			return nil, err
		}
		return items, nil
	}
}

func (p *typeParser) parseRecord() (*Type, error) {
	record := &Type{Kind: RecordType, Fields: []*Field{}}
	if p.consume("}") {
		return record, nil
	}
	for {
		key := p.parseName()
		if key == "" {
			return nil, p.errorf("expected record key")
		}
		field := &Field{Key: strings.Trim(key, `"'`)}
		if p.consume(":") {
			value, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			field.Value = value
		}
		record.Fields = append(record.Fields, field)
		if p.consume(",") {
			continue
		}
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		return record, nil
	}
}

func (p *typeParser) parseFunction() (*Type, error) {
	fn := &Type{Kind: FunctionType, Params: []*Type{}}
	if !p.consume(")") {
		for {
			// "this:T" and "new:T" bind the receiver; they are listed like
			// ordinary parameters.
			save := p.pos
			word := p.parseName()
			if !((word == "this" || word == "new") && p.consume(":")) {
				p.pos = save
			}
			param, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
			if p.consume(",") {
				continue
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			break
		}
	}
	if p.consume(":") {
		result, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		fn.Result = result
	}
	return fn, nil
}
