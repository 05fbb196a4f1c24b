package fixture

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"fortio.org/safecast"

	"irkit/internal/native"
)

// maxIntWidth mirrors the widest integer type a native context accepts.
const maxIntWidth = 1 << 23

// ParseType parses the compact type notation into a type owned by c.
//
//	i32  float  ptr  ptr addrspace(1)  [4 x i8]  <2 x double>
//	{i32, ptr}  <{i8, i8}>  void (i32, ...)
//
// The notation is the same one native.TypeRef.String produces.
func ParseType(c *native.Context, src string) (native.TypeRef, error) {
	p := &typeParser{c: c, src: src, toks: scanType(src)}
	t, err := p.parseType()
	if err != nil {
		return native.TypeRef{}, err
	}
	if !p.done() {
		return native.TypeRef{}, p.errorf("unexpected %q after type", p.peek())
	}
	return t, nil
}

func scanType(src string) []string {
	var toks []string
	for i := 0; i < len(src); {
		r := rune(src[i])
		switch {
		case unicode.IsSpace(r):
			i++
		case strings.HasPrefix(src[i:], "..."):
			toks = append(toks, "...")
			i += 3
		case strings.ContainsRune("[]<>{}(),", r):
			toks = append(toks, src[i:i+1])
			i++
		default:
			j := i
			for j < len(src) && !unicode.IsSpace(rune(src[j])) && !strings.ContainsRune("[]<>{}(),", rune(src[j])) {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		}
	}
	return toks
}

type typeParser struct {
	c    *native.Context
	src  string
	toks []string
	pos  int
}

func (p *typeParser) done() bool { return p.pos >= len(p.toks) }

func (p *typeParser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *typeParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *typeParser) expect(tok string) error {
	if got := p.next(); got != tok {
		return p.errorf("expected %q, got %q", tok, got)
	}
	return nil
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("type %q: %s", p.src, fmt.Sprintf(format, args...))
}

// parseType reads a base type and any trailing parameter lists, which turn
// it into the return type of a function type.
func (p *typeParser) parseType() (native.TypeRef, error) {
	t, err := p.parseBase()
	if err != nil {
		return native.TypeRef{}, err
	}
	for p.peek() == "(" {
		p.next()
		params, variadic, err := p.parseParams()
		if err != nil {
			return native.TypeRef{}, err
		}
		t = p.c.FunctionType(t, params, variadic)
	}
	return t, nil
}

func (p *typeParser) parseParams() ([]native.TypeRef, bool, error) {
	var params []native.TypeRef
	for p.peek() != ")" {
		if p.done() {
			return nil, false, p.errorf("unterminated parameter list")
		}
		if p.peek() == "..." {
			p.next()
			if err := p.expect(")"); err != nil {
				return nil, false, err
			}
			return params, true, nil
		}
		t, err := p.parseType()
		if err != nil {
			return nil, false, err
		}
		params = append(params, t)
		if p.peek() == "," {
			p.next()
		}
	}
	p.next()
	return params, false, nil
}

func (p *typeParser) parseBase() (native.TypeRef, error) {
	tok := p.next()
	switch tok {
	case "":
		return native.TypeRef{}, p.errorf("unexpected end of type")
	case "void":
		return p.c.VoidType(), nil
	case "half":
		return p.c.HalfType(), nil
	case "bfloat":
		return p.c.BFloatType(), nil
	case "float":
		return p.c.FloatType(), nil
	case "double":
		return p.c.DoubleType(), nil
	case "x86_fp80":
		return p.c.X86FP80Type(), nil
	case "fp128":
		return p.c.FP128Type(), nil
	case "ppc_fp128":
		return p.c.PPCFP128Type(), nil
	case "label":
		return p.c.LabelType(), nil
	case "token":
		return p.c.TokenType(), nil
	case "metadata":
		return p.c.MetadataType(), nil
	case "ptr":
		return p.parsePointer()
	case "[":
		return p.parseSequence("]", p.c.ArrayType)
	case "<":
		if p.peek() == "{" {
			p.next()
			fields, err := p.parseFields("}")
			if err != nil {
				return native.TypeRef{}, err
			}
			if err := p.expect(">"); err != nil {
				return native.TypeRef{}, err
			}
			return p.c.StructType(fields, true), nil
		}
		return p.parseSequence(">", p.c.VectorType)
	case "{":
		fields, err := p.parseFields("}")
		if err != nil {
			return native.TypeRef{}, err
		}
		return p.c.StructType(fields, false), nil
	}
	if strings.HasPrefix(tok, "i") {
		w, err := p.number(tok[1:])
		if err != nil {
			return native.TypeRef{}, err
		}
		if w == 0 || w > maxIntWidth {
			return native.TypeRef{}, p.errorf("integer width %d out of range", w)
		}
		return p.c.IntType(w), nil
	}
	return native.TypeRef{}, p.errorf("unknown type %q", tok)
}

func (p *typeParser) parsePointer() (native.TypeRef, error) {
	if p.peek() != "addrspace" {
		return p.c.PointerType(0), nil
	}
	p.next()
	if err := p.expect("("); err != nil {
		return native.TypeRef{}, err
	}
	as, err := p.number(p.next())
	if err != nil {
		return native.TypeRef{}, err
	}
	if err := p.expect(")"); err != nil {
		return native.TypeRef{}, err
	}
	return p.c.PointerType(as), nil
}

// parseSequence reads "N x elem" followed by the closing token.
func (p *typeParser) parseSequence(closing string, mk func(native.TypeRef, uint32) native.TypeRef) (native.TypeRef, error) {
	n, err := p.number(p.next())
	if err != nil {
		return native.TypeRef{}, err
	}
	if err := p.expect("x"); err != nil {
		return native.TypeRef{}, err
	}
	elem, err := p.parseType()
	if err != nil {
		return native.TypeRef{}, err
	}
	if err := p.expect(closing); err != nil {
		return native.TypeRef{}, err
	}
	return mk(elem, n), nil
}

func (p *typeParser) parseFields(closing string) ([]native.TypeRef, error) {
	var fields []native.TypeRef
	for p.peek() != closing {
		if p.done() {
			return nil, p.errorf("unterminated struct")
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, t)
		if p.peek() == "," {
			p.next()
		}
	}
	p.next()
	return fields, nil
}

func (p *typeParser) number(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, p.errorf("expected a number, got %q", s)
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, p.errorf("%d overflows uint32: %v", n, err)
	}
	return v, nil
}
