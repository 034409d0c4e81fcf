package algebra

import (
	"errors"
	"fmt"
	"math/big"
	"unicode"
)

// ParseError describes why a polynomial source text was rejected. Offset is a
// byte offset into the source.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("algebra: offset %d: %s", e.Offset, e.Message)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func scan(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		offsets[i] = off
		off += len(string(r))
	}
	offsets[len(runes)] = off

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			dots := 0
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					dots++
				}
				i++
			}
			text := string(runes[start:i])
			if dots > 1 || text == "." {
				return nil, &ParseError{Offset: offsets[start], Message: fmt.Sprintf("malformed number %q", text)}
			}
			toks = append(toks, token{kind: tokNumber, text: text, pos: offsets[start]})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i]), pos: offsets[start]})
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "^", pos: offsets[i]})
			i += 2
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			toks = append(toks, token{kind: tokOp, text: string(r), pos: offsets[i]})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: offsets[i]})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: offsets[i]})
			i++
		default:
			return nil, &ParseError{Offset: offsets[i], Message: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

// MaxExponent bounds integer exponents accepted by Parse.
const MaxExponent = 1024

type parser struct {
	toks     []token
	pos      int
	variable string
}

// Parse reads a univariate expression such as `x^2 + 2*x + 1`, `(x+1)/(x-1)`
// or `3*y**2 - y/2`. Multiplication must be written explicitly.
func Parse(src string) (Expr, error) {
	toks, err := scan(src)
	if err != nil {
		return Expr{}, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return Expr{}, &ParseError{Offset: 0, Message: "empty expression"}
	}
	e, err := p.parseSum()
	if err != nil {
		return Expr{}, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return Expr{}, &ParseError{Offset: tok.pos, Message: fmt.Sprintf("unexpected %q", tok.text)}
	}
	return e, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isOp(text string) bool {
	tok := p.peek()
	return tok.kind == tokOp && tok.text == text
}

func (p *parser) wrap(tok token, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Offset: tok.pos, Message: err.Error()}
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return Expr{}, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.next()
		right, err := p.parseProduct()
		if err != nil {
			return Expr{}, err
		}
		if op.text == "+" {
			left, err = Add(left, right)
		} else {
			left, err = Sub(left, right)
		}
		if err != nil {
			return Expr{}, p.wrap(op, err)
		}
	}
	return left, nil
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return Expr{}, err
	}
	for p.isOp("*") || p.isOp("/") {
		op := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return Expr{}, err
		}
		if op.text == "*" {
			left, err = Mul(left, right)
		} else {
			left, err = Quo(left, right)
		}
		if err != nil {
			return Expr{}, p.wrap(op, err)
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.isOp("-") || p.isOp("+") {
		op := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return Expr{}, err
		}
		if op.text == "-" {
			return Neg(operand), nil
		}
		return operand, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return Expr{}, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	op := p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return Expr{}, err
	}
	r, ok := exp.Constant()
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return Expr{}, &ParseError{Offset: op.pos, Message: "exponent must be an integer constant"}
	}
	n := r.Num().Int64()
	if n > MaxExponent || n < -MaxExponent {
		return Expr{}, &ParseError{Offset: op.pos, Message: "exponent out of range"}
	}
	out, err := Pow(base, int(n))
	if err != nil {
		return Expr{}, p.wrap(op, err)
	}
	return out, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		r, ok := new(big.Rat).SetString(tok.text)
		if !ok {
			return Expr{}, &ParseError{Offset: tok.pos, Message: fmt.Sprintf("malformed number %q", tok.text)}
		}
		return Const(r), nil
	case tokIdent:
		if p.variable == "" {
			p.variable = tok.text
		} else if p.variable != tok.text {
			return Expr{}, &ParseError{Offset: tok.pos, Message: fmt.Sprintf("only one variable is supported, found %s and %s", p.variable, tok.text)}
		}
		return Var(tok.text), nil
	case tokLParen:
		inner, err := p.parseSum()
		if err != nil {
			return Expr{}, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return Expr{}, &ParseError{Offset: closing.pos, Message: "missing closing parenthesis"}
		}
		return inner, nil
	case tokEOF:
		return Expr{}, &ParseError{Offset: tok.pos, Message: "unexpected end of expression"}
	default:
		return Expr{}, &ParseError{Offset: tok.pos, Message: fmt.Sprintf("unexpected %q", tok.text)}
	}
}
