package querylang

import (
	"fmt"
	"strconv"

	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

// parser implements the recursive-descent grammar of SPEC_FULL.md
// §4.6. It validates identifiers against a caller-supplied variable
// set and records which names are actually referenced, which the
// select driver uses to prune its per-row binding (§4.8).
type parser struct {
	src  string
	lx   *lexer
	vars map[string]struct{}
	used map[string]bool
}

func newParser(src string, vars map[string]struct{}) *parser {
	return &parser{
		src:  src,
		lx:   newLexer(src),
		vars: vars,
		used: make(map[string]bool),
	}
}

func (p *parser) parseErrorf(offset int, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return tabqlerrors.NewQueryParse(offset, p.src, msg)
}

// parse parses a complete expression and requires the entire input be
// consumed.
func (p *parser) parse() (expr, error) {
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.lx.peek(); tok.kind != tokEOF {
		return nil, p.parseErrorf(tok.offset, "unexpected input after expression")
	}
	return e, nil
}

// expression = term , { ("and"|"or") , term } ;
func (p *parser) parseExpression() (expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.lx.peek()
		if tok.kind != tokAnd && tok.kind != tokOr {
			return left, nil
		}
		p.lx.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = logicalExpr{op: tok.kind, l: left, r: right}
	}
}

// term = factor , { binop , factor | membership } ;
func (p *parser) parseTerm() (expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.lx.peek()
		switch tok.kind {
		case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe:
			p.lx.next()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = binaryExpr{op: tok.kind, l: left, r: right}
		case tokIn:
			p.lx.next()
			list, err := p.parseValueList()
			if err != nil {
				return nil, err
			}
			left = membershipExpr{x: left, list: list}
		case tokNot:
			// lookahead for "not in"
			save := *p.lx
			p.lx.next()
			if in := p.lx.peek(); in.kind == tokIn {
				p.lx.next()
				list, err := p.parseValueList()
				if err != nil {
					return nil, err
				}
				left = membershipExpr{negate: true, x: left, list: list}
				continue
			}
			*p.lx = save
			return left, nil
		default:
			return left, nil
		}
	}
}

// factor = literal | variable | call | "(" expression ")" | "not" factor ;
func (p *parser) parseFactor() (expr, error) {
	tok := p.lx.peek()
	switch tok.kind {
	case tokNot:
		p.lx.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return notExpr{x: x}, nil
	case tokLParen:
		p.lx.next()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		close := p.lx.next()
		if close.kind != tokRParen {
			return nil, p.parseErrorf(close.offset, "expected ')'")
		}
		return e, nil
	case tokInt, tokReal, tokString, tokWString:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return lit, nil
	case tokIdent:
		p.lx.next()
		// identifier ( -> function call ; otherwise a variable.
		if peek := p.lx.peek(); peek.kind == tokLParen {
			return p.parseCall(tok)
		}
		if _, ok := p.vars[tok.text]; !ok {
			return nil, p.parseErrorf(tok.offset, "unknown identifier %q", tok.text)
		}
		p.used[tok.text] = true
		return variableExpr{name: tok.text, offset: tok.offset}, nil
	default:
		return nil, p.parseErrorf(tok.offset, "unexpected token")
	}
}

// call = identifier , "(" , [ literal , { "," literal } ] , ")" ;
func (p *parser) parseCall(name token) (expr, error) {
	p.lx.next() // consume '('
	var args []literalExpr
	if peek := p.lx.peek(); peek.kind != tokRParen {
		for {
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			args = append(args, lit)
			if p.lx.peek().kind != tokComma {
				break
			}
			p.lx.next()
		}
	}
	close := p.lx.next()
	if close.kind != tokRParen {
		return nil, p.parseErrorf(close.offset, "expected ')' to close call to %q", name.text)
	}
	return callExpr{name: name.text, args: args, offset: name.offset}, nil
}

// value_list = "(" , literal , { "," literal } , ")" ;
// An empty list is a syntax error.
func (p *parser) parseValueList() ([]literalExpr, error) {
	open := p.lx.next()
	if open.kind != tokLParen {
		return nil, p.parseErrorf(open.offset, "expected '(' to start value list")
	}
	if peek := p.lx.peek(); peek.kind == tokRParen {
		return nil, p.parseErrorf(peek.offset, "value list must not be empty")
	}
	var list []literalExpr
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		list = append(list, lit)
		if p.lx.peek().kind != tokComma {
			break
		}
		p.lx.next()
	}
	close := p.lx.next()
	if close.kind != tokRParen {
		return nil, p.parseErrorf(close.offset, "expected ')' to close value list")
	}
	return list, nil
}

// literal = number | string | wstring ;
func (p *parser) parseLiteral() (literalExpr, error) {
	tok := p.lx.next()
	switch tok.kind {
	case tokInt:
		n, err := strconv.ParseInt(tok.text, 10, 32)
		if err != nil {
			return literalExpr{}, p.parseErrorf(tok.offset, "invalid integer %q", tok.text)
		}
		return literalExpr{value: kind.Value{Kind: kind.Int32, I32: int32(n)}}, nil
	case tokReal:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return literalExpr{}, p.parseErrorf(tok.offset, "invalid real %q", tok.text)
		}
		return literalExpr{value: kind.Value{Kind: kind.Double, F64: f}}, nil
	case tokString:
		return literalExpr{value: kind.Value{Kind: kind.NarrowString, Str: tok.text}}, nil
	case tokWString:
		return literalExpr{value: kind.Value{Kind: kind.WideString, Str: tok.text}}, nil
	default:
		return literalExpr{}, p.parseErrorf(tok.offset, "expected a literal value")
	}
}
