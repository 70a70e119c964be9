package numeric

import (
	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// value is either an integer or a decimal; arithmetic promotes to
// decimal the moment either operand is one (§4.6's type rules), and
// division and duration combination always produce a decimal.
type value struct {
	isInt bool
	i     int64
	f     float64
}

func intVal(i int64) value     { return value{isInt: true, i: i, f: float64(i)} }
func floatVal(f float64) value { return value{f: f} }

func (v value) toFloat() float64 {
	if v.isInt {
		return float64(v.i)
	}
	return v.f
}

func negate(v value) value {
	if v.isInt {
		return intVal(-v.i)
	}
	return floatVal(-v.f)
}

// Evaluate runs the Pratt parser over the quoteless span and returns
// its single decimal result.
func Evaluate(span []byte, base qjerr.Pos) (float64, *qjerr.Diagnostic) {
	ev := &evaluator{tz: New(span, base)}
	if err := ev.advance(); err != nil {
		return 0, err
	}
	v, err := ev.expression(0)
	if err != nil {
		return 0, err
	}
	if ev.cur.Tag != token.EndOfInput {
		if ev.cur.Tag == token.CloseParen {
			return 0, qjerr.New("unopened parenthesis", ev.cur.Pos)
		}
		return 0, qjerr.New("invalid numeric expression", ev.cur.Pos)
	}
	return v.toFloat(), nil
}

type evaluator struct {
	tz  *Tokenizer
	cur Token
}

func (ev *evaluator) advance() *qjerr.Diagnostic {
	tok, err := ev.tz.Next()
	ev.cur = tok
	return err
}

// infixPrec returns an operator tag's binding power, or 0 for tags
// with no infix role — which keeps the main loop's `prec > rbp` test
// correct without a separate "has a led" check, since every genuine
// infix tag below binds at 1, 2, or 4.
func infixPrec(t token.Tag) int {
	switch t {
	case token.Plus, token.Minus, token.Or, token.Xor:
		return 1
	case token.Multiplication, token.Division, token.Modulo, token.And:
		return 2
	case token.Weeks, token.Days, token.Hours, token.Minutes, token.Seconds:
		return 4
	default:
		return 0
	}
}

func (ev *evaluator) expression(rbp int) (value, *qjerr.Diagnostic) {
	tok := ev.cur
	if err := ev.advance(); err != nil {
		return value{}, err
	}
	left, err := ev.nud(tok)
	if err != nil {
		return value{}, err
	}
	for infixPrec(ev.cur.Tag) > rbp {
		opTok := ev.cur
		if err := ev.advance(); err != nil {
			return value{}, err
		}
		left, err = ev.led(opTok, left)
		if err != nil {
			return value{}, err
		}
	}
	return left, nil
}

func (ev *evaluator) nud(tok Token) (value, *qjerr.Diagnostic) {
	switch tok.Tag {
	case token.IntegerVal:
		return intVal(int64(tok.IntVal)), nil
	case token.DecimalVal:
		return floatVal(tok.FloatVal), nil
	case token.Plus:
		return ev.expression(1)
	case token.Minus:
		v, err := ev.expression(1)
		if err != nil {
			return value{}, err
		}
		return negate(v), nil
	case token.Inverse:
		v, err := ev.expression(1)
		if err != nil {
			return value{}, err
		}
		if !v.isInt {
			return value{}, qjerr.New("operand must be integer", tok.Pos)
		}
		return intVal(^v.i), nil
	case token.OpenParen:
		v, err := ev.expression(0)
		if err != nil {
			return value{}, err
		}
		if ev.cur.Tag != token.CloseParen {
			return value{}, qjerr.New("unclosed parenthesis", tok.Pos)
		}
		if err := ev.advance(); err != nil {
			return value{}, err
		}
		return v, nil
	case token.CloseParen:
		return value{}, qjerr.New("unopened parenthesis", tok.Pos)
	default:
		return value{}, qjerr.New("invalid numeric expression", tok.Pos)
	}
}

func (ev *evaluator) led(opTok Token, left value) (value, *qjerr.Diagnostic) {
	switch opTok.Tag {
	case token.Plus:
		right, err := ev.expression(1)
		if err != nil {
			return value{}, err
		}
		return arith(left, right, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }), nil
	case token.Minus:
		right, err := ev.expression(1)
		if err != nil {
			return value{}, err
		}
		return arith(left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }), nil
	case token.Multiplication:
		right, err := ev.expression(2)
		if err != nil {
			return value{}, err
		}
		return arith(left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }), nil
	case token.Division:
		right, err := ev.expression(2)
		if err != nil {
			return value{}, err
		}
		if right.toFloat() == 0 {
			return value{}, qjerr.New("division by zero", opTok.Pos)
		}
		return floatVal(left.toFloat() / right.toFloat()), nil
	case token.Modulo:
		right, err := ev.expression(2)
		if err != nil {
			return value{}, err
		}
		if !left.isInt || !right.isInt {
			return value{}, qjerr.New("operand must be integer", opTok.Pos)
		}
		if right.i == 0 {
			return value{}, qjerr.New("division by zero", opTok.Pos)
		}
		return intVal(left.i % right.i), nil
	case token.And:
		right, err := ev.expression(2)
		if err != nil {
			return value{}, err
		}
		if !left.isInt || !right.isInt {
			return value{}, qjerr.New("operand must be integer", opTok.Pos)
		}
		return intVal(left.i & right.i), nil
	case token.Or:
		right, err := ev.expression(1)
		if err != nil {
			return value{}, err
		}
		if !left.isInt || !right.isInt {
			return value{}, qjerr.New("operand must be integer", opTok.Pos)
		}
		return intVal(left.i | right.i), nil
	case token.Xor:
		right, err := ev.expression(1)
		if err != nil {
			return value{}, err
		}
		if !left.isInt || !right.isInt {
			return value{}, qjerr.New("operand must be integer", opTok.Pos)
		}
		return intVal(left.i ^ right.i), nil
	case token.Weeks:
		return ev.ledDuration(604800, left)
	case token.Days:
		return ev.ledDuration(86400, left)
	case token.Hours:
		return ev.ledDuration(3600, left)
	case token.Minutes:
		return ev.ledDuration(60, left)
	case token.Seconds:
		return ev.ledDuration(1, left)
	default:
		return value{}, qjerr.New("invalid numeric expression", opTok.Pos)
	}
}

// ledDuration multiplies left by its unit factor and, if another
// number directly follows (e.g. the "30m15s" after "2h"), folds that
// chain in by addition — the recursive expression(3) call binds only
// to further duration units (prec 4), not to +/- or the other binary
// operators, so "1h + 5" still adds 5 to the hour value at the top
// level instead of absorbing it into the duration chain.
func (ev *evaluator) ledDuration(factor float64, left value) (value, *qjerr.Diagnostic) {
	result := left.toFloat() * factor
	if ev.cur.Tag == token.IntegerVal || ev.cur.Tag == token.DecimalVal {
		next, err := ev.expression(3)
		if err != nil {
			return value{}, err
		}
		result += next.toFloat()
	}
	return floatVal(result), nil
}

func arith(a, b value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) value {
	if a.isInt && b.isInt {
		return intVal(intOp(a.i, b.i))
	}
	return floatVal(floatOp(a.toFloat(), b.toFloat()))
}
