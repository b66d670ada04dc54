package expr

import (
	"fmt"
	"math"

	"grapher/plot/numeric"
)

// Eval evaluates normalized text at x.
//
// Grammar, lowest to highest binding:
//
//	sum     = product { ("+" | "-") product }
//	product = factor { "**" product | ("*" | "/") powered }
//	powered = factor [ "**" product ]
//	factor  = "-" powered | "(" sum ")" | "x" | number
//
// The exponent of "**" is a whole product, so a**b*c is a**(b*c) and powers
// chain to the right. The right operand of "*" and "/" and the operand of
// unary minus keep their attached power: 2*3**2 is 18 and -5**2 is -25.
func Eval(s string, x float64) (float64, error) {
	p := &evaluator{s: s, x: x}
	v, err := p.sum()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.s) {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedChar, p.s[p.pos])
	}
	return v, nil
}

type evaluator struct {
	s   string
	pos int
	x   float64
}

func (p *evaluator) atPower() bool {
	return p.pos+1 < len(p.s) && p.s[p.pos] == '*' && p.s[p.pos+1] == '*'
}

func (p *evaluator) sum() (float64, error) {
	left, err := p.product()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.s) {
		op := p.s[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		right, err := p.product()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *evaluator) product() (float64, error) {
	left, err := p.factor()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.s) {
		if p.atPower() {
			p.pos += 2
			exp, err := p.product()
			if err != nil {
				return 0, err
			}
			left = pow(left, exp)
			continue
		}

		op := p.s[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		right, err := p.powered()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		left /= right
	}
	return left, nil
}

func (p *evaluator) powered() (float64, error) {
	base, err := p.factor()
	if err != nil {
		return 0, err
	}
	if !p.atPower() {
		return base, nil
	}
	p.pos += 2
	exp, err := p.product()
	if err != nil {
		return 0, err
	}
	return pow(base, exp), nil
}

func (p *evaluator) factor() (float64, error) {
	if p.pos >= len(p.s) {
		return 0, ErrUnexpectedEnd
	}

	switch p.s[p.pos] {
	case '-':
		p.pos++
		v, err := p.powered()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case '(':
		p.pos++
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		if p.pos >= len(p.s) || p.s[p.pos] != ')' {
			return 0, ErrMissingParen
		}
		p.pos++
		return v, nil
	case 'x':
		p.pos++
		return p.x, nil
	}

	return p.number()
}

func (p *evaluator) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.s) && (isDigit(p.s[p.pos]) || p.s[p.pos] == '.') {
		p.pos++
	}
	lit := p.s[start:p.pos]
	if lit == "" {
		return 0, ErrExpectedOperand
	}
	n := numeric.ParseFloat(lit)
	if math.IsNaN(n) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, lit)
	}
	return n, nil
}

// pow is math.Pow except that a base of ±1 with an infinite exponent is NaN.
func pow(base, exp float64) float64 {
	if math.IsInf(exp, 0) && (base == 1 || base == -1) {
		return math.NaN()
	}
	return math.Pow(base, exp)
}
