package lang

import (
	"math"
	"strconv"
	"strings"

	"github.com/sergev/psharp/diag"
	"github.com/sergev/psharp/source"
)

// NumberKind enumerates the representations a Number can take.
type NumberKind int

const (
	KindInt NumberKind = iota
	KindReal
)

// Number is the single runtime value type. It remembers the source span it
// was produced from and the context it was produced in, so errors raised by
// operations on it can be attributed.
type Number struct {
	Kind    NumberKind
	i       int64
	f       float64
	Start   source.Position
	End     source.Position
	Context *Context
}

// IntNumber constructs an integer Number.
func IntNumber(i int64) Number {
	return Number{Kind: KindInt, i: i}
}

// RealNumber constructs a floating-point Number.
func RealNumber(f float64) Number {
	return Number{Kind: KindReal, f: f}
}

func boolNumber(b bool) Number {
	if b {
		return IntNumber(1)
	}
	return IntNumber(0)
}

// Int returns the integer payload, truncating reals.
func (n Number) Int() int64 {
	if n.Kind == KindReal {
		return int64(n.f)
	}
	return n.i
}

// Real returns the value as a float64.
func (n Number) Real() float64 {
	if n.Kind == KindInt {
		return float64(n.i)
	}
	return n.f
}

// At returns n spanning [start, end).
func (n Number) At(start, end source.Position) Number {
	n.Start = start
	n.End = end
	return n
}

// In returns n attributed to ctx.
func (n Number) In(ctx *Context) Number {
	n.Context = ctx
	return n
}

// IsTrue reports whether n counts as true: any nonzero value does.
func (n Number) IsTrue() bool {
	if n.Kind == KindReal {
		return n.f != 0
	}
	return n.i != 0
}

func (n Number) bothInt(o Number) bool {
	return n.Kind == KindInt && o.Kind == KindInt
}

func (n Number) derive(result Number) Number {
	result.Context = n.Context
	return result
}

func (n Number) frame() diag.Frame {
	if n.Context == nil {
		return nil
	}
	return n.Context
}

func (n Number) Add(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(IntNumber(n.i + o.i)), nil
	}
	return n.derive(RealNumber(n.Real() + o.Real())), nil
}

func (n Number) Sub(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(IntNumber(n.i - o.i)), nil
	}
	return n.derive(RealNumber(n.Real() - o.Real())), nil
}

func (n Number) Mul(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(IntNumber(n.i * o.i)), nil
	}
	return n.derive(RealNumber(n.Real() * o.Real())), nil
}

// Div divides n by o. Integer division stays integer only when exact.
func (n Number) Div(o Number) (Number, error) {
	if !o.IsTrue() {
		return Number{}, diag.RuntimeErrorf(n.frame(), o.Start, o.End, "Division by zero")
	}
	if n.bothInt(o) && n.i%o.i == 0 {
		return n.derive(IntNumber(n.i / o.i)), nil
	}
	return n.derive(RealNumber(n.Real() / o.Real())), nil
}

// Pow raises n to the power o. Integers raised to non-negative integers
// stay integers.
func (n Number) Pow(o Number) (Number, error) {
	if n.bothInt(o) && o.i >= 0 {
		return n.derive(IntNumber(ipow(n.i, o.i))), nil
	}
	return n.derive(RealNumber(math.Pow(n.Real(), o.Real()))), nil
}

func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func (n Number) Eq(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(boolNumber(n.i == o.i)), nil
	}
	return n.derive(boolNumber(n.Real() == o.Real())), nil
}

func (n Number) Ne(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(boolNumber(n.i != o.i)), nil
	}
	return n.derive(boolNumber(n.Real() != o.Real())), nil
}

func (n Number) Lt(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(boolNumber(n.i < o.i)), nil
	}
	return n.derive(boolNumber(n.Real() < o.Real())), nil
}

func (n Number) Gt(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(boolNumber(n.i > o.i)), nil
	}
	return n.derive(boolNumber(n.Real() > o.Real())), nil
}

func (n Number) Le(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(boolNumber(n.i <= o.i)), nil
	}
	return n.derive(boolNumber(n.Real() <= o.Real())), nil
}

func (n Number) Ge(o Number) (Number, error) {
	if n.bothInt(o) {
		return n.derive(boolNumber(n.i >= o.i)), nil
	}
	return n.derive(boolNumber(n.Real() >= o.Real())), nil
}

func (n Number) And(o Number) (Number, error) {
	return n.derive(boolNumber(n.IsTrue() && o.IsTrue())), nil
}

func (n Number) Or(o Number) (Number, error) {
	return n.derive(boolNumber(n.IsTrue() || o.IsTrue())), nil
}

// Negate multiplies n by -1.
func (n Number) Negate() Number {
	result, _ := n.Mul(IntNumber(-1))
	return result
}

// Not is logical negation: zero becomes 1, anything else 0.
func (n Number) Not() Number {
	return n.derive(boolNumber(!n.IsTrue()))
}

func (n Number) String() string {
	if n.Kind == KindInt {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
