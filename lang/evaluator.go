package lang

import (
	"fmt"

	"github.com/sergev/psharp/diag"
	"github.com/sergev/psharp/parser"
)

// Evaluator walks syntax trees against a global environment.
type Evaluator struct {
	Global *Env
}

// NewEvaluator constructs an evaluator rooted at global. A nil global gets a
// fresh empty environment.
func NewEvaluator(global *Env) *Evaluator {
	if global == nil {
		global = NewEnv(nil)
	}
	return &Evaluator{Global: global}
}

type binaryOp func(Number, Number) (Number, error)

var binaryOps = map[string]binaryOp{
	"+":   Number.Add,
	"-":   Number.Sub,
	"*":   Number.Mul,
	"/":   Number.Div,
	"^":   Number.Pow,
	"==":  Number.Eq,
	"!=":  Number.Ne,
	"<":   Number.Lt,
	">":   Number.Gt,
	"<=":  Number.Le,
	">=":  Number.Ge,
	"and": Number.And,
	"or":  Number.Or,
}

// Eval evaluates node within ctx. A nil ctx means a fresh program frame over
// the global environment. A nil Number with a nil error is the "no value"
// outcome of a conditional that matched no case and has no else.
func (ev *Evaluator) Eval(node parser.Node, ctx *Context) (*Number, error) {
	if ctx == nil {
		ctx = NewContext(ProgramName, ev.Global)
	}
	switch n := node.(type) {
	case *parser.NumberNode:
		return ev.evalNumber(n, ctx)
	case *parser.UnaryOpNode:
		return ev.evalUnary(n, ctx)
	case *parser.BinaryOpNode:
		return ev.evalBinary(n, ctx)
	case *parser.VarAccessNode:
		return ev.evalAccess(n, ctx)
	case *parser.VarAssignNode:
		return ev.evalAssign(n, ctx)
	case *parser.IfNode:
		return ev.evalIf(n, ctx)
	default:
		panic(fmt.Sprintf("lang: no evaluation rule for %T", node))
	}
}

// value evaluates node and insists on getting a Number back.
func (ev *Evaluator) value(node parser.Node, ctx *Context) (Number, error) {
	val, err := ev.Eval(node, ctx)
	if err != nil {
		return Number{}, err
	}
	if val == nil {
		return Number{}, diag.RuntimeErrorf(ctx, node.Start(), node.End(), "expected a value")
	}
	return *val, nil
}

func (ev *Evaluator) evalNumber(n *parser.NumberNode, ctx *Context) (*Number, error) {
	var num Number
	switch v := n.Token.Value.(type) {
	case int64:
		num = IntNumber(v)
	case float64:
		num = RealNumber(v)
	default:
		panic(fmt.Sprintf("lang: number literal with %T payload", n.Token.Value))
	}
	num = num.In(ctx).At(n.Start(), n.End())
	return &num, nil
}

func (ev *Evaluator) evalUnary(n *parser.UnaryOpNode, ctx *Context) (*Number, error) {
	operand, err := ev.value(n.Operand, ctx)
	if err != nil {
		return nil, err
	}
	result := operand
	switch n.Op.Symbol() {
	case "-":
		result = operand.Negate()
	case "not":
		result = operand.Not()
	}
	result = result.At(n.Start(), n.End())
	return &result, nil
}

func (ev *Evaluator) evalBinary(n *parser.BinaryOpNode, ctx *Context) (*Number, error) {
	left, err := ev.value(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := ev.value(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	op, ok := binaryOps[n.Op.Symbol()]
	if !ok {
		panic(fmt.Sprintf("lang: unknown binary operator %s", n.Op))
	}
	result, err := op(left, right)
	if err != nil {
		return nil, err
	}
	result = result.At(n.Start(), n.End())
	return &result, nil
}

func (ev *Evaluator) evalAccess(n *parser.VarAccessNode, ctx *Context) (*Number, error) {
	name := n.Name.Word()
	val, ok := ctx.Env.Get(name)
	if !ok {
		return nil, diag.RuntimeErrorf(ctx, n.Start(), n.End(), "'%s' is not defined", name)
	}
	val = val.In(ctx).At(n.Start(), n.End())
	return &val, nil
}

func (ev *Evaluator) evalAssign(n *parser.VarAssignNode, ctx *Context) (*Number, error) {
	val, err := ev.value(n.Value, ctx)
	if err != nil {
		return nil, err
	}
	ctx.Env.Define(n.Name.Word(), val)
	return &val, nil
}

func (ev *Evaluator) evalIf(n *parser.IfNode, ctx *Context) (*Number, error) {
	for _, c := range n.Cases {
		cond, err := ev.value(c.Cond, ctx)
		if err != nil {
			return nil, err
		}
		if cond.IsTrue() {
			return ev.Eval(c.Body, ctx)
		}
	}
	if n.Else != nil {
		return ev.Eval(n.Else, ctx)
	}
	return nil, nil
}
