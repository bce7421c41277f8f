package parser

import (
	"fmt"
	"strings"

	"github.com/sergev/psharp/source"
)

// Node is an expression in the syntax tree. The set of implementations is
// closed; evaluators switch over it exhaustively.
type Node interface {
	Start() source.Position
	End() source.Position
	String() string
	node()
}

// NumberNode is an integer or float literal.
type NumberNode struct {
	Token Token
}

func (n *NumberNode) Start() source.Position { return n.Token.Start }
func (n *NumberNode) End() source.Position   { return n.Token.End }
func (n *NumberNode) String() string         { return n.Token.String() }
func (*NumberNode) node()                    {}

// UnaryOpNode applies a prefix operator (+, - or not) to its operand.
type UnaryOpNode struct {
	Op      Token
	Operand Node
}

func (n *UnaryOpNode) Start() source.Position { return n.Op.Start }
func (n *UnaryOpNode) End() source.Position   { return n.Operand.End() }
func (n *UnaryOpNode) String() string {
	return fmt.Sprintf("(%s, %s)", n.Op, n.Operand)
}
func (*UnaryOpNode) node() {}

// BinaryOpNode represents infix operator application.
type BinaryOpNode struct {
	Left  Node
	Op    Token
	Right Node
}

func (n *BinaryOpNode) Start() source.Position { return n.Left.Start() }
func (n *BinaryOpNode) End() source.Position   { return n.Right.End() }
func (n *BinaryOpNode) String() string {
	return fmt.Sprintf("(%s, %s, %s)", n.Left, n.Op, n.Right)
}
func (*BinaryOpNode) node() {}

// VarAccessNode reads a variable.
type VarAccessNode struct {
	Name Token
}

func (n *VarAccessNode) Start() source.Position { return n.Name.Start }
func (n *VarAccessNode) End() source.Position   { return n.Name.End }
func (n *VarAccessNode) String() string         { return n.Name.Word() }
func (*VarAccessNode) node()                    {}

// VarAssignNode binds the value of an expression to a name.
type VarAssignNode struct {
	Name  Token
	Value Node
}

func (n *VarAssignNode) Start() source.Position { return n.Name.Start }
func (n *VarAssignNode) End() source.Position   { return n.Value.End() }
func (n *VarAssignNode) String() string {
	return fmt.Sprintf("(let %s = %s)", n.Name.Word(), n.Value)
}
func (*VarAssignNode) node() {}

// IfCase is one condition/body pair of a conditional.
type IfCase struct {
	Cond Node
	Body Node
}

// IfNode picks the body of the first case whose condition is true,
// falling back to Else when present.
type IfNode struct {
	Cases []IfCase
	Else  Node // may be nil
}

func (n *IfNode) Start() source.Position { return n.Cases[0].Cond.Start() }
func (n *IfNode) End() source.Position {
	if n.Else != nil {
		return n.Else.End()
	}
	return n.Cases[len(n.Cases)-1].Body.End()
}
func (n *IfNode) String() string {
	var b strings.Builder
	for i, c := range n.Cases {
		if i == 0 {
			b.WriteString("(if ")
		} else {
			b.WriteString(" elif ")
		}
		fmt.Fprintf(&b, "%s then %s", c.Cond, c.Body)
	}
	if n.Else != nil {
		fmt.Fprintf(&b, " else %s", n.Else)
	}
	b.WriteString(")")
	return b.String()
}
func (*IfNode) node() {}
