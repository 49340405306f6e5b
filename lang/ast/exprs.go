package ast

import "github.com/ohaddr/vesper/lang/token"

type (
	// NumberExpr is a numeric literal, e.g. 1.5.
	NumberExpr struct {
		Position token.Position
		Value    float64
	}

	// BoolExpr is the literal true or false.
	BoolExpr struct {
		Position token.Position
		Value    bool
	}

	// IdentExpr is a bare identifier used as an expression, e.g. a variable
	// read.
	IdentExpr struct {
		Position token.Position
		Name     string
	}

	// UnaryExpr is a prefix unary expression, e.g. -x or !x.
	UnaryExpr struct {
		Position token.Position
		Op       token.Token
		Right    Expr
	}

	// BinaryExpr is an infix binary expression, e.g. x + y, or a short-circuit
	// logical expression when Op is AND or OR.
	BinaryExpr struct {
		Left     Expr
		Op       token.Token
		Position token.Position
		Right    Expr
	}

	// AssignExpr is an assignment x = e. The parser only ever builds one when
	// the left-hand side was a valid lvalue.
	AssignExpr struct {
		Name     string
		Position token.Position
		Value    Expr
	}

	// CallExpr is a function call, e.g. f(a, b).
	CallExpr struct {
		Callee   Expr
		Position token.Position // position of the opening '('
		Args     []Expr
	}
)

func (n *NumberExpr) Pos() token.Position { return n.Position }
func (*NumberExpr) exprNode()             {}

func (n *BoolExpr) Pos() token.Position { return n.Position }
func (*BoolExpr) exprNode()             {}

func (n *IdentExpr) Pos() token.Position { return n.Position }
func (*IdentExpr) exprNode()             {}

func (n *UnaryExpr) Pos() token.Position { return n.Position }
func (*UnaryExpr) exprNode()             {}

func (n *BinaryExpr) Pos() token.Position { return n.Position }
func (*BinaryExpr) exprNode()             {}

func (n *AssignExpr) Pos() token.Position { return n.Position }
func (*AssignExpr) exprNode()             {}

func (n *CallExpr) Pos() token.Position { return n.Position }
func (*CallExpr) exprNode()             {}
