package cheer

// Expr is one of *LiteralExpr, *UnaryExpr, *BinaryExpr, *GroupingExpr or
// *IfExpr. The set is closed; every pass switches over all of them.
type Expr interface {
	Type() TypeKind
	exprNode()
}

type TypeKind int

const (
	TypeUnset TypeKind = iota
	TypeInt
	TypeBool
	// TypeError marks a subtree whose failure has already been reported.
	TypeError
)

func (t TypeKind) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeError:
		return "~error"
	default:
		return "~unset"
	}
}

type LiteralType int

const (
	LiteralNumber LiteralType = iota
)

type LiteralExpr struct {
	Tok          *Token
	Typ          LiteralType
	Value        string
	ResolvedType TypeKind
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
)

type UnaryExpr struct {
	Tok          *Token
	Operation    UnaryOp
	Operand      Expr
	ResolvedType TypeKind
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryGreater        BinaryOp = ">"
	BinaryGreaterEqual   BinaryOp = ">="
	BinaryLess           BinaryOp = "<"
	BinaryLessEqual      BinaryOp = "<="
	BinaryEqual          BinaryOp = "=="
	BinaryNotEqual       BinaryOp = "!="
)

func (op BinaryOp) isRelational() bool {
	switch op {
	case BinaryGreater, BinaryGreaterEqual, BinaryLess, BinaryLessEqual:
		return true
	}

	return false
}

func (op BinaryOp) isEquality() bool {
	return op == BinaryEqual || op == BinaryNotEqual
}

type BinaryExpr struct {
	Tok          *Token
	Operation    BinaryOp
	Op1          Expr
	Op2          Expr
	ResolvedType TypeKind
}

// GroupingExpr is a parenthesised expression. It has no semantics of its own.
type GroupingExpr struct {
	Tok          *Token
	Operand      Expr
	ResolvedType TypeKind
}

type IfExpr struct {
	Tok          *Token
	Cond         Expr
	Then         Expr
	Else         Expr // nil without an else branch
	ResolvedType TypeKind
}

func (e *LiteralExpr) Type() TypeKind  { return e.ResolvedType }
func (e *UnaryExpr) Type() TypeKind    { return e.ResolvedType }
func (e *BinaryExpr) Type() TypeKind   { return e.ResolvedType }
func (e *GroupingExpr) Type() TypeKind { return e.ResolvedType }
func (e *IfExpr) Type() TypeKind       { return e.ResolvedType }

func (*LiteralExpr) exprNode()  {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*GroupingExpr) exprNode() {}
func (*IfExpr) exprNode()       {}

// locationOf returns the source position of the token that introduced e.
func locationOf(e Expr) *Location {
	var tok *Token
	switch e := e.(type) {
	case *LiteralExpr:
		tok = e.Tok
	case *UnaryExpr:
		tok = e.Tok
	case *BinaryExpr:
		tok = e.Tok
	case *GroupingExpr:
		tok = e.Tok
	case *IfExpr:
		tok = e.Tok
	}

	if tok == nil {
		return nil
	}

	return tok.Loc
}
