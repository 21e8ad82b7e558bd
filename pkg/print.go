package cheer

import (
	"io"
	"strings"
)

// Fprint writes e as an s-expression, for example "(+ 1 (group (* 2 3)))".
// When typed is set, every node is suffixed with its resolved type.
func Fprint(w io.Writer, e Expr, typed bool) error {
	p := printer{typed: typed}
	p.expr(e)

	_, err := io.WriteString(w, p.buf.String())
	return err
}

func Sprint(e Expr) string {
	p := printer{}
	p.expr(e)
	return p.buf.String()
}

func SprintTyped(e Expr) string {
	p := printer{typed: true}
	p.expr(e)
	return p.buf.String()
}

type printer struct {
	buf   strings.Builder
	typed bool
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case *LiteralExpr:
		p.head(e.Value, e)
	case *UnaryExpr:
		p.open(string(e.Operation), e)
		p.arg(e.Operand)
		p.buf.WriteByte(')')
	case *BinaryExpr:
		p.open(string(e.Operation), e)
		p.arg(e.Op1)
		p.arg(e.Op2)
		p.buf.WriteByte(')')
	case *GroupingExpr:
		p.open("group", e)
		p.arg(e.Operand)
		p.buf.WriteByte(')')
	case *IfExpr:
		p.open("if", e)
		p.arg(e.Cond)
		p.arg(e.Then)
		if e.Else != nil {
			p.arg(e.Else)
		}
		p.buf.WriteByte(')')
	default:
		p.buf.WriteString("<nil>")
	}
}

func (p *printer) open(name string, e Expr) {
	p.buf.WriteByte('(')
	p.head(name, e)
}

func (p *printer) head(name string, e Expr) {
	p.buf.WriteString(name)
	if p.typed {
		p.buf.WriteByte(':')
		p.buf.WriteString(e.Type().String())
	}
}

func (p *printer) arg(e Expr) {
	p.buf.WriteByte(' ')
	p.expr(e)
}
