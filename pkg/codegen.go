package cheer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const asmPreamble = `	.text
	.globl	main
	.type	main, @function
main:
	endbr64
`

const asmPostamble = `	popq %rax
	ret
	.size	main, .-main
	.ident	"cheer"
	.section	.note.GNU-stack,"",@progbits
	.section	.note.gnu.property,"a"
	.align 8
	.long	1f - 0f
	.long	4f - 1f
	.long	5
0:
	.string	"GNU"
1:
	.align 8
	.long	0xc0000002
	.long	3f - 2f
2:
	.long	0x3
3:
	.align 8
4:
`

var arithmeticInstructions = map[BinaryOp]string{
	BinaryAddition:       "addq",
	BinarySubtraction:    "subq",
	BinaryMultiplication: "imulq",
}

var jumpInstructions = map[BinaryOp]string{
	BinaryGreater:      "jg",
	BinaryGreaterEqual: "jge",
	BinaryLess:         "jl",
	BinaryLessEqual:    "jle",
	BinaryEqual:        "je",
	BinaryNotEqual:     "jne",
}

// CodeGenerator emits x86-64 assembly (AT&T syntax) that evaluates a checked
// tree on the machine stack: the code of every node pushes exactly one value.
// main returns the value left by the root.
type CodeGenerator struct {
	out     strings.Builder
	labelID int
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate expects a tree that passed type checking.
func (g *CodeGenerator) Generate(root Expr) string {
	g.out.Reset()
	g.labelID = 0

	g.out.WriteString(asmPreamble)
	g.expr(root)
	g.out.WriteString(asmPostamble)

	return g.out.String()
}

func (g *CodeGenerator) expr(expr Expr) {
	switch e := expr.(type) {
	case *LiteralExpr:
		g.literal(e)
	case *UnaryExpr:
		g.unary(e)
	case *BinaryExpr:
		g.binary(e)
	case *GroupingExpr:
		g.expr(e.Operand)
	case *IfExpr:
		g.ifExpr(e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (g *CodeGenerator) literal(e *LiteralExpr) {
	v, err := strconv.ParseInt(e.Value, 10, 64)
	if err != nil {
		// The type checker rejects literals out of range
		panic(err)
	}

	if v < math.MinInt32 || v > math.MaxInt32 {
		g.emit("movabsq $%d, %%rax", v)
		g.emit("pushq %%rax")
		return
	}

	g.emit("pushq $%d", v)
}

func (g *CodeGenerator) unary(e *UnaryExpr) {
	g.expr(e.Operand)

	switch e.Operation {
	case UnaryNegative:
		g.emit("popq %%rax")
		g.emit("imulq $-1, %%rax")
		g.emit("pushq %%rax")
	default:
		panic("unexpected unary op: " + e.Operation)
	}
}

func (g *CodeGenerator) binary(e *BinaryExpr) {
	g.expr(e.Op1)
	g.expr(e.Op2)

	// The right operand was pushed last
	g.emit("popq %%rdx")
	g.emit("popq %%rax")

	if ins, ok := arithmeticInstructions[e.Operation]; ok {
		g.emit("%s %%rdx, %%rax", ins)
		g.emit("pushq %%rax")
		return
	}

	jump, ok := jumpInstructions[e.Operation]
	if !ok {
		panic("unexpected binary op: " + e.Operation)
	}

	id := g.nextLabel()
	g.emit("cmpq %%rdx, %%rax")
	g.emit("%s CMP_TRUE%d", jump, id)
	g.label("CMP_FALSE%d", id)
	g.emit("pushq $0")
	g.emit("jmp CMP_DONE%d", id)
	g.label("CMP_TRUE%d", id)
	g.emit("pushq $1")
	g.label("CMP_DONE%d", id)
}

// An if without an else branch evaluates to 0 when its condition is false.
func (g *CodeGenerator) ifExpr(e *IfExpr) {
	id := g.nextLabel()

	g.expr(e.Cond)
	g.emit("popq %%rax")
	g.emit("cmpq $0, %%rax")
	g.emit("je IF_ELSE%d", id)

	g.expr(e.Then)
	g.emit("jmp IF_DONE%d", id)

	g.label("IF_ELSE%d", id)
	if e.Else != nil {
		g.expr(e.Else)
	} else {
		g.emit("pushq $0")
	}

	g.label("IF_DONE%d", id)
}

// nextLabel hands out ids shared by comparison and if labels.
func (g *CodeGenerator) nextLabel() int {
	id := g.labelID
	g.labelID++
	return id
}

func (g *CodeGenerator) emit(format string, args ...interface{}) {
	g.out.WriteByte('\t')
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteByte('\n')
}

func (g *CodeGenerator) label(format string, args ...interface{}) {
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteString(":\n")
}

// Assembly is the text of a program for the assembly target.
type Assembly string

func (a Assembly) String() string {
	return string(a)
}

// AsmGenerator runs a CodeGenerator behind the IRGenerator interface.
type AsmGenerator struct {
	root Expr
}

func NewAsmGenerator(root Expr) *AsmGenerator {
	return &AsmGenerator{root: root}
}

func (g *AsmGenerator) Do() IR {
	return Assembly(NewCodeGenerator().Generate(g.root))
}
