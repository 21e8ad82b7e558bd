package cheer

import (
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IRGenerator interface {
	Do() IR
}

type IR interface {
	fmt.Stringer
}

var icmpPredicates = map[BinaryOp]enum.IPred{
	BinaryGreater:      enum.IPredSGT,
	BinaryGreaterEqual: enum.IPredSGE,
	BinaryLess:         enum.IPredSLT,
	BinaryLessEqual:    enum.IPredSLE,
	BinaryEqual:        enum.IPredEQ,
	BinaryNotEqual:     enum.IPredNE,
}

// LLVMIRBuilder lowers a checked tree into the body of main. Every value is
// an i64; booleans are 0 or 1 like on the assembly target.
type LLVMIRBuilder struct {
	mod     *ir.Module
	fn      *ir.Func
	block   *ir.Block
	values  *ValueLookup
	blockID int
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	return &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}
}

func (b *LLVMIRBuilder) main(root Expr) {
	b.fn = b.mod.NewFunc("main", types.I32)
	b.block = b.fn.NewBlock("entry")

	v := b.recursiveLoad(root)
	if printFn, ok := b.values.Get("print"); ok {
		b.block.NewCall(printFn, v)
	}

	b.block.NewRet(b.block.NewTrunc(v, types.I32))
}

func (b *LLVMIRBuilder) recursiveLoad(expr Expr) value.Value {
	switch e := expr.(type) {
	case *LiteralExpr:
		return b.loadLiteral(e)
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *UnaryExpr:
		return b.unaryExpression(e)
	case *GroupingExpr:
		return b.recursiveLoad(e.Operand)
	case *IfExpr:
		return b.ifExpression(e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) value.Value {
	v1 := b.recursiveLoad(expr.Op1)
	v2 := b.recursiveLoad(expr.Op2)

	switch expr.Operation {
	case BinaryAddition:
		return b.block.NewAdd(v1, v2)
	case BinarySubtraction:
		return b.block.NewSub(v1, v2)
	case BinaryMultiplication:
		return b.block.NewMul(v1, v2)
	}

	pred, ok := icmpPredicates[expr.Operation]
	if !ok {
		panic("unexpected binary op: " + expr.Operation)
	}

	cmp := b.block.NewICmp(pred, v1, v2)
	return b.block.NewZExt(cmp, types.I64)
}

func (b *LLVMIRBuilder) unaryExpression(expr *UnaryExpr) value.Value {
	v := b.recursiveLoad(expr.Operand)

	switch expr.Operation {
	case UnaryNegative:
		minusOne := constant.NewInt(types.I64, -1)
		return b.block.NewMul(v, minusOne)
	default:
		panic("unexpected unary op: " + expr.Operation)
	}
}

// ifExpression joins both branches with a phi. A missing else branch
// contributes 0.
func (b *LLVMIRBuilder) ifExpression(expr *IfExpr) value.Value {
	id := b.blockID
	b.blockID++

	cond := b.recursiveLoad(expr.Cond)
	truth := b.block.NewICmp(enum.IPredNE, cond, constant.NewInt(types.I64, 0))

	thenBlock := b.fn.NewBlock(fmt.Sprintf("if.then.%d", id))
	elseBlock := b.fn.NewBlock(fmt.Sprintf("if.else.%d", id))
	doneBlock := b.fn.NewBlock(fmt.Sprintf("if.done.%d", id))
	b.block.NewCondBr(truth, thenBlock, elseBlock)

	// Nested ifs move the insertion point, so the phi needs the blocks the
	// branches ended in.
	b.block = thenBlock
	thenVal := b.recursiveLoad(expr.Then)
	thenEnd := b.block
	thenEnd.NewBr(doneBlock)

	b.block = elseBlock
	var elseVal value.Value = constant.NewInt(types.I64, 0)
	if expr.Else != nil {
		elseVal = b.recursiveLoad(expr.Else)
	}
	elseEnd := b.block
	elseEnd.NewBr(doneBlock)

	b.block = doneBlock
	return doneBlock.NewPhi(ir.NewIncoming(thenVal, thenEnd), ir.NewIncoming(elseVal, elseEnd))
}

func (b *LLVMIRBuilder) loadLiteral(expr *LiteralExpr) value.Value {
	switch expr.Typ {
	case LiteralNumber:
		return b.loadLiteralInt(expr)
	default:
		panic(fmt.Sprintf("unexpected literal type %d", expr.Typ))
	}
}

func (b *LLVMIRBuilder) loadLiteralInt(expr *LiteralExpr) value.Value {
	v, err := strconv.ParseInt(expr.Value, 10, 64)
	if err != nil {
		// The type checker rejects literals out of range
		panic(err)
	}

	return constant.NewInt(types.I64, v)
}

type LLVMGenerator struct {
	root        Expr
	printResult bool
}

func NewLLVMGenerator(root Expr) *LLVMGenerator {
	return &LLVMGenerator{
		root: root,
	}
}

// PrintResult makes main print its result on stdout before returning it.
func (g *LLVMGenerator) PrintResult(enable bool) *LLVMGenerator {
	g.printResult = enable
	return g
}

// Do expects a tree that passed type checking.
func (g *LLVMGenerator) Do() IR {
	builder := NewLLVMIRBuilder()
	if g.printResult {
		defineRuntime(builder)
	}

	builder.main(g.root)

	return builder.mod
}
