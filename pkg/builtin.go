package cheer

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// libc holds the C library functions the runtime helpers call into.
type libc struct {
	printf *ir.Func
}

func declareLibc(mod *ir.Module) *libc {
	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	return &libc{printf: printf}
}

type runtimeHelper struct {
	name  string
	build func(mod *ir.Module, c *libc) *ir.Func
}

var runtimeHelpers = []runtimeHelper{
	{"print", buildPrint},
}

// defineRuntime adds every runtime helper to the module and registers it in the
// builder's value table under its name.
func defineRuntime(b *LLVMIRBuilder) {
	c := declareLibc(b.mod)

	for _, h := range runtimeHelpers {
		f := h.build(b.mod, c)
		f.SetName(h.name)
		b.values.Set(h.name, f)
	}
}

// buildPrint writes an i64 followed by a newline.
func buildPrint(mod *ir.Module, c *libc) *ir.Func {
	format := constant.NewCharArrayFromString("%ld\n\x00")
	global := mod.NewGlobalDef(".print_fmt", format)
	global.Immutable = true

	idx := constant.NewInt(types.I64, 0)
	addr := constant.NewGetElementPtr(format.Typ, global, idx, idx)

	f := mod.NewFunc("", types.Void, ir.NewParam("v", types.I64))
	entry := f.NewBlock("")
	entry.NewCall(c.printf, addr, f.Params[0])
	entry.NewRet(nil)

	return f
}
