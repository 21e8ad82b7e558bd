package cheer

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueLookup(t *testing.T) {
	vals := NewValueLookup()

	val1 := constant.NewInt(types.I64, 1)
	val2 := constant.NewInt(types.I64, 2)

	vals.Set("id1", val1)
	vals.Set("id2", val2)

	got, ok := vals.Get("id1")
	assert.True(t, ok)
	assert.Equal(t, val1, got)

	got, ok = vals.Get("id2")
	assert.True(t, ok)
	assert.Equal(t, val2, got)

	_, ok = vals.Get("id3")
	assert.False(t, ok)
}

func lowerLLVM(t *testing.T, src string, printResult bool) (*ir.Module, *ir.Func) {
	t.Helper()

	root, errs := check(t, src)
	require.Empty(t, errs, src)

	mod, ok := NewLLVMGenerator(root).PrintResult(printResult).Do().(*ir.Module)
	require.True(t, ok)

	for _, f := range mod.Funcs {
		if f.Name() == "main" {
			return mod, f
		}
	}

	require.FailNow(t, "no main function", src)
	return nil, nil
}

func TestLLVMGenerator(t *testing.T) {
	cases := []struct {
		data   string
		expect []string
	}{
		{"1 + 2 * 3", []string{"define i32 @main()", "mul i64 2, 3", "add i64 1, %", "trunc i64", "ret i32"}},
		{"10 - 4", []string{"sub i64 10, 4"}},
		{"-7", []string{"mul i64 7, -1"}},
		{"5 < 6", []string{"icmp slt i64 5, 6", "zext i1"}},
		{"5 <= 6", []string{"icmp sle i64 5, 6"}},
		{"5 > 6", []string{"icmp sgt i64 5, 6"}},
		{"5 >= 6", []string{"icmp sge i64 5, 6"}},
		{"5 == 6", []string{"icmp eq i64 5, 6"}},
		{"5 != 6", []string{"icmp ne i64 5, 6"}},
		{"if 2 > 1 { 1 } else { 0 }", []string{"br i1", "if.then.0", "if.else.0", "if.done.0", "phi i64"}},
	}

	for _, c := range cases {
		mod, _ := lowerLLVM(t, c.data, false)

		out := mod.String()
		for _, s := range c.expect {
			assert.Contains(t, out, s, c.data)
		}
		assert.NotContains(t, out, "printf", c.data)
	}
}

func TestLLVMGeneratorIf(t *testing.T) {
	_, main := lowerLLVM(t, "if 2 > 1 { 1 }", false)
	require.Len(t, main.Blocks, 4)

	then, els, done := main.Blocks[1], main.Blocks[2], main.Blocks[3]
	phi, ok := done.Insts[0].(*ir.InstPhi)
	require.True(t, ok)
	require.Len(t, phi.Incs, 2)

	assert.Same(t, then, phi.Incs[0].Pred)
	assert.Same(t, els, phi.Incs[1].Pred)
	assert.Equal(t, constant.NewInt(types.I64, 0), phi.Incs[1].X)
}

func TestLLVMGeneratorNestedIf(t *testing.T) {
	_, main := lowerLLVM(t, "if 1 { if 2 { 3 } else { 4 } } else { 5 }", false)

	// entry, the outer then/else/done and the inner then/else/done
	require.Len(t, main.Blocks, 7)

	outerDone, innerDone := main.Blocks[3], main.Blocks[6]
	phi, ok := outerDone.Insts[0].(*ir.InstPhi)
	require.True(t, ok)

	// The outer then branch ends in the inner join block
	assert.Same(t, innerDone, phi.Incs[0].Pred)
}

func TestLLVMGeneratorPrintResult(t *testing.T) {
	mod, _ := lowerLLVM(t, "40 + 2", true)

	var names []string
	for _, f := range mod.Funcs {
		names = append(names, f.Name())
	}
	assert.ElementsMatch(t, []string{"print", "printf", "main"}, names)

	out := mod.String()
	assert.Contains(t, out, "call void @print(i64")
	assert.Contains(t, out, "declare i32 @printf(")
}
