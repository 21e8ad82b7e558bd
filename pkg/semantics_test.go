package cheer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walk calls fn for every node of the tree, parents first.
func walk(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}

	fn(e)

	switch e := e.(type) {
	case *UnaryExpr:
		walk(e.Operand, fn)
	case *BinaryExpr:
		walk(e.Op1, fn)
		walk(e.Op2, fn)
	case *GroupingExpr:
		walk(e.Operand, fn)
	case *IfExpr:
		walk(e.Cond, fn)
		walk(e.Then, fn)
		walk(e.Else, fn)
	}
}

func check(t *testing.T, src string) (Expr, []CompileError) {
	t.Helper()

	root := mustParse(t, src)
	err := NewTypeChecker().Check(root)
	if err == nil {
		return root, nil
	}

	var typeErrs *TypeErrors
	require.ErrorAs(t, err, &typeErrs, src)
	require.NotEmpty(t, typeErrs.Errors, src)

	return root, typeErrs.Errors
}

func TestTypeChecker(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"1", "1:int"},
		{"1 + 2 * 3", "(+:int 1:int (*:int 2:int 3:int))"},
		{"-(1 - 2)", "(-:int (group:int (-:int 1:int 2:int)))"},
		{"5 < 6", "(<:bool 5:int 6:int)"},
		{"5 == 7", "(==:bool 5:int 7:int)"},
		{"(1 < 2) == (3 >= 4)", "(==:bool (group:bool (<:bool 1:int 2:int)) (group:bool (>=:bool 3:int 4:int)))"},
		{"(1 < 2) != (3 > 4)", "(!=:bool (group:bool (<:bool 1:int 2:int)) (group:bool (>:bool 3:int 4:int)))"},
		{"if 2 > 1 { 1 } else { 0 }", "(if:int (>:bool 2:int 1:int) 1:int 0:int)"},
		{"if 1 { 2 > 3 } else { 4 <= 5 }", "(if:bool 1:int (>:bool 2:int 3:int) (<=:bool 4:int 5:int))"},
		{"if 1 > 2 { 7 }", "(if:int (>:bool 1:int 2:int) 7:int)"},
		{"(if 1 > 2 { 7 } else { 8 }) * 2", "(*:int (group:int (if:int (>:bool 1:int 2:int) 7:int 8:int)) 2:int)"},
		{"9223372036854775807", "9223372036854775807:int"},
	}

	for _, c := range cases {
		root, errs := check(t, c.data)
		assert.Empty(t, errs, c.data)
		assert.Equal(t, c.expect, SprintTyped(root), c.data)
	}
}

func TestTypeCheckerErrors(t *testing.T) {
	cases := []struct {
		data   string
		expect []CompileError
	}{
		{
			"5 < (5 < 5)",
			[]CompileError{
				&UndefinedOperationError{Loc: &Location{1, 3}, Op: BinaryLess, Type1: TypeInt, Type2: TypeBool},
			},
		},
		{
			"5 == (5 < 5)",
			[]CompileError{
				&IncompatibleTypesError{Loc: &Location{1, 3}, Op: BinaryEqual, Type1: TypeInt, Type2: TypeBool},
			},
		},
		{
			"-(1 < 2)",
			[]CompileError{
				&UndefinedUnitaryError{Loc: &Location{1, 1}, Type: TypeBool, Op: UnaryNegative},
			},
		},
		{
			"if 2 > 1 { 1 } else { 0 > 1 }",
			[]CompileError{
				&BranchMismatchError{Loc: &Location{1, 1}, Then: TypeInt, Else: TypeBool},
			},
		},
		{
			"99999999999999999999",
			[]CompileError{
				&LiteralOverflowError{Loc: &Location{1, 1}, Value: "99999999999999999999"},
			},
		},
		// The error spreads upwards without being reported again
		{
			"(1 < 2) + 3 + 4 * 5 - -6",
			[]CompileError{
				&UndefinedOperationError{Loc: &Location{1, 9}, Op: BinaryAddition, Type1: TypeBool, Type2: TypeInt},
			},
		},
		{
			"-((1 < 2) * 2) == 3",
			[]CompileError{
				&UndefinedOperationError{Loc: &Location{1, 11}, Op: BinaryMultiplication, Type1: TypeBool, Type2: TypeInt},
			},
		},
		{
			"if 1 { (1 < 2) + 1 } else { 1 < 2 }",
			[]CompileError{
				&UndefinedOperationError{Loc: &Location{1, 16}, Op: BinaryAddition, Type1: TypeBool, Type2: TypeInt},
			},
		},
		{
			"(if 1 { 2 } else { 3 < 4 }) + 1 == 5",
			[]CompileError{
				&BranchMismatchError{Loc: &Location{1, 2}, Then: TypeInt, Else: TypeBool},
			},
		},
		// Independent subtrees each report their own error
		{
			"((1 < 2) + 1) * ((3 > 4) - 1)",
			[]CompileError{
				&UndefinedOperationError{Loc: &Location{1, 10}, Op: BinaryAddition, Type1: TypeBool, Type2: TypeInt},
				&UndefinedOperationError{Loc: &Location{1, 26}, Op: BinarySubtraction, Type1: TypeBool, Type2: TypeInt},
			},
		},
		{
			"if -(1 > 2) { 1 == (2 < 3) } else { 4 }",
			[]CompileError{
				&UndefinedUnitaryError{Loc: &Location{1, 4}, Type: TypeBool, Op: UnaryNegative},
				&IncompatibleTypesError{Loc: &Location{1, 17}, Op: BinaryEqual, Type1: TypeInt, Type2: TypeBool},
			},
		},
	}

	for _, c := range cases {
		_, errs := check(t, c.data)
		assert.Equal(t, c.expect, errs, c.data)
	}
}

func TestTypeCheckerAnnotatesEveryNode(t *testing.T) {
	sources := []string{
		"(1 + 2) * -3",
		"5 < (5 < 5)",
		"if (1 < 2) + 1 { 1 } else { 1 > 2 }",
		"if 1 { 2 }",
		"-(1 == (2 < 3)) + 4",
	}

	for _, src := range sources {
		root, _ := check(t, src)

		walk(root, func(e Expr) {
			assert.NotEqual(t, TypeUnset, e.Type(), "%s: %s", src, Sprint(e))

			if g, ok := e.(*GroupingExpr); ok {
				assert.Equal(t, g.Operand.Type(), g.Type(), src)
			}
		})
	}
}

func TestTypeCheckerResult(t *testing.T) {
	root := mustParse(t, "1 + 2")
	assert.NoError(t, NewTypeChecker().Check(root))

	root = mustParse(t, "(1 < 2) + 3")
	err := NewTypeChecker().Check(root)
	require.Error(t, err)

	stage, ok := StageOf(err)
	assert.True(t, ok)
	assert.Equal(t, StageType, stage)
	assert.Equal(t, TypeError, root.Type())
	assert.Equal(t, "1:9 undefined operation: 'bool' + 'int'", err.Error())
}

func TestTypeCheckerDeterministic(t *testing.T) {
	src := "if -(1 > 2) { 1 == (2 < 3) } else { (4 < 5) * 6 }"

	first, errs1 := check(t, src)
	second, errs2 := check(t, src)

	assert.Equal(t, errs1, errs2)
	assert.Equal(t, SprintTyped(first), SprintTyped(second))
}
