package cheer

import (
	"fmt"
	"strconv"
)

// TypeChecker resolves the type of every node of a tree and records the
// resolved kind on the node itself. A failure is reported once, where it
// originates; the TypeError kind it leaves behind is accepted silently by
// every enclosing expression.
type TypeChecker struct {
	errors []CompileError
}

func NewTypeChecker() *TypeChecker {
	return &TypeChecker{}
}

// Check annotates root and returns a *TypeErrors when at least one
// diagnostic was raised.
func (c *TypeChecker) Check(root Expr) error {
	c.resolve(root)

	if len(c.errors) == 0 {
		return nil
	}

	return &TypeErrors{Errors: c.errors}
}

func (c *TypeChecker) resolve(expr Expr) TypeKind {
	switch e := expr.(type) {
	case *LiteralExpr:
		e.ResolvedType = c.literal(e)
		return e.ResolvedType
	case *UnaryExpr:
		e.ResolvedType = c.unary(e)
		return e.ResolvedType
	case *BinaryExpr:
		e.ResolvedType = c.binary(e)
		return e.ResolvedType
	case *GroupingExpr:
		e.ResolvedType = c.resolve(e.Operand)
		return e.ResolvedType
	case *IfExpr:
		e.ResolvedType = c.ifExpr(e)
		return e.ResolvedType
	}

	panic(fmt.Sprintf("unexpected expression %T", expr))
}

func (c *TypeChecker) literal(e *LiteralExpr) TypeKind {
	switch e.Typ {
	case LiteralNumber:
		if _, err := strconv.ParseInt(e.Value, 10, 64); err != nil {
			c.addError(&LiteralOverflowError{Loc: locationOf(e), Value: e.Value})
			return TypeError
		}

		return TypeInt
	}

	panic(fmt.Sprintf("unexpected literal type %d", e.Typ))
}

func (c *TypeChecker) unary(e *UnaryExpr) TypeKind {
	t := c.resolve(e.Operand)
	switch t {
	case TypeError:
		// Error already logged by the operand
		return TypeError
	case TypeInt:
		return TypeInt
	}

	c.addError(&UndefinedUnitaryError{
		Loc:  locationOf(e),
		Type: t,
		Op:   e.Operation,
	})

	return TypeError
}

func (c *TypeChecker) binary(e *BinaryExpr) TypeKind {
	t1 := c.resolve(e.Op1)
	t2 := c.resolve(e.Op2)

	if t1 == TypeError || t2 == TypeError {
		// Error already logged by the operands
		return TypeError
	}

	if e.Operation.isEquality() {
		if t1 != t2 {
			c.addError(&IncompatibleTypesError{
				Loc:   locationOf(e),
				Op:    e.Operation,
				Type1: t1,
				Type2: t2,
			})

			return TypeError
		}

		return TypeBool
	}

	if t1 != TypeInt || t2 != TypeInt {
		c.addError(&UndefinedOperationError{
			Loc:   locationOf(e),
			Op:    e.Operation,
			Type1: t1,
			Type2: t2,
		})

		return TypeError
	}

	if e.Operation.isRelational() {
		return TypeBool
	}

	return TypeInt
}

// The condition only needs to be well typed: int and bool are both accepted
// and any non-zero value selects the then branch.
func (c *TypeChecker) ifExpr(e *IfExpr) TypeKind {
	c.resolve(e.Cond)

	then := c.resolve(e.Then)
	if e.Else == nil {
		return then
	}

	els := c.resolve(e.Else)
	if then == TypeError || els == TypeError {
		return TypeError
	}

	if then != els {
		c.addError(&BranchMismatchError{
			Loc:  locationOf(e),
			Then: then,
			Else: els,
		})

		return TypeError
	}

	return then
}

func (c *TypeChecker) addError(err CompileError) {
	c.errors = append(c.errors, err)
}

type UndefinedUnitaryError struct {
	Loc  *Location
	Type TypeKind
	Op   UnaryOp
}

func (e UndefinedUnitaryError) String() string {
	return fmt.Sprintf("%s undefined operation: '%s' is not defined for '%s'", e.Loc, e.Op, e.Type)
}

func (e UndefinedUnitaryError) Error() string {
	return e.String()
}

type UndefinedOperationError struct {
	Loc   *Location
	Op    BinaryOp
	Type1 TypeKind
	Type2 TypeKind
}

func (e UndefinedOperationError) String() string {
	return fmt.Sprintf("%s undefined operation: '%s' %s '%s'", e.Loc, e.Type1, e.Op, e.Type2)
}

func (e UndefinedOperationError) Error() string {
	return e.String()
}

type IncompatibleTypesError struct {
	Loc   *Location
	Op    BinaryOp
	Type1 TypeKind
	Type2 TypeKind
}

func (e IncompatibleTypesError) String() string {
	return fmt.Sprintf("%s incompatible types: '%s' and '%s' in '%s'", e.Loc, e.Type1, e.Type2, e.Op)
}

func (e IncompatibleTypesError) Error() string {
	return e.String()
}

type BranchMismatchError struct {
	Loc  *Location
	Then TypeKind
	Else TypeKind
}

func (e BranchMismatchError) String() string {
	return fmt.Sprintf("%s then branch returns '%s', else returns '%s'", e.Loc, e.Then, e.Else)
}

func (e BranchMismatchError) Error() string {
	return e.String()
}

type LiteralOverflowError struct {
	Loc   *Location
	Value string
}

func (e LiteralOverflowError) String() string {
	return fmt.Sprintf("%s integer literal %s overflows a 64-bit integer", e.Loc, e.Value)
}

func (e LiteralOverflowError) Error() string {
	return e.String()
}
