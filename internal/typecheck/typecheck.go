// Package typecheck assigns and validates the types of a parsed OSL program
// against a built symbol table.
package typecheck

import (
	"fmt"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/symtab"
	"github.com/openshading/oslc/internal/types"
)

// TypeOf computes the type of an expression, resolving identifiers and
// calls against st, and returns the first type error found (if any). It
// recurses post-order: operands are typed before the operator that combines
// them is checked.
func TypeOf(expr ast.Expr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return ast.TypeInt, nil
	case *ast.FloatLit:
		return ast.TypeFloat, nil
	case *ast.StringLit:
		return ast.TypeString, nil
	case *ast.IdentExpr:
		return identType(e, st)
	case *ast.UnaryExpr:
		return unaryType(e, st)
	case *ast.BinaryExpr:
		return binaryType(e, st)
	case *ast.AssignExpr:
		return assignType(e, st)
	case *ast.CallExpr:
		return callType(e, st)
	case *ast.ConstructorExpr:
		return constructorType(e, st)
	case *ast.AccessExpr:
		return accessType(e, st)
	default:
		d := types.NewError(expr.Span(), fmt.Sprintf("cannot type expression of kind %T", expr))
		return ast.TypeUnknown, &d
	}
}

func identType(e *ast.IdentExpr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	if g, ok := ast.LookupGlobal(e.Name.Name); ok {
		return g.TypeOf(), nil
	}
	if d := st.CheckAccess(e.Name.Span, e.Name.Name); d != nil {
		return ast.TypeUnknown, d
	}
	sym, _ := st.Resolve(e.Name.Span, e.Name.Name)
	switch sym.Kind {
	case symtab.SymVariable:
		return sym.VarType, nil
	case symtab.SymFunction:
		return sym.RetType, nil
	default:
		return ast.TypeUnknown, nil
	}
}

func unaryType(e *ast.UnaryExpr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	operandType, d := TypeOf(e.Operand, st)
	if d != nil {
		return ast.TypeUnknown, d
	}

	switch e.Op {
	case ast.OpNot:
		return ast.TypeInt, nil
	case ast.OpNeg:
		if operandType.IsNumeric() || operandType.IsTriple() {
			return operandType, nil
		}
	case ast.OpBitNot, ast.OpPreInc, ast.OpPreDec, ast.OpPostInc, ast.OpPostDec:
		if operandType == ast.TypeInt {
			return ast.TypeInt, nil
		}
	}

	return ast.TypeUnknown, mismatchedUnary(e.Operand.Span(), operandType)
}

func binaryType(e *ast.BinaryExpr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	lhs, d := TypeOf(e.Left, st)
	if d != nil {
		return ast.TypeUnknown, d
	}
	rhs, d := TypeOf(e.Right, st)
	if d != nil {
		return ast.TypeUnknown, d
	}

	// Ints can use any operator with another int.
	if lhs == ast.TypeInt && rhs == ast.TypeInt {
		return ast.TypeInt, nil
	}

	mismatch := mismatchedBinary(e.Left.Span(), lhs, e.Right.Span(), rhs)

	// Bitwise and modulo operators only apply to a pair of ints.
	if isBitwise(e.Op) || e.Op == ast.OpMod {
		return ast.TypeUnknown, mismatch
	}

	// Logical operators only apply to a pair of ints.
	if e.Op.IsLogical() {
		return ast.TypeUnknown, mismatch
	}

	if e.Op == ast.OpEq || e.Op == ast.OpNe {
		switch {
		case lhs == rhs:
			return ast.TypeInt, nil
		case lhs.IsNumeric() && rhs.IsNumeric():
			return ast.TypeInt, nil
		default:
			return ast.TypeUnknown, mismatch
		}
	}

	// Ordering comparisons only apply between numeric operands.
	if e.Op.IsComparison() {
		if lhs.IsNumeric() && rhs.IsNumeric() {
			return ast.TypeInt, nil
		}
		return ast.TypeUnknown, mismatch
	}

	// Strings may not participate in any remaining (arithmetic) operator.
	if lhs == ast.TypeString || rhs == ast.TypeString {
		return ast.TypeUnknown, mismatch
	}

	if lhs == ast.TypeFloat && rhs == ast.TypeFloat {
		return ast.TypeFloat, nil
	}
	if (lhs == ast.TypeInt && rhs == ast.TypeFloat) || (lhs == ast.TypeFloat && rhs == ast.TypeInt) {
		return ast.TypeFloat, nil
	}

	// Geometric (triple/matrix) arithmetic: same-type operands allow +, -,
	// *, /; a scalar operand mixes in only for * and /.
	if lhs == rhs && (lhs.IsTriple() || lhs == ast.TypeMatrix) {
		return lhs, nil
	}
	if e.Op == ast.OpMul || e.Op == ast.OpDiv {
		switch {
		case (lhs.IsTriple() || lhs == ast.TypeMatrix) && rhs.IsNumeric():
			return lhs, nil
		case (rhs.IsTriple() || rhs == ast.TypeMatrix) && lhs.IsNumeric():
			return rhs, nil
		}
	}

	return ast.TypeUnknown, mismatch
}

// isBitwise reports whether o is a bitwise operator, valid only between ints.
func isBitwise(o ast.Operator) bool {
	switch o {
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		return true
	default:
		return false
	}
}

func assignType(e *ast.AssignExpr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	targetType, d := TypeOf(e.Target, st)
	if d != nil {
		return ast.TypeUnknown, d
	}
	valueType, d := TypeOf(e.Value, st)
	if d != nil {
		return ast.TypeUnknown, d
	}

	if assignable(targetType, valueType) {
		return targetType, nil
	}
	return ast.TypeUnknown, mismatchedAssignment(e.Target.Span(), targetType, e.Value.Span(), valueType)
}

// assignable reports whether a value of type from can be stored into a
// target of type to: an exact match, an int widened to float, or a scalar
// broadcast into a triple.
func assignable(to, from ast.Type) bool {
	if to == from {
		return true
	}
	if to == ast.TypeFloat && from == ast.TypeInt {
		return true
	}
	if to.IsTriple() && (from == ast.TypeInt || from == ast.TypeFloat) {
		return true
	}
	return false
}

func callType(e *ast.CallExpr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	if d := st.CheckAccess(e.Callee.Span, e.Callee.Name); d != nil {
		return ast.TypeUnknown, d
	}
	sym, _ := st.Resolve(e.Callee.Span, e.Callee.Name)
	if sym.Kind != symtab.SymFunction {
		d := types.NewError(e.Callee.Span, fmt.Sprintf("%s is not a function", e.Callee.Name))
		return ast.TypeUnknown, &d
	}

	argTypes := make([]ast.Type, len(e.Args))
	for i, arg := range e.Args {
		t, d := TypeOf(arg, st)
		if d != nil {
			return ast.TypeUnknown, d
		}
		argTypes[i] = t
	}

	for i, want := range sym.ArgTypes {
		if i >= len(argTypes) {
			break
		}
		if !assignable(want, argTypes[i]) {
			return ast.TypeUnknown, mismatchedArgument(e.Args[i].Span(), want, argTypes[i])
		}
	}

	return sym.RetType, nil
}

// constructorType checks a Point/Color/Vector/Normal constructor's 1-, 3-,
// or 4-argument forms: a lone scalar broadcast, three Int/Float coordinate
// arguments, or a leading String "space" argument followed by the three
// coordinates. Other type constructors (matrix, scalar casts, string,
// closure) have no component rules of their own here, so their arguments
// are only typed, not validated.
func constructorType(e *ast.ConstructorExpr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	argTypes := make([]ast.Type, len(e.Args))
	for i, arg := range e.Args {
		t, d := TypeOf(arg, st)
		if d != nil {
			return ast.TypeUnknown, d
		}
		argTypes[i] = t
	}

	if !e.Type.IsTriple() {
		return e.Type, nil
	}

	coordsFrom := 0
	switch len(e.Args) {
	case 1:
		if !argTypes[0].IsNumeric() {
			return ast.TypeUnknown, mismatchedArgument(e.Args[0].Span(), ast.TypeFloat, argTypes[0])
		}
		return e.Type, nil
	case 3:
		coordsFrom = 0
	case 4:
		if argTypes[0] != ast.TypeString {
			return ast.TypeUnknown, mismatchedArgument(e.Args[0].Span(), ast.TypeString, argTypes[0])
		}
		coordsFrom = 1
	default:
		d := types.NewError(e.Sp, fmt.Sprintf("%s constructor expects 1, 3, or 4 arguments, got %d", e.Type, len(e.Args)))
		return ast.TypeUnknown, &d
	}

	for i := coordsFrom; i < len(e.Args); i++ {
		if !argTypes[i].IsNumeric() {
			return ast.TypeUnknown, mismatchedArgument(e.Args[i].Span(), ast.TypeFloat, argTypes[i])
		}
	}
	return e.Type, nil
}

// tripleComponents and matrixComponents bound the legal arguments to bracket
// access: three components (x/y/z or r/g/b) on a triple, sixteen on a
// matrix.
const (
	tripleComponents = 3
	matrixComponents = 16
)

// colorFields and pointFields name the valid dot-access field names per
// base type.
var colorFields = map[string]bool{"r": true, "g": true, "b": true} //nolint:gochecknoglobals
var pointFields = map[string]bool{"x": true, "y": true, "z": true} //nolint:gochecknoglobals

func accessType(e *ast.AccessExpr, st *symtab.SymbolTable) (ast.Type, *types.Diagnostic) {
	baseType, d := TypeOf(e.Base, st)
	if d != nil {
		return ast.TypeUnknown, d
	}

	if e.Component != "" {
		var fields map[string]bool
		switch baseType {
		case ast.TypeColor:
			fields = colorFields
		case ast.TypePoint, ast.TypeVector, ast.TypeNormal:
			fields = pointFields
		default:
			return ast.TypeUnknown, mismatchedUnary(e.Base.Span(), baseType)
		}
		if !fields[e.Component] {
			d := types.NewError(e.Sp, fmt.Sprintf("%s has no field %q", baseType, e.Component))
			return ast.TypeUnknown, &d
		}
		return ast.TypeFloat, nil
	}

	if !baseType.IsTriple() && baseType != ast.TypeMatrix {
		return ast.TypeUnknown, mismatchedUnary(e.Base.Span(), baseType)
	}

	limit := tripleComponents
	if baseType == ast.TypeMatrix {
		limit = matrixComponents
	}
	if _, d := TypeOf(e.Index, st); d != nil {
		return ast.TypeUnknown, d
	}
	lit, ok := e.Index.(*ast.IntLit)
	if !ok {
		d := types.NewError(e.Index.Span(), "Index must be an integer literal")
		return ast.TypeUnknown, &d
	}
	if lit.Value < 0 || lit.Value >= int64(limit) {
		d := types.NewError(e.Index.Span(), fmt.Sprintf("Index %d is out of range for type %s", lit.Value, baseType))
		return ast.TypeUnknown, &d
	}
	return ast.TypeFloat, nil
}

func mismatchedUnary(span types.Span, rhs ast.Type) *types.Diagnostic {
	d := types.NewError(span, "This operation is invalid due to an unsupported type.")
	d.Labels[0].Kind = types.LabelSecondary
	d.Labels[0].Message = "Type " + rhs.String()
	return &d
}

func mismatchedBinary(lhsSpan types.Span, lhs ast.Type, rhsSpan types.Span, rhs ast.Type) *types.Diagnostic {
	d := types.NewError(lhsSpan, "This operation is invalid due to mismatched types.")
	d.Labels[0].Kind = types.LabelSecondary
	d.Labels[0].Message = "Type " + lhs.String()
	d = d.WithSecondary(rhsSpan, "Type "+rhs.String())
	return &d
}

func mismatchedAssignment(lhsSpan types.Span, lhs ast.Type, rhsSpan types.Span, rhs ast.Type) *types.Diagnostic {
	d := types.NewError(rhsSpan, fmt.Sprintf("The type %s cannot be implicitly cast to type %s.", rhs, lhs))
	d.Labels[0].Message = "Type " + rhs.String()
	d = d.WithSecondary(lhsSpan, "Type "+lhs.String())
	return &d
}

func mismatchedArgument(span types.Span, expected, received ast.Type) *types.Diagnostic {
	return &types.Diagnostic{
		Severity: types.SeverityError,
		Message:  "A function argument did not have the correct type.",
		Labels: []types.Label{{
			Kind:    types.LabelPrimary,
			Span:    span,
			Message: fmt.Sprintf("Expected type %s, received type %s", expected, received),
		}},
	}
}

func invalidCondition(span types.Span, condType ast.Type) *types.Diagnostic {
	return &types.Diagnostic{
		Severity: types.SeverityError,
		Message:  "Conditional expressions must evaluate to type Int.",
		Labels: []types.Label{{
			Kind:    types.LabelPrimary,
			Span:    span,
			Message: fmt.Sprintf("Expression of type %s", condType),
		}},
	}
}
