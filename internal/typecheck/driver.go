package typecheck

import (
	"log/slog"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/lexer"
	"github.com/openshading/oslc/internal/symtab"
	"github.com/openshading/oslc/internal/types"
)

// checker threads the logger and symbol table through a single Check pass.
type checker struct {
	st *symtab.SymbolTable
	types.Logger
}

// Check type-checks every function and shader body in prog against st,
// and enforces that the program declares exactly one shader. tokens and
// source back a re-scan of every identifier token in the file (see
// checkTokenAccess) that catches references the statement walk below never
// visits, such as a parameter's default-value expression. It stops and
// returns the first error found.
func Check(prog *ast.Program, tokens []lexer.Token, source []byte, st *symtab.SymbolTable, logger *slog.Logger) *types.Diagnostic {
	c := &checker{st: st, Logger: types.Logger{L: logger}}
	c.Log(slog.LevelDebug, "starting phase", slog.String("phase", "typecheck"))

	if d := c.checkShaderCount(prog); d != nil {
		return d
	}
	if d := checkTokenAccess(tokens, source, st); d != nil {
		return d
	}

	for _, fn := range prog.Functions {
		if d := c.checkStmts(fn.Body.Stmts); d != nil {
			return d
		}
	}
	for _, sh := range prog.Shaders {
		if d := c.checkStmts(sh.Body.Stmts); d != nil {
			return d
		}
	}

	c.Log(slog.LevelDebug, "phase complete", slog.String("phase", "typecheck"))
	return nil
}

func (c *checker) checkShaderCount(prog *ast.Program) *types.Diagnostic {
	switch len(prog.Shaders) {
	case 0:
		return &types.Diagnostic{
			Severity: types.SeverityError,
			Message:  "Missing shader function",
			Labels:   []types.Label{{Kind: types.LabelPrimary, Span: types.Synthetic, Message: "at least one shader function is required per OSL file"}},
		}
	case 1:
		return nil
	default:
		extra := prog.Shaders[1]
		return &types.Diagnostic{
			Severity: types.SeverityError,
			Message:  "Multiple shader functions",
			Labels:   []types.Label{{Kind: types.LabelPrimary, Span: extra.Span(), Message: "at most one shader function is allowed per OSL file"}},
		}
	}
}

func (c *checker) checkStmts(stmts []ast.Stmt) *types.Diagnostic {
	for _, stmt := range stmts {
		if d := c.checkStmt(stmt); d != nil {
			return d
		}
	}
	return nil
}

func (c *checker) checkStmt(stmt ast.Stmt) *types.Diagnostic {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return c.checkStmts(s.Stmts)

	case *ast.ExprStmt:
		_, d := TypeOf(s.X, c.st)
		return d

	case *ast.VarDeclStmt:
		if s.Init == nil {
			return nil
		}
		initType, d := TypeOf(s.Init, c.st)
		if d != nil {
			return d
		}
		if !assignable(s.Type, initType) {
			return mismatchedAssignment(s.Name.Span, s.Type, s.Init.Span(), initType)
		}
		return nil

	case *ast.ReturnStmt:
		if s.Value == nil {
			return nil
		}
		_, d := TypeOf(s.Value, c.st)
		return d

	case *ast.IfStmt:
		if d := c.checkCondition(s.Cond); d != nil {
			return d
		}
		if d := c.checkStmt(s.Then); d != nil {
			return d
		}
		if s.Else != nil {
			return c.checkStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		if d := c.checkCondition(s.Cond); d != nil {
			return d
		}
		return c.checkStmt(s.Body)

	case *ast.ForStmt:
		if s.Init != nil {
			if d := c.checkStmt(s.Init); d != nil {
				return d
			}
		}
		if s.Cond != nil {
			if d := c.checkCondition(s.Cond); d != nil {
				return d
			}
		}
		if s.Post != nil {
			if _, d := TypeOf(s.Post, c.st); d != nil {
				return d
			}
		}
		return c.checkStmt(s.Body)

	default:
		return nil
	}
}

func (c *checker) checkCondition(cond ast.Expr) *types.Diagnostic {
	condType, d := TypeOf(cond, c.st)
	if d != nil {
		return d
	}
	if condType != ast.TypeInt {
		return invalidCondition(cond.Span(), condType)
	}
	return nil
}
