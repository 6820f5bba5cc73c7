package symtab

import (
	"log/slog"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/types"
)

type builder struct {
	st          *SymbolTable
	diagnostics []types.Diagnostic
}

// Build walks a parsed program and registers every function, shader,
// parameter, and local variable declaration into st, pushing and popping
// scopes as block statements are entered and left. It returns the first
// declaration error encountered, if any; like the parser, this phase is
// fatal on the first error rather than collecting and continuing.
func Build(prog *ast.Program, st *SymbolTable) *types.Diagnostic {
	st.Log(slog.LevelDebug, "starting phase", slog.String("phase", "symtab"))
	b := &builder{st: st}

	for _, fn := range prog.Functions {
		if d := b.buildFunction(fn); d != nil {
			return d
		}
	}
	for _, sh := range prog.Shaders {
		if d := b.buildShader(sh); d != nil {
			return d
		}
	}

	st.Log(slog.LevelDebug, "phase complete", slog.String("phase", "symtab"),
		slog.Int("variables", st.NVariables),
		slog.Int("functions", st.NFunctions),
		slog.Int("shaders", st.NShaders))
	return nil
}

func (b *builder) buildFunction(fn *ast.FunctionDecl) *types.Diagnostic {
	argTypes := make([]ast.Type, len(fn.Params))
	for i, p := range fn.Params {
		argTypes[i] = p.Type
	}
	if d := b.st.AddFunction(fn.ReturnType, fn.Name.Name, argTypes, fn.Span(), fn.Public); d != nil {
		return d
	}

	b.st.UpScope(types.NewSpan(fn.Name.Span.End, fn.Span().End, fn.Name.Span.Line))
	defer b.st.DownScope()

	for _, p := range fn.Params {
		if d := b.st.AddVariable(p.Type, p.Name.Name, p.Sp, p.IsOutput); d != nil {
			return d
		}
	}
	return b.buildStmts(fn.Body.Stmts)
}

func (b *builder) buildShader(sh *ast.ShaderDecl) *types.Diagnostic {
	if d := b.st.AddShader(sh.Kind, sh.Name.Name, sh.Span()); d != nil {
		return d
	}

	b.st.UpScope(types.NewSpan(sh.Name.Span.End, sh.Span().End, sh.Name.Span.Line))
	defer b.st.DownScope()

	for _, p := range sh.Params {
		if d := b.st.AddVariable(p.Type, p.Name.Name, p.Sp, p.IsOutput); d != nil {
			return d
		}
	}
	return b.buildStmts(sh.Body.Stmts)
}

func (b *builder) buildStmts(stmts []ast.Stmt) *types.Diagnostic {
	for _, stmt := range stmts {
		if d := b.buildStmt(stmt); d != nil {
			return d
		}
	}
	return nil
}

func (b *builder) buildStmt(stmt ast.Stmt) *types.Diagnostic {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		b.st.UpScope(s.Sp)
		defer b.st.DownScope()
		return b.buildStmts(s.Stmts)

	case *ast.VarDeclStmt:
		return b.st.AddVariable(s.Type, s.Name.Name, s.Sp, false)

	case *ast.IfStmt:
		if d := b.buildStmt(s.Then); d != nil {
			return d
		}
		if s.Else != nil {
			return b.buildStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		return b.buildStmt(s.Body)

	case *ast.ForStmt:
		if s.Init != nil {
			if d := b.buildStmt(s.Init); d != nil {
				return d
			}
		}
		return b.buildStmt(s.Body)

	default:
		// ExprStmt, ReturnStmt: no declarations to register.
		return nil
	}
}
