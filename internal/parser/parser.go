// Package parser parses a token stream into an OSL AST.
//
// Unlike a recovering parser, this one is fatal on the first grammar error:
// ParseProgram returns as soon as any production fails, rather than
// collecting diagnostics and attempting to resynchronize. Lexical errors
// collected by the lexer are still reported alongside a successful parse.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/openshading/oslc/internal/ast"
	"github.com/openshading/oslc/internal/lexer"
	"github.com/openshading/oslc/internal/types"
)

// Parser parses a token stream into an AST.
type Parser struct {
	source      []byte
	tokens      []lexer.Token
	pos         int
	diagnostics []types.Diagnostic
	eofToken    lexer.Token
	types.Logger
}

// New creates a new parser for the given source bytes.
// The logger parameter is optional; pass nil to disable logging.
func New(source []byte, logger *slog.Logger) *Parser {
	var lexLogger *slog.Logger
	if logger != nil {
		lexLogger = logger.With(slog.String("component", "lexer"))
	}
	lex := lexer.New(source, lexLogger)
	tokens, lexerDiags := lex.Tokenize()
	eofLine := 1
	if len(tokens) > 0 {
		eofLine = tokens[len(tokens)-1].Span.Line
	}
	eofSpan := types.NewSpan(types.ByteOffset(len(source)), types.ByteOffset(len(source)), eofLine)
	p := &Parser{
		source:      source,
		tokens:      tokens,
		pos:         0,
		diagnostics: lexerDiags,
		eofToken:    lexer.NewToken(lexer.TokEOF, eofSpan),
		Logger:      types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized",
		slog.Int("tokens", len(tokens)),
		slog.Int("lexer_diagnostics", len(lexerDiags)))
	return p
}

// Tokens returns the full token stream lexed from the source, including
// tokens belonging to syntax (like a constructor's type keyword or a
// parameter's default-value expression) the AST doesn't keep identifiers
// for. Callers that need to validate every identifier reference, not just
// the ones the AST walk reaches, scan this instead of the parsed Program.
func (p *Parser) Tokens() []lexer.Token {
	return p.tokens
}

// ParseProgram parses a complete source file. On the first grammar error it
// returns the diagnostics collected so far (lexer diagnostics plus the one
// fatal parse error) and a nil Program.
func (p *Parser) ParseProgram() (*ast.Program, []types.Diagnostic) {
	start := p.currentSpan()
	prog := &ast.Program{}

	for !p.isEOF() {
		if p.check(lexer.TokKwPublic) || p.peek().Kind.IsTypeKeyword() {
			fn, err := p.parseFunctionDecl()
			if err != nil {
				return nil, p.fail(*err)
			}
			prog.Functions = append(prog.Functions, fn)
			continue
		}
		if p.peek().Kind.IsShaderTypeKeyword() {
			sh, err := p.parseShaderDecl()
			if err != nil {
				return nil, p.fail(*err)
			}
			prog.Shaders = append(prog.Shaders, sh)
			continue
		}
		err := p.makeError(fmt.Sprintf("expected a function or shader declaration, found %s", p.peek().Kind.DebugName()))
		return nil, p.fail(err)
	}

	prog.Sp = start.Union(p.currentSpan())
	p.Log(slog.LevelDebug, "parsing complete",
		slog.Int("functions", len(prog.Functions)),
		slog.Int("shaders", len(prog.Shaders)))
	return prog, p.diagnostics
}

func (p *Parser) fail(d types.Diagnostic) []types.Diagnostic {
	p.diagnostics = append(p.diagnostics, d)
	p.Log(slog.LevelWarn, "parse failed", slog.String("message", d.Message))
	return p.diagnostics
}

// === Token access helpers ===

func (p *Parser) isEOF() bool {
	return p.peek().Kind == lexer.TokEOF
}

func (p *Parser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eofToken
}

func (p *Parser) peekNth(n int) lexer.Token {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n]
	}
	return p.eofToken
}

func (p *Parser) advance() lexer.Token {
	token := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return token
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind lexer.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, *types.Diagnostic) {
	if p.check(kind) {
		return p.advance(), nil
	}
	diag := p.makeError(fmt.Sprintf("expected %s, found %s", kind.DebugName(), p.peek().Kind.DebugName()))
	return lexer.Token{}, &diag
}

func (p *Parser) currentSpan() types.Span {
	return p.peek().Span
}

func (p *Parser) text(span types.Span) string {
	return string(p.source[span.Start:span.End])
}

func (p *Parser) makeIdent(token lexer.Token) ast.Ident {
	return ast.NewIdent(p.text(token.Span), token.Span)
}

func (p *Parser) makeError(message string) types.Diagnostic {
	return types.NewError(p.currentSpan(), message)
}

func (p *Parser) makeErrorAt(span types.Span, message string) types.Diagnostic {
	return types.NewError(span, message)
}

func (p *Parser) parseIntValue(span types.Span) int64 {
	text := p.text(span)
	base := 10
	if len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		base = 16
		text = text[2:]
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return 0
	}
	return v
}

func (p *Parser) parseFloatValue(span types.Span) float64 {
	text := p.text(span)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return v
}

// unescapeString resolves backslash escapes in a string literal's raw
// source text (quotes included) into its value.
func unescapeString(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	inner := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, inner[i])
			}
			continue
		}
		out = append(out, inner[i])
	}
	return string(out)
}

// === Top-level declarations ===

func (p *Parser) parseType() (ast.Type, *types.Diagnostic) {
	tok := p.peek()
	if !tok.Kind.IsTypeKeyword() {
		err := p.makeError(fmt.Sprintf("expected a type, found %s", tok.Kind.DebugName()))
		return ast.TypeUnknown, &err
	}
	typ, _ := ast.LookupType(p.text(tok.Span))
	p.advance()
	return typ, nil
}

// parseParamList parses the parenthesized, comma-separated formal parameter
// list shared by function and shader declarations.
func (p *Parser) parseParamList() ([]ast.Param, *types.Diagnostic) {
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}

	var params []ast.Param
	for !p.check(lexer.TokRParen) {
		start := p.currentSpan()
		isOutput := p.match(lexer.TokKwOutput)

		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}

		nameTok, err := p.expect(lexer.TokIdent)
		if err != nil {
			return nil, err
		}
		name := p.makeIdent(nameTok)

		var def ast.Expr
		if p.match(lexer.TokAssign) {
			def, err = p.parseAssignment()
			if err != nil {
				return nil, err
			}
		}

		params = append(params, ast.Param{
			Type:     typ,
			Name:     name,
			Default:  def,
			IsOutput: isOutput,
			Sp:       start.Union(p.currentSpan()),
		})

		if !p.match(lexer.TokComma) {
			break
		}
	}

	if _, err := p.expect(lexer.TokRParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, *types.Diagnostic) {
	start := p.currentSpan()
	public := p.match(lexer.TokKwPublic)

	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	name := p.makeIdent(nameTok)

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{
		Public:     public,
		ReturnType: retType,
		Name:       name,
		Params:     params,
		Body:       body,
		Sp:         start.Union(p.currentSpan()),
	}, nil
}

func (p *Parser) parseShaderDecl() (*ast.ShaderDecl, *types.Diagnostic) {
	start := p.currentSpan()
	kindTok := p.advance()
	var kind ast.ShaderType
	switch kindTok.Kind {
	case lexer.TokKwSurface:
		kind = ast.ShaderSurface
	case lexer.TokKwDisplacement:
		kind = ast.ShaderDisplacement
	case lexer.TokKwLight:
		kind = ast.ShaderLight
	case lexer.TokKwVolume:
		kind = ast.ShaderVolume
	default:
		kind = ast.ShaderGeneric
	}

	nameTok, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	name := p.makeIdent(nameTok)

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ShaderDecl{
		Kind:   kind,
		Name:   name,
		Params: params,
		Body:   body,
		Sp:     start.Union(p.currentSpan()),
	}, nil
}

// === Statements ===

func (p *Parser) parseBlock() (*ast.BlockStmt, *types.Diagnostic) {
	start := p.currentSpan()
	if _, err := p.expect(lexer.TokLBrace); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for !p.check(lexer.TokRBrace) && !p.isEOF() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(lexer.TokRBrace); err != nil {
		return nil, err
	}

	return &ast.BlockStmt{Stmts: stmts, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, *types.Diagnostic) {
	switch p.peek().Kind {
	case lexer.TokLBrace:
		return p.parseBlock()
	case lexer.TokKwIf:
		return p.parseIf()
	case lexer.TokKwWhile:
		return p.parseWhile()
	case lexer.TokKwFor:
		return p.parseFor()
	case lexer.TokKwReturn:
		return p.parseReturn()
	}
	if p.peek().Kind.IsTypeKeyword() {
		return p.parseVarDecl()
	}
	return p.parseExprStmt()
}

func (p *Parser) parseIf() (ast.Stmt, *types.Diagnostic) {
	start := p.currentSpan()
	p.advance() // 'if'
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokRParen); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.match(lexer.TokKwElse) {
		elseStmt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, *types.Diagnostic) {
	start := p.currentSpan()
	p.advance() // 'while'
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokRParen); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parseFor() (ast.Stmt, *types.Diagnostic) {
	start := p.currentSpan()
	p.advance() // 'for'
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err *types.Diagnostic
	if !p.check(lexer.TokSemicolon) {
		if p.peek().Kind.IsTypeKeyword() {
			init, err = p.parseVarDecl()
		} else {
			init, err = p.parseExprStmt()
		}
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}

	var cond ast.Expr
	if !p.check(lexer.TokSemicolon) {
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokSemicolon); err != nil {
		return nil, err
	}

	var post ast.Expr
	if !p.check(lexer.TokRParen) {
		post, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokRParen); err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, *types.Diagnostic) {
	start := p.currentSpan()
	p.advance() // 'return'
	var value ast.Expr
	if !p.check(lexer.TokSemicolon) {
		var err *types.Diagnostic
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokSemicolon); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parseVarDecl() (ast.Stmt, *types.Diagnostic) {
	start := p.currentSpan()
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.TokIdent)
	if err != nil {
		return nil, err
	}
	name := p.makeIdent(nameTok)

	var init ast.Expr
	if p.match(lexer.TokAssign) {
		init, err = p.parseAssignment()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokSemicolon); err != nil {
		return nil, err
	}
	return &ast.VarDeclStmt{Type: typ, Name: name, Init: init, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, *types.Diagnostic) {
	start := p.currentSpan()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemicolon); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: expr, Sp: start.Union(p.currentSpan())}, nil
}

// === Expressions ===
//
// Each level below implements one row of the precedence table, from lowest
// (assignment) to highest (primary). A level calls directly into the next
// tighter level, which is precedence climbing unrolled into named methods
// instead of a numeric binding-power table.

// parseExpr is the entry point for any expression context; it is the
// assignment level.
func (p *Parser) parseExpr() (ast.Expr, *types.Diagnostic) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	var op ast.Operator
	switch p.peek().Kind {
	case lexer.TokAssign:
		op = ast.OpAssign
	case lexer.TokPlusAssign:
		op = ast.OpAddAssign
	case lexer.TokMinusAssign:
		op = ast.OpSubAssign
	case lexer.TokStarAssign:
		op = ast.OpMulAssign
	case lexer.TokSlashAssign:
		op = ast.OpDivAssign
	default:
		return left, nil
	}
	p.advance()

	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{Op: op, Target: left, Value: right, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokOrOr) || p.check(lexer.TokKwOr) {
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpLogicalOr, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseBitwiseOr()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokAndAnd) || p.check(lexer.TokKwAnd) {
		p.advance()
		right, err := p.parseBitwiseOr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpLogicalAnd, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
	return left, nil
}

func (p *Parser) parseBitwiseOr() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseBitwiseXor()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokPipe) {
		p.advance()
		right, err := p.parseBitwiseXor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpBitOr, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
	return left, nil
}

func (p *Parser) parseBitwiseXor() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseBitwiseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokCaret) {
		p.advance()
		right, err := p.parseBitwiseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpBitXor, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
	return left, nil
}

func (p *Parser) parseBitwiseAnd() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TokAmp) {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: ast.OpBitAnd, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.TokEqEq:
			op = ast.OpEq
		case lexer.TokNotEq:
			op = ast.OpNe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
}

func (p *Parser) parseComparison() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.TokLess:
			op = ast.OpLt
		case lexer.TokLessEq:
			op = ast.OpLe
		case lexer.TokGreater:
			op = ast.OpGt
		case lexer.TokGreaterEq:
			op = ast.OpGe
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
}

func (p *Parser) parseShift() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.TokShl:
			op = ast.OpShl
		case lexer.TokShr:
			op = ast.OpShr
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.TokPlus:
			op = ast.OpAdd
		case lexer.TokMinus:
			op = ast.OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	left, err := p.parsePreUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.TokStar:
			op = ast.OpMul
		case lexer.TokSlash:
			op = ast.OpDiv
		case lexer.TokPercent:
			op = ast.OpMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parsePreUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Sp: start.Union(p.currentSpan())}
	}
}

func (p *Parser) parsePreUnary() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	var op ast.Operator
	switch p.peek().Kind {
	case lexer.TokMinus:
		op = ast.OpNeg
	case lexer.TokBang, lexer.TokKwNot:
		op = ast.OpNot
	case lexer.TokTilde:
		op = ast.OpBitNot
	case lexer.TokPlusPlus:
		op = ast.OpPreInc
	case lexer.TokMinusMinus:
		op = ast.OpPreDec
	default:
		return p.parsePostUnary()
	}
	p.advance()
	operand, err := p.parsePreUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Sp: start.Union(p.currentSpan())}, nil
}

func (p *Parser) parsePostUnary() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	operand, err := p.parseAccess()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.TokPlusPlus:
			op = ast.OpPostInc
		case lexer.TokMinusMinus:
			op = ast.OpPostDec
		default:
			return operand, nil
		}
		p.advance()
		operand = &ast.UnaryExpr{Op: op, Operand: operand, IsPostfix: true, Sp: start.Union(p.currentSpan())}
	}
}

func (p *Parser) parseAccess() (ast.Expr, *types.Diagnostic) {
	start := p.currentSpan()
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case lexer.TokDot:
			p.advance()
			fieldTok, err := p.expect(lexer.TokIdent)
			if err != nil {
				return nil, err
			}
			base = &ast.AccessExpr{Base: base, Component: p.text(fieldTok.Span), Sp: start.Union(p.currentSpan())}
		case lexer.TokLBracket:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokRBracket); err != nil {
				return nil, err
			}
			base = &ast.AccessExpr{Base: base, Index: idx, Sp: start.Union(p.currentSpan())}
		default:
			return base, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, *types.Diagnostic) {
	tok := p.peek()
	start := tok.Span

	switch tok.Kind {
	case lexer.TokIntLit:
		p.advance()
		return &ast.IntLit{Value: p.parseIntValue(start), Sp: start}, nil
	case lexer.TokFloatLit:
		p.advance()
		return &ast.FloatLit{Value: p.parseFloatValue(start), Sp: start}, nil
	case lexer.TokStringLit:
		p.advance()
		return &ast.StringLit{Value: unescapeString(p.text(start)), Sp: start}, nil
	case lexer.TokLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}

	if tok.Kind.IsTypeKeyword() && p.peekNth(1).Kind == lexer.TokLParen {
		typ, _ := ast.LookupType(p.text(tok.Span))
		p.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &ast.ConstructorExpr{Type: typ, Args: args, Sp: start.Union(p.currentSpan())}, nil
	}

	if tok.Kind == lexer.TokIdent {
		p.advance()
		name := p.makeIdent(tok)
		if p.check(lexer.TokLParen) {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.CallExpr{Callee: name, Args: args, Sp: start.Union(p.currentSpan())}, nil
		}
		return &ast.IdentExpr{Name: name}, nil
	}

	err := p.makeError(fmt.Sprintf("expected an expression, found %s", tok.Kind.DebugName()))
	return nil, &err
}

func (p *Parser) parseArgList() ([]ast.Expr, *types.Diagnostic) {
	if _, err := p.expect(lexer.TokLParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.check(lexer.TokRParen) {
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if _, err := p.expect(lexer.TokRParen); err != nil {
		return nil, err
	}
	return args, nil
}
