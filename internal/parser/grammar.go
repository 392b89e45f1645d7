package parser

import (
	"strconv"

	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/diag"
	"github.com/1995hnagamin/spacec/internal/token"
)

// keyword CapitalName lexemes recognized by the grammar; any other
// CapitalName is treated as an ordinary identifier (IdentExpr).
const (
	kwDefFn = "DefFn"
	kwLet   = "Let"
	kwDecl  = "Decl"
	kwTrue  = "True"
	kwFalse = "False"
	kwIf    = "If"
	kwThen  = "Then"
	kwElse  = "Else"
	kwOc    = "Oc"
	kwBool  = "Bool"
	kwFr    = "Fr"
)

// ParseTranslationUnit parses `DefFn* Eof`.
func (p *Parser) ParseTranslationUnit() (*ast.TranslationUnit, error) {
	pos := p.stream.Pos()
	var funcs []ast.Decl
	for p.stream.Peek().Kind != token.Eof {
		fn, err := p.parseDefFn()
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return p.arena.NewTranslationUnit(pos, funcs), nil
}

func (p *Parser) parseDefFn() (*ast.DefFn, error) {
	pos := p.stream.Pos()
	if _, err := p.stream.Expect(token.CapitalName, kwDefFn); err != nil {
		return nil, err
	}
	nameTok, err := p.stream.Expect(token.SmallName, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.LParen, ""); err != nil {
		return nil, err
	}
	var params []ast.Param
	if p.stream.Peek().Kind != token.RParen {
		params, err = p.parseParams()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.stream.Expect(token.RParen, ""); err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.Symbol, "->"); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return p.arena.NewDefFn(pos, nameTok.Lexeme, params, ret, body), nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.stream.Peek().Kind != token.Comma {
			break
		}
		p.stream.Advance()
	}
	return params, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	nameTok, err := p.stream.Expect(token.SmallName, "")
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.stream.Expect(token.Symbol, ":"); err != nil {
		return ast.Param{}, err
	}
	ty, err := p.parseType()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Name: nameTok.Lexeme, Type: ty}, nil
}

func (p *Parser) parseBlock() (*ast.BlockExpr, error) {
	pos := p.stream.Pos()
	if _, err := p.stream.Expect(token.LBrace, ""); err != nil {
		return nil, err
	}
	stmts, err := p.parseStmtSeq()
	if err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.RBrace, ""); err != nil {
		return nil, err
	}
	return p.arena.NewBlockExpr(pos, stmts), nil
}

func (p *Parser) parseStmtSeq() ([]ast.Expr, error) {
	if p.stream.Peek().Kind == token.RBrace {
		return nil, nil
	}
	var stmts []ast.Expr
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, stmt)
	for p.stream.Peek().Kind == token.Semicolon {
		p.stream.Advance()
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStmt() (ast.Expr, error) {
	tok := p.stream.Peek()
	switch {
	case tok.Is(token.CapitalName, kwLet):
		return p.parseLetStmt()
	case tok.Is(token.CapitalName, kwDecl):
		return p.parseDeclStmt()
	default:
		return p.parseExpr()
	}
}

func (p *Parser) parseLetStmt() (ast.Expr, error) {
	pos := p.stream.Pos()
	p.stream.Advance() // "Let"
	nameTok, err := p.stream.Expect(token.SmallName, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.Symbol, "="); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.arena.NewLetStmt(pos, nameTok.Lexeme, init), nil
}

func (p *Parser) parseDeclStmt() (ast.Expr, error) {
	pos := p.stream.Pos()
	p.stream.Advance() // "Decl"
	nameTok, err := p.stream.Expect(token.SmallName, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.Symbol, ":"); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return p.arena.NewDeclStmt(pos, nameTok.Lexeme, ty), nil
}

// parseExpr is the grammar's Expr production: a shunting-yard-resolved
// binary expression sequence.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinarySeq()
}

func (p *Parser) parseBinarySeq() (ast.Expr, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	outputs := []ast.Expr{first}
	var ops []ast.BO

	for {
		tok := p.stream.Peek()
		if tok.Kind != token.Symbol {
			break
		}
		op, ok := ast.FromSymbol(tok.Lexeme)
		if !ok {
			break
		}

		for len(ops) > 0 {
			top := ops[len(ops)-1]
			if !ast.Comparable(op, top) {
				return nil, diag.NewParseError(tok.Pos, "mixing operator classes %s and %s without parentheses", op, top)
			}
			if ast.HigherThan(op, top) {
				break
			}
			outputs, ops = reduce(outputs, ops, p.arena)
		}

		p.stream.Advance()
		ops = append(ops, op)

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, rhs)
	}

	for len(ops) > 0 {
		outputs, ops = reduce(outputs, ops, p.arena)
	}
	if len(outputs) != 1 {
		return nil, diag.NewParseError(p.stream.Pos(), "malformed binary expression")
	}
	return outputs[0], nil
}

// reduce pops the top operator and its two operands, pushing their
// combination back onto outputs.
func reduce(outputs []ast.Expr, ops []ast.BO, arena *ast.Arena) ([]ast.Expr, []ast.BO) {
	op := ops[len(ops)-1]
	ops = ops[:len(ops)-1]
	rhs := outputs[len(outputs)-1]
	lhs := outputs[len(outputs)-2]
	outputs = outputs[:len(outputs)-2]
	outputs = append(outputs, arena.NewBinaryExpr(lhs.Pos(), op, lhs, rhs))
	return outputs, ops
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.stream.Peek()
	switch tok.Kind {
	case token.Digit:
		return p.parseIntegerLiteral()
	case token.LParen:
		p.stream.Advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.stream.Expect(token.RParen, ""); err != nil {
			return nil, err
		}
		return inner, nil
	case token.LBrace:
		return p.parseBlock()
	case token.SmallName:
		return p.parseIdentExpr()
	case token.CapitalName:
		switch tok.Lexeme {
		case kwTrue:
			p.stream.Advance()
			return p.arena.NewBoolLiteral(tok.Pos, true), nil
		case kwFalse:
			p.stream.Advance()
			return p.arena.NewBoolLiteral(tok.Pos, false), nil
		case kwIf:
			return p.parseIfExpr()
		case kwOc:
			return p.parseOctetSeqLit()
		default:
			// Unknown CapitalNames fall through to the identifier path.
			return p.parseIdentExpr()
		}
	}
	return nil, diag.NewParseError(tok.Pos, "expected primary expression, got %s", tok)
}

func (p *Parser) parseIntegerLiteral() (ast.Expr, error) {
	tok := p.stream.Peek()
	v, err := strconv.ParseInt(tok.Lexeme, 10, 32)
	if err != nil {
		return nil, diag.NewParseError(tok.Pos, "invalid integer literal %q: %v", tok.Lexeme, err)
	}
	p.stream.Advance()
	return p.arena.NewIntegerLiteral(tok.Pos, int32(v)), nil
}

func (p *Parser) parseIfExpr() (ast.Expr, error) {
	pos := p.stream.Pos()
	p.stream.Advance() // "If"
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.CapitalName, kwThen); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.CapitalName, kwElse); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.arena.NewIfExpr(pos, cond, then, els), nil
}

func (p *Parser) parseOctetSeqLit() (ast.Expr, error) {
	pos := p.stream.Pos()
	p.stream.Advance() // "Oc"
	quoted, err := p.stream.Expect(token.DoubleQuoted, "")
	if err != nil {
		return nil, err
	}
	return p.arena.NewOctetSeqLiteral(pos, unquote(quoted.Lexeme)), nil
}

// unquote strips the surrounding quotes from a DoubleQuoted lexeme and
// resolves backslash escapes.
func unquote(lexeme string) []byte {
	inner := lexeme[1 : len(lexeme)-1]
	out := make([]byte, 0, len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		out = append(out, inner[i])
	}
	return out
}

func (p *Parser) parseIdentExpr() (ast.Expr, error) {
	tok := p.stream.Peek()
	p.stream.Advance()
	ref := p.arena.NewVarRefExpr(tok.Pos, tok.Lexeme)
	if p.stream.Peek().Kind != token.LParen {
		return ref, nil
	}
	p.stream.Advance()
	var args []ast.Expr
	if p.stream.Peek().Kind != token.RParen {
		var err error
		args, err = p.parseArgs()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.stream.Expect(token.RParen, ""); err != nil {
		return nil, err
	}
	return p.arena.NewCallExpr(tok.Pos, ref, args), nil
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.stream.Peek().Kind != token.Comma {
			break
		}
		p.stream.Advance()
	}
	return args, nil
}

func (p *Parser) parseType() (ast.TypeExpr, error) {
	tok := p.stream.Peek()
	switch {
	case tok.Is(token.SmallName, "i32"):
		p.stream.Advance()
		return p.arena.NewNamedTypeExpr(tok.Pos, "i32"), nil
	case tok.Is(token.CapitalName, kwBool):
		p.stream.Advance()
		return p.arena.NewNamedTypeExpr(tok.Pos, "Bool"), nil
	case tok.Is(token.CapitalName, kwFr):
		return p.parseFunctionType()
	}
	return nil, diag.NewParseError(tok.Pos, "expected type, got %s", tok)
}

func (p *Parser) parseFunctionType() (ast.TypeExpr, error) {
	pos := p.stream.Pos()
	p.stream.Advance() // "Fr"
	if _, err := p.stream.Expect(token.LParen, ""); err != nil {
		return nil, err
	}
	var params []ast.TypeExpr
	if p.stream.Peek().Kind != token.RParen {
		var err error
		params, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.stream.Expect(token.RParen, ""); err != nil {
		return nil, err
	}
	if _, err := p.stream.Expect(token.Symbol, "->"); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return p.arena.NewFunctionTypeExpr(pos, params, ret), nil
}

func (p *Parser) parseTypeList() ([]ast.TypeExpr, error) {
	var types []ast.TypeExpr
	for {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, ty)
		if p.stream.Peek().Kind != token.Comma {
			break
		}
		p.stream.Advance()
	}
	return types, nil
}
