package parser

import (
	"typedjs/internal/ast"
	"typedjs/internal/diag"
	"typedjs/internal/token"
)

// parseStmt выбирает распознаватель по первому токену.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.s.Peek()
	doc := docOf(tok)
	id, ok := p.parseStmtInner()
	if ok && doc != nil {
		p.arenas.Stmts.Get(id).Doc = doc
	}
	return id, ok
}

func (p *Parser) parseStmtInner() (ast.StmtID, bool) {
	tok := p.s.Peek()
	switch tok.Kind {
	case token.Semicolon:
		p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span), true
	case token.LBrace:
		return p.parseBlock()
	case token.KwVar, token.KwLet, token.KwConst:
		id, ok := p.parseVarDecl()
		if ok && !p.consumeSemicolon() {
			return id, false
		}
		return id, ok
	case token.KwFunction:
		return p.parseFuncDecl()
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		p.unexpected("statement ('do' loops are not supported)")
		return ast.NoStmtID, false
	case token.KwFor:
		return p.parseFor()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwBreak, token.KwContinue:
		return p.parseJump()
	case token.KwTry:
		return p.parseTry()
	}
	return p.parseExprStmt()
}

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}
	stmts := make([]ast.StmtID, 0)
	for !p.atOr(token.RBrace, token.EOF) {
		id, ok := p.parseStmt()
		if !ok {
			p.resync()
			continue
		}
		stmts = append(stmts, id)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(open.Span.Cover(p.lastSpan), stmts), true
}

// parseVarDecl разбирает `var|let|const decl, ...` без завершающей ';'.
func (p *Parser) parseVarDecl() (ast.StmtID, bool) {
	kw := p.advance()
	kind := ast.VarVar
	switch kw.Kind {
	case token.KwLet:
		kind = ast.VarLet
	case token.KwConst:
		kind = ast.VarConst
	}
	var decls []ast.VarDeclarator
	for {
		d, ok := p.parseDeclarator()
		if !ok {
			return ast.NoStmtID, false
		}
		decls = append(decls, d)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewVar(kw.Span.Cover(p.lastSpan), kind, decls), true
}

func (p *Parser) parseDeclarator() (ast.VarDeclarator, bool) {
	start := p.s.Peek().Span
	target, ok := p.parseBindingTarget()
	if !ok {
		return ast.VarDeclarator{}, false
	}
	d := ast.VarDeclarator{Target: target, Init: ast.NoExprID}
	if p.at(token.Colon) {
		colon := p.advance()
		t, ok := p.parseTypeAnnotation()
		if !ok {
			return ast.VarDeclarator{}, false
		}
		if p.isPattern(target) {
			p.errAt(diag.SynDestructuringTyped, colon.Span.Cover(t.Span()),
				"type annotations on destructuring patterns are not supported")
		} else {
			d.Type = t
		}
	}
	if p.eat(token.Assign) {
		init, ok := p.parseAssign()
		if !ok {
			return ast.VarDeclarator{}, false
		}
		d.Init = init
	}
	d.Span = start.Cover(p.lastSpan)
	return d, true
}

// parseBindingTarget: идентификатор или шаблон деструктуризации.
func (p *Parser) parseBindingTarget() (ast.ExprID, bool) {
	switch p.s.Peek().Kind {
	case token.LBrace:
		return p.parseObjectLit()
	case token.LBracket:
		return p.parseArrayLit()
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIdent(name.Span, name.Text), true
}

func (p *Parser) isPattern(id ast.ExprID) bool {
	e := p.arenas.Exprs.Get(id)
	return e != nil && (e.Kind == ast.ExprObject || e.Kind == ast.ExprArray)
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) && !p.s.Peek().NewlineBefore {
		v, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = v
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(kw.Span.Cover(p.lastSpan), value), true
}

func (p *Parser) parseThrow() (ast.StmtID, bool) {
	kw := p.advance()
	if p.s.Peek().NewlineBefore {
		p.err(diag.SynExpectExpression, "line break is not allowed after 'throw'")
		return ast.NoStmtID, false
	}
	v, ok := p.parseExpr()
	if !ok || !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewThrow(kw.Span.Cover(p.lastSpan), v), true
}

func (p *Parser) parseJump() (ast.StmtID, bool) {
	kw := p.advance()
	kind := ast.StmtBreak
	if kw.Kind == token.KwContinue {
		kind = ast.StmtContinue
	}
	label := ""
	if p.at(token.Ident) && !p.s.Peek().NewlineBefore {
		label = p.advance().Text
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewJump(kw.Span.Cover(p.lastSpan), kind, label), true
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return ast.NoExprID, false
	}
	e, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	return e, true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		if els, ok = p.parseStmt(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(kw.Span.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(kw.Span.Cover(p.lastSpan), cond, body), true
}

// for (init; cond; update) body: только классическая форма.
func (p *Parser) parseFor() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'"); !ok {
		return ast.NoStmtID, false
	}
	init := ast.NoStmtID
	switch {
	case p.at(token.Semicolon):
	case p.atOr(token.KwVar, token.KwLet, token.KwConst):
		id, ok := p.parseVarDecl()
		if !ok {
			return ast.NoStmtID, false
		}
		init = id
	default:
		start := p.s.Peek().Span
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		init = p.arenas.Stmts.NewExpr(start.Cover(p.lastSpan), e)
	}
	if p.atOr(token.KwIn) || (p.at(token.Ident) && p.s.Peek().Text == "of") {
		p.unexpected("';' ('for-in' and 'for-of' loops are not supported)")
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		c, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		cond = c
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}
	update := ast.NoExprID
	if !p.at(token.RParen) {
		u, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		update = u
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for header"); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(kw.Span.Cover(p.lastSpan), init, cond, update, body), true
}

func (p *Parser) parseTry() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	param := ""
	catch, finally := ast.NoStmtID, ast.NoStmtID
	if p.eat(token.KwCatch) {
		if p.eat(token.LParen) {
			name, ok := p.parseIdent()
			if !ok {
				return ast.NoStmtID, false
			}
			param = name.Text
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after catch binding"); !ok {
				return ast.NoStmtID, false
			}
		}
		if catch, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	if p.eat(token.KwFinally) {
		if finally, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !catch.IsValid() && !finally.IsValid() {
		p.err(diag.SynUnexpectedToken, "expected 'catch' or 'finally' after try block")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewTry(kw.Span.Cover(p.lastSpan), body, param, catch, finally), true
}

func (p *Parser) parseFuncDecl() (ast.StmtID, bool) {
	start := p.s.Peek()
	fn, ok := p.parseFunction(true)
	if !ok {
		return ast.NoStmtID, false
	}
	p.arenas.Funcs.Get(fn).Doc = docOf(start)
	return p.arenas.Stmts.NewFunc(start.Span.Cover(p.lastSpan), fn), true
}

func (p *Parser) parseClassDecl() (ast.StmtID, bool) {
	start := p.s.Peek()
	cls, ok := p.parseClass(true)
	if !ok {
		return ast.NoStmtID, false
	}
	p.arenas.Classes.Get(cls).Doc = docOf(start)
	return p.arenas.Stmts.NewClass(start.Span.Cover(p.lastSpan), cls), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.s.Peek().Span
	e, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.consumeSemicolon() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(start.Cover(p.lastSpan), e), true
}
