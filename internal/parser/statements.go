package parser

import (
	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET, token.CONST:
		return p.parseVariableDeclaration()
	case token.FUNCTION:
		return p.parseFunctionDeclaration(false)
	case token.ASYNC:
		if p.peekIs(token.FUNCTION) {
			p.nextToken()
			return p.parseFunctionDeclaration(true)
		}
		return p.parseExpressionStatement()
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		return nil
	case token.IDENT:
		if p.curToken.Literal == "import" || p.curToken.Literal == "export" {
			p.errorfUnsupported(p.curToken.Pos, "%s declarations are not supported", p.curToken.Literal)
			p.skipToStatementEnd()
			return nil
		}
		if p.peekIs(token.COLON) {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// skipToStatementEnd advances past the remainder of an unparseable
// statement so error recovery can resume at the next one.
func (p *Parser) skipToStatementEnd() {
	for !p.curIs(token.SEMICOLON) && !p.curIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	pos := p.curToken.Pos
	label := p.curToken.Literal
	p.nextToken() // consume ':'
	p.nextToken() // move to body's first token
	body := p.parseStatement()
	return ast.NewLabeledStatement(pos, label, body)
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.curToken.Pos
	expr := p.parseExpression(LOWEST)
	stmt := ast.NewExpressionStatement(pos, expr)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	pos := p.curToken.Pos
	block := ast.NewBlockStatement(pos)
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	pos := p.curToken.Pos
	kind := p.curToken.Literal
	decl := ast.NewVariableDeclaration(pos, kind)
	for {
		p.nextToken()
		target := p.parseBindingTarget()
		var init ast.Expression
		if p.peekIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			init = p.parseExpression(ASSIGNMENT)
		}
		decl.Declarations = append(decl.Declarations, ast.NewVariableDeclarator(target, init))
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return decl
}

// parseBindingTarget parses an identifier or destructuring pattern in
// declaration/parameter/for-each position.
func (p *Parser) parseBindingTarget() ast.Pattern {
	switch p.curToken.Type {
	case token.LBRACE:
		return p.parseObjectPattern()
	case token.LBRACKET:
		return p.parseArrayPattern()
	default:
		return ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	}
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	pos := p.curToken.Pos
	pat := ast.NewObjectPattern(pos)
	p.nextToken() // consume '{'
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.ELLIPSIS) {
			p.nextToken()
			rest := ast.NewRestElement(p.curToken.Pos, p.parseBindingTarget())
			pat.Rest = rest
			p.nextToken()
			break
		}
		keyTok := p.curToken
		key := ast.Expression(ast.NewIdentifier(keyTok.Pos, keyTok.Literal))
		var value ast.Pattern = ast.NewIdentifier(keyTok.Pos, keyTok.Literal)
		computed := false
		if p.peekIs(token.COLON) {
			p.nextToken() // on ':'
			p.nextToken() // on value
			value = p.parseBindingTarget()
		}
		if p.peekIs(token.ASSIGN) {
			p.errorfUnsupported(p.peekToken.Pos, "default values in destructuring patterns are not supported")
		}
		pat.Properties = append(pat.Properties, ast.NewObjectPatternProperty(keyTok.Pos, key, value, computed))
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken()
	}
	return pat
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	pos := p.curToken.Pos
	pat := ast.NewArrayPattern(pos)
	p.nextToken() // consume '['
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			pat.Elements = append(pat.Elements, nil)
			p.nextToken()
			continue
		}
		if p.curIs(token.ELLIPSIS) {
			p.nextToken()
			pat.Rest = ast.NewRestElement(p.curToken.Pos, p.parseBindingTarget())
			p.nextToken()
			break
		}
		pat.Elements = append(pat.Elements, p.parseBindingTarget())
		if p.peekIs(token.ASSIGN) {
			p.errorfUnsupported(p.peekToken.Pos, "default values in destructuring patterns are not supported")
		}
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken()
	}
	return pat
}

func (p *Parser) parseFunctionDeclaration(isAsync bool) *ast.FunctionDeclaration {
	pos := p.curToken.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	name := ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	params := p.parseParamList()
	if !p.curIs(token.LBRACE) {
		p.errorf(p.curToken.Pos, "expected '{' to begin function body")
		return nil
	}
	body := p.parseBlockStatement()
	return ast.NewFunctionDeclaration(pos, name, params, body, isAsync)
}

// parseParamList expects peekToken to be LPAREN on entry and leaves curToken
// on the token after the closing RPAREN (the body's '{').
func (p *Parser) parseParamList() []*ast.Param {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []*ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		pos := p.curToken.Pos
		isRest := false
		if p.curIs(token.ELLIPSIS) {
			isRest = true
			p.nextToken()
		}
		target := p.parseBindingTarget()
		if p.peekIs(token.ASSIGN) {
			p.errorfUnsupported(p.peekToken.Pos, "default parameter values are not supported")
		}
		params = append(params, ast.NewParam(pos, target, isRest))
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	p.expect(token.RPAREN)
	p.nextToken()
	return params
}

func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	pos := p.curToken.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	name := ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	var super ast.Expression
	if p.peekIs(token.EXTENDS) {
		p.nextToken()
		p.nextToken()
		super = p.parseExpression(CALLMEMBER)
	}
	body := p.parseClassBody()
	return ast.NewClassDeclaration(pos, name, super, body)
}

// parseClassBody expects peekToken to be '{' (it records an error
// otherwise), advances onto it, then parses method definitions.
func (p *Parser) parseClassBody() []*ast.MethodDefinition {
	if !p.expect(token.LBRACE) {
		return nil
	}
	var methods []*ast.MethodDefinition
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		methods = append(methods, p.parseMethodDefinition())
		p.nextToken()
	}
	return methods
}

func (p *Parser) parseMethodDefinition() *ast.MethodDefinition {
	pos := p.curToken.Pos
	static := false
	if p.curIs(token.STATIC) {
		static = true
		p.nextToken()
	}
	isAsync := false
	if p.curIs(token.ASYNC) {
		isAsync = true
		p.nextToken()
	}
	key := ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	params := p.parseParamList()
	body := p.parseBlockStatement()
	fn := ast.NewFunctionExpression(pos, nil, params, body, isAsync)
	kind := ast.MethodOrdinary
	if key.Name == "constructor" {
		kind = ast.MethodConstructor
	}
	return ast.NewMethodDefinition(pos, key, fn, kind, static)
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	pos := p.curToken.Pos
	var arg ast.Expression
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		p.nextToken()
		arg = p.parseExpression(LOWEST)
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return ast.NewReturnStatement(pos, arg)
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	pos := p.curToken.Pos
	label := ""
	if p.peekIs(token.IDENT) {
		p.nextToken()
		label = p.curToken.Literal
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return ast.NewBreakStatement(pos, label)
}

func (p *Parser) parseContinueStatement() *ast.ContinueStatement {
	pos := p.curToken.Pos
	label := ""
	if p.peekIs(token.IDENT) {
		p.nextToken()
		label = p.curToken.Literal
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return ast.NewContinueStatement(pos, label)
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	pos := p.curToken.Pos
	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return ast.NewThrowStatement(pos, arg)
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return nil
	}
	p.nextToken()
	consequent := p.parseStatement()
	var alternate ast.Statement
	if p.peekIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		alternate = p.parseStatement()
	}
	return ast.NewIfStatement(pos, test, consequent, alternate)
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	return ast.NewWhileStatement(pos, test, body)
}

func (p *Parser) parseForStatement() ast.Statement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}

	// Distinguish `for (let x in/of expr)` from classic C-style for.
	if p.peekIs(token.LET) || p.peekIs(token.CONST) {
		p.nextToken() // on let/const
		kind := p.curToken.Literal
		p.nextToken() // on binding target
		target := p.parseBindingTarget()
		if p.peekIs(token.IN) {
			p.nextToken()
			p.nextToken()
			right := p.parseExpression(LOWEST)
			p.expect(token.RPAREN)
			p.nextToken()
			body := p.parseStatement()
			return ast.NewForInStatement(pos, target, kind, right, body)
		}
		if p.peekIs(token.OF) {
			p.nextToken()
			p.nextToken()
			right := p.parseExpression(LOWEST)
			p.expect(token.RPAREN)
			p.nextToken()
			body := p.parseStatement()
			return ast.NewForOfStatement(pos, target, kind, right, body)
		}
		// classic for with a declaration init
		decl := ast.NewVariableDeclaration(pos, kind)
		var init ast.Expression
		if p.peekIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			init = p.parseExpression(ASSIGNMENT)
		}
		decl.Declarations = append(decl.Declarations, ast.NewVariableDeclarator(target, init))
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			t2 := p.parseBindingTarget()
			var i2 ast.Expression
			if p.peekIs(token.ASSIGN) {
				p.nextToken()
				p.nextToken()
				i2 = p.parseExpression(ASSIGNMENT)
			}
			decl.Declarations = append(decl.Declarations, ast.NewVariableDeclarator(t2, i2))
		}
		p.expect(token.SEMICOLON)
		return p.finishClassicFor(pos, decl)
	}

	p.nextToken()
	if p.curIs(token.SEMICOLON) {
		return p.finishClassicFor(pos, nil)
	}
	initExpr := p.parseExpression(LOWEST)
	if p.peekIs(token.IN) || p.peekIs(token.OF) {
		isIn := p.peekIs(token.IN)
		target := exprToPattern(initExpr)
		if target == nil {
			p.errorf(p.curToken.Pos, "invalid loop target, expected an identifier")
		}
		p.nextToken()
		p.nextToken()
		right := p.parseExpression(LOWEST)
		p.expect(token.RPAREN)
		p.nextToken()
		body := p.parseStatement()
		if isIn {
			return ast.NewForInStatement(pos, target, "", right, body)
		}
		return ast.NewForOfStatement(pos, target, "", right, body)
	}
	p.expect(token.SEMICOLON)
	return p.finishClassicFor(pos, initExpr)
}

// exprToPattern allows a bare identifier to serve as the left side of a
// for-in/for-of loop without a `let`/`const` (assignment into an existing
// binding).
func exprToPattern(e ast.Expression) ast.Pattern {
	if id, ok := e.(*ast.Identifier); ok {
		return id
	}
	return nil
}

// finishClassicFor parses the remaining `; test; update) body` after the
// init clause (which may be nil, an expression, or a *ast.VariableDeclaration
// already fully consumed up through its terminating semicolon).
func (p *Parser) finishClassicFor(pos token.Position, init ast.Node) *ast.ForStatement {
	p.nextToken()
	var test ast.Expression
	if !p.curIs(token.SEMICOLON) {
		test = p.parseExpression(LOWEST)
		p.expect(token.SEMICOLON)
	}
	p.nextToken()
	var update ast.Expression
	if !p.curIs(token.RPAREN) {
		update = p.parseExpression(LOWEST)
		p.expect(token.RPAREN)
	}
	p.nextToken()
	body := p.parseStatement()
	return ast.NewForStatement(pos, init, test, update, body)
}

func (p *Parser) parseSwitchStatement() *ast.SwitchStatement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.nextToken()
	discriminant := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	sw := ast.NewSwitchStatement(pos, discriminant)
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		casePos := p.curToken.Pos
		var test ast.Expression
		if p.curIs(token.CASE) {
			p.nextToken()
			test = p.parseExpression(LOWEST)
			p.expect(token.COLON)
		} else if p.curIs(token.DEFAULT) {
			p.expect(token.COLON)
		}
		p.nextToken()
		var body []ast.Statement
		for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			stmt := p.parseStatement()
			if stmt != nil {
				body = append(body, stmt)
			}
			p.nextToken()
		}
		sw.Cases = append(sw.Cases, ast.NewSwitchCase(casePos, test, body))
	}
	return sw
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	pos := p.curToken.Pos
	if !p.expect(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()
	tr := ast.NewTryStatement(pos, block)
	if p.peekIs(token.CATCH) {
		p.nextToken()
		catchPos := p.curToken.Pos
		var param *ast.Identifier
		if p.peekIs(token.LPAREN) {
			p.nextToken()
			p.nextToken()
			param = ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
			p.expect(token.RPAREN)
		}
		p.expect(token.LBRACE)
		body := p.parseBlockStatement()
		tr.Handler = ast.NewCatchClause(catchPos, param, body)
	}
	if p.peekIs(token.FINALLY) {
		p.nextToken()
		p.expect(token.LBRACE)
		tr.Finalizer = p.parseBlockStatement()
	}
	return tr
}
