package parser

import (
	"strconv"

	"github.com/cwbudde/ember/internal/ast"
	"github.com/cwbudde/ember/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.errorf(p.curToken.Pos, "unexpected token %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	if p.peekIs(token.ARROW) {
		return p.parseSingleIdentArrow()
	}
	return ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
}

func (p *Parser) parseSingleIdentArrow() ast.Expression {
	pos := p.curToken.Pos
	param := ast.NewParam(pos, ast.NewIdentifier(pos, p.curToken.Literal), false)
	p.nextToken() // on '=>'
	p.nextToken() // on body start
	return p.finishArrow(pos, []*ast.Param{param}, false)
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	pos := p.curToken.Pos
	n, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(pos, "invalid number literal %q", p.curToken.Literal)
	}
	return ast.NewNumberLiteral(pos, n)
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return ast.NewStringLiteral(p.curToken.Pos, p.curToken.Literal)
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return ast.NewBoolLiteral(p.curToken.Pos, p.curToken.Type == token.TRUE)
}

func (p *Parser) parseNullLiteral() ast.Expression      { return ast.NewNullLiteral(p.curToken.Pos) }
func (p *Parser) parseUndefinedLiteral() ast.Expression { return ast.NewUndefinedLiteral(p.curToken.Pos) }
func (p *Parser) parseThisExpression() ast.Expression   { return ast.NewThisExpression(p.curToken.Pos) }
func (p *Parser) parseSuperExpression() ast.Expression  { return ast.NewSuperExpression(p.curToken.Pos) }

func (p *Parser) parseUnaryExpression() ast.Expression {
	pos := p.curToken.Pos
	op := p.curToken.Literal
	if op == "" {
		op = p.curToken.Type.String()
	}
	p.nextToken()
	arg := p.parseExpression(UNARY)
	return ast.NewUnaryExpression(pos, op, arg)
}

func (p *Parser) parsePrefixUpdate() ast.Expression {
	pos := p.curToken.Pos
	op := p.curToken.Type.String()
	p.nextToken()
	arg := p.parseExpression(UNARY)
	return ast.NewUpdateExpression(pos, op, arg, true)
}

func (p *Parser) parsePostfixUpdate(left ast.Expression) ast.Expression {
	return ast.NewUpdateExpression(p.curToken.Pos, p.curToken.Type.String(), left, false)
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	arg := p.parseExpression(UNARY)
	return ast.NewAwaitExpression(pos, arg)
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	op := p.curToken.Type.String()
	prec := p.curPrecedence()
	p.nextToken()
	// ** is right-associative.
	if op == "**" {
		right := p.parseExpression(prec - 1)
		return ast.NewBinaryExpression(pos, op, left, right)
	}
	right := p.parseExpression(prec)
	return ast.NewBinaryExpression(pos, op, left, right)
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	op := p.curToken.Type.String()
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return ast.NewLogicalExpression(pos, op, left, right)
}

func (p *Parser) parseConditionalExpression(test ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	cons := p.parseExpression(ASSIGNMENT)
	if !p.expect(token.COLON) {
		return nil
	}
	p.nextToken()
	alt := p.parseExpression(ASSIGNMENT)
	return ast.NewConditionalExpression(pos, test, cons, alt)
}

func (p *Parser) parseSequenceExpression(first ast.Expression) ast.Expression {
	pos := first.Pos()
	exprs := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.nextToken()
		exprs = append(exprs, p.parseExpression(ASSIGNMENT))
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	return ast.NewSequenceExpression(pos, exprs)
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	op := p.curToken.Type.String()
	p.nextToken()
	value := p.parseExpression(ASSIGNMENT - 1)
	var target ast.Node = left
	if op == "=" {
		if obj, ok := left.(*ast.ObjectExpression); ok {
			target = objectExpressionToPattern(obj)
		} else if arr, ok := left.(*ast.ArrayExpression); ok {
			target = arrayExpressionToPattern(arr)
		}
	}
	return ast.NewAssignmentExpression(pos, op, target, value)
}

// objectExpressionToPattern reinterprets an already-parsed object literal as
// a destructuring target, since `({a, b} = source)` parses `{a, b}` as an
// ObjectExpression before the parser knows it is on the left of `=`.
func objectExpressionToPattern(obj *ast.ObjectExpression) *ast.ObjectPattern {
	pat := ast.NewObjectPattern(obj.Pos())
	for _, prop := range obj.Properties {
		if prop.Spread {
			if id, ok := prop.Value.(*ast.Identifier); ok {
				pat.Rest = ast.NewRestElement(prop.Pos(), id)
			}
			continue
		}
		valuePattern := exprToBindingPattern(prop.Value)
		pat.Properties = append(pat.Properties, ast.NewObjectPatternProperty(prop.Pos(), prop.Key, valuePattern, prop.Computed))
	}
	return pat
}

func arrayExpressionToPattern(arr *ast.ArrayExpression) *ast.ArrayPattern {
	pat := ast.NewArrayPattern(arr.Pos())
	for _, el := range arr.Elements {
		if el == nil {
			pat.Elements = append(pat.Elements, nil)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			pat.Rest = ast.NewRestElement(spread.Pos(), exprToBindingPattern(spread.Argument))
			continue
		}
		pat.Elements = append(pat.Elements, exprToBindingPattern(el))
	}
	return pat
}

func exprToBindingPattern(e ast.Expression) ast.Pattern {
	switch v := e.(type) {
	case *ast.Identifier:
		return v
	case *ast.ObjectExpression:
		return objectExpressionToPattern(v)
	case *ast.ArrayExpression:
		return arrayExpressionToPattern(v)
	case ast.Pattern:
		return v
	default:
		return nil
	}
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	optional := p.curIs(token.OPT_CHAIN)
	p.nextToken()
	if optional && p.curIs(token.LPAREN) {
		// f?.(...) — optional call
		args := p.parseArgumentList(token.RPAREN)
		return ast.NewChainExpression(pos, ast.NewCallExpression(pos, object, args, true))
	}
	if optional && p.curIs(token.LBRACKET) {
		// o?.[expr] — optional computed member
		p.nextToken()
		prop := p.parseExpression(LOWEST)
		if !p.expect(token.RBRACKET) {
			return nil
		}
		return ast.NewChainExpression(pos, ast.NewMemberExpression(pos, object, prop, true, true))
	}
	prop := ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	me := ast.NewMemberExpression(pos, object, prop, false, optional)
	if optional {
		return ast.NewChainExpression(pos, me)
	}
	return me
}

func (p *Parser) parseComputedMemberExpression(object ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	prop := p.parseExpression(LOWEST)
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return ast.NewMemberExpression(pos, object, prop, true, false)
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	args := p.parseArgumentList(token.RPAREN)
	return ast.NewCallExpression(pos, callee, args, false)
}

func (p *Parser) parseArgumentList(end token.Type) []ast.Expression {
	var args []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return args
	}
	p.nextToken()
	for {
		if p.curIs(token.ELLIPSIS) {
			pos := p.curToken.Pos
			p.nextToken()
			args = append(args, ast.NewSpreadElement(pos, p.parseExpression(ASSIGNMENT)))
		} else {
			args = append(args, p.parseExpression(ASSIGNMENT))
		}
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	p.expect(end)
	return args
}

func (p *Parser) parseNewExpression() ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	callee := p.parseExpression(CALLMEMBER + 1)
	var args []ast.Expression
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		args = p.parseArgumentList(token.RPAREN)
	}
	return ast.NewNewExpression(pos, callee, args)
}

func (p *Parser) parseArrayExpression() ast.Expression {
	pos := p.curToken.Pos
	arr := ast.NewArrayExpression(pos)
	if p.peekIs(token.RBRACKET) {
		p.nextToken()
		return arr
	}
	p.nextToken()
	for {
		if p.curIs(token.COMMA) {
			arr.Elements = append(arr.Elements, nil)
			p.nextToken()
			continue
		}
		if p.curIs(token.RBRACKET) {
			break
		}
		if p.curIs(token.ELLIPSIS) {
			ePos := p.curToken.Pos
			p.nextToken()
			arr.Elements = append(arr.Elements, ast.NewSpreadElement(ePos, p.parseExpression(ASSIGNMENT)))
		} else {
			arr.Elements = append(arr.Elements, p.parseExpression(ASSIGNMENT))
		}
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken()
		break
	}
	if !p.curIs(token.RBRACKET) {
		p.errorf(p.curToken.Pos, "expected %s, got %s instead", token.RBRACKET, p.curToken.Type)
	}
	return arr
}

func (p *Parser) parseObjectExpression() ast.Expression {
	pos := p.curToken.Pos
	obj := ast.NewObjectExpression(pos)
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return obj
	}
	p.nextToken()
	for {
		propPos := p.curToken.Pos
		if p.curIs(token.ELLIPSIS) {
			p.nextToken()
			value := p.parseExpression(ASSIGNMENT)
			obj.Properties = append(obj.Properties, ast.NewProperty(propPos, nil, value, false, false, true))
		} else {
			computed := false
			var key ast.Expression
			if p.curIs(token.LBRACKET) {
				computed = true
				p.nextToken()
				key = p.parseExpression(LOWEST)
				p.expect(token.RBRACKET)
			} else {
				key = ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
			}
			if p.peekIs(token.COLON) {
				p.nextToken()
				p.nextToken()
				value := p.parseExpression(ASSIGNMENT)
				obj.Properties = append(obj.Properties, ast.NewProperty(propPos, key, value, computed, false, false))
			} else if p.peekIs(token.LPAREN) {
				// shorthand method: foo(...) { ... }
				params := p.parseParamList()
				body := p.parseBlockStatement()
				fn := ast.NewFunctionExpression(propPos, nil, params, body, false)
				obj.Properties = append(obj.Properties, ast.NewProperty(propPos, key, fn, computed, false, false))
			} else {
				id, _ := key.(*ast.Identifier)
				obj.Properties = append(obj.Properties, ast.NewProperty(propPos, key, id, computed, true, false))
			}
		}
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		p.nextToken()
		break
	}
	if !p.curIs(token.RBRACE) {
		p.errorf(p.curToken.Pos, "expected %s, got %s instead", token.RBRACE, p.curToken.Type)
	}
	return obj
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	pos := p.curToken.Pos
	tmpl := ast.NewTemplateLiteral(pos)
	p.nextToken() // move past opening backtick
	for {
		if p.curIs(token.TEMPLATE) {
			tmpl.Quasis = append(tmpl.Quasis, p.curToken.Literal)
			p.nextToken()
			continue
		}
		if p.curIs(token.DOLLAR_LBRACE) {
			// An empty text chunk before this expression gets no TEMPLATE
			// token; give it its slot so quasis and expressions stay aligned.
			if len(tmpl.Quasis) == len(tmpl.Expressions) {
				tmpl.Quasis = append(tmpl.Quasis, "")
			}
			p.nextToken()
			expr := p.parseExpression(LOWEST)
			tmpl.Expressions = append(tmpl.Expressions, expr)
			p.nextToken() // consumes whatever the lexer resumed with after '}'
			continue
		}
		if p.curIs(token.BACKTICK) {
			break
		}
		break
	}
	// Quasis must always have one more entry than Expressions.
	for len(tmpl.Quasis) <= len(tmpl.Expressions) {
		tmpl.Quasis = append(tmpl.Quasis, "")
	}
	return tmpl
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	pos := p.curToken.Pos
	var name *ast.Identifier
	if p.peekIs(token.IDENT) {
		p.nextToken()
		name = ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	}
	params := p.parseParamList()
	body := p.parseBlockStatement()
	return ast.NewFunctionExpression(pos, name, params, body, false)
}

func (p *Parser) parseAsyncPrefix() ast.Expression {
	pos := p.curToken.Pos
	if p.peekIs(token.FUNCTION) {
		p.nextToken()
		fn := p.parseFunctionExpression().(*ast.FunctionExpression)
		fn2 := ast.NewFunctionExpression(pos, fn.Name, fn.Params, fn.Body, true)
		return fn2
	}
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		return p.parseParenOrArrowAsync(true)
	}
	if p.peekIs(token.IDENT) {
		p.nextToken()
		paramPos := p.curToken.Pos
		param := ast.NewParam(paramPos, ast.NewIdentifier(paramPos, p.curToken.Literal), false)
		p.nextToken() // '=>'
		p.nextToken()
		return p.finishArrow(pos, []*ast.Param{param}, true)
	}
	p.errorf(p.peekToken.Pos, "expected 'function', '(' or identifier after 'async'")
	return nil
}

func (p *Parser) parseParenOrArrow() ast.Expression {
	return p.parseParenOrArrowAsync(false)
}

// parseParenOrArrowAsync disambiguates `(params) => body` from a grouped
// expression by speculatively trying to parse a parameter list; if that
// fails or isn't followed by `=>`, it rewinds and parses a normal
// parenthesized (possibly comma/sequence) expression instead.
func (p *Parser) parseParenOrArrowAsync(isAsync bool) ast.Expression {
	pos := p.curToken.Pos
	mark := p.checkpoint()
	errMark := len(p.errors)

	if params, ok := p.tryParseArrowParamList(); ok && p.peekIs(token.ARROW) {
		p.nextToken() // on '=>'
		p.nextToken() // on body start
		return p.finishArrow(pos, params, isAsync)
	}

	p.restore(mark, errMark)
	p.nextToken() // consume '('
	expr := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return nil
	}
	return expr
}

// tryParseArrowParamList attempts to parse curToken (a '(') through the
// matching ')' as a comma-separated parameter list. Returns ok=false if the
// contents don't look like a parameter list (bindings only).
func (p *Parser) tryParseArrowParamList() (params []*ast.Param, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	if !p.curIs(token.LPAREN) {
		return nil, false
	}
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return nil, true
	}
	p.nextToken()
	for {
		isRest := false
		if p.curIs(token.ELLIPSIS) {
			isRest = true
			p.nextToken()
		}
		switch p.curToken.Type {
		case token.IDENT:
			params = append(params, ast.NewParam(p.curToken.Pos, ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal), isRest))
		case token.LBRACE, token.LBRACKET:
			target := p.parseBindingTarget()
			params = append(params, ast.NewParam(p.curToken.Pos, target, isRest))
		default:
			return nil, false
		}
		if !p.peekIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.peekIs(token.RPAREN) {
		return nil, false
	}
	p.nextToken()
	return params, true
}

func (p *Parser) finishArrow(pos token.Position, params []*ast.Param, isAsync bool) ast.Expression {
	if p.curIs(token.LBRACE) {
		body := p.parseBlockStatement()
		return ast.NewArrowFunctionExpression(pos, params, body, nil, isAsync)
	}
	body := p.parseExpression(ASSIGNMENT)
	return ast.NewArrowFunctionExpression(pos, params, nil, body, isAsync)
}

func (p *Parser) parseClassExpression() ast.Expression {
	pos := p.curToken.Pos
	var name *ast.Identifier
	if p.peekIs(token.IDENT) {
		p.nextToken()
		name = ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	}
	var super ast.Expression
	if p.peekIs(token.EXTENDS) {
		p.nextToken()
		p.nextToken()
		super = p.parseExpression(CALLMEMBER)
	}
	body := p.parseClassBody()
	return ast.NewClassExpression(pos, name, super, body)
}
