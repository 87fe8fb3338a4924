package ast

import "github.com/cwbudde/ember/internal/token"

// This file collects constructor functions for every node kind so that
// internal/parser never has to reach into unexported fields.

func NewExpressionStatement(pos token.Position, e Expression) *ExpressionStatement {
	return &ExpressionStatement{base: base{pos}, Expr: e}
}

func NewBlockStatement(pos token.Position) *BlockStatement {
	return &BlockStatement{base: base{pos}}
}

func NewVariableDeclaration(pos token.Position, kind string) *VariableDeclaration {
	return &VariableDeclaration{base: base{pos}, Kind: kind}
}

func NewVariableDeclarator(target Pattern, init Expression) *VariableDeclarator {
	pos := token.Position{}
	if target != nil {
		pos = target.Pos()
	}
	return &VariableDeclarator{base: base{pos}, Target: target, Init: init}
}

func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{base: base{pos}, Name: name}
}

func NewObjectPattern(pos token.Position) *ObjectPattern {
	return &ObjectPattern{base: base{pos}}
}

func NewObjectPatternProperty(pos token.Position, key Expression, value Pattern, computed bool) *ObjectPatternProperty {
	return &ObjectPatternProperty{base: base{pos}, Key: key, Value: value, Computed: computed}
}

func NewRestElement(pos token.Position, target Pattern) *RestElement {
	return &RestElement{base: base{pos}, Argument: target}
}

func NewArrayPattern(pos token.Position) *ArrayPattern {
	return &ArrayPattern{base: base{pos}}
}

func NewFunctionDeclaration(pos token.Position, name *Identifier, params []*Param, body *BlockStatement, isAsync bool) *FunctionDeclaration {
	return &FunctionDeclaration{base: base{pos}, Name: name, Params: params, Body: body, IsAsync: isAsync}
}

func NewParam(pos token.Position, target Pattern, isRest bool) *Param {
	return &Param{base: base{pos}, Target: target, IsRest: isRest}
}

func NewClassDeclaration(pos token.Position, name *Identifier, super Expression, body []*MethodDefinition) *ClassDeclaration {
	return &ClassDeclaration{base: base{pos}, Name: name, SuperClass: super, Body: body}
}

func NewMethodDefinition(pos token.Position, key *Identifier, fn *FunctionExpression, kind MethodKind, static bool) *MethodDefinition {
	return &MethodDefinition{base: base{pos}, Key: key, Function: fn, Kind: kind, Static: static}
}

func NewFunctionExpression(pos token.Position, name *Identifier, params []*Param, body *BlockStatement, isAsync bool) *FunctionExpression {
	return &FunctionExpression{base: base{pos}, Name: name, Params: params, Body: body, IsAsync: isAsync}
}

func NewReturnStatement(pos token.Position, arg Expression) *ReturnStatement {
	return &ReturnStatement{base: base{pos}, Argument: arg}
}

func NewBreakStatement(pos token.Position, label string) *BreakStatement {
	return &BreakStatement{base: base{pos}, Label: label}
}

func NewContinueStatement(pos token.Position, label string) *ContinueStatement {
	return &ContinueStatement{base: base{pos}, Label: label}
}

func NewThrowStatement(pos token.Position, arg Expression) *ThrowStatement {
	return &ThrowStatement{base: base{pos}, Argument: arg}
}

func NewIfStatement(pos token.Position, test Expression, cons, alt Statement) *IfStatement {
	return &IfStatement{base: base{pos}, Test: test, Consequent: cons, Alternate: alt}
}

func NewWhileStatement(pos token.Position, test Expression, body Statement) *WhileStatement {
	return &WhileStatement{base: base{pos}, Test: test, Body: body}
}

func NewForInStatement(pos token.Position, left Pattern, kind string, right Expression, body Statement) *ForInStatement {
	return &ForInStatement{base: base{pos}, Left: left, LeftKind: kind, Right: right, Body: body}
}

func NewForOfStatement(pos token.Position, left Pattern, kind string, right Expression, body Statement) *ForOfStatement {
	return &ForOfStatement{base: base{pos}, Left: left, LeftKind: kind, Right: right, Body: body}
}

func NewForStatement(pos token.Position, init Node, test, update Expression, body Statement) *ForStatement {
	return &ForStatement{base: base{pos}, Init: init, Test: test, Update: update, Body: body}
}

func NewSwitchStatement(pos token.Position, discriminant Expression) *SwitchStatement {
	return &SwitchStatement{base: base{pos}, Discriminant: discriminant}
}

func NewSwitchCase(pos token.Position, test Expression, body []Statement) *SwitchCase {
	return &SwitchCase{base: base{pos}, Test: test, Consequent: body}
}

func NewTryStatement(pos token.Position, block *BlockStatement) *TryStatement {
	return &TryStatement{base: base{pos}, Block: block}
}

func NewCatchClause(pos token.Position, param *Identifier, body *BlockStatement) *CatchClause {
	return &CatchClause{base: base{pos}, Param: param, Body: body}
}

func NewLabeledStatement(pos token.Position, label string, body Statement) *LabeledStatement {
	return &LabeledStatement{base: base{pos}, Label: label, Body: body}
}

// ---- expressions ----

func NewNumberLiteral(pos token.Position, n float64) *Literal {
	return &Literal{base: base{pos}, Kind: LitNumber, Num: n}
}

func NewStringLiteral(pos token.Position, s string) *Literal {
	return &Literal{base: base{pos}, Kind: LitString, Str: s}
}

func NewBoolLiteral(pos token.Position, b bool) *Literal {
	return &Literal{base: base{pos}, Kind: LitBool, Bool: b}
}

func NewNullLiteral(pos token.Position) *Literal {
	return &Literal{base: base{pos}, Kind: LitNull}
}

func NewUndefinedLiteral(pos token.Position) *Literal {
	return &Literal{base: base{pos}, Kind: LitUndefined}
}

func NewThisExpression(pos token.Position) *ThisExpression { return &ThisExpression{base{pos}} }
func NewSuperExpression(pos token.Position) *Super         { return &Super{base{pos}} }

func NewUnaryExpression(pos token.Position, op string, arg Expression) *UnaryExpression {
	return &UnaryExpression{base: base{pos}, Operator: op, Argument: arg}
}

func NewUpdateExpression(pos token.Position, op string, arg Expression, prefix bool) *UpdateExpression {
	return &UpdateExpression{base: base{pos}, Operator: op, Argument: arg, Prefix: prefix}
}

func NewBinaryExpression(pos token.Position, op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{base: base{pos}, Operator: op, Left: left, Right: right}
}

func NewLogicalExpression(pos token.Position, op string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{base: base{pos}, Operator: op, Left: left, Right: right}
}

func NewMemberExpression(pos token.Position, obj Expression, prop Expression, computed, optional bool) *MemberExpression {
	return &MemberExpression{base: base{pos}, Object: obj, Property: prop, Computed: computed, Optional: optional}
}

func NewCallExpression(pos token.Position, callee Expression, args []Expression, optional bool) *CallExpression {
	return &CallExpression{base: base{pos}, Callee: callee, Arguments: args, Optional: optional}
}

func NewNewExpression(pos token.Position, callee Expression, args []Expression) *NewExpression {
	return &NewExpression{base: base{pos}, Callee: callee, Arguments: args}
}

func NewAssignmentExpression(pos token.Position, op string, target Node, value Expression) *AssignmentExpression {
	return &AssignmentExpression{base: base{pos}, Operator: op, Target: target, Value: value}
}

func NewSpreadElement(pos token.Position, arg Expression) *SpreadElement {
	return &SpreadElement{base: base{pos}, Argument: arg}
}

func NewArrayExpression(pos token.Position) *ArrayExpression {
	return &ArrayExpression{base: base{pos}}
}

func NewProperty(pos token.Position, key, value Expression, computed, shorthand, spread bool) *Property {
	return &Property{base: base{pos}, Key: key, Value: value, Computed: computed, Shorthand: shorthand, Spread: spread}
}

func NewObjectExpression(pos token.Position) *ObjectExpression {
	return &ObjectExpression{base: base{pos}}
}

func NewTemplateLiteral(pos token.Position) *TemplateLiteral {
	return &TemplateLiteral{base: base{pos}}
}

func NewConditionalExpression(pos token.Position, test, cons, alt Expression) *ConditionalExpression {
	return &ConditionalExpression{base: base{pos}, Test: test, Consequent: cons, Alternate: alt}
}

func NewSequenceExpression(pos token.Position, exprs []Expression) *SequenceExpression {
	return &SequenceExpression{base: base{pos}, Expressions: exprs}
}

func NewChainExpression(pos token.Position, e Expression) *ChainExpression {
	return &ChainExpression{base: base{pos}, Expression: e}
}

func NewAwaitExpression(pos token.Position, arg Expression) *AwaitExpression {
	return &AwaitExpression{base: base{pos}, Argument: arg}
}

func NewArrowFunctionExpression(pos token.Position, params []*Param, body *BlockStatement, exprBody Expression, isAsync bool) *ArrowFunctionExpression {
	return &ArrowFunctionExpression{base: base{pos}, Params: params, Body: body, ExprBody: exprBody, IsAsync: isAsync}
}

func NewClassExpression(pos token.Position, name *Identifier, super Expression, body []*MethodDefinition) *ClassExpression {
	return &ClassExpression{base: base{pos}, Name: name, SuperClass: super, Body: body}
}
