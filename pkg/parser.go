package cheer

import "fmt"

var (
	equalityOps = map[TokenType]BinaryOp{
		TokenEqual:    BinaryEqual,
		TokenNotEqual: BinaryNotEqual,
	}

	comparisonOps = map[TokenType]BinaryOp{
		TokenGreater:      BinaryGreater,
		TokenGreaterEqual: BinaryGreaterEqual,
		TokenLess:         BinaryLess,
		TokenLessEqual:    BinaryLessEqual,
	}

	additiveOps = map[TokenType]BinaryOp{
		TokenPlus:  BinaryAddition,
		TokenMinus: BinarySubtraction,
	}

	multiplicativeOps = map[TokenType]BinaryOp{
		TokenMulti: BinaryMultiplication,
	}
)

// Parser builds a single expression tree out of a token slice. The tree keeps
// pointers into the slice, so the slice must outlive it.
type Parser struct {
	tokens []Token
	pos    int
	eof    Token
}

func NewParser(tokens []Token) *Parser {
	eof := Token{Typ: TokenEOF, Loc: &Location{Line: 1, Col: 1}}
	if len(tokens) > 0 {
		eof.Loc = tokens[len(tokens)-1].Loc
	}

	return &Parser{
		tokens: tokens,
		eof:    eof,
	}
}

// Parse is a shorthand for NewParser(tokens).Run().
func Parse(tokens []Token) (Expr, error) {
	return NewParser(tokens).Run()
}

// Run parses one expression and requires it to span every token.
func (p *Parser) Run() (Expr, error) {
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Typ != TokenEOF {
		return nil, p.errorf(tok, "tokens remain after program, found '%s'", tok.Value)
	}

	return expr, nil
}

func (p *Parser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return &p.eof
	}

	return &p.tokens[p.pos]
}

func (p *Parser) next() *Token {
	tok := p.peek()
	if tok.Typ != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType, what string) (*Token, error) {
	if tok := p.peek(); tok.Typ != typ {
		return nil, p.unexpected(tok, what)
	}

	return p.next(), nil
}

func (p *Parser) unexpected(tok *Token, what string) error {
	if tok.Typ == TokenEOF {
		return p.errorf(tok, "unexpected end of input, expected %s", what)
	}

	return p.errorf(tok, "expected %s, found '%s'", what, tok.Value)
}

func (p *Parser) errorf(tok *Token, format string, args ...interface{}) error {
	return &ParseError{Loc: tok.Loc, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expr() (Expr, error) {
	if p.check(TokenIf) {
		return p.ifExpr()
	}

	return p.equalityExpr()
}

func (p *Parser) ifExpr() (Expr, error) {
	tok := p.next() // if keyword

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	then, err := p.blockExpr()
	if err != nil {
		return nil, err
	}

	node := &IfExpr{Tok: tok, Cond: cond, Then: then}
	if !p.check(TokenElse) {
		return node, nil
	}

	p.next() // Skip else

	node.Else, err = p.blockExpr()
	if err != nil {
		return nil, err
	}

	return node, nil
}

func (p *Parser) blockExpr() (Expr, error) {
	if _, err := p.expect(TokenOpenCurly, "'{'"); err != nil {
		return nil, err
	}

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseCurly, "'}'"); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *Parser) equalityExpr() (Expr, error) {
	return p.binaryExpr(p.comparisonExpr, equalityOps)
}

func (p *Parser) comparisonExpr() (Expr, error) {
	return p.binaryExpr(p.additiveExpr, comparisonOps)
}

func (p *Parser) additiveExpr() (Expr, error) {
	return p.binaryExpr(p.multiplicativeExpr, additiveOps)
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	return p.binaryExpr(p.unaryExpr, multiplicativeOps)
}

// binaryExpr parses one left-associative precedence level. Chained operands
// (for example 1 - 3 + 1) nest to the left.
func (p *Parser) binaryExpr(operand func() (Expr, error), ops map[TokenType]BinaryOp) (Expr, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		op, ok := ops[tok.Typ]
		if !ok {
			return lhs, nil
		}

		p.next()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Tok:       tok,
			Operation: op,
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) unaryExpr() (Expr, error) {
	if !p.check(TokenMinus) {
		return p.primary()
	}

	tok := p.next()

	operand, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	return &UnaryExpr{
		Tok:       tok,
		Operation: UnaryNegative,
		Operand:   operand,
	}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenNumber:
		p.next()
		return &LiteralExpr{
			Tok:   tok,
			Typ:   LiteralNumber,
			Value: tok.Value,
		}, nil
	default:
		return nil, p.unexpected(tok, "primary expression")
	}
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	open := p.next()

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "')'"); err != nil {
		return nil, err
	}

	return &GroupingExpr{Tok: open, Operand: expr}, nil
}
