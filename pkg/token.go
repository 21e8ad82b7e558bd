package cheer

import "fmt"

type TokenType uint64

const (
	// TokenError is the zero value. Scan never returns it; failures are
	// reported as a *ScanError instead.
	TokenError TokenType = iota
	// TokenEOF is what the parser sees past the last token.
	TokenEOF
	TokenNumber

	TokenIdentifier
	TokenIf
	TokenElse

	TokenPlus
	TokenMinus
	TokenMulti
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly

	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual
	TokenAssign
	TokenEqual
	TokenBang
	TokenNotEqual
)

var tokenNames = map[TokenType]string{
	TokenError:            "Error",
	TokenEOF:              "EOF",
	TokenNumber:           "Number",
	TokenIdentifier:       "Identifier",
	TokenIf:               "If",
	TokenElse:             "Else",
	TokenPlus:             "Plus",
	TokenMinus:            "Minus",
	TokenMulti:            "Multi",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
	TokenOpenCurly:        "OpenCurly",
	TokenCloseCurly:       "CloseCurly",
	TokenGreater:          "Greater",
	TokenGreaterEqual:     "GreaterEqual",
	TokenLess:             "Less",
	TokenLessEqual:        "LessEqual",
	TokenAssign:           "Assign",
	TokenEqual:            "Equal",
	TokenBang:             "Bang",
	TokenNotEqual:         "NotEqual",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var keywordTable = map[string]TokenType{
	"if":   TokenIf,
	"else": TokenElse,
}

var operatorTable = map[string]TokenType{
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMulti,
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	"=":  TokenAssign,
	"==": TokenEqual,
	"!":  TokenBang,
	"!=": TokenNotEqual,
}

// Location is a 1-based position in the source text.
type Location struct {
	Line int
	Col  int
}

func (l *Location) String() string {
	if l == nil {
		return "-"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Loc, t.Typ, t.Value)
}
