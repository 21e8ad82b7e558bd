package cheer

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type stateFunc func(l *Lexer) stateFunc

const EOF rune = -1

// Lexer turns source text into tokens. A Lexer is single use: create a new one
// for every compilation.
type Lexer struct {
	reader *bufio.Reader
	tokens []Token
	err    *ScanError

	line  int
	col   int
	start *Location
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		line:   1,
	}
}

// Scan tokenizes source in one call.
func Scan(source string) ([]Token, error) {
	return NewLexer(strings.NewReader(source)).Run()
}

// Run consumes the whole input. It stops at the first unrecognized character
// and returns no tokens in that case.
func (l *Lexer) Run() ([]Token, error) {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return nil
		case r == ' ' || r == '\t' || r == '\n':
			l.next()
			continue
		case r == '0':
			return zeroState
		case '1' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	l.mark()

	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emitValue(TokenNumber, num.String())
}

// A zero is a complete literal on its own.
func zeroState(l *Lexer) stateFunc {
	l.mark()
	l.next()

	if isDigit(l.peek()) {
		return l.errorf("leading zeros in integer literals are not permitted")
	}

	return l.emitValue(TokenNumber, "0")
}

func identifierState(l *Lexer) stateFunc {
	l.mark()

	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsNumber(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emitValue(t, id.String())
	}

	return l.emitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	l.mark()

	r := l.next()
	if next := l.peek(); next != EOF {
		op := string(r) + string(next)
		if tok, ok := operatorTable[op]; ok {
			l.next()
			return l.emitValue(tok, op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emitValue(tok, string(r))
	}

	return l.errorf("unrecognized input '%c'", r)
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.err = newScanError(l.start, format, args...)
	return nil
}

func (l *Lexer) emitValue(t TokenType, val string) stateFunc {
	l.tokens = append(l.tokens, Token{
		Typ:   t,
		Value: val,
		Loc:   l.start,
	})

	return defaultState
}

// mark records the position of the next rune as the start of a token.
func (l *Lexer) mark() {
	l.start = &Location{Line: l.line, Col: l.col + 1}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
