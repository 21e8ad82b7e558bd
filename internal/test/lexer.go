package test

import (
	"math/rand"
	"strconv"
	"strings"
)

const validTokens = "if;else;(;);{;};+;-;*;>;>=;<;<=;=;==;!;!=;0;7;42;123456789;identifier;únicódeIdentifier;\n"

// GetRandomTokens returns size random tokens, not necessarily forming a
// valid program.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomIntExpr returns a random well typed integer expression nested
// at most depth levels deep.
func GetRandomIntExpr(r *rand.Rand, depth int) string {
	if depth <= 0 {
		return strconv.Itoa(r.Intn(10))
	}

	switch r.Intn(6) {
	case 0:
		return "-" + GetRandomIntExpr(r, depth-1)
	case 1:
		return "(" + GetRandomIntExpr(r, depth-1) + ")"
	case 2:
		return "(if " + getRandomBoolExpr(r, depth-1) + " { " + GetRandomIntExpr(r, depth-1) +
			" } else { " + GetRandomIntExpr(r, depth-1) + " })"
	default:
		ops := []string{"+", "-", "*"}
		return "(" + GetRandomIntExpr(r, depth-1) + " " + ops[r.Intn(len(ops))] + " " +
			GetRandomIntExpr(r, depth-1) + ")"
	}
}

func getRandomBoolExpr(r *rand.Rand, depth int) string {
	ops := []string{">", ">=", "<", "<=", "==", "!="}
	return GetRandomIntExpr(r, depth) + " " + ops[r.Intn(len(ops))] + " " + GetRandomIntExpr(r, depth)
}
