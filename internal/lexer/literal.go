package lexer

import (
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/internal/token"
)

var exponentReplacer = strings.NewReplacer("d", "e", "D", "E")

// Classify returns the literal class of s. The forms are tried in a fixed
// order and the first match wins: integer, real, complex, logical, quoted
// string. ILLEGAL means s is not a single literal.
func Classify(s string) token.Type {
	if typ, ok := ParseAsNumber(s); ok {
		return typ
	}
	if _, _, ok := splitComplex(s); ok {
		return token.COMPLEX
	}
	if _, ok := token.LookupLogical(s); ok {
		return token.LOGICAL
	}
	if isQuoted(s, '\'') || isQuoted(s, '"') {
		return token.STRING
	}
	return token.ILLEGAL
}

// ParseScalar converts a single literal into a value. The boolean result is
// false when s matches no scalar form, which callers treat as a cue to read
// s as an inline array instead.
func ParseScalar(s string) (ast.Value, bool) {
	switch Classify(s) {
	case token.INT:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ast.Integer(i), true
		}
		// Out of int64 range: fall back to a real.
		f, ok := parseReal(s)
		if !ok {
			return nil, false
		}
		return ast.Real(f), true
	case token.REAL:
		f, ok := parseReal(s)
		if !ok {
			return nil, false
		}
		return ast.Real(f), true
	case token.COMPLEX:
		re, im, _ := splitComplex(s)
		a, okA := parseReal(re)
		b, okB := parseReal(im)
		if !okA || !okB {
			return nil, false
		}
		return ast.Complex{Re: a, Im: b}, true
	case token.LOGICAL:
		b, _ := token.LookupLogical(s)
		return ast.Boolean(b), true
	case token.STRING:
		return ast.Text(s[1 : len(s)-1]), true
	default:
		return nil, false
	}
}

func parseReal(s string) (float64, bool) {
	f, err := strconv.ParseFloat(exponentReplacer.Replace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// splitComplex splits "(re,im)" into its two parts. Both parts must be
// numeric literals.
func splitComplex(s string) (re, im string, ok bool) {
	if len(s) < 5 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", "", false
	}
	re, im, found := strings.Cut(s[1:len(s)-1], ",")
	if !found {
		return "", "", false
	}
	re, im = strings.TrimSpace(re), strings.TrimSpace(im)
	if _, ok := ParseAsNumber(re); !ok {
		return "", "", false
	}
	if _, ok := ParseAsNumber(im); !ok {
		return "", "", false
	}
	return re, im, true
}

// isQuoted reports whether s is wrapped in q and holds no other q.
func isQuoted(s string, q byte) bool {
	return len(s) >= 2 && s[0] == q && s[len(s)-1] == q && strings.Count(s, string(q)) == 2
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isExponentMarker(ch byte) bool {
	return ch == 'e' || ch == 'E' || ch == 'd' || ch == 'D'
}

func consumeDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func parseFractionalPart(s string, i int) (newIndex int, isReal bool) {
	if i >= len(s) || s[i] != '.' {
		return i, false
	}
	i++ // Consume '.'.
	return consumeDigits(s, i), true
}

func parseExponentPart(s string, i int) (newIndex int, ok bool, isReal bool) {
	if i >= len(s) || !isExponentMarker(s[i]) {
		return i, true, false
	}
	i++ // Consume the exponent marker.
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	exponentStart := i
	i = consumeDigits(s, i)
	if i == exponentStart {
		return i, false, true // No digits in exponent.
	}
	return i, true, true
}

// ParseAsNumber reports whether s is a decimal integer (token.INT) or a real
// (token.REAL) literal. Reals may use e, E, d or D as the exponent marker.
func ParseAsNumber(s string) (token.Type, bool) {
	if len(s) == 0 {
		return token.ILLEGAL, false
	}
	i := 0

	// Optional sign.
	if s[i] == '-' || s[i] == '+' {
		i++
	}

	// Integer part, possibly empty as in ".5".
	intStart := i
	i = consumeDigits(s, i)
	digits := i - intStart

	fracStart := i
	i, isReal := parseFractionalPart(s, i)
	if isReal {
		digits += i - fracStart - 1
	}
	if digits == 0 {
		return token.ILLEGAL, false
	}

	var ok, expIsReal bool
	i, ok, expIsReal = parseExponentPart(s, i)
	if !ok {
		return token.ILLEGAL, false
	}

	// Must consume the whole string.
	if i != len(s) {
		return token.ILLEGAL, false
	}

	if isReal || expIsReal {
		return token.REAL, true
	}
	return token.INT, true
}
