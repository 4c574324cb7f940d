package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInteger Kind = iota
	KindReal
	KindBoolean
	KindText
	KindComplex
	KindList
)

var kindNames = [...]string{
	KindInteger: "integer",
	KindReal:    "real",
	KindBoolean: "boolean",
	KindText:    "text",
	KindComplex: "complex",
	KindList:    "list",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is a single namelist value. The set of implementations is closed:
// Integer, Real, Boolean, Text, Complex and List.
type Value interface {
	// Kind reports which variant the value is.
	Kind() Kind
	// String returns the namelist literal for the value.
	String() string
	value()
}

// Integer is a namelist integer literal such as 42 or -7.
type Integer int64

// Real is a namelist real literal such as 1.5, 2e3 or 1.5d2.
type Real float64

// Boolean is a namelist logical literal (.true., .false., T or F).
type Boolean bool

// Text is a quoted character literal with the quotes removed.
type Text string

// Complex is a namelist complex literal (re,im).
type Complex struct {
	Re float64
	Im float64
}

// List is an array value. Elements are never lists themselves.
type List []Value

func (Integer) Kind() Kind { return KindInteger }
func (Real) Kind() Kind    { return KindReal }
func (Boolean) Kind() Kind { return KindBoolean }
func (Text) Kind() Kind    { return KindText }
func (Complex) Kind() Kind { return KindComplex }
func (List) Kind() Kind    { return KindList }

func (Integer) value() {}
func (Real) value()    {}
func (Boolean) value() {}
func (Text) value()    {}
func (Complex) value() {}
func (List) value()    {}

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }
func (r Real) String() string    { return formatReal(float64(r)) }

func (b Boolean) String() string {
	if b {
		return ".true."
	}
	return ".false."
}

func (t Text) String() string {
	if strings.ContainsRune(string(t), '\'') {
		return `"` + string(t) + `"`
	}
	return "'" + string(t) + "'"
}

func (c Complex) String() string {
	return "(" + formatReal(c.Re) + "," + formatReal(c.Im) + ")"
}

// String joins the element literals with single spaces, which is the
// inline array form.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// maxLiteral is the largest magnitude whose two digit form still parses;
// anything above rounds to 1.80d+308.
const maxLiteral = 1.795e308

// formatReal writes f with a two digit mantissa and a Fortran d exponent.
// Finite values beyond maxLiteral are written as the largest literal of
// their sign.
func formatReal(f float64) string {
	if !math.IsInf(f, 0) && math.Abs(f) >= maxLiteral {
		f = math.Copysign(1.79e308, f)
	}
	return strings.Replace(strconv.FormatFloat(f, 'e', 2, 64), "e", "d", 1)
}

// FormatScalar returns the namelist literal for a scalar value. Lists have
// no scalar form and are rejected, as are values that cannot be read back:
// non-finite reals and text holding both quote characters.
func FormatScalar(v Value) (string, error) {
	switch val := v.(type) {
	case Integer, Boolean:
		return val.String(), nil
	case Real:
		if !isFinite(float64(val)) {
			return "", fmt.Errorf("namelist: cannot format non-finite real %v", float64(val))
		}
		return val.String(), nil
	case Complex:
		if !isFinite(val.Re) || !isFinite(val.Im) {
			return "", fmt.Errorf("namelist: cannot format non-finite complex (%v,%v)", val.Re, val.Im)
		}
		return val.String(), nil
	case Text:
		if strings.ContainsRune(string(val), '\'') && strings.ContainsRune(string(val), '"') {
			return "", fmt.Errorf("namelist: cannot format text containing both quote characters: %s", string(val))
		}
		return val.String(), nil
	case List:
		return "", fmt.Errorf("namelist: a list has no scalar form")
	case nil:
		return "", fmt.Errorf("namelist: cannot format nil value")
	default:
		return "", fmt.Errorf("namelist: unsupported value type %T", v)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
