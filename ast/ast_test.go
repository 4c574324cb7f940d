package ast

import (
	"errors"
	"math"
	"testing"

	nmlerrors "github.com/KimNorgaard/go-namelist/errors"
	"github.com/stretchr/testify/require"
)

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"Integer", Integer(42), "42"},
		{"Negative Integer", Integer(-7), "-7"},
		{"Real", Real(150), "1.50d+02"},
		{"Small Real", Real(-0.00123), "-1.23d-03"},
		{"Zero Real", Real(0), "0.00d+00"},
		{"Large Exponent", Real(1e100), "1.00d+100"},
		{"Near Max", Real(1.79e308), "1.79d+308"},
		{"Max Float", Real(math.MaxFloat64), "1.79d+308"},
		{"Min Float", Real(-math.MaxFloat64), "-1.79d+308"},
		{"True", Boolean(true), ".true."},
		{"False", Boolean(false), ".false."},
		{"Text", Text("hi there"), "'hi there'"},
		{"Empty Text", Text(""), "''"},
		{"Text With Apostrophe", Text("don't"), `"don't"`},
		{"Complex", Complex{Re: 1, Im: -2.5}, "(1.00d+00,-2.50d+00)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := FormatScalar(tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.expected, actual)
		})
	}
}

func TestFormatScalar_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"List", List{Integer(1)}},
		{"Nil", nil},
		{"NaN", Real(math.NaN())},
		{"Inf", Real(math.Inf(1))},
		{"Complex Inf", Complex{Re: 1, Im: math.Inf(-1)}},
		{"Both Quotes", Text(`it's "quoted"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormatScalar(tt.value)
			require.Error(t, err)
		})
	}
}

func TestKind(t *testing.T) {
	require.Equal(t, KindInteger, Integer(1).Kind())
	require.Equal(t, KindReal, Real(1).Kind())
	require.Equal(t, KindBoolean, Boolean(true).Kind())
	require.Equal(t, KindText, Text("x").Kind())
	require.Equal(t, KindComplex, Complex{}.Kind())
	require.Equal(t, KindList, List{}.Kind())
	require.Equal(t, "complex", KindComplex.String())
	require.Equal(t, "Kind(42)", Kind(42).String())
}

func TestListString(t *testing.T) {
	l := List{Integer(1), Real(2), Text("a b")}
	require.Equal(t, "1 2.00d+00 'a b'", l.String())
}

func TestGroup(t *testing.T) {
	g := NewGroup("controls")
	g.Set("b", Integer(1))
	g.Set("a", Integer(2))
	g.Set("b", Integer(3))

	require.Equal(t, []string{"b", "a"}, g.Names())
	require.Equal(t, 2, g.Len())
	require.True(t, g.Has("a"))
	require.False(t, g.Has("A"), "lookups do not fold case")

	v, err := g.Get("b")
	require.NoError(t, err)
	require.Equal(t, Integer(3), v)

	_, err = g.Get("missing")
	require.ErrorIs(t, err, nmlerrors.ErrNotFound)
	require.EqualError(t, err, `namelist: variable "missing" not found`)

	var names []string
	for name := range g.All() {
		names = append(names, name)
		break
	}
	require.Equal(t, []string{"b"}, names)
}

func TestDocument(t *testing.T) {
	doc := NewDocument()
	star := NewGroup("star_job")
	star.Set("pgstar_flag", Boolean(true))
	controls := NewGroup("controls")
	controls.Set("initial_mass", Real(15))
	controls.Set("x_ctrl(3)", Real(1))

	require.NoError(t, doc.Add(star))
	require.NoError(t, doc.Add(controls))
	require.Error(t, doc.Add(NewGroup("controls")), "group names are unique")

	require.Equal(t, []string{"star_job", "controls"}, doc.Names())
	require.Equal(t, 2, doc.Len())

	g, err := doc.Group("controls")
	require.NoError(t, err)
	require.Same(t, controls, g)

	_, err = doc.Group("pgstar")
	require.True(t, errors.Is(err, nmlerrors.ErrNotFound))

	v, err := doc.Lookup("controls.initial_mass")
	require.NoError(t, err)
	require.Equal(t, Real(15), v)

	_, err = doc.Lookup("controls.final_mass")
	require.ErrorIs(t, err, nmlerrors.ErrNotFound)
	_, err = doc.Lookup("binary_controls.m1")
	require.ErrorIs(t, err, nmlerrors.ErrNotFound)
	_, err = doc.Lookup("initial_mass")
	require.Error(t, err)
	require.NotErrorIs(t, err, nmlerrors.ErrNotFound)

	require.Equal(t, []string{"pgstar_flag", "initial_mass", "x_ctrl(3)"}, doc.VariableNames())
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"x(3)":          "x",
		"x_ctrl(12)":    "x_ctrl",
		"initial_mass":  "initial_mass",
		"x()":           "x()",
		"x(a)":          "x(a)",
		"(3)":           "(3)",
		"x(1,2)":        "x(1,2)",
		"x(3) ":         "x(3) ",
		"xa_central(1)": "xa_central",
	}
	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			require.Equal(t, expected, BaseName(input))
		})
	}
}
