package marshaler_test

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-namelist/ast"
	"github.com/KimNorgaard/go-namelist/internal/marshaler"
)

type Common struct {
	Zbase float64 `nml:"Zbase"`
}

type Controls struct {
	Common
	InitialMass float64    `nml:"initial_mass"`
	Steps       int        `nml:"max_model_number"`
	Stop        bool       `nml:"stop_near_zams,omitempty"`
	LogDir      string     `nml:"log_directory"`
	XCtrl       []float64  `nml:"x_ctrl"`
	Flags       [2]bool    `nml:"x_logical_ctrl"`
	Z           complex128 `nml:"z"`
	Extra       *int       `nml:"extra"`
	Raw         ast.Value  `nml:"raw"`
	Skipped     string     `nml:"-"`
	Empty       []int      `nml:"empty"`
	internal    int
}

type Inlist struct {
	StarJob  map[string]any `nml:"star_job"`
	Controls *Controls      `nml:"controls"`
	Missing  *Controls      `nml:"pgstar"`
}

func groupValues(t *testing.T, doc *ast.Document, name string) map[string]ast.Value {
	t.Helper()
	g, err := doc.Group(name)
	require.NoError(t, err)
	out := make(map[string]ast.Value, g.Len())
	for k, v := range g.All() {
		out[k] = v
	}
	return out
}

func TestDocument_Struct(t *testing.T) {
	in := Inlist{
		StarJob: map[string]any{
			"pgstar_flag":         true,
			"save_model_filename": "final.mod",
			"steps":               ast.List{ast.Integer(1), ast.Integer(2)},
		},
		Controls: &Controls{
			Common:      Common{Zbase: 0.02},
			InitialMass: 15,
			Steps:       100,
			LogDir:      "LOGS",
			XCtrl:       []float64{1.5, 0.25},
			Flags:       [2]bool{true, false},
			Z:           complex(1, -2),
			Raw:         ast.Text("as is"),
			Skipped:     "never",
			internal:    1,
		},
	}

	doc, err := marshaler.Document(in)
	require.NoError(t, err)
	require.Equal(t, []string{"star_job", "controls"}, doc.Names())

	sj, err := doc.Group("star_job")
	require.NoError(t, err)
	require.Equal(t, []string{"pgstar_flag", "save_model_filename", "steps"}, sj.Names())

	ctrl, err := doc.Group("controls")
	require.NoError(t, err)
	require.Equal(t, []string{
		"Zbase", "initial_mass", "max_model_number", "log_directory",
		"x_ctrl", "x_logical_ctrl", "z", "raw",
	}, ctrl.Names())

	expected := map[string]ast.Value{
		"Zbase":            ast.Real(0.02),
		"initial_mass":     ast.Real(15),
		"max_model_number": ast.Integer(100),
		"log_directory":    ast.Text("LOGS"),
		"x_ctrl":           ast.List{ast.Real(1.5), ast.Real(0.25)},
		"x_logical_ctrl":   ast.List{ast.Boolean(true), ast.Boolean(false)},
		"z":                ast.Complex{Re: 1, Im: -2},
		"raw":              ast.Text("as is"),
	}
	require.Empty(t, cmp.Diff(expected, groupValues(t, doc, "controls")))
}

func TestDocument_Map(t *testing.T) {
	extra := 3
	g := ast.NewGroup("ignored")
	g.Set("a", ast.Integer(1))

	doc, err := marshaler.Document(map[string]any{
		"b": map[string]*int{"extra": &extra, "none": nil},
		"a": g,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, doc.Names())
	require.Empty(t, cmp.Diff(map[string]ast.Value{"a": ast.Integer(1)}, groupValues(t, doc, "a")))
	require.Empty(t, cmp.Diff(map[string]ast.Value{"extra": ast.Integer(3)}, groupValues(t, doc, "b")))
}

func TestDocument_TextMarshaler(t *testing.T) {
	type Net struct {
		Addr netip.Addr `nml:"addr"`
	}
	doc, err := marshaler.Document(map[string]Net{"net": {Addr: netip.MustParseAddr("10.0.0.1")}})
	require.NoError(t, err)
	require.Equal(t, map[string]ast.Value{"addr": ast.Text("10.0.0.1")}, groupValues(t, doc, "net"))
}

func TestDocument_PassesDocumentThrough(t *testing.T) {
	src := ast.NewDocument()
	doc, err := marshaler.Document(src)
	require.NoError(t, err)
	require.Same(t, src, doc)
}

func TestDocument_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		input       any
		expectedErr string
	}{
		{
			name:        "Nil",
			input:       nil,
			expectedErr: "namelist: cannot marshal nil value",
		},
		{
			name:        "Nil Document",
			input:       (*ast.Document)(nil),
			expectedErr: "namelist: cannot marshal nil document",
		},
		{
			name:        "Scalar Document",
			input:       42,
			expectedErr: "namelist: cannot marshal document from Go value of type int",
		},
		{
			name:        "Non-String Keys",
			input:       map[int]any{1: nil},
			expectedErr: "namelist: cannot marshal document from map with non-string key type int",
		},
		{
			name:        "Scalar Group",
			input:       map[string]int{"g": 1},
			expectedErr: "namelist: cannot marshal group from Go value of type int",
		},
		{
			name:        "Nested Slice",
			input:       map[string]map[string][][]int{"g": {"x": {{1}}}},
			expectedErr: `namelist: cannot marshal [][]int: arrays hold scalars only (group "g", variable "x")`,
		},
		{
			name:        "Uint Overflow",
			input:       map[string]map[string]uint64{"g": {"x": 1 << 63}},
			expectedErr: `namelist: cannot marshal uint64 9223372036854775808 (overflows int64) (group "g", variable "x")`,
		},
		{
			name:        "Unsupported Type",
			input:       map[string]map[string]chan int{"g": {"x": make(chan int)}},
			expectedErr: `namelist: unsupported type for marshaling: chan int (group "g", variable "x")`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := marshaler.Document(tc.input)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}
