/*
Package namelist reads and writes Fortran-90 namelist files, the
"&group ... /" blocks used to configure scientific codes such as MESA.

A namelist file holds one or more groups. Each group is a list of
assignments:

	&controls
	   initial_mass = 1.0d0         ! in Msun
	   which_atm_option = 'simple_photosphere'
	   use_gold_tolerances = .true.
	   x_ctrl(1) = 0.5
	   x_ctrl(2) = 1.5d-3
	   mixing_lengths = 1.5 1.8, 2.0
	/

1. Working with documents

Parse turns namelist text into an *ast.Document: an ordered set of groups,
each an ordered set of variables. Values are one of ast.Integer, ast.Real,
ast.Boolean, ast.Text, ast.Complex or ast.List. Indexed assignments such as
x_ctrl(2) are collected into an ast.List ordered by index.

	doc, err := namelist.Parse(data)
	if err != nil {
		// handle error
	}
	mass, err := doc.Lookup("controls.initial_mass")
	if errors.Is(err, namelist.ErrNotFound) {
		// no such group or variable
	}

A group that appears more than once is stored under its name followed by a
counter: the second "&controls" becomes "controls0", the third "controls1".

2. Writing documents

Marshal writes one group back as namelist text; MarshalDocument and Encoder
write every group. Reals are written with a two digit mantissa and a d
exponent (1.50d+02). Arrays are written inline by default; pass
InlineArrays(false) for one indexed assignment per element.

	out, err := namelist.Marshal(doc, "controls", namelist.InlineArrays(false))

3. Decoding into Go values

Unmarshal maps groups and variables onto structs or maps, matching names
through the "nml" struct tag, the exact field name or, failing that, the
name without regard to case.

	type Inlist struct {
		Controls struct {
			InitialMass float64   `nml:"initial_mass"`
			XCtrl       []float64 `nml:"x_ctrl"`
		} `nml:"controls"`
	}

	var in Inlist
	err := namelist.Unmarshal(data, &in)

DocumentOf and MarshalValue go the other way and build a document from a Go
value of the same shape. Nil pointers and empty slices are left out, as are
zero values of fields tagged omitempty.

	out, err := namelist.MarshalValue(in)

Parse errors are returned as an errors.ParseErrors holding every problem
found. Each one unwraps to ErrSyntax, ErrMalformedLiteral or
ErrInconsistentIndex.
*/
package namelist
