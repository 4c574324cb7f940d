package namelist

import (
	"reflect"

	nmlerrors "github.com/KimNorgaard/go-namelist/errors"
)

// Error kinds, re-exported from the errors package for convenience.
var (
	ErrSyntax            = nmlerrors.ErrSyntax
	ErrMalformedLiteral  = nmlerrors.ErrMalformedLiteral
	ErrInconsistentIndex = nmlerrors.ErrInconsistentIndex
	ErrNotFound          = nmlerrors.ErrNotFound
)

// An UnmarshalerError represents an error from calling an
// UnmarshalNamelist method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "namelist: error calling UnmarshalNamelist for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
