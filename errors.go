package ronfmt

import (
	"reflect"

	"github.com/KimNorgaard/go-ronfmt/internal/formatter"
)

// ErrMaxDepth is returned when a document nests deeper than MaxDepth allows
// while formatting or decoding.
var ErrMaxDepth = formatter.ErrMaxDepth

// An UnmarshalerError represents an error from calling an UnmarshalRON or
// UnmarshalText method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "ronfmt: error calling unmarshaler for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
