package domain

import "errors"

// ErrorKind classifies failures of the palette pipeline.
type ErrorKind int

const (
	KindPatternExtraction ErrorKind = iota + 1
	KindInterpolation
	KindCollection
	KindPaletteGeneration
	KindColor
)

func (k ErrorKind) String() string {
	switch k {
	case KindPatternExtraction:
		return "pattern extraction"
	case KindInterpolation:
		return "interpolation"
	case KindCollection:
		return "collection"
	case KindPaletteGeneration:
		return "palette generation"
	case KindColor:
		return "color"
	default:
		return "unknown"
	}
}

// Error carries a kind, a human readable message and an optional cause.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// NewError builds an *Error. cause may be nil.
func NewError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
