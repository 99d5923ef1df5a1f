package errors

import "errors"

var (
	ErrInvalidCharacter = errors.New("invalid character in export string")
	ErrTooShort         = errors.New("export string too short")
	ErrSpecMismatch     = errors.New("cannot compare builds of different specializations")

	ErrTopologyNotFound = errors.New("talent topology not found")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInternal         = errors.New("internal error")
)

// IsBuildError reports whether err is one of the failures a caller should
// show to the user as a bad export string or bad comparison.
func IsBuildError(err error) bool {
	return errors.Is(err, ErrInvalidCharacter) ||
		errors.Is(err, ErrTooShort) ||
		errors.Is(err, ErrSpecMismatch)
}
