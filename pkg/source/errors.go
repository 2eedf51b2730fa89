package source

import "errors"

var (
	// ErrInvalidDocument is returned when a translation document cannot
	// be read or parsed. An absent document is not an error.
	ErrInvalidDocument = errors.New("source: invalid translation document")

	// ErrNilFS is returned when a source is constructed without a filesystem.
	ErrNilFS = errors.New("source: filesystem cannot be nil")

	// ErrEmptyDir is returned when a directory source is constructed with
	// an empty path.
	ErrEmptyDir = errors.New("source: directory cannot be empty")
)
