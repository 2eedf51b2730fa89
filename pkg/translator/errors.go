package translator

import "errors"

var (
	// ErrNoSource is returned when neither a directory nor a filesystem
	// is configured for the primary translation source.
	ErrNoSource = errors.New("translator: no translation source configured")

	// ErrNilFS is returned when a filesystem option receives nil.
	ErrNilFS = errors.New("translator: source filesystem cannot be nil")

	// ErrEmptyDir is returned when a directory option receives an empty path.
	ErrEmptyDir = errors.New("translator: source directory cannot be empty")

	// ErrNilCache is returned when WithCache receives nil.
	ErrNilCache = errors.New("translator: cache cannot be nil")

	// ErrNilLogger is returned when WithLogger receives nil.
	ErrNilLogger = errors.New("translator: logger cannot be nil")
)
