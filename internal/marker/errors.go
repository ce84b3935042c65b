package marker

import "errors"

// Fatal per-source conditions. Both abort the current source only; a caller
// walking multiple sources continues with the next one.
var (
	// ErrLineTooLong is reported when a line exceeds the configured maximum length.
	ErrLineTooLong = errors.New("line exceeds maximum length")
	// ErrInvalidEncoding is reported when a line is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid text encoding")
)
