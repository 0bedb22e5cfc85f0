package domain

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is returned when the log database cannot be opened.
var ErrStoreUnavailable = errors.New("log store unavailable")

// ParseError reports a log row whose timestamp could not be parsed.
type ParseError struct {
	RowID int64
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: malformed timestamp %q: %v", e.RowID, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
