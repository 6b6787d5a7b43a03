package levelgen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for level numbers below 1 and for
	// tile budgets that cannot be split into pairs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSinkWrite marks a failure to persist an artifact or the summary table.
	ErrSinkWrite = errors.New("sink write failed")
)

// LevelError attaches the offending level number to an error.
type LevelError struct {
	Level int
	Op    string // "generate", "write", "summary", ...
	Err   error
}

func (e *LevelError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("level %d: %v", e.Level, e.Err)
	}
	return fmt.Sprintf("level %d: %s: %v", e.Level, e.Op, e.Err)
}

func (e *LevelError) Unwrap() error {
	return e.Err
}

// InvalidLevelf creates an invalid input error for a level.
func InvalidLevelf(level int, format string, args ...any) error {
	return &LevelError{
		Level: level,
		Op:    "generate",
		Err:   fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...)),
	}
}

// WrapSinkWrite wraps a write failure for a level as ErrSinkWrite.
func WrapSinkWrite(level int, op string, err error) error {
	return &LevelError{
		Level: level,
		Op:    op,
		Err:   fmt.Errorf("%w: %w", ErrSinkWrite, err),
	}
}

// FailedLevel reports the level number carried by err, if any.
func FailedLevel(err error) (int, bool) {
	var le *LevelError
	if errors.As(err, &le) {
		return le.Level, true
	}
	return 0, false
}
