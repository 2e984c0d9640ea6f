package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSourceUnavailable marks a network or parse failure while loading the dataset.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrUnknownColumn is returned when a column name is not part of the dataset schema.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrInsufficientData is returned when a statistic needs more records or variance than it got.
	ErrInsufficientData = errors.New("insufficient data")
)

// SourceError wraps the cause of a failed load. It matches ErrSourceUnavailable under errors.Is.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSourceUnavailable, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is reports ErrSourceUnavailable as a match.
func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }

func sourceUnavailable(source string, err error) error {
	return &SourceError{Source: source, Err: err}
}

func unknownColumn(column string) error {
	return errors.Wrapf(ErrUnknownColumn, "column %q", column)
}
