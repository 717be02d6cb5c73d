package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrDataLoad      = errors.New("dataset load failed")
	ErrMissingColumn = fmt.Errorf("%w: missing column", ErrDataLoad)
	ErrNonNumeric    = fmt.Errorf("%w: non-numeric value", ErrDataLoad)

	// Model errors
	ErrModelFit         = errors.New("model fit failed")
	ErrInsufficientData = fmt.Errorf("%w: insufficient observations", ErrModelFit)
	ErrRankDeficient    = fmt.Errorf("%w: rank-deficient design", ErrModelFit)
	ErrSingular         = fmt.Errorf("%w: singular matrix", ErrModelFit)

	// Summary parsing errors
	ErrSummaryFormat = errors.New("multivariate summary format mismatch")
	ErrRowShape      = errors.New("malformed summary row")
)

// Error constructors with context
func NewDataLoadError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataLoad, source, err)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w %q", ErrMissingColumn, column)
}

func NewNonNumericError(column string, row int, raw string) error {
	return fmt.Errorf("%w in column %q row %d: %q", ErrNonNumeric, column, row, raw)
}

func NewModelFitError(target string, err error) error {
	if errors.Is(err, ErrModelFit) {
		return fmt.Errorf("fit %s: %w", target, err)
	}
	return fmt.Errorf("%w for %s: %w", ErrModelFit, target, err)
}

func NewSummaryFormatError(reason string) error {
	return fmt.Errorf("%w: %s", ErrSummaryFormat, reason)
}

func NewRowShapeError(line string, tokens int) error {
	return fmt.Errorf("%w: %d tokens in %q", ErrRowShape, tokens, line)
}

// Error checking helpers
func IsDataLoadError(err error) bool {
	return errors.Is(err, ErrDataLoad)
}

func IsModelFitError(err error) bool {
	return errors.Is(err, ErrModelFit)
}

func IsSummaryFormatError(err error) bool {
	return errors.Is(err, ErrSummaryFormat)
}

func IsRowShapeError(err error) bool {
	return errors.Is(err, ErrRowShape)
}
