package analytics

import "errors"

var (
	// ErrInvalidDate is returned when a malformed observation date is
	// rejected instead of dropped.
	ErrInvalidDate = errors.New("invalid observation date")

	// ErrInsufficientData is returned when a computation needs more
	// points than the input provides.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrZeroVariance is returned when correlation is undefined because
	// one input is constant over the overlap.
	ErrZeroVariance = errors.New("zero variance in input series")

	// ErrInvalidDistribution is returned when percentile anchors are
	// not monotonically non-decreasing.
	ErrInvalidDistribution = errors.New("invalid percentile distribution")
)
