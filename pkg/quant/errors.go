package quant

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrNoMatchingGenes = errors.New("no matching genes found between count data and annotation file")

// ParseError reports a malformed input table.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

// NormalizationError reports a sample whose per-sample total is zero, which
// would otherwise turn the expression values into NaN or infinity.
type NormalizationError struct {
	Sample string
	// Quantity names the zero total, either "raw count" or "RPK".
	Quantity string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("sample %s has a zero %s total, expression values are undefined", e.Sample, e.Quantity)
}
