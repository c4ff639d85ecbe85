package qddpm

import "fmt"

// ShapeMismatchError reports ensemble or parameter dimensions that are
// inconsistent with the declared register sizes. Nothing is ever
// silently broadcast.
type ShapeMismatchError struct {
	Op   string
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: want %d, got %d", e.Op, e.Want, e.Got)
}

// DegenerateMeasurementError reports a post-measurement state whose
// norm is numerically zero, so it cannot be renormalized. Callers may
// retry the sample with a fresh draw; the core never does.
type DegenerateMeasurementError struct {
	Sample  int
	Outcome int
	NormSq  float64
}

func (e *DegenerateMeasurementError) Error() string {
	return fmt.Sprintf("measurement: sample %d outcome %d has norm² %.3g, cannot renormalize",
		e.Sample, e.Outcome, e.NormSq)
}

// InvalidProbabilityError reports an outcome distribution that does
// not sum to 1 within tolerance. This always indicates an upstream
// normalization bug.
type InvalidProbabilityError struct {
	Sample int
	Sum    float64
}

func (e *InvalidProbabilityError) Error() string {
	return fmt.Sprintf("measurement: sample %d outcome probabilities sum to %.9f", e.Sample, e.Sum)
}

// CostMatrixRangeError reports a Wasserstein cost entry outside [0,1],
// which can only happen if an input state was not normalized.
type CostMatrixRangeError struct {
	Row, Col int
	Value    float64
}

func (e *CostMatrixRangeError) Error() string {
	return fmt.Sprintf("wasserstein: cost[%d][%d] = %.9f outside [0,1]", e.Row, e.Col, e.Value)
}
