package qddpm

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// Measurement collapse: the ancilla qubits (qubits 0..na-1, the
// leading amplitude-index bits) are measured in the computational
// basis, one outcome per sample, and the renormalized data-qubit
// state is returned. Ancilla outcome k owns the contiguous row
// [k*2^n, (k+1)*2^n) of the full amplitude vector.

const (
	probSumTol = 1e-4  // tolerance on outcome distributions summing to 1
	normEps    = 1e-12 // squared-norm floor below which collapse is degenerate
)

// MeasurementStrategy collapses the ancilla block of a full-register
// ensemble. Implementations must be interchangeable: given identical
// outcome draws they produce identical post-measurement states.
// Callers pick a strategy explicitly.
type MeasurementStrategy interface {
	// Measure returns the reduced data-qubit ensemble and the per-sample
	// ancilla outcomes, each in [0, 2^na). Sample order is preserved.
	Measure(e *Ensemble, dataQubits int, rng *rand.Rand) (*Ensemble, []int, error)
}

// GatherMeasurement is the general implementation for any number of
// ancillas: it builds the row-probability distribution, draws one
// outcome per sample and gathers the outcome-indexed row.
type GatherMeasurement struct{}

// SplitMeasurement is the one-ancilla specialization: the register
// splits into exactly two rows, so only the |0> row mass is summed.
type SplitMeasurement struct{}

// SequentialMeasurement measures the ancillas one qubit at a time per
// sample, renormalizing after each post-selection. Fallback for
// back-ends without a batched categorical primitive; behaviorally
// equivalent to GatherMeasurement.
type SequentialMeasurement struct{}

func (GatherMeasurement) Measure(e *Ensemble, dataQubits int, rng *rand.Rand) (*Ensemble, []int, error) {
	na := e.NumQubits - dataQubits
	if na < 0 {
		return nil, nil, &ShapeMismatchError{Op: "GatherMeasurement: data qubits", Want: e.NumQubits, Got: dataQubits}
	}
	if err := e.check("GatherMeasurement"); err != nil {
		return nil, nil, err
	}
	dataDim := 1 << dataQubits
	out := &Ensemble{States: make([]State, e.Len()), NumQubits: dataQubits}
	outcomes := make([]int, e.Len())
	for m, amps := range e.States {
		probs := make([]float64, 1<<na)
		for k := range probs {
			row := amps[k*dataDim : (k+1)*dataDim]
			for _, a := range row {
				probs[k] += real(a * cmplx.Conj(a))
			}
		}
		if err := checkDistribution(m, probs); err != nil {
			return nil, nil, err
		}
		k := drawCategorical(rng, probs)
		post, err := collapseRow(amps, dataDim, k, m)
		if err != nil {
			return nil, nil, err
		}
		out.States[m] = post
		outcomes[m] = k
	}
	return out, outcomes, nil
}

func (SplitMeasurement) Measure(e *Ensemble, dataQubits int, rng *rand.Rand) (*Ensemble, []int, error) {
	if e.NumQubits != dataQubits+1 {
		return nil, nil, &ShapeMismatchError{Op: "SplitMeasurement: needs exactly one ancilla", Want: dataQubits + 1, Got: e.NumQubits}
	}
	if err := e.check("SplitMeasurement"); err != nil {
		return nil, nil, err
	}
	dataDim := 1 << dataQubits
	out := &Ensemble{States: make([]State, e.Len()), NumQubits: dataQubits}
	outcomes := make([]int, e.Len())
	for m, amps := range e.States {
		p0 := 0.0
		for _, a := range amps[:dataDim] {
			p0 += real(a * cmplx.Conj(a))
		}
		p1 := 0.0
		for _, a := range amps[dataDim:] {
			p1 += real(a * cmplx.Conj(a))
		}
		if err := checkDistribution(m, []float64{p0, p1}); err != nil {
			return nil, nil, err
		}
		k := drawCategorical(rng, []float64{p0, p1})
		post, err := collapseRow(amps, dataDim, k, m)
		if err != nil {
			return nil, nil, err
		}
		out.States[m] = post
		outcomes[m] = k
	}
	return out, outcomes, nil
}

func (SequentialMeasurement) Measure(e *Ensemble, dataQubits int, rng *rand.Rand) (*Ensemble, []int, error) {
	na := e.NumQubits - dataQubits
	if na < 0 {
		return nil, nil, &ShapeMismatchError{Op: "SequentialMeasurement: data qubits", Want: e.NumQubits, Got: dataQubits}
	}
	if err := e.check("SequentialMeasurement"); err != nil {
		return nil, nil, err
	}
	dataDim := 1 << dataQubits
	out := &Ensemble{States: make([]State, e.Len()), NumQubits: dataQubits}
	outcomes := make([]int, e.Len())
	for m := range e.States {
		amps := make(State, len(e.States[m]))
		copy(amps, e.States[m])
		k := 0
		for q := 0; q < na; q++ {
			bit := bitOf(e.NumQubits, q)
			p0 := 0.0
			for i, a := range amps {
				if i&bit == 0 {
					p0 += real(a * cmplx.Conj(a))
				}
			}
			p1 := 0.0
			for i, a := range amps {
				if i&bit != 0 {
					p1 += real(a * cmplx.Conj(a))
				}
			}
			if err := checkDistribution(m, []float64{p0, p1}); err != nil {
				return nil, nil, err
			}
			b := drawCategorical(rng, []float64{p0, p1})
			if err := postSelect(amps, bit, b, m); err != nil {
				return nil, nil, err
			}
			k = k<<1 | b
		}
		post, err := collapseRow(amps, dataDim, k, m)
		if err != nil {
			return nil, nil, err
		}
		out.States[m] = post
		outcomes[m] = k
	}
	return out, outcomes, nil
}

func checkDistribution(sample int, probs []float64) error {
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > probSumTol {
		return &InvalidProbabilityError{Sample: sample, Sum: sum}
	}
	return nil
}

// drawCategorical samples an index from an (approximately normalized)
// distribution by inverse CDF. Floating residue falls into the last
// bucket.
func drawCategorical(rng *rand.Rand, probs []float64) int {
	r := rng.Float64()
	cum := 0.0
	for k, p := range probs {
		cum += p
		if r < cum {
			return k
		}
	}
	return len(probs) - 1
}

// collapseRow extracts ancilla-outcome row k and renormalizes it.
func collapseRow(amps State, dataDim, k, sample int) (State, error) {
	post := make(State, dataDim)
	copy(post, amps[k*dataDim:(k+1)*dataDim])
	sum := 0.0
	for _, a := range post {
		sum += real(a * cmplx.Conj(a))
	}
	if sum < normEps {
		return nil, &DegenerateMeasurementError{Sample: sample, Outcome: k, NormSq: sum}
	}
	norm := complex(math.Sqrt(sum), 0)
	for i := range post {
		post[i] /= norm
	}
	return post, nil
}

// postSelect projects one qubit onto outcome b and renormalizes, in
// place.
func postSelect(amps State, bit, b, sample int) error {
	sum := 0.0
	for i, a := range amps {
		if (i&bit != 0) == (b == 1) {
			sum += real(a * cmplx.Conj(a))
		} else {
			amps[i] = 0
		}
	}
	if sum < normEps {
		return &DegenerateMeasurementError{Sample: sample, Outcome: b, NormSq: sum}
	}
	norm := complex(math.Sqrt(sum), 0)
	for i := range amps {
		amps[i] /= norm
	}
	return nil
}
