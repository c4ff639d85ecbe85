package qddpm

import (
	"math"
	"math/cmplx"
)

type Complex = complex128

// State is a dense complex amplitude vector over a qubit register.
// A register of k qubits has dimension 1<<k. Qubit 0 owns the most
// significant bit of the amplitude index, so the ancilla block of a
// (na data-leading) register occupies the leading rows of the
// (1<<na, 1<<n) row-major view used by measurement.
type State []Complex

// Ensemble is an ordered batch of pure states over the same register.
// The batch dimension is always outermost.
type Ensemble struct {
	States    []State
	NumQubits int
}

// Dim returns the state dimension of the register, 2^NumQubits.
func (e *Ensemble) Dim() int { return 1 << e.NumQubits }

// Len returns the number of samples in the ensemble.
func (e *Ensemble) Len() int { return len(e.States) }

// NewBasisEnsemble builds count copies of the all-zeros basis state.
func NewBasisEnsemble(numQubits, count int) *Ensemble {
	e := &Ensemble{States: make([]State, count), NumQubits: numQubits}
	for m := range e.States {
		amps := make(State, 1<<numQubits)
		amps[0] = 1
		e.States[m] = amps
	}
	return e
}

// NewZeroEnsemble builds count all-zero (unnormalized) amplitude vectors.
// Used as assembly buffers before data amplitudes are copied in.
func NewZeroEnsemble(numQubits, count int) *Ensemble {
	e := &Ensemble{States: make([]State, count), NumQubits: numQubits}
	for m := range e.States {
		e.States[m] = make(State, 1<<numQubits)
	}
	return e
}

// Clone returns a deep copy sharing no amplitude storage.
func (e *Ensemble) Clone() *Ensemble {
	out := &Ensemble{States: make([]State, len(e.States)), NumQubits: e.NumQubits}
	for m, s := range e.States {
		amps := make(State, len(s))
		copy(amps, s)
		out.States[m] = amps
	}
	return out
}

// Norm returns the L2 norm of the state.
func (s State) Norm() float64 {
	sum := 0.0
	for _, a := range s {
		sum += real(a * cmplx.Conj(a))
	}
	return math.Sqrt(sum)
}

// check verifies every sample has the declared register dimension.
func (e *Ensemble) check(op string) error {
	dim := e.Dim()
	for _, s := range e.States {
		if len(s) != dim {
			return &ShapeMismatchError{Op: op, Want: dim, Got: len(s)}
		}
	}
	return nil
}

// bitOf returns the amplitude-index mask of qubit q. Qubit 0 is the
// most significant bit.
func bitOf(numQubits, q int) int {
	return 1 << (numQubits - 1 - q)
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns, per qubit, the probability of measuring
// |0> and |1> averaged over the whole ensemble.
func (e *Ensemble) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, e.NumQubits)
	if len(e.States) == 0 {
		return probs
	}
	for _, s := range e.States {
		for i, a := range s {
			p := real(a * cmplx.Conj(a))
			for q := 0; q < e.NumQubits; q++ {
				if i&bitOf(e.NumQubits, q) != 0 {
					probs[q].Prob1 += p
				} else {
					probs[q].Prob0 += p
				}
			}
		}
	}
	inv := 1.0 / float64(len(e.States))
	for q := range probs {
		probs[q].Prob0 *= inv
		probs[q].Prob1 *= inv
	}
	return probs
}
