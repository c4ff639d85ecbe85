package qddpm

import (
	"math/rand/v2"
)

// Stream constants keep the per-purpose PCG streams disjoint for a
// shared user seed.
const (
	haarStream      = 0x9e3779b97f4a7c15
	diffusionStream = 0x2545f4914f6cdd1d
	measureStream   = 0xd1342543de82ef95
)

func newRNG(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// HaarSample draws count Haar-random pure states of numQubits qubits.
// A vector of i.i.d. standard complex Gaussians, normalized, is
// distributed as the first column of a Haar unitary.
func HaarSample(numQubits, count int, seed uint64) *Ensemble {
	rng := newRNG(seed, haarStream)
	dim := 1 << numQubits
	e := &Ensemble{States: make([]State, count), NumQubits: numQubits}
	for m := range e.States {
		amps := make(State, dim)
		for i := range amps {
			amps[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
		norm := complex(amps.Norm(), 0)
		for i := range amps {
			amps[i] /= norm
		}
		e.States[m] = amps
	}
	return e
}

// uniformAngles fills a slice with count draws of lo + U(0,1)*span,
// each multiplied by scale.
func uniformAngles(rng *rand.Rand, count int, lo, span, scale float64) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = (lo + rng.Float64()*span) * scale
	}
	return out
}
