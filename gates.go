package qddpm

import (
	"math"
	"math/cmplx"
)

// Per-state gate kernels. Each kernel evolves one amplitude vector in
// place; the bit arguments are precomputed qubit masks (see bitOf).
// Pairs (i, i|bit) are disjoint, so the updates are done without a
// scratch vector.

func applyRX(amps State, bit int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range amps {
		if i&bit == 0 {
			j := i | bit
			ai, aj := amps[i], amps[j]
			amps[i] = c*ai + js*aj
			amps[j] = js*ai + c*aj
		}
	}
}

func applyRY(amps State, bit int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	s_ := complex(math.Sin(theta/2), 0)
	for i := range amps {
		if i&bit == 0 {
			j := i | bit
			ai, aj := amps[i], amps[j]
			amps[i] = c*ai - s_*aj
			amps[j] = s_*ai + c*aj
		}
	}
}

func applyRZ(amps State, bit int, theta float64) {
	phase := cmplx.Exp(complex(0, theta/2))
	conj := cmplx.Conj(phase)
	for i := range amps {
		if i&bit != 0 {
			amps[i] *= phase
		} else {
			amps[i] *= conj
		}
	}
}

// applyRZZ implements exp(-i theta/2 Z⊗Z): basis states where the two
// bits agree pick up e^{-i theta/2}, disagreeing ones e^{+i theta/2}.
func applyRZZ(amps State, bit1, bit2 int, theta float64) {
	phase := cmplx.Exp(complex(0, theta/2))
	conj := cmplx.Conj(phase)
	for i := range amps {
		if (i&bit1 != 0) == (i&bit2 != 0) {
			amps[i] *= conj
		} else {
			amps[i] *= phase
		}
	}
}

// applyCZ flips the phase of basis states with both qubits set.
func applyCZ(amps State, bit1, bit2 int) {
	for i := range amps {
		if i&bit1 != 0 && i&bit2 != 0 {
			amps[i] *= -1
		}
	}
}

// Ensemble-level gates apply a shared angle to every sample. These are
// the batched primitives used by the denoise ansatz, where one
// parameter vector drives the whole batch.

// ApplyRX rotates qubit q of every sample about the X axis by theta.
func (e *Ensemble) ApplyRX(q int, theta float64) {
	bit := bitOf(e.NumQubits, q)
	for _, s := range e.States {
		applyRX(s, bit, theta)
	}
}

// ApplyRY rotates qubit q of every sample about the Y axis by theta.
func (e *Ensemble) ApplyRY(q int, theta float64) {
	bit := bitOf(e.NumQubits, q)
	for _, s := range e.States {
		applyRY(s, bit, theta)
	}
}

// ApplyRZ rotates qubit q of every sample about the Z axis by theta.
func (e *Ensemble) ApplyRZ(q int, theta float64) {
	bit := bitOf(e.NumQubits, q)
	for _, s := range e.States {
		applyRZ(s, bit, theta)
	}
}

// ApplyCZ applies a controlled-Z between q1 and q2 on every sample.
func (e *Ensemble) ApplyCZ(q1, q2 int) {
	bit1 := bitOf(e.NumQubits, q1)
	bit2 := bitOf(e.NumQubits, q2)
	for _, s := range e.States {
		applyCZ(s, bit1, bit2)
	}
}

// ApplyRZZ applies the ZZ entangling rotation between q1 and q2 on
// every sample.
func (e *Ensemble) ApplyRZZ(q1, q2 int, theta float64) {
	bit1 := bitOf(e.NumQubits, q1)
	bit2 := bitOf(e.NumQubits, q2)
	for _, s := range e.States {
		applyRZZ(s, bit1, bit2, theta)
	}
}
