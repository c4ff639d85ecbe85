package qddpm

import "math"

// Forward diffusion scrambles a data ensemble toward the Haar
// distribution with t layers of randomized rotations. Each layer
// applies a per-sample RZ·RY·RZ Euler triple to every qubit and, for
// registers of two or more qubits, one homogeneous ZZ entangling
// rotation over every qubit pair. The per-step hyperparameter diffHs
// scales the rotation amplitudes, so later steps scramble harder.
//
// Layer s draws its angles from a PCG stream derived from (seed, s).
// Two diffusions sharing a seed therefore evolve identically through
// their common prefix of layers, whatever their targets t.

const (
	phiLo, phiSpan = -math.Pi / 8, math.Pi / 4
	entLo, entSpan = 0.4, 0.2
)

// ForwardDiffuse returns the ensemble diffused through step t. The
// input is never mutated; t=0 returns a fresh copy of the data.
func ForwardDiffuse(data *Ensemble, t int, diffHs []float64, seed uint64) (*Ensemble, error) {
	if err := data.check("ForwardDiffuse"); err != nil {
		return nil, err
	}
	if t < 0 || t > len(diffHs) {
		return nil, &ShapeMismatchError{Op: "ForwardDiffuse: step out of schedule", Want: len(diffHs), Got: t}
	}
	out := data.Clone()
	for s := 0; s < t; s++ {
		diffusionStep(out, s, diffHs[s], seed)
	}
	return out, nil
}

// diffusionStep applies layer s in place. Angle draw order is fixed:
// all single-qubit triples first (one row of 3n angles per sample),
// then one entangling angle per sample.
func diffusionStep(e *Ensemble, s int, h float64, seed uint64) {
	rng := newRNG(seed, diffusionStream+uint64(s))
	n := e.NumQubits

	phis := make([][]float64, e.Len())
	for m := range phis {
		phis[m] = uniformAngles(rng, 3*n, phiLo, phiSpan, h)
	}
	var gs []float64
	if n >= 2 {
		gs = uniformAngles(rng, e.Len(), entLo, entSpan, h)
	}

	for m, amps := range e.States {
		row := phis[m]
		for q := 0; q < n; q++ {
			bit := bitOf(n, q)
			applyRZ(amps, bit, row[q])
			applyRY(amps, bit, row[n+q])
			applyRZ(amps, bit, row[2*n+q])
		}
		if n >= 2 {
			// Entangling strength shrinks as 1/(2√n) so it stays
			// bounded as the register grows.
			theta := gs[m] / (2 * math.Sqrt(float64(n)))
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					applyRZZ(amps, bitOf(n, i), bitOf(n, j), theta)
				}
			}
		}
	}
}
