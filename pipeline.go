package qddpm

import "math/rand/v2"

// Pipeline orchestrates the backward denoise process over steps
// t = T, T-1, ..., 0. Each transition applies the denoise ansatz to
// the full data+ancilla register (ancillas freshly zeroed), then
// collapses the ancillas, leaving the data-qubit ensemble for the
// next step. Every method is a pure function of its arguments; no
// step state lives on the struct.
type Pipeline struct {
	DataQubits    int // n
	AncillaQubits int // na
	Steps         int // T
	Circuit       DenoiseCircuit
	Strategy      MeasurementStrategy
}

// NewPipeline builds a pipeline with the gather measurement strategy.
func NewPipeline(n, na, T, L int) *Pipeline {
	return &Pipeline{
		DataQubits:    n,
		AncillaQubits: na,
		Steps:         T,
		Circuit:       DenoiseCircuit{NumQubits: n + na, Layers: L},
		Strategy:      GatherMeasurement{},
	}
}

// HaarInput draws the t=T input ensemble on the data qubits.
func (p *Pipeline) HaarInput(count int, seed uint64) *Ensemble {
	return HaarSample(p.DataQubits, count, seed)
}

// assembleFull embeds a data-qubit ensemble into the full register
// with all ancillas in |0...0>. Ancillas are the leading index bits,
// so the data amplitudes occupy the leading 2^n entries.
func (p *Pipeline) assembleFull(reduced *Ensemble) *Ensemble {
	full := NewZeroEnsemble(p.DataQubits+p.AncillaQubits, reduced.Len())
	for m, s := range reduced.States {
		copy(full.States[m][:len(s)], s)
	}
	return full
}

func (p *Pipeline) checkParams(params [][]float64) error {
	if len(params) != p.Steps {
		return &ShapeMismatchError{Op: "Pipeline: parameter table", Want: p.Steps, Got: len(params)}
	}
	return nil
}

// DenoiseStep performs one t -> t-1 transition: assemble the full
// register, run the ansatz with the step's parameters, collapse the
// ancillas. Input and output are reduced data-qubit ensembles.
func (p *Pipeline) DenoiseStep(reduced *Ensemble, params []float64, rng *rand.Rand) (*Ensemble, error) {
	if reduced.NumQubits != p.DataQubits {
		return nil, &ShapeMismatchError{Op: "DenoiseStep: data register", Want: p.DataQubits, Got: reduced.NumQubits}
	}
	full, err := p.Circuit.Apply(p.assembleFull(reduced), params)
	if err != nil {
		return nil, err
	}
	out, _, err := p.Strategy.Measure(full, p.DataQubits, rng)
	return out, err
}

// Trajectory generates the full denoising trajectory from the t=T
// input. The result has T+1 reduced ensembles indexed by step, so
// result[0] is the fully denoised ensemble and result[T] the input.
func (p *Pipeline) Trajectory(inputsT *Ensemble, params [][]float64, seed uint64) ([]*Ensemble, error) {
	if err := p.checkParams(params); err != nil {
		return nil, err
	}
	rng := newRNG(seed, measureStream)
	states := make([]*Ensemble, p.Steps+1)
	states[p.Steps] = inputsT.Clone()
	for t := p.Steps - 1; t >= 0; t-- {
		next, err := p.DenoiseStep(states[t+1], params[t], rng)
		if err != nil {
			return nil, err
		}
		states[t] = next
	}
	return states, nil
}

// PrepareInput runs only steps T-1 ... t+1 and returns the assembled
// full register that feeds the ansatz at step t. This builds the
// training batch for step t without ever running steps at or below t.
func (p *Pipeline) PrepareInput(inputsT *Ensemble, params [][]float64, t int, seed uint64) (*Ensemble, error) {
	if err := p.checkParams(params); err != nil {
		return nil, err
	}
	if t < 0 || t >= p.Steps {
		return nil, &ShapeMismatchError{Op: "PrepareInput: step", Want: p.Steps - 1, Got: t}
	}
	rng := newRNG(seed, measureStream)
	cur := inputsT
	for tt := p.Steps - 1; tt > t; tt-- {
		next, err := p.DenoiseStep(cur, params[tt], rng)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return p.assembleFull(cur), nil
}
