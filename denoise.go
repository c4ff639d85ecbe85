package qddpm

// DenoiseCircuit is the hardware-efficient ansatz applied during the
// backward process: L layers, each a fixed-angle RX/RY bias followed
// by two trained rotations per qubit, then a brick pattern of CZ
// gates on (2i, 2i+1) and (2i+1, 2i+2) neighbors. One parameter
// vector drives the entire batch; there is no data-dependent
// branching anywhere in the circuit.
type DenoiseCircuit struct {
	NumQubits int // full register, data + ancilla
	Layers    int
}

// Fixed bias angles preceding the trained rotations. Structural
// constants of the ansatz, not trainable.
const (
	biasRX = 0.3
	biasRY = 0.1
)

// NumParams returns the length of the trained parameter vector:
// two angles per qubit per layer.
func (c DenoiseCircuit) NumParams() int {
	return 2 * c.NumQubits * c.Layers
}

// Apply runs the ansatz over the batch and returns the evolved
// full-register ensemble. The input is not mutated.
func (c DenoiseCircuit) Apply(e *Ensemble, params []float64) (*Ensemble, error) {
	if e.NumQubits != c.NumQubits {
		return nil, &ShapeMismatchError{Op: "DenoiseCircuit: register size", Want: c.NumQubits, Got: e.NumQubits}
	}
	if err := e.check("DenoiseCircuit"); err != nil {
		return nil, err
	}
	if len(params) != c.NumParams() {
		return nil, &ShapeMismatchError{Op: "DenoiseCircuit: params", Want: c.NumParams(), Got: len(params)}
	}

	out := e.Clone()
	nt := c.NumQubits
	for l := 0; l < c.Layers; l++ {
		for q := 0; q < nt; q++ {
			out.ApplyRX(q, biasRX)
			out.ApplyRY(q, biasRY)
			p := 2 * (l*nt + q)
			out.ApplyRX(q, params[p])
			out.ApplyRY(q, params[p+1])
		}
		for i := 0; 2*i+1 < nt; i++ {
			out.ApplyCZ(2*i, 2*i+1)
		}
		for i := 0; 2*i+2 < nt; i++ {
			out.ApplyCZ(2*i+1, 2*i+2)
		}
	}
	return out, nil
}
