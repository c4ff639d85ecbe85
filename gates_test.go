package qddpm

import (
	"math"
	"math/cmplx"
	"testing"
)

func statesClose(t *testing.T, got, want State, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dimension mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if cmplx.Abs(got[i]-want[i]) > tol {
			t.Fatalf("amplitude %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGatesPreserveNorm(t *testing.T) {
	e := HaarSample(3, 5, 7)
	e.ApplyRX(0, 0.7)
	e.ApplyRY(1, -1.3)
	e.ApplyRZ(2, 2.1)
	e.ApplyCZ(0, 2)
	e.ApplyRZZ(1, 2, 0.4)
	for m, s := range e.States {
		if math.Abs(s.Norm()-1) > 1e-6 {
			t.Errorf("sample %d: norm %.9f after gate sequence", m, s.Norm())
		}
	}
}

func TestRotationsMatchHandComputed(t *testing.T) {
	theta := 0.9
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)

	e := NewBasisEnsemble(1, 1)
	e.ApplyRX(0, theta)
	statesClose(t, e.States[0], State{complex(c, 0), complex(0, -s)}, 1e-12)

	e = NewBasisEnsemble(1, 1)
	e.ApplyRY(0, theta)
	statesClose(t, e.States[0], State{complex(c, 0), complex(s, 0)}, 1e-12)

	e = NewBasisEnsemble(1, 1)
	e.ApplyRZ(0, theta)
	statesClose(t, e.States[0], State{cmplx.Exp(complex(0, -theta/2)), 0}, 1e-12)
}

func TestCZFlipsOnlyBothOnes(t *testing.T) {
	e := &Ensemble{NumQubits: 2, States: []State{{0.5, 0.5, 0.5, 0.5}}}
	e.ApplyCZ(0, 1)
	statesClose(t, e.States[0], State{0.5, 0.5, 0.5, -0.5}, 1e-12)
}

func TestRZZPhasesByParity(t *testing.T) {
	theta := 0.6
	minus := cmplx.Exp(complex(0, -theta/2))
	plus := cmplx.Exp(complex(0, theta/2))

	e := &Ensemble{NumQubits: 2, States: []State{{0.5, 0.5, 0.5, 0.5}}}
	e.ApplyRZZ(0, 1, theta)
	want := State{0.5 * minus, 0.5 * plus, 0.5 * plus, 0.5 * minus}
	statesClose(t, e.States[0], want, 1e-12)
}

func TestCloneIsIndependent(t *testing.T) {
	e := NewBasisEnsemble(2, 2)
	c := e.Clone()
	c.States[0][0] = 0
	c.States[0][3] = 1
	if e.States[0][0] != 1 || e.States[0][3] != 0 {
		t.Fatal("mutating a clone leaked into the original ensemble")
	}
}

func TestQubitProbabilitiesBasis(t *testing.T) {
	e := NewBasisEnsemble(2, 4)
	for q, pr := range e.QubitProbabilities() {
		if math.Abs(pr.Prob0-1) > 1e-12 || math.Abs(pr.Prob1) > 1e-12 {
			t.Errorf("qubit %d: expected P0=1, got P0=%.6f P1=%.6f", q, pr.Prob0, pr.Prob1)
		}
	}
}
