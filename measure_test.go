package qddpm

import (
	"errors"
	"math"
	"testing"
)

func TestGatherSplitEquivalence(t *testing.T) {
	// One ancilla: the general gather implementation and the two-branch
	// specialization must agree bitwise when fed identical draws.
	full := HaarSample(3, 16, 77)

	rgA := newRNG(5, measureStream)
	rgB := newRNG(5, measureStream)
	gotA, outA, err := GatherMeasurement{}.Measure(full, 2, rgA)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	gotB, outB, err := SplitMeasurement{}.Measure(full, 2, rgB)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	for m := range gotA.States {
		if outA[m] != outB[m] {
			t.Fatalf("sample %d: outcomes differ: gather %d, split %d", m, outA[m], outB[m])
		}
		statesClose(t, gotA.States[m], gotB.States[m], 0)
	}
}

func TestSequentialMatchesGatherOnForcedOutcome(t *testing.T) {
	// A state whose ancilla is exactly |1> leaves only one possible
	// outcome, so all strategies must produce the same collapse.
	data := HaarSample(2, 6, 3)
	full := NewZeroEnsemble(3, data.Len())
	for m, s := range data.States {
		copy(full.States[m][4:], s) // ancilla bit set: row 1 of the (2,4) view
	}

	seq, outS, err := SequentialMeasurement{}.Measure(full, 2, newRNG(1, measureStream))
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	gat, outG, err := GatherMeasurement{}.Measure(full, 2, newRNG(2, measureStream))
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for m := range seq.States {
		if outS[m] != 1 || outG[m] != 1 {
			t.Fatalf("sample %d: expected forced outcome 1, got seq %d gather %d", m, outS[m], outG[m])
		}
		statesClose(t, seq.States[m], gat.States[m], 1e-9)
	}
}

func TestMeasureRenormalizes(t *testing.T) {
	full := HaarSample(4, 10, 19)
	for _, strat := range []MeasurementStrategy{GatherMeasurement{}, SequentialMeasurement{}} {
		out, outcomes, err := strat.Measure(full, 2, newRNG(9, measureStream))
		if err != nil {
			t.Fatalf("%T: %v", strat, err)
		}
		for m, s := range out.States {
			if math.Abs(s.Norm()-1) > 1e-6 {
				t.Errorf("%T sample %d: norm %.9f", strat, m, s.Norm())
			}
			if outcomes[m] < 0 || outcomes[m] >= 4 {
				t.Errorf("%T sample %d: outcome %d out of range", strat, m, outcomes[m])
			}
		}
	}
}

func TestMeasureRejectsUnnormalizedState(t *testing.T) {
	full := &Ensemble{NumQubits: 2, States: []State{{1, 0, 1, 0}}} // norm² = 2
	_, _, err := GatherMeasurement{}.Measure(full, 1, newRNG(0, measureStream))
	var ip *InvalidProbabilityError
	if !errors.As(err, &ip) {
		t.Fatalf("expected InvalidProbabilityError, got %v", err)
	}
}

func TestCollapseRowDegenerate(t *testing.T) {
	amps := State{1, 0, 0, 0} // row 1 carries no mass
	_, err := collapseRow(amps, 2, 1, 0)
	var dm *DegenerateMeasurementError
	if !errors.As(err, &dm) {
		t.Fatalf("expected DegenerateMeasurementError, got %v", err)
	}
}

func TestSplitRequiresOneAncilla(t *testing.T) {
	full := HaarSample(4, 2, 1)
	_, _, err := SplitMeasurement{}.Measure(full, 2, newRNG(0, measureStream))
	var sm *ShapeMismatchError
	if !errors.As(err, &sm) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}
