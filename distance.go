package qddpm

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Ensemble divergences. Both are built from the trace-distance-like
// pairwise overlap |<a|b>|².

const costTol = 1e-6

func dotOverlap(a, b State) float64 {
	var dot Complex
	for i := range a {
		dot += cmplx.Conj(a[i]) * b[i]
	}
	return real(dot * cmplx.Conj(dot))
}

// meanOverlap is the mean of |<a_i|b_j>|² over all (i, j) pairs.
func meanOverlap(a, b *Ensemble) float64 {
	sum := 0.0
	for _, sa := range a.States {
		for _, sb := range b.States {
			sum += dotOverlap(sa, sb)
		}
	}
	return sum / float64(a.Len()*b.Len())
}

func checkPair(op string, set1, set2 *Ensemble) error {
	if set1.NumQubits != set2.NumQubits {
		return &ShapeMismatchError{Op: op, Want: set1.Dim(), Got: set2.Dim()}
	}
	if err := set1.check(op); err != nil {
		return err
	}
	return set2.check(op)
}

// NaturalDistance is 2*r12 - r11 - r22 where rXY = 1 - meanOverlap.
// Inter-set separation penalized by intra-set spread. It is not a
// metric: it can be negative and satisfies no triangle inequality.
// It is exactly zero when both arguments are the same ensemble.
func NaturalDistance(set1, set2 *Ensemble) (float64, error) {
	if err := checkPair("NaturalDistance", set1, set2); err != nil {
		return 0, err
	}
	r11 := 1 - meanOverlap(set1, set1)
	r22 := 1 - meanOverlap(set2, set2)
	r12 := 1 - meanOverlap(set1, set2)
	return 2*r12 - r11 - r22, nil
}

// WassersteinDistance solves the discrete optimal-transport problem
// between the two empirical distributions (uniform marginals, sizes
// may differ) with cost D[i][j] = 1 - |<set1_i|set2_j>|².
func WassersteinDistance(set1, set2 *Ensemble) (float64, error) {
	if err := checkPair("WassersteinDistance", set1, set2); err != nil {
		return 0, err
	}
	cost, err := costMatrix(set1, set2)
	if err != nil {
		return 0, err
	}
	return emd(cost), nil
}

// costMatrix validates every entry lies in [0,1] up to tolerance;
// anything farther out means an upstream state was not normalized.
func costMatrix(set1, set2 *Ensemble) (*mat.Dense, error) {
	d := mat.NewDense(set1.Len(), set2.Len(), nil)
	for i, sa := range set1.States {
		for j, sb := range set2.States {
			c := 1 - dotOverlap(sa, sb)
			if c < -costTol || c > 1+costTol {
				return nil, &CostMatrixRangeError{Row: i, Col: j, Value: c}
			}
			d.Set(i, j, min(max(c, 0), 1))
		}
	}
	return d, nil
}
