package decay

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateChain is returned when two chain members share a decay constant,
// where the closed-form Bateman solution is undefined
var ErrDegenerateChain = errors.New("degenerate decay chain")

// batemanSolver evaluates the Bateman solution of a linear chain with
// arbitrary initial amounts:
//
//	N_n(t) = Σ_k N_k(0) · Π_{j=k}^{n-1} b_j λ_j · Σ_{i=k}^{n} e^{-λ_i t} / Π_{j=k, j≠i}^{n} (λ_j - λ_i)
//
// The time independent factors are computed once.
type batemanSolver struct {
	lambdas []float64
	n0      []float64
	// coeffs[n][k][i-k] is the factor of N_k(0)·e^{-λ_i t} in N_n(t)
	coeffs [][][]float64
}

// newBatemanSolver takes decay constants in 1/s, the branching fraction from
// member i to member i+1 and the initial number of atoms of each member.
func newBatemanSolver(lambdas, fractions, n0 []float64) (*batemanSolver, error) {
	if len(lambdas) == 0 {
		return nil, fmt.Errorf("no chain members")
	}
	if len(fractions) != len(lambdas)-1 || len(n0) != len(lambdas) {
		return nil, fmt.Errorf("chain of %d members needs %d branching fractions and %d initial amounts", len(lambdas), len(lambdas)-1, len(lambdas))
	}

	for i := range lambdas {
		for j := i + 1; j < len(lambdas); j++ {
			if nearlyEqual(lambdas[i], lambdas[j]) {
				return nil, fmt.Errorf("%w: members %d and %d have the same decay constant %g", ErrDegenerateChain, i, j, lambdas[i])
			}
		}
	}

	s := &batemanSolver{
		lambdas: lambdas,
		n0:      n0,
		coeffs:  make([][][]float64, len(lambdas)),
	}
	for n := range lambdas {
		s.coeffs[n] = make([][]float64, n+1)
		for k := 0; k <= n; k++ {
			production := 1.0
			for j := k; j < n; j++ {
				production *= fractions[j] * lambdas[j]
			}

			terms := make([]float64, n-k+1)
			for i := k; i <= n; i++ {
				denominator := 1.0
				for j := k; j <= n; j++ {
					if j != i {
						denominator *= lambdas[j] - lambdas[i]
					}
				}
				terms[i-k] = production / denominator
			}
			s.coeffs[n][k] = terms
		}
	}
	return s, nil
}

// atoms returns the number of atoms of every member at t seconds
func (s *batemanSolver) atoms(t float64) []float64 {
	exps := make([]float64, len(s.lambdas))
	for i, l := range s.lambdas {
		exps[i] = math.Exp(-l * t)
	}

	result := make([]float64, len(s.lambdas))
	for n := range s.lambdas {
		sum := 0.0
		for k := 0; k <= n; k++ {
			if s.n0[k] == 0 {
				continue
			}
			partial := 0.0
			for i := k; i <= n; i++ {
				partial += s.coeffs[n][k][i-k] * exps[i]
			}
			sum += s.n0[k] * partial
		}
		result[n] = sum
	}
	return result
}

// activities returns λ·N of every member at t seconds, never negative
func (s *batemanSolver) activities(t float64) []float64 {
	atoms := s.atoms(t)
	for i, n := range atoms {
		atoms[i] = math.Max(0, s.lambdas[i]*n)
	}
	return atoms
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}
