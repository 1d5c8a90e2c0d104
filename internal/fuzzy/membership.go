// Package fuzzy implements the Mamdani inference engine that turns extracted
// answer features into quality scores on a 0-10 scale.
package fuzzy

import "math"

const (
	universeMax = 10.0

	// fallbackScore is returned for a dimension whose rule bank produced no
	// activation at all; such inputs carry no usable signal either way.
	fallbackScore = 5.0
)

// Triangle is a triangular membership function with feet A and C and peak B.
// Degenerate edges (A == B or B == C) form right triangles at the universe
// bounds.
type Triangle struct {
	A, B, C float64
}

// Degree returns the membership of x in the triangle, on [0, 1].
func (t Triangle) Degree(x float64) float64 {
	if x < t.A || x > t.C {
		return 0
	}
	if x == t.B {
		return 1
	}
	if x < t.B {
		return (x - t.A) / (t.B - t.A)
	}
	return (t.C - x) / (t.C - t.B)
}

// Term is one named membership region of a variable.
type Term struct {
	Name string
	MF   Triangle
}

// Variable is a linguistic variable over the [0, 10] universe.
type Variable struct {
	Name  string
	Terms []Term
}

func (v Variable) degree(term string, x float64) float64 {
	for _, t := range v.Terms {
		if t.Name == term {
			return t.MF.Degree(x)
		}
	}
	return 0
}

// centroid defuzzifies the output region formed by clipping each term at its
// activation and merging by maximum. An all-zero activation set has no
// centroid and yields the neutral fallback.
func (v Variable) centroid(activations map[string]float64) float64 {
	const steps = 1000
	var num, den float64
	for i := 0; i <= steps; i++ {
		y := universeMax * float64(i) / steps
		mu := 0.0
		for _, t := range v.Terms {
			a := activations[t.Name]
			if a == 0 {
				continue
			}
			if d := math.Min(a, t.MF.Degree(y)); d > mu {
				mu = d
			}
		}
		num += y * mu
		den += mu
	}
	if den == 0 {
		return fallbackScore
	}
	return num / den
}

// gradeTerms is the shared low/medium/high partition used by every input
// variable. Returned fresh on each call so banks never share mutable state.
func gradeTerms() []Term {
	return []Term{
		{Name: "low", MF: Triangle{A: 0, B: 0, C: 4}},
		{Name: "medium", MF: Triangle{A: 3, B: 5, C: 7}},
		{Name: "high", MF: Triangle{A: 6, B: 10, C: 10}},
	}
}

// qualityTerms is the four-step partition used by every output variable.
func qualityTerms() []Term {
	return []Term{
		{Name: "poor", MF: Triangle{A: 0, B: 0, C: 3}},
		{Name: "fair", MF: Triangle{A: 2, B: 4, C: 6}},
		{Name: "good", MF: Triangle{A: 5, B: 7, C: 9}},
		{Name: "excellent", MF: Triangle{A: 8, B: 10, C: 10}},
	}
}
