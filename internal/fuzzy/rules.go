package fuzzy

import "math"

// Connective joins the conditions of a rule.
type Connective int

const (
	And Connective = iota
	Or
)

// Cond references one term of one input variable.
type Cond struct {
	Var  string
	Term string
}

// Rule maps an antecedent to an output term. Activation strength is the
// minimum of the condition degrees under And, the maximum under Or.
type Rule struct {
	When []Cond
	Join Connective
	Then string
}

// Bank is a complete single-output rule system: its input variables, output
// variable, and rule table. Banks are built fresh by their constructors and
// never mutated afterwards.
type Bank struct {
	Name   string
	Inputs []Variable
	Output Variable
	Rules  []Rule
}

func (b Bank) input(name string) Variable {
	for _, v := range b.Inputs {
		if v.Name == name {
			return v
		}
	}
	return Variable{}
}

func (r Rule) strength(b Bank, crisp map[string]float64) float64 {
	s := 0.0
	for i, c := range r.When {
		d := b.input(c.Var).degree(c.Term, crisp[c.Var])
		switch {
		case i == 0:
			s = d
		case r.Join == Or:
			s = math.Max(s, d)
		default:
			s = math.Min(s, d)
		}
	}
	return s
}

// evaluate runs the bank against crisp inputs: per-rule activation, max
// aggregation per output term, centroid defuzzification.
func (b Bank) evaluate(crisp map[string]float64) float64 {
	activations := make(map[string]float64, len(b.Output.Terms))
	for _, r := range b.Rules {
		if s := r.strength(b, crisp); s > activations[r.Then] {
			activations[r.Then] = s
		}
	}
	return b.Output.centroid(activations)
}

// clarityBank scores structural clarity from coherence and filler presence.
// The filler variable here is raw presence (heavy filler is "high"), not the
// inverted normalized input.
func clarityBank() Bank {
	return Bank{
		Name: "clarity",
		Inputs: []Variable{
			{Name: "coherence", Terms: gradeTerms()},
			{Name: "filler", Terms: gradeTerms()},
		},
		Output: Variable{Name: "clarity", Terms: qualityTerms()},
		Rules: []Rule{
			{When: []Cond{{"coherence", "high"}, {"filler", "low"}}, Join: And, Then: "excellent"},
			{When: []Cond{{"coherence", "high"}, {"filler", "medium"}}, Join: And, Then: "good"},
			{When: []Cond{{"coherence", "medium"}, {"filler", "low"}}, Join: And, Then: "good"},
			{When: []Cond{{"coherence", "medium"}, {"filler", "medium"}}, Join: And, Then: "fair"},
			{When: []Cond{{"coherence", "low"}, {"filler", "high"}}, Join: Or, Then: "poor"},
		},
	}
}

// confidenceBank scores delivery confidence from marker density and answer
// length.
func confidenceBank() Bank {
	return Bank{
		Name: "confidence",
		Inputs: []Variable{
			{Name: "confidence", Terms: gradeTerms()},
			{Name: "word_count", Terms: gradeTerms()},
		},
		Output: Variable{Name: "confidence", Terms: qualityTerms()},
		Rules: []Rule{
			{When: []Cond{{"confidence", "high"}, {"word_count", "high"}}, Join: And, Then: "excellent"},
			{When: []Cond{{"confidence", "high"}, {"word_count", "medium"}}, Join: And, Then: "good"},
			{When: []Cond{{"confidence", "medium"}, {"word_count", "medium"}}, Join: And, Then: "good"},
			{When: []Cond{{"confidence", "medium"}, {"word_count", "low"}}, Join: And, Then: "fair"},
			{When: []Cond{{"confidence", "low"}}, Then: "poor"},
		},
	}
}

// relevanceBank scores topical relevance from technical depth and lexical
// complexity.
func relevanceBank() Bank {
	return Bank{
		Name: "relevance",
		Inputs: []Variable{
			{Name: "technical", Terms: gradeTerms()},
			{Name: "complexity", Terms: gradeTerms()},
		},
		Output: Variable{Name: "relevance", Terms: qualityTerms()},
		Rules: []Rule{
			{When: []Cond{{"technical", "high"}, {"complexity", "high"}}, Join: And, Then: "excellent"},
			{When: []Cond{{"technical", "high"}, {"complexity", "medium"}}, Join: And, Then: "good"},
			{When: []Cond{{"technical", "medium"}, {"complexity", "medium"}}, Join: And, Then: "good"},
			{When: []Cond{{"technical", "medium"}, {"complexity", "low"}}, Join: And, Then: "fair"},
			{When: []Cond{{"technical", "low"}}, Then: "poor"},
		},
	}
}
