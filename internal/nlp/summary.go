package nlp

import "github.com/entrevio-dev/entrevio/internal/domain"

// Summarize converts raw features into the qualitative gloss shown to
// reviewers alongside each evaluation.
func Summarize(f domain.Features) domain.FeatureGloss {
	var g domain.FeatureGloss

	switch {
	case f.WordCount < 50:
		g.Length = "very brief"
	case f.WordCount < 100:
		g.Length = "brief"
	case f.WordCount < 200:
		g.Length = "moderate"
	default:
		g.Length = "detailed"
	}

	switch {
	case f.SentimentScore > 0.3:
		g.Tone = "positive"
	case f.SentimentScore < -0.3:
		g.Tone = "negative"
	default:
		g.Tone = "neutral"
	}

	switch {
	case f.CoherenceScore > 0.7:
		g.Coherence = "highly coherent"
	case f.CoherenceScore > 0.4:
		g.Coherence = "moderately coherent"
	default:
		g.Coherence = "needs better structure"
	}

	switch {
	case f.ComplexityScore > 0.7:
		g.Complexity = "sophisticated vocabulary"
	case f.ComplexityScore > 0.4:
		g.Complexity = "moderate complexity"
	default:
		g.Complexity = "simple language"
	}

	return g
}
