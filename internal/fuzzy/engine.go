package fuzzy

import (
	"math"

	"github.com/entrevio-dev/entrevio/internal/domain"
)

// Inputs are the six feature projections on the [0, 10] universe. Filler is
// inverted at normalization time: answers with fewer fillers score higher.
type Inputs struct {
	WordCount  float64
	Coherence  float64
	Confidence float64
	Technical  float64
	Filler     float64
	Complexity float64
}

// Normalize maps raw features onto the universe. Density-style inputs
// (confidence markers, technical terms, fillers) are scaled per 100 words,
// with short answers treated as a full block so sparse text cannot inflate
// the rate.
func Normalize(f domain.Features) Inputs {
	wc := float64(f.WordCount)
	blocks := math.Max(wc/100, 1)
	return Inputs{
		WordCount:  clamp(wc / 150 * 10),
		Coherence:  clamp(f.CoherenceScore * 10),
		Confidence: clamp(math.Min(float64(f.ConfidenceIndicators)/blocks*5, 10)),
		Technical:  clamp(math.Min(float64(f.TechnicalTermCount)/blocks*3, 10)),
		Filler:     clamp(math.Max(10-float64(f.FillerWordCount)/blocks*5, 0)),
		Complexity: clamp(f.ComplexityScore * 10),
	}
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(universeMax, x))
}

// Engine owns the three rule banks. It is immutable after construction and
// safe for concurrent use.
type Engine struct {
	clarity    Bank
	confidence Bank
	relevance  Bank
}

// NewEngine builds the engine from the package rule tables.
func NewEngine() *Engine {
	return &Engine{
		clarity:    clarityBank(),
		confidence: confidenceBank(),
		relevance:  relevanceBank(),
	}
}

// Score runs all three banks over the normalized features and combines the
// dimensions into the weighted overall score. Scoring never fails; a bank
// with no activation falls back to the neutral 5.0 for its dimension. The
// answer text itself does not influence the inference and is accepted only
// to keep the scoring signature self-contained.
func (e *Engine) Score(f domain.Features, answerText string) domain.Score {
	in := Normalize(f)

	clarity := round2(e.clarity.evaluate(map[string]float64{
		"coherence": in.Coherence,
		// Rules reason about raw filler presence, so undo the inversion.
		"filler": universeMax - in.Filler,
	}))
	confidence := round2(e.confidence.evaluate(map[string]float64{
		"confidence": in.Confidence,
		"word_count": in.WordCount,
	}))
	relevance := round2(e.relevance.evaluate(map[string]float64{
		"technical":  in.Technical,
		"complexity": in.Complexity,
	}))

	return domain.Score{
		Clarity:    clarity,
		Confidence: confidence,
		Relevance:  relevance,
		Overall:    overallScore(clarity, confidence, relevance),
	}
}

// overallScore weights the dimensions 30/30/40; relevance carries the most.
func overallScore(clarity, confidence, relevance float64) float64 {
	return round2(0.3*clarity + 0.3*confidence + 0.4*relevance)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
