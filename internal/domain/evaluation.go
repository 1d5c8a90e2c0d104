package domain

import "time"

// Features are the measurable properties extracted from one answer's text.
// Counts are exact; float fields are rounded to three decimals upstream.
type Features struct {
	WordCount            int     `json:"word_count"`
	SentenceCount        int     `json:"sentence_count"`
	AvgSentenceLength    float64 `json:"avg_sentence_length"`
	SentimentScore       float64 `json:"sentiment_score"`
	ConfidenceIndicators int     `json:"confidence_indicators"`
	FillerWordCount      int     `json:"filler_words_count"`
	TechnicalTermCount   int     `json:"technical_terms_count"`
	CoherenceScore       float64 `json:"coherence_score"`
	ComplexityScore      float64 `json:"complexity_score"`
}

// FeatureGloss is the qualitative reading of extracted features.
type FeatureGloss struct {
	Length     string `json:"length"`
	Tone       string `json:"tone"`
	Coherence  string `json:"coherence"`
	Complexity string `json:"complexity"`
}

// Score holds the fuzzy-inferred quality dimensions for one answer, each on
// [0, 10] and rounded to two decimals.
type Score struct {
	Clarity    float64 `json:"clarity_score"`
	Confidence float64 `json:"confidence_score"`
	Relevance  float64 `json:"relevance_score"`
	Overall    float64 `json:"overall_score"`
}

// Evaluation is the scored assessment of one answered turn.
type Evaluation struct {
	QuestionID int          `json:"question_id"`
	AnswerText string       `json:"answer_text"`
	Score      Score        `json:"score"`
	Features   Features     `json:"features"`
	Gloss      FeatureGloss `json:"feature_summary"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (e *Evaluation) clone() *Evaluation {
	cp := *e
	return &cp
}
