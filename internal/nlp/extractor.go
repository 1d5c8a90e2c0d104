// Package nlp extracts linguistic features from interview answers: text
// statistics, wordlist counts, sentiment, coherence, and complexity.
package nlp

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/entrevio-dev/entrevio/internal/domain"
)

// Extractor analyzes answer text against a lexicon. It is stateless after
// construction and safe for concurrent use.
type Extractor struct {
	fillers    []string
	confidence []string
	technical  []string
	positive   []string
	negative   []string
	stopwords  map[string]struct{}
	stem       func(string) string
}

// NewExtractor builds an extractor from a lexicon. Wordlists are matched
// lowercase; the lexicon's locale selects the stemmer.
func NewExtractor(lex Lexicon) *Extractor {
	e := &Extractor{
		fillers:    lowerAll(lex.Fillers),
		confidence: lowerAll(lex.ConfidenceMarkers),
		technical:  lowerAll(lex.TechnicalTerms),
		positive:   lowerAll(lex.Positive),
		negative:   lowerAll(lex.Negative),
		stopwords:  make(map[string]struct{}, len(lex.Stopwords)),
		stem:       stemmerFor(lex.Locale),
	}
	for _, w := range lex.Stopwords {
		e.stopwords[strings.ToLower(w)] = struct{}{}
	}
	return e
}

// Extract computes the full feature set for one answer. Empty or
// whitespace-only input yields the zero-valued feature struct. Extraction
// never fails.
func (e *Extractor) Extract(text string) domain.Features {
	if strings.TrimSpace(text) == "" {
		return domain.Features{}
	}

	lower := strings.ToLower(text)
	words := tokenize(text)
	sentences := splitSentences(text)

	wordCount := len(words)
	sentenceCount := len(sentences)
	avgLen := 0.0
	if sentenceCount > 0 {
		avgLen = float64(wordCount) / float64(sentenceCount)
	}

	return domain.Features{
		WordCount:            wordCount,
		SentenceCount:        sentenceCount,
		AvgSentenceLength:    round3(avgLen),
		SentimentScore:       round3(e.sentiment(lower)),
		ConfidenceIndicators: countMatches(lower, e.confidence),
		FillerWordCount:      countMatches(lower, e.fillers),
		TechnicalTermCount:   countMatches(lower, e.technical),
		CoherenceScore:       round3(e.coherence(sentences)),
		ComplexityScore:      round3(e.complexity(words)),
	}
}

// countMatches counts how many lexicon entries occur somewhere in the text.
// Each entry contributes at most once regardless of repetition.
func countMatches(lower string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

// sentiment is the balance of positive versus negative markers on [-1, 1],
// 0.0 when neither occurs.
func (e *Extractor) sentiment(lower string) float64 {
	pos := countMatches(lower, e.positive)
	neg := countMatches(lower, e.negative)
	total := pos + neg
	if total == 0 {
		return 0.0
	}
	return float64(pos-neg) / float64(total)
}

// coherence measures topical connectivity as the mean Jaccard overlap of
// content keywords between consecutive sentences. Single-sentence answers
// are fully coherent; when no sentence pair has keywords on both sides the
// overlap is undefined and scores a neutral 0.5.
func (e *Extractor) coherence(sentences []string) float64 {
	if len(sentences) <= 1 {
		return 1.0
	}

	keywords := make([]map[string]struct{}, len(sentences))
	for i, s := range sentences {
		keywords[i] = e.keywords(s)
	}

	var overlaps []float64
	for i := 0; i+1 < len(keywords); i++ {
		cur, next := keywords[i], keywords[i+1]
		if len(cur) == 0 || len(next) == 0 {
			continue
		}
		inter := 0
		for k := range cur {
			if _, ok := next[k]; ok {
				inter++
			}
		}
		union := len(cur) + len(next) - inter
		overlaps = append(overlaps, float64(inter)/float64(union))
	}
	if len(overlaps) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, o := range overlaps {
		sum += o
	}
	return sum / float64(len(overlaps))
}

// keywords returns the stemmed content-bearing terms of one sentence:
// lowercased tokens of three or more runes that are not stopwords.
func (e *Extractor) keywords(sentence string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range tokenize(sentence) {
		lw := strings.ToLower(w)
		if utf8.RuneCountInString(lw) < 3 {
			continue
		}
		if _, stop := e.stopwords[lw]; stop {
			continue
		}
		set[e.stem(lw)] = struct{}{}
	}
	return set
}

// complexity combines vocabulary diversity (unique stems over total words)
// with average word length, weighted 0.6/0.4; length saturates at ten runes.
func (e *Extractor) complexity(words []string) float64 {
	if len(words) == 0 {
		return 0.0
	}
	unique := make(map[string]struct{}, len(words))
	runeTotal := 0
	for _, w := range words {
		unique[e.stem(strings.ToLower(w))] = struct{}{}
		runeTotal += utf8.RuneCountInString(w)
	}
	diversity := float64(len(unique)) / float64(len(words))
	avgWordLen := float64(runeTotal) / float64(len(words))
	lengthScore := math.Min(avgWordLen/10, 1.0)
	return diversity*0.6 + lengthScore*0.4
}

// tokenize splits text into words, trimming surrounding punctuation while
// keeping word-internal characters (apostrophes, accents, hyphens).
func tokenize(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// splitSentences segments text on terminal punctuation runs. Segments
// without any letter or digit (stray punctuation, trailing ellipses) are
// discarded.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s == "" {
			return
		}
		if strings.IndexFunc(s, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsNumber(r)
		}) == -1 {
			return
		}
		sentences = append(sentences, s)
	}
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '…' || r == '\n' {
			flush()
		}
	}
	flush()
	return sentences
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
