package nlp

import "strings"

// Lexicon supplies the locale-dependent wordlists the extractor matches
// against. Matching is case-insensitive substring membership, so multi-word
// entries ("base de datos", "design pattern") are valid.
type Lexicon struct {
	Locale            string
	Fillers           []string
	ConfidenceMarkers []string
	TechnicalTerms    []string
	Positive          []string
	Negative          []string
	Stopwords         []string
}

// ForLocale returns the built-in lexicon for a locale code. Unknown locales
// fall back to English.
func ForLocale(locale string) Lexicon {
	if strings.EqualFold(locale, "es") {
		return spanishLexicon()
	}
	return englishLexicon()
}

// technicalTerms is shared across locales: English terms dominate technical
// speech even in Spanish-language interviews.
var technicalTerms = []string{
	"algorithm", "complexity", "database", "api", "framework",
	"architecture", "scalability", "optimization", "implementation",
	"design pattern", "microservice", "cache", "queue", "stack",
	"performance", "latency", "throughput", "distributed", "concurrent",
}

func englishLexicon() Lexicon {
	return Lexicon{
		Locale: "en",
		Fillers: []string{
			"um", "uh", "erm", "you know", "i mean", "kind of", "sort of",
			"basically", "literally", "actually", "like i said", "so yeah",
			"stuff like that", "whatever", "right?",
		},
		ConfidenceMarkers: []string{
			"definitely", "certainly", "clearly", "obviously", "precisely",
			"exactly", "absolutely", "confident", "undoubtedly",
			"without a doubt", "i believe", "i think", "i know",
			"in my experience", "for sure",
		},
		TechnicalTerms: technicalTerms,
		Positive: []string{
			"good", "great", "excellent", "positive", "success", "achieve",
			"improve", "effective", "efficient", "strong", "confident",
			"capable", "solution", "solve", "reliable",
		},
		Negative: []string{
			"bad", "poor", "fail", "difficult", "problem", "issue",
			"struggle", "weak", "unable", "cannot", "never", "impossible",
			"confused", "error", "complicated",
		},
		Stopwords: []string{
			"the", "a", "an", "and", "or", "but", "if", "then", "than",
			"that", "this", "these", "those", "there", "here", "when",
			"where", "why", "how", "what", "which", "who", "whom", "i",
			"you", "he", "she", "it", "we", "they", "me", "him", "her",
			"them", "my", "your", "his", "its", "our", "their", "is",
			"are", "was", "were", "be", "been", "being", "am", "have",
			"has", "had", "do", "does", "did", "will", "would", "can",
			"could", "should", "may", "might", "must", "of", "in", "on",
			"at", "to", "for", "with", "by", "from", "as", "about",
			"into", "through", "over", "under", "again", "once", "all",
			"any", "some", "no", "not", "only", "same", "so", "too",
			"very", "just", "also", "because", "while", "during",
		},
	}
}

func spanishLexicon() Lexicon {
	return Lexicon{
		Locale: "es",
		Fillers: []string{
			"eh", "este", "o sea", "digamos", "bueno", "tipo", "sabes",
			"entonces", "mhm", "pues", "básicamente", "literalmente",
			"así que", "umm", "uh",
		},
		ConfidenceMarkers: []string{
			"definitivamente", "ciertamente", "claramente", "obviamente",
			"precisamente", "exactamente", "absolutamente", "seguro",
			"indudablemente", "sin duda", "creo", "pienso", "sé",
			"confío", "experiencia",
		},
		TechnicalTerms: append([]string{
			"algoritmo", "complejidad", "base de datos", "arquitectura",
			"escalabilidad", "optimización", "implementación",
			"patrón de diseño", "microservicio", "cola", "pila",
			"rendimiento", "latencia", "concurrente", "distribuido",
		}, technicalTerms...),
		Positive: []string{
			"bien", "excelente", "gran", "positivo", "éxito", "lograr",
			"mejorar", "efectivo", "eficiente", "fuerte", "confiado",
			"capaz", "bueno", "genial", "increíble", "solución", "resolver",
		},
		Negative: []string{
			"mal", "pobre", "fallar", "difícil", "problema", "asunto",
			"lucha", "débil", "incapaz", "no puedo", "nunca", "imposible",
			"confundido", "error", "malo", "complicado",
		},
		Stopwords: []string{
			"el", "la", "los", "las", "un", "una", "unos", "unas", "y",
			"o", "u", "pero", "si", "que", "qué", "de", "del", "en", "a",
			"al", "por", "para", "con", "sin", "sobre", "entre", "hacia",
			"hasta", "desde", "es", "son", "era", "eran", "ser", "estar",
			"está", "están", "estaba", "fue", "fueron", "he", "ha", "han",
			"hay", "lo", "le", "les", "se", "su", "sus", "mi", "mis",
			"tu", "tus", "yo", "él", "ella", "nosotros", "ellos", "ellas",
			"esto", "esta", "estos", "estas", "eso", "esa", "esos",
			"esas", "como", "cuando", "donde", "porque", "muy", "más",
			"menos", "también", "ya", "no", "ni", "me", "te", "nos",
		},
	}
}

// stemmerFor returns a light suffix-stripping stemmer for the locale. The
// stems only feed keyword-overlap and vocabulary-diversity metrics, so an
// approximation is enough; unknown locales get the identity function.
func stemmerFor(locale string) func(string) string {
	switch strings.ToLower(locale) {
	case "es":
		return stemSpanish
	case "en":
		return stemEnglish
	default:
		return func(w string) string { return w }
	}
}

func stemEnglish(w string) string {
	switch {
	case len(w) > 5 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 5 && strings.HasSuffix(w, "ing"):
		return w[:len(w)-3]
	case len(w) > 5 && strings.HasSuffix(w, "edly"):
		return w[:len(w)-4]
	case len(w) > 4 && strings.HasSuffix(w, "ed"):
		return w[:len(w)-2]
	case len(w) > 4 && strings.HasSuffix(w, "es"):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return w[:len(w)-1]
	}
	return w
}

func stemSpanish(w string) string {
	switch {
	case len(w) > 7 && strings.HasSuffix(w, "mente"):
		return w[:len(w)-5]
	case len(w) > 6 && strings.HasSuffix(w, "iendo"):
		return w[:len(w)-5]
	case len(w) > 5 && strings.HasSuffix(w, "ando"):
		return w[:len(w)-4]
	case len(w) > 6 && strings.HasSuffix(w, "ciones"):
		return w[:len(w)-2]
	case len(w) > 5 && strings.HasSuffix(w, "es"):
		return w[:len(w)-2]
	case len(w) > 4 && strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}
