package nlp

import (
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	minConfidence = 0.3
	maxConfidence = 1.0
)

type intentDefinition struct {
	intent   Intent
	keywords []string
}

type NLPProcessor struct {
	catalog   []intentDefinition
	stopWords map[string]bool
	extractor *EntityExtractor
}

func NewProcessor() INLPProcessor {
	stopWords := map[string]bool{
		"the": true, "and": true, "for": true, "with": true, "what": true,
		"will": true, "would": true, "could": true, "this": true, "that": true,
		"are": true, "was": true, "you": true, "your": true, "please": true,
		"can": true, "about": true, "there": true, "some": true, "any": true,
		"from": true, "have": true, "has": true, "our": true, "its": true,
		"tell": true, "give": true, "need": true, "want": true, "like": true,
	}

	return &NLPProcessor{
		catalog:   defaultIntentCatalog(),
		stopWords: stopWords,
		extractor: NewEntityExtractor(),
	}
}

func (nlp *NLPProcessor) Classify(text string) *IntentResult {
	startTime := time.Now()

	normalized := strings.Join(nlp.Tokens(text), " ")

	result := &IntentResult{
		Intent: IntentGeneralInquiry,
		Query:  text,
		Scores: make(map[Intent]int, len(nlp.catalog)),
	}

	bestScore := 0
	var bestMatches []MatchResult
	bestKeywordCount := 0

	for _, def := range nlp.catalog {
		score, matches := nlp.scoreIntent(normalized, def)
		result.Scores[def.intent] = score

		if score > bestScore {
			bestScore = score
			bestMatches = matches
			bestKeywordCount = len(def.keywords)
			result.Intent = def.intent
		}
	}

	if bestScore == 0 {
		result.Intent = IntentGeneralInquiry
		result.Confidence = minConfidence
		result.ProcessingTime = time.Since(startTime).String()
		return result
	}

	result.Matches = bestMatches
	result.Confidence = clampConfidence(float64(len(bestMatches)) / float64(bestKeywordCount))
	result.ProcessingTime = time.Since(startTime).String()

	return result
}

func (nlp *NLPProcessor) scoreIntent(normalized string, def intentDefinition) (int, []MatchResult) {
	score := 0
	var matches []MatchResult

	for _, keyword := range def.keywords {
		if strings.Contains(normalized, keyword) {
			score += len(keyword)
			matches = append(matches, MatchResult{
				Keyword: keyword,
				Intent:  def.intent,
				Score:   float64(len(keyword)),
				Type:    "substring",
			})
		}
	}

	return score, matches
}

func clampConfidence(v float64) float64 {
	if math.IsNaN(v) {
		return minConfidence
	}
	return math.Max(minConfidence, math.Min(maxConfidence, v))
}

func (nlp *NLPProcessor) ExtractEntities(text string, now time.Time) EntityBag {
	return nlp.extractor.Extract(text, now)
}

func (nlp *NLPProcessor) ApplyHints(bag EntityBag, hints map[string]interface{}) EntityBag {
	return nlp.extractor.ApplyHints(bag, hints)
}

func (nlp *NLPProcessor) CleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		result = text
	}

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func (nlp *NLPProcessor) Tokens(text string) []string {
	words := strings.Fields(nlp.CleanText(text))
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		if len(word) <= 2 || nlp.stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// Keywords must not contain words of two characters or less; those are
// dropped during tokenization and could never match.
func defaultIntentCatalog() []intentDefinition {
	return []intentDefinition{
		{
			intent:   IntentPricePrediction,
			keywords: []string{"price", "pricing", "cost", "rate", "how much", "charge", "tariff", "fee"},
		},
		{
			intent: IntentAvailabilityForecast,
			keywords: []string{
				"available", "availability", "vacancy", "vacancies", "occupancy",
				"free rooms", "sold out", "fully booked",
			},
		},
		{
			intent:   IntentTrendAnalysis,
			keywords: []string{
				"trend", "trends", "price trend", "pattern", "forecast", "demand",
				"peak", "busiest", "season", "over time",
			},
		},
		{
			intent:   IntentBookingRecommendation,
			keywords: []string{"recommend", "suggest", "best time", "book", "deal", "advice", "should"},
		},
		{
			intent:   IntentGeneralInquiry,
			keywords: []string{"help", "hello", "information", "assist", "services", "amenities"},
		},
	}
}
