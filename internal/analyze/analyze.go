// Package analyze composes the document pipeline: normalize, estimate
// readability, segment, score, and rank. Every call is independent and
// free of shared state, so concurrent analyses need no coordination.
package analyze

import (
	"math"
	"os"
	"strconv"
	"strings"

	"readright/internal/pipeline"
	"readright/internal/readability"
	"readright/internal/risk"
	"readright/internal/segment"
)

type Config struct {
	// TopLimit bounds the ranked high-risk list.
	TopLimit int
	// MinSentenceChars filters short fragments (headers, page numbers)
	// out of the ranked list.
	MinSentenceChars int
	// Workers sizes the scoring pool; 0 means one per CPU.
	Workers int

	Readability readability.Config
}

func DefaultConfig() Config {
	return Config{
		TopLimit:         getenvInt("READRIGHT_TOP_LIMIT", 5),
		MinSentenceChars: getenvInt("READRIGHT_MIN_SENTENCE_CHARS", 40),
		Workers:          getenvInt("READRIGHT_WORKERS", 0),
		Readability: readability.Config{
			Policy:         getenvString("READRIGHT_READING_TIME_POLICY", readability.PolicyChars),
			MsPerChar:      getenvFloat("READRIGHT_MS_PER_CHAR", 14.69),
			WordsPerMinute: getenvFloat("READRIGHT_WORDS_PER_MINUTE", 200),
		},
	}
}

type Result struct {
	GradeLevel         float64       `json:"grade_level"`
	ReadingTimeMinutes float64       `json:"reading_time_minutes"`
	TotalSentences     int           `json:"total_sentences"`
	AverageRiskScore   float64       `json:"average_risk_score"`
	AllSentences       []risk.Scored `json:"all_sentences"`
	TopRiskSentences   []risk.Scored `json:"top_risk_sentences"`
}

// Document runs the full pipeline over raw extracted text. Empty or
// whitespace-only input is a valid "nothing to analyze" case and yields a
// zeroed result, never an error.
func Document(raw string, cfg Config) Result {
	text := segment.Normalize(raw)
	if text == "" {
		return Result{AllSentences: []risk.Scored{}, TopRiskSentences: []risk.Scored{}}
	}

	metrics := readability.Estimate(text, cfg.Readability)
	sentences := segment.Split(text)

	scored := make([]risk.Scored, len(sentences))
	pipeline.ForEach(len(sentences), cfg.Workers, func(i int) {
		scored[i] = risk.Scored{Sentence: sentences[i], Score: risk.Score(sentences[i])}
	})

	total := 0
	for _, s := range scored {
		total += s.Score
	}
	average := 0.0
	if len(scored) > 0 {
		average = math.Round(float64(total)/float64(len(scored))*100) / 100
	}

	return Result{
		GradeLevel:         metrics.GradeLevel,
		ReadingTimeMinutes: metrics.ReadingTimeMinutes,
		TotalSentences:     len(scored),
		AverageRiskScore:   average,
		AllSentences:       scored,
		TopRiskSentences:   risk.TopRisks(scored, cfg.TopLimit, cfg.MinSentenceChars),
	}
}

func getenvString(name, fallback string) string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return raw
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
