// Package risk assigns heuristic risk scores to sentences and ranks the
// highest-scoring ones. Signals are additive and independent so a reviewer
// can always reconstruct why a sentence was flagged.
package risk

import (
	_ "embed"
	"encoding/json"
	"sort"
	"strings"
)

//go:embed jargon.json
var jargonJSON []byte

// Legal and medical formality terms used as a proxy for sentences that
// deserve extra scrutiny.
var jargonTerms = loadJargon()

func loadJargon() []string {
	var raw []string
	_ = json.Unmarshal(jargonJSON, &raw)
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

const (
	longSentenceWords   = 25
	longSentencePenalty = 2
	jargonPenalty       = 2
	numericPenalty      = 1
	conditionalPenalty  = 1
)

// Scored pairs a sentence with its risk score.
type Scored struct {
	Sentence string `json:"sentence"`
	Score    int    `json:"score"`
}

// Score evaluates one sentence in isolation. Each signal fires at most
// once, except jargon which fires once per distinct matched term. A score
// of zero means no risk indicator matched.
func Score(sentence string) int {
	score := 0

	if len(strings.Fields(sentence)) > longSentenceWords {
		score += longSentencePenalty
	}

	lower := strings.ToLower(sentence)
	for _, term := range jargonTerms {
		if strings.Contains(lower, term) {
			score += jargonPenalty
		}
	}

	if strings.ContainsAny(sentence, "0123456789") {
		score += numericPenalty
	}

	padded := " " + lower + " "
	if strings.Contains(padded, " if ") || strings.Contains(padded, " unless ") {
		score += conditionalPenalty
	}

	return score
}

// TopRisks filters out short fragments (headers, page numbers) and
// zero-score sentences, sorts the rest by score descending with ties kept
// in document order, and truncates to limit.
func TopRisks(scored []Scored, limit, minChars int) []Scored {
	kept := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if len(strings.TrimSpace(s.Sentence)) < minChars {
			continue
		}
		if s.Score == 0 {
			continue
		}
		kept = append(kept, s)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if limit >= 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
