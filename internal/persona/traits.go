package persona

import (
	"strings"

	"interview-agent/internal/domain"
)

// Trait vocabularies. Words are matched as whole lowercase tokens.
var confidenceWords = []string{
	"led", "managed", "achieved", "delivered", "improved",
	"developed", "created", "implemented", "successful",
}

var formalityWords = []string{
	"professional", "expertise", "proficient", "experienced",
	"accomplished", "demonstrated", "established",
}

var detailWords = []string{
	"specifically", "detailed", "analyzed", "documented",
	"monitored", "tracked", "measured", "evaluated",
}

var enthusiasmWords = []string{
	"passionate", "enthusiastic", "excited", "eager",
	"motivated", "driven", "dedicated", "committed",
}

// EstimateTraits scores the four behavioral traits from lexical signals.
// Deterministic and pure: identical text always yields identical traits.
// Every score lies in [0,1]; text with no vocabulary matches scores 0.
func EstimateTraits(resumeText string) domain.PersonalityTraits {
	words := strings.Fields(strings.ToLower(resumeText))

	return domain.PersonalityTraits{
		Confidence: traitScore(words, confidenceWords),
		Formality:  traitScore(words, formalityWords),
		Detail:     traitScore(words, detailWords),
		Enthusiasm: traitScore(words, enthusiasmWords),
	}
}

// traitScore is min(matches / (wordCount * 0.1), 1). An empty token list
// scores 0 rather than dividing by zero.
func traitScore(words []string, vocabulary []string) float64 {
	if len(words) == 0 {
		return 0
	}

	vocab := make(map[string]struct{}, len(vocabulary))
	for _, w := range vocabulary {
		vocab[w] = struct{}{}
	}

	matches := 0
	for _, w := range words {
		if _, ok := vocab[strings.Trim(w, ".,;:!?")]; ok {
			matches++
		}
	}

	score := float64(matches) / (float64(len(words)) * 0.1)
	if score > 1 {
		return 1
	}
	return score
}
