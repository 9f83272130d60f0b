// Package persona derives a candidate persona from free-text resume
// content: structured facts, behavioral trait scores, and the system prompt
// that keeps the model in-character. Everything here is a pure function.
package persona

import (
	"strings"
	"unicode"

	"interview-agent/internal/domain"
)

// Marker lists are matched case-insensitively as substrings. A sentence may
// land in several categories; that is intentional.
var experienceMarkers = []string{
	"experience",
	"employment",
	"work history",
	"professional background",
	"worked",
	"position",
	"role",
	"career",
	"led",
	"team",
}

var skillMarkers = []string{
	"skill",
	"technologies",
	"technical",
	"competencies",
	"proficient",
	"expertise",
	"tools",
}

var achievementMarkers = []string{
	"achiev",
	"accomplish",
	"awards",
	"recognition",
	"improved",
	"delivered",
	"led",
	"managed",
}

var educationMarkers = []string{
	"education",
	"academic",
	"qualification",
	"certification",
	"degree",
	"university",
	"college",
	"diploma",
	"bachelor",
	"master",
	"b.s",
	"m.s",
	"ph.d",
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
}

const (
	minFragmentLen = 10
	maxKeywords    = 20
)

// Analyze extracts structured facts from resume text. It is total over any
// non-empty string: a resume matching nothing yields empty slices, which is
// valid output, not a failure.
func Analyze(resumeText string) domain.ResumeAnalysis {
	sentences := splitSentences(resumeText)

	return domain.ResumeAnalysis{
		Experience:   extractSection(sentences, experienceMarkers),
		Skills:       extractSection(sentences, skillMarkers),
		Achievements: extractSection(sentences, achievementMarkers),
		Education:    extractSection(sentences, educationMarkers),
		Keywords:     extractKeywords(resumeText),
		Traits:       EstimateTraits(resumeText),
	}
}

func extractSection(sentences []string, markers []string) []string {
	var out []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				trimmed := strings.TrimSpace(sentence)
				if len(trimmed) >= minFragmentLen {
					out = append(out, trimmed)
				}
				break
			}
		}
	}
	return out
}

// splitSentences splits on '.', '!' and '?'. A '.' inside a word or directly
// after a single capital letter belongs to an abbreviation ("B.S.", "Ph.D",
// "e.g.") and does not end the sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)

	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && isAbbreviationDot(runes, i) {
			continue
		}
		if i > start {
			sentences = append(sentences, string(runes[start:i]))
		}
		start = i + 1
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func isAbbreviationDot(runes []rune, i int) bool {
	// A sentence-ending dot is followed by whitespace or the end of text, so
	// a dot with a letter right after it is internal ("Ph.D", "e.g").
	if i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
		return true
	}
	if i == 0 || !unicode.IsUpper(runes[i-1]) {
		return false
	}
	// Single capital letter before the dot: start of text or a non-letter
	// (space, another dot) right before it.
	return i < 2 || !unicode.IsLetter(runes[i-2])
}

// extractKeywords returns the top keywords by descending frequency. Counting
// preserves first-seen order, so equal counts keep their order of appearance
// and the result is deterministic for identical input.
func extractKeywords(text string) []string {
	words := strings.Fields(strings.ToLower(text))

	counts := make(map[string]int)
	var order []string
	for _, word := range words {
		if _, stop := stopWords[word]; stop {
			continue
		}
		if len(word) <= 2 {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	// Insertion sort keeps the pass stable, so the first-occurrence order in
	// `order` is the tie-break for equal counts.
	ranked := make([]string, len(order))
	copy(ranked, order)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && counts[ranked[j]] > counts[ranked[j-1]]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	return ranked
}
