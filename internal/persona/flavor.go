package persona

import (
	"math/rand"
	"regexp"
	"unicode"
	"unicode/utf8"

	"interview-agent/internal/domain"
)

// Phrase tables for the dialect flavor layer.
var casualPhrases = []string{
	"you see",
	"actually",
	"basically",
	"only",
	"itself",
	"itself only",
	"like that only",
	"doing the needful",
	"tell me",
	"I will tell you",
	"let me explain",
	"see",
	"na",
	"no",
	"yaar",
	"means",
}

var casualTransitions = []string{
	"So basically",
	"You know what",
	"Let me tell you",
	"See",
	"Actually",
	"The thing is",
	"I mean",
	"Like",
	"Basically",
}

var enthusiasmMarkers = []string{
	"really",
	"very",
	"quite",
	"absolutely",
	"definitely",
	"totally",
	"completely",
	"honestly",
	"truly",
}

var praiseWordRe = regexp.MustCompile(`(?i)\b(good|great|excellent)\b`)

// Flavorer injects casual Indian English phrasing into model answers based
// on the persona's traits. It is the only non-deterministic step in the
// engine, so the randomness source is injected and seedable; trait scoring
// and prompt composition stay fully deterministic.
type Flavorer struct {
	rng *rand.Rand
}

// NewFlavorer builds a Flavorer around the given source. Tests pass a fixed
// seed; callers that want no flavor simply keep the Flavorer nil.
func NewFlavorer(rng *rand.Rand) *Flavorer {
	return &Flavorer{rng: rng}
}

// Apply rewrites text with dialect flavor proportional to the traits.
// Low formality adds casual openers and transitions, high enthusiasm
// amplifies praise words.
func (f *Flavorer) Apply(text string, traits domain.PersonalityTraits) string {
	if f == nil || text == "" {
		return text
	}

	if traits.Formality < 0.6 {
		n := int((1 - traits.Formality) * 10)
		if n > len(casualPhrases) {
			n = len(casualPhrases)
		}
		if n > 0 {
			phrase := casualPhrases[f.rng.Intn(n)]
			text = phrase + ", " + lowerFirst(text)
		}
	}

	if traits.Enthusiasm > 0.7 {
		n := int(traits.Enthusiasm * 5)
		if n > len(enthusiasmMarkers) {
			n = len(enthusiasmMarkers)
		}
		if n > 0 {
			marker := enthusiasmMarkers[f.rng.Intn(n)]
			text = praiseWordRe.ReplaceAllString(text, marker+" $1")
		}
	}

	if traits.Formality < 0.5 {
		n := int((1 - traits.Formality) * 5)
		if n > len(casualTransitions) {
			n = len(casualTransitions)
		}
		if n > 0 {
			transition := casualTransitions[f.rng.Intn(n)]
			text = transition + ", " + text
		}
	}

	return text
}

// lowerFirst lowercases the leading rune. Slicing by byte would split a
// multi-byte first character and corrupt the persisted answer.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
