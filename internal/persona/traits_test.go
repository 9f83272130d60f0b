package persona_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"interview-agent/internal/persona"
)

func TestEstimateTraitsEmptyText(t *testing.T) {
	traits := persona.EstimateTraits("")

	assert.Zero(t, traits.Confidence)
	assert.Zero(t, traits.Formality)
	assert.Zero(t, traits.Detail)
	assert.Zero(t, traits.Enthusiasm)
}

func TestEstimateTraitsNoMatches(t *testing.T) {
	traits := persona.EstimateTraits("plain words with no signal whatsoever")

	assert.Zero(t, traits.Confidence)
	assert.Zero(t, traits.Formality)
	assert.Zero(t, traits.Detail)
	assert.Zero(t, traits.Enthusiasm)
}

func TestEstimateTraitsExactScore(t *testing.T) {
	// 1 match over 20 words: 1 / (20 * 0.1) = 0.5
	text := "led " + strings.TrimSpace(strings.Repeat("filler ", 19))

	traits := persona.EstimateTraits(text)

	assert.InDelta(t, 0.5, traits.Confidence, 1e-9)
}

func TestEstimateTraitsClampsAtOne(t *testing.T) {
	traits := persona.EstimateTraits("led managed achieved delivered improved")

	assert.Equal(t, 1.0, traits.Confidence)
}

func TestEstimateTraitsIgnoresTrailingPunctuation(t *testing.T) {
	traits := persona.EstimateTraits("I led, managed. achieved!")

	assert.Greater(t, traits.Confidence, 0.0)
}

func TestEstimateTraitsBounds(t *testing.T) {
	inputs := []string{
		"passionate passionate passionate",
		"professional expertise proficient experienced accomplished demonstrated established",
		"one two three specifically",
		strings.Repeat("led dedicated documented professional ", 50),
		"x",
	}

	for _, text := range inputs {
		traits := persona.EstimateTraits(text)
		for _, score := range []float64{traits.Confidence, traits.Formality, traits.Detail, traits.Enthusiasm} {
			assert.GreaterOrEqual(t, score, 0.0, "input %q", text)
			assert.LessOrEqual(t, score, 1.0, "input %q", text)
		}
	}
}

func TestEstimateTraitsDeterministic(t *testing.T) {
	text := "passionate engineer who led and documented professional projects"

	assert.Equal(t, persona.EstimateTraits(text), persona.EstimateTraits(text))
}
