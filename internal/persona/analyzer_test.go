package persona_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-agent/internal/persona"
)

const sampleResume = "Led a team of 5 engineers. Skilled in Python and distributed systems. Achieved 30% latency reduction. B.S. in Computer Science."

func TestAnalyzeSampleResume(t *testing.T) {
	analysis := persona.Analyze(sampleResume)

	assert.Contains(t, analysis.Experience, "Led a team of 5 engineers")
	assert.Contains(t, analysis.Skills, "Skilled in Python and distributed systems")
	assert.Contains(t, analysis.Achievements, "Achieved 30% latency reduction")
	assert.Contains(t, analysis.Education, "B.S. in Computer Science")

	assert.Greater(t, analysis.Traits.Confidence, 0.0, "Led/Achieved should score confidence")
}

func TestAnalyzeNoMatchesIsValidOutput(t *testing.T) {
	analysis := persona.Analyze("lorem ipsum dolor sit amet")

	assert.Empty(t, analysis.Experience)
	assert.Empty(t, analysis.Skills)
	assert.Empty(t, analysis.Achievements)
	assert.Empty(t, analysis.Education)
	assert.NotEmpty(t, analysis.Keywords)
}

func TestAnalyzeCategoriesMayOverlap(t *testing.T) {
	// "led" is both an experience and an achievement marker.
	analysis := persona.Analyze("Led the platform team and improved reliability.")

	assert.Len(t, analysis.Experience, 1)
	assert.Len(t, analysis.Achievements, 1)
}

func TestAnalyzeDropsShortFragments(t *testing.T) {
	analysis := persona.Analyze("My skills. Skilled in Go, Kubernetes and Terraform.")

	require.Len(t, analysis.Skills, 1)
	assert.Equal(t, "Skilled in Go, Kubernetes and Terraform", analysis.Skills[0])
}

func TestAnalyzeKeepsMultiLetterAbbreviations(t *testing.T) {
	analysis := persona.Analyze("Completed my Ph.D. at Stanford. Later led a research group.")

	require.Len(t, analysis.Education, 1)
	assert.Equal(t, "Completed my Ph.D. at Stanford", analysis.Education[0])
}

func TestKeywordsDeterministic(t *testing.T) {
	first := persona.Analyze(sampleResume)
	second := persona.Analyze(sampleResume)

	assert.Equal(t, first.Keywords, second.Keywords)
}

func TestKeywordsRankedByFrequencyWithFirstSeenTieBreak(t *testing.T) {
	analysis := persona.Analyze("golang kafka golang kafka redis postgres redis golang")

	require.GreaterOrEqual(t, len(analysis.Keywords), 4)
	assert.Equal(t, []string{"golang", "kafka", "redis", "postgres"}, analysis.Keywords[:4])
}

func TestKeywordsExcludeStopWordsAndShortTokens(t *testing.T) {
	analysis := persona.Analyze("the and or go ml apis apis apis")

	assert.NotContains(t, analysis.Keywords, "the")
	assert.NotContains(t, analysis.Keywords, "and")
	assert.NotContains(t, analysis.Keywords, "go", "tokens of length <= 2 are dropped")
	assert.Contains(t, analysis.Keywords, "apis")
}

func TestKeywordsCappedAtTwenty(t *testing.T) {
	words := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("term%02d", i))
	}

	analysis := persona.Analyze(strings.Join(words, " "))

	assert.Len(t, analysis.Keywords, 20)
}
