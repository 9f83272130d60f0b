package persona_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"interview-agent/internal/domain"
	"interview-agent/internal/persona"
)

func TestStyleDirectiveHighTraits(t *testing.T) {
	style := persona.StyleDirective(domain.PersonalityTraits{
		Confidence: 0.9, Formality: 0.8, Detail: 0.95, Enthusiasm: 0.71,
	})

	assert.Equal(t, "confident, professional, detailed, enthusiastic", style)
}

func TestStyleDirectiveLowTraits(t *testing.T) {
	style := persona.StyleDirective(domain.PersonalityTraits{
		Confidence: 0.1, Formality: 0.0, Detail: 0.29, Enthusiasm: 0.2,
	})

	assert.Equal(t, "modest, casual, concise, measured", style)
}

func TestStyleDirectiveMidRangeIsAbsent(t *testing.T) {
	style := persona.StyleDirective(domain.PersonalityTraits{
		Confidence: 0.5, Formality: 0.5, Detail: 0.5, Enthusiasm: 0.5,
	})

	assert.Empty(t, style)
}

func TestStyleDirectiveThresholdsAreExclusive(t *testing.T) {
	// Exactly 0.7 and exactly 0.3 both land in the unlabeled middle band.
	style := persona.StyleDirective(domain.PersonalityTraits{
		Confidence: 0.7, Formality: 0.3, Detail: 0.7, Enthusiasm: 0.3,
	})

	assert.Empty(t, style)
}

func TestComposeSystemPromptIncludesAnalysis(t *testing.T) {
	analysis := domain.ResumeAnalysis{
		Experience:   []string{"Led a team of 5 engineers"},
		Skills:       []string{"Skilled in Python and distributed systems"},
		Achievements: []string{"Achieved 30% latency reduction"},
		Education:    []string{"B.S. in Computer Science"},
		Keywords:     []string{"python", "latency"},
		Traits:       domain.PersonalityTraits{Confidence: 0.9},
	}

	prompt := persona.ComposeSystemPrompt(analysis)

	assert.Contains(t, prompt, "You are the candidate in a job interview")
	assert.Contains(t, prompt, "Communication style: confident.")
	assert.Contains(t, prompt, "- Led a team of 5 engineers")
	assert.Contains(t, prompt, "- Skilled in Python and distributed systems")
	assert.Contains(t, prompt, "- Achieved 30% latency reduction")
	assert.Contains(t, prompt, "- B.S. in Computer Science")
	assert.Contains(t, prompt, "python, latency")
	assert.Contains(t, prompt, "Never break character")
}

func TestComposeSystemPromptOmitsEmptySections(t *testing.T) {
	prompt := persona.ComposeSystemPrompt(domain.ResumeAnalysis{
		Traits: domain.PersonalityTraits{Confidence: 0.5, Formality: 0.5, Detail: 0.5, Enthusiasm: 0.5},
	})

	assert.NotContains(t, prompt, "Communication style")
	assert.NotContains(t, prompt, "Experience Highlights")
	assert.NotContains(t, prompt, "Key Skills")
	assert.NotContains(t, prompt, "Important terms")
}

func TestComposeSystemPromptDeterministic(t *testing.T) {
	analysis := persona.Analyze("Led a team. Skilled in Go. Achieved a lot. B.S. in CS at university.")

	first := persona.ComposeSystemPrompt(analysis)
	second := persona.ComposeSystemPrompt(analysis)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasSuffix(first, "resume"), "guidelines close the prompt")
}
