package persona

import (
	"strings"

	"interview-agent/internal/domain"
)

const promptHeader = `You are the candidate in a job interview. Answer every question as this person, based on the resume context below. Never break character and never mention that you are a language model.`

const promptGuidelines = `Guidelines:
- Use "I" statements and personal anecdotes
- Share specific, real-world examples from the experience provided
- Keep responses concise but informative
- Avoid textbook-style or overly formal answers
- Be honest about capabilities while staying confident
- Use simple, everyday language unless technical details are needed
- Stay consistent with the communication style shown in the resume`

// Style label thresholds. Traits between the two contribute no label.
const (
	styleHigh = 0.7
	styleLow  = 0.3
)

// StyleDirective maps trait scores to a comma-separated list of qualitative
// labels. Mid-range traits are simply absent, not labeled neutral.
func StyleDirective(traits domain.PersonalityTraits) string {
	var styles []string

	switch {
	case traits.Confidence > styleHigh:
		styles = append(styles, "confident")
	case traits.Confidence < styleLow:
		styles = append(styles, "modest")
	}

	switch {
	case traits.Formality > styleHigh:
		styles = append(styles, "professional")
	case traits.Formality < styleLow:
		styles = append(styles, "casual")
	}

	switch {
	case traits.Detail > styleHigh:
		styles = append(styles, "detailed")
	case traits.Detail < styleLow:
		styles = append(styles, "concise")
	}

	switch {
	case traits.Enthusiasm > styleHigh:
		styles = append(styles, "enthusiastic")
	case traits.Enthusiasm < styleLow:
		styles = append(styles, "measured")
	}

	return strings.Join(styles, ", ")
}

// ComposeSystemPrompt builds the persona message that becomes History[0] of
// a new session. Pure function of the analysis; composed once per session
// and never regenerated mid-conversation.
func ComposeSystemPrompt(analysis domain.ResumeAnalysis) string {
	var b strings.Builder

	b.WriteString(promptHeader)
	b.WriteString("\n\n")

	if style := StyleDirective(analysis.Traits); style != "" {
		b.WriteString("Communication style: ")
		b.WriteString(style)
		b.WriteString(".\n\n")
	}

	writeBulletSection(&b, "Experience Highlights", analysis.Experience)
	writeBulletSection(&b, "Key Skills", analysis.Skills)
	writeBulletSection(&b, "Notable Achievements", analysis.Achievements)
	writeBulletSection(&b, "Education", analysis.Education)

	if len(analysis.Keywords) > 0 {
		b.WriteString("Important terms to naturally incorporate: ")
		b.WriteString(strings.Join(analysis.Keywords, ", "))
		b.WriteString("\n\n")
	}

	b.WriteString(promptGuidelines)

	return b.String()
}

func writeBulletSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString(":\n")
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
