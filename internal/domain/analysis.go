package domain

// ResumeAnalysis holds the structured facts derived from a resume text
// snapshot. Computed once per upload and never mutated afterwards.
type ResumeAnalysis struct {
	Experience   []string
	Skills       []string
	Achievements []string
	Education    []string

	// Keywords are up to 20 distinct tokens ranked by descending frequency,
	// ties broken by first occurrence in the source text.
	Keywords []string

	Traits PersonalityTraits
}

// PersonalityTraits are four independent behavioral scores, each in [0,1].
type PersonalityTraits struct {
	Confidence float64 // how assertive the answers should sound
	Formality  float64 // formal vs casual language
	Detail     float64 // how detailed the answers should be
	Enthusiasm float64 // level of enthusiasm in answers
}
