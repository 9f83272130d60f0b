package persona_test

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"interview-agent/internal/domain"
	"interview-agent/internal/persona"
)

func TestFlavorerNilIsNoOp(t *testing.T) {
	var f *persona.Flavorer

	out := f.Apply("My answer.", domain.PersonalityTraits{Formality: 0.1, Enthusiasm: 0.9})

	assert.Equal(t, "My answer.", out)
}

func TestFlavorerFormalPersonaUnchanged(t *testing.T) {
	f := persona.NewFlavorer(rand.New(rand.NewSource(1)))

	out := f.Apply("I delivered the migration on schedule.", domain.PersonalityTraits{
		Formality: 0.9, Enthusiasm: 0.2,
	})

	assert.Equal(t, "I delivered the migration on schedule.", out)
}

func TestFlavorerLowFormalityAddsCasualOpeners(t *testing.T) {
	f := persona.NewFlavorer(rand.New(rand.NewSource(7)))
	in := "My approach was incremental."

	out := f.Apply(in, domain.PersonalityTraits{Formality: 0.2})

	assert.NotEqual(t, in, out)
	// The original sentence survives, first letter lowered.
	assert.Contains(t, out, "my approach was incremental.")
}

func TestFlavorerHighEnthusiasmAmplifiesPraise(t *testing.T) {
	f := persona.NewFlavorer(rand.New(rand.NewSource(3)))

	out := f.Apply("That was a good result.", domain.PersonalityTraits{
		Formality: 0.8, Enthusiasm: 0.9,
	})

	assert.Regexp(t, regexp.MustCompile(`(really|very|quite|absolutely) good`), out)
}

func TestFlavorerDeterministicForSeed(t *testing.T) {
	traits := domain.PersonalityTraits{Formality: 0.1, Enthusiasm: 0.9}
	in := "Great question. I led the rollout and it was a good outcome."

	a := persona.NewFlavorer(rand.New(rand.NewSource(42))).Apply(in, traits)
	b := persona.NewFlavorer(rand.New(rand.NewSource(42))).Apply(in, traits)

	assert.Equal(t, a, b)
	assert.NotEqual(t, in, a)
}

func TestFlavorerPreservesMultibyteText(t *testing.T) {
	f := persona.NewFlavorer(rand.New(rand.NewSource(7)))
	in := "Éxito came from steady iteration."

	out := f.Apply(in, domain.PersonalityTraits{Formality: 0.2})

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "éxito came from steady iteration.")
}

func TestFlavorerEmptyTextUnchanged(t *testing.T) {
	f := persona.NewFlavorer(rand.New(rand.NewSource(1)))

	assert.Empty(t, f.Apply("", domain.PersonalityTraits{Formality: 0.1}))
}

func TestFlavorerKeepsAnswerBody(t *testing.T) {
	f := persona.NewFlavorer(rand.New(rand.NewSource(11)))
	in := "I profiled the service and removed the lock contention."

	out := f.Apply(in, domain.PersonalityTraits{Formality: 0.3, Enthusiasm: 0.4})

	assert.True(t, strings.HasSuffix(out, in[1:]), "tail of the answer is preserved")
}
