package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dine/backend/internal/domain"
)

func TestTutorialPatch_IsEmpty(t *testing.T) {
	assert.True(t, domain.TutorialPatch{}.IsEmpty())

	published := false
	assert.False(t, domain.TutorialPatch{Published: &published}.IsEmpty())
}

func TestTutorial_HasTitle(t *testing.T) {
	assert.False(t, (&domain.Tutorial{Title: "   "}).HasTitle())
	assert.True(t, (&domain.Tutorial{Title: "Go basics"}).HasTitle())
}
