package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dine/backend/internal/domain"
)

func TestTutorialFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.D{}, tutorialFilter(domain.TutorialFilter{}))
}

func TestTutorialFilter_TitleIsEscaped(t *testing.T) {
	published := true
	filter := tutorialFilter(domain.TutorialFilter{TitleContains: "c++ (intro)", Published: &published})

	require.Len(t, filter, 2)
	assert.Equal(t, "title", filter[0].Key)
	assert.Equal(t, primitive.Regex{Pattern: `c\+\+ \(intro\)`, Options: "i"}, filter[0].Value)
	assert.Equal(t, bson.E{Key: "published", Value: true}, filter[1])
}

func TestTutorialUpdate_OnlySetFields(t *testing.T) {
	desc := "updated"
	published := false

	set := tutorialUpdate(domain.TutorialPatch{Description: &desc, Published: &published})

	assert.Equal(t, bson.D{
		{Key: "description", Value: "updated"},
		{Key: "published", Value: false},
	}, set)
}

func TestParseObjectID(t *testing.T) {
	_, err := parseObjectID("not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	oid := primitive.NewObjectID()
	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}
