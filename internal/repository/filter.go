package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dine/backend/internal/domain"
)

// tutorialFilter translates a domain filter into a bson query document.
func tutorialFilter(f domain.TutorialFilter) bson.D {
	filter := bson.D{}
	if f.TitleContains != "" {
		filter = append(filter, bson.E{Key: "title", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(f.TitleContains),
			Options: "i",
		}})
	}
	if f.Published != nil {
		filter = append(filter, bson.E{Key: "published", Value: *f.Published})
	}
	return filter
}

// tutorialUpdate builds a $set document for the non-nil fields of a patch.
func tutorialUpdate(p domain.TutorialPatch) bson.D {
	set := bson.D{}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Published != nil {
		set = append(set, bson.E{Key: "published", Value: *p.Published})
	}
	return set
}

// parseObjectID converts a hex id, mapping malformed input to domain.ErrInvalidID.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}
