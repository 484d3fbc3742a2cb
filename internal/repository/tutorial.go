package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dine/backend/internal/database"
	"github.com/dine/backend/internal/domain"
)

// TutorialCollection is the collection holding tutorial documents.
const TutorialCollection = "tutorials"

// tutorialDocument is the stored shape of a tutorial.
type tutorialDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Published   bool               `bson:"published"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *tutorialDocument) toDomain() *domain.Tutorial {
	return &domain.Tutorial{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Published:   d.Published,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// TutorialRepository handles database operations for tutorials.
type TutorialRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewTutorialRepository creates a new TutorialRepository on db.
func NewTutorialRepository(db *mongo.Database) *TutorialRepository {
	return &TutorialRepository{
		coll: db.Collection(TutorialCollection),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// TutorialIndexes declares the indexes the tutorial queries rely on.
func TutorialIndexes() database.IndexSet {
	return database.IndexSet{
		Collection: TutorialCollection,
		Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "published", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "title", Value: 1}}},
		},
	}
}

// Create inserts a tutorial and fills in its ID and timestamps.
func (r *TutorialRepository) Create(ctx context.Context, t *domain.Tutorial) error {
	now := r.now()
	doc := tutorialDocument{
		Title:       t.Title,
		Description: t.Description,
		Published:   t.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert tutorial: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert tutorial: unexpected id type %T", res.InsertedID)
	}

	t.ID = oid.Hex()
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

// List returns the tutorials matching filter, newest first.
func (r *TutorialRepository) List(ctx context.Context, filter domain.TutorialFilter) ([]*domain.Tutorial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, tutorialFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find tutorials: %w", err)
	}
	defer cursor.Close(ctx)

	tutorials := make([]*domain.Tutorial, 0)
	for cursor.Next(ctx) {
		var doc tutorialDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tutorial: %w", err)
		}
		tutorials = append(tutorials, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate tutorials: %w", err)
	}
	return tutorials, nil
}

// GetByID retrieves a tutorial by its hex ID.
func (r *TutorialRepository) GetByID(ctx context.Context, id string) (*domain.Tutorial, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc tutorialDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorialNotFound
		}
		return nil, fmt.Errorf("find tutorial: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies patch to the tutorial and returns the updated document.
func (r *TutorialRepository) Update(ctx context.Context, id string, patch domain.TutorialPatch) (*domain.Tutorial, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := append(tutorialUpdate(patch), bson.E{Key: "updatedAt", Value: r.now()})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc tutorialDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorialNotFound
		}
		return nil, fmt.Errorf("update tutorial: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes a single tutorial.
func (r *TutorialRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete tutorial: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTutorialNotFound
	}
	return nil
}

// DeleteAll removes every tutorial and reports how many were deleted.
func (r *TutorialRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("delete tutorials: %w", err)
	}
	return res.DeletedCount, nil
}
