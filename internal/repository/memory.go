package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dine/backend/internal/domain"
)

// MemoryTutorialRepository keeps tutorials in process memory. It mirrors the
// semantics of TutorialRepository and backs tests that run without MongoDB.
type MemoryTutorialRepository struct {
	mu        sync.RWMutex
	tutorials map[string]domain.Tutorial
	now       func() time.Time
}

// NewMemoryTutorialRepository creates an empty in-memory repository.
func NewMemoryTutorialRepository() *MemoryTutorialRepository {
	return &MemoryTutorialRepository{
		tutorials: make(map[string]domain.Tutorial),
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *MemoryTutorialRepository) Create(_ context.Context, t *domain.Tutorial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	t.ID = primitive.NewObjectID().Hex()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tutorials[t.ID] = *t
	return nil
}

func (r *MemoryTutorialRepository) List(_ context.Context, filter domain.TutorialFilter) ([]*domain.Tutorial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.TitleContains)
	out := make([]*domain.Tutorial, 0, len(r.tutorials))
	for _, t := range r.tutorials {
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if filter.Published != nil && t.Published != *filter.Published {
			continue
		}
		cp := t
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryTutorialRepository) GetByID(_ context.Context, id string) (*domain.Tutorial, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tutorials[id]
	if !ok {
		return nil, domain.ErrTutorialNotFound
	}
	return &t, nil
}

func (r *MemoryTutorialRepository) Update(_ context.Context, id string, patch domain.TutorialPatch) (*domain.Tutorial, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tutorials[id]
	if !ok {
		return nil, domain.ErrTutorialNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Published != nil {
		t.Published = *patch.Published
	}
	t.UpdatedAt = r.now()
	r.tutorials[id] = t
	return &t, nil
}

func (r *MemoryTutorialRepository) Delete(_ context.Context, id string) error {
	if _, err := parseObjectID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tutorials[id]; !ok {
		return domain.ErrTutorialNotFound
	}
	delete(r.tutorials, id)
	return nil
}

func (r *MemoryTutorialRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.tutorials))
	r.tutorials = make(map[string]domain.Tutorial)
	return n, nil
}
