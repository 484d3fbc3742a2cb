package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dine/backend/internal/domain"
)

// TutorialStore is the persistence the service depends on.
type TutorialStore interface {
	Create(ctx context.Context, t *domain.Tutorial) error
	List(ctx context.Context, filter domain.TutorialFilter) ([]*domain.Tutorial, error)
	GetByID(ctx context.Context, id string) (*domain.Tutorial, error)
	Update(ctx context.Context, id string, patch domain.TutorialPatch) (*domain.Tutorial, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// CreateTutorialParams holds the fields accepted when creating a tutorial.
type CreateTutorialParams struct {
	Title       string
	Description string
	Published   bool
}

// TutorialService implements the tutorial operations exposed by the route module.
type TutorialService struct {
	store     TutorialStore
	validator *Validator
}

// NewTutorialService creates a new TutorialService.
func NewTutorialService(store TutorialStore) *TutorialService {
	return &TutorialService{
		store:     store,
		validator: NewValidator(),
	}
}

// Create validates and stores a new tutorial.
func (s *TutorialService) Create(ctx context.Context, params CreateTutorialParams) (*domain.Tutorial, error) {
	params.Title = strings.TrimSpace(params.Title)
	if err := s.validator.CheckCreate(params); err != nil {
		return nil, err
	}

	t := &domain.Tutorial{
		Title:       params.Title,
		Description: params.Description,
		Published:   params.Published,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	slog.Info("tutorial created", "tutorial_id", t.ID)

	return t, nil
}

// List returns all tutorials whose title contains title; empty title lists everything.
func (s *TutorialService) List(ctx context.Context, title string) ([]*domain.Tutorial, error) {
	return s.store.List(ctx, domain.TutorialFilter{TitleContains: strings.TrimSpace(title)})
}

// ListPublished returns the published tutorials.
func (s *TutorialService) ListPublished(ctx context.Context) ([]*domain.Tutorial, error) {
	published := true
	return s.store.List(ctx, domain.TutorialFilter{Published: &published})
}

// Get returns one tutorial.
func (s *TutorialService) Get(ctx context.Context, id string) (*domain.Tutorial, error) {
	return s.store.GetByID(ctx, id)
}

// Update applies a partial update.
func (s *TutorialService) Update(ctx context.Context, id string, patch domain.TutorialPatch) (*domain.Tutorial, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	if err := s.validator.CheckPatch(patch); err != nil {
		return nil, err
	}

	t, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	slog.Info("tutorial updated", "tutorial_id", id)

	return t, nil
}

// Delete removes one tutorial.
func (s *TutorialService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("tutorial deleted", "tutorial_id", id)

	return nil
}

// DeleteAll removes every tutorial.
func (s *TutorialService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	slog.Info("tutorials deleted", "count", n)

	return n, nil
}
