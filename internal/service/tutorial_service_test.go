package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dine/backend/internal/domain"
	"github.com/dine/backend/internal/repository"
	"github.com/dine/backend/internal/service"
)

// TutorialServiceTestSuite is the test suite for TutorialService.
type TutorialServiceTestSuite struct {
	suite.Suite
	store   *repository.MemoryTutorialRepository
	service *service.TutorialService
}

// SetupTest runs before each test.
func (s *TutorialServiceTestSuite) SetupTest() {
	s.store = repository.NewMemoryTutorialRepository()
	s.service = service.NewTutorialService(s.store)
}

func TestTutorialServiceSuite(t *testing.T) {
	suite.Run(t, new(TutorialServiceTestSuite))
}

func (s *TutorialServiceTestSuite) create(title string, published bool) *domain.Tutorial {
	t, err := s.service.Create(context.Background(), service.CreateTutorialParams{
		Title:       title,
		Description: "about " + title,
		Published:   published,
	})
	s.Require().NoError(err)
	return t
}

// TestCreate_Success tests that a tutorial is stored with trimmed title.
func (s *TutorialServiceTestSuite) TestCreate_Success() {
	t := s.create("  Getting started  ", false)

	s.NotEmpty(t.ID)
	s.Equal("Getting started", t.Title)
	s.False(t.Published)

	stored, err := s.store.GetByID(context.Background(), t.ID)
	s.Require().NoError(err)
	s.Equal("Getting started", stored.Title)
}

// TestCreate_EmptyTitle tests that a blank title is rejected.
func (s *TutorialServiceTestSuite) TestCreate_EmptyTitle() {
	_, err := s.service.Create(context.Background(), service.CreateTutorialParams{Title: "   "})
	s.ErrorIs(err, domain.ErrEmptyContent)
}

// TestCreate_TitleTooLong tests the title length limit.
func (s *TutorialServiceTestSuite) TestCreate_TitleTooLong() {
	_, err := s.service.Create(context.Background(), service.CreateTutorialParams{Title: strings.Repeat("x", 201)})
	s.ErrorIs(err, domain.ErrValidation)
	s.Contains(err.Error(), "title must be at most 200 characters")
}

// TestList_TitleFilter tests case-insensitive title matching.
func (s *TutorialServiceTestSuite) TestList_TitleFilter() {
	s.create("Node.js Express", false)
	s.create("Go net/http", true)

	all, err := s.service.List(context.Background(), "")
	s.Require().NoError(err)
	s.Len(all, 2)

	matched, err := s.service.List(context.Background(), "express")
	s.Require().NoError(err)
	s.Require().Len(matched, 1)
	s.Equal("Node.js Express", matched[0].Title)
}

// TestListPublished tests that drafts are excluded.
func (s *TutorialServiceTestSuite) TestListPublished() {
	s.create("Draft", false)
	s.create("Released", true)

	published, err := s.service.ListPublished(context.Background())
	s.Require().NoError(err)
	s.Require().Len(published, 1)
	s.Equal("Released", published[0].Title)
}

// TestUpdate_Success tests a partial update.
func (s *TutorialServiceTestSuite) TestUpdate_Success() {
	t := s.create("Draft", false)
	published := true

	updated, err := s.service.Update(context.Background(), t.ID, domain.TutorialPatch{Published: &published})
	s.Require().NoError(err)
	s.True(updated.Published)
	s.Equal("Draft", updated.Title)
}

// TestUpdate_Empty tests that an empty patch is rejected before touching the store.
func (s *TutorialServiceTestSuite) TestUpdate_Empty() {
	_, err := s.service.Update(context.Background(), "missing", domain.TutorialPatch{})
	s.ErrorIs(err, domain.ErrEmptyUpdate)
}

// TestUpdate_BlankTitle tests that a title cannot be cleared.
func (s *TutorialServiceTestSuite) TestUpdate_BlankTitle() {
	t := s.create("Keep me", false)
	blank := " "

	_, err := s.service.Update(context.Background(), t.ID, domain.TutorialPatch{Title: &blank})
	s.ErrorIs(err, domain.ErrValidation)
}

// TestUpdate_NotFound tests updating a missing tutorial.
func (s *TutorialServiceTestSuite) TestUpdate_NotFound() {
	title := "New title"
	_, err := s.service.Update(context.Background(), "65f000000000000000000000", domain.TutorialPatch{Title: &title})
	s.ErrorIs(err, domain.ErrTutorialNotFound)
}

// TestDelete tests deleting one and then all tutorials.
func (s *TutorialServiceTestSuite) TestDelete() {
	first := s.create("First", false)
	s.create("Second", false)
	s.create("Third", true)

	s.Require().NoError(s.service.Delete(context.Background(), first.ID))
	s.ErrorIs(s.service.Delete(context.Background(), first.ID), domain.ErrTutorialNotFound)
	s.ErrorIs(s.service.Delete(context.Background(), "zzz"), domain.ErrInvalidID)

	n, err := s.service.DeleteAll(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(2), n)
}
