package dto

import (
	"fmt"
	"time"

	"github.com/dine/backend/internal/domain"
)

// TutorialResponse represents a tutorial in API responses.
type TutorialResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateTutorialResponse is returned by PUT /api/tutorials/{id}.
type UpdateTutorialResponse struct {
	Message  string           `json:"message"`
	Tutorial TutorialResponse `json:"tutorial"`
}

// DeleteAllResponse is returned by DELETE /api/tutorials.
type DeleteAllResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ToTutorialResponse converts domain.Tutorial to TutorialResponse.
func ToTutorialResponse(t *domain.Tutorial) TutorialResponse {
	return TutorialResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Published:   t.Published,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTutorialResponses converts a slice, never returning nil.
func ToTutorialResponses(ts []*domain.Tutorial) []TutorialResponse {
	out := make([]TutorialResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTutorialResponse(t)
	}
	return out
}

// NewDeleteAllResponse builds the confirmation for a bulk delete.
func NewDeleteAllResponse(n int64) DeleteAllResponse {
	return DeleteAllResponse{
		Message:      fmt.Sprintf("%d Tutorials were deleted successfully!", n),
		DeletedCount: n,
	}
}
