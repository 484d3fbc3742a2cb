package domain

import (
	"strings"
	"time"
)

// Tutorial is a published or draft tutorial stored in the document store.
type Tutorial struct {
	ID          string
	Title       string
	Description string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TutorialPatch carries the fields of a partial update. Nil fields are left unchanged.
type TutorialPatch struct {
	Title       *string
	Description *string
	Published   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TutorialPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Published == nil
}

// TutorialFilter narrows a tutorial listing.
type TutorialFilter struct {
	// TitleContains matches titles case-insensitively; empty matches all.
	TitleContains string
	// Published restricts to published (true) or draft (false) tutorials when set.
	Published *bool
}

// HasTitle reports whether the tutorial has a non-blank title.
func (t *Tutorial) HasTitle() bool {
	return strings.TrimSpace(t.Title) != ""
}
