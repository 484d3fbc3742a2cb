package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dine/backend/internal/domain"
)

// TutorialRequest represents the body of POST /api/tutorials and PUT /api/tutorials/{id}.
// Fields are pointers so an update can tell "absent" from "zero".
type TutorialRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Published   *FlexBool `json:"published,omitempty"`
}

// Patch converts the request into a partial update.
func (r TutorialRequest) Patch() domain.TutorialPatch {
	patch := domain.TutorialPatch{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Published != nil {
		published := bool(*r.Published)
		patch.Published = &published
	}
	return patch
}

// FlexBool accepts JSON booleans as well as the string and numeric spellings
// that form-encoded clients send ("true", "1", "yes", ...).
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case bool:
		*b = FlexBool(v)
		return nil
	case float64:
		if v == 0 || v == 1 {
			*b = FlexBool(v == 1)
			return nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			*b = true
			return nil
		case "false", "0", "no", "off":
			*b = false
			return nil
		}
	}
	return fmt.Errorf("cannot use %s as a boolean", string(data))
}
