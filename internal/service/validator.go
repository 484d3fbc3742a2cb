package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dine/backend/internal/domain"
)

// tutorialInput is the validated shape of tutorial fields.
type tutorialInput struct {
	Title       *string `validate:"omitempty,max=200"`
	Description *string `validate:"omitempty,max=5000"`
}

// Validator checks tutorial input before it reaches the store.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// CheckCreate validates the fields of a new tutorial.
func (v *Validator) CheckCreate(params CreateTutorialParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return domain.ErrEmptyContent
	}
	return v.check(tutorialInput{Title: &params.Title, Description: &params.Description})
}

// CheckPatch validates a partial update.
func (v *Validator) CheckPatch(patch domain.TutorialPatch) error {
	if patch.IsEmpty() {
		return domain.ErrEmptyUpdate
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return fmt.Errorf("%w: title must not be blank", domain.ErrValidation)
	}
	return v.check(tutorialInput{Title: patch.Title, Description: patch.Description})
}

func (v *Validator) check(in tutorialInput) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters", domain.ErrValidation, field, fe.Param())
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, field)
	}
}
