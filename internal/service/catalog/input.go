package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

// CreateChallengeInput holds the parameters for creating a challenge.
type CreateChallengeInput struct {
	Name        string
	Description string
}

// Validate checks all fields and collects all errors.
func (i CreateChallengeInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}
	if len(i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateChallengeInput holds the parameters for updating a challenge.
type UpdateChallengeInput struct {
	ChallengeID uuid.UUID
	Name        *string
	Description *string
	IsActive    *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateChallengeInput) Validate() error {
	var errs []domain.FieldError

	if i.ChallengeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "challenge_id", Message: "required"})
	}
	if i.Name == nil && i.Description == nil && i.IsActive == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Description != nil && len(*i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteChallengeInput holds the parameters for deleting a challenge.
type DeleteChallengeInput struct {
	ChallengeID uuid.UUID
}

// Validate checks all fields.
func (i DeleteChallengeInput) Validate() error {
	if i.ChallengeID == uuid.Nil {
		return domain.NewValidationError("challenge_id", "required")
	}
	return nil
}

// CreateWisdomInput holds the parameters for adding a wisdom source.
type CreateWisdomInput struct {
	Name        string
	Description string
	Tag         string
}

// Validate checks all fields and collects all errors.
func (i CreateWisdomInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if len(i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}
	if len(i.Tag) > 50 {
		errs = append(errs, domain.FieldError{Field: "tag", Message: "max 50 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateWisdomInput holds the parameters for updating a wisdom source.
type UpdateWisdomInput struct {
	WisdomID    uuid.UUID
	Name        *string
	Description *string
	Tag         *string
	IsActive    *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateWisdomInput) Validate() error {
	var errs []domain.FieldError

	if i.WisdomID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "wisdom_id", Message: "required"})
	}
	if i.Name == nil && i.Description == nil && i.Tag == nil && i.IsActive == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Description != nil && len(*i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}
	if i.Tag != nil && len(*i.Tag) > 50 {
		errs = append(errs, domain.FieldError{Field: "tag", Message: "max 50 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteWisdomInput holds the parameters for deleting a wisdom source.
type DeleteWisdomInput struct {
	WisdomID uuid.UUID
}

// Validate checks all fields.
func (i DeleteWisdomInput) Validate() error {
	if i.WisdomID == uuid.Nil {
		return domain.NewValidationError("wisdom_id", "required")
	}
	return nil
}
