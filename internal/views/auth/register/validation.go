package register

import (
	"strings"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/validation"
)

const (
	MessageRequired     = "Please fill in all fields"
	MessageInvalidEmail = "Please enter a valid email address"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"name", "email", "password"},
		Properties: map[string]validation.Property{
			"name":     {Type: "string", Description: "Display name", MaxLength: intPtr(255)},
			"email":    {Type: "string", Description: "Account email", MaxLength: intPtr(255), Pattern: strPtr(validation.EmailPattern)},
			"password": {Type: "string", Description: "Account password", MaxLength: intPtr(1000)},
		},
	}
}

func Validate(in Input) error {
	result := validation.ValidateInput(map[string]interface{}{
		"name":     in.Name,
		"email":    strings.TrimSpace(in.Email),
		"password": in.Password,
	}, GetInputSchema())
	if result.HasCode("REQUIRED_FIELD_MISSING") {
		return errors.NewValidationError(MessageRequired, result.Fields())
	}
	if result.HasCode("PATTERN_MISMATCH") {
		return errors.NewValidationError(MessageInvalidEmail, []string{"email"})
	}
	if !result.Valid {
		return errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "), result.Fields())
	}
	return nil
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}
