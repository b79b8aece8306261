package profile

import (
	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/validation"
)

const MessageNameRequired = "Name is required"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]validation.Property{
			"name": {Type: "string", Description: "Display name"},
		},
	}
}

func Validate(in Input) error {
	result := validation.ValidateInput(map[string]interface{}{"name": in.Name}, GetInputSchema())
	if !result.Valid {
		return errors.NewValidationError(MessageNameRequired, result.Fields())
	}
	return nil
}
