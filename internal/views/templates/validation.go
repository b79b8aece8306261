package templates

import (
	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/validation"
)

const MessageRequired = "Title and content are required"

func GetCreateSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"title", "content"},
		Properties: map[string]validation.Property{
			"title":   {Type: "string", Description: "Template title"},
			"content": {Type: "string", Description: "Template body"},
		},
	}
}

// ValidateCreate rejects a template without a title or content. No request is made in that case.
func ValidateCreate(in CreateInput) error {
	result := validation.ValidateInput(map[string]interface{}{
		"title":   in.Title,
		"content": in.Content,
	}, GetCreateSchema())
	if !result.Valid {
		return errors.NewValidationError(MessageRequired, result.Fields())
	}
	return nil
}
