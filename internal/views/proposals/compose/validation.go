package compose

import (
	"strings"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/validation"
	"proposal-desk/internal/models"
)

const (
	MessageRequired     = "Please fill in all required fields"
	MessageNothingSaved = "Generate a proposal before saving"
)

func GetInputSchema() validation.JSONSchema {
	tones := make([]string, len(models.Tones))
	for i, t := range models.Tones {
		tones[i] = string(t)
	}
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"clientName", "projectTitle", "projectDescription"},
		Properties: map[string]validation.Property{
			"clientName":         {Type: "string", Description: "Client contact name"},
			"clientCompany":      {Type: "string", Description: "Client company"},
			"projectTitle":       {Type: "string", Description: "Project title"},
			"projectDescription": {Type: "string", Description: "What the client needs"},
			"budgetRange":        {Type: "string", Description: "Budget range label"},
			"timeline":           {Type: "string", Description: "Expected duration"},
			"services":           {Type: "array", Description: "Services offered", Items: &validation.Property{Type: "string"}},
			"tone":               {Type: "string", Description: "Writing tone", Enum: tones},
		},
	}
}

// Validate rejects the form before any request is made.
func Validate(f Form) error {
	input := map[string]interface{}{
		"clientName":         f.ClientName,
		"clientCompany":      f.ClientCompany,
		"projectTitle":       f.ProjectTitle,
		"projectDescription": f.ProjectDescription,
		"budgetRange":        f.BudgetRange,
		"timeline":           f.Timeline,
		"services":           f.Services,
	}
	if f.Tone != "" {
		input["tone"] = string(f.Tone)
	}

	result := validation.ValidateInput(input, GetInputSchema())
	if result.HasCode("REQUIRED_FIELD_MISSING") {
		return errors.NewValidationError(MessageRequired, result.Fields())
	}
	if !result.Valid {
		return errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "), result.Fields())
	}
	return nil
}
