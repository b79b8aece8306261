package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SectionNames are the five content blocks of a proposal, in display order.
var SectionNames = []string{"scopeOfWork", "deliverables", "timeline", "pricing", "terms"}

const sectionSetSchema = `{
	"type": "object",
	"required": ["scopeOfWork", "deliverables", "timeline", "pricing", "terms"],
	"properties": {
		"scopeOfWork":  {"type": ["string", "object", "array", "number", "boolean", "null"]},
		"deliverables": {"type": ["string", "object", "array", "number", "boolean", "null"]},
		"timeline":     {"type": ["string", "object", "array", "number", "boolean", "null"]},
		"pricing":      {"type": ["string", "object", "array", "number", "boolean", "null"]},
		"terms":        {"type": ["string", "object", "array", "number", "boolean", "null"]}
	}
}`

var sectionSetLoader = gojsonschema.NewStringLoader(sectionSetSchema)

// CheckSectionSet reports the problems found in a decoded generation response. An empty result
// means all five sections are present.
func CheckSectionSet(doc map[string]interface{}) ([]string, error) {
	result, err := gojsonschema.Validate(sectionSetLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("section set schema: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}
