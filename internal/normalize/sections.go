package normalize

import (
	"bytes"
	"encoding/json"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/validation"
	"proposal-desk/internal/models"
)

// UnwrapSectionSet extracts the generated sections from a generation response. The sections may sit
// under "data", under "sections", or at the top level. A body that is not an object is an
// INVALID_RESPONSE error; missing sections are only reported in missing.
func (n *Normalizer) UnwrapSectionSet(body []byte) (set models.SectionSet, missing []string, err error) {
	var top map[string]json.RawMessage
	if !isObject(body) || json.Unmarshal(body, &top) != nil {
		return models.SectionSet{}, nil, errors.NewInvalidResponseError("generation response is not an object")
	}

	candidate := json.RawMessage(bytes.TrimSpace(body))
	if v, ok := top["data"]; ok && truthy(v) {
		candidate = v
	} else if v, ok := top["sections"]; ok && truthy(v) {
		candidate = v
	}

	var fields map[string]json.RawMessage
	if !isObject(candidate) || json.Unmarshal(candidate, &fields) != nil {
		return models.SectionSet{}, nil, errors.NewInvalidResponseError("generated sections are not an object")
	}

	set = models.SectionSet{
		ScopeOfWork:  models.Raw(fields[models.SectionScopeOfWork]),
		Deliverables: models.Raw(fields[models.SectionDeliverables]),
		Timeline:     models.Raw(fields[models.SectionTimeline]),
		Pricing:      models.Raw(fields[models.SectionPricing]),
		Terms:        models.Raw(fields[models.SectionTerms]),
	}

	for _, sec := range models.SectionOrder {
		if raw, ok := fields[sec.Key]; !ok || !truthy(raw) {
			missing = append(missing, sec.Key)
		}
	}

	if len(missing) > 0 {
		logFields := map[string]interface{}{"missing": missing}
		var doc map[string]interface{}
		if json.Unmarshal(candidate, &doc) == nil {
			if problems, serr := validation.CheckSectionSet(doc); serr == nil && len(problems) > 0 {
				logFields["schemaProblems"] = problems
			}
		}
		n.logger.Warn("Missing sections in generation response", logFields)
	}

	return set, missing, nil
}

func isObject(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// truthy follows the usual loose rules: null, false, 0 and "" are falsy.
func truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	switch trimmed[0] {
	case '{', '[':
		return true
	case '"':
		var s string
		return json.Unmarshal(trimmed, &s) == nil && s != ""
	}
	switch string(trimmed) {
	case "null", "false":
		return false
	}
	return number(string(trimmed)) != ""
}
