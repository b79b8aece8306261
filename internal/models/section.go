package models

import "encoding/json"

// SectionValue holds a content section exactly as decoded: a JSON string, an object, or anything else
// the server sent. It is canonicalized to a string before display or persistence.
type SectionValue json.RawMessage

// Text wraps a plain string section.
func Text(s string) SectionValue {
	b, _ := json.Marshal(s)
	return SectionValue(b)
}

// Raw wraps already encoded JSON.
func Raw(b []byte) SectionValue {
	return SectionValue(append([]byte(nil), b...))
}

// IsZero reports an absent section.
func (v SectionValue) IsZero() bool {
	return len(v) == 0
}

func (v SectionValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return []byte(v), nil
}

func (v *SectionValue) UnmarshalJSON(data []byte) error {
	*v = append((*v)[0:0], data...)
	return nil
}

// Section names, in display order.
const (
	SectionScopeOfWork  = "scopeOfWork"
	SectionDeliverables = "deliverables"
	SectionTimeline     = "timeline"
	SectionPricing      = "pricing"
	SectionTerms        = "terms"
)

// SectionOrder lists the sections with their display titles.
var SectionOrder = []struct {
	Key   string
	Title string
}{
	{SectionScopeOfWork, "Scope of Work"},
	{SectionDeliverables, "Deliverables"},
	{SectionTimeline, "Timeline & Milestones"},
	{SectionPricing, "Pricing Breakdown"},
	{SectionTerms, "Terms & Conditions"},
}

// SectionSet is the five-section output of a generation call, still polymorphic.
type SectionSet struct {
	ScopeOfWork  SectionValue `json:"scopeOfWork,omitempty"`
	Deliverables SectionValue `json:"deliverables,omitempty"`
	Timeline     SectionValue `json:"timeline,omitempty"`
	Pricing      SectionValue `json:"pricing,omitempty"`
	Terms        SectionValue `json:"terms,omitempty"`
}

// Get returns the section stored under key.
func (s SectionSet) Get(key string) SectionValue {
	switch key {
	case SectionScopeOfWork:
		return s.ScopeOfWork
	case SectionDeliverables:
		return s.Deliverables
	case SectionTimeline:
		return s.Timeline
	case SectionPricing:
		return s.Pricing
	case SectionTerms:
		return s.Terms
	}
	return nil
}

// Missing lists the sections that are absent or null.
func (s SectionSet) Missing() []string {
	var missing []string
	for _, sec := range SectionOrder {
		v := s.Get(sec.Key)
		if v.IsZero() || string(v) == "null" {
			missing = append(missing, sec.Key)
		}
	}
	return missing
}
