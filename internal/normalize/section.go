package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"proposal-desk/internal/models"
)

// Kind tags the recognized shapes of a content section.
type Kind int

const (
	KindPlain Kind = iota
	KindTimeline
	KindPricing
	KindGeneric
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindTimeline:
		return "timeline"
	case KindPricing:
		return "pricing"
	case KindGeneric:
		return "generic"
	default:
		return "scalar"
	}
}

// Section is one content section classified by shape. Render is pure and total.
type Section interface {
	Kind() Kind
	Render() string
}

// Plain is a section that already is a string.
type Plain struct {
	Text string
}

func (p Plain) Kind() Kind      { return KindPlain }
func (p Plain) Render() string { return p.Text }

// Timeline is an object with exactly the keys start, mid and end.
type Timeline struct {
	Start string
	Mid   string
	End   string
}

func (t Timeline) Kind() Kind { return KindTimeline }

func (t Timeline) Render() string {
	var b strings.Builder
	b.WriteString("# Timeline & Milestones\n\n## Project Start\n")
	b.WriteString(orDefault(t.Start, "N/A"))
	b.WriteString("\n\n## Mid-Project Milestones\n")
	b.WriteString(orDefault(t.Mid, "N/A"))
	b.WriteString("\n\n## Project Completion\n")
	b.WriteString(orDefault(t.End, "N/A"))
	return b.String()
}

// Pricing is an object carrying totalCost or paymentTerms.
type Pricing struct {
	TotalCost    string
	PaymentTerms string
	Breakdown    string
	Notes        string
}

func (p Pricing) Kind() Kind { return KindPricing }

func (p Pricing) Render() string {
	var b strings.Builder
	b.WriteString("# Pricing Breakdown\n\n## Total Cost\n")
	b.WriteString(orDefault(p.TotalCost, "To be discussed"))
	b.WriteString("\n\n## Payment Terms\n")
	b.WriteString(orDefault(p.PaymentTerms, "Standard payment terms apply"))
	if p.Breakdown != "" {
		b.WriteString("\n\n## Cost Breakdown\n")
		b.WriteString(p.Breakdown)
	}
	if p.Notes != "" {
		b.WriteString("\n\n## Additional Notes\n")
		b.WriteString(p.Notes)
	}
	return b.String()
}

// Generic is any other object or array, rendered as indented JSON with sorted keys.
type Generic struct {
	Value interface{}
}

func (g Generic) Kind() Kind { return KindGeneric }

func (g Generic) Render() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Value); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Scalar is null, a boolean or a number. Falsy values render empty.
type Scalar struct {
	Value interface{}
}

func (s Scalar) Kind() Kind      { return KindScalar }
func (s Scalar) Render() string { return text(s.Value) }

// Classify decodes a raw section and tags its shape.
func Classify(v models.SectionValue) Section {
	if v.IsZero() {
		return Scalar{}
	}
	decoded, err := decode(v)
	if err != nil {
		return Plain{Text: string(v)}
	}
	return ClassifyValue(decoded)
}

// ClassifyValue tags an already decoded value. Numbers are expected as json.Number or float64.
func ClassifyValue(value interface{}) Section {
	switch val := value.(type) {
	case string:
		return Plain{Text: val}
	case map[string]interface{}:
		if isTimeline(val) {
			return Timeline{Start: text(val["start"]), Mid: text(val["mid"]), End: text(val["end"])}
		}
		_, hasTotal := val["totalCost"]
		_, hasTerms := val["paymentTerms"]
		if hasTotal || hasTerms {
			return Pricing{
				TotalCost:    text(val["totalCost"]),
				PaymentTerms: text(val["paymentTerms"]),
				Breakdown:    text(val["breakdown"]),
				Notes:        text(val["notes"]),
			}
		}
		return Generic{Value: val}
	case []interface{}:
		return Generic{Value: val}
	default:
		return Scalar{Value: val}
	}
}

// Canonicalize converts a section to its display and storage string. Canonicalize(Text(Canonicalize(v)))
// equals Canonicalize(v).
func Canonicalize(v models.SectionValue) string {
	return Classify(v).Render()
}

// CanonicalizeSet renders all five sections as plain string sections.
func CanonicalizeSet(s models.SectionSet) models.SectionSet {
	return models.SectionSet{
		ScopeOfWork:  models.Text(Canonicalize(s.ScopeOfWork)),
		Deliverables: models.Text(Canonicalize(s.Deliverables)),
		Timeline:     models.Text(Canonicalize(s.Timeline)),
		Pricing:      models.Text(Canonicalize(s.Pricing)),
		Terms:        models.Text(Canonicalize(s.Terms)),
	}
}

func decode(v models.SectionValue) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func isTimeline(obj map[string]interface{}) bool {
	if len(obj) != 3 {
		return false
	}
	for _, key := range []string{"start", "mid", "end"} {
		if _, ok := obj[key]; !ok {
			return false
		}
	}
	return true
}

// text is the string form of a field value; null, false, zero and the empty string give "".
func text(value interface{}) string {
	switch val := value.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case json.Number:
		return number(string(val))
	case float64:
		return number(strconv.FormatFloat(val, 'f', -1, 64))
	case map[string]interface{}, []interface{}:
		out, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(out)
	default:
		return ""
	}
}

func number(lit string) string {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
