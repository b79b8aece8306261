// pkg/registry/schema.go
package registry

// RouteRegistry is the fixed, enumerable set of routes the API exposes.
type RouteRegistry struct {
	Version     string  `json:"version"`
	LastUpdated string  `json:"lastUpdated"`
	Routes      []Route `json:"routes"`
}

// LatencyClass is the simulated cost of an operation.
type LatencyClass string

const (
	LatencyRead     LatencyClass = "read"
	LatencyWrite    LatencyClass = "write"
	LatencyGenerate LatencyClass = "generate"
)

type Route struct {
	Operation   string       `json:"operation"`
	Method      string       `json:"method"`
	Pattern     string       `json:"pattern"`
	Latency     LatencyClass `json:"latency"`
	Public      bool         `json:"public"`
	Description string       `json:"description"`
	ErrorCodes  []string     `json:"errorCodes"`
}

// Params holds the values of the ":name" segments of a matched pattern.
type Params map[string]string
