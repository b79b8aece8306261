// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	OpRegister         = "register"
	OpLogin            = "login"
	OpListProposals    = "listProposals"
	OpGetProposal      = "getProposal"
	OpCreateProposal   = "createProposal"
	OpGenerateProposal = "generateProposal"
	OpListTemplates    = "listTemplates"
	OpCreateTemplate   = "createTemplate"
	OpUpdateProfile    = "updateProfile"
)

// Default returns the built-in route table.
func Default() *RouteRegistry {
	return &RouteRegistry{
		Version:     "1.0.0",
		LastUpdated: "2024-01-01T00:00:00Z",
		Routes: []Route{
			{Operation: OpRegister, Method: "POST", Pattern: "/auth/register", Latency: LatencyWrite, Public: true,
				Description: "Create an account and start a session", ErrorCodes: []string{"CONFLICT"}},
			{Operation: OpLogin, Method: "POST", Pattern: "/auth/login", Latency: LatencyWrite, Public: true,
				Description: "Start a session for an existing account", ErrorCodes: []string{"UNAUTHORIZED"}},
			{Operation: OpListProposals, Method: "GET", Pattern: "/proposals", Latency: LatencyRead,
				Description: "List stored proposals"},
			{Operation: OpGetProposal, Method: "GET", Pattern: "/proposals/:id", Latency: LatencyRead,
				Description: "Fetch one proposal", ErrorCodes: []string{"NOT_FOUND"}},
			{Operation: OpCreateProposal, Method: "POST", Pattern: "/proposals", Latency: LatencyWrite,
				Description: "Store a proposal, also used to duplicate one"},
			{Operation: OpGenerateProposal, Method: "POST", Pattern: "/ai/generate-proposal", Latency: LatencyGenerate,
				Description: "Generate the five proposal sections"},
			{Operation: OpListTemplates, Method: "GET", Pattern: "/templates", Latency: LatencyRead,
				Description: "List stored templates"},
			{Operation: OpCreateTemplate, Method: "POST", Pattern: "/templates", Latency: LatencyWrite,
				Description: "Store a template"},
			// Profile updates answer on the read delay.
			{Operation: OpUpdateProfile, Method: "PUT", Pattern: "/me", Latency: LatencyRead,
				Description: "Rename the current user", ErrorCodes: []string{"NOT_FOUND"}},
		},
	}
}

func LoadRegistry(path string) (*RouteRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg RouteRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Save writes the registry as indented JSON and stamps LastUpdated.
func (r *RouteRegistry) Save(path string) error {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Match finds the route serving method and path. The query string is ignored.
func (r *RouteRegistry) Match(method, path string) (Route, Params, bool) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	method = strings.ToUpper(method)
	for _, route := range r.Routes {
		if route.Method != method {
			continue
		}
		if params, ok := matchPattern(route.Pattern, path); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

// Lookup returns the route registered for operation.
func (r *RouteRegistry) Lookup(operation string) (Route, bool) {
	for _, route := range r.Routes {
		if route.Operation == operation {
			return route, true
		}
	}
	return Route{}, false
}

// Validate checks the table for missing fields and ambiguous entries.
func (r *RouteRegistry) Validate() error {
	if len(r.Routes) == 0 {
		return fmt.Errorf("registry contains no routes")
	}

	ops := make(map[string]bool)
	keys := make(map[string]bool)
	for _, route := range r.Routes {
		if route.Operation == "" {
			return fmt.Errorf("route %s %s missing required field: operation", route.Method, route.Pattern)
		}
		if ops[route.Operation] {
			return fmt.Errorf("duplicate operation: %s", route.Operation)
		}
		ops[route.Operation] = true

		switch route.Method {
		case "GET", "POST", "PUT", "DELETE":
		default:
			return fmt.Errorf("route %s has unsupported method %q", route.Operation, route.Method)
		}
		if !strings.HasPrefix(route.Pattern, "/") {
			return fmt.Errorf("route %s pattern must start with /", route.Operation)
		}
		switch route.Latency {
		case LatencyRead, LatencyWrite, LatencyGenerate:
		default:
			return fmt.Errorf("route %s has unknown latency class %q", route.Operation, route.Latency)
		}

		key := route.Method + " " + route.Pattern
		if keys[key] {
			return fmt.Errorf("duplicate route: %s", key)
		}
		keys[key] = true
	}
	return nil
}

func matchPattern(pattern, path string) (Params, bool) {
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	sp := strings.Split(strings.Trim(path, "/"), "/")
	if len(pp) != len(sp) {
		return nil, false
	}

	params := Params{}
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			if sp[i] == "" {
				return nil, false
			}
			params[seg[1:]] = sp[i]
			continue
		}
		if seg != sp[i] {
			return nil, false
		}
	}
	return params, true
}
