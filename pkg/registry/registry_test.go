package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestMatch(t *testing.T) {
	reg := Default()

	tests := []struct {
		method string
		path   string
		wantOp string
		params Params
	}{
		{"GET", "/proposals", OpListProposals, Params{}},
		{"GET", "/proposals/proposal_42", OpGetProposal, Params{"id": "proposal_42"}},
		{"get", "/proposals/proposal_42?x=1", OpGetProposal, Params{"id": "proposal_42"}},
		{"POST", "/proposals", OpCreateProposal, Params{}},
		{"POST", "/ai/generate-proposal", OpGenerateProposal, Params{}},
		{"POST", "/auth/register", OpRegister, Params{}},
		{"POST", "/auth/login", OpLogin, Params{}},
		{"GET", "/templates", OpListTemplates, Params{}},
		{"POST", "/templates", OpCreateTemplate, Params{}},
		{"PUT", "/me", OpUpdateProfile, Params{}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			route, params, ok := reg.Match(tt.method, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.wantOp, route.Operation)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestMatch_Unknown(t *testing.T) {
	reg := Default()

	for _, tc := range [][2]string{
		{"DELETE", "/proposals/proposal_1"},
		{"PUT", "/proposals/proposal_1"},
		{"GET", "/me"},
		{"GET", "/proposals/a/b"},
		{"GET", "/billing"},
	} {
		_, _, ok := reg.Match(tc[0], tc[1])
		assert.False(t, ok, "%s %s", tc[0], tc[1])
	}
}

func TestLatencyClasses(t *testing.T) {
	reg := Default()

	gen, ok := reg.Lookup(OpGenerateProposal)
	require.True(t, ok)
	assert.Equal(t, LatencyGenerate, gen.Latency)

	list, _ := reg.Lookup(OpListProposals)
	assert.Equal(t, LatencyRead, list.Latency)

	create, _ := reg.Lookup(OpCreateTemplate)
	assert.Equal(t, LatencyWrite, create.Latency)
}

func TestValidate_Rejects(t *testing.T) {
	dup := Default()
	dup.Routes = append(dup.Routes, dup.Routes[0])
	assert.Error(t, dup.Validate())

	bad := &RouteRegistry{Routes: []Route{{Operation: "x", Method: "PATCH", Pattern: "/x", Latency: LatencyRead}}}
	assert.Error(t, bad.Validate())

	assert.Error(t, (&RouteRegistry{}).Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, Default().Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Routes, len(Default().Routes))
	assert.NoError(t, loaded.Validate())
}

func TestCheckedInRegistry_MatchesDefault(t *testing.T) {
	loaded, err := LoadRegistry(filepath.Join("..", "..", "configs", "route-registry.json"))
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())

	want := Default().Routes
	require.Len(t, loaded.Routes, len(want))
	for i, route := range want {
		got := loaded.Routes[i]
		assert.Equal(t, route.Operation, got.Operation)
		assert.Equal(t, route.Method, got.Method)
		assert.Equal(t, route.Pattern, got.Pattern)
		assert.Equal(t, route.Latency, got.Latency)
		assert.Equal(t, route.Public, got.Public)
	}
}
