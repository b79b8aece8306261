package simulator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proposal-desk/internal/models"
	"proposal-desk/internal/normalize"
)

func TestGenerate_Interpolates(t *testing.T) {
	set := Generate(models.GenerateRequest{
		ClientName:         "Jane",
		ClientCompany:      "Acme",
		ProjectTitle:       "Storefront",
		ProjectDescription: "Sell shoes online",
		Services:           []string{"SEO", "Branding"},
		Timeline:           "1-3 months",
		BudgetRange:        "10k-25k",
	})

	scope := normalize.Canonicalize(set.ScopeOfWork)
	assert.Contains(t, scope, "This project involves Storefront for Jane (Acme).")
	assert.Contains(t, scope, "## Overview\nSell shoes online")
	assert.Contains(t, scope, "## Services Included\nSEO, Branding")

	assert.Contains(t, normalize.Canonicalize(set.Deliverables), "1. Complete Storefront")
	assert.Contains(t, normalize.Canonicalize(set.Timeline), "## Project Duration\n1-3 months")
	assert.Contains(t, normalize.Canonicalize(set.Pricing), "## Project Budget\nBudget Range: 10k-25k")
	assert.Contains(t, normalize.Canonicalize(set.Pricing), "- Design & Development: 60%")
	assert.Contains(t, normalize.Canonicalize(set.Terms), "# Terms & Conditions")
}

func TestGenerate_Defaults(t *testing.T) {
	set := Generate(models.GenerateRequest{ClientName: "Jane", ProjectTitle: "Site"})

	scope := normalize.Canonicalize(set.ScopeOfWork)
	assert.Contains(t, scope, "for Jane.")
	assert.Contains(t, scope, "## Services Included\nWeb Development")
	assert.Contains(t, normalize.Canonicalize(set.Timeline), "## Project Duration\n2-4 weeks")
	assert.Contains(t, normalize.Canonicalize(set.Pricing), "## Project Budget\nTo be discussed")
	assert.Empty(t, set.Missing())
}

func TestGenerate_PersistsNothing(t *testing.T) {
	b := newTestBackend(t)

	res, err := b.Post(context.Background(), "/ai/generate-proposal", []byte(`{"clientName":"Jane","projectTitle":"Site","projectDescription":"d","tone":"bold"}`))
	require.NoError(t, err)

	var set models.SectionSet
	require.NoError(t, json.Unmarshal(res.Data, &set))
	assert.Empty(t, set.Missing())
	assert.Empty(t, b.ListProposals())
}
