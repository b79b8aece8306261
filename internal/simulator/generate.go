package simulator

import (
	"fmt"
	"strings"

	"proposal-desk/internal/models"
)

// Generate fills the canned section texts from req. Nothing is stored.
func Generate(req models.GenerateRequest) models.SectionSet {
	company := ""
	if req.ClientCompany != "" {
		company = fmt.Sprintf(" (%s)", req.ClientCompany)
	}
	services := strings.Join(req.Services, ", ")
	if services == "" {
		services = "Web Development"
	}
	timeline := req.Timeline
	if timeline == "" {
		timeline = "2-4 weeks"
	}
	budget := "To be discussed"
	if req.BudgetRange != "" {
		budget = "Budget Range: " + req.BudgetRange
	}

	return models.SectionSet{
		ScopeOfWork: models.Text(fmt.Sprintf(scopeOfWorkText,
			req.ProjectTitle, req.ClientName, company, req.ProjectDescription, services)),
		Deliverables: models.Text(fmt.Sprintf(deliverablesText, req.ProjectTitle)),
		Timeline:     models.Text(fmt.Sprintf(timelineText, timeline)),
		Pricing:      models.Text(fmt.Sprintf(pricingText, budget)),
		Terms:        models.Text(termsText),
	}
}

const scopeOfWorkText = `# Scope of Work

This project involves %s for %s%s.

## Overview
%s

## Key Activities
- Requirements gathering and analysis
- Design and development
- Testing and quality assurance
- Deployment and handover

## Services Included
%s`

const deliverablesText = `# Deliverables

## Primary Deliverables
1. Complete %s
2. Documentation and user guides
3. Source code and assets
4. Training materials (if applicable)

## Deliverable Format
All deliverables will be provided in agreed formats and will be reviewed and approved before final delivery.`

const timelineText = `# Timeline & Milestones

## Project Duration
%s

## Key Milestones
1. **Week 1**: Project kickoff and requirements finalization
2. **Week 2**: Design and development phase
3. **Week 3**: Testing and revisions
4. **Week 4**: Final delivery and handover

## Timeline Notes
Timeline may be adjusted based on client feedback and scope changes.`

const pricingText = `# Pricing Breakdown

## Project Budget
%s

## Cost Breakdown
- Design & Development: 60%%
- Project Management: 20%%
- Testing & QA: 15%%
- Contingency: 5%%

## Payment Terms
- 50%% upfront payment
- 50%% upon completion and delivery

## Additional Notes
All prices are estimates and may vary based on final requirements.`

const termsText = `# Terms & Conditions

## Project Terms
1. This proposal is valid for 30 days from the date of issue.
2. Project scope may be adjusted with written agreement from both parties.
3. Additional work outside the scope will be billed separately.

## Intellectual Property
Upon final payment, all project deliverables will be transferred to the client.

## Cancellation
Either party may cancel this agreement with 14 days written notice.

## Acceptance
By proceeding with this project, the client agrees to these terms and conditions.`
