package dashboard

import (
	"context"
	"net/http"
	"testing"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
	"proposal-desk/internal/views/action"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListProposals(ctx context.Context) ([]models.Proposal, bool, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Proposal)
	return list, args.Bool(1), args.Error(2)
}

func TestHandle_CountsByStatus(t *testing.T) {
	api := new(MockAPI)
	api.On("ListProposals", mock.Anything).Return([]models.Proposal{
		{ID: "proposal_1", Status: models.StatusDraft},
		{ID: "proposal_2", Status: models.StatusSent},
		{ID: "proposal_3", Status: models.StatusDraft},
	}, false, nil).Once()

	h, err := NewHandler(HandlerOptions{API: api, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	out, err := h.Handle(context.Background())

	require.NoError(t, err)
	assert.Len(t, out.Proposals, 3)
	assert.Equal(t, 2, out.Drafts)
	assert.Equal(t, 1, out.Sent)
}

func TestHandle_UnexpectedShapeShowsEmptyList(t *testing.T) {
	api := new(MockAPI)
	api.On("ListProposals", mock.Anything).Return([]models.Proposal{}, true, nil).Once()

	h, err := NewHandler(HandlerOptions{API: api})
	require.NoError(t, err)

	out, err := h.Handle(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, out.Proposals)
	assert.Empty(t, out.Proposals)
}

func TestHandle_FailureKeepsFixedMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"server message ignored", errors.NewStatusError(http.StatusInternalServerError, "db down", "")},
		{"network", errors.NewNetworkError(context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("ListProposals", mock.Anything).Return(nil, false, tt.err).Once()

			h, err := NewHandler(HandlerOptions{API: api})
			require.NoError(t, err)

			out, err := h.Handle(context.Background())

			require.Error(t, err)
			assert.Equal(t, MessageFailed, action.Message(err))
			require.NotNil(t, out)
			assert.Empty(t, out.Proposals)
		})
	}
}
