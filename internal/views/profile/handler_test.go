package profile

import (
	"context"
	"net/http"
	"testing"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/session"
	"proposal-desk/internal/models"
	"proposal-desk/internal/views/action"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) UpdateProfile(ctx context.Context, name string) (models.User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.User), args.Error(1)
}

func TestHandle_UpdatesStoredUser(t *testing.T) {
	ctx := context.Background()
	sess := session.New(session.NewMemoryStore(), nil)
	require.NoError(t, sess.Set(ctx, "tok", models.User{ID: "user_1", Name: "Ada"}))

	api := new(MockAPI)
	updated := models.User{ID: "user_1", Name: "Ada Lovelace", Plan: models.PlanFree}
	api.On("UpdateProfile", mock.Anything, "Ada Lovelace").Return(updated, nil).Once()

	h, err := NewHandler(HandlerOptions{API: api, Session: sess, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	out, err := h.Handle(ctx, Input{Name: "Ada Lovelace"})

	require.NoError(t, err)
	assert.Equal(t, MessageUpdated, out.Message)
	stored, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", stored.Name)
	assert.Equal(t, "tok", sess.Token())
}

func TestHandle_BlankName(t *testing.T) {
	api := new(MockAPI)
	h, err := NewHandler(HandlerOptions{API: api, Session: session.New(session.NewMemoryStore(), nil)})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), Input{Name: "  "})

	require.Error(t, err)
	assert.Equal(t, MessageNameRequired, action.Message(err))
	api.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestHandle_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", errors.NewNotFoundError("User not found"), "User not found"},
		{"no server message", errors.NewStatusError(http.StatusBadGateway, "", ""), MessageFallback},
		{"network", errors.NewNetworkError(context.Canceled), MessageFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("UpdateProfile", mock.Anything, "Ada").Return(models.User{}, tt.err).Once()

			h, err := NewHandler(HandlerOptions{API: api, Session: session.New(session.NewMemoryStore(), nil)})
			require.NoError(t, err)

			_, err = h.Handle(context.Background(), Input{Name: "Ada"})

			require.Error(t, err)
			assert.Equal(t, tt.want, action.Message(err))
		})
	}
}
