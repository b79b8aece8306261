package action

import (
	"context"
	"sync"
	"testing"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_RejectsSecondCallWhileOutstanding(t *testing.T) {
	g := NewGuard("dashboard.load", logger.NewTestLogger(t))

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = g.Run(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	assert.True(t, g.Busy())

	calls := 0
	err := g.Run(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeActionInFlight))
	assert.Zero(t, calls)

	close(release)
	wg.Wait()
	assert.False(t, g.Busy())
}

func TestGuard_ReleasesAfterFailure(t *testing.T) {
	g := NewGuard("profile.update", nil)

	err := g.Run(context.Background(), func(context.Context) error {
		return errors.NewNotFoundError("User not found")
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	assert.NoError(t, g.Run(context.Background(), func(context.Context) error { return nil }))
}

func TestGuard_Fail(t *testing.T) {
	g := NewGuard("proposal.detail.load", logger.NewTestLogger(t))

	f := g.Fail(errors.NewNotFoundError("Proposal not found"), "Failed to load proposal", errors.Fixed)

	assert.Equal(t, "Failed to load proposal", f.Message)
	assert.Equal(t, "proposal.detail.load", f.Action)
	assert.True(t, errors.HasCode(f, errors.ErrCodeNotFound))
	assert.Equal(t, "Failed to load proposal", Message(f))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, errors.MessageNoResponse, Message(errors.NewNetworkError(context.DeadlineExceeded)))
}
