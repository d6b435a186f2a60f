package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"printfloor/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDelayedJobsHandler struct{ mock.Mock }

func (m *MockDelayedJobsHandler) Handle(ctx context.Context, cmd commands.DetectDelayedJobsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockQueueDepthHandler struct{ mock.Mock }

func (m *MockQueueDepthHandler) Handle(ctx context.Context, cmd commands.BroadcastQueueDepthCommand) (int, bool, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Bool(1), args.Error(2)
}

var now = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestDelayedJobsJob_RunPassesCurrentTime(t *testing.T) {
	// Given
	handler := new(MockDelayedJobsHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DetectDelayedJobsCommand) bool {
		return cmd.AsOf().Equal(now)
	})).Return(2, nil).Once()
	job := NewDelayedJobsJob(handler, "0 * * * * *", discard())
	job.now = func() time.Time { return now }

	// When
	job.run()

	// Then
	handler.AssertExpectations(t)
}

func TestQueueDepthJob_RunSurvivesHandlerError(t *testing.T) {
	// Given
	handler := new(MockQueueDepthHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, false, assert.AnError).Once()
	job := NewQueueDepthJob(handler, "*/15 * * * * *", discard())
	job.now = func() time.Time { return now }

	// When
	job.run()

	// Then
	handler.AssertExpectations(t)
}

func TestJobManager_StartAllRejectsBadSchedule(t *testing.T) {
	// Given
	jm := NewJobManager(new(MockDelayedJobsHandler), new(MockQueueDepthHandler), Schedules{
		DelayScan:  "0 * * * * *",
		QueueDepth: "every now and then",
	}, discard())

	// When
	err := jm.StartAll()

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue depth")
}

func TestJobManager_StartAndStop(t *testing.T) {
	// Given
	jm := NewJobManager(new(MockDelayedJobsHandler), new(MockQueueDepthHandler), Schedules{
		DelayScan:  "0 0 * * * *",
		QueueDepth: "0 0 * * * *",
	}, discard())

	// When
	err := jm.StartAll()

	// Then
	require.NoError(t, err)
	jm.StopAll()
}
