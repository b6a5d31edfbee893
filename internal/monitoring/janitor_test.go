package monitoring

import (
	"testing"
	"time"

	"github.com/skawahara/kotoba-sns-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventService struct {
	prunedBefore time.Time
	pruneCalls   int
}

func (f *fakeEventService) RecordEvent(eventType, message string, userID *string) error { return nil }

func (f *fakeEventService) GetRecentEventsForUser(userID string, limit int) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeEventService) PruneEventsBefore(cutoff time.Time) (int64, error) {
	f.pruneCalls++
	f.prunedBefore = cutoff
	return 0, nil
}

func TestNewJanitorParsesSchedule(t *testing.T) {
	svc := &fakeEventService{}

	j, err := NewJanitor(svc, 30, "@daily")
	require.NoError(t, err)
	assert.False(t, j.nextRun.IsZero())

	_, err = NewJanitor(svc, 30, "not a cron expression")
	assert.Error(t, err)
}

func TestJanitorPruneUsesRetentionWindow(t *testing.T) {
	svc := &fakeEventService{}
	j, err := NewJanitor(svc, 7, "@daily")
	require.NoError(t, err)

	now := time.Now()
	j.prune(now)

	require.Equal(t, 1, svc.pruneCalls)
	expected := now.Add(-7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, svc.prunedBefore, time.Second)
}
