package completion

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeBookingRepo struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeBookingRepo) CompleteElapsed(_ context.Context, _ time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 1, nil
}

func (f *fakeBookingRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestWorker_SweepsPeriodicallyAndStops(t *testing.T) {
	repo := &fakeBookingRepo{}
	worker := NewWorker(repo, 10*time.Millisecond, noopLogger{})

	worker.Start(context.Background())

	assert.Eventually(t, func() bool {
		return repo.callCount() >= 2
	}, time.Second, 5*time.Millisecond)

	worker.Stop()
	after := repo.callCount()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, repo.callCount(), "no sweeps after Stop")
}
