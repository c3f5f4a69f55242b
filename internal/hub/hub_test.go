package hub

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestHub(queueSize int) *Hub {
	return NewHub(queueSize, time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestHub_Lifecycle(t *testing.T) {
	req := require.New(t)
	h := newTestHub(10)

	req.ErrorIs(h.Stop(), ErrHubNotRunning)
	req.ErrorIs(h.Submit(Job{Name: "early", Run: func(context.Context) error { return nil }}), ErrHubNotRunning)

	req.NoError(h.Start(context.Background()))
	req.True(h.IsRunning())
	req.ErrorIs(h.Start(context.Background()), ErrHubAlreadyRunning)

	req.NoError(h.Stop())
	req.False(h.IsRunning())
}

func TestHub_RunsJobsInOrder(t *testing.T) {
	req := require.New(t)
	h := newTestHub(100)
	req.NoError(h.Start(context.Background()))

	var mu sync.Mutex
	var order []int
	for i := 0; i < 20; i++ {
		i := i
		req.NoError(h.Submit(Job{Name: "append", Run: func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, i)
			return nil
		}}))
	}
	req.NoError(h.Stop())

	req.Len(order, 20)
	for i, v := range order {
		req.Equal(i, v)
	}
}

func TestHub_QueueFull(t *testing.T) {
	req := require.New(t)
	h := newTestHub(1)
	req.NoError(h.Start(context.Background()))
	defer func() { _ = h.Stop() }()

	release := make(chan struct{})
	started := make(chan struct{})
	req.NoError(h.Submit(Job{Name: "blocker", Run: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}))
	<-started

	req.NoError(h.Submit(Job{Name: "queued", Run: func(context.Context) error { return nil }}))
	req.ErrorIs(h.Submit(Job{Name: "overflow", Run: func(context.Context) error { return nil }}), ErrQueueFull)
	req.Equal(1, h.QueueLength())
	close(release)
}

func TestHub_SurvivesFailingAndPanickingJobs(t *testing.T) {
	req := require.New(t)
	h := newTestHub(10)
	req.NoError(h.Start(context.Background()))

	var ran atomic.Int32
	req.NoError(h.Submit(Job{Name: "fails", Run: func(context.Context) error { return errors.New("boom") }}))
	req.NoError(h.Submit(Job{Name: "panics", Run: func(context.Context) error { panic("boom") }}))
	req.NoError(h.Submit(Job{Name: "counts", Run: func(context.Context) error {
		ran.Add(1)
		return nil
	}}))
	req.ErrorIs(h.Submit(Job{Name: "nil"}), ErrNilJob)

	req.NoError(h.Stop())
	req.Equal(int32(1), ran.Load())
}

func TestHub_JobContextOutlivesParentCancellation(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	h := newTestHub(10)
	req.NoError(h.Start(ctx))

	result := make(chan error, 1)
	req.NoError(h.Submit(Job{Name: "ctx", Run: func(jobCtx context.Context) error {
		cancel()
		time.Sleep(10 * time.Millisecond)
		result <- jobCtx.Err()
		return nil
	}}))

	select {
	case err := <-result:
		req.NoError(err)
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
	req.NoError(h.Stop())
}

func TestHub_RefusesJobsAfterContextCancellation(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	h := newTestHub(10)
	req.NoError(h.Start(ctx))

	release := make(chan struct{})
	var ran atomic.Int32
	req.NoError(h.Submit(Job{Name: "blocker", Run: func(context.Context) error {
		<-release
		ran.Add(1)
		return nil
	}}))
	req.NoError(h.Submit(Job{Name: "queued", Run: func(context.Context) error {
		ran.Add(1)
		return nil
	}}))

	cancel()
	close(release)
	req.Eventually(func() bool { return !h.IsRunning() }, 2*time.Second, 5*time.Millisecond)

	req.ErrorIs(h.Submit(Job{Name: "late", Run: func(context.Context) error { return nil }}), ErrHubNotRunning)

	req.NoError(h.Stop())
	req.Equal(int32(2), ran.Load(), "jobs queued before cancellation are drained")
	req.ErrorIs(h.Stop(), ErrHubNotRunning)
}

func TestHub_RestartAfterStop(t *testing.T) {
	req := require.New(t)
	h := newTestHub(10)
	req.NoError(h.Start(context.Background()))
	req.NoError(h.Stop())

	req.NoError(h.Start(context.Background()))
	ran := make(chan struct{})
	req.NoError(h.Submit(Job{Name: "again", Run: func(context.Context) error {
		close(ran)
		return nil
	}}))
	req.NoError(h.Stop())

	select {
	case <-ran:
	default:
		t.Fatal("job submitted after restart did not run")
	}
}
