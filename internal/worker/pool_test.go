package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobs(n int) []Job {
	out := make([]Job, n)
	for i := range out {
		out[i] = Job{Name: fmt.Sprintf("job-%d", i), Payload: i}
	}
	return out
}

func TestRun_ProcessesEveryJobInOrder(t *testing.T) {
	var calls int64
	results := Run(context.Background(), jobs(20), 4, func(_ context.Context, j Job) error {
		atomic.AddInt64(&calls, 1)
		if j.Payload.(int)%5 == 0 {
			return errors.New("boom")
		}
		return nil
	})

	require.Len(t, results, 20)
	assert.EqualValues(t, 20, calls)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("job-%d", i), r.Job.Name)
	}
	assert.Len(t, Failed(results), 4)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, jobs(3), 2, func(context.Context, Job) error {
		t.Fatal("handler must not run after cancel")
		return nil
	})
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRun_Empty(t *testing.T) {
	assert.Empty(t, Run(context.Background(), nil, 8, func(context.Context, Job) error { return nil }))
}
