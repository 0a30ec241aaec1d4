package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/verdantclub/ClubWheelBot_Go/internal/worker"
)

type tickJob struct {
	count *atomic.Int32
}

func (j *tickJob) Process(context.Context) error {
	j.count.Add(1)
	return nil
}

func TestScheduler_RunsJobsAtInterval(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	s := New(pool)
	var count atomic.Int32
	s.Schedule(10*time.Millisecond, &tickJob{count: &count})

	time.Sleep(100 * time.Millisecond)
	s.Stop()

	got := count.Load()
	assert.GreaterOrEqual(t, got, int32(3), "expected several ticks, got %d", got)
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	s := New(pool)
	var count atomic.Int32
	s.Schedule(10*time.Millisecond, &tickJob{count: &count})

	time.Sleep(35 * time.Millisecond)
	s.Stop()
	settled := count.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, count.Load(), "no ticks after Stop")
}
