package bot

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSweeperRunsAfterDelay(t *testing.T) {
	s := newSweeper()
	done := make(chan struct{})

	s.Schedule(1, time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback never ran")
	}
}

func TestSweeperCancelStopsCallback(t *testing.T) {
	s := newSweeper()
	var fired atomic.Bool

	s.Schedule(1, 20*time.Millisecond, func() { fired.Store(true) })
	s.Cancel(1)

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestSweeperRescheduleReplacesPending(t *testing.T) {
	s := newSweeper()
	var first, second atomic.Bool

	s.Schedule(1, 20*time.Millisecond, func() { first.Store(true) })
	s.Schedule(1, time.Millisecond, func() { second.Store(true) })

	time.Sleep(60 * time.Millisecond)
	assert.False(t, first.Load())
	assert.True(t, second.Load())
}

func TestSweeperOwnersAreIndependent(t *testing.T) {
	s := newSweeper()
	var one, two atomic.Bool

	s.Schedule(1, time.Millisecond, func() { one.Store(true) })
	s.Schedule(2, time.Millisecond, func() { two.Store(true) })
	s.Cancel(1)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, one.Load())
	assert.True(t, two.Load())
}

func TestSweeperCancelWithoutScheduleIsHarmless(t *testing.T) {
	newSweeper().Cancel(42)
}
