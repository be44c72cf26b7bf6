package terminal

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_PostBatchesTasks(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var order []int
	s.Post(func() { order = append(order, 1) })
	s.Post(func() { order = append(order, 2) })

	msg, ok := s.wait()().(tasksMsg)
	require.True(t, ok)
	for _, fn := range msg {
		fn()
	}
	assert.Equal(t, []int{1, 2}, order)
}

func TestScheduler_EveryStopsDroppingQueuedTicks(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var runs atomic.Int32
	stop := s.Every(5*time.Millisecond, func() { runs.Add(1) })

	msg, ok := s.wait()().(tasksMsg)
	require.True(t, ok)
	for _, fn := range msg {
		fn()
	}
	require.Positive(t, runs.Load())

	stop()
	stop()
	before := runs.Load()
	for _, fn := range s.drain() {
		fn()
	}
	assert.Equal(t, before, runs.Load())
}

func TestScheduler_CloseReleasesWait(t *testing.T) {
	s := NewScheduler()
	done := make(chan any, 1)
	go func() { done <- s.wait()() }()

	s.Close()
	s.Close()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after Close")
	}
}
