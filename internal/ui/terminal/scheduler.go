package terminal

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/startdash/internal/ui/loop"
)

var _ loop.Scheduler = (*Scheduler)(nil)

// tasksMsg carries closures queued by Post to the program's update loop.
type tasksMsg []func()

// Scheduler is the loop.Scheduler of the terminal host. Closures posted from
// any goroutine are delivered to Host.Update as one message per batch.
type Scheduler struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post queues fn for the event loop.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Every posts fn each interval until stop is called or the scheduler closes.
// A tick already queued when stop runs is dropped.
func (s *Scheduler) Every(interval time.Duration, fn func()) func() {
	var stopped atomic.Bool
	quit := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Post(func() {
					if !stopped.Load() {
						fn()
					}
				})
			case <-quit:
				return
			case <-s.done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			stopped.Store(true)
			close(quit)
		})
	}
}

// Close stops every timer. Queued closures are discarded.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Scheduler) drain() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.queue
	s.queue = nil
	return tasks
}

// wait returns a command that blocks until work is queued. The host issues it
// again after every batch.
func (s *Scheduler) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.wake:
			return tasksMsg(s.drain())
		case <-s.done:
			return nil
		}
	}
}
