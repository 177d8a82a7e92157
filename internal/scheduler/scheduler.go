// Package scheduler runs background tasks one at a time, in submission order.
package scheduler

import (
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("naninovel.scheduler")

type Task struct {
	Name    string
	Execute func() error
}

type Scheduler struct {
	taskQueue chan Task
	stopOnce  sync.Once
	mu        sync.RWMutex
	stopped   bool
	done      chan struct{}
}

// NewScheduler creates a Scheduler buffering up to queueSize pending tasks.
func NewScheduler(queueSize int) *Scheduler {
	return &Scheduler{
		taskQueue: make(chan Task, queueSize),
		done:      make(chan struct{}),
	}
}

// Run starts the worker loop.
func (s *Scheduler) Run() {
	go func() {
		defer close(s.done)
		for task := range s.taskQueue {
			log.Debugf("executing %s task", task.Name)
			if err := task.Execute(); err != nil {
				log.Errorf("task %s failed: %s", task.Name, err)
			}
		}
	}()
}

// Schedule queues a task. Tasks scheduled after Stop are dropped.
func (s *Scheduler) Schedule(task Task) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		log.Warningf("scheduler stopped, dropping %s task", task.Name)
		return false
	}
	s.taskQueue <- task
	return true
}

// Stop drains queued tasks and waits for the worker to exit.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		log.Info("stopping scheduler")
		s.mu.Lock()
		s.stopped = true
		close(s.taskQueue)
		s.mu.Unlock()
		<-s.done
	})
}
