package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Task is one full ranking run, end to end.
type Task func()

// Scheduler runs the ranking task on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	task Task
}

// New creates a Scheduler for the given task.
func New(task Task) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		task: task,
	}
}

// Register adds the daily post-close ranking job.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.cron.AddFunc(dailyCron, s.task); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the ranking task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.task()
}
