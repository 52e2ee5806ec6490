// Package scheduler runs the recurring jobs of the bot, currently the
// evening digest to the admin chat.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	c   *cron.Cron
	log *slog.Logger
}

func New(log *slog.Logger) *Scheduler {
	return &Scheduler{c: cron.New(), log: log}
}

// AddJob registers fn under a standard five-field cron spec.
func (s *Scheduler) AddJob(spec string, name string, fn func(context.Context)) error {
	_, err := s.c.AddFunc(spec, func() {
		s.log.Info("scheduled job started", "job", name)
		fn(context.Background())
	})
	return err
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop waits for running jobs before returning.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
