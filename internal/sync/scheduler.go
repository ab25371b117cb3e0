package sync

import (
	"context"
	"fmt"

	"github.com/funstay/leadsync/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the orchestrator on a fixed interval. A run that
// outlasts the interval suppresses the next tick instead of stacking a
// second run on top of it.
type Scheduler struct {
	cron *cron.Cron
	orch *Orchestrator
}

func NewScheduler(orch *Orchestrator, intervalMinutes int) (*Scheduler, error) {
	if intervalMinutes < 1 {
		intervalMinutes = 1
	}

	cl := cron.PrintfLogger(logger.GetLogger())
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cl),
		cron.Recover(cl),
	))

	s := &Scheduler{cron: c, orch: orch}

	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	if _, err := c.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) tick() {
	if _, err := s.orch.Run(context.Background()); err != nil {
		logger.Error("scheduled sync run failed", "error", err)
	}
}

// Start kicks off one immediate run and then hands over to the cron
// schedule.
func (s *Scheduler) Start() {
	go s.tick()
	s.cron.Start()
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
