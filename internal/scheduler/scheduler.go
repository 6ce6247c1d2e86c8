package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler fires the periodic scoring run on the configured cron schedule.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(spec, timezone string, job func(), log zerolog.Logger) (*Scheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(location))
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
