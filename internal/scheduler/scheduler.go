// Package scheduler manages background maintenance jobs.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/hedgewise/hedgewise/internal/events"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	bus  *events.Bus
	log  zerolog.Logger
}

// New creates a new scheduler
func New(bus *events.Bus, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		bus:  bus,
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers a new job with cron schedule
// Schedule examples:
//   - "0 */5 * * * *"      - Every 5 minutes
//   - "@hourly"            - Every hour
//   - "@every 30s"         - Every 30 seconds
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(job)
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("Running job immediately")
	s.run(job)
	return nil
}

// run executes a job and announces its lifecycle on the bus
func (s *Scheduler) run(job Job) {
	start := time.Now()
	s.log.Debug().Str("job", job.Name()).Msg("Running job")
	s.publish(events.JobStarted, job.Name(), "")

	if err := job.Run(); err != nil {
		s.log.Error().
			Err(err).
			Str("job", job.Name()).
			Msg("Job failed")
		s.publish(events.JobFailed, job.Name(), err.Error())
		return
	}

	s.log.Debug().
		Str("job", job.Name()).
		Dur("duration_ms", time.Since(start)).
		Msg("Job completed")
	s.publishWithDuration(events.JobCompleted, job.Name(), time.Since(start))
}

func (s *Scheduler) publish(eventType events.EventType, jobName, message string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish("scheduler", &events.JobStatusData{
		Type:    eventType,
		JobName: jobName,
		Message: message,
	})
}

func (s *Scheduler) publishWithDuration(eventType events.EventType, jobName string, duration time.Duration) {
	if s.bus == nil {
		return
	}
	s.bus.Publish("scheduler", &events.JobStatusData{
		Type:     eventType,
		JobName:  jobName,
		Duration: duration.Round(time.Millisecond).String(),
	})
}
