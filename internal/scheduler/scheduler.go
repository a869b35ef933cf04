package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/config"
	"github.com/mamadbah2/procurement/internal/service/notify"
)

// pruneSpec runs the revocation sweep at the top of every hour.
const pruneSpec = "0 * * * *"

// Expirer closes overdue enquiries.
type Expirer interface {
	ExpireEnquiries(ctx context.Context, now time.Time) (int, error)
}

// Reporter renders the daily digest text.
type Reporter interface {
	DailyReport(ctx context.Context, now time.Time) (string, error)
}

// Pruner drops revocations whose tokens have expired anyway.
type Pruner interface {
	Prune(now time.Time) int
}

// Jobs are the services the scheduler drives.
type Jobs struct {
	Enquiries   Expirer
	Reports     Reporter
	Revocations Pruner
	Publisher   notify.Publisher
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	cfg    config.SchedulerConfig
	jobs   Jobs
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a scheduler running in the configured time zone.
func NewScheduler(cfg config.SchedulerConfig, jobs Jobs, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		cfg:    cfg,
		jobs:   jobs,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}, nil
}

// Start registers every job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("expiry_cron", s.cfg.EnquiryExpiryCron),
		zap.String("digest_cron", s.cfg.DigestCron),
		zap.String("timezone", s.cfg.Timezone))

	entries := []struct {
		name string
		spec string
		run  func()
	}{
		{"enquiry expiry", s.cfg.EnquiryExpiryCron, s.expireEnquiries},
		{"pending digest", s.cfg.DigestCron, s.sendDigest},
		{"revocation prune", pruneSpec, s.pruneRevocations},
	}
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.run); err != nil {
			return fmt.Errorf("schedule %s %q: %w", e.name, e.spec, err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) expireEnquiries() {
	if s.jobs.Enquiries == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	changed, err := s.jobs.Enquiries.ExpireEnquiries(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to expire enquiries", zap.Error(err))
		return
	}
	s.logger.Debug("enquiry expiry sweep finished", zap.Int("expired", changed))
}

func (s *Scheduler) sendDigest() {
	if s.jobs.Reports == nil || s.jobs.Publisher == nil {
		return
	}
	s.logger.Info("generating pending digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.jobs.Reports.DailyReport(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to generate pending digest", zap.Error(err))
		return
	}
	s.jobs.Publisher.Publish(ctx, notify.Digest(report))
}

func (s *Scheduler) pruneRevocations() {
	if s.jobs.Revocations == nil {
		return
	}
	if n := s.jobs.Revocations.Prune(s.now()); n > 0 {
		s.logger.Debug("pruned revoked sessions", zap.Int("count", n))
	}
}
