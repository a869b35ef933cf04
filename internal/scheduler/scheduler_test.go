package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/procurement/internal/config"
	"github.com/mamadbah2/procurement/internal/domain/models"
)

type fakeExpirer struct {
	calls []time.Time
	err   error
}

func (f *fakeExpirer) ExpireEnquiries(_ context.Context, now time.Time) (int, error) {
	f.calls = append(f.calls, now)
	return 2, f.err
}

type fakeReporter struct {
	text string
	err  error
}

func (f fakeReporter) DailyReport(context.Context, time.Time) (string, error) {
	return f.text, f.err
}

type fakePruner struct{ at []time.Time }

func (f *fakePruner) Prune(now time.Time) int {
	f.at = append(f.at, now)
	return 1
}

type fakePublisher struct{ sent []models.OutboundNotification }

func (f *fakePublisher) Publish(_ context.Context, n models.OutboundNotification) {
	f.sent = append(f.sent, n)
}

var schedule = config.SchedulerConfig{
	EnquiryExpiryCron: "*/15 * * * *",
	DigestCron:        "0 9 * * 1-5",
	Timezone:          "Asia/Kolkata",
}

func TestJobsRunAgainstServices(t *testing.T) {
	expirer := &fakeExpirer{}
	pruner := &fakePruner{}
	pub := &fakePublisher{}

	s, err := NewScheduler(schedule, Jobs{
		Enquiries:   expirer,
		Reports:     fakeReporter{text: "Pending indents: 3"},
		Revocations: pruner,
		Publisher:   pub,
	}, nil)
	require.NoError(t, err)

	s.expireEnquiries()
	s.sendDigest()
	s.pruneRevocations()

	require.Len(t, expirer.calls, 1)
	assert.Equal(t, "Asia/Kolkata", expirer.calls[0].Location().String())
	assert.Len(t, pruner.at, 1)
	require.Len(t, pub.sent, 1)
	assert.Equal(t, models.EventPendingDigest, pub.sent[0].Event)
	assert.Contains(t, pub.sent[0].Message, "Pending indents: 3")
}

func TestDigestFailureSendsNothing(t *testing.T) {
	pub := &fakePublisher{}
	s, err := NewScheduler(schedule, Jobs{
		Enquiries: &fakeExpirer{err: errors.New("db down")},
		Reports:   fakeReporter{err: errors.New("db down")},
		Publisher: pub,
	}, nil)
	require.NoError(t, err)

	s.expireEnquiries()
	s.sendDigest()
	s.pruneRevocations()
	assert.Empty(t, pub.sent)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	bad := schedule
	bad.DigestCron = "every morning"
	s, err := NewScheduler(bad, Jobs{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())

	_, err = NewScheduler(config.SchedulerConfig{Timezone: "Mars/Olympus"}, Jobs{}, nil)
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler(schedule, Jobs{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 3)
	s.Stop()
}
