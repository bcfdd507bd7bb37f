package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluxactu/internal/usecase/reader"
)

type stubRefresher struct {
	calls    atomic.Int32
	err      error
	block    chan struct{}
	entered  chan struct{}
	deadline atomic.Bool
}

func (s *stubRefresher) Refresh(ctx context.Context) (reader.Status, error) {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); ok {
		s.deadline.Store(true)
	}
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	return reader.Status{Settled: true, Count: 4}, s.err
}

func enabledConfig() Config {
	cfg := DefaultConfig()
	cfg.Schedule = "@every 1h"
	return cfg
}

func TestNewScheduler_Rejects(t *testing.T) {
	_, err := NewScheduler(DefaultConfig(), &stubRefresher{}, nil, discardLogger())
	assert.ErrorContains(t, err, "schedule is empty")

	cfg := enabledConfig()
	cfg.Timezone = "Nowhere/City"
	_, err = NewScheduler(cfg, &stubRefresher{}, nil, discardLogger())
	assert.ErrorContains(t, err, "timezone")
}

func TestScheduler_RunOnce(t *testing.T) {
	m := NewMetricsWith(prometheus.NewRegistry())
	ref := &stubRefresher{}
	s, err := NewScheduler(enabledConfig(), ref, m, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), ref.calls.Load())
	assert.True(t, ref.deadline.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(StatusSuccess)))
	assert.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)

	var metric dto.Metric
	require.NoError(t, m.RunDuration.Write(&metric))
	assert.Equal(t, uint64(1), metric.GetHistogram().GetSampleCount())
}

func TestScheduler_RunOnceFailure(t *testing.T) {
	m := NewMetricsWith(prometheus.NewRegistry())
	s, err := NewScheduler(enabledConfig(), &stubRefresher{err: errors.New("upstream down")}, m, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, StatusFailure, s.RunOnce(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(StatusFailure)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastSuccess))
}

func TestScheduler_SkipsOverlappingRun(t *testing.T) {
	m := NewMetricsWith(prometheus.NewRegistry())
	ref := &stubRefresher{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	s, err := NewScheduler(enabledConfig(), ref, m, discardLogger())
	require.NoError(t, err)

	done := make(chan string, 1)
	go func() { done <- s.RunOnce(context.Background()) }()
	<-ref.entered

	assert.Equal(t, StatusSkipped, s.RunOnce(context.Background()))
	close(ref.block)
	assert.Equal(t, StatusSuccess, <-done)

	assert.Equal(t, int32(1), ref.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(StatusSkipped)))
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler(enabledConfig(), &stubRefresher{}, nil, discardLogger())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestScheduler_FiresOnSchedule(t *testing.T) {
	cfg := enabledConfig()
	cfg.Schedule = "@every 1s"

	ref := &stubRefresher{entered: make(chan struct{}, 4)}
	s, err := NewScheduler(cfg, ref, nil, discardLogger())
	require.NoError(t, err)

	s.Start()
	defer func() { _ = s.Stop(context.Background()) }()

	select {
	case <-ref.entered:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled refresh did not run")
	}
}
