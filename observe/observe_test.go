package observe_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinetics/calibrate"
	"github.com/katalvlaran/kinetics/observe"
)

func twoStateConfig(t *testing.T, threshold float64) calibrate.Config {
	t.Helper()
	s, err := calibrate.SamplerSpec{Size: 2, ConstrainAdjacent: true}.Build()
	require.NoError(t, err)

	return calibrate.Config{
		Condition:   "wt",
		Observed:    []float64{0.5, 0.5},
		Threshold:   []float64{threshold, threshold},
		Sampler:     s,
		Total:       3,
		MaxAttempts: 7,
	}
}

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := observe.NewPrometheus(reg)

	_, err := calibrate.Run(context.Background(), twoStateConfig(t, 1), rand.New(rand.NewSource(1)), calibrate.WithObserver(p))
	require.NoError(t, err)
	_, err = calibrate.Run(context.Background(), twoStateConfig(t, 0), rand.New(rand.NewSource(1)), calibrate.WithObserver(p))
	require.ErrorIs(t, err, calibrate.ErrExhausted)

	expected := `
# HELP kinetics_calibration_attempts_total Candidate matrices drawn, by outcome
# TYPE kinetics_calibration_attempts_total counter
kinetics_calibration_attempts_total{condition="wt",outcome="accepted"} 3
kinetics_calibration_attempts_total{condition="wt",outcome="rejected"} 7
# HELP kinetics_calibration_runs_total Finished calibration runs, by status
# TYPE kinetics_calibration_runs_total counter
kinetics_calibration_runs_total{condition="wt",status="exhausted"} 1
kinetics_calibration_runs_total{condition="wt",status="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"kinetics_calibration_attempts_total", "kinetics_calibration_runs_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "kinetics_calibration_acceptance_ratio"))
}

func TestProgressObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	p := observe.NewProgress(logger, time.Hour)

	_, err := calibrate.Run(context.Background(), twoStateConfig(t, 1), rand.New(rand.NewSource(1)), calibrate.WithObserver(p))
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"msg":"generating matrices"`), "limiter allows one burst")
	assert.Contains(t, out, `"msg":"matrix generation finished"`)
	assert.Contains(t, out, `"condition":"wt"`)

	require.Panics(t, func() { observe.NewProgress(nil, time.Second) })
	require.Panics(t, func() { observe.NewProgress(logger, 0) })
}

type counter struct{ attempts, finishes int }

func (c *counter) OnAttempt(calibrate.Event)       { c.attempts++ }
func (c *counter) OnFinish(calibrate.Event, error) { c.finishes++ }

type panicky struct{}

func (panicky) OnAttempt(calibrate.Event)       { panic("attempt") }
func (panicky) OnFinish(calibrate.Event, error) { panic("finish") }

func TestMulti(t *testing.T) {
	a, b := &counter{}, &counter{}
	m := observe.Multi(a, nil, panicky{}, b)

	require.PanicsWithValue(t, "attempt", func() { m.OnAttempt(calibrate.Event{}) })
	require.PanicsWithValue(t, "finish", func() { m.OnFinish(calibrate.Event{}, errors.New("x")) })
	assert.Equal(t, 1, a.attempts)
	assert.Equal(t, 1, b.attempts, "observers after a panicking one still run")
	assert.Equal(t, 1, b.finishes)

	// Inside Run the re-raised panic is recovered and the run completes.
	c := &counter{}
	res, err := calibrate.Run(context.Background(), twoStateConfig(t, 1), rand.New(rand.NewSource(1)),
		calibrate.WithObserver(observe.Multi(panicky{}, c)))
	require.NoError(t, err)
	assert.Len(t, res.Matrices, 3)
	assert.Equal(t, 3, c.attempts)
	assert.Equal(t, 1, c.finishes)
}
