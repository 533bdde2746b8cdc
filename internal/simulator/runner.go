// Package simulator drives started trips along their routes on a fixed tick,
// standing in for the driver app's live position updates.
package simulator

import (
	"context"
	"errors"
	"math"
	"time"

	"backend-erickshaw/internal/config"
	"backend-erickshaw/internal/demo"
	"backend-erickshaw/internal/logger"
	"backend-erickshaw/internal/shared/geo"

	"github.com/sirupsen/logrus"
)

// TripStore is the part of the demo store the runner drives.
type TripStore interface {
	Snapshot() demo.Snapshot
	UpdateTripProgress(tripID string, progress float64, position geo.Point) error
	CompleteTrips() error
}

type Runner struct {
	store        TripStore
	tick         time.Duration
	step         float64
	autoComplete bool
	log          *logrus.Entry
}

func NewRunner(store TripStore, cfg config.Config) *Runner {
	tick := cfg.SimTick
	if tick <= 0 {
		tick = 500 * time.Millisecond
	}
	log := logger.For("simulator")
	step := cfg.SimStep
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		log.WithField("step", step).Warn("invalid simulator step, using default")
		step = 0.05
	}
	return &Runner{
		store:        store,
		tick:         tick,
		step:         step,
		autoComplete: cfg.SimAutoComplete,
		log:          log,
	}
}

// Run advances trips until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.log.WithField("tick", r.tick).WithField("step", r.step).Info("simulator started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info("simulator stopped")
			return
		case <-ticker.C:
			r.Step()
		}
	}
}

// Step advances every started trip once and returns how many moved.
func (r *Runner) Step() int {
	snap := r.store.Snapshot()
	if snap.Step != demo.StepMoving {
		return 0
	}

	moved := 0
	arrived := 0
	for _, t := range snap.Trips {
		if t.Status != demo.TripStarted {
			continue
		}
		if t.Progress >= 1 {
			arrived++
			continue
		}
		next := math.Min(1, t.Progress+r.step)
		pos := geo.PointAlong(t.Route, next)
		if err := r.store.UpdateTripProgress(t.ID, next, pos); err != nil {
			// A concurrent reset or completion can remove the trip mid-tick.
			if !errors.Is(err, demo.ErrInvalidTransition) && !errors.Is(err, demo.ErrTripNotFound) {
				r.log.WithError(err).WithField("trip_id", t.ID).Warn("advance trip")
			}
			continue
		}
		moved++
		if next >= 1 {
			arrived++
		}
	}

	if r.autoComplete && len(snap.Trips) > 0 && arrived == len(snap.Trips) {
		if err := r.store.CompleteTrips(); err == nil {
			r.log.Info("all trips arrived, demo completed")
		}
	}
	return moved
}
