package confiner

import (
	"sync/atomic"

	"github.com/lixenwraith/regionconfiner/status"
)

// metrics caches status pointers; a nil *metrics records nothing
type metrics struct {
	frames        *atomic.Int64
	iterations    *atomic.Int64
	oscillations  *atomic.Int64
	started       *atomic.Int64
	completed     *atomic.Int64
	losses        *atomic.Int64
	transitioning *atomic.Bool
	progress      *status.AtomicFloat
	displacementX *status.AtomicFloat
	displacementY *status.AtomicFloat
	region        *status.AtomicString
}

func newMetrics(reg *status.Registry, prefix string) *metrics {
	p := prefix + "."
	return &metrics{
		frames:        reg.Ints.Get(p + "frames"),
		iterations:    reg.Ints.Get(p + "iterations"),
		oscillations:  reg.Ints.Get(p + "oscillations"),
		started:       reg.Ints.Get(p + "transitions.started"),
		completed:     reg.Ints.Get(p + "transitions.completed"),
		losses:        reg.Ints.Get(p + "region.lost"),
		transitioning: reg.Bools.Get(p + "transitioning"),
		progress:      reg.Floats.Get(p + "transition.progress"),
		displacementX: reg.Floats.Get(p + "displacement.x"),
		displacementY: reg.Floats.Get(p + "displacement.y"),
		region:        reg.Strings.Get(p + "region"),
	}
}

func (m *metrics) record(res Result, oscillated bool) {
	if m == nil {
		return
	}
	m.frames.Add(1)
	m.iterations.Store(int64(res.Iterations))
	if oscillated {
		m.oscillations.Add(1)
	}
	m.transitioning.Store(res.Transitioning)
	m.progress.Set(res.Progress)
	m.displacementX.Set(res.Displacement.X)
	m.displacementY.Set(res.Displacement.Y)
	m.region.Store(res.Region.String())
}

func (m *metrics) transitionStarted() {
	if m != nil {
		m.started.Add(1)
	}
}

func (m *metrics) transitionCompleted() {
	if m != nil {
		m.completed.Add(1)
	}
}

func (m *metrics) lost() {
	if m == nil {
		return
	}
	m.losses.Add(1)
	m.transitioning.Store(false)
	m.progress.Set(0)
	m.region.Store("")
}
