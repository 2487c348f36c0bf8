// Package confiner keeps a follow camera's frame inside the region that owns its
// target and blends the correction when ownership moves to another region
package confiner

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/lixenwraith/regionconfiner/config"
	"github.com/lixenwraith/regionconfiner/event"
	"github.com/lixenwraith/regionconfiner/parameter"
	"github.com/lixenwraith/regionconfiner/region"
	"github.com/lixenwraith/regionconfiner/status"
	"github.com/lixenwraith/regionconfiner/vmath"
)

// UpdateMode tells the confiner whether time is flowing
type UpdateMode int

const (
	// ModeLive is normal play; region changes may start a transition
	ModeLive UpdateMode = iota
	// ModeEditStatic is a paused or edit-time evaluation; corrections snap
	ModeEditStatic
)

// RegionHook receives the region before and after a change
type RegionHook func(previous, current *region.Region)

// Frame is the per-tick input from the host camera pipeline
// A zero Orientation behaves as identity
type Frame struct {
	Target    vmath.Vec3F
	HasTarget bool

	Position    vmath.Vec3F
	Orientation vmath.Quat
	Lens        Lens

	DeltaTime          float64
	PreviousStateValid bool
	Mode               UpdateMode
}

// Result is the per-tick output; add Displacement to the camera position
// Region is nil when nothing was resolved and Displacement is then zero
type Result struct {
	Displacement vmath.Vec3F
	Raw          vmath.Vec3F

	Region   *region.Region
	Previous *region.Region

	Changed       bool
	Transitioning bool
	Completed     bool
	Progress      float64
	Iterations    int
}

// Confiner owns the per-camera state: current and last region, the transition and damping memory
// Not safe for concurrent Update calls; the region set may be edited from other goroutines
type Confiner struct {
	id     uuid.UUID
	name   string
	logger *slog.Logger

	regions   *region.Set
	publisher event.Publisher
	status    *status.Registry
	metrics   *metrics

	transitionSpeed float64
	damping         float64

	edges      ScreenEdgeConfiner
	transition Transition

	current *region.Region
	last    *region.Region
	// Endpoints of the in-flight transition, reported on completion
	transitionFrom *region.Region
	transitionTo   *region.Region

	previousDisplacement vmath.Vec3F
	frame                int64

	onChanged  []RegionHook
	onStarted  []RegionHook
	onComplete []RegionHook
}

// Option configures a Confiner
type Option func(*Confiner)

// WithLogger sets the logger; nil keeps logging discarded
func WithLogger(logger *slog.Logger) Option {
	return func(c *Confiner) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPublisher mirrors every hook as an event on p
func WithPublisher(p event.Publisher) Option {
	return func(c *Confiner) { c.publisher = p }
}

// WithStatus registers confiner metrics under "<name>." in reg
func WithStatus(reg *status.Registry) Option {
	return func(c *Confiner) { c.status = reg }
}

// WithName labels logs and metric keys; default "confiner"
func WithName(name string) Option {
	return func(c *Confiner) {
		if name != "" {
			c.name = name
		}
	}
}

func WithTransitionSpeed(speed float64) Option {
	return func(c *Confiner) { c.SetTransitionSpeed(speed) }
}

func WithDamping(damping float64) Option {
	return func(c *Confiner) { c.SetDamping(damping) }
}

// WithConfig applies transition speed and damping from cfg
func WithConfig(cfg *config.Config) Option {
	return func(c *Confiner) {
		if cfg == nil {
			return
		}
		c.SetTransitionSpeed(cfg.TransitionSpeed)
		c.SetDamping(cfg.Damping)
	}
}

// New creates a confiner over regions, which may be nil until SetRegions
func New(regions *region.Set, opts ...Option) *Confiner {
	c := &Confiner{
		id:              uuid.New(),
		name:            "confiner",
		logger:          slog.New(slog.DiscardHandler),
		regions:         regions,
		transitionSpeed: parameter.TransitionSpeedDefault,
		damping:         parameter.DampingDefault,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.status != nil {
		c.metrics = newMetrics(c.status, c.name)
	}
	c.logger = c.logger.With("confiner", c.name, "id", c.id.String())
	return c
}

func (c *Confiner) ID() uuid.UUID { return c.id }
func (c *Confiner) Name() string  { return c.name }

// HasRegions reports whether a region set is attached
func (c *Confiner) HasRegions() bool { return c.regions != nil }

// Regions returns the attached set, possibly nil
func (c *Confiner) Regions() *region.Set { return c.regions }

// SetRegions swaps the region set and clears region and transition state
func (c *Confiner) SetRegions(regions *region.Set) {
	c.regions = regions
	c.Reset()
}

// Reset drops current and last region, ends any transition and forgets damping memory
func (c *Confiner) Reset() {
	c.current = nil
	c.last = nil
	c.transitionFrom = nil
	c.transitionTo = nil
	c.transition.End()
	c.previousDisplacement = vmath.Zero3F
}

// SetTransitionSpeed stores speed floored at TransitionSpeedMin and returns the stored value
func (c *Confiner) SetTransitionSpeed(speed float64) float64 {
	clamped := ClampTransitionSpeed(speed)
	if clamped != speed {
		c.logger.Warn("transition speed clamped", "requested", speed, "applied", clamped)
	}
	c.transitionSpeed = clamped
	return clamped
}

func (c *Confiner) TransitionSpeed() float64 { return c.transitionSpeed }

// SetDamping stores damping clamped to [DampingMin, DampingMax]
func (c *Confiner) SetDamping(damping float64) float64 {
	if math.IsNaN(damping) {
		damping = parameter.DampingMin
	}
	c.damping = vmath.Clamp(damping, parameter.DampingMin, parameter.DampingMax)
	return c.damping
}

func (c *Confiner) Damping() float64 { return c.damping }

// CurrentRegion is the region resolved on the last Update
func (c *Confiner) CurrentRegion() (*region.Region, bool) {
	return c.current, c.current != nil
}

// LastRegion is the region resolved on the Update before the last
func (c *Confiner) LastRegion() (*region.Region, bool) {
	return c.last, c.last != nil
}

// TransitionState reports Idle or Transitioning
func (c *Confiner) TransitionState() TransitionState { return c.transition.State() }

// Transition exposes the transition for inspection
func (c *Confiner) Transition() *Transition { return &c.transition }

// OnRegionChanged subscribes to every change of resolved region
func (c *Confiner) OnRegionChanged(fn RegionHook) { c.onChanged = append(c.onChanged, fn) }

// OnTransitionStarted subscribes to the start of blended hand-offs
func (c *Confiner) OnTransitionStarted(fn RegionHook) { c.onStarted = append(c.onStarted, fn) }

// OnTransitionComplete subscribes to the end of blended hand-offs
func (c *Confiner) OnTransitionComplete(fn RegionHook) { c.onComplete = append(c.onComplete, fn) }

// ResolveCurrentRegion resolves target against the current region set without changing state
func (c *Confiner) ResolveCurrentRegion(target vmath.Vec3F) (*region.Region, bool) {
	if c.regions == nil {
		return nil, false
	}
	return c.regions.Resolve(target)
}

// ComputeConfinement runs the screen-edge solver for a camera pose against r
func (c *Confiner) ComputeConfinement(position vmath.Vec3F, orientation vmath.Quat, lens Lens, r *region.Region) vmath.Vec3F {
	return c.edges.Confine(position, orientation, lens, r)
}

// AdvanceTransition blends raw with the confiner's transition speed
// Completion fires OnTransitionComplete hooks
func (c *Confiner) AdvanceTransition(raw vmath.Vec3F, deltaTime float64) (vmath.Vec3F, bool) {
	blended, done := c.transition.Advance(raw, c.transitionSpeed, deltaTime)
	if done {
		c.logger.Debug("transition completed", "from", c.transitionFrom.String(), "to", c.transitionTo.String())
		c.fire(c.onComplete, event.EventTransitionCompleted, c.transitionFrom, c.transitionTo)
		c.metrics.transitionCompleted()
	}
	return blended, done
}

// Update resolves the target's region, confines the frame to it and blends the
// correction through any active transition. Call once per tick
func (c *Confiner) Update(f Frame) Result {
	c.frame++

	if c.regions == nil || !f.HasTarget {
		c.loseRegion()
		return Result{}
	}

	snap := c.regions.Snapshot()
	current, ok := snap.Resolve(f.Target)
	if !ok {
		c.loseRegion()
		return Result{}
	}

	previous := c.current
	c.last = previous
	c.current = current

	raw := c.edges.Confine(f.Position, f.Orientation, f.Lens, current)

	eligible := f.PreviousStateValid && f.DeltaTime >= 0 && f.Mode == ModeLive
	changed := previous != nil && !previous.Equal(current)

	if changed {
		c.logger.Debug("region changed", "from", previous.String(), "to", current.String(), "eligible", eligible)
		c.fire(c.onChanged, event.EventRegionChanged, previous, current)

		if eligible {
			c.transition.Begin(f.Position, vmath.V3FAdd(f.Position, raw))
			c.transitionFrom = previous
			c.transitionTo = current
			c.logger.Debug("transition started", "from", previous.String(), "to", current.String())
			c.fire(c.onStarted, event.EventTransitionStarted, previous, current)
			c.metrics.transitionStarted()
		}
	}

	displacement := raw
	completed := false
	if c.transition.Active() {
		displacement, completed = c.AdvanceTransition(raw, f.DeltaTime)
	}

	if c.damping > 0 && eligible {
		delta := vmath.V3FSub(displacement, c.previousDisplacement)
		delta = vmath.V3FDamp(delta, c.damping, f.DeltaTime)
		displacement = vmath.V3FAdd(c.previousDisplacement, delta)
	}
	c.previousDisplacement = displacement

	res := Result{
		Displacement:  displacement,
		Raw:           raw,
		Region:        current,
		Previous:      previous,
		Changed:       changed,
		Transitioning: c.transition.Active(),
		Completed:     completed,
		Progress:      c.transition.Progress(),
		Iterations:    c.edges.Iterations,
	}
	c.metrics.record(res, c.edges.Oscillated)
	return res
}

// loseRegion clears state when the set is empty or the target is absent
func (c *Confiner) loseRegion() {
	if c.current == nil {
		return
	}
	lost := c.current
	c.Reset()
	c.last = lost
	c.logger.Debug("region lost", "region", lost.String())
	if c.publisher != nil {
		c.publisher.Push(event.RegionEvent{Type: event.EventRegionLost, Source: c.id, Previous: lost, Frame: c.frame})
	}
	c.metrics.lost()
}

func (c *Confiner) fire(hooks []RegionHook, typ event.EventType, previous, current *region.Region) {
	for _, fn := range hooks {
		fn(previous, current)
	}
	if c.publisher != nil {
		c.publisher.Push(event.RegionEvent{
			Type:     typ,
			Source:   c.id,
			Previous: previous,
			Current:  current,
			Frame:    c.frame,
		})
	}
}
