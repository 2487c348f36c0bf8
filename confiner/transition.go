package confiner

import (
	"math"

	"github.com/lixenwraith/regionconfiner/parameter"
	"github.com/lixenwraith/regionconfiner/vmath"
)

// TransitionState is the hand-off state
type TransitionState int

const (
	StateIdle TransitionState = iota
	StateTransitioning
)

func (s TransitionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateTransitioning:
		return "Transitioning"
	default:
		return "Unknown"
	}
}

// Transition ramps a displacement in after the active region changes
// Invariant: active implies progress < 1
type Transition struct {
	start     vmath.Vec3F
	end       vmath.Vec3F
	direction vmath.Vec3F
	progress  float64
	active    bool
}

// ClampTransitionSpeed floors speed at TransitionSpeedMin
// NaN is treated as the minimum
func ClampTransitionSpeed(speed float64) float64 {
	if math.IsNaN(speed) || speed < parameter.TransitionSpeedMin {
		return parameter.TransitionSpeedMin
	}
	return speed
}

// Begin enters Transitioning from position toward target, resetting progress
func (t *Transition) Begin(position, target vmath.Vec3F) {
	t.start = position
	t.end = target
	t.direction = vmath.V3FNormalize(vmath.V3FSub(target, position))
	t.progress = 0
	t.active = true
}

// Advance steps progress by speed*deltaTime and scales displacement on the axes the
// transition moves along; axes with |direction| <= TransitionAxisThreshold pass through.
// Returns true on the frame progress reaches 1, after which the transition is Idle.
// While Idle the displacement is returned unchanged
func (t *Transition) Advance(displacement vmath.Vec3F, speed, deltaTime float64) (vmath.Vec3F, bool) {
	if !t.active {
		return displacement, false
	}
	if deltaTime < 0 || math.IsNaN(deltaTime) {
		deltaTime = 0
	}

	t.progress += ClampTransitionSpeed(speed) * deltaTime

	// Scale never exceeds 1 so the completing frame does not overshoot
	scale := math.Min(t.progress, 1)
	if math.Abs(t.direction.X) > parameter.TransitionAxisThreshold {
		displacement.X *= scale
	}
	if math.Abs(t.direction.Y) > parameter.TransitionAxisThreshold {
		displacement.Y *= scale
	}

	if t.progress >= 1 {
		t.End()
		return displacement, true
	}
	return displacement, false
}

// End forces Idle and resets progress
func (t *Transition) End() {
	t.active = false
	t.progress = 0
}

func (t *Transition) Active() bool { return t.active }

func (t *Transition) State() TransitionState {
	if t.active {
		return StateTransitioning
	}
	return StateIdle
}

func (t *Transition) Progress() float64          { return t.progress }
func (t *Transition) StartPosition() vmath.Vec3F { return t.start }
func (t *Transition) EndPosition() vmath.Vec3F   { return t.end }
func (t *Transition) Direction() vmath.Vec3F     { return t.direction }
