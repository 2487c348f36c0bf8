package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/lixenwraith/regionconfiner/config"
	"github.com/lixenwraith/regionconfiner/confiner"
	"github.com/lixenwraith/regionconfiner/event"
	"github.com/lixenwraith/regionconfiner/region"
	"github.com/lixenwraith/regionconfiner/status"
	"github.com/lixenwraith/regionconfiner/vmath"
)

const (
	moveStep    = 1.0
	rollStep    = math.Pi / 36
	maxMessages = 6
)

// Sandbox is the host side of the confiner: it follows a target, applies the
// correction to its camera and reacts to region events
type Sandbox struct {
	cfg     *config.Config
	logger  *slog.Logger
	regions *region.Set
	conf    *confiner.Confiner
	queue   *event.EventQueue
	status  *status.Registry

	target  vmath.Vec3F
	camera  vmath.Vec3F
	lens    confiner.Lens
	roll    float64
	mode    confiner.UpdateMode
	hasPrev bool

	last     confiner.Result
	messages []string
}

// defaultLayout is a row of rooms with a tall shaft and an undersized closet
func defaultLayout() *region.Set {
	s := region.NewSet()
	s.Append(vmath.RectMinSize(0, 0, 60, 20))
	s.Append(vmath.RectMinSize(60, -10, 30, 50))
	s.Append(vmath.RectMinSize(-40, 5, 40, 10))
	s.Append(vmath.RectMinSize(90, 30, 8, 4))
	return s
}

func NewSandbox(cfg *config.Config, logger *slog.Logger) *Sandbox {
	sb := &Sandbox{
		cfg:     cfg,
		logger:  logger,
		regions: defaultLayout(),
		queue:   event.NewEventQueue(),
		status:  status.NewRegistry(),
		target:  vmath.V3F(30, 10, 0),
		lens:    confiner.OrthographicLens(cfg.Sandbox.OrthoSize, cfg.Sandbox.Aspect),
		mode:    confiner.ModeLive,
	}
	sb.camera = sb.target
	sb.conf = confiner.New(sb.regions,
		confiner.WithName("sandbox"),
		confiner.WithConfig(cfg),
		confiner.WithLogger(logger),
		confiner.WithPublisher(sb.queue),
		confiner.WithStatus(sb.status),
	)
	return sb
}

// Move shifts the followed target
func (sb *Sandbox) Move(dx, dy float64) {
	sb.target = vmath.V3FAdd(sb.target, vmath.V3F(dx*moveStep, dy*moveStep, 0))
}

// Roll rotates the camera around its view axis
func (sb *Sandbox) Roll(delta float64) {
	sb.roll += delta
}

// ToggleMode flips between live and edit-static updates
func (sb *Sandbox) ToggleMode() {
	if sb.mode == confiner.ModeLive {
		sb.mode = confiner.ModeEditStatic
	} else {
		sb.mode = confiner.ModeLive
	}
	sb.note(fmt.Sprintf("mode %s", modeName(sb.mode)))
}

// AppendRegion adds a frame-sized region centered on the target
func (sb *Sandbox) AppendRegion() {
	dx, dy := sb.lens.HalfExtents()
	r := sb.regions.Append(vmath.RectCenterSize(sb.target.X, sb.target.Y, dx*3, dy*3))
	sb.logger.Info("region appended", "region", r.Name, "count", sb.regions.Count())
	sb.note("added " + r.Name)
}

// RemoveLastRegion drops the newest region
func (sb *Sandbox) RemoveLastRegion() {
	n := sb.regions.Count()
	if n == 0 {
		return
	}
	r, err := sb.regions.Remove(n - 1)
	if err != nil {
		sb.logger.Error("remove region", "error", err)
		return
	}
	sb.logger.Info("region removed", "region", r.Name, "count", sb.regions.Count())
	sb.note("removed " + r.Name)
}

// Step runs one confiner tick and returns the events it produced
func (sb *Sandbox) Step(dt float64) []event.RegionEvent {
	res := sb.conf.Update(confiner.Frame{
		Target:    sb.target,
		HasTarget: true,
		// Body stage places the camera on the target before confinement
		Position:           sb.target,
		Orientation:        vmath.QuatRoll(sb.roll),
		Lens:               sb.lens,
		DeltaTime:          dt,
		PreviousStateValid: sb.hasPrev,
		Mode:               sb.mode,
	})
	sb.last = res
	sb.camera = vmath.V3FAdd(sb.target, res.Displacement)
	sb.hasPrev = true

	events := sb.queue.Consume()
	for _, ev := range events {
		switch ev.Type {
		case event.EventRegionLost:
			sb.note(fmt.Sprintf("%s %s", ev.Type, ev.Previous))
		default:
			sb.note(fmt.Sprintf("%s %s -> %s", ev.Type, ev.Previous, ev.Current))
		}
	}
	return events
}

func (sb *Sandbox) note(msg string) {
	sb.messages = append(sb.messages, msg)
	if len(sb.messages) > maxMessages {
		sb.messages = sb.messages[len(sb.messages)-maxMessages:]
	}
}

func modeName(m confiner.UpdateMode) string {
	if m == confiner.ModeEditStatic {
		return "edit"
	}
	return "live"
}
