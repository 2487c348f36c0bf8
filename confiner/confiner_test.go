package confiner

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/lixenwraith/regionconfiner/config"
	"github.com/lixenwraith/regionconfiner/event"
	"github.com/lixenwraith/regionconfiner/parameter"
	"github.com/lixenwraith/regionconfiner/region"
	"github.com/lixenwraith/regionconfiner/status"
	"github.com/lixenwraith/regionconfiner/vmath"
)

type hookCall struct {
	previous, current *region.Region
}

type recorder struct {
	changed, started, completed []hookCall
}

func (r *recorder) attach(c *Confiner) {
	c.OnRegionChanged(func(p, cur *region.Region) { r.changed = append(r.changed, hookCall{p, cur}) })
	c.OnTransitionStarted(func(p, cur *region.Region) { r.started = append(r.started, hookCall{p, cur}) })
	c.OnTransitionComplete(func(p, cur *region.Region) { r.completed = append(r.completed, hookCall{p, cur}) })
}

// twoRooms returns side-by-side regions R1 [0,40]x[0,20] and R2 [40,80]x[0,20]
func twoRooms() (*region.Set, *region.Region, *region.Region) {
	s := region.NewSet()
	r1 := s.Append(vmath.RectMinMax(0, 0, 40, 20))
	r2 := s.Append(vmath.RectMinMax(40, 0, 80, 20))
	return s, r1, r2
}

func liveFrame(target, position vmath.Vec3F) Frame {
	return Frame{
		Target:             target,
		HasTarget:          true,
		Position:           position,
		Orientation:        vmath.QuatIdentity,
		Lens:               wideLens,
		DeltaTime:          0.25,
		PreviousStateValid: true,
		Mode:               ModeLive,
	}
}

func TestUpdateEmptyAndNoTarget(t *testing.T) {
	c := New(region.NewSet())
	res := c.Update(liveFrame(vmath.V3F(0, 0, 0), vmath.V3F(0, 0, 0)))
	if res.Region != nil || res.Displacement != vmath.Zero3F {
		t.Errorf("Expected empty result for empty set, got %+v", res)
	}
	if _, ok := c.CurrentRegion(); ok {
		t.Error("Expected no current region")
	}

	s := region.NewSet()
	s.Append(vmath.RectMinSize(-20, -10, 40, 20))
	c = New(s)
	f := liveFrame(vmath.V3F(0, 0, 0), vmath.V3F(100, 100, 0))
	f.HasTarget = false
	if res := c.Update(f); res.Region != nil || res.Displacement != vmath.Zero3F {
		t.Errorf("Expected empty result without target, got %+v", res)
	}

	c = New(nil)
	if c.HasRegions() {
		t.Error("Expected no regions attached")
	}
	if res := c.Update(liveFrame(vmath.V3F(0, 0, 0), vmath.V3F(0, 0, 0))); res.Region != nil {
		t.Errorf("Expected nil region without a set, got %v", res.Region)
	}
	if _, ok := c.ResolveCurrentRegion(vmath.V3F(0, 0, 0)); ok {
		t.Error("Expected no resolution without a set")
	}
}

func TestUpdateSingleRegionScenario(t *testing.T) {
	s := region.NewSet()
	only := s.Append(vmath.RectMinSize(-20, -10, 40, 20))
	c := New(s)

	res := c.Update(liveFrame(vmath.V3F(0, 0, 0), vmath.V3F(0, 0, -10)))
	if res.Region != only {
		t.Fatalf("Expected the only region, got %v", res.Region)
	}
	if res.Displacement != vmath.Zero3F || res.Iterations != 1 {
		t.Errorf("Expected zero displacement in one pass, got %v in %d", res.Displacement, res.Iterations)
	}

	res = c.Update(liveFrame(vmath.V3F(100, 100, 0), vmath.V3F(100, 100, -10)))
	if res.Region != only {
		t.Fatalf("Expected nearest-region fallback to the only region, got %v", res.Region)
	}
	if res.Changed {
		t.Error("Expected no region change")
	}
	if !vmath.V3FApprox(res.Displacement, vmath.V3F(-90, -95, 0), tol) {
		t.Errorf("Expected pull back (-90,-95,0), got %v", res.Displacement)
	}
}

func TestUpdateTransitionLifecycle(t *testing.T) {
	s, r1, r2 := twoRooms()
	q := event.NewEventQueue()
	c := New(s, WithPublisher(q), WithTransitionSpeed(1))
	var rec recorder
	rec.attach(c)

	camera := vmath.V3F(20, 10, 0)

	first := liveFrame(vmath.V3F(10, 10, 0), camera)
	first.PreviousStateValid = false
	if res := c.Update(first); res.Region != r1 || res.Changed {
		t.Fatalf("Expected R1 without change, got %+v", res)
	}

	// Target crosses into R2; raw correction is (30,0,0)
	res := c.Update(liveFrame(vmath.V3F(50, 10, 0), camera))
	if !res.Changed || res.Region != r2 || res.Previous != r1 {
		t.Fatalf("Expected change R1->R2, got %+v", res)
	}
	if !vmath.V3FApprox(res.Raw, vmath.V3F(30, 0, 0), tol) {
		t.Fatalf("Expected raw (30,0,0), got %v", res.Raw)
	}
	if !res.Transitioning || c.TransitionState() != StateTransitioning {
		t.Fatal("Expected transition to start")
	}
	if !vmath.V3FApprox(res.Displacement, vmath.V3F(7.5, 0, 0), tol) {
		t.Errorf("Expected first blended step (7.5,0,0), got %v", res.Displacement)
	}
	if tr := c.Transition(); tr.StartPosition() != camera || !vmath.V3FApprox(tr.EndPosition(), vmath.V3F(50, 10, 0), tol) {
		t.Errorf("Unexpected transition endpoints %v -> %v", tr.StartPosition(), tr.EndPosition())
	}
	if last, _ := c.LastRegion(); last != r1 {
		t.Errorf("Expected last region R1, got %v", last)
	}

	wantX := []float64{15, 22.5, 30}
	for i, x := range wantX {
		res = c.Update(liveFrame(vmath.V3F(50, 10, 0), camera))
		if !vmath.V3FApprox(res.Displacement, vmath.V3F(x, 0, 0), tol) {
			t.Errorf("Step %d: expected x=%f, got %v", i, x, res.Displacement)
		}
		if res.Changed {
			t.Errorf("Step %d: unexpected region change", i)
		}
	}
	if !res.Completed || res.Transitioning {
		t.Fatalf("Expected completion on last step, got %+v", res)
	}

	// Idle again: raw passes through, no further notifications
	for i := 0; i < 3; i++ {
		res = c.Update(liveFrame(vmath.V3F(50, 10, 0), camera))
		if res.Displacement != res.Raw || res.Completed {
			t.Errorf("Expected pass-through after completion, got %+v", res)
		}
	}

	if len(rec.changed) != 1 || len(rec.started) != 1 || len(rec.completed) != 1 {
		t.Fatalf("Expected one of each notification, got changed=%d started=%d completed=%d",
			len(rec.changed), len(rec.started), len(rec.completed))
	}
	if got := rec.completed[0]; got.previous != r1 || got.current != r2 {
		t.Errorf("Expected completion (R1, R2), got (%v, %v)", got.previous, got.current)
	}

	events := q.Consume()
	wantTypes := []event.EventType{event.EventRegionChanged, event.EventTransitionStarted, event.EventTransitionCompleted}
	if len(events) != len(wantTypes) {
		t.Fatalf("Expected %d events, got %d", len(wantTypes), len(events))
	}
	for i, ev := range events {
		if ev.Type != wantTypes[i] {
			t.Errorf("Event %d: expected %v, got %v", i, wantTypes[i], ev.Type)
		}
		if ev.Source != c.ID() || ev.Previous != r1 || ev.Current != r2 {
			t.Errorf("Event %d: unexpected source or regions %+v", i, ev)
		}
	}
	if events[0].Frame != 2 || events[2].Frame != 5 {
		t.Errorf("Unexpected event frames %d, %d", events[0].Frame, events[2].Frame)
	}
}

func TestUpdateIneligibleFramesSnap(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Frame)
	}{
		{"no previous state", func(f *Frame) { f.PreviousStateValid = false }},
		{"edit mode", func(f *Frame) { f.Mode = ModeEditStatic }},
		{"negative delta", func(f *Frame) { f.DeltaTime = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, r2 := twoRooms()
			c := New(s)
			var rec recorder
			rec.attach(c)

			camera := vmath.V3F(20, 10, 0)
			c.Update(liveFrame(vmath.V3F(10, 10, 0), camera))

			f := liveFrame(vmath.V3F(50, 10, 0), camera)
			tt.mutate(&f)
			res := c.Update(f)

			if !res.Changed || res.Region != r2 {
				t.Fatalf("Expected change to R2, got %+v", res)
			}
			if res.Transitioning || len(rec.started) != 0 {
				t.Error("Expected no transition on ineligible frame")
			}
			if res.Displacement != res.Raw {
				t.Errorf("Expected raw displacement %v, got %v", res.Raw, res.Displacement)
			}
			if len(rec.changed) != 1 {
				t.Errorf("Expected region change notification, got %d", len(rec.changed))
			}
		})
	}
}

func TestUpdateRegionLostAndReset(t *testing.T) {
	s, r1, _ := twoRooms()
	q := event.NewEventQueue()
	c := New(s, WithPublisher(q))

	c.Update(liveFrame(vmath.V3F(10, 10, 0), vmath.V3F(20, 10, 0)))

	f := liveFrame(vmath.V3F(10, 10, 0), vmath.V3F(20, 10, 0))
	f.HasTarget = false
	res := c.Update(f)
	if res.Region != nil {
		t.Fatalf("Expected no region without target, got %v", res.Region)
	}
	if last, ok := c.LastRegion(); !ok || last != r1 {
		t.Errorf("Expected last region R1, got %v", last)
	}

	events := q.Consume()
	if len(events) != 1 || events[0].Type != event.EventRegionLost || events[0].Previous != r1 {
		t.Errorf("Expected a single RegionLost for R1, got %+v", events)
	}

	// Reacquiring is not a change: there was no previous region
	res = c.Update(liveFrame(vmath.V3F(50, 10, 0), vmath.V3F(20, 10, 0)))
	if res.Changed || res.Transitioning {
		t.Errorf("Expected fresh acquisition without transition, got %+v", res)
	}

	c.SetRegions(nil)
	if _, ok := c.CurrentRegion(); ok {
		t.Error("Expected SetRegions(nil) to clear the current region")
	}
}

func TestUpdateSeesEditsBetweenFrames(t *testing.T) {
	s := region.NewSet()
	s.Append(vmath.RectMinMax(0, 0, 40, 20))
	c := New(s)

	camera := vmath.V3F(20, 10, 0)
	c.Update(liveFrame(vmath.V3F(10, 10, 0), camera))

	r2 := s.Append(vmath.RectMinMax(-100, -100, 100, 100))
	if _, err := s.Remove(0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	res := c.Update(liveFrame(vmath.V3F(10, 10, 0), camera))
	if res.Region != r2 || !res.Changed {
		t.Errorf("Expected edit to be picked up on next frame, got %+v", res)
	}
}

func TestDamping(t *testing.T) {
	s := region.NewSet()
	s.Append(vmath.RectMinSize(-20, -10, 40, 20))

	undamped := New(s)
	damped := New(s, WithDamping(1))

	f := liveFrame(vmath.V3F(100, 100, 0), vmath.V3F(100, 100, 0))
	f.DeltaTime = 0.1

	raw := undamped.Update(f).Displacement
	got := damped.Update(f).Displacement

	if vmath.V3FMag(got) >= vmath.V3FMag(raw) {
		t.Errorf("Expected damped %v shorter than raw %v", got, raw)
	}
	want := vmath.V3FDamp(raw, 1, 0.1)
	if !vmath.V3FApprox(got, want, tol) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// Ineligible frames skip damping
	f.PreviousStateValid = false
	if got := damped.Update(f).Displacement; !vmath.V3FApprox(got, raw, tol) {
		t.Errorf("Expected undamped %v on ineligible frame, got %v", raw, got)
	}
}

func TestSettingsClamp(t *testing.T) {
	c := New(nil, WithTransitionSpeed(0), WithDamping(50))
	if c.TransitionSpeed() != parameter.TransitionSpeedMin {
		t.Errorf("Expected speed floor, got %f", c.TransitionSpeed())
	}
	if c.Damping() != parameter.DampingMax {
		t.Errorf("Expected damping ceiling, got %f", c.Damping())
	}
	if got := c.SetTransitionSpeed(3); got != 3 {
		t.Errorf("Expected 3, got %f", got)
	}

	cfg := config.DefaultConfig()
	cfg.TransitionSpeed = 2
	cfg.Damping = 0.5
	c = New(nil, WithConfig(cfg))
	if c.TransitionSpeed() != 2 || c.Damping() != 0.5 {
		t.Errorf("Expected config values, got %f %f", c.TransitionSpeed(), c.Damping())
	}
}

func TestMetricsAndLogging(t *testing.T) {
	s, _, _ := twoRooms()
	reg := status.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := New(s, WithName("main"), WithStatus(reg), WithLogger(logger), WithTransitionSpeed(4))
	camera := vmath.V3F(20, 10, 0)
	c.Update(liveFrame(vmath.V3F(10, 10, 0), camera))
	c.Update(liveFrame(vmath.V3F(50, 10, 0), camera))
	c.Update(liveFrame(vmath.V3F(50, 10, 0), camera))

	if got := reg.Ints.Get("main.frames").Load(); got != 3 {
		t.Errorf("Expected 3 frames, got %d", got)
	}
	if got := reg.Ints.Get("main.transitions.started").Load(); got != 1 {
		t.Errorf("Expected 1 started transition, got %d", got)
	}
	if got := reg.Ints.Get("main.transitions.completed").Load(); got != 1 {
		t.Errorf("Expected 1 completed transition, got %d", got)
	}
	if got := reg.Strings.Get("main.region").Load(); got != "Region #2" {
		t.Errorf("Expected region metric Region #2, got %q", got)
	}

	out := buf.String()
	for _, want := range []string{"region changed", "transition started", "transition completed", "confiner=main"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log to contain %q:\n%s", want, out)
		}
	}
}
