package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/regionconfiner/region"
	"github.com/lixenwraith/regionconfiner/vmath"
)

var (
	styleRegion  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCurrent = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleFrame   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleTarget  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// view maps world units to cells centered on the camera, one unit per cell, Y up
type view struct {
	screen tcell.Screen
	w, h   int
	camera vmath.Vec3F
}

func (v view) toScreen(p vmath.Vec3F) (int, int) {
	x := v.w/2 + int(math.Round(p.X-v.camera.X))
	y := v.h/2 - int(math.Round(p.Y-v.camera.Y))
	return x, y
}

func (v view) put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= v.w || y >= v.h {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v view) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.put(x+i, y, r, style)
	}
}

func (v view) box(rect vmath.Rect, style tcell.Style, label string) {
	x0, y0 := v.toScreen(vmath.V3F(rect.MinX, rect.MaxY, 0))
	x1, y1 := v.toScreen(vmath.V3F(rect.MaxX, rect.MinY, 0))

	for x := x0 + 1; x < x1; x++ {
		v.put(x, y0, '─', style)
		v.put(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		v.put(x0, y, '│', style)
		v.put(x1, y, '│', style)
	}
	v.put(x0, y0, '┌', style)
	v.put(x1, y0, '┐', style)
	v.put(x0, y1, '└', style)
	v.put(x1, y1, '┘', style)
	if label != "" {
		v.text(x0+2, y0, label, style)
	}
}

// corners marks the four rotated frame corners the solver samples
func (v view) corners(sb *Sandbox) {
	dx, dy := sb.lens.HalfExtents()
	rot := vmath.QuatRoll(sb.roll)
	vx := vmath.V3FScale(vmath.QuatRight(rot), dx)
	vy := vmath.V3FScale(vmath.QuatUp(rot), dy)
	for _, c := range []vmath.Vec3F{
		vmath.V3FSub(vmath.V3FSub(sb.camera, vy), vx),
		vmath.V3FAdd(vmath.V3FAdd(sb.camera, vy), vx),
		vmath.V3FAdd(vmath.V3FSub(sb.camera, vy), vx),
		vmath.V3FSub(vmath.V3FAdd(sb.camera, vy), vx),
	} {
		x, y := v.toScreen(c)
		v.put(x, y, '+', styleFrame)
	}
}

func draw(screen tcell.Screen, sb *Sandbox) {
	screen.Clear()
	w, h := screen.Size()
	v := view{screen: screen, w: w, h: h, camera: sb.camera}

	current := sb.last.Region
	for _, r := range sb.regions.Regions() {
		style := styleRegion
		if current != nil && r.Equal(current) {
			style = styleCurrent
		}
		v.box(r.Area, style, r.Name)
	}

	v.corners(sb)
	tx, ty := v.toScreen(sb.target)
	v.put(tx, ty, '@', styleTarget)

	for i, msg := range sb.messages {
		v.text(1, 1+i, msg, styleMessage)
	}

	drawStatus(v, sb, current)
	screen.Show()
}

func drawStatus(v view, sb *Sandbox, current *region.Region) {
	line := fmt.Sprintf(" %s | region %s | %s %.2f | iter %d | disp (%.1f, %.1f) | arrows move, [ ] roll, a add, x remove, m mode, q quit ",
		modeName(sb.mode), current, sb.conf.TransitionState(), sb.last.Progress, sb.last.Iterations,
		sb.last.Displacement.X, sb.last.Displacement.Y)
	for x := 0; x < v.w; x++ {
		v.put(x, v.h-1, ' ', styleStatus)
	}
	v.text(0, v.h-1, line, styleStatus)

	// Metrics column on the right
	entries := sb.status.Dump()
	for i, e := range entries {
		row := 1 + i
		if row >= v.h-2 {
			break
		}
		s := fmt.Sprintf("%s %s", e.Key, e.Value)
		v.text(v.w-len(s)-1, row, s, styleRegion)
	}
}
