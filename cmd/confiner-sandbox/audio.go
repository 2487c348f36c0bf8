package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	chimeLowHz  = 660
	chimeHighHz = 990
	chimeNote   = 60 * time.Millisecond
)

// Chime plays short tones on region events
// A disabled or failed speaker makes every call a no-op
type Chime struct {
	sr      beep.SampleRate
	enabled bool
}

func NewChime(enabled bool) (*Chime, error) {
	c := &Chime{sr: beep.SampleRate(44100)}
	if !enabled {
		return c, nil
	}
	if err := speaker.Init(c.sr, c.sr.N(time.Second/10)); err != nil {
		return c, err
	}
	c.enabled = true
	return c, nil
}

// Handoff plays a rising two-note chime for a completed transition
func (c *Chime) Handoff() {
	c.play(chimeLowHz, chimeHighHz)
}

// Snap plays a single note for a region change without blending
func (c *Chime) Snap() {
	c.play(chimeLowHz)
}

func (c *Chime) play(freqs ...float64) {
	if !c.enabled {
		return
	}
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(c.sr, f)
		if err != nil {
			continue
		}
		notes = append(notes, beep.Take(c.sr.N(chimeNote), tone))
	}
	if len(notes) > 0 {
		speaker.Play(beep.Seq(notes...))
	}
}

func (c *Chime) Close() {
	if c.enabled {
		speaker.Close()
		c.enabled = false
	}
}
