package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/regionconfiner/config"
	"github.com/lixenwraith/regionconfiner/event"
)

var (
	configFlag = flag.String("config", "confiner.toml", "TOML config file, missing file uses defaults")
	noAudio    = flag.Bool("mute", false, "Disable chimes")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadFile(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	if *noAudio {
		cfg.Sandbox.Audio = false
	}

	logger, logFile, err := setupLogging(cfg.Sandbox.LogFile, cfg.LogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	if len(cfg.Adjusted) > 0 {
		logger.Warn("config values clamped", "fields", cfg.Adjusted)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Runs after the deferred Fini below, so the terminal is already restored
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "confiner-sandbox crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	chime, err := NewChime(cfg.Sandbox.Audio)
	if err != nil {
		// Non-fatal, sandbox runs silent
		logger.Warn("audio initialization failed", "error", err)
	}
	defer chime.Close()

	sb := NewSandbox(cfg, logger)
	logger.Info("sandbox started", "confiner", sb.conf.ID().String(), "regions", sb.regions.Count(),
		"transition_speed", sb.conf.TransitionSpeed(), "damping", sb.conf.Damping())

	run(screen, sb, chime, cfg.TickInterval())
	logger.Info("sandbox stopped")
}

func run(screen tcell.Screen, sb *Sandbox, chime *Chime, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !handleInput(screen, sb, ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			for _, ev := range sb.Step(dt) {
				switch ev.Type {
				case event.EventTransitionCompleted:
					chime.Handoff()
				case event.EventRegionChanged:
					if !sb.last.Transitioning {
						chime.Snap()
					}
				}
			}
			draw(screen, sb)
		}
	}
}

func handleInput(screen tcell.Screen, sb *Sandbox, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			sb.Move(0, 1)
		case tcell.KeyDown:
			sb.Move(0, -1)
		case tcell.KeyLeft:
			sb.Move(-1, 0)
		case tcell.KeyRight:
			sb.Move(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				sb.Move(-1, 0)
			case 'l':
				sb.Move(1, 0)
			case 'k':
				sb.Move(0, 1)
			case 'j':
				sb.Move(0, -1)
			case '[':
				sb.Roll(-rollStep)
			case ']':
				sb.Roll(rollStep)
			case 'a':
				sb.AppendRegion()
			case 'x':
				sb.RemoveLastRegion()
			case 'm':
				sb.ToggleMode()
			}
		}

	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
