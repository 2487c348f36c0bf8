package parameter

import "time"

// Sandbox loop timing
const (
	// FrameUpdateInterval is the sandbox render and confiner tick (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FrameUpdateIntervalMin bounds configured tick rates
	FrameUpdateIntervalMin = 4 * time.Millisecond
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the region event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
