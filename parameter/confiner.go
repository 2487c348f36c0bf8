package parameter

// Screen-edge solver
const (
	// ConfineMaxIterations caps the fixed-point corner solver per frame
	ConfineMaxIterations = 12

	// ConfineOscillationScale is applied to a correction that exactly undoes the previous one
	// Half of it centers the frame in a region smaller than the frame
	ConfineOscillationScale = 0.5
)

// Region transition
const (
	// TransitionSpeedMin is the floor for transition speed (progress per second)
	TransitionSpeedMin = 0.1

	// TransitionSpeedDefault finishes a hand-off in one second
	TransitionSpeedDefault = 1.0

	// TransitionAxisThreshold is the minimum |direction| component for an axis to be ramped
	// Axes below it pass the raw displacement through
	TransitionAxisThreshold = 0.01
)

// Damping
const (
	// DampingMin disables damping
	DampingMin = 0.0

	// DampingMax is the slowest allowed return, in seconds to 99% settled
	DampingMax = 10.0

	// DampingDefault leaves corrections undamped
	DampingDefault = 0.0
)

// RegionNameFormat names regions created through Set.Append, 1-based
const RegionNameFormat = "Region #%d"
