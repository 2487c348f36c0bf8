package event

// EventType represents the kind of region event
type EventType int

const (
	// EventNone is the zero value, never published
	EventNone EventType = iota

	// EventRegionChanged signals the resolved region differs from last frame
	// Trigger: Confiner.Update, every change including ineligible frames
	EventRegionChanged

	// EventTransitionStarted signals a blended hand-off began
	// Trigger: region change on a live frame with a valid previous state
	EventTransitionStarted

	// EventTransitionCompleted signals the blend reached full progress
	// Trigger: Transition.Advance crossing progress 1
	EventTransitionCompleted

	// EventRegionLost signals the confiner dropped its region (empty set or no target)
	EventRegionLost
)

var eventTypeNames = map[EventType]string{
	EventNone:                "None",
	EventRegionChanged:       "RegionChanged",
	EventTransitionStarted:   "TransitionStarted",
	EventTransitionCompleted: "TransitionCompleted",
	EventRegionLost:          "RegionLost",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}
