package event

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/regionconfiner/region"
)

// RegionEvent is a single confiner notification
// Previous and Current are the regions before and after the triggering change
type RegionEvent struct {
	Type     EventType
	Source   uuid.UUID // confiner instance
	Previous *region.Region
	Current  *region.Region
	Frame    int64
}

// Publisher accepts region events; EventQueue implements it
type Publisher interface {
	Push(ev RegionEvent)
}
