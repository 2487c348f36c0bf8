package region

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/regionconfiner/parameter"
	"github.com/lixenwraith/regionconfiner/vmath"
)

// ErrIndexOutOfRange is returned by index-based edits
var ErrIndexOutOfRange = errors.New("region index out of range")

// Set is an ordered collection of regions, first containing region wins
// Thread-Safety:
//   - Edits (Append, Remove, Replace) serialize on a mutex and publish a fresh slice
//   - Reads go through an immutable Snapshot, lock-free
//
// A confiner takes one Snapshot per frame so edits are never observed mid-frame
type Set struct {
	mu      sync.Mutex
	regions atomic.Pointer[[]*Region]
}

// NewSet creates a set holding the given regions in order
func NewSet(regions ...*Region) *Set {
	s := &Set{}
	list := make([]*Region, 0, len(regions))
	for _, r := range regions {
		if r != nil {
			list = append(list, r)
		}
	}
	s.regions.Store(&list)
	return s
}

// Snapshot returns the current immutable view
func (s *Set) Snapshot() Snapshot {
	if p := s.regions.Load(); p != nil {
		return Snapshot{regions: *p}
	}
	return Snapshot{}
}

// Append adds a region named "Region #n" where n is the new count
func (s *Set) Append(area vmath.Rect) *Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	r := New(fmt.Sprintf(parameter.RegionNameFormat, len(old)+1), area)
	next := make([]*Region, len(old), len(old)+1)
	copy(next, old)
	next = append(next, r)
	s.regions.Store(&next)
	return r
}

// Add appends an already named region
func (s *Set) Add(r *Region) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	next := make([]*Region, len(old), len(old)+1)
	copy(next, old)
	next = append(next, r)
	s.regions.Store(&next)
}

// Remove deletes the region at index i, preserving order
func (s *Set) Remove(i int) (*Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	if i < 0 || i >= len(old) {
		return nil, fmt.Errorf("remove %d of %d: %w", i, len(old), ErrIndexOutOfRange)
	}
	removed := old[i]
	next := make([]*Region, 0, len(old)-1)
	next = append(next, old[:i]...)
	next = append(next, old[i+1:]...)
	s.regions.Store(&next)
	return removed, nil
}

// Replace swaps the area of region i for a new one, keeping its name
// Regions are never mutated in place; a new value is published
func (s *Set) Replace(i int, area vmath.Rect) (*Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	if i < 0 || i >= len(old) {
		return nil, fmt.Errorf("replace %d of %d: %w", i, len(old), ErrIndexOutOfRange)
	}
	r := New(old[i].Name, area)
	next := make([]*Region, len(old))
	copy(next, old)
	next[i] = r
	s.regions.Store(&next)
	return r, nil
}

// Clear drops every region
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	empty := []*Region{}
	s.regions.Store(&empty)
}

func (s *Set) load() []*Region {
	if p := s.regions.Load(); p != nil {
		return *p
	}
	return nil
}

// Read helpers on the live set, each against the latest snapshot

func (s *Set) Count() int                            { return s.Snapshot().Count() }
func (s *Set) IsEmpty() bool                         { return s.Snapshot().IsEmpty() }
func (s *Set) At(i int) (*Region, bool)              { return s.Snapshot().At(i) }
func (s *Set) First() (*Region, bool)                { return s.Snapshot().First() }
func (s *Set) Last() (*Region, bool)                 { return s.Snapshot().Last() }
func (s *Set) Regions() []*Region                    { return s.Snapshot().Regions() }
func (s *Set) Contains(p vmath.Vec3F) bool           { return s.Snapshot().Contains(p) }
func (s *Set) Resolve(p vmath.Vec3F) (*Region, bool) { return s.Snapshot().Resolve(p) }

// Snapshot is a read-only view of a Set at one point in time
// The zero value is an empty view
type Snapshot struct {
	regions []*Region
}

func (v Snapshot) Count() int    { return len(v.regions) }
func (v Snapshot) IsEmpty() bool { return len(v.regions) == 0 }

func (v Snapshot) At(i int) (*Region, bool) {
	if i < 0 || i >= len(v.regions) {
		return nil, false
	}
	return v.regions[i], true
}

func (v Snapshot) First() (*Region, bool) { return v.At(0) }
func (v Snapshot) Last() (*Region, bool)  { return v.At(len(v.regions) - 1) }

// Regions returns a copy of the ordered list
func (v Snapshot) Regions() []*Region {
	out := make([]*Region, len(v.regions))
	copy(out, v.regions)
	return out
}

// Contains reports whether any region holds p
func (v Snapshot) Contains(p vmath.Vec3F) bool {
	for _, r := range v.regions {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Resolve returns the first region containing p
// Outside every region it falls back to the nearest one, ties going to the earlier region
// Returns false only for an empty view
func (v Snapshot) Resolve(p vmath.Vec3F) (*Region, bool) {
	if len(v.regions) == 0 {
		return nil, false
	}

	for _, r := range v.regions {
		if r.Contains(p) {
			return r, true
		}
	}

	best := -1
	bestDist := math.Inf(1)
	for i, r := range v.regions {
		// Strict less keeps the first of equidistant regions
		if d := r.Distance(p); d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		// Every distance was NaN
		best = 0
	}
	return v.regions[best], true
}
