package playback

import (
	"time"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/errmsg"
)

// StateChange is emitted on every transport state transition.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when the cursor moves, before the track is loaded.
// A load failure that follows is reported separately as an ErrorEvent.
type TrackChange struct {
	Track catalog.Track
	Index int
	Total int
}

// PositionUpdate is one sample of the position sync loop.
type PositionUpdate struct {
	Position time.Duration
	Duration time.Duration
	Playing  bool
	// Rotation counts playing ticks and drives the spinning track icon.
	// It is 0 while not playing.
	Rotation int
}

// BoundaryEvent is emitted when Next or Previous hits an end of the list,
// and when the last track plays out.
type BoundaryEvent struct {
	Boundary Boundary
	Message  string
}

// ErrorEvent is emitted when loading or playing a track fails.
type ErrorEvent struct {
	Op    errmsg.Op
	Track catalog.Track
	Err   error
}

// Message formats the event for display.
func (e ErrorEvent) Message() string {
	return errmsg.FormatWith(e.Op, e.Track.DisplayTitle(), e.Err)
}
