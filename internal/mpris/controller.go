// Package mpris publishes the playback session as an MPRIS media player so
// desktop media keys and applets can drive it.
package mpris

import (
	"time"

	"github.com/llehouerou/localplay/internal/playback"
)

const (
	busName  = "localplay"
	identity = "localplay"
)

// Controller is the part of a playback session the adapter drives.
type Controller interface {
	Next() (playback.Boundary, error)
	Previous() (playback.Boundary, error)
	Select(i int) error
	TogglePause() playback.State
	Suspend()
	SeekTo(pos time.Duration) error
	Status() playback.Status
}

var _ Controller = (*playback.Session)(nil)
