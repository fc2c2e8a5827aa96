// Package app is the bubbletea front end: the track list, the player bar
// and the prompts around one engine.
package app

import (
	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/playback"
)

// CatalogLoadedMsg carries a freshly loaded catalog.
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
}

// PromptMsg asks the user a yes/no question on behalf of the permission
// gate.
type PromptMsg PromptRequest

// PlayResultMsg reports the outcome of a play request.
type PlayResultMsg struct {
	Err error
}

// Session events, one message type per subscription channel.
type (
	StateChangedMsg  playback.StateChange
	TrackChangedMsg  playback.TrackChange
	PositionMsg      playback.PositionUpdate
	BoundaryMsg      playback.BoundaryEvent
	ErrorMsg         playback.ErrorEvent
	SessionClosedMsg struct{}
)

// ToastExpiredMsg hides the toast it was scheduled for. Newer toasts have
// a higher ID and survive older timers.
type ToastExpiredMsg struct {
	ID int
}
