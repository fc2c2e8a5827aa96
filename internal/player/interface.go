package player

import "time"

// Interface is the decoder handle driven by the transport.
//
// One track is loaded at a time. Play releases whatever was loaded before it
// acquires the new stream. Finished returns a channel dedicated to the
// current load: it receives nil when the stream plays out, or the decoder
// error that cut it short. The channel is never closed.
type Interface interface {
	Play(src Source) error
	Stop()
	Pause()
	Resume()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SeekTo(pos time.Duration) error
	Finished() <-chan error
}

var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
