package playback

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/player"
)

// Resolver turns a track locator into a decodable source.
type Resolver interface {
	Resolve(locator string) (player.Source, error)
}

// End is the end-of-stream signal of one load. Err is nil when the stream
// played out and the decoder error otherwise.
type End struct {
	Gen uint64
	Err error
}

// Transport drives a single decoder handle through the transport states.
//
// Each Load gets a new generation. The end-of-stream signal of a load is
// passed to the end handler tagged with that generation, and Finish only
// acts on the signal of the current load, once.
type Transport struct {
	mu       sync.Mutex
	player   player.Interface
	resolver Resolver
	state    State
	gen      uint64
	track    catalog.Track
	loaded   bool
	stop     chan struct{}

	onEnd   func(End)
	onState func(StateChange)
}

func NewTransport(p player.Interface, r Resolver) *Transport {
	return &Transport{player: p, resolver: r, state: Idle}
}

// observe installs the end and state handlers. The end handler runs on a
// watcher goroutine without any transport lock held; the state handler runs
// with the transport lock held and must not call back into the transport.
func (t *Transport) observe(onEnd func(End), onState func(StateChange)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEnd = onEnd
	t.onState = onState
}

// Load releases the current stream, then resolves and starts track.
func (t *Transport) Load(track catalog.Track) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.releaseLocked()
	t.gen++
	t.track = track
	t.setStateLocked(Preparing)

	src, err := t.resolver.Resolve(track.Locator)
	if err != nil {
		t.setStateLocked(Failed)
		return &Error{Op: "load", Locator: track.Locator, Err: fmt.Errorf("%w: %w", ErrSourceUnreadable, err)}
	}

	if err := t.player.Play(src); err != nil {
		t.setStateLocked(Failed)
		kind := ErrDecoderFailure
		if errors.Is(err, player.ErrUnreadable) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			kind = ErrSourceUnreadable
		}
		return &Error{Op: "load", Locator: track.Locator, Err: fmt.Errorf("%w: %w", kind, err)}
	}

	t.loaded = true
	t.stop = make(chan struct{})
	go t.watch(t.gen, t.player.Finished(), t.stop)
	t.setStateLocked(Playing)
	return nil
}

func (t *Transport) watch(gen uint64, finished <-chan error, stop <-chan struct{}) {
	select {
	case err := <-finished:
		t.mu.Lock()
		onEnd := t.onEnd
		t.mu.Unlock()
		if onEnd != nil {
			onEnd(End{Gen: gen, Err: err})
		}
	case <-stop:
	}
}

// Finish applies an end-of-stream signal. It reports false for a signal
// that is stale or already handled. A decoder error releases the stream and
// leaves the transport Failed.
func (t *Transport) Finish(e End) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e.Gen != t.gen || !t.state.IsActive() {
		return false, nil
	}
	if e.Err != nil {
		t.releaseLocked()
		t.setStateLocked(Failed)
		return true, &Error{Op: "play", Locator: t.track.Locator, Err: fmt.Errorf("%w: %w", ErrDecoderFailure, e.Err)}
	}
	t.setStateLocked(Completed)
	return true, nil
}

// TogglePause flips Playing and Paused. In any other state it does nothing.
func (t *Transport) TogglePause() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case Playing:
		t.player.Pause()
		t.setStateLocked(Paused)
	case Paused:
		t.player.Resume()
		t.setStateLocked(Playing)
	}
	return t.state
}

// SeekTo moves to pos clamped to [0, Duration]. It does nothing unless the
// stream is playing or paused.
func (t *Transport) SeekTo(pos time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.IsActive() {
		return nil
	}
	pos = min(max(pos, 0), t.player.Duration())
	if err := t.player.SeekTo(pos); err != nil {
		return &Error{Op: "seek", Locator: t.track.Locator, Err: fmt.Errorf("%w: %w", ErrDecoderFailure, err)}
	}
	return nil
}

func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Generation returns the generation of the latest load.
func (t *Transport) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Track returns the track of the latest load, if any.
func (t *Transport) Track() (catalog.Track, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.track, t.gen > 0
}

// Position returns 0 when nothing is loaded.
func (t *Transport) Position() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return 0
	}
	return t.player.Position()
}

// Duration returns 0 when nothing is loaded.
func (t *Transport) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return 0
	}
	return t.player.Duration()
}

// Sample reads the position of the loaded stream. It reports false when
// nothing is loaded.
func (t *Transport) Sample() (PositionUpdate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return PositionUpdate{}, false
	}
	return PositionUpdate{
		Position: t.player.Position(),
		Duration: t.player.Duration(),
		Playing:  t.state == Playing,
	}, true
}

// Close releases the stream and returns to Idle.
func (t *Transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.releaseLocked()
	t.setStateLocked(Idle)
}

func (t *Transport) releaseLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	if t.loaded {
		t.player.Stop()
		t.loaded = false
	}
}

func (t *Transport) setStateLocked(s State) {
	prev := t.state
	if prev == s {
		return
	}
	t.state = s
	logrus.Debugf("Transport %s -> %s (gen %d)", prev, s, t.gen)
	if t.onState != nil {
		t.onState(StateChange{Previous: prev, Current: s})
	}
}
