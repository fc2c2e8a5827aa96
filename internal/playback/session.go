// Package playback holds the playback session: the cursor over the track
// list, the transport that plays the track under it, and the loop that
// reports progress.
package playback

import (
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/errmsg"
)

// Session owns the current index over an ordered track list.
//
// All transitions, end-of-stream handling and sampling are serialized by
// one mutex. The lock order is Session, then Transport.
type Session struct {
	mu        sync.Mutex
	transport *Transport
	tracks    []catalog.Track
	index     int
	closed    bool

	subsMu     sync.RWMutex
	subs       []*Subscription
	subsClosed bool
}

// NewSession returns a session with no track list. The session takes over
// the end and state handlers of t.
func NewSession(t *Transport) *Session {
	s := &Session{transport: t, index: -1}
	t.observe(s.handleEnd, s.publishState)
	return s
}

// Start installs the track list and plays tracks[initial].
func (s *Session) Start(tracks []catalog.Track, initial int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &Error{Op: "start", Err: ErrClosed}
	}
	if len(tracks) == 0 {
		return opError("start", ErrInvalidArgument, NoSongsMessage)
	}
	if initial < 0 || initial >= len(tracks) {
		return opError("start", ErrInvalidArgument, "initial index %d not in [0, %d)", initial, len(tracks))
	}
	s.tracks = slices.Clone(tracks)
	return s.moveLocked("start", initial)
}

// Next plays the following track. On the last track it returns AtEnd and
// leaves everything untouched.
func (s *Session) Next() (Boundary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkStartedLocked("next"); err != nil {
		return NoBoundary, err
	}
	if s.index == len(s.tracks)-1 {
		s.publishBoundary(AtEnd)
		return AtEnd, nil
	}
	return NoBoundary, s.moveLocked("next", s.index+1)
}

// Previous plays the preceding track. On the first track it returns
// AtStart and leaves everything untouched.
func (s *Session) Previous() (Boundary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkStartedLocked("previous"); err != nil {
		return NoBoundary, err
	}
	if s.index == 0 {
		s.publishBoundary(AtStart)
		return AtStart, nil
	}
	return NoBoundary, s.moveLocked("previous", s.index-1)
}

// Select plays tracks[i].
func (s *Session) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &Error{Op: "select", Err: ErrClosed}
	}
	if i < 0 || i >= len(s.tracks) {
		return opError("select", ErrOutOfRange, "index %d not in [0, %d)", i, len(s.tracks))
	}
	return s.moveLocked("select", i)
}

func (s *Session) checkStartedLocked(op string) error {
	if s.closed {
		return &Error{Op: op, Err: ErrClosed}
	}
	if s.index < 0 {
		return opError(op, ErrInvalidArgument, "session not started")
	}
	return nil
}

func (s *Session) moveLocked(op string, i int) error {
	s.index = i
	track := s.tracks[i]
	logrus.Debugf("Session %s: %d/%d %s", op, i+1, len(s.tracks), track.Locator)

	s.publishTrack(TrackChange{Track: track, Index: i, Total: len(s.tracks)})
	if err := s.transport.Load(track); err != nil {
		logrus.Warnf("Loading %s: %v", track.Locator, err)
		s.publishError(ErrorEvent{Op: errmsg.OpPlaybackStart, Track: track, Err: err})
		return err
	}
	return nil
}

// handleEnd runs on the transport watcher when a stream ends.
func (s *Session) handleEnd(e End) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.transport.Finish(e)
	if !current || s.closed || s.index < 0 {
		return
	}
	if err != nil {
		logrus.Warnf("Playback stopped: %v", err)
		s.publishError(ErrorEvent{Op: errmsg.OpPlaybackPlay, Track: s.tracks[s.index], Err: err})
		return
	}
	if s.index == len(s.tracks)-1 {
		s.publishBoundary(AtEnd)
		return
	}
	_ = s.moveLocked("advance", s.index+1)
}

// TogglePause flips between playing and paused and returns the new state.
func (s *Session) TogglePause() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.TogglePause()
}

// SeekTo moves within the current track.
func (s *Session) SeekTo(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.SeekTo(pos)
}

// Suspend pauses playback when the host surface goes to the background.
func (s *Session) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transport.State() == Playing {
		s.transport.TogglePause()
	}
}

// Index returns the current index, -1 before Start.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Tracks returns a copy of the track list.
func (s *Session) Tracks() []catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tracks)
}

// Current returns the track under the cursor.
func (s *Session) Current() (catalog.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 {
		return catalog.Track{}, false
	}
	return s.tracks[s.index], true
}

// Status is a consistent snapshot of the session.
type Status struct {
	Track    catalog.Track
	Index    int
	Total    int
	State    State
	Position time.Duration
	Duration time.Duration
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Index:    s.index,
		Total:    len(s.tracks),
		State:    s.transport.State(),
		Position: s.transport.Position(),
		Duration: s.transport.Duration(),
	}
	if s.index >= 0 {
		st.Track = s.tracks[s.index]
	}
	return st
}

// Sample reads the transport position for the sync loop.
func (s *Session) Sample() (PositionUpdate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return PositionUpdate{}, false
	}
	return s.transport.Sample()
}

// BroadcastPosition forwards a sync loop sample to subscribers.
func (s *Session) BroadcastPosition(u PositionUpdate) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPosition(u)
	}
}

// Subscribe creates a new event subscription.
func (s *Session) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.subsClosed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Close releases the decoder and closes every subscription.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.transport.Close()
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsClosed = true
	s.subsMu.Unlock()
}

func (s *Session) publishState(e StateChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(e)
	}
}

func (s *Session) publishTrack(e TrackChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *Session) publishBoundary(b Boundary) {
	e := BoundaryEvent{Boundary: b, Message: b.Message()}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendBoundary(e)
	}
}

func (s *Session) publishError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
