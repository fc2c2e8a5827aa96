package player

import (
	"sync"
	"time"
)

// Mock is a test double for Player. It decodes nothing: Play only records the
// locator and marks the stream live until Stop or the next Play.
type Mock struct {
	mu        sync.Mutex
	state     State
	live      bool
	position  time.Duration
	duration  time.Duration
	durations map[string]time.Duration
	current   string
	playErr   error
	playCalls []string
	seekCalls []time.Duration
	stopCalls int
	overlaps  int
	finished  chan error
}

func NewMock() *Mock {
	return &Mock{state: Stopped, durations: make(map[string]time.Duration)}
}

func (m *Mock) Play(src Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, src.Locator)
	if m.live {
		m.overlaps++
	}
	if m.playErr != nil {
		return m.playErr
	}
	m.live = true
	m.current = src.Locator
	m.position = 0
	m.state = Playing
	m.finished = make(chan error, 1)
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	m.live = false
	m.current = ""
	m.position = 0
	m.state = Stopped
	m.finished = nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live {
		return 0
	}
	if d, ok := m.durations[m.current]; ok {
		return d
	}
	return m.duration
}

func (m *Mock) SeekTo(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
	return nil
}

func (m *Mock) Finished() <-chan error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finished
}

// Test helpers

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	m.playErr = err
	m.mu.Unlock()
}

// SetDuration sets the length reported for any loaded stream.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// SetDurationFor sets the length reported while locator is loaded.
func (m *Mock) SetDurationFor(locator string, d time.Duration) {
	m.mu.Lock()
	m.durations[locator] = d
	m.mu.Unlock()
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	m.position = d
	m.mu.Unlock()
}

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// Overlaps counts Play calls made while a previous stream was still live.
func (m *Mock) Overlaps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlaps
}

// SimulateFinished simulates the loaded stream playing out.
func (m *Mock) SimulateFinished() {
	m.signal(nil)
}

// SimulateError simulates a decoder failure mid-stream.
func (m *Mock) SimulateError(err error) {
	m.signal(err)
}

func (m *Mock) signal(err error) {
	m.mu.Lock()
	ch := m.finished
	m.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}
