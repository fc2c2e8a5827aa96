package playback

import (
	"sync"
	"time"
)

// SyncInterval is the period of the position sync loop.
const SyncInterval = 100 * time.Millisecond

// Sampler reads the current position. ok is false when nothing is loaded.
type Sampler interface {
	Sample() (u PositionUpdate, ok bool)
}

// SyncLoop samples a Sampler every SyncInterval while started and hands
// each sample to the observer. It is meant to run only while the player is
// visible.
//
// The rotation counter advances on every tick that finds the track playing
// and is kept across Stop and Start.
type SyncLoop struct {
	sampler  Sampler
	observe  func(PositionUpdate)
	interval time.Duration

	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	rotation int
}

func NewSyncLoop(sampler Sampler, observe func(PositionUpdate)) *SyncLoop {
	return &SyncLoop{sampler: sampler, observe: observe, interval: SyncInterval}
}

// Start launches the loop. Starting a running loop does nothing.
func (l *SyncLoop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		return
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(l.stop, l.done)
}

// Stop ends the loop and waits for it to exit: no observer call happens
// after Stop returns. Stopping a stopped loop does nothing.
func (l *SyncLoop) Stop() {
	l.mu.Lock()
	stop, done := l.stop, l.done
	l.stop, l.done = nil, nil
	l.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the loop is started.
func (l *SyncLoop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stop != nil
}

// Rotation returns the current rotation counter.
func (l *SyncLoop) Rotation() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rotation
}

func (l *SyncLoop) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			select {
			case <-stop:
				return
			default:
			}
			l.tick()
		}
	}
}

func (l *SyncLoop) tick() {
	if l.sampler == nil {
		return
	}
	u, ok := l.sampler.Sample()
	if !ok {
		return
	}

	l.mu.Lock()
	if u.Playing {
		l.rotation++
		u.Rotation = l.rotation
	} else {
		u.Rotation = 0
	}
	l.mu.Unlock()

	if l.observe != nil {
		l.observe(u)
	}
}
