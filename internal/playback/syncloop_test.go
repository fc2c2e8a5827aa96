package playback

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/player"
)

type fakeSampler struct {
	mu     sync.Mutex
	update PositionUpdate
	loaded bool
}

func (f *fakeSampler) Sample() (PositionUpdate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.update, f.loaded
}

func (f *fakeSampler) set(u PositionUpdate, loaded bool) {
	f.mu.Lock()
	f.update, f.loaded = u, loaded
	f.mu.Unlock()
}

type recorder struct {
	mu      sync.Mutex
	updates []PositionUpdate
	times   []time.Time
}

func (r *recorder) observe(u PositionUpdate) {
	r.mu.Lock()
	r.updates = append(r.updates, u)
	r.times = append(r.times, time.Now())
	r.mu.Unlock()
}

func (r *recorder) snapshot() []PositionUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PositionUpdate(nil), r.updates...)
}

func TestSyncLoop_TicksEvery100ms(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sampler := &fakeSampler{}
		sampler.set(PositionUpdate{Position: time.Second, Duration: time.Minute, Playing: true}, true)
		rec := &recorder{}
		loop := NewSyncLoop(sampler, rec.observe)

		start := time.Now()
		loop.Start()
		time.Sleep(350 * time.Millisecond)
		synctest.Wait()
		loop.Stop()

		require.Len(t, rec.times, 3)
		for i, at := range rec.times {
			assert.Equal(t, time.Duration(i+1)*SyncInterval, at.Sub(start))
		}
		assert.Equal(t, time.Second, rec.updates[0].Position)
		assert.Equal(t, time.Minute, rec.updates[0].Duration)
	})
}

func TestSyncLoop_NoTickAfterStop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sampler := &fakeSampler{}
		sampler.set(PositionUpdate{Playing: true}, true)
		rec := &recorder{}
		loop := NewSyncLoop(sampler, rec.observe)

		loop.Start()
		time.Sleep(250 * time.Millisecond)
		loop.Stop()
		assert.False(t, loop.Running())
		n := len(rec.snapshot())

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), n)
		assert.Equal(t, 2, n)
	})
}

func TestSyncLoop_StartStopIdempotent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sampler := &fakeSampler{}
		sampler.set(PositionUpdate{Playing: true}, true)
		rec := &recorder{}
		loop := NewSyncLoop(sampler, rec.observe)

		loop.Stop()
		loop.Start()
		loop.Start()
		assert.True(t, loop.Running())
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		loop.Stop()
		loop.Stop()

		assert.Len(t, rec.snapshot(), 1, "a second Start must not add a goroutine")
	})
}

func TestSyncLoop_RotationSurvivesRestart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sampler := &fakeSampler{}
		sampler.set(PositionUpdate{Playing: true}, true)
		rec := &recorder{}
		loop := NewSyncLoop(sampler, rec.observe)

		loop.Start()
		time.Sleep(350 * time.Millisecond)
		loop.Stop()
		assert.Equal(t, 3, loop.Rotation())

		loop.Start()
		time.Sleep(250 * time.Millisecond)
		loop.Stop()

		var rotations []int
		for _, u := range rec.snapshot() {
			rotations = append(rotations, u.Rotation)
		}
		assert.Equal(t, []int{1, 2, 3, 4, 5}, rotations)
	})
}

func TestSyncLoop_RotationZeroWhenNotPlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sampler := &fakeSampler{}
		sampler.set(PositionUpdate{Playing: true}, true)
		rec := &recorder{}
		loop := NewSyncLoop(sampler, rec.observe)
		loop.Start()
		defer loop.Stop()

		time.Sleep(250 * time.Millisecond)
		sampler.set(PositionUpdate{Playing: false}, true)
		time.Sleep(100 * time.Millisecond)
		sampler.set(PositionUpdate{Playing: true}, true)
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		var rotations []int
		for _, u := range rec.snapshot() {
			rotations = append(rotations, u.Rotation)
		}
		assert.Equal(t, []int{1, 2, 0, 3}, rotations)
	})
}

func TestSyncLoop_NothingLoaded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sampler := &fakeSampler{}
		rec := &recorder{}
		loop := NewSyncLoop(sampler, rec.observe)
		loop.Start()

		time.Sleep(350 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())
		assert.True(t, loop.Running(), "an empty sample does not stop the loop")

		sampler.set(PositionUpdate{Position: time.Second}, true)
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 1)
		loop.Stop()
	})
}

func TestSyncLoop_NilSampler(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		loop := NewSyncLoop(nil, rec.observe)
		loop.Start()
		time.Sleep(time.Second)
		loop.Stop()
		assert.Empty(t, rec.snapshot())
	})
}

func TestSyncLoop_WithSession(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tracks := writeTracks(t, 2)
		mock := player.NewMock()
		mock.SetDuration(4*time.Minute + 15*time.Second)
		s := NewSession(NewTransport(mock, player.Resolver{}))
		defer s.Close()
		sub := s.Subscribe()

		loop := NewSyncLoop(s, s.BroadcastPosition)
		loop.Start()
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, sub.PositionChanged, "no tick output before a track is loaded")

		require.NoError(t, s.Start([]catalog.Track{tracks[0], tracks[1]}, 0))
		mock.SetPosition(42 * time.Second)
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		loop.Stop()

		u := <-sub.PositionChanged
		assert.Equal(t, PositionUpdate{
			Position: 42 * time.Second,
			Duration: 4*time.Minute + 15*time.Second,
			Playing:  true,
			Rotation: 1,
		}, u)
	})
}
