package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// The speaker is process-wide and initialized on the first Play with the
// sample rate of that track. Later tracks are resampled to it.
var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if !speakerInitialized {
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			return 0, err
		}
		speakerSampleRate = rate
		speakerInitialized = true
	}
	return speakerSampleRate, nil
}

// Player plays one source at a time through the system speaker.
type Player struct {
	mu       sync.Mutex
	state    State
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	finished chan error
}

func New() *Player {
	return &Player{state: Stopped}
}

// Play releases the current stream, decodes src and starts it.
func (p *Player) Play(src Source) error {
	p.Stop()

	rc, err := src.Open()
	if err != nil {
		return err
	}
	streamer, format, err := decode(rc, src.Format)
	if err != nil {
		return err
	}

	outRate, err := initSpeaker(format.SampleRate)
	if err != nil {
		streamer.Close()
		return err
	}

	var out beep.Streamer = streamer
	if format.SampleRate != outRate {
		out = beep.Resample(4, format.SampleRate, outRate, streamer)
	}

	finished := make(chan error, 1)
	ctrl := &beep.Ctrl{Streamer: out}
	volume := &effects.Volume{Streamer: ctrl, Base: 2}

	p.mu.Lock()
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.volume = volume
	p.finished = finished
	p.state = Playing
	p.mu.Unlock()

	speaker.Play(beep.Seq(volume, beep.Callback(func() {
		select {
		case finished <- streamer.Err():
		default:
		}
	})))
	return nil
}

// Stop halts playback and closes the stream. The pending Finished channel
// never fires afterwards.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Stopped {
		return
	}

	speaker.Clear()
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.finished = nil
	p.state = Stopped
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Paused {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// SeekTo moves to an absolute position, clamped to the stream length.
// Output is muted briefly around the jump to avoid a click.
func (p *Player) SeekTo(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	target := min(max(p.format.SampleRate.N(pos), 0), p.streamer.Len())

	speaker.Lock()
	p.volume.Silent = true
	err := p.streamer.Seek(target)
	speaker.Unlock()

	volume := p.volume
	time.AfterFunc(50*time.Millisecond, func() {
		speaker.Lock()
		volume.Silent = false
		speaker.Unlock()
	})
	return err
}

func (p *Player) Finished() <-chan error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}
