//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/playback"
)

// Adapter exposes a session over MPRIS on the session bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(c Controller) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{c: c}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			logrus.Warnf("MPRIS: %v", err)
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error                { return nil }
func (r *rootAdapter) Quit() error                 { return nil }
func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return identity, nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	c Controller
}

func (p *playerAdapter) Next() error {
	_, err := p.c.Next()
	return err
}

func (p *playerAdapter) Previous() error {
	_, err := p.c.Previous()
	return err
}

func (p *playerAdapter) Pause() error {
	p.c.Suspend()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	st := p.c.Status()
	if st.State == playback.Completed || st.State == playback.Failed {
		return p.replay(st)
	}
	p.c.TogglePause()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.c.Suspend()
	return nil
}

func (p *playerAdapter) Play() error {
	st := p.c.Status()
	switch st.State {
	case playback.Paused:
		p.c.TogglePause()
	case playback.Completed, playback.Failed:
		return p.replay(st)
	case playback.Idle, playback.Preparing, playback.Playing:
	}
	return nil
}

// replay restarts the track under the cursor once it has ended.
func (p *playerAdapter) replay(st playback.Status) error {
	if st.Index < 0 {
		return nil
	}
	return p.c.Select(st.Index)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	pos := p.c.Status().Position + time.Duration(offset)*time.Microsecond
	return p.c.SeekTo(pos)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.c.SeekTo(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.c.Status().State {
	case playback.Playing, playback.Preparing:
		return types.PlaybackStatusPlaying, nil
	case playback.Paused:
		return types.PlaybackStatusPaused, nil
	case playback.Idle, playback.Completed, playback.Failed:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.c.Status()
	if st.Index < 0 {
		return types.Metadata{}, nil
	}
	track := st.Track

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Locator)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.DisplayTitle(),
		Album:   track.Album,
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	if art := catalog.CoverArt(track); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	return p.c.Status().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error) {
	st := p.c.Status()
	return st.Index >= 0 && st.Index < st.Total-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.c.Status().Index > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.c.Status().Total > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error)   { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)    { return true, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func formatTrackID(locator string) string {
	h := fnv.New64a()
	h.Write([]byte(locator))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
