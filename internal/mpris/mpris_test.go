//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/playback"
	"github.com/llehouerou/localplay/internal/player"
)

func newAdapter(t *testing.T) (*playerAdapter, *playback.Session, *player.Mock, []catalog.Track) {
	t.Helper()
	dir := t.TempDir()
	var tracks []catalog.Track
	for _, name := range []string{"one", "two", "three"} {
		path := filepath.Join(dir, name+".flac")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		tracks = append(tracks, catalog.Track{
			Locator:  path,
			Title:    name,
			Artist:   "Band",
			Album:    "Record",
			Duration: 3 * time.Minute,
		})
	}
	mock := player.NewMock()
	mock.SetDuration(3 * time.Minute)
	s := playback.NewSession(playback.NewTransport(mock, player.Resolver{}))
	t.Cleanup(s.Close)
	return &playerAdapter{c: s}, s, mock, tracks
}

func TestPlayerAdapter_BeforeStart(t *testing.T) {
	p, _, _, _ := newAdapter(t)

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, types.Metadata{}, meta)

	status, _ := p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusStopped, status)
	canPlay, _ := p.CanPlay()
	assert.False(t, canPlay)
	canNext, _ := p.CanGoNext()
	assert.False(t, canNext)
	assert.Error(t, p.Next())
	assert.NoError(t, p.Play())
}

func TestPlayerAdapter_Transport(t *testing.T) {
	p, s, _, tracks := newAdapter(t)
	require.NoError(t, s.Start(tracks, 0))

	status, _ := p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	require.NoError(t, p.PlayPause())
	status, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPaused, status)

	require.NoError(t, p.Pause())
	assert.Equal(t, playback.Paused, s.Status().State, "pause while paused keeps it paused")

	require.NoError(t, p.Play())
	assert.Equal(t, playback.Playing, s.Status().State)
	require.NoError(t, p.Stop())
	assert.Equal(t, playback.Paused, s.Status().State)
}

func TestPlayerAdapter_Navigation(t *testing.T) {
	p, s, _, tracks := newAdapter(t)
	require.NoError(t, s.Start(tracks, 0))

	canPrev, _ := p.CanGoPrevious()
	assert.False(t, canPrev)
	require.NoError(t, p.Next())
	require.NoError(t, p.Next())
	assert.Equal(t, 2, s.Index())

	canNext, _ := p.CanGoNext()
	assert.False(t, canNext)
	require.NoError(t, p.Next(), "the boundary is not an error")
	assert.Equal(t, 2, s.Index())

	require.NoError(t, p.Previous())
	assert.Equal(t, 1, s.Index())
}

func TestPlayerAdapter_Seek(t *testing.T) {
	p, s, mock, tracks := newAdapter(t)
	require.NoError(t, s.Start(tracks, 0))

	mock.SetPosition(10 * time.Second)
	require.NoError(t, p.Seek(types.Microseconds(5*time.Second/time.Microsecond)))
	require.NoError(t, p.SetPosition("", types.Microseconds(time.Minute/time.Microsecond)))
	assert.Equal(t, []time.Duration{15 * time.Second, time.Minute}, mock.SeekCalls())

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, time.Minute.Microseconds(), pos)
}

func TestPlayerAdapter_PlayAfterCompletionReplays(t *testing.T) {
	p, s, mock, tracks := newAdapter(t)
	require.NoError(t, s.Start(tracks[2:], 0))
	mock.SimulateFinished()
	require.Eventually(t, func() bool { return s.Status().State == playback.Completed },
		time.Second, 5*time.Millisecond)

	require.NoError(t, p.Play())
	assert.Equal(t, playback.Playing, s.Status().State)
	assert.Len(t, mock.PlayCalls(), 2)
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	p, s, _, tracks := newAdapter(t)
	require.NoError(t, s.Start(tracks, 1))

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "two", meta.Title)
	assert.Equal(t, []string{"Band"}, meta.Artist)
	assert.Equal(t, "Record", meta.Album)
	assert.Equal(t, types.Microseconds((3 * time.Minute).Microseconds()), meta.Length)
	assert.True(t, strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/"))
	assert.Empty(t, meta.ArtUrl)
}

func TestFormatTrackID(t *testing.T) {
	a := formatTrackID("/music/a.mp3")
	assert.Equal(t, a, formatTrackID("/music/a.mp3"))
	assert.NotEqual(t, a, formatTrackID("/music/b.mp3"))
}
