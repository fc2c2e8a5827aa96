package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/localplay/internal/assets"
	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/config"
	"github.com/llehouerou/localplay/internal/playback"
	"github.com/llehouerou/localplay/internal/player"
)

func newEngine(t *testing.T, opts Options) (*Engine, *player.Mock) {
	t.Helper()
	mock := player.NewMock()
	opts.Player = mock
	e, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, mock
}

func libraryDir(t *testing.T, names ...string) string {
	t.Helper()
	data, err := fs.ReadFile(assets.FS(), "raw/sample_song.wav")
	require.NoError(t, err)
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	return dir
}

func TestEngine_SamplesOnlyWithoutLibrary(t *testing.T) {
	e, mock := newEngine(t, Options{})

	assert.Nil(t, e.Catalog())
	c := e.LoadCatalog(context.Background())
	assert.True(t, c.OnlySamples())
	assert.Equal(t, catalog.Samples(), c.Tracks())

	require.NoError(t, e.Play(context.Background(), 1))
	assert.Equal(t, []string{"res://raw/sample_song2"}, mock.PlayCalls())
	assert.Equal(t, playback.Playing, e.Session.Status().State)
}

func TestEngine_PlayLoadsCatalogImplicitly(t *testing.T) {
	e, mock := newEngine(t, Options{})

	require.NoError(t, e.Play(context.Background(), 0))
	require.NotNil(t, e.Catalog())
	assert.Equal(t, 0, e.Session.Index())

	require.NoError(t, e.Play(context.Background(), 2))
	assert.Equal(t, 2, e.Session.Index())
	assert.Len(t, mock.PlayCalls(), 2)
}

func TestEngine_PlayOutOfRange(t *testing.T) {
	e, mock := newEngine(t, Options{})

	err := e.Play(context.Background(), 7)
	require.ErrorIs(t, err, playback.ErrInvalidArgument)
	assert.Equal(t, -1, e.Session.Index())

	require.NoError(t, e.Play(context.Background(), 0))
	assert.ErrorIs(t, e.Play(context.Background(), 7), playback.ErrOutOfRange)
	assert.Len(t, mock.PlayCalls(), 1)
}

func TestEngine_ReloadRestartsSession(t *testing.T) {
	dir := t.TempDir()
	var names []string
	provider := catalog.ProviderFunc(func(context.Context) ([]catalog.Track, error) {
		var out []catalog.Track
		for _, n := range names {
			path := filepath.Join(dir, n)
			out = append(out, catalog.Track{Locator: path, Title: n})
		}
		return out, nil
	})
	e, _ := newEngine(t, Options{Provider: provider, Gate: catalog.Allow()})

	require.NoError(t, e.Play(context.Background(), 0))
	assert.Len(t, e.Session.Tracks(), 3)

	names = []string{"new.mp3"}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.mp3"), []byte("x"), 0o600))
	c := e.LoadCatalog(context.Background())
	require.Equal(t, 4, c.Len())

	require.NoError(t, e.Play(context.Background(), 3))
	assert.Len(t, e.Session.Tracks(), 4)
	assert.Equal(t, 3, e.Session.Index())
}

func TestEngine_LibraryFromConfig(t *testing.T) {
	lib := libraryDir(t, "first.wav", "second.wav")
	ask := false
	cfg := &config.Config{
		LibrarySources: []string{lib},
		IndexPath:      filepath.Join(t.TempDir(), "index.db"),
		AskPermission:  &ask,
	}
	e, mock := newEngine(t, Options{Config: cfg})

	c := e.LoadCatalog(context.Background())
	require.NoError(t, c.Err())
	require.Equal(t, 5, c.Len())
	assert.False(t, c.OnlySamples())

	tracks := c.Tracks()
	assert.Equal(t, filepath.Join(lib, "first.wav"), tracks[3].Locator)
	assert.Equal(t, "first", tracks[3].Title)

	require.NoError(t, e.Play(context.Background(), 4))
	assert.Equal(t, []string{filepath.Join(lib, "second.wav")}, mock.PlayCalls())
}

func TestEngine_ConsentPrompt(t *testing.T) {
	lib := libraryDir(t, "only.wav")
	cfg := &config.Config{
		LibrarySources: []string{lib},
		IndexPath:      filepath.Join(t.TempDir(), "index.db"),
	}
	var questions []string
	ask := func(_ context.Context, q string) bool {
		questions = append(questions, q)
		return false
	}
	e, _ := newEngine(t, Options{Config: cfg, Ask: ask})

	c := e.LoadCatalog(context.Background())
	assert.True(t, c.Denied())
	assert.Equal(t, catalog.DeniedMessage, c.Notice())

	e.LoadCatalog(context.Background())
	assert.Len(t, questions, 1, "the user is asked once")
}

func TestEngine_BackgroundForeground(t *testing.T) {
	e, mock := newEngine(t, Options{})
	require.NoError(t, e.Play(context.Background(), 0))
	e.Foreground()
	assert.True(t, e.Sync.Running())

	e.Background()
	assert.False(t, e.Sync.Running())
	assert.Equal(t, playback.Paused, e.Session.Status().State)
	assert.Equal(t, player.Paused, mock.State())

	e.Foreground()
	assert.True(t, e.Sync.Running())
	assert.Equal(t, playback.Paused, e.Session.Status().State, "foreground does not resume playback")
}

func TestEngine_BadIndexPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := New(Options{
		Config: &config.Config{
			LibrarySources: []string{t.TempDir()},
			IndexPath:      filepath.Join(file, "index.db"),
		},
		Player: player.NewMock(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to open media index")
}
