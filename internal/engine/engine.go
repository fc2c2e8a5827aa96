// Package engine assembles the player, the catalog and the playback
// session into the unit both front ends drive.
package engine

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/assets"
	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/config"
	"github.com/llehouerou/localplay/internal/errmsg"
	"github.com/llehouerou/localplay/internal/playback"
	"github.com/llehouerou/localplay/internal/player"
)

// Options selects the collaborators of an Engine. Zero fields fall back to
// the real implementations derived from Config.
type Options struct {
	Config    *config.Config
	Player    player.Interface
	Resources fs.FS
	Provider  catalog.Provider
	// Ask is used for the consent prompt when the config asks for it.
	Ask catalog.Asker
	// Gate overrides the permission gate built from Config and Ask.
	Gate catalog.Gate
}

// Engine owns one session for the lifetime of the process.
type Engine struct {
	Session *playback.Session
	Sync    *playback.SyncLoop

	index    *catalog.Index
	provider catalog.Provider
	gate     catalog.Gate

	mu      sync.Mutex
	catalog *catalog.Catalog
	started bool
}

// New opens the media index and builds the session. Nothing plays until
// Play is called.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	e := &Engine{provider: opts.Provider, gate: opts.Gate}

	if e.provider == nil && len(cfg.LibrarySources) > 0 {
		ix, err := catalog.OpenIndex(cfg.IndexPath)
		if err != nil {
			return nil, errors.New(errmsg.Format(errmsg.OpIndexOpen, err))
		}
		e.index = ix
		e.provider = catalog.IndexProvider{Index: ix, Sources: cfg.LibrarySources, Rescan: true}
	}

	if e.gate == nil {
		var base catalog.Gate = catalog.DirGate{Dirs: cfg.LibrarySources}
		if cfg.ShouldAskPermission() && opts.Ask != nil {
			base = catalog.NewPromptGate(base, opts.Ask)
		}
		e.gate = base
	}

	p := opts.Player
	if p == nil {
		p = player.New()
	}
	res := opts.Resources
	if res == nil {
		res = assets.FS()
	}

	e.Session = playback.NewSession(playback.NewTransport(p, player.Resolver{Resources: res}))
	e.Sync = playback.NewSyncLoop(e.Session, e.Session.BroadcastPosition)
	return e, nil
}

// LoadCatalog reads the track list, asking for library access if needed.
// The next Play starts the session over the new list.
func (e *Engine) LoadCatalog(ctx context.Context) *catalog.Catalog {
	c := catalog.Load(ctx, e.provider, e.gate)

	e.mu.Lock()
	e.catalog = c
	e.started = false
	e.mu.Unlock()

	if n := c.Notice(); n != "" {
		logrus.Infof("Catalog: %s", n)
	}
	return c
}

// Catalog returns the last loaded catalog, nil before LoadCatalog.
func (e *Engine) Catalog() *catalog.Catalog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog
}

// Play plays the catalog track at index i, loading the catalog first when
// it was never loaded.
func (e *Engine) Play(ctx context.Context, i int) error {
	c := e.Catalog()
	if c == nil {
		c = e.LoadCatalog(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		if err := e.Session.Start(c.Tracks(), i); err != nil {
			if errors.Is(err, playback.ErrInvalidArgument) {
				return err
			}
			// The list is installed even when the first load fails.
			e.started = true
			return err
		}
		e.started = true
		return nil
	}
	return e.Session.Select(i)
}

// Background pauses playback and stops the sync loop.
func (e *Engine) Background() {
	e.Sync.Stop()
	e.Session.Suspend()
}

// Foreground restarts the sync loop. Playback stays paused.
func (e *Engine) Foreground() {
	e.Sync.Start()
}

// Close stops everything and releases the decoder and the index.
func (e *Engine) Close() error {
	e.Sync.Stop()
	e.Session.Close()
	if e.index != nil {
		return e.index.Close()
	}
	return nil
}
