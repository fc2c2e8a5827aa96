package app

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/localplay/internal/engine"
	"github.com/llehouerou/localplay/internal/keymap"
	"github.com/llehouerou/localplay/internal/playback"
	"github.com/llehouerou/localplay/internal/ui/playerbar"
	"github.com/llehouerou/localplay/internal/ui/tracklist"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeList   Mode = iota // track list and playback keys
	ModePrompt             // yes/no permission question
	ModeSeek               // "seek to" time input
	ModeHelp               // key binding overlay
)

// Model is the root application model.
type Model struct {
	ctx     context.Context
	engine  *engine.Engine
	sub     *playback.Subscription
	prompts <-chan PromptRequest

	keys       *keymap.Resolver
	promptKeys *keymap.Resolver

	Mode        Mode
	List        tracklist.Model
	DisplayMode playerbar.DisplayMode
	Last        playback.PositionUpdate
	Prompt      *PromptRequest
	SeekInput   textinput.Model

	Hint    string // shown above the list while only samples are available
	Toast   string
	toastID int

	Width  int
	Height int
}

// New creates the model. prompts is the channel of the asker given to the
// engine, nil when no prompt can happen.
func New(ctx context.Context, e *engine.Engine, prompts <-chan PromptRequest) Model {
	ti := textinput.New()
	ti.Placeholder = "m:ss"
	ti.Prompt = "Seek to: "
	ti.CharLimit = 16
	ti.Width = 12

	return Model{
		ctx:        ctx,
		engine:     e,
		sub:        e.Session.Subscribe(),
		prompts:    prompts,
		keys:       keymap.ForContexts("global", "playback", "list"),
		promptKeys: keymap.ForContexts("prompt"),
		List:       tracklist.New(),
		SeekInput:  ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.engine.Foreground()
	return tea.Batch(
		LoadCatalogCmd(m.ctx, m.engine),
		WatchSession(m.sub),
		WatchPrompts(m.prompts),
	)
}
