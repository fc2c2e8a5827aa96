package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/errmsg"
	"github.com/llehouerou/localplay/internal/keymap"
	"github.com/llehouerou/localplay/internal/playback"
	"github.com/llehouerou/localplay/internal/ui"
	"github.com/llehouerou/localplay/internal/ui/playerbar"
)

const seekStep = 5 * time.Second

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.FocusMsg:
		m.engine.Foreground()
		return m, nil

	case tea.BlurMsg:
		m.engine.Background()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CatalogLoadedMsg:
		return m.handleCatalog(msg.Catalog)

	case PromptMsg:
		req := PromptRequest(msg)
		m.Prompt = &req
		m.Mode = ModePrompt
		return m, nil

	case PlayResultMsg:
		if msg.Err != nil && (errors.Is(msg.Err, playback.ErrInvalidArgument) || errors.Is(msg.Err, playback.ErrOutOfRange)) {
			return m.showToast(errmsg.Format(errmsg.OpPlaybackStart, msg.Err))
		}
		return m, nil

	case ToastExpiredMsg:
		if msg.ID == m.toastID {
			m.Toast = ""
			m.layout()
		}
		return m, nil

	case SessionClosedMsg:
		return m, nil
	}

	return m.handleSessionEvent(msg)
}

func (m Model) handleSessionEvent(msg tea.Msg) (tea.Model, tea.Cmd) {
	watch := WatchSession(m.sub)
	switch msg := msg.(type) {
	case StateChangedMsg:
		logrus.Debugf("State %s -> %s", msg.Previous, msg.Current)
		return m, watch
	case TrackChangedMsg:
		previous := m.List.Playing()
		m.List.SetPlaying(msg.Index)
		m.List.Follow(previous, msg.Index)
		return m, watch
	case PositionMsg:
		m.Last = playback.PositionUpdate(msg)
		return m, watch
	case BoundaryMsg:
		var cmd tea.Cmd
		m, cmd = m.showToast(msg.Message)
		return m, tea.Batch(cmd, watch)
	case ErrorMsg:
		logrus.Warnf("Playback error: %v", msg.Err)
		var cmd tea.Cmd
		m, cmd = m.showToast(playback.ErrorEvent(msg).Message())
		return m, tea.Batch(cmd, watch)
	}
	return m, nil
}

func (m Model) handleCatalog(c *catalog.Catalog) (tea.Model, tea.Cmd) {
	m.List.SetTracks(c.Tracks())
	// The session keeps its old list until the next Play; mark the playing
	// row only while both lists agree on it.
	if st := m.engine.Session.Status(); st.Index >= 0 && st.Index < c.Len() &&
		c.Tracks()[st.Index].Locator == st.Track.Locator {
		m.List.SetPlaying(st.Index)
	}
	m.Hint = ""
	if c.OnlySamples() {
		m.Hint = catalog.NoSongsMessage
	}
	m.layout()
	if n := c.Notice(); n != "" {
		return m.showToast(n)
	}
	return m, nil
}

func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toastID++
	m.Toast = text
	m.layout()
	return m, ToastExpiryCmd(m.toastID)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Mode {
	case ModePrompt:
		return m.handlePromptKey(msg)
	case ModeSeek:
		return m.handleSeekKey(msg)
	case ModeHelp:
		m.Mode = ModeList
		return m, nil
	case ModeList:
	}

	action := m.keys.Resolve(msg.String())
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.Mode = ModeHelp
		return m, nil
	case keymap.ActionRescan:
		return m, LoadCatalogCmd(m.ctx, m.engine)
	case keymap.ActionTogglePlayerDisplay:
		if m.DisplayMode == playerbar.ModeCompact {
			m.DisplayMode = playerbar.ModeExpanded
		} else {
			m.DisplayMode = playerbar.ModeCompact
		}
		m.layout()
		return m, nil
	case keymap.ActionSeekTo:
		if !m.engine.Session.Status().State.IsActive() {
			return m, nil
		}
		m.Mode = ModeSeek
		m.SeekInput.SetValue("")
		return m, m.SeekInput.Focus()
	}

	if m.handlePlaybackAction(action) {
		return m, nil
	}
	if i, ok := m.List.Handle(action); ok {
		return m, PlayCmd(m.ctx, m.engine, i)
	}
	if action == keymap.ActionPlayPause && m.List.Len() > 0 {
		return m, PlayCmd(m.ctx, m.engine, m.List.Cursor())
	}
	return m, nil
}

// handlePlaybackAction runs transport actions on a started session. It
// reports false when the action is not one, or nothing was ever played.
func (m Model) handlePlaybackAction(action keymap.Action) bool {
	s := m.engine.Session
	if s.Index() < 0 {
		return false
	}
	switch action {
	case keymap.ActionPlayPause:
		st := s.Status()
		if st.State == playback.Completed || st.State == playback.Failed {
			return false
		}
		s.TogglePause()
	case keymap.ActionNextTrack:
		_, _ = s.Next()
	case keymap.ActionPrevTrack:
		_, _ = s.Previous()
	case keymap.ActionSeekForward:
		_ = s.SeekTo(s.Status().Position + seekStep)
	case keymap.ActionSeekBack:
		_ = s.SeekTo(s.Status().Position - seekStep)
	default:
		return false
	}
	return true
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var yes bool
	switch m.promptKeys.Resolve(msg.String()) {
	case keymap.ActionConfirm:
		yes = true
	case keymap.ActionDecline:
	default:
		return m, nil
	}
	if m.Prompt != nil {
		m.Prompt.Answer(yes)
	}
	m.Prompt = nil
	m.Mode = ModeList
	return m, WatchPrompts(m.prompts)
}

func (m Model) handleSeekKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Mode = ModeList
		m.SeekInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.Mode = ModeList
		m.SeekInput.Blur()
		pos, err := catalog.ParseDuration(m.SeekInput.Value())
		if err != nil {
			return m.showToast(errmsg.Format(errmsg.OpPlaybackSeek, err))
		}
		if err := m.engine.Session.SeekTo(pos); err != nil {
			return m.showToast(errmsg.Format(errmsg.OpPlaybackSeek, err))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.SeekInput, cmd = m.SeekInput.Update(msg)
	return m, cmd
}

// layout gives the list whatever the header, toast and player bar leave.
func (m *Model) layout() {
	used := headerHeight + playerbar.Height(m.DisplayMode)
	if m.Toast != "" {
		used += ui.ToastHeight
	}
	m.List.SetSize(m.Width, max(m.Height-used, ui.PanelOverhead))
}
