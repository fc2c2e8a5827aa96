package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/localplay/internal/keymap"
	"github.com/llehouerou/localplay/internal/ui/playerbar"
	"github.com/llehouerou/localplay/internal/ui/render"
	"github.com/llehouerou/localplay/internal/ui/styles"
)

const (
	appTitle     = "localplay"
	headerHeight = 1
)

var helpContexts = []string{"global", "playback", "list"}

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	switch m.Mode {
	case ModePrompt:
		return m.overlay(m.promptView())
	case ModeHelp:
		return m.overlay(m.helpView())
	case ModeList, ModeSeek:
	}

	parts := []string{m.headerView(), m.List.View()}
	if m.Mode == ModeSeek {
		parts = append(parts, styles.T().S().Toast.Render(m.SeekInput.View()))
	} else if m.Toast != "" {
		parts = append(parts, m.toastView())
	}
	st := playerbar.NewState(m.engine.Session.Status(), m.Last, m.DisplayMode)
	if bar := playerbar.Render(st, m.Width); bar != "" {
		parts = append(parts, bar)
	}
	return strings.Join(parts, "\n")
}

func (m Model) headerView() string {
	t := styles.T()
	title := styles.ApplyGradient(appTitle, t.Primary, t.Secondary)
	if m.Hint == "" {
		return title
	}
	hint := t.S().Muted.Render(render.Truncate(m.Hint, m.Width-len(appTitle)-2))
	return title + "  " + hint
}

func (m Model) toastView() string {
	inner := max(m.Width-4, 1)
	return styles.T().S().Toast.Render(render.Truncate(render.Sanitize(m.Toast), inner))
}

func (m Model) promptView() string {
	s := styles.T().S()
	question := ""
	if m.Prompt != nil {
		question = m.Prompt.Question
	}
	width := min(max(lipgloss.Width(question), 30), max(m.Width-6, 10))
	body := lipgloss.NewStyle().Width(width).Render(question)
	keys := m.promptKeys.KeysFor(keymap.ActionConfirm)[0] + "/" +
		m.promptKeys.KeysFor(keymap.ActionDecline)[0]
	return s.Panel.Padding(0, 1).Render(body + "\n\n" + s.Muted.Render("["+keys+"]"))
}

func (m Model) helpView() string {
	s := styles.T().S()
	var lines []string
	for _, ctx := range helpContexts {
		lines = append(lines, s.Title.Render(ctx))
		for _, b := range keymap.ByContext(ctx) {
			labels := make([]string, len(b.Keys))
			for i, k := range b.Keys {
				labels[i] = keyLabel(k)
			}
			keys := strings.Join(labels, ", ")
			lines = append(lines, "  "+s.Playing.Render(render.Pad(keys, 14))+s.Base.Render(b.Description))
		}
		lines = append(lines, "")
	}
	lines = append(lines, s.Muted.Render("press any key to close"))
	return s.Panel.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func keyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
