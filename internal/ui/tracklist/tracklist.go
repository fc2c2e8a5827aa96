// Package tracklist renders the scrollable catalog list.
package tracklist

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/keymap"
	"github.com/llehouerou/localplay/internal/ui"
	"github.com/llehouerou/localplay/internal/ui/render"
	"github.com/llehouerou/localplay/internal/ui/styles"
)

// Model is the track list. The parent resolves keys to actions and feeds
// them to Handle.
type Model struct {
	ui.Base
	tracks  []catalog.Track
	pos     int // cursor
	offset  int // first visible row
	playing int // index of the session's current track, -1 if none
}

func New() Model {
	return Model{playing: -1}
}

// SetTracks replaces the list and clamps the cursor.
func (m *Model) SetTracks(tracks []catalog.Track) {
	m.tracks = tracks
	m.playing = -1
	m.pos = min(m.pos, max(len(tracks)-1, 0))
	m.ensureVisible()
}

func (m Model) Len() int     { return len(m.tracks) }
func (m Model) Cursor() int  { return m.pos }
func (m Model) Playing() int { return m.playing }
func (m Model) Offset() int  { return m.offset }
func (m Model) rows() int    { return m.ListHeight(ui.PanelOverhead) }
func (m Model) empty() bool  { return len(m.tracks) == 0 }

// SetPlaying marks track i as the current one.
func (m *Model) SetPlaying(i int) {
	m.playing = i
}

// Handle applies a list action. It returns the index to play when the
// action is a selection.
func (m *Model) Handle(a keymap.Action) (play int, ok bool) {
	if m.empty() {
		return -1, false
	}
	half := max(m.rows()/2, 1)
	switch a {
	case keymap.ActionMoveUp:
		m.move(-1)
	case keymap.ActionMoveDown:
		m.move(1)
	case keymap.ActionPageUp:
		m.move(-half)
	case keymap.ActionPageDown:
		m.move(half)
	case keymap.ActionJumpStart:
		m.jump(0)
	case keymap.ActionJumpEnd:
		m.jump(len(m.tracks) - 1)
	case keymap.ActionJumpActive:
		if m.playing >= 0 {
			m.jump(m.playing)
		}
	case keymap.ActionSelect:
		return m.pos, true
	}
	return -1, false
}

// Follow moves the cursor onto the playing track if it was on the
// previous one, so auto-advance drags the cursor along.
func (m *Model) Follow(previous, current int) {
	if m.pos == previous && current >= 0 && current < len(m.tracks) {
		m.jump(current)
	}
}

func (m *Model) move(delta int) {
	m.jump(m.pos + delta)
}

func (m *Model) jump(pos int) {
	m.pos = min(max(pos, 0), len(m.tracks)-1)
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	height := m.rows()
	if height <= 0 || m.empty() {
		m.offset = 0
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)
	if m.pos < m.offset+margin {
		m.offset = m.pos - margin
	}
	if m.pos >= m.offset+height-margin {
		m.offset = m.pos - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.tracks)-height, 0))
}

// View renders the list in a bordered panel of the component size.
func (m Model) View() string {
	width := m.Width()
	inner := max(width-2, 0)
	s := styles.T().S()

	header := render.Row(
		s.Title.Render("Tracks"),
		s.Subtle.Render(humanize.Comma(int64(len(m.tracks)))+" songs"),
		inner,
	)
	lines := []string{header, s.Subtle.Render(render.Separator(inner))}

	end := min(m.offset+m.rows(), len(m.tracks))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.row(i, inner))
	}
	for len(lines) < m.rows()+ui.HeaderHeight {
		lines = append(lines, "")
	}

	return s.Panel.Width(inner).Render(strings.Join(lines, "\n"))
}

func (m Model) row(i, width int) string {
	s := styles.T().S()
	t := m.tracks[i]

	marker := "  " // two cells either way
	if i == m.playing {
		marker = "▶ "
	}
	dur := catalog.FormatMMSS(t.Duration)
	num := fmt.Sprintf("%3d ", i+1)
	artist := ""
	if t.Artist != "" {
		artist = "  " + t.Artist
	}
	textWidth := max(width-2-len(num)-len(dur)-1, 0)
	text := render.Fit(t.DisplayTitle()+artist, textWidth)
	line := marker + num + text + " " + dur

	switch {
	case i == m.pos:
		return s.Cursor.Render(line)
	case i == m.playing:
		return s.Playing.Render(line)
	case catalog.IsSample(t):
		return s.Muted.Render(line)
	}
	return s.Base.Render(line)
}
