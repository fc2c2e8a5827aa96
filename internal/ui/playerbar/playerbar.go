// Package playerbar renders the now-playing bar under the track list.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/playback"
	"github.com/llehouerou/localplay/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Title, metadata and a block progress bar
)

// State holds everything needed to render the player bar.
type State struct {
	Title       string
	Artist      string
	Album       string
	Index       int // 0-based position in the list
	Total       int
	Status      playback.State
	Position    time.Duration
	Duration    time.Duration
	Rotation    int
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 5 // 3 content rows + 2 border rows
	}
	return 3 // top border + content + bottom border
}

// NewState builds a State from a session snapshot and the latest sync
// loop sample. The sample wins for position and duration.
func NewState(st playback.Status, u playback.PositionUpdate, mode DisplayMode) State {
	s := State{
		Title:       st.Track.DisplayTitle(),
		Artist:      st.Track.Artist,
		Album:       st.Track.Album,
		Index:       st.Index,
		Total:       st.Total,
		Status:      st.State,
		Position:    st.Position,
		Duration:    st.Duration,
		Rotation:    u.Rotation,
		DisplayMode: mode,
	}
	if u.Duration > 0 {
		s.Position, s.Duration = u.Position, u.Duration
	}
	if s.Duration == 0 {
		s.Duration = st.Track.Duration
	}
	return s
}

// Render returns the player bar for the given width, or "" when nothing
// was ever loaded.
func Render(s State, width int) string {
	if s.Status == playback.Idle || s.Index < 0 {
		return ""
	}
	if s.DisplayMode == ModeExpanded && width-2 >= minExpandedWidth {
		return renderExpanded(s, width)
	}
	return renderCompact(s, width)
}

const minExpandedWidth = 40

func renderCompact(s State, width int) string {
	innerWidth := max(width-6, 0) // border and padding

	icon := Icon(s.Status, s.Rotation)
	timeStr := timeText(s)
	position := fmt.Sprintf("%d/%d", s.Index+1, s.Total)

	fixed := lipgloss.Width(icon) + 2 + len(timeStr) + len(position) + len(separator)*3
	available := innerWidth - fixed - minBarWidth
	if available < minTitleWidth {
		row := render.Row(iconStyle(s.Status).Render(icon), progressTimeStyle().Render(timeStr), innerWidth)
		return barStyle().Padding(0, 2).Width(width - 2).Render(row)
	}

	content := titleContent(render.Sanitize(s.Title), render.Sanitize(infoLine(s)), available)
	barWidth := max(innerWidth-lipgloss.Width(content)-fixed, minBarWidth)

	// Title   Artist · Album   2/5   ◐  ━━━───   01:23 / 03:58
	var b strings.Builder
	b.WriteString(content)
	b.WriteString(separator)
	b.WriteString(metaStyle().Render(position))
	b.WriteString(separator)
	b.WriteString(iconStyle(s.Status).Render(icon))
	b.WriteString("  ")
	b.WriteString(lineBar(s.Position, s.Duration, barWidth))
	b.WriteString(separator)
	b.WriteString(progressTimeStyle().Render(timeStr))

	return barStyle().Padding(0, 2).Width(width - 2).Render(b.String())
}

const (
	separator     = "   "
	minTitleWidth = 10
)

func titleContent(title, info string, available int) string {
	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)
	sepWidth := len(separator)

	switch {
	case info != "" && titleWidth+sepWidth+infoWidth <= available:
		return titleStyle().Render(title) + separator + artistStyle().Render(info)
	case info != "" && titleWidth+sepWidth < available:
		return titleStyle().Render(title) + separator +
			artistStyle().Render(render.Truncate(info, available-titleWidth-sepWidth))
	default:
		return titleStyle().Render(render.Truncate(title, available))
	}
}

func renderExpanded(s State, width int) string {
	innerWidth := max(width-6, 0)

	header := render.Row(
		titleStyle().Render(render.Truncate(s.Title, innerWidth-12)),
		metaStyle().Render(fmt.Sprintf("%d/%d", s.Index+1, s.Total)),
		innerWidth,
	)
	info := infoLine(s)
	if info == "" {
		info = "Unknown Artist"
	}
	lines := []string{
		header,
		artistStyle().Render(render.Truncate(info, innerWidth)),
		RenderProgressBar(s, innerWidth),
	}
	return barStyle().Padding(0, 2).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func infoLine(s State) string {
	var parts []string
	if s.Artist != "" {
		parts = append(parts, s.Artist)
	}
	if s.Album != "" {
		parts = append(parts, s.Album)
	}
	return strings.Join(parts, " · ")
}

func timeText(s State) string {
	return catalog.FormatMMSS(s.Position) + " / " + catalog.FormatMMSS(s.Duration)
}
