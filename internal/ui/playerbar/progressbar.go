package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/localplay/internal/catalog"
	"github.com/llehouerou/localplay/internal/ui/styles"
)

const minBarWidth = 5

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

func ratio(position, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	return min(max(float64(position)/float64(duration), 0), 1)
}

// lineBar renders the thin gradient bar of the compact view.
func lineBar(position, duration time.Duration, width int) string {
	filled := int(float64(width) * ratio(position, duration))
	t := styles.T()
	return styles.GradientBar("━", filled, width, t.Primary, t.Secondary) +
		progressBarEmpty().Render(strings.Repeat("─", width-filled))
}

// RenderProgressBar renders the block bar of the expanded view.
// Format: ◐  01:23  ▓▓▓▓▓░░░░░  04:56
func RenderProgressBar(s State, width int) string {
	icon := Icon(s.Status, s.Rotation)
	posStr := catalog.FormatMMSS(s.Position)
	durStr := catalog.FormatMMSS(s.Duration)

	fixedWidth := lipgloss.Width(icon) + 2 + len(posStr) + 2 + 2 + len(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return icon + "  " + posStr + " / " + durStr
	}

	filled := int(float64(barWidth) * ratio(s.Position, s.Duration))
	bar := progressBarFilled().Render(strings.Repeat(filledBlock, filled)) +
		progressBarEmpty().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return iconStyle(s.Status).Render(icon) + "  " + posStr + "  " + bar + "  " + durStr
}
