package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/localplay/internal/playback"
	"github.com/llehouerou/localplay/internal/ui/styles"
)

func barStyle() lipgloss.Style { return styles.T().S().Panel }

func titleStyle() lipgloss.Style        { return styles.T().S().Title }
func artistStyle() lipgloss.Style       { return styles.T().S().Muted }
func metaStyle() lipgloss.Style         { return styles.T().S().Subtle }
func progressTimeStyle() lipgloss.Style { return styles.T().S().Muted }
func progressBarFilled() lipgloss.Style { return styles.T().S().Playing }
func progressBarEmpty() lipgloss.Style  { return styles.T().S().Subtle }

func iconStyle(st playback.State) lipgloss.Style {
	switch st {
	case playback.Failed:
		return styles.T().S().Error
	case playback.Playing:
		return styles.T().S().Playing
	case playback.Idle, playback.Preparing, playback.Paused, playback.Completed:
	}
	return styles.T().S().Muted
}
