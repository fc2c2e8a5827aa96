package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendColors(t *testing.T) {
	colors := blendColors(5, "#000000", "#ffffff")
	require.Len(t, colors, 5)
	assert.Equal(t, "#000000", colorToHex(colors[0]))
	assert.Equal(t, "#ffffff", colorToHex(colors[4]))

	assert.Len(t, blendColors(1, "#a78bfa", "#f1a208"), 1)
	assert.Equal(t, "#808080", colorToHex(blendColors(1, "240", "#ffffff")[0]), "ANSI colors fall back to gray")
}

func TestGradientBar(t *testing.T) {
	assert.Empty(t, GradientBar("━", 0, 10, T().Primary, T().Secondary))
	assert.Equal(t, 4, lipgloss.Width(GradientBar("━", 4, 10, T().Primary, T().Secondary)))
	assert.Equal(t, 10, lipgloss.Width(GradientBar("━", 15, 10, T().Primary, T().Secondary)))
}

func TestApplyGradient(t *testing.T) {
	assert.Empty(t, ApplyGradient("", T().Primary, T().Secondary))
	assert.Equal(t, 9, lipgloss.Width(ApplyGradient("localplay", T().Primary, T().Secondary)))
}
