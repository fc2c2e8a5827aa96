package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyGradient renders bold text with a horizontal color gradient, one
// color per grapheme cluster.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return paint(clusters, blendColors(len(clusters), from, to))
}

// GradientBar renders the first filled cells of a width-cell bar. The
// colors are spread over the whole width so the bar does not re-tint as it
// grows.
func GradientBar(cell string, filled, width int, from, to lipgloss.Color) string {
	filled = min(max(filled, 0), width)
	if filled == 0 {
		return ""
	}
	cells := make([]string, filled)
	for i := range cells {
		cells[i] = cell
	}
	return paint(cells, blendColors(width, from, to)[:filled])
}

func paint(clusters []string, colors []color.Color) string {
	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorToHex(colors[i])))
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// blendColors returns size colors blended between from and to in HCL
// space.
func blendColors(size int, from, to lipgloss.Color) []color.Color {
	c1, _ := colorful.MakeColor(lipglossToColor(from))
	if size < 2 {
		return []color.Color{c1}
	}
	c2, _ := colorful.MakeColor(lipglossToColor(to))

	colors := make([]color.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		colors[i] = c1.BlendHcl(c2, t).Clamped()
	}
	return colors
}

func lipglossToColor(c lipgloss.Color) color.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	// ANSI palette indexes have no RGB value here
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

func colorToHex(c color.Color) string {
	if cf, ok := c.(colorful.Color); ok {
		return cf.Hex()
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
