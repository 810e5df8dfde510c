package formatter

import "strings"

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders value as a horizontal bar scaled against max. Values at
// or below zero render as an empty track.
func RenderBar(value, max float64, width int, style BarStyle) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if max > 0 && value > 0 {
		pct = value / max
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct*float64(width) + 0.5)
	if value > 0 && filled == 0 {
		filled = 1
	}
	empty := width - filled
	return style.render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, empty))
}

// BarStyle picks the fill color of a bar.
type BarStyle int

const (
	BarDuration BarStyle = iota
	BarInterval
)

func (s BarStyle) render(text string) string {
	if s == BarInterval {
		return StyleBlue.Render(text)
	}
	return StylePurple.Render(text)
}
