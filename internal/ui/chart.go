package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Partial blocks for sub-character horizontal resolution (1/8 to 7/8).
var partialBlocks = [8]rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// RenderBars draws one horizontal bar per value, scaled so the largest magnitude
// fills width cells. Positive values use pos, negative values use neg.
func RenderBars(labels []string, values []float64, width int, pos, neg lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, lipgloss.Width(l))
	}

	maxAbs := 0.0
	for _, v := range values {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	rows := make([]string, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		color := pos
		if v < 0 {
			color = neg
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(barString(v, maxAbs, width))
		rows[i] = fmt.Sprintf("%-*s %s", labelW, label, bar)
	}
	return strings.Join(rows, "\n")
}

// barString returns |v|/maxAbs of width cells in eighth-cell steps.
func barString(v, maxAbs float64, width int) string {
	if maxAbs == 0 {
		return ""
	}
	eighths := int(math.Round(math.Abs(v) / maxAbs * float64(width*8)))
	full, rem := eighths/8, eighths%8

	var sb strings.Builder
	sb.WriteString(strings.Repeat("█", full))
	if rem > 0 {
		sb.WriteRune(partialBlocks[rem])
	}
	return sb.String()
}
