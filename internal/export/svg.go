package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/trace"
)

const (
	barColor    = "#00a8cc"
	activeColor = "#ffd700"
	background  = "#0a0a0a"
)

// StepToSVG draws a Step as a bar chart. Each unit of value is scale pixels
// tall and each bar 2*scale wide; highlighted bars use the accent color.
func StepToSVG(step trace.Step, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	values := step.Values()
	barWidth := scale * 2
	gap := scale / 2
	top := values.Max()
	if top < 1 {
		top = 1
	}

	width := float64(len(values))*(barWidth+gap) + gap
	height := float64(top)*scale + gap*2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for i, v := range values {
		if v <= 0 {
			continue
		}
		fill := barColor
		if step.Active(i) {
			fill = activeColor
		}
		x := gap + float64(i)*(barWidth+gap)
		h := float64(v) * scale
		y := height - gap - h
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, barWidth, h, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// InversionsToSVG plots the inversion count of each step as a line.
func InversionsToSVG(steps []trace.Step, width, height int, strokeColor string) string {
	if len(steps) < 2 {
		return ""
	}

	counts := make([]float64, len(steps))
	maxY := 1.0
	for i, s := range steps {
		counts[i] = float64(s.Values().Inversions())
		if counts[i] > maxY {
			maxY = counts[i]
		}
	}
	maxX := float64(len(steps) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, c := range counts {
		x := float64(i) / maxX * float64(width)
		y := float64(height) - c/maxY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
