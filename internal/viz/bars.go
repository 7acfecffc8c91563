package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/san-kum/sortviz/internal/trace"
)

// renderBars draws values as vertical bars, scale rows per unit, capped at
// maxBarRows. Highlighted indices use the active style; once sorted is set the
// rest use the sorted style.
func renderBars(s styles, values trace.Sequence, highlights []int, scale int, sorted bool) string {
	if len(values) == 0 {
		return s.subtle.Render("(empty)")
	}
	if scale < 1 {
		scale = 1
	}

	top := values.Max() * scale
	rows := top
	if rows > maxBarRows {
		rows = maxBarRows
	}

	heights := make([]int, len(values))
	for i, v := range values {
		heights[i] = barHeight(v*scale, top, rows)
	}

	rest := s.bar
	if sorted {
		rest = s.sorted
	}

	var b strings.Builder
	for row := rows; row >= 1; row-- {
		for i := range values {
			if i > 0 {
				b.WriteString(" ")
			}
			if heights[i] < row {
				b.WriteString("  ")
				continue
			}
			if slices.Contains(highlights, i) {
				b.WriteString(s.active.Render("██"))
			} else {
				b.WriteString(rest.Render("██"))
			}
		}
		b.WriteString("\n")
	}

	for i, v := range values {
		if i > 0 {
			b.WriteString(" ")
		}
		label := fmt.Sprintf("%2d", v)
		if slices.Contains(highlights, i) {
			b.WriteString(s.active.Render(label))
		} else {
			b.WriteString(s.label.Render(label))
		}
	}
	return b.String()
}

func barHeight(v, top, rows int) int {
	if top <= 0 || v <= 0 {
		return 0
	}
	if top <= rows {
		return v
	}
	return (v*rows + top - 1) / top
}
