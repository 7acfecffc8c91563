package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are the theme-dependent renderers used by the view.
type styles struct {
	panel   lipgloss.Style
	title   lipgloss.Style
	bar     lipgloss.Style
	active  lipgloss.Style
	sorted  lipgloss.Style
	label   lipgloss.Style
	cursor  lipgloss.Style
	item    lipgloss.Style
	desc    lipgloss.Style
	running lipgloss.Style
	done    lipgloss.Style
	warn    lipgloss.Style
	errText lipgloss.Style
	key     lipgloss.Style
	hint    lipgloss.Style
	graph   lipgloss.Style
	subtle  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Frame).
			Padding(0, 2),
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		bar:     lipgloss.NewStyle().Foreground(t.Bar),
		active:  lipgloss.NewStyle().Bold(true).Foreground(t.Active),
		sorted:  lipgloss.NewStyle().Foreground(t.Sorted),
		label:   lipgloss.NewStyle().Foreground(t.Label),
		cursor:  lipgloss.NewStyle().Bold(true).Foreground(t.Active),
		item:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		desc:    lipgloss.NewStyle().Foreground(t.Muted),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		done:    lipgloss.NewStyle().Foreground(t.Sorted),
		warn:    lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		errText: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		key:     lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		hint:    lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		graph:   lipgloss.NewStyle().Foreground(t.Bar),
		subtle:  lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// keyHints renders "key action" pairs on one line.
func (s styles) keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.hint.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// progressBar renders a bar filled to percent in [0, 1].
func (s styles) progressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent >= 1 {
		return s.done.Render(bar)
	}
	return s.bar.Render(bar)
}

// Decorative separator
func (s styles) separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}

// GradientText colors each rune of text along a gradient from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(start))
	er, eg, eb := parseHex(string(end))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
