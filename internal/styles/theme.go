// Package styles holds the terminal theme used for command output.
package styles

import (
	"image/color"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme is a named color palette.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	once   sync.Once
	styles *Styles
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Base     lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Selected lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
}

// S returns the theme's styles, building them on first use.
func (t *Theme) S() *Styles {
	t.once.Do(func() {
		t.styles = &Styles{
			Base:     lipgloss.NewStyle().Foreground(t.FgBase),
			Title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
			Selected: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
			Info:     lipgloss.NewStyle().Foreground(t.Info),
			Success:  lipgloss.NewStyle().Foreground(t.Success),
			Warning:  lipgloss.NewStyle().Foreground(t.Warning),
			Error:    lipgloss.NewStyle().Foreground(t.Error),
			Panel: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(t.Border).
				Padding(0, 1),
			Focused: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(t.BorderFocus).
				Padding(0, 1),
		}
	})
	return t.styles
}

var (
	mu      sync.RWMutex
	current = NewDefaultTheme()
)

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetTheme replaces the active theme.
func SetTheme(t *Theme) {
	if t == nil {
		return
	}
	mu.Lock()
	current = t
	mu.Unlock()
}

// ParseHex parses a "#rrggbb" color. Invalid input yields black.
func ParseHex(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// ApplyForegroundGrad colors text with a horizontal gradient from one color
// to another, blended in Lab space. Each line restarts the gradient.
func ApplyForegroundGrad(text string, from, to color.Color) string {
	a, okA := colorful.MakeColor(from)
	b, okB := colorful.MakeColor(to)
	if !okA || !okB {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) == 0 {
			continue
		}
		var sb strings.Builder
		for j, r := range runes {
			t := 0.0
			if len(runes) > 1 {
				t = float64(j) / float64(len(runes)-1)
			}
			c := a.BlendLab(b, t).Clamped()
			sb.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}
