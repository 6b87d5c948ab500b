package styles

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, ok := colorful.MakeColor(ParseHex("#4fb3bf"))
	require.True(t, ok)
	assert.Equal(t, "#4fb3bf", c.Hex())

	black, ok := colorful.MakeColor(ParseHex("not-a-color"))
	require.True(t, ok)
	assert.Equal(t, "#000000", black.Hex())
}

func TestApplyForegroundGradKeepsText(t *testing.T) {
	th := NewDefaultTheme()
	out := ApplyForegroundGrad("ab\n\ncd", th.Primary, th.Secondary)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 2, lipgloss.Width(lines[0]))
	assert.Empty(t, lines[1])
	assert.Equal(t, 2, lipgloss.Width(lines[2]))
}

func TestCurrentTheme(t *testing.T) {
	original := CurrentTheme()
	t.Cleanup(func() { SetTheme(original) })

	custom := NewDefaultTheme()
	custom.Name = "custom"
	SetTheme(custom)
	assert.Equal(t, "custom", CurrentTheme().Name)

	SetTheme(nil)
	assert.Equal(t, "custom", CurrentTheme().Name)

	s := CurrentTheme().S()
	assert.Same(t, s, CurrentTheme().S())
}
