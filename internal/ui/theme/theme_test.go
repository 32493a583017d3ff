package theme

import (
	"testing"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqtrack/internal/links"
)

func TestUseSwapsPalette(t *testing.T) {
	t.Cleanup(func() { Use(Dark) })

	Use(For(false))
	if Text != Light.Text || Selected.GetForeground() != Light.Primary {
		t.Error("light palette not applied")
	}
	Use(For(true))
	if Text != Dark.Text || ButtonInactive.GetBackground() != Dark.Surface {
		t.Error("dark palette not applied")
	}
}

func TestLinkColor(t *testing.T) {
	if LinkColor("#EF4444") != lipgloss.Color("#EF4444") {
		t.Error("valid hex changed")
	}
	if LinkColor("red") != lipgloss.Color(links.DefaultColor) {
		t.Error("malformed hex should fall back")
	}
}
