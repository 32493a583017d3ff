package settings

// Spacing is the card padding and the gap between questions, in 4px units.
type Spacing struct {
	Padding int
	Gap     int
}

var (
	compactSpacing = [...]Spacing{{2, 2}, {4, 4}, {6, 6}, {8, 8}, {10, 10}}
	roomySpacing   = [...]Spacing{{4, 5}, {8, 10}, {12, 16}, {16, 20}, {20, 24}}
)

// SpacingFor returns the spacing for a padding level. Unknown levels use
// level 2.
func SpacingFor(level int, compact bool) Spacing {
	if level < MinPadding || level > MaxPadding {
		level = 2
	}
	if compact {
		return compactSpacing[level-1]
	}
	return roomySpacing[level-1]
}

// Pixels converts spacing units to pixels.
func (sp Spacing) Pixels() (padding, gap float64) {
	return float64(sp.Padding * 4), float64(sp.Gap * 4)
}

// Cells converts spacing units to terminal cells. A cell is treated as
// roughly 8px wide and 16px tall.
func (sp Spacing) Cells() (padX, padY, gap int) {
	return sp.Padding * 4 / 8, sp.Padding * 4 / 16, sp.Gap * 4 / 16
}

// CardColumns maps the card width in pixels to terminal columns.
func (s Settings) CardColumns() int {
	return s.CardWidth / 10
}
