package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/timeline"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% in the band's color.
// pct is a whole percentage and is clamped to [0, 100].
func RenderProgress(pct int, width int, band timeline.Band) string {
	pct = max(0, min(100, pct))
	if width < 2 {
		width = 2
	}

	filled := min(pct*width/100, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d%%", BandStyle(band).Render(bar), pct)
}

// RenderStatusProgress renders the progress bar for a computed timeline status.
func RenderStatusProgress(st timeline.Status, width int) string {
	return RenderProgress(st.ProgressPct, width, timeline.Classify(st))
}
