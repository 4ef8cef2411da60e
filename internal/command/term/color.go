package term

import (
	"github.com/fatih/color"
)

var (
	GreenHighlight  = color.New(color.FgGreen).SprintFunc()
	RedHighlight    = color.New(color.FgRed).SprintFunc()
	YellowHighlight = color.New(color.FgYellow).SprintFunc()

	MagentaHighlight = color.New(color.FgMagenta).SprintFunc()

	Underline = color.New(color.Underline).SprintFunc()

	Highlight = MagentaHighlight
)

// ColoredPolarity highlights a scan polarity value.
func ColoredPolarity(polarity string) string {
	switch polarity {
	case "positive":
		return GreenHighlight(polarity)
	case "negative":
		return RedHighlight(polarity)
	case "positive/negative":
		return YellowHighlight(polarity)
	default:
		return polarity
	}
}
