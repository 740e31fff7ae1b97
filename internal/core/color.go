package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to terminal styles.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorRed
	ColorYellow
	ColorGray
	ColorBrightWhite
)

// ParseColor maps a theme color name to a Color.
// Unknown names fall back to ColorDefault.
func ParseColor(name string) Color {
	switch name {
	case "green":
		return ColorGreen
	case "bright_green":
		return ColorBrightGreen
	case "red":
		return ColorRed
	case "yellow":
		return ColorYellow
	case "gray", "grey":
		return ColorGray
	case "bright_white", "white":
		return ColorBrightWhite
	default:
		return ColorDefault
	}
}
