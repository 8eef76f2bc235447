package core

// Color represents a foreground color for a screen cell.
// The platform maps these to terminal colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorBrightWhite
	ColorGray
)
