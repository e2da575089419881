package core

// Color is a foreground color on the device display. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Display palette, named after the colors the handheld's TFT uses.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorBlack
	ColorRed
	ColorGreen
	ColorGold
	ColorPurple
	ColorBlue
	ColorOrange
	ColorSkyBlue
	ColorCyan
	ColorYellow
	ColorGray
)
