package core

// Color is a foreground color for a screen cell.
// The platform maps it to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorSky           // HUD text, message boxes
	ColorPipe          // Pipe bodies
	ColorPipeCap       // Pipe rims facing the gap
	ColorGround        // Ground line
	ColorBird          // Bird while flying
	ColorDead          // Bird after a crash
	ColorScore         // Score counter
)
