package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// Field is the playfield geometry for the current screen size.
type Field struct {
	Width   int     // Screen width in cells
	Height  int     // Screen height in cells
	GroundY int     // First row of the ground strip
	Floor   float64 // Lowest bird top that does not touch the ground
}

// newField derives the playfield from screen size and config.
func newField(screenW, screenH int, cfg config.FlappyConfig) Field {
	groundY := screenH - cfg.Obstacles.GroundHeight
	return Field{
		Width:   screenW,
		Height:  screenH,
		GroundY: groundY,
		Floor:   float64(groundY - cfg.Player.Height),
	}
}
