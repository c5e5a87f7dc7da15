package flappy

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Glyphs used by the sprites.
const (
	BirdBodyChar  = '●'
	BirdBeakChar  = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
)

// Sprite is anything that draws itself onto the screen buffer.
type Sprite interface {
	Draw(dst *core.Screen, f Field)
}

var (
	_ Sprite = Bird{}
	_ Sprite = Pipe{}
	_ Sprite = Ground{}
	_ Sprite = HUD{}
	_ Sprite = VolumePanel{}
)

// Draw renders the bird with its beak on the last column of the top row.
func (b Bird) Draw(dst *core.Screen, _ Field) {
	x, y := int(b.X), int(b.Y)
	w, h := int(b.W), int(b.H)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			r := BirdBodyChar
			if dx == w-1 && dy == 0 {
				r = BirdBeakChar
			}
			dst.SetColored(x+dx, y+dy, r, core.ColorBrightYellow)
		}
	}
}

// Draw renders both halves of the pipe with caps facing the gap.
func (p Pipe) Draw(dst *core.Screen, f Field) {
	x0 := int(p.X)
	top, bottom := p.GapTop(), p.GapBottom()

	for x := x0; x < x0+p.Width; x++ {
		for y := 0; y < top; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if top > 0 {
			dst.SetColored(x, top-1, PipeCapTop, core.ColorBrightGreen)
		}

		for y := bottom; y < f.GroundY; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if bottom < f.GroundY {
			dst.SetColored(x, bottom, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

// Draw fills the ground strip; the top row scrolls with Offset.
func (g Ground) Draw(dst *core.Screen, f Field) {
	shift := int(g.Offset)
	n := len(groundPattern)
	for x := 0; x < f.Width; x++ {
		dst.SetColored(x, f.GroundY, groundPattern[(x+shift)%n], core.ColorOrange)
	}
	for y := f.GroundY + 1; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			dst.SetColored(x, y, '░', core.ColorOrange)
		}
	}
}

// HUD shows the current and best score in the top-left corner.
type HUD struct {
	Score     int
	HighScore int
}

func (h HUD) Draw(dst *core.Screen, _ Field) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", h.Score), core.ColorBrightWhite)
	dst.DrawTextColored(2, 1, fmt.Sprintf(" High Score: %d ", h.HighScore), core.ColorWhite)
}

// VolumePanel is the modal volume settings overlay.
type VolumePanel struct {
	Volume   core.Volume
	MusicOff bool // No track loaded
}

func (v VolumePanel) Draw(dst *core.Screen, f Field) {
	music := fmt.Sprintf("Music Volume: %d%%", core.Percent(v.Volume.Music))
	musicHelp := "Use M/N to adjust Music"
	if v.MusicOff {
		music = "Music Volume: off"
		musicHelp = "No music track loaded"
	}
	drawPanel(dst, f, core.ColorCyan,
		"Volume Settings",
		"",
		music,
		fmt.Sprintf("SFX Volume: %d%%", core.Percent(v.Volume.Effects)),
		"",
		musicHelp,
		"Use K/L to adjust SFX",
		"Press V to close",
	)
}

// drawPanel draws a bordered box in the center of the field with one
// centered line of text per row.
func drawPanel(dst *core.Screen, f Field, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	box := core.NewRect(0, 0, width+4, len(lines)+2)
	box.X = (f.Width - box.W) / 2
	box.Y = (f.Height - box.H) / 2

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i, l, c)
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	sprites := make([]Sprite, 0, len(g.pipes.Pipes())+3)
	sprites = append(sprites, g.ground)
	for _, p := range g.pipes.Pipes() {
		sprites = append(sprites, p)
	}
	sprites = append(sprites, g.bird, HUD{Score: g.score, HighScore: g.scores.Best()})
	for _, s := range sprites {
		s.Draw(dst, g.field)
	}

	switch g.phase {
	case PhaseStart:
		drawPanel(dst, g.field, core.ColorBrightYellow,
			strings.ToUpper(g.Title()),
			"",
			"Press SPACE to flap",
			"V for volume, Q to quit",
		)
	case PhaseGameOver:
		lines := []string{"GAME OVER", "", fmt.Sprintf("Score: %d | Press R to Restart", g.score)}
		if g.newHighScore {
			lines = append(lines, "NEW HIGH SCORE!")
		}
		drawPanel(dst, g.field, core.ColorRed, lines...)
	}

	if g.overlay {
		VolumePanel{Volume: g.volume, MusicOff: g.noMusic}.Draw(dst, g.field)
	}
}
