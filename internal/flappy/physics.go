package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player entity. Y is the top of its hitbox; positive Vel moves down.
type Bird struct {
	X      float64 // Fixed horizontal position (left edge)
	Y      float64 // Vertical position (top edge)
	Vel    float64 // Vertical velocity in cells per tick
	W, H   float64 // Hitbox size
	StartY float64 // Y restored on reset
}

// newBird places a bird at rest halfway down the field.
func newBird(x, w, h int, f Field) Bird {
	startY := core.ClampF(float64(f.Height)/2, 0, f.Floor)
	return Bird{
		X:      float64(x),
		Y:      startY,
		W:      float64(w),
		H:      float64(h),
		StartY: startY,
	}
}

// Box returns the bird's collision box.
func (b Bird) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// reset puts the bird back at its start position with no velocity.
func (b *Bird) reset() {
	b.Y = b.StartY
	b.Vel = 0
}

// step advances the bird one tick. A flap sets the velocity to impulse;
// otherwise gravity is added. The position is then integrated and
// clamped to [0, floor].
func (b *Bird) step(flap bool, gravity, impulse, floor float64) {
	if flap {
		b.Vel = impulse
	} else {
		b.Vel += gravity
	}
	b.Y = core.ClampF(b.Y+b.Vel, 0, floor)
}

// outOfBounds reports whether the bird touches the ceiling or the ground.
func (b Bird) outOfBounds(floor float64) bool {
	return b.Y <= 0 || b.Y >= floor
}

// Ground is the scrolling strip at the bottom of the field.
type Ground struct {
	Offset float64 // Scroll position, wraps at groundPatternLen
}

// groundPattern repeats along the top row of the ground.
var groundPattern = []rune("▓▒░▒")

var groundPatternLen = float64(len(groundPattern))

// scroll moves the ground left by speed cells.
func (g *Ground) scroll(speed float64) {
	g.Offset += speed
	for g.Offset >= groundPatternLen {
		g.Offset -= groundPatternLen
	}
}
