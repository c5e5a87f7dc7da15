package core

import "math"

// Volume holds the two independent mixer levels, each linear in [0, 1].
type Volume struct {
	Music   float64
	Effects float64
}

// Adjust applies a volume action with the given step.
// Returns the new levels and whether anything changed; non-volume actions
// and steps that hit a bound report no change.
func (v Volume) Adjust(a Action, step float64) (Volume, bool) {
	next := v
	switch a {
	case ActionMusicUp:
		next.Music = stepLevel(v.Music, step)
	case ActionMusicDown:
		next.Music = stepLevel(v.Music, -step)
	case ActionEffectsUp:
		next.Effects = stepLevel(v.Effects, step)
	case ActionEffectsDown:
		next.Effects = stepLevel(v.Effects, -step)
	default:
		return v, false
	}
	return next, next != v
}

// Clamped returns v with both levels forced into [0, 1].
func (v Volume) Clamped() Volume {
	return Volume{
		Music:   ClampF(v.Music, 0, 1),
		Effects: ClampF(v.Effects, 0, 1),
	}
}

// Percent converts a level to a whole percentage for display.
func Percent(level float64) int {
	return int(math.Round(level * 100))
}

// stepLevel moves a level by delta, clamps it and rounds away float drift
// so repeated steps land on exact hundredths.
func stepLevel(level, delta float64) float64 {
	next := ClampF(level+delta, 0, 1)
	return math.Round(next*100) / 100
}
