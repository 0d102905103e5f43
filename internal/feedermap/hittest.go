package feedermap

import "math"

// HitTest returns the first feeder whose node lies strictly within
// HitRadius of (x, y). Coordinates are relative to the surface origin.
func HitTest(feeders []Feeder, width, height, x, y float64) (Feeder, bool) {
	n := len(feeders)
	for i, f := range feeders {
		p := Endpoint(i, n, width, height)
		if math.Hypot(x-p.X, y-p.Y) < HitRadius {
			return f, true
		}
	}
	return Feeder{}, false
}
