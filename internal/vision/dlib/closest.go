package dlib

import (
	"image"
	"math"
)

// closestFace picks the detection that overlaps target and whose centre is
// nearest to target's centre.
func closestFace(faces []image.Rectangle, target image.Rectangle) (int, bool) {
	cx := float64(target.Min.X+target.Max.X) / 2
	cy := float64(target.Min.Y+target.Max.Y) / 2

	best, bestDist := -1, math.Inf(1)
	for i, f := range faces {
		if !f.Overlaps(target) {
			continue
		}
		fx := float64(f.Min.X+f.Max.X) / 2
		fy := float64(f.Min.Y+f.Max.Y) / 2
		if dist := math.Hypot(fx-cx, fy-cy); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, best >= 0
}
