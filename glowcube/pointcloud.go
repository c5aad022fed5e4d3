package glowcube

import (
	"math"
	"math/rand"
)

// Starfield returns count points uniformly spread in a cube of side extent centred on the
// origin. Each coordinate is (r-0.5)*extent.
func Starfield(rng *rand.Rand, count int, extent float64) [][3]float32 {
	points := make([][3]float32, count)
	for i := range points {
		points[i] = [3]float32{
			float32((rng.Float64() - 0.5) * extent),
			float32((rng.Float64() - 0.5) * extent),
			float32((rng.Float64() - 0.5) * extent),
		}
	}
	return points
}

// GalaxyDisk returns count points on a filled disk in the XY plane. Angle and radius are both
// uniform, which clusters points towards the centre; the depth is uniform within thickness.
func GalaxyDisk(rng *rand.Rand, count int, radius, thickness float64) [][3]float32 {
	points := make([][3]float32, count)
	for i := range points {
		angle := rng.Float64() * 2 * math.Pi
		r := rng.Float64() * radius
		points[i] = [3]float32{
			float32(math.Cos(angle) * r),
			float32(math.Sin(angle) * r),
			float32((rng.Float64() - 0.5) * thickness),
		}
	}
	return points
}
