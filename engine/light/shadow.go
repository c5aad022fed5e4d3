package light

import (
	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/chewxy/math32"
)

// MaxPointLights is the size of the point light array in the LightSet uniform.
const MaxPointLights = 4

// MaxShadowCasters is how many point lights may own cube shadow maps at once.
const MaxShadowCasters = 2

// FacesPerLight is the number of cube faces rendered for each shadow caster.
const FacesPerLight = 6

// ShadowLayerCount is the number of layers in the shadow depth array.
const ShadowLayerCount = MaxShadowCasters * FacesPerLight

// DefaultShadowMapSize is the width and height in texels of each shadow layer.
const DefaultShadowMapSize = 512

// ShadowNear is the near plane of every cube face projection.
const ShadowNear float32 = 0.1

// DefaultShadowBias is subtracted from the reference depth before comparison.
const DefaultShadowBias float32 = 0.0002

// cubeFaces lists the look direction and up vector for faces +X, -X, +Y, -Y, +Z, -Z.
// Face order matches DominantFace and the fragment shader's face selection.
var cubeFaces = [FacesPerLight]struct {
	dir, up [3]float32
}{
	{dir: [3]float32{1, 0, 0}, up: [3]float32{0, -1, 0}},
	{dir: [3]float32{-1, 0, 0}, up: [3]float32{0, -1, 0}},
	{dir: [3]float32{0, 1, 0}, up: [3]float32{0, 0, 1}},
	{dir: [3]float32{0, -1, 0}, up: [3]float32{0, 0, -1}},
	{dir: [3]float32{0, 0, 1}, up: [3]float32{0, -1, 0}},
	{dir: [3]float32{0, 0, -1}, up: [3]float32{0, -1, 0}},
}

// ShadowLayer returns the depth array layer for a caster's cube face.
//
// Parameters:
//   - casterIndex: index of the caster in [0, MaxShadowCasters)
//   - face: cube face in [0, FacesPerLight)
//
// Returns:
//   - int: the array layer
func ShadowLayer(casterIndex, face int) int {
	return casterIndex*FacesPerLight + face
}

// FaceViewProjection writes the view-projection matrix for one cube face of a point light.
// Every face uses a 90 degree field of view with a square aspect, so the six frusta tile the
// full sphere around the light.
//
// Parameters:
//   - out: destination matrix
//   - lightPos: world-space light position
//   - face: cube face in [0, FacesPerLight)
//   - far: far plane, normally the light's range
func FaceViewProjection(out []float32, lightPos [3]float32, face int, far float32) {
	f := cubeFaces[face]
	center := [3]float32{lightPos[0] + f.dir[0], lightPos[1] + f.dir[1], lightPos[2] + f.dir[2]}

	var view, proj [16]float32
	common.LookAt(view[:], lightPos, center, f.up)
	common.Perspective(proj[:], math32.Pi/2, 1, ShadowNear, far)
	common.Mul4(out, proj[:], view[:])
}

// CubeFaceMatrices returns all six face view-projection matrices of a point light.
//
// Parameters:
//   - lightPos: world-space light position
//   - far: far plane, normally the light's range
//
// Returns:
//   - [FacesPerLight][16]float32: one matrix per face
func CubeFaceMatrices(lightPos [3]float32, far float32) [FacesPerLight][16]float32 {
	var out [FacesPerLight][16]float32
	for face := range out {
		FaceViewProjection(out[face][:], lightPos, face, far)
	}
	return out
}

// DominantFace returns the cube face whose frustum contains the direction d, chosen by the
// largest absolute component. Ties go to X, then Y.
//
// Parameters:
//   - d: direction from the light to a point
//
// Returns:
//   - int: cube face in [0, FacesPerLight)
func DominantFace(d [3]float32) int {
	ax, ay, az := math32.Abs(d[0]), math32.Abs(d[1]), math32.Abs(d[2])
	switch {
	case ax >= ay && ax >= az:
		if d[0] >= 0 {
			return 0
		}
		return 1
	case ay >= az:
		if d[1] >= 0 {
			return 2
		}
		return 3
	default:
		if d[2] >= 0 {
			return 4
		}
		return 5
	}
}
