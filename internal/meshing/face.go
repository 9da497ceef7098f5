package meshing

import (
	"blockworld/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

// World space has Y pointing down: block index Y grows toward -Y.
// Each face carries an orthonormal frame with u × v = normal; for side faces v
// points up in world terms so textures stand upright.
type faceFrame struct {
	normal, u, v mgl32.Vec3
}

var faceFrames = [6]faceFrame{
	registry.FaceFront:  {normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, -1, 0}},
	registry.FaceBack:   {normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, -1, 0}},
	registry.FaceLeft:   {normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, -1, 0}},
	registry.FaceRight:  {normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, -1, 0}},
	registry.FaceTop:    {normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	registry.FaceBottom: {normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
}

// corner signs along (u, v), counter-clockwise seen from outside
var cornerSigns = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// FaceNormal returns the outward world-space normal of a face.
func FaceNormal(face registry.BlockFace) mgl32.Vec3 {
	return faceFrames[face].normal
}

// BlockCenter returns the world-space center of block (xi, yi, zi).
func BlockCenter(xi, yi, zi int, blockWidth float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(xi) + 0.5) * blockWidth,
		-(float32(yi) + 0.5) * blockWidth,
		(float32(zi) + 0.5) * blockWidth,
	}
}

// FaceCenter returns the world-space center of one face of a block. It lies on
// the face plane.
func FaceCenter(xi, yi, zi int, face registry.BlockFace, blockWidth float32) mgl32.Vec3 {
	return BlockCenter(xi, yi, zi, blockWidth).Add(faceFrames[face].normal.Mul(blockWidth / 2))
}

// FrontFacing reports whether eye lies on the outward side of the face plane,
// i.e. the face could be seen from eye.
func FrontFacing(eye mgl32.Vec3, xi, yi, zi int, face registry.BlockFace, blockWidth float32) bool {
	p := FaceCenter(xi, yi, zi, face, blockWidth)
	return eye.Sub(p).Dot(faceFrames[face].normal) >= 0
}

// FaceCorners returns the four world-space corners of a block face in the
// order they are emitted.
func FaceCorners(xi, yi, zi int, face registry.BlockFace, blockWidth float32) [4]mgl32.Vec3 {
	fr := faceFrames[face]
	c := FaceCenter(xi, yi, zi, face, blockWidth)
	half := blockWidth / 2
	var out [4]mgl32.Vec3
	for i, s := range cornerSigns {
		out[i] = c.Add(fr.u.Mul(s[0] * half)).Add(fr.v.Mul(s[1] * half))
	}
	return out
}

// TileUVs maps the corners of a face into one atlas cell.
func TileUVs(cell registry.AtlasCell) [4]mgl32.Vec2 {
	cols := float32(registry.AtlasColumns)
	rows := float32(registry.AtlasRows)
	var out [4]mgl32.Vec2
	for i, s := range cornerSigns {
		u := (s[0] + 1) / 2
		v := (1 - s[1]) / 2
		out[i] = mgl32.Vec2{(float32(cell.X) + u) / cols, (float32(cell.Y) + v) / rows}
	}
	return out
}
