package meshing

import (
	"blockworld/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// Pass selects one of the two batched meshes of a chunk.
type Pass int

const (
	PassSolid Pass = iota
	PassTransparent
)

func (p Pass) String() string {
	if p == PassTransparent {
		return "transparent"
	}
	return "solid"
}

// Vertex is a single mesh vertex in world space.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Quad records which block face produced a quad.
type Quad struct {
	Block [3]int // world block index
	Face  registry.BlockFace
	Type  registry.BlockType
	Tile  registry.AtlasCell
}

// Mesh is a batch of textured quads: four vertices and six indices per quad.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Quads    []Quad
}

// QuadCount returns the number of faces in the mesh.
func (m *Mesh) QuadCount() int {
	if m == nil {
		return 0
	}
	return len(m.Quads)
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return m.QuadCount() == 0
}

// Interleaved packs the vertices as VertexStride floats each for upload.
func (m *Mesh) Interleaved(dst []float32) []float32 {
	dst = dst[:0]
	for _, v := range m.Vertices {
		dst = append(dst,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return dst
}

// appendQuad adds four corners and their two triangles.
func (m *Mesh) appendQuad(q Quad, corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2, normal mgl32.Vec3) {
	base := uint32(len(m.Vertices))
	for i := range corners {
		m.Vertices = append(m.Vertices, Vertex{Position: corners[i], Normal: normal, UV: uvs[i]})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	m.Quads = append(m.Quads, q)
}
