package meshing

import (
	"blockworld/internal/profiling"
	"blockworld/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

// Volume is a box of blocks addressed by local indices in [0, Dims()).
type Volume interface {
	Dims() (x, y, z int)
	LocalBlock(x, y, z int) registry.BlockType
}

// NeighborSource resolves blocks by world block index. It returns
// registry.BlockTypeNone for anything outside loaded space.
type NeighborSource interface {
	GetBlockType(xi, yi, zi int) registry.BlockType
}

// PassMask selects which meshes Build produces.
type PassMask uint8

const (
	MaskSolid       PassMask = 1 << PassSolid
	MaskTransparent PassMask = 1 << PassTransparent
	MaskAll                  = MaskSolid | MaskTransparent
)

// Options controls a mesh build.
type Options struct {
	// Origin is the world block index of local cell (0,0,0).
	Origin     [3]int
	BlockWidth float32
	// Passes defaults to MaskAll.
	Passes PassMask
	// Eye enables back-face culling against a camera position.
	Eye *mgl32.Vec3
}

// Result holds the meshes produced by Build. A pass that was not requested is nil.
type Result struct {
	Solid       *Mesh
	Transparent *Mesh
}

// Mesh returns the mesh for a pass.
func (r Result) Mesh(p Pass) *Mesh {
	if p == PassTransparent {
		return r.Transparent
	}
	return r.Solid
}

// FaceVisible reports whether a face of self bordering neighbor must be drawn:
// the neighbor is missing, air, or a transparent block of a different type.
func FaceVisible(reg *registry.Registry, self, neighbor registry.BlockType) bool {
	if neighbor.IsMissing() || neighbor.IsAir() {
		return true
	}
	return neighbor != self && reg.IsTransparent(neighbor)
}

// Build emits one quad per visible face of every non-air block in vol. Quads of
// opaque blocks go to the solid mesh, quads of transparent blocks to the
// transparent mesh. Neighbors outside vol are resolved through nb; a nil nb
// treats them as missing.
func Build(reg *registry.Registry, vol Volume, nb NeighborSource, opts Options) Result {
	defer profiling.Track("meshing.Build")()

	passes := opts.Passes
	if passes == 0 {
		passes = MaskAll
	}
	bw := opts.BlockWidth
	if bw == 0 {
		bw = 1
	}

	var res Result
	if passes&MaskSolid != 0 {
		res.Solid = &Mesh{}
	}
	if passes&MaskTransparent != 0 {
		res.Transparent = &Mesh{}
	}

	sx, sy, sz := vol.Dims()
	ox, oy, oz := opts.Origin[0], opts.Origin[1], opts.Origin[2]

	neighbor := func(lx, ly, lz int) registry.BlockType {
		if lx >= 0 && lx < sx && ly >= 0 && ly < sy && lz >= 0 && lz < sz {
			return vol.LocalBlock(lx, ly, lz)
		}
		if nb == nil {
			return registry.BlockTypeNone
		}
		return nb.GetBlockType(ox+lx, oy+ly, oz+lz)
	}

	for lx := 0; lx < sx; lx++ {
		for ly := 0; ly < sy; ly++ {
			for lz := 0; lz < sz; lz++ {
				bt := vol.LocalBlock(lx, ly, lz)
				if bt.IsAir() || bt.IsMissing() {
					continue
				}
				def := reg.Get(bt)
				dst := res.Solid
				if def.IsTransparent {
					dst = res.Transparent
				}
				if dst == nil {
					continue
				}

				xi, yi, zi := ox+lx, oy+ly, oz+lz
				for _, face := range registry.Faces {
					off := face.Offset()
					if !FaceVisible(reg, bt, neighbor(lx+off[0], ly+off[1], lz+off[2])) {
						continue
					}
					if opts.Eye != nil && !FrontFacing(*opts.Eye, xi, yi, zi, face, bw) {
						continue
					}
					tile := def.Texture(face)
					dst.appendQuad(
						Quad{Block: [3]int{xi, yi, zi}, Face: face, Type: bt, Tile: tile},
						FaceCorners(xi, yi, zi, face, bw),
						TileUVs(tile),
						FaceNormal(face),
					)
				}
			}
		}
	}
	return res
}
