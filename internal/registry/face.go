package registry

// BlockFace identifies one of the six faces of a block, named in block-index
// space (Top points toward increasing Y index).
type BlockFace int

const (
	FaceFront  BlockFace = iota // +Z
	FaceBack                    // -Z
	FaceLeft                    // -X
	FaceRight                   // +X
	FaceTop                     // +Y index
	FaceBottom                  // -Y index
)

// Faces lists every face in a fixed order.
var Faces = [6]BlockFace{FaceFront, FaceBack, FaceLeft, FaceRight, FaceTop, FaceBottom}

// TextureGroup selects which of a block's three textures a face uses.
type TextureGroup int

const (
	TextureTop TextureGroup = iota
	TextureSide
	TextureBottom
)

var faceOffsets = [6][3]int{
	FaceFront:  {0, 0, 1},
	FaceBack:   {0, 0, -1},
	FaceLeft:   {-1, 0, 0},
	FaceRight:  {1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

// Offset returns the block-index delta to the neighbor across this face.
func (f BlockFace) Offset() [3]int {
	return faceOffsets[f]
}

// Opposite returns the face pointing the other way.
func (f BlockFace) Opposite() BlockFace {
	switch f {
	case FaceFront:
		return FaceBack
	case FaceBack:
		return FaceFront
	case FaceLeft:
		return FaceRight
	case FaceRight:
		return FaceLeft
	case FaceTop:
		return FaceBottom
	default:
		return FaceTop
	}
}

// Group returns the texture group used for this face.
func (f BlockFace) Group() TextureGroup {
	switch f {
	case FaceTop:
		return TextureTop
	case FaceBottom:
		return TextureBottom
	default:
		return TextureSide
	}
}

func (f BlockFace) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	}
	return "unknown"
}
