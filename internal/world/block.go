package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockType is the content of a single voxel cell.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeSolid
	BlockTypeStone
	BlockTypeDirt
	BlockTypeGrass
)

// IsAir reports whether the block is empty space. Every other value,
// registered or not, occludes its neighbours.
func (b BlockType) IsAir() bool {
	return b == BlockTypeAir
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceBottom BlockFace = iota // -Y
	FaceTop                     // +Y
	FaceLeft                    // -X
	FaceRight                   // +X
	FaceFront                   // +Z
	FaceBack                    // -Z
)

// NumFaces is the number of faces on a block.
const NumFaces = 6

var faceOffsets = [NumFaces][3]int{
	FaceBottom: {0, -1, 0},
	FaceTop:    {0, 1, 0},
	FaceLeft:   {-1, 0, 0},
	FaceRight:  {1, 0, 0},
	FaceFront:  {0, 0, 1},
	FaceBack:   {0, 0, -1},
}

// Offset returns the unit step from a cell to its neighbour across the face.
func (f BlockFace) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal of the face.
func (f BlockFace) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

func (f BlockFace) String() string {
	switch f {
	case FaceBottom:
		return "bottom"
	case FaceTop:
		return "top"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	default:
		return "unknown"
	}
}

// GetBlockColor returns the debug color for a specific block face
func GetBlockColor(face BlockFace) mgl32.Vec3 {
	switch face {
	case FaceBottom:
		return mgl32.Vec3{1.0, 0.0, 0.0} // Red
	case FaceTop:
		return mgl32.Vec3{0.0, 1.0, 0.0} // Green
	case FaceLeft:
		return mgl32.Vec3{0.0, 0.0, 1.0} // Blue
	case FaceRight:
		return mgl32.Vec3{1.0, 0.412, 0.706} // Hot pink
	case FaceFront:
		return mgl32.Vec3{1.0, 1.0, 1.0} // White
	case FaceBack:
		return mgl32.Vec3{1.0, 0.647, 0.0} // Orange
	default:
		return mgl32.Vec3{0.5, 0.5, 0.5} // Gray (fallback)
	}
}
