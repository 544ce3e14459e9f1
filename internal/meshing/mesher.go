package meshing

import (
	"github.com/profan/dear-xenko/internal/profiling"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockSource answers block queries in chunk-local coordinates, including
// coordinates just outside the chunk. *world.Chunk is one (everything
// outside reads as air).
type BlockSource interface {
	GetBlock(x, y, z int) world.BlockType
}

// Mesh is the output of one chunk: 4 vertices and 6 indices per visible face.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Faces returns the number of quads in the mesh.
func (m Mesh) Faces() int {
	return len(m.Vertices) / 4
}

// IsEmpty reports whether the mesh has nothing to draw.
func (m Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// IndexFormat returns the narrowest index width that addresses every vertex.
func (m Mesh) IndexFormat() IndexFormat {
	return IndexFormatFor(len(m.Vertices))
}

type faceCase struct {
	face    world.BlockFace
	dx      int
	dy      int
	dz      int
	corners [4]mgl32.Vec3
	normal  mgl32.Vec3
	color   [4]uint8
}

// Corners are listed counter-clockwise as seen from outside the block, so
// (c1-c0)×(c2-c0) points along the face normal.
var faceCases = [world.NumFaces]faceCase{
	{face: world.FaceBottom, corners: [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{face: world.FaceTop, corners: [4]mgl32.Vec3{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{face: world.FaceLeft, corners: [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{face: world.FaceRight, corners: [4]mgl32.Vec3{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{face: world.FaceFront, corners: [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{face: world.FaceBack, corners: [4]mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

// quadIndices splits a quad into two triangles with the corners' winding.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

func init() {
	for i := range faceCases {
		fc := &faceCases[i]
		fc.dx, fc.dy, fc.dz = fc.face.Offset()
		fc.normal = fc.face.Normal()
		c := world.GetBlockColor(fc.face)
		fc.color = [4]uint8{toByte(c[0]), toByte(c[1]), toByte(c[2]), 255}
	}
}

func toByte(f float32) uint8 {
	return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5)
}

// Mesher builds per-face culled meshes. Its scratch buffers are reused
// between calls, so a Mesher must not be shared between goroutines and the
// Mesh it returns is only valid until the next BuildChunk.
type Mesher struct {
	vertices []Vertex
	indices  []uint32
}

// NewMesher creates a mesher with preallocated scratch space.
func NewMesher() *Mesher {
	return &Mesher{
		vertices: make([]Vertex, 0, 1024),
		indices:  make([]uint32, 0, 1536),
	}
}

// BuildChunkMesh meshes c with a fresh mesher and chunk-local culling.
func BuildChunkMesh(c *world.Chunk) Mesh {
	return NewMesher().BuildChunk(c, nil)
}

// BuildChunk emits one quad for every face of a non-air cell whose neighbour
// is air. Neighbours are read from neighbors, or from c itself when nil,
// which treats everything outside the chunk as air.
func (m *Mesher) BuildChunk(c *world.Chunk, neighbors BlockSource) Mesh {
	defer profiling.Track("meshing.BuildChunk")()

	m.vertices = m.vertices[:0]
	m.indices = m.indices[:0]
	if c == nil {
		return Mesh{}
	}
	if neighbors == nil {
		neighbors = c
	}

	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				if c.GetBlock(x, y, z).IsAir() {
					continue
				}
				origin := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for i := range faceCases {
					fc := &faceCases[i]
					if !neighbors.GetBlock(x+fc.dx, y+fc.dy, z+fc.dz).IsAir() {
						continue
					}
					m.emitQuad(origin, fc)
				}
			}
		}
	}

	profiling.Add("meshing.faces", int64(len(m.vertices)/4))
	return Mesh{Vertices: m.vertices, Indices: m.indices}
}

func (m *Mesher) emitQuad(origin mgl32.Vec3, fc *faceCase) {
	base := uint32(len(m.vertices))
	for _, corner := range fc.corners {
		m.vertices = append(m.vertices, Vertex{
			Position: origin.Add(corner),
			Normal:   fc.normal,
			Color:    fc.color,
		})
	}
	for _, i := range quadIndices {
		m.indices = append(m.indices, base+i)
	}
}
