package blocks

import (
	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/meshing"
	"github.com/profan/dear-xenko/internal/world"
)

// InitialCapacity is the element count each new record's buffers start with.
const InitialCapacity = 16

// ChunkRecord is the device-side state of one chunk. Buffer capacities only
// ever grow; a reallocation releases the previous handle.
type ChunkRecord struct {
	Coord world.ChunkCoord

	VertexBuffer   graphics.BufferHandle
	IndexBuffer    graphics.BufferHandle
	VertexCapacity int // bytes
	IndexCapacity  int // bytes

	VertexCount int
	IndexCount  int // draw count
	IndexFormat meshing.IndexFormat

	Node graphics.NodeHandle
}

// Binding returns the mesh binding for the record's current contents.
func (r *ChunkRecord) Binding() graphics.MeshBinding {
	return graphics.MeshBinding{
		VertexBuffer: r.VertexBuffer,
		IndexBuffer:  r.IndexBuffer,
		VertexStride: meshing.VertexSize,
		VertexCount:  r.VertexCount,
		IndexCount:   r.IndexCount,
		IndexFormat:  r.IndexFormat,
		Topology:     graphics.TriangleList,
	}
}

// RendererStats is plain data for observers.
type RendererStats struct {
	Records       int
	VertexBytes   int // total capacity
	IndexBytes    int // total capacity
	Vertices      int
	Indices       int
	Uploads       int
	Reallocations int
}
