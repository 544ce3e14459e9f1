package blocks

import (
	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/meshing"
	"github.com/profan/dear-xenko/internal/profiling"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/pkg/errors"
)

// EnsureRecord returns the record for coord, allocating one with
// initial-capacity buffers the first time a chunk is seen.
func (r *ChunkRenderer) EnsureRecord(coord world.ChunkCoord) (*ChunkRecord, error) {
	if rec, ok := r.records[coord]; ok {
		return rec, nil
	}

	vb, err := r.device.Allocate(graphics.VertexBuffer, r.initialCapacity, meshing.VertexSize)
	if err != nil {
		return nil, errors.Wrapf(err, "chunk %v: allocate vertex buffer", coord)
	}
	ib, err := r.device.Allocate(graphics.IndexBuffer, r.initialCapacity, meshing.IndexUint16.Size())
	if err != nil {
		_ = r.device.Release(vb)
		return nil, errors.Wrapf(err, "chunk %v: allocate index buffer", coord)
	}

	rec := &ChunkRecord{
		Coord:          coord,
		VertexBuffer:   vb,
		IndexBuffer:    ib,
		VertexCapacity: r.initialCapacity * meshing.VertexSize,
		IndexCapacity:  r.initialCapacity * meshing.IndexUint16.Size(),
		IndexFormat:    meshing.IndexUint16,
	}
	r.records[coord] = rec
	return rec, nil
}

// Upload copies mesh into the chunk's buffers, growing them when the mesh no
// longer fits, and points the chunk's scene node at the result.
func (r *ChunkRenderer) Upload(coord world.ChunkCoord, mesh meshing.Mesh) error {
	defer profiling.Track("renderer.Upload")()

	rec, err := r.EnsureRecord(coord)
	if err != nil {
		return err
	}

	format := mesh.IndexFormat()
	r.vertexBytes = meshing.EncodeVertices(r.vertexBytes[:0], mesh.Vertices)
	r.indexBytes, err = meshing.EncodeIndices(r.indexBytes[:0], mesh.Indices, format)
	if err != nil {
		return errors.Wrapf(err, "chunk %v", coord)
	}

	// Allocate every buffer that has to grow before touching the record, so
	// a failed allocation leaves the record and the scene binding intact.
	vb, ib := rec.VertexBuffer, rec.IndexBuffer
	growVB := len(r.vertexBytes) > rec.VertexCapacity
	growIB := len(r.indexBytes) > rec.IndexCapacity
	if growVB {
		vb, err = r.device.Allocate(graphics.VertexBuffer, len(mesh.Vertices), meshing.VertexSize)
		if err != nil {
			return errors.Wrapf(err, "chunk %v: grow vertex buffer", coord)
		}
	}
	if growIB {
		ib, err = r.device.Allocate(graphics.IndexBuffer, len(mesh.Indices), format.Size())
		if err != nil {
			if growVB {
				_ = r.device.Release(vb)
			}
			return errors.Wrapf(err, "chunk %v: grow index buffer", coord)
		}
	}
	discard := func() {
		if growVB {
			_ = r.device.Release(vb)
		}
		if growIB {
			_ = r.device.Release(ib)
		}
	}

	if len(r.vertexBytes) > 0 {
		if err := r.device.Upload(vb, 0, r.vertexBytes); err != nil {
			discard()
			return errors.Wrapf(err, "chunk %v: upload vertices", coord)
		}
	}
	if len(r.indexBytes) > 0 {
		if err := r.device.Upload(ib, 0, r.indexBytes); err != nil {
			discard()
			return errors.Wrapf(err, "chunk %v: upload indices", coord)
		}
	}

	if growVB {
		r.replace(rec.VertexBuffer, coord)
		r.log.Debug("vertex buffer grown", "chunk", coord, "from", rec.VertexCapacity, "to", len(r.vertexBytes))
		rec.VertexBuffer = vb
		rec.VertexCapacity = len(r.vertexBytes)
	}
	if growIB {
		r.replace(rec.IndexBuffer, coord)
		r.log.Debug("index buffer grown", "chunk", coord, "from", rec.IndexCapacity, "to", len(r.indexBytes), "format", format)
		rec.IndexBuffer = ib
		rec.IndexCapacity = len(r.indexBytes)
	}
	rec.VertexCount = len(mesh.Vertices)
	rec.IndexCount = len(mesh.Indices)
	rec.IndexFormat = format
	r.uploads++

	node, err := r.scene.CreateOrUpdate(NodeName(coord), NodePosition(coord))
	if err != nil {
		return errors.Wrapf(err, "chunk %v: scene node", coord)
	}
	rec.Node = node
	if err := r.scene.AttachMesh(node, rec.Binding()); err != nil {
		return errors.Wrapf(err, "chunk %v: attach mesh", coord)
	}
	return nil
}

// replace releases a buffer superseded by a grown one.
func (r *ChunkRenderer) replace(old graphics.BufferHandle, coord world.ChunkCoord) {
	if err := r.device.Release(old); err != nil {
		r.log.Warn("release replaced buffer", "chunk", coord, "buffer", old, "err", err)
	}
	r.reallocations++
}
