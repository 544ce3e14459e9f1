package graphics

import (
	"github.com/profan/dear-xenko/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// BufferUsage tells a device what a buffer will be bound as.
type BufferUsage uint8

const (
	VertexBuffer BufferUsage = iota
	IndexBuffer
)

func (u BufferUsage) String() string {
	if u == IndexBuffer {
		return "index"
	}
	return "vertex"
}

// BufferHandle identifies a device buffer. The zero handle is never valid.
type BufferHandle uint32

// NodeHandle identifies a scene node. The zero handle is never valid.
type NodeHandle uint32

// Topology is the primitive assembly mode of a mesh binding.
type Topology uint8

const (
	TriangleList Topology = iota
)

var (
	ErrUnknownBuffer  = errors.New("unknown buffer handle")
	ErrUnknownNode    = errors.New("unknown scene node")
	ErrUploadRange    = errors.New("upload outside buffer")
	ErrInvalidRequest = errors.New("invalid buffer request")
)

// Device allocates and fills GPU-side buffers.
type Device interface {
	// Allocate reserves count elements of stride bytes each.
	Allocate(usage BufferUsage, count, stride int) (BufferHandle, error)
	// Upload copies data into the buffer starting at byte offset.
	Upload(h BufferHandle, offset int, data []byte) error
	// Release frees the buffer. The handle must not be used afterwards.
	Release(h BufferHandle) error
}

// MeshBinding describes an indexed mesh living in device buffers.
type MeshBinding struct {
	VertexBuffer BufferHandle
	IndexBuffer  BufferHandle
	VertexStride int
	VertexCount  int
	IndexCount   int
	IndexFormat  meshing.IndexFormat
	Topology     Topology
}

// Scene places meshes in the world.
type Scene interface {
	// CreateOrUpdate returns the node registered under name, creating it if
	// needed, and moves it to position.
	CreateOrUpdate(name string, position mgl32.Vec3) (NodeHandle, error)
	// AttachMesh replaces the node's mesh.
	AttachMesh(node NodeHandle, binding MeshBinding) error
}

// CheckAllocation validates Allocate arguments and returns the size in bytes.
func CheckAllocation(count, stride int) (int, error) {
	if count <= 0 || stride <= 0 {
		return 0, errors.Wrapf(ErrInvalidRequest, "%d elements of %d bytes", count, stride)
	}
	return count * stride, nil
}

// CheckUpload validates that [offset, offset+n) fits a buffer of size bytes.
func CheckUpload(size, offset, n int) error {
	if offset < 0 || n < 0 || offset+n > size {
		return errors.Wrapf(ErrUploadRange, "%d bytes at offset %d into %d-byte buffer", n, offset, size)
	}
	return nil
}
