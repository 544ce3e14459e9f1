package meshing

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// VertexSize is the packed size of one vertex in bytes:
// position (3×f32) + normal (3×f32) + color (4×u8).
const VertexSize = 3*4 + 3*4 + 4

// Byte offsets of each attribute inside a packed vertex.
const (
	PositionOffset = 0
	NormalOffset   = 12
	ColorOffset    = 24
)

// Vertex is one corner of an emitted face.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    [4]uint8
}

// IndexFormat is the element width of an index buffer.
type IndexFormat uint8

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// MaxUint16Vertices is the first vertex count that needs 32-bit indices.
// Index 0xFFFF is left unused: GL treats it as primitive restart and glTF
// forbids it in unsigned short index accessors.
const MaxUint16Vertices = 1<<16 - 1

// Size returns the byte width of one index.
func (f IndexFormat) Size() int {
	if f == IndexUint32 {
		return 4
	}
	return 2
}

func (f IndexFormat) String() string {
	if f == IndexUint32 {
		return "uint32"
	}
	return "uint16"
}

// IndexFormatFor picks 16-bit indices while every vertex is addressable
// below 0xFFFF and widens to 32-bit beyond that.
func IndexFormatFor(vertexCount int) IndexFormat {
	if vertexCount < MaxUint16Vertices {
		return IndexUint16
	}
	return IndexUint32
}

var (
	ErrIndexOverflow  = errors.New("index does not fit index format")
	ErrTruncatedInput = errors.New("byte stream is not a whole number of elements")
)

// EncodeVertices appends the little-endian packed form of verts to dst.
func EncodeVertices(dst []byte, verts []Vertex) []byte {
	for i := range verts {
		v := &verts[i]
		for _, f := range v.Position {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.Normal {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		dst = append(dst, v.Color[:]...)
	}
	return dst
}

// DecodeVertices parses a packed vertex stream.
func DecodeVertices(b []byte) ([]Vertex, error) {
	if len(b)%VertexSize != 0 {
		return nil, errors.Wrapf(ErrTruncatedInput, "%d bytes of vertices", len(b))
	}
	out := make([]Vertex, len(b)/VertexSize)
	for i := range out {
		rec := b[i*VertexSize : (i+1)*VertexSize]
		for k := 0; k < 3; k++ {
			out[i].Position[k] = math.Float32frombits(binary.LittleEndian.Uint32(rec[PositionOffset+4*k:]))
			out[i].Normal[k] = math.Float32frombits(binary.LittleEndian.Uint32(rec[NormalOffset+4*k:]))
		}
		copy(out[i].Color[:], rec[ColorOffset:ColorOffset+4])
	}
	return out, nil
}

// EncodeIndices appends indices to dst using the given element width.
func EncodeIndices(dst []byte, indices []uint32, format IndexFormat) ([]byte, error) {
	if format == IndexUint32 {
		for _, i := range indices {
			dst = binary.LittleEndian.AppendUint32(dst, i)
		}
		return dst, nil
	}
	for _, i := range indices {
		if i >= math.MaxUint16 {
			return dst, errors.Wrapf(ErrIndexOverflow, "index %d as %s", i, format)
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(i))
	}
	return dst, nil
}

// DecodeIndices parses an index stream of the given element width.
func DecodeIndices(b []byte, format IndexFormat) ([]uint32, error) {
	size := format.Size()
	if len(b)%size != 0 {
		return nil, errors.Wrapf(ErrTruncatedInput, "%d bytes of %s indices", len(b), format)
	}
	out := make([]uint32, len(b)/size)
	for i := range out {
		if size == 4 {
			out[i] = binary.LittleEndian.Uint32(b[i*4:])
		} else {
			out[i] = uint32(binary.LittleEndian.Uint16(b[i*2:]))
		}
	}
	return out, nil
}
