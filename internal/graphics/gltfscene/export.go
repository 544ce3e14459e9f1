package gltfscene

import (
	"path/filepath"
	"strings"

	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/meshing"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Document converts every node with a non-empty mesh into a glTF document.
// Each chunk becomes one mesh and one node translated to its world origin.
func (s *Scene) Document() (*gltf.Document, error) {
	doc := &gltf.Document{
		Asset:  gltf.Asset{Generator: "dear-xenko", Version: "2.0"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Name: "world"}},
	}

	for _, n := range s.Nodes() {
		if !n.HasMesh || n.Binding.IndexCount == 0 {
			continue
		}
		prim, err := s.primitive(doc, n.Binding)
		if err != nil {
			return nil, errors.Wrapf(err, "export node %s", n.Name)
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: n.Name, Primitives: []*gltf.Primitive{prim}})

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        n.Name,
			Mesh:        gltf.Index(uint32(len(doc.Meshes) - 1)),
			Translation: n.Position,
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc, nil
}

// Save writes the scene to path. A .glb path gets the binary container,
// anything else a .gltf file with base64 embedded buffers.
func (s *Scene) Save(path string) error {
	doc, err := s.Document()
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return errors.Wrapf(gltf.SaveBinary(doc, path), "save %s", path)
	}
	for _, b := range doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	return errors.Wrapf(gltf.Save(doc, path), "save %s", path)
}

func (s *Scene) primitive(doc *gltf.Document, b graphics.MeshBinding) (*gltf.Primitive, error) {
	vb, err := s.device.Bytes(b.VertexBuffer)
	if err != nil {
		return nil, err
	}
	ib, err := s.device.Bytes(b.IndexBuffer)
	if err != nil {
		return nil, err
	}
	vlen := b.VertexCount * meshing.VertexSize
	ilen := b.IndexCount * b.IndexFormat.Size()
	if vlen > len(vb) || ilen > len(ib) {
		return nil, errors.Wrapf(graphics.ErrUploadRange, "binding %d/%d bytes, buffers %d/%d", vlen, ilen, len(vb), len(ib))
	}
	verts, err := meshing.DecodeVertices(vb[:vlen])
	if err != nil {
		return nil, err
	}
	indices, err := meshing.DecodeIndices(ib[:ilen], b.IndexFormat)
	if err != nil {
		return nil, err
	}

	positions := make([][3]float32, len(verts))
	normals := make([][3]float32, len(verts))
	colors := make([][4]uint8, len(verts))
	for i, v := range verts {
		positions[i] = v.Position
		normals[i] = v.Normal
		colors[i] = v.Color
	}

	prim := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: gltf.Attribute{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			gltf.COLOR_0:  modeler.WriteColor(doc, colors),
		},
	}
	if b.IndexFormat == meshing.IndexUint16 {
		narrow := make([]uint16, len(indices))
		for i, idx := range indices {
			narrow[i] = uint16(idx)
		}
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, narrow))
	} else {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, indices))
	}
	return prim, nil
}
