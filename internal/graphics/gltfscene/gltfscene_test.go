package gltfscene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/meshing"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

func TestDeviceBounds(t *testing.T) {
	d := NewDevice()
	if _, err := d.Allocate(graphics.VertexBuffer, 0, 28); !errors.Is(err, graphics.ErrInvalidRequest) {
		t.Fatalf("zero-count allocate: got %v", err)
	}
	h, err := d.Allocate(graphics.IndexBuffer, 4, 2)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if err := d.Upload(h, 6, []byte{1, 2, 3}); !errors.Is(err, graphics.ErrUploadRange) {
		t.Fatalf("overflowing upload: got %v", err)
	}
	if err := d.Upload(h, 6, []byte{1, 2}); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	b, _ := d.Bytes(h)
	if b[6] != 1 || b[7] != 2 {
		t.Fatalf("bytes: got %v", b)
	}
	if err := d.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := d.Release(h); !errors.Is(err, graphics.ErrUnknownBuffer) {
		t.Fatalf("double release: got %v", err)
	}
	if err := d.Upload(h, 0, []byte{1}); !errors.Is(err, graphics.ErrUnknownBuffer) {
		t.Fatalf("upload after release: got %v", err)
	}
	st := d.Stats()
	if st.Allocations != 1 || st.Releases != 1 || st.Uploads != 1 || st.LiveBuffers != 0 {
		t.Fatalf("Stats: got %+v", st)
	}
}

func TestSceneCreateOrUpdate(t *testing.T) {
	s := NewScene(NewDevice())
	a, _ := s.CreateOrUpdate("a", mgl32.Vec3{1, 2, 3})
	b, _ := s.CreateOrUpdate("b", mgl32.Vec3{})
	again, _ := s.CreateOrUpdate("a", mgl32.Vec3{4, 5, 6})
	if a == b || a != again {
		t.Fatalf("handles: a=%d b=%d again=%d", a, b, again)
	}
	n, err := s.Node(a)
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	if n.Position != (mgl32.Vec3{4, 5, 6}) {
		t.Fatalf("position not updated: %v", n.Position)
	}
	if _, err := s.Node(0); !errors.Is(err, graphics.ErrUnknownNode) {
		t.Fatalf("Node(0): got %v", err)
	}
	if _, err := s.Node(99); !errors.Is(err, graphics.ErrUnknownNode) {
		t.Fatalf("Node(99): got %v", err)
	}
}

func TestAttachMeshValidatesBuffers(t *testing.T) {
	d := NewDevice()
	s := NewScene(d)
	node, _ := s.CreateOrUpdate("n", mgl32.Vec3{})
	if err := s.AttachMesh(node, graphics.MeshBinding{VertexBuffer: 7, IndexBuffer: 8}); !errors.Is(err, graphics.ErrUnknownBuffer) {
		t.Fatalf("AttachMesh with unknown buffers: got %v", err)
	}
	if err := s.AttachMesh(99, graphics.MeshBinding{}); !errors.Is(err, graphics.ErrUnknownNode) {
		t.Fatalf("AttachMesh to unknown node: got %v", err)
	}
}

// attach uploads mesh straight into fresh buffers and binds it to a node.
func attach(t *testing.T, s *Scene, name string, pos mgl32.Vec3, mesh meshing.Mesh) {
	t.Helper()
	d := s.device
	format := mesh.IndexFormat()
	vb, err := d.Allocate(graphics.VertexBuffer, len(mesh.Vertices), meshing.VertexSize)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	ib, err := d.Allocate(graphics.IndexBuffer, len(mesh.Indices), format.Size())
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	idx, err := meshing.EncodeIndices(nil, mesh.Indices, format)
	if err != nil {
		t.Fatalf("EncodeIndices: %v", err)
	}
	if err := d.Upload(vb, 0, meshing.EncodeVertices(nil, mesh.Vertices)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := d.Upload(ib, 0, idx); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	node, _ := s.CreateOrUpdate(name, pos)
	err = s.AttachMesh(node, graphics.MeshBinding{
		VertexBuffer: vb,
		IndexBuffer:  ib,
		VertexStride: meshing.VertexSize,
		VertexCount:  len(mesh.Vertices),
		IndexCount:   len(mesh.Indices),
		IndexFormat:  format,
		Topology:     graphics.TriangleList,
	})
	if err != nil {
		t.Fatalf("AttachMesh: %v", err)
	}
}

func singleBlock() meshing.Mesh {
	c := &world.Chunk{}
	_ = c.SetBlock(0, 0, 0, world.BlockTypeSolid)
	return meshing.BuildChunkMesh(c)
}

func TestDocument(t *testing.T) {
	s := NewScene(NewDevice())
	attach(t, s, "chunk_1_0_0", mgl32.Vec3{16, 0, 0}, singleBlock())
	attach(t, s, "chunk_0_0_0", mgl32.Vec3{}, singleBlock())
	// nodes without geometry are skipped
	_, _ = s.CreateOrUpdate("chunk_2_0_0", mgl32.Vec3{32, 0, 0})

	doc, err := s.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Meshes) != 2 {
		t.Fatalf("document: got %d nodes, %d meshes, want 2/2", len(doc.Nodes), len(doc.Meshes))
	}
	if doc.Nodes[1].Name != "chunk_1_0_0" || doc.Nodes[1].Translation[0] != 16 {
		t.Fatalf("node 1: got %s at %v", doc.Nodes[1].Name, doc.Nodes[1].Translation)
	}
	if len(doc.Scenes[0].Nodes) != 2 {
		t.Fatalf("scene roots: got %d, want 2", len(doc.Scenes[0].Nodes))
	}

	prim := doc.Meshes[0].Primitives[0]
	acc := doc.Accessors[*prim.Indices]
	if int(acc.Count) != 36 {
		t.Fatalf("index accessor count: got %d, want 36", acc.Count)
	}
	if acc.ComponentType != gltf.ComponentUshort {
		t.Fatalf("index component type: got %v, want ushort", acc.ComponentType)
	}
	if _, ok := prim.Attributes["COLOR_0"]; !ok {
		t.Fatalf("primitive has no vertex colors")
	}
}

func TestSave(t *testing.T) {
	s := NewScene(NewDevice())
	attach(t, s, "chunk_0_0_0", mgl32.Vec3{}, singleBlock())

	path := filepath.Join(t.TempDir(), "world.gltf")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("saved file: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(doc.Meshes) != 1 {
		t.Fatalf("meshes: got %d, want 1", len(doc.Meshes))
	}
}

func TestSaveBinary(t *testing.T) {
	s := NewScene(NewDevice())
	attach(t, s, "chunk_0_0_0", mgl32.Vec3{}, singleBlock())

	path := filepath.Join(t.TempDir(), "world.glb")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(doc.Nodes) != 1 {
		t.Fatalf("nodes: got %d, want 1", len(doc.Nodes))
	}
}
