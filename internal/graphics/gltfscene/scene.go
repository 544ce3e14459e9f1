package gltfscene

import (
	"sort"

	"github.com/profan/dear-xenko/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Node is a named, positioned mesh slot.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Binding  graphics.MeshBinding
	HasMesh  bool
}

// Scene records node placement and mesh bindings in memory.
type Scene struct {
	device *Device
	nodes  []*Node
	byName map[string]graphics.NodeHandle
}

// NewScene creates a scene whose meshes live in device.
func NewScene(device *Device) *Scene {
	return &Scene{
		device: device,
		byName: make(map[string]graphics.NodeHandle),
	}
}

func (s *Scene) CreateOrUpdate(name string, position mgl32.Vec3) (graphics.NodeHandle, error) {
	if h, ok := s.byName[name]; ok {
		s.nodes[h-1].Position = position
		return h, nil
	}
	s.nodes = append(s.nodes, &Node{Name: name, Position: position})
	h := graphics.NodeHandle(len(s.nodes))
	s.byName[name] = h
	return h, nil
}

func (s *Scene) AttachMesh(node graphics.NodeHandle, binding graphics.MeshBinding) error {
	n, err := s.Node(node)
	if err != nil {
		return err
	}
	if binding.Topology != graphics.TriangleList {
		return errors.Errorf("unsupported topology %d", binding.Topology)
	}
	if _, err := s.device.Bytes(binding.VertexBuffer); err != nil {
		return errors.Wrap(err, "attach vertex buffer")
	}
	if _, err := s.device.Bytes(binding.IndexBuffer); err != nil {
		return errors.Wrap(err, "attach index buffer")
	}
	n.Binding = binding
	n.HasMesh = true
	return nil
}

// Node returns the node behind a handle.
func (s *Scene) Node(h graphics.NodeHandle) (*Node, error) {
	if h == 0 || int(h) > len(s.nodes) {
		return nil, errors.Wrapf(graphics.ErrUnknownNode, "node %d", h)
	}
	return s.nodes[h-1], nil
}

// Lookup finds a node by name.
func (s *Scene) Lookup(name string) (*Node, bool) {
	h, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.nodes[h-1], true
}

// Nodes returns every node sorted by name.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
