package opengl

import (
	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/graphics/renderer"
	"github.com/profan/dear-xenko/internal/meshing"
	"github.com/profan/dear-xenko/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type node struct {
	name     string
	position mgl32.Vec3
	binding  graphics.MeshBinding
	vao      uint32
	hasMesh  bool
}

// Scene keeps one vertex array object per node and draws every node with a
// mesh. It is both the graphics.Scene the chunk renderer writes to and the
// renderable that puts the result on screen.
type Scene struct {
	device *Device
	exec   Executor
	shader *Shader

	nodes  []*node
	byName map[string]graphics.NodeHandle

	drawCalls int
}

func NewScene(device *Device, opts ...Option) *Scene {
	o := buildOptions(opts)
	return &Scene{
		device: device,
		exec:   o.exec,
		byName: make(map[string]graphics.NodeHandle),
	}
}

func (s *Scene) CreateOrUpdate(name string, position mgl32.Vec3) (graphics.NodeHandle, error) {
	if h, ok := s.byName[name]; ok {
		s.nodes[h-1].position = position
		return h, nil
	}
	s.nodes = append(s.nodes, &node{name: name, position: position})
	h := graphics.NodeHandle(len(s.nodes))
	s.byName[name] = h
	return h, nil
}

// AttachMesh points the node's vertex array at the binding's buffers. The
// array is rebuilt on every call because a grown buffer has a new name.
func (s *Scene) AttachMesh(h graphics.NodeHandle, binding graphics.MeshBinding) error {
	if h == 0 || int(h) > len(s.nodes) {
		return errors.Wrapf(graphics.ErrUnknownNode, "node %d", h)
	}
	if binding.Topology != graphics.TriangleList {
		return errors.Errorf("unsupported topology %d", binding.Topology)
	}
	if _, ok := s.device.Size(binding.VertexBuffer); !ok {
		return errors.Wrap(graphics.ErrUnknownBuffer, "attach vertex buffer")
	}
	if _, ok := s.device.Size(binding.IndexBuffer); !ok {
		return errors.Wrap(graphics.ErrUnknownBuffer, "attach index buffer")
	}

	n := s.nodes[h-1]
	s.exec(func() {
		if n.vao == 0 {
			gl.GenVertexArrays(1, &n.vao)
		}
		stride := int32(meshing.VertexSize)
		gl.BindVertexArray(n.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, uint32(binding.VertexBuffer))
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, meshing.PositionOffset)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, meshing.NormalOffset)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, meshing.ColorOffset)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(binding.IndexBuffer))
		gl.BindVertexArray(0)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	})
	n.binding = binding
	n.hasMesh = true
	return nil
}

// Init compiles the chunk shader and sets fixed pipeline state.
func (s *Scene) Init() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	shader, err := NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return errors.Wrap(err, "chunk shader")
	}
	s.shader = shader
	return nil
}

func (s *Scene) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderChunks")()

	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if ctx.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	s.shader.Use()
	s.shader.SetMat4("view", ctx.View)
	s.shader.SetMat4("proj", ctx.Proj)

	s.drawCalls = 0
	for _, n := range s.nodes {
		if !n.hasMesh || n.binding.IndexCount == 0 {
			continue
		}
		s.shader.SetMat4("model", mgl32.Translate3D(n.position.X(), n.position.Y(), n.position.Z()))
		gl.BindVertexArray(n.vao)
		gl.DrawElements(gl.TRIANGLES, int32(n.binding.IndexCount), indexType(n.binding.IndexFormat), nil)
		s.drawCalls++
	}
	gl.BindVertexArray(0)
	profiling.Add("renderer.drawCalls", int64(s.drawCalls))
}

func (s *Scene) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Dispose deletes every vertex array and the shader. Buffers belong to the
// device and are released by their owner.
func (s *Scene) Dispose() {
	for _, n := range s.nodes {
		if n.vao != 0 {
			gl.DeleteVertexArrays(1, &n.vao)
			n.vao = 0
		}
	}
	if s.shader != nil {
		s.shader.Delete()
	}
}

// DrawCalls returns the number of nodes drawn in the last frame.
func (s *Scene) DrawCalls() int {
	return s.drawCalls
}

func indexType(f meshing.IndexFormat) uint32 {
	if f == meshing.IndexUint32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}
