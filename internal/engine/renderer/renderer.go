// Package renderer draws an assembled avatar scene graph with OpenGL.
package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/playforge/avatarview/internal/engine/model"
	"github.com/playforge/avatarview/internal/engine/shader"
	"github.com/playforge/avatarview/internal/logger"
	"github.com/playforge/avatarview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// Renderer uploads mesh descriptors lazily and draws the scene graph with
// render-order sorting and per-material depth bias.
type Renderer struct {
	config  Config
	program uint32

	uProj       int32
	uView       int32
	uModel      int32
	uColor      int32
	uUseTexture int32

	meshes map[*model.Mesh]*gpuMesh
}

// gpuMesh is the GPU-side state for one mesh descriptor.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	tex        uint32
	indexCount int32
}

// drawItem is one mesh scheduled for the current frame.
type drawItem struct {
	mesh  *model.Mesh
	world math.Mat4
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[*model.Mesh]*gpuMesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program
	r.uProj = shader.GetUniform(program, "uProj")
	r.uView = shader.GetUniform(program, "uView")
	r.uModel = shader.GetUniform(program, "uModel")
	r.uColor = shader.GetUniform(program, "uColor")
	r.uUseTexture = shader.GetUniform(program, "uUseTexture")

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	for _, gm := range r.meshes {
		r.deleteMesh(gm)
	}
	r.meshes = nil
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Aspect returns the current viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// DrawScene draws every mesh in the scene. Meshes are sorted by their
// material render order so forced facial layers composite correctly; equal
// orders keep scene-graph order.
func (r *Renderer) DrawScene(scene *model.Scene, view, proj math.Mat4) {
	if scene == nil {
		return
	}

	var items []drawItem
	var walk func(n *model.Node, parent math.Mat4)
	walk = func(n *model.Node, parent math.Mat4) {
		world := parent.Mul(n.LocalMatrix())
		if n.Mesh != nil && len(n.Mesh.Indices) > 0 {
			items = append(items, drawItem{mesh: n.Mesh, world: world})
		}
		for _, c := range n.Children {
			walk(c, world)
		}
	}
	walk(scene.Root, math.Identity())

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].mesh.Material.RenderOrder < items[j].mesh.Material.RenderOrder
	})

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProj, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.uView, 1, false, view.Ptr())

	for i := range items {
		r.drawItem(&items[i])
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.Enable(gl.CULL_FACE)
}

// drawItem draws one mesh with its material state.
func (r *Renderer) drawItem(item *drawItem) {
	gm := r.uploadMesh(item.mesh)
	mat := &item.mesh.Material

	gl.UniformMatrix4fv(r.uModel, 1, false, item.world.Ptr())
	gl.Uniform3f(r.uColor, mat.Color[0], mat.Color[1], mat.Color[2])

	if gm.tex != 0 {
		gl.Uniform1i(r.uUseTexture, 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, gm.tex)
	} else {
		gl.Uniform1i(r.uUseTexture, 0)
	}

	if mat.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}

	// ZBias pulls the mesh toward the camera in depth-buffer units.
	if mat.ZBias != 0 {
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(0, mat.ZBias*-1000)
	} else {
		gl.Disable(gl.POLYGON_OFFSET_FILL)
	}

	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// uploadMesh lazily creates the VAO/VBO/EBO and texture for a mesh.
func (r *Renderer) uploadMesh(mesh *model.Mesh) *gpuMesh {
	if gm, ok := r.meshes[mesh]; ok {
		return gm
	}

	gm := &gpuMesh{indexCount: int32(len(mesh.Indices))}

	// Interleave position, normal, texcoord.
	data := make([]float32, 0, len(mesh.Vertices)*8)
	for _, v := range mesh.Vertices {
		data = append(data,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)

	if mat := &mesh.Material; mat.Image != nil {
		gm.tex = uploadTexture(mat.Image.Pix, mat.Image.Bounds().Dx(), mat.Image.Bounds().Dy())
	}

	r.meshes[mesh] = gm
	return gm
}

// uploadTexture uploads straight-alpha RGBA pixels with nearest filtering;
// avatar atlases are low-resolution pixel art.
func uploadTexture(pixels []byte, width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (r *Renderer) deleteMesh(gm *gpuMesh) {
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
	}
	if gm.tex != 0 {
		gl.DeleteTextures(1, &gm.tex)
	}
}

// InvalidateScene drops GPU resources for meshes no longer in the scene.
// Call after a reload replaces the scene graph.
func (r *Renderer) InvalidateScene() {
	for mesh, gm := range r.meshes {
		r.deleteMesh(gm)
		delete(r.meshes, mesh)
	}
}

const vertexShaderSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;

uniform mat4 uProj;
uniform mat4 uView;
uniform mat4 uModel;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
	vTexCoord = aTexCoord;
}
`

const fragmentShaderSrc = `
#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform vec3 uColor;
uniform int uUseTexture;
uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
	vec3 lightDir = normalize(vec3(0.4, 0.8, 0.6));
	float diffuse = max(dot(normalize(vNormal), lightDir), 0.0) * 0.5 + 0.5;

	vec4 base = vec4(uColor, 1.0);
	if (uUseTexture == 1) {
		base = texture(uTexture, vTexCoord) * vec4(uColor, 1.0);
	}
	if (base.a < 0.004) {
		discard;
	}
	fragColor = vec4(base.rgb * diffuse, base.a);
}
`
