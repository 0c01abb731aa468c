package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshcut/internal/cutter"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// loadModel uploads a mesh primitive to the GPU and makes it the live mesh
func (app *App) loadModel(p cutter.Primitive) {
	app.unloadModel()

	m := p.Mesh
	app.Model.id = p.ID
	app.Model.mesh = m
	app.Model.triangles = m.Triangles()

	bbox := m.BoundingBox()
	app.Model.bounds = rl.BoundingBox{Min: toRL(bbox.Min), Max: toRL(bbox.Max)}
	size := bbox.Size()
	app.Model.size = float32(math.Max(size.X, math.Max(size.Y, size.Z)))

	// Frame the first mesh, later meshes keep the view
	if app.Camera.defaultDist == 0 && !bbox.IsEmpty() {
		app.fitCamera(bbox)
	}

	if !m.IsEmpty() {
		app.Model.gpu = meshToRaylib(m)
		app.Model.uploaded = true
	}
}

// unloadModel frees the GPU copy of the live mesh
func (app *App) unloadModel() {
	if app.Model.uploaded {
		rl.UnloadMesh(&app.Model.gpu)
	}
	app.Model = ModelData{material: app.Model.material, size: app.Model.size}
}

// meshToRaylib converts a mesh to a Raylib mesh with baked lighting
func meshToRaylib(m *mesh.Mesh) rl.Mesh {
	triangleCount := m.TriangleCount()
	vertexCount := triangleCount * 3

	out := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for i := range m.Faces {
		triangle := m.Triangle(i)
		normal := triangle.Normal

		// Min 30% ambient, max 100% diffuse
		lightIntensity := math.Max(0.3, -normal.Dot(lightDir))
		baseColor := 200.0
		r := uint8(baseColor * lightIntensity * 0.5)
		g := uint8(baseColor * lightIntensity * 0.6)
		b := uint8(baseColor * lightIntensity)

		for k, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			texcoords[idx*2+0] = float32(k & 1)
			texcoords[idx*2+1] = float32(k >> 1)
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = b
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		out.Vertices = &vertices[0]
		out.Normals = &normals[0]
		out.Texcoords = &texcoords[0]
		out.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&out, false)
	return out
}

// drawScene draws the mesh and the cutter overlay in 3D mode
func (app *App) drawScene() {
	rl.BeginMode3D(app.Camera.camera)

	if app.Model.uploaded {
		if app.View.showFilled {
			rl.DrawMesh(app.Model.gpu, app.Model.material, rl.MatrixIdentity())
		}
		if app.View.showWireframe {
			app.drawWireframe()
		}
	} else if m := app.Model.mesh; m != nil && m.IsPointSet() {
		pointColor := rl.NewColor(200, 200, 200, 255)
		for _, v := range m.Vertices {
			rl.DrawPoint3D(toRL(v), pointColor)
		}
	}
	app.drawOverlay()

	rl.EndMode3D()
}

// drawOverlay draws the drawn points, the curve and the surface trace
func (app *App) drawOverlay() {
	scale := app.Model.size
	if scale == 0 {
		scale = 1
	}
	width := float32(app.cfg.LineWidth) / 4
	pointRadius := scale * 0.004 * width
	lineRadius := scale * 0.0015 * width

	for _, p := range app.Overlay.primitives {
		switch p.Kind {
		case cutter.ControlPoints:
			for _, v := range p.Points {
				rl.DrawSphere(toRL(v), pointRadius, app.colors.point)
			}
		case cutter.CurveLine:
			for i := 0; i+1 < len(p.Points); i++ {
				rl.DrawCylinderEx(toRL(p.Points[i]), toRL(p.Points[i+1]), lineRadius, lineRadius, 6, app.colors.line)
			}
		case cutter.ClosingSegment:
			if len(p.Points) == 2 {
				rl.DrawLine3D(toRL(p.Points[0]), toRL(p.Points[1]), app.colors.line)
			}
		case cutter.SurfaceTrace:
			for _, v := range p.Points {
				rl.DrawSphere(toRL(v), pointRadius*0.6, app.colors.line)
			}
		}
	}
}

// drawWireframe draws every mesh edge once
func (app *App) drawWireframe() {
	wireframeColor := rl.NewColor(100, 100, 100, 200)
	m := app.Model.mesh
	drawn := make(map[[2]int]bool, len(m.Faces)*3/2)

	for _, f := range m.Faces {
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			if drawn[[2]int{a, b}] {
				continue
			}
			drawn[[2]int{a, b}] = true
			rl.DrawLine3D(toRL(m.Vertices[a]), toRL(m.Vertices[b]), wireframeColor)
		}
	}
}
