package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chenzhekl/goply"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/unixpickle/model3d/model3d"
)

// plyColor is the vertex color written to PLY files
var plyColor = [3]uint8{200, 200, 200}

// loadPLY reads an ASCII PLY file. Polygons are fanned into triangles; a
// file without a face element loads as a point set.
func loadPLY(filename string) (m *mesh.Mesh, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// goply panics on malformed headers
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("malformed PLY: %v", r)
		}
	}()

	ply := goply.New(bufio.NewReader(file))
	vertices := ply.Elements("vertex")
	faces := ply.Elements("face")

	m = mesh.New("")
	m.Info["format"] = "ply"
	for i, v := range vertices {
		x, okX := plyFloat(v["x"])
		y, okY := plyFloat(v["y"])
		z, okZ := plyFloat(v["z"])
		if !okX || !okY || !okZ {
			return nil, fmt.Errorf("vertex %d has no numeric x, y, z", i)
		}
		m.AddVertex(geometry.NewVector3(x, y, z))
	}

	for i, face := range faces {
		list, ok := face["vertex_indices"]
		if !ok {
			list = face["vertex_index"]
		}
		items, ok := list.([]interface{})
		if !ok {
			return nil, fmt.Errorf("face %d has no vertex index list", i)
		}
		idx := make([]int, len(items))
		for k, item := range items {
			f, ok := plyFloat(item)
			if !ok {
				return nil, fmt.Errorf("face %d has a non-numeric index", i)
			}
			idx[k] = int(f)
		}
		addPolygon(m, idx)
	}
	return m, nil
}

// plyFloat converts any numeric PLY property value to float64
func plyFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint8:
		return float64(n), true
	case int16:
		return float64(n), true
	case uint16:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// writePLY writes an ASCII PLY file with a flat vertex color
func writePLY(m *mesh.Mesh, w io.Writer) error {
	if m.IsPointSet() {
		return writePLYPoints(m, w)
	}
	encoded := model3d.NewMeshTriangles(toModel3D(m)).EncodePLY(func(model3d.Coord3D) [3]uint8 {
		return plyColor
	})
	_, err := w.Write(encoded)
	return err
}

// addPolygon appends a polygon as a triangle fan, skipping collapsed
// triangles
func addPolygon(m *mesh.Mesh, idx []int) {
	for k := 1; k+1 < len(idx); k++ {
		a, b, c := idx[0], idx[k], idx[k+1]
		if a == b || b == c || c == a {
			continue
		}
		m.AddFace(a, b, c)
	}
}

// writePLYPoints writes the vertex element only. model3d encodes triangles,
// so it has nothing to say about a point set.
func writePLYPoints(m *mesh.Mesh, w io.Writer) error {
	buf := bufio.NewWriter(w)
	fmt.Fprintf(buf, "ply\nformat ascii 1.0\nelement vertex %d\n", len(m.Vertices))
	fmt.Fprint(buf, "property float x\nproperty float y\nproperty float z\nend_header\n")
	for _, v := range m.Vertices {
		fmt.Fprintf(buf, "%s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	return buf.Flush()
}
