package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/unixpickle/model3d/model3d"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// loadSTL reads an ASCII or binary STL file and welds shared corners
func loadSTL(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	header := make([]byte, stlHeaderSize+4)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	// Binary files may start with "solid" too, so trust the size first
	if n == len(header) {
		count := binary.LittleEndian.Uint32(header[stlHeaderSize:])
		if int64(stlHeaderSize+4)+int64(count)*stlTriangleSize == info.Size() {
			return parseBinarySTL(bufio.NewReader(file), info.Size())
		}
	}
	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		return parseASCIISTL(file)
	}
	return parseBinarySTL(bufio.NewReader(file), info.Size())
}

func parseASCIISTL(reader io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(reader)
	var (
		name      string
		triangles []geometry.Triangle
		normal    geometry.Vector3
		vertices  []geometry.Vector3
	)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVector(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("invalid facet normal: %w", err)
				}
				normal = v
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("invalid vertex line %q", scanner.Text())
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("invalid vertex: %w", err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) == 3 {
				triangles = append(triangles, geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	m := mesh.FromTriangles(name, triangles)
	m.Info["format"] = "stl-ascii"
	return m, nil
}

// parseBinarySTL reads a binary STL of the given total size. The declared
// triangle count must account for every byte.
func parseBinarySTL(reader io.Reader, size int64) (*mesh.Mesh, error) {
	header := make([]byte, stlHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}
	if expected := int64(stlHeaderSize+4) + int64(count)*stlTriangleSize; expected != size {
		return nil, fmt.Errorf("binary STL declares %d triangles (%d bytes) but file has %d bytes", count, expected, size)
	}

	// normal, three vertices and the attribute byte count
	var record struct {
		Normal, V1, V2, V3 [3]float32
		Attribute          uint16
	}
	triangles := make([]geometry.Triangle, 0, count)
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		triangles = append(triangles, geometry.NewTriangle(
			vec32(record.Normal), vec32(record.V1), vec32(record.V2), vec32(record.V3),
		))
	}

	m := mesh.FromTriangles(name, triangles)
	m.Info["format"] = "stl-binary"
	return m, nil
}

// writeSTL writes a binary STL file
func writeSTL(m *mesh.Mesh, w io.Writer) error {
	if m.IsPointSet() {
		return fmt.Errorf("STL cannot hold a point set: %w", ErrUnsupportedFormat)
	}
	buf := bufio.NewWriter(w)
	if err := model3d.WriteSTL(buf, toModel3D(m)); err != nil {
		return err
	}
	return buf.Flush()
}

func toModel3D(m *mesh.Mesh) []*model3d.Triangle {
	coord := func(v geometry.Vector3) model3d.Coord3D {
		return model3d.XYZ(v.X, v.Y, v.Z)
	}
	out := make([]*model3d.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		out[i] = &model3d.Triangle{
			coord(m.Vertices[f[0]]),
			coord(m.Vertices[f[1]]),
			coord(m.Vertices[f[2]]),
		}
	}
	return out
}

func vec32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
