package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshcut/pkg/mesh"
)

// loadOBJ reads the geometry of a Wavefront OBJ file. Only v, f and o
// records are used; texture and normal references in faces are ignored.
func loadOBJ(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	m := mesh.New("")
	m.Info["format"] = "obj"
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o":
			if len(fields) > 1 && m.Name == "" {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs three coordinates", line)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			m.AddVertex(v)

		case "f":
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := objIndex(ref, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				idx = append(idx, i)
			}
			addPolygon(m, idx)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return m, nil
}

// objIndex resolves a face reference such as "7", "7/1/3" or "-1" to a
// zero-based vertex index
func objIndex(ref string, count int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	i, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", ref)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("invalid face index %q", ref)
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("face index %q out of range", ref)
	}
	return i, nil
}

func writeOBJ(m *mesh.Mesh, w io.Writer) error {
	buf := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(buf, "o %s\n", m.Name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(buf, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	for _, f := range m.Faces {
		fmt.Fprintf(buf, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return buf.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
