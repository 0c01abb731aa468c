package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// writeVTK writes a legacy ASCII VTK POLYDATA file including every scalar
// field as point data
func writeVTK(m *mesh.Mesh, w io.Writer) error {
	buf := bufio.NewWriter(w)
	title := m.Name
	if title == "" {
		title = "mesh"
	}

	fmt.Fprintln(buf, "# vtk DataFile Version 3.0")
	fmt.Fprintln(buf, strings.ReplaceAll(title, "\n", " "))
	fmt.Fprintln(buf, "ASCII")
	fmt.Fprintln(buf, "DATASET POLYDATA")

	fmt.Fprintf(buf, "POINTS %d double\n", len(m.Vertices))
	for _, v := range m.Vertices {
		fmt.Fprintf(buf, "%s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}

	fmt.Fprintf(buf, "POLYGONS %d %d\n", len(m.Faces), 4*len(m.Faces))
	for _, f := range m.Faces {
		fmt.Fprintf(buf, "3 %d %d %d\n", f[0], f[1], f[2])
	}

	if len(m.Scalars) > 0 {
		names := make([]string, 0, len(m.Scalars))
		for name := range m.Scalars {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(buf, "POINT_DATA %d\n", len(m.Vertices))
		for _, name := range names {
			fmt.Fprintf(buf, "SCALARS %s double 1\n", strings.ReplaceAll(name, " ", "_"))
			fmt.Fprintln(buf, "LOOKUP_TABLE default")
			for _, value := range m.Scalars[name] {
				fmt.Fprintln(buf, formatFloat(value))
			}
		}
	}
	return buf.Flush()
}

// loadVTK reads a legacy ASCII VTK POLYDATA file. Polygons are fanned into
// triangles, single component point scalars are kept, cell data is ignored.
func loadVTK(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var header [4]string
	for i := range header {
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("failed to read VTK header: %w", err)
		}
		header[i] = strings.TrimSpace(line)
	}
	if !strings.HasPrefix(header[0], "# vtk DataFile") {
		return nil, fmt.Errorf("not a legacy VTK file")
	}
	if !strings.EqualFold(header[2], "ASCII") {
		return nil, fmt.Errorf("%s VTK: %w", header[2], ErrUnsupportedFormat)
	}
	if !strings.EqualFold(header[3], "DATASET POLYDATA") {
		return nil, fmt.Errorf("%q: %w", header[3], ErrUnsupportedFormat)
	}

	t := &tokens{scanner: bufio.NewScanner(reader)}
	t.scanner.Split(bufio.ScanWords)

	m := mesh.New(header[1])
	m.Info["format"] = "vtk"
	for t.next() {
		switch strings.ToUpper(t.text()) {
		case "POINTS":
			n := t.count("point count", -1)
			t.skip(1)
			for i := 0; i < n && t.err == nil; i++ {
				m.AddVertex(geometry.NewVector3(t.float(), t.float(), t.float()))
			}

		case "POLYGONS":
			n := t.count("polygon count", -1)
			t.skip(1)
			for i := 0; i < n && t.err == nil; i++ {
				// A polygon never repeats a corner, so it has at most one index per point
				idx := make([]int, t.count("polygon size", len(m.Vertices)))
				for k := range idx {
					idx[k] = t.int()
				}
				addPolygon(m, idx)
			}

		case "VERTICES", "LINES", "TRIANGLE_STRIPS":
			n := t.count("cell count", -1)
			t.skip(1)
			for i := 0; i < n && t.err == nil; i++ {
				t.skip(t.count("cell size", -1))
			}

		case "POINT_DATA":
			t.skip(1)

		case "SCALARS":
			name := t.word()
			t.skip(1)
			if err := readScalars(t, m, name); err != nil {
				return nil, err
			}

		case "CELL_DATA":
			return m, t.err

		default:
			return nil, fmt.Errorf("unsupported VTK section %q", t.text())
		}
		if t.err != nil {
			return nil, fmt.Errorf("error reading VTK: %w", t.err)
		}
	}
	if t.err != nil {
		return nil, fmt.Errorf("error reading VTK: %w", t.err)
	}
	return m, nil
}

func readScalars(t *tokens, m *mesh.Mesh, name string) error {
	// optional component count before LOOKUP_TABLE
	components := 1
	if !t.next() {
		return fmt.Errorf("scalars %q: missing lookup table", name)
	}
	if !strings.EqualFold(t.text(), "LOOKUP_TABLE") {
		c, err := strconv.Atoi(t.text())
		if err != nil {
			return fmt.Errorf("scalars %q: invalid component count %q", name, t.text())
		}
		components = c
		if !t.next() || !strings.EqualFold(t.text(), "LOOKUP_TABLE") {
			return fmt.Errorf("scalars %q: missing lookup table", name)
		}
	}
	t.skip(1)

	values := make([]float64, len(m.Vertices))
	for i := range values {
		values[i] = t.float()
		t.skip(components - 1)
	}
	if t.err != nil {
		return fmt.Errorf("scalars %q: %w", name, t.err)
	}
	if components != 1 {
		return nil
	}
	return m.SetScalars(name, values)
}

// tokens reads whitespace separated words and keeps the first error
type tokens struct {
	scanner *bufio.Scanner
	err     error
}

func (t *tokens) next() bool {
	if t.err != nil {
		return false
	}
	if !t.scanner.Scan() {
		t.err = t.scanner.Err()
		return false
	}
	return true
}

func (t *tokens) text() string {
	return t.scanner.Text()
}

func (t *tokens) word() string {
	if !t.next() {
		t.fail()
		return ""
	}
	return t.text()
}

func (t *tokens) skip(n int) {
	for i := 0; i < n; i++ {
		t.word()
	}
}

func (t *tokens) int() int {
	s := t.word()
	if t.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		t.err = fmt.Errorf("invalid integer %q", s)
	}
	return v
}

// count reads a non-negative count, at most max unless max is negative
func (t *tokens) count(what string, max int) int {
	v := t.int()
	if t.err != nil {
		return 0
	}
	if v < 0 || (max >= 0 && v > max) {
		t.err = fmt.Errorf("invalid %s %d", what, v)
		return 0
	}
	return v
}

func (t *tokens) float() float64 {
	s := t.word()
	if t.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.err = fmt.Errorf("invalid number %q", s)
	}
	return v
}

func (t *tokens) fail() {
	if t.err == nil {
		t.err = io.ErrUnexpectedEOF
	}
}
