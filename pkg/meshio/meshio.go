// Package meshio loads and saves meshes in the formats the editor supports
package meshio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshcut/pkg/mesh"
)

// ErrUnsupportedFormat is returned for file extensions without a reader or writer
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Load reads a mesh, choosing the reader by file extension
func Load(filename string) (*mesh.Mesh, error) {
	var (
		m   *mesh.Mesh
		err error
	)

	switch ext(filename) {
	case ".stl":
		m, err = loadSTL(filename)
	case ".ply":
		m, err = loadPLY(filename)
	case ".obj":
		m, err = loadOBJ(filename)
	case ".vtk":
		m, err = loadVTK(filename)
	default:
		return nil, fmt.Errorf("load %s: %w", filename, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}

	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	m.SourceFile = filename
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return m, nil
}

// Save writes a mesh, choosing the writer by file extension
func Save(m *mesh.Mesh, filename string) error {
	var write func(*mesh.Mesh, io.Writer) error

	switch ext(filename) {
	case ".stl":
		write = writeSTL
	case ".ply":
		write = writePLY
	case ".obj":
		write = writeOBJ
	case ".vtk":
		write = writeVTK
	default:
		return fmt.Errorf("save %s: %w", filename, ErrUnsupportedFormat)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(m, file); err != nil {
		file.Close()
		os.Remove(filename)
		return fmt.Errorf("save %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

// Supported reports whether a file name has an extension Load understands
func Supported(filename string) bool {
	switch ext(filename) {
	case ".stl", ".ply", ".obj", ".vtk":
		return true
	}
	return false
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
