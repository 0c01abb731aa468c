package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/meshio"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display general information about a mesh file",
	Long:  "Show vertex and face counts, connected regions, surface area, bounds and point data of a mesh.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := meshio.Load(args[0])
		if err != nil {
			return err
		}
		printInfo(cmd.OutOrStdout(), m)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(w io.Writer, m *mesh.Mesh) {
	fmt.Fprintln(w, "Mesh Information")
	fmt.Fprintln(w, "================")
	if m.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", m.Name)
	}
	fmt.Fprintf(w, "File: %s\n\n", m.SourceFile)

	fmt.Fprintln(w, "Statistics:")
	fmt.Fprintf(w, "  Vertices: %d\n", m.VertexCount())
	fmt.Fprintf(w, "  Faces: %d\n", m.TriangleCount())
	fmt.Fprintf(w, "  Regions: %d\n", m.RegionCount())
	fmt.Fprintf(w, "  Surface Area: %.6f square units\n\n", m.SurfaceArea())

	bbox := m.BoundingBox()
	size := bbox.Size()
	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: (%.6f, %.6f, %.6f)\n", bbox.Min.X, bbox.Min.Y, bbox.Min.Z)
	fmt.Fprintf(w, "  Max: (%.6f, %.6f, %.6f)\n", bbox.Max.X, bbox.Max.Y, bbox.Max.Z)
	fmt.Fprintf(w, "  Size: %.6f x %.6f x %.6f\n", size.X, size.Y, size.Z)
	fmt.Fprintf(w, "  Diagonal: %.6f units\n", m.DiagonalSize())

	if len(m.Scalars) > 0 {
		fmt.Fprintln(w, "\nPoint Data:")
		for _, name := range sortedKeys(m.Scalars) {
			fmt.Fprintf(w, "  %s (%d values)\n", name, len(m.Scalars[name]))
		}
	}
	if len(m.Info) > 0 {
		fmt.Fprintln(w, "\nMetadata:")
		for _, key := range sortedKeys(m.Info) {
			fmt.Fprintf(w, "  %s: %s\n", key, m.Info[key])
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
