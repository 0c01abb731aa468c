package cutter

import (
	"path/filepath"
	"strings"
)

// DefaultFilename is used when the mesh has no source file
const DefaultFilename = "mesh_edited.vtk"

const editedTag = "_edited"

// EditedFilename derives the save name from a source file: the base name
// with every _edited tag removed and exactly one appended before the
// extension. scan.ply and scan_edited.ply both become scan_edited.ply.
func EditedFilename(source string) string {
	if source == "" {
		return DefaultFilename
	}
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := strings.ReplaceAll(strings.TrimSuffix(base, ext), editedTag, "")
	return stem + editedTag + ext
}
