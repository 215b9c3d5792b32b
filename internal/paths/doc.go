// Package paths resolves the directories meshkit reads from and writes to.
//
// It wraps github.com/adrg/xdg for the tool's own config and data homes and
// implements the host tool's project-relative path convention: a path that
// starts with "//" is relative to the project directory (the directory that
// holds the scene manifest), exactly like image file paths and export
// destinations stored by the 3D host.
//
//	paths.Resolve("/work/props", "//textures/wood.png") // /work/props/textures/wood.png
//	paths.Resolve("/work/props", "textures/wood.png")   // /work/props/textures/wood.png
//	paths.Resolve("/work/props", "/abs/wood.png")       // /abs/wood.png
package paths
