package scene

import (
	"fmt"
	"strings"
)

// Kind is the object type as reported by the host.
type Kind string

const (
	KindMesh     Kind = "mesh"
	KindArmature Kind = "armature"
	KindOther    Kind = "other"
)

// ParseKind normalises a host type string. Anything that is not a mesh or
// an armature is KindOther.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mesh":
		return KindMesh
	case "armature":
		return KindArmature
	default:
		return KindOther
	}
}

// NodeImageTexture is the host node type of an image-texture node.
const NodeImageTexture = "TEX_IMAGE"

// Vec3 is an XYZ triple.
type Vec3 [3]float64

// Identity is the applied-scale value.
var Identity = Vec3{1, 1, 1}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}

// Candidate is a scene object under consideration for export.
type Candidate interface {
	Name() string
	Kind() Kind
	Scale() Vec3
	Hidden() bool
	// MeshName is the name of the object's mesh data; empty for non-meshes.
	MeshName() string
	// MaterialSlots returns one entry per slot in order. Empty slots are nil.
	MaterialSlots() []Material
}

// Material is a material assigned to a slot.
type Material interface {
	Name() string
	// UsesNodes reports whether the material is defined by a shader graph.
	UsesNodes() bool
	Nodes() []Node
}

// Node is a shader-graph node.
type Node interface {
	Type() string
	// IsImageTexture reports whether the node samples an image.
	IsImageTexture() bool
	// Image returns the referenced image, or nil if none is assigned.
	Image() Image
}

// Image is an image datablock referenced by an image-texture node.
type Image interface {
	Name() string
	// Packed reports whether the pixels are embedded in the project file.
	Packed() bool
	// FilePath is the stored path, possibly "//"-relative or empty.
	FilePath() string
}
