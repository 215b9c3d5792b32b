package scene

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/meshkit/internal/paths"
)

// Document is a scene manifest: the host scene flattened into plain data.
type Document struct {
	// Source is the host project file the manifest was exported from.
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	// ProjectDir overrides the base directory for "//" paths.
	ProjectDir string `json:"project_dir,omitempty" yaml:"project_dir,omitempty" toml:"project_dir,omitempty"`
	// Active names the active object (the armature for bone renames).
	Active string `json:"active,omitempty" yaml:"active,omitempty" toml:"active,omitempty"`

	Objects   []*Object      `json:"objects" yaml:"objects" toml:"objects"`
	Materials []*MaterialDef `json:"materials,omitempty" yaml:"materials,omitempty" toml:"materials,omitempty"`
	Images    []*ImageDef    `json:"images,omitempty" yaml:"images,omitempty" toml:"images,omitempty"`
	Textures  []*TextureDef  `json:"textures,omitempty" yaml:"textures,omitempty" toml:"textures,omitempty"`

	path   string
	format Format
}

// Object is a scene object.
type Object struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Type     string `json:"type" yaml:"type" toml:"type"`
	Hidden   bool   `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty" toml:"selected,omitempty"`
	// Scale defaults to (1, 1, 1) when omitted.
	Scale *Vec3 `json:"scale,omitempty" yaml:"scale,omitempty,flow" toml:"scale,omitempty"`
	// Mesh is the mesh datablock name (meshes only).
	Mesh string `json:"mesh,omitempty" yaml:"mesh,omitempty" toml:"mesh,omitempty"`
	// Materials holds one material name per slot; "" is an empty slot.
	Materials []string `json:"materials,omitempty" yaml:"materials,omitempty,flow" toml:"materials,omitempty"`
	// Bones lists bone names (armatures only).
	Bones     []string   `json:"bones,omitempty" yaml:"bones,omitempty" toml:"bones,omitempty"`
	Modifiers []Modifier `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
}

// Modifier is a modifier stack entry. Only Decimate fields are modelled.
type Modifier struct {
	Name         string  `json:"name" yaml:"name" toml:"name"`
	Type         string  `json:"type" yaml:"type" toml:"type"`
	DecimateType string  `json:"decimate_type,omitempty" yaml:"decimate_type,omitempty" toml:"decimate_type,omitempty"`
	Ratio        float64 `json:"ratio,omitempty" yaml:"ratio,omitempty" toml:"ratio,omitempty"`
	Iterations   int     `json:"iterations,omitempty" yaml:"iterations,omitempty" toml:"iterations,omitempty"`
	Triangulate  bool    `json:"triangulate,omitempty" yaml:"triangulate,omitempty" toml:"triangulate,omitempty"`
}

// MaterialDef is a material datablock.
type MaterialDef struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	UseNodes bool      `json:"use_nodes,omitempty" yaml:"use_nodes,omitempty" toml:"use_nodes,omitempty"`
	Nodes    []NodeDef `json:"nodes,omitempty" yaml:"nodes,omitempty" toml:"nodes,omitempty"`
}

// NodeDef is a shader-graph node. Image names an ImageDef.
type NodeDef struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type  string `json:"type" yaml:"type" toml:"type"`
	Image string `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
}

// ImageDef is an image datablock.
type ImageDef struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Packed   bool   `json:"packed,omitempty" yaml:"packed,omitempty" toml:"packed,omitempty"`
	FilePath string `json:"filepath,omitempty" yaml:"filepath,omitempty" toml:"filepath,omitempty"`
}

// TextureDef is a legacy texture datablock.
type TextureDef struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Image string `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
}

// Path returns the file the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// ProjectRoot returns the directory "//" paths are resolved against.
func (d *Document) ProjectRoot() string {
	base := "."
	if d.path != "" {
		base = filepath.Dir(d.path)
	}
	if d.ProjectDir == "" {
		if abs, err := filepath.Abs(base); err == nil {
			return abs
		}
		return base
	}
	return paths.Resolve(base, d.ProjectDir)
}

// SourcePath returns Source resolved against the project root.
func (d *Document) SourcePath() string {
	if d.Source == "" {
		return ""
	}
	return paths.Resolve(d.ProjectRoot(), d.Source)
}

// Object returns the object with the given name, or nil.
func (d *Document) Object(name string) *Object {
	for _, o := range d.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Material returns the material with the given name, or nil.
func (d *Document) Material(name string) *MaterialDef {
	for _, m := range d.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Image returns the image with the given name, or nil.
func (d *Document) Image(name string) *ImageDef {
	for _, img := range d.Images {
		if img.Name == name {
			return img
		}
	}
	return nil
}

// ActiveObject returns the active object, or nil.
func (d *Document) ActiveObject() *Object {
	if d.Active == "" {
		return nil
	}
	return d.Object(d.Active)
}

// Selected returns the selected objects in document order.
func (d *Document) Selected() []*Object {
	var out []*Object
	for _, o := range d.Objects {
		if o.Selected {
			out = append(out, o)
		}
	}
	return out
}

// Visible drops hidden objects, preserving order.
func Visible(objs []*Object) []*Object {
	out := make([]*Object, 0, len(objs))
	for _, o := range objs {
		if !o.Hidden {
			out = append(out, o)
		}
	}
	return out
}

// Select resolves object names to objects. Unknown names are returned in
// missing and skipped.
func (d *Document) Select(names []string) (objs []*Object, missing []string) {
	for _, name := range names {
		if o := d.Object(name); o != nil {
			objs = append(objs, o)
		} else {
			missing = append(missing, name)
		}
	}
	return objs, missing
}

// Candidates wraps objects in the read-only query interface.
func (d *Document) Candidates(objs []*Object) []Candidate {
	out := make([]Candidate, len(objs))
	for i, o := range objs {
		out[i] = candidate{doc: d, obj: o}
	}
	return out
}

// Kind returns the parsed object type.
func (o *Object) Kind() Kind {
	return ParseKind(o.Type)
}

// ScaleOrIdentity returns the stored scale, defaulting to (1, 1, 1).
func (o *Object) ScaleOrIdentity() Vec3 {
	if o.Scale == nil {
		return Identity
	}
	return *o.Scale
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	c := *o
	if o.Scale != nil {
		s := *o.Scale
		c.Scale = &s
	}
	c.Materials = slices.Clone(o.Materials)
	c.Bones = slices.Clone(o.Bones)
	c.Modifiers = slices.Clone(o.Modifiers)
	return &c
}

// UniqueObjectName returns name, or name with the lowest free ".NNN"
// suffix if an object already uses it.
func (d *Document) UniqueObjectName(name string) string {
	return uniqueName(name, func(n string) bool { return d.Object(n) != nil })
}

// UniqueMaterialName is UniqueObjectName for materials.
func (d *Document) UniqueMaterialName(name string) string {
	return uniqueName(name, func(n string) bool { return d.Material(n) != nil })
}

// UniqueTextureName is UniqueObjectName for textures.
func (d *Document) UniqueTextureName(name string) string {
	return uniqueName(name, func(n string) bool {
		for _, t := range d.Textures {
			if t.Name == n {
				return true
			}
		}
		return false
	})
}

func uniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", name, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// AddObject appends o to the document under a unique name and returns the
// name it was stored under.
func (d *Document) AddObject(o *Object) string {
	o.Name = d.UniqueObjectName(o.Name)
	d.Objects = append(d.Objects, o)
	return o.Name
}

// RenameObject renames o, keeping the active pointer in sync. The final
// name may carry a ".NNN" suffix if the requested one is taken.
func (d *Document) RenameObject(o *Object, name string) string {
	if o.Name == name {
		return name
	}
	old := o.Name
	o.Name = d.UniqueObjectName(name)
	if d.Active == old {
		d.Active = o.Name
	}
	return o.Name
}

// RenameMaterial renames m and rewrites every slot that referenced it.
func (d *Document) RenameMaterial(m *MaterialDef, name string) string {
	if m.Name == name {
		return name
	}
	old := m.Name
	m.Name = d.UniqueMaterialName(name)
	for _, o := range d.Objects {
		for i, slot := range o.Materials {
			if slot == old {
				o.Materials[i] = m.Name
			}
		}
	}
	return m.Name
}

// RenameTexture renames t.
func (d *Document) RenameTexture(t *TextureDef, name string) string {
	if t.Name == name {
		return name
	}
	t.Name = d.UniqueTextureName(name)
	return t.Name
}

// Lint reports dangling references. They do not stop loading: a dangling
// slot reads as an empty slot and a dangling node image as a missing image.
func (d *Document) Lint() []string {
	var problems []string
	if d.Active != "" && d.Object(d.Active) == nil {
		problems = append(problems, fmt.Sprintf("active object %q does not exist", d.Active))
	}
	for _, o := range d.Objects {
		if strings.TrimSpace(o.Name) == "" {
			problems = append(problems, "object with empty name")
		}
		for _, slot := range o.Materials {
			if slot != "" && d.Material(slot) == nil {
				problems = append(problems, fmt.Sprintf("object %q: material %q does not exist", o.Name, slot))
			}
		}
	}
	for _, m := range d.Materials {
		for _, n := range m.Nodes {
			if n.Image != "" && d.Image(n.Image) == nil {
				problems = append(problems, fmt.Sprintf("material %q: image %q does not exist", m.Name, n.Image))
			}
		}
	}
	return problems
}
