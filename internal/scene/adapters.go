package scene

import "strings"

type candidate struct {
	doc *Document
	obj *Object
}

func (c candidate) Name() string { return c.obj.Name }
func (c candidate) Kind() Kind   { return c.obj.Kind() }
func (c candidate) Scale() Vec3  { return c.obj.ScaleOrIdentity() }
func (c candidate) Hidden() bool { return c.obj.Hidden }

func (c candidate) MeshName() string {
	if c.obj.Kind() != KindMesh {
		return ""
	}
	return c.obj.Mesh
}

func (c candidate) MaterialSlots() []Material {
	slots := make([]Material, len(c.obj.Materials))
	for i, name := range c.obj.Materials {
		if name == "" {
			continue
		}
		if def := c.doc.Material(name); def != nil {
			slots[i] = material{doc: c.doc, def: def}
		}
	}
	return slots
}

type material struct {
	doc *Document
	def *MaterialDef
}

func (m material) Name() string    { return m.def.Name }
func (m material) UsesNodes() bool { return m.def.UseNodes }

func (m material) Nodes() []Node {
	nodes := make([]Node, len(m.def.Nodes))
	for i := range m.def.Nodes {
		nodes[i] = node{doc: m.doc, def: &m.def.Nodes[i]}
	}
	return nodes
}

type node struct {
	doc *Document
	def *NodeDef
}

func (n node) Type() string { return n.def.Type }

func (n node) IsImageTexture() bool {
	return strings.EqualFold(n.def.Type, NodeImageTexture)
}

func (n node) Image() Image {
	if n.def.Image == "" {
		return nil
	}
	def := n.doc.Image(n.def.Image)
	if def == nil {
		return nil
	}
	return image{def: def}
}

type image struct {
	def *ImageDef
}

func (i image) Name() string     { return i.def.Name }
func (i image) Packed() bool     { return i.def.Packed }
func (i image) FilePath() string { return i.def.FilePath }
