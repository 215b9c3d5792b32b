package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/meshkit/internal/errors"
)

const propsYAML = `source: props.blend
active: Rig
objects:
  - name: Crate
    type: MESH
    selected: true
    mesh: Crate
    materials: [Wood, ""]
  - name: Barrel
    type: mesh
    hidden: true
    selected: true
    scale: [1, 2, 1]
    mesh: Barrel.001
    materials: [Ghost]
  - name: Rig
    type: armature
    bones: [Arm_L, Arm_R]
materials:
  - name: Wood
    use_nodes: true
    nodes:
      - type: BSDF_PRINCIPLED
      - type: tex_image
        image: WoodDiffuse
      - type: TEX_IMAGE
        image: Nowhere
images:
  - name: WoodDiffuse
    filepath: //textures/wood.png
`

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeScene(t, "props.yaml", propsYAML)

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, doc.Format())
	assert.Equal(t, filepath.Dir(path), doc.ProjectRoot())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "props.blend"), doc.SourcePath())
	require.Len(t, doc.Objects, 3)
	assert.Equal(t, KindMesh, doc.Objects[0].Kind())
	assert.Equal(t, KindArmature, doc.ActiveObject().Kind())
}

func TestLoad_FormatsAgree(t *testing.T) {
	jsonDoc := `{"objects":[{"name":"Crate","type":"mesh","mesh":"Crate","scale":[1,0.5,1]}]}`
	tomlDoc := "[[objects]]\nname = \"Crate\"\ntype = \"mesh\"\nmesh = \"Crate\"\nscale = [1.0, 0.5, 1.0]\n"

	for name, content := range map[string]string{"scene.json": jsonDoc, "scene.toml": tomlDoc} {
		t.Run(name, func(t *testing.T) {
			doc, err := Load(writeScene(t, name, content))
			require.NoError(t, err)
			require.Len(t, doc.Objects, 1)
			assert.Equal(t, Vec3{1, 0.5, 1}, doc.Objects[0].ScaleOrIdentity())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeScene(t, "scene.obj", "o Crate"))
		assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeScene(t, "scene.yaml", "objects: []\nlights: []\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty yaml is an empty scene", func(t *testing.T) {
		doc, err := Load(writeScene(t, "empty.yaml", ""))
		require.NoError(t, err)
		assert.Empty(t, doc.Objects)
	})
}

func TestCandidates(t *testing.T) {
	doc, err := Decode([]byte(propsYAML), FormatYAML)
	require.NoError(t, err)

	selected := doc.Selected()
	require.Len(t, selected, 2)
	visible := Visible(selected)
	require.Len(t, visible, 1)

	cands := doc.Candidates(doc.Objects)
	crate := cands[0]
	assert.Equal(t, "Crate", crate.Name())
	assert.Equal(t, Identity, crate.Scale())
	assert.Equal(t, "Crate", crate.MeshName())

	slots := crate.MaterialSlots()
	require.Len(t, slots, 2)
	require.NotNil(t, slots[0])
	assert.Nil(t, slots[1], "empty slot should be nil")

	nodes := slots[0].Nodes()
	require.Len(t, nodes, 3)
	assert.False(t, nodes[0].IsImageTexture())
	assert.True(t, nodes[1].IsImageTexture(), "node type match is case-insensitive")
	require.NotNil(t, nodes[1].Image())
	assert.Equal(t, "//textures/wood.png", nodes[1].Image().FilePath())
	assert.Nil(t, nodes[2].Image(), "dangling image reference reads as no image")

	barrel := cands[1]
	assert.True(t, barrel.Hidden())
	assert.Nil(t, barrel.MaterialSlots()[0], "dangling material reference reads as empty slot")

	rig := cands[2]
	assert.Empty(t, rig.MeshName())
}

func TestSelect(t *testing.T) {
	doc, err := Decode([]byte(propsYAML), FormatYAML)
	require.NoError(t, err)

	objs, missing := doc.Select([]string{"Rig", "Lamp", "Crate"})
	require.Len(t, objs, 2)
	assert.Equal(t, "Rig", objs[0].Name)
	assert.Equal(t, []string{"Lamp"}, missing)
}

func TestRenames(t *testing.T) {
	doc, err := Decode([]byte(propsYAML), FormatYAML)
	require.NoError(t, err)

	got := doc.RenameMaterial(doc.Material("Wood"), "M_Wood")
	assert.Equal(t, "M_Wood", got)
	assert.Equal(t, []string{"M_Wood", ""}, doc.Object("Crate").Materials)

	got = doc.RenameObject(doc.Object("Rig"), "Crate")
	assert.Equal(t, "Crate.001", got, "taken names get a numeric suffix")
	assert.Equal(t, "Crate.001", doc.Active)

	clone := doc.Object("Crate").Clone()
	assert.Equal(t, "Crate.002", doc.AddObject(clone))
}

func TestLint(t *testing.T) {
	doc, err := Decode([]byte(propsYAML), FormatYAML)
	require.NoError(t, err)

	problems := doc.Lint()
	assert.Contains(t, problems, `object "Barrel": material "Ghost" does not exist`)
	assert.Contains(t, problems, `material "Wood": image "Nowhere" does not exist`)
}

func TestSaveAs_RoundTrip(t *testing.T) {
	doc, err := Decode([]byte(propsYAML), FormatYAML)
	require.NoError(t, err)

	for _, name := range []string{"out.yaml", "out.json", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, doc.SaveAs(path))

			back, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, doc.Objects, back.Objects)
			assert.Equal(t, doc.Materials, back.Materials)
			assert.Equal(t, doc.Images, back.Images)
		})
	}
}

func TestProjectRoot_Override(t *testing.T) {
	path := writeScene(t, "props.yaml", "project_dir: //assets\nobjects: []\n")
	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "assets"), doc.ProjectRoot())
}
