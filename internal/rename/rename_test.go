package rename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/meshkit/internal/action"
	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/scene"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		old, repl string
		mode      Mode
		want      string
	}{
		{"prefix to prefix", "Char_Arm", "Char_", "NPC_", PrefixPrefix, "NPC_Arm"},
		{"suffix anchor mismatch", "Arm_L", "_R", "_L", SuffixSuffix, "Arm_L"},
		{"suffix to suffix", "Arm_R", "_R", "_L", SuffixSuffix, "Arm_L"},
		{"prefix to suffix", "L_Hand", "L_", "_L", PrefixSuffix, "Hand_L"},
		{"suffix to prefix", "Hand_L", "_L", "L_", SuffixPrefix, "L_Hand"},
		{"prefix mismatch", "Arm", "Char_", "NPC_", PrefixPrefix, "Arm"},
		{"prefix only matches at start", "X_Char_Arm", "Char_", "NPC_", PrefixPrefix, "X_Char_Arm"},
		{"delete prefix", "Char_Arm", "Char_", "", PrefixPrefix, "Arm"},
		{"whole name", "Arm", "Arm", "Leg", SuffixSuffix, "Leg"},
		{"unknown mode", "Char_Arm", "Char_", "NPC_", Mode("bogus"), "Char_Arm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Replace(tt.in, tt.old, tt.repl, tt.mode))
		})
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"prefix_prefix":  PrefixPrefix,
		"Prefix->Suffix": PrefixSuffix,
		"suffix→prefix":  SuffixPrefix,
		"suffix-suffix":  SuffixSuffix,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("middle")
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestParseTarget(t *testing.T) {
	got, err := ParseTarget("Materials")
	require.NoError(t, err)
	assert.Equal(t, TargetMaterial, got)

	_, err = ParseTarget("lights")
	assert.Error(t, err)
}

func testDoc() *scene.Document {
	return &scene.Document{
		Active: "Rig",
		Objects: []*scene.Object{
			{Name: "Char_Arm", Type: "mesh", Selected: true, Materials: []string{"Char_Skin"}},
			{Name: "Char_Leg", Type: "mesh", Selected: true, Hidden: true},
			{Name: "Char_Head", Type: "mesh"},
			{Name: "NPC_Arm", Type: "mesh"},
			{Name: "Rig", Type: "armature", Bones: []string{"Arm_R", "Arm_L", "Leg_R"}},
		},
		Materials: []*scene.MaterialDef{{Name: "Char_Skin"}, {Name: "Metal"}},
		Textures:  []*scene.TextureDef{{Name: "Char_Skin_Tex"}},
	}
}

func TestApply_Objects(t *testing.T) {
	doc := testDoc()
	out := Apply(doc, Config{Old: "Char_", New: "NPC_", Mode: PrefixPrefix, Target: TargetObject})

	require.Equal(t, action.StatusSucceeded, out.Status)
	assert.Equal(t, []string{"object Char_Arm -> NPC_Arm.001"}, out.Items, "collision gets a numeric suffix")
	assert.NotNil(t, doc.Object("Char_Leg"), "hidden selected objects are untouched")
	assert.NotNil(t, doc.Object("Char_Head"), "unselected objects are untouched")
}

func TestApply_ExplicitObjects(t *testing.T) {
	doc := testDoc()
	out := Apply(doc, Config{
		Old: "Char_", New: "Hero_", Mode: PrefixPrefix, Target: TargetObject,
		Objects: []*scene.Object{doc.Object("Char_Head")},
	})
	require.True(t, out.OK())
	assert.NotNil(t, doc.Object("Hero_Head"))
	assert.NotNil(t, doc.Object("Char_Arm"))
}

func TestApply_ObjectsNeedSelection(t *testing.T) {
	doc := testDoc()
	for _, o := range doc.Objects {
		if !o.Hidden {
			o.Selected = false
		}
	}

	out := Apply(doc, Config{Old: "Char_", New: "NPC_", Mode: PrefixPrefix, Target: TargetObject})
	assert.Equal(t, action.Cancelled(ReasonNoSelection), out)
	assert.NotNil(t, doc.Object("Char_Head"))
}

func TestApply_Bones(t *testing.T) {
	doc := testDoc()
	out := Apply(doc, Config{Old: "_R", New: "_L", Mode: SuffixSuffix, Target: TargetBone})

	require.True(t, out.OK())
	assert.Equal(t, []string{"Arm_L.001", "Arm_L", "Leg_L"}, doc.Object("Rig").Bones)
	assert.Len(t, out.Items, 2)
}

func TestApply_BonesNeedsArmature(t *testing.T) {
	for name, active := range map[string]string{"no active": "", "mesh active": "Char_Arm", "dangling": "Gone"} {
		t.Run(name, func(t *testing.T) {
			doc := testDoc()
			doc.Active = active
			out := Apply(doc, Config{Old: "_R", New: "_L", Mode: SuffixSuffix, Target: TargetBone})
			assert.Equal(t, action.Cancelled(ReasonNoArmature), out)
		})
	}
}

func TestApply_MaterialsFollowSlots(t *testing.T) {
	doc := testDoc()
	out := Apply(doc, Config{Old: "Char_", New: "NPC_", Mode: PrefixPrefix, Target: TargetMaterial})

	require.True(t, out.OK())
	assert.Equal(t, []string{"material Char_Skin -> NPC_Skin"}, out.Items)
	assert.Equal(t, []string{"NPC_Skin"}, doc.Object("Char_Arm").Materials)
	assert.NotNil(t, doc.Material("Metal"))
}

func TestApply_Textures(t *testing.T) {
	doc := testDoc()
	out := Apply(doc, Config{Old: "_Tex", New: "T_", Mode: SuffixPrefix, Target: TargetTexture})

	require.True(t, out.OK())
	assert.Equal(t, "T_Char_Skin", doc.Textures[0].Name)
	assert.Equal(t, "Renamed 1 element(s).", out.Reason)
}

func TestApply_EmptyOldCancelsBeforeMutation(t *testing.T) {
	for _, target := range Targets {
		t.Run(string(target), func(t *testing.T) {
			doc := testDoc()
			before := doc.Object("Char_Arm").Name
			out := Apply(doc, Config{Old: "", New: "X", Mode: PrefixPrefix, Target: target})
			assert.Equal(t, action.StatusCancelled, out.Status)
			assert.Equal(t, ReasonEmptyOld, out.Reason)
			assert.Equal(t, before, doc.Objects[0].Name)
		})
	}
}

func TestApply_NoMatchesStillSucceeds(t *testing.T) {
	doc := testDoc()
	out := Apply(doc, Config{Old: "Zzz", New: "Y", Mode: PrefixPrefix, Target: TargetObject})
	assert.True(t, out.OK())
	assert.Empty(t, out.Items)
}
