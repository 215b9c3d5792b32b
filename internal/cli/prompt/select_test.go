package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/thoreinstein/meshkit/internal/scene"
)

func testObjects() []*scene.Object {
	return []*scene.Object{
		{Name: "Crate", Type: "MESH", Mesh: "Crate", Materials: []string{"Wood"}},
		{Name: "Rig", Type: "ARMATURE", Bones: []string{"root", "spine"}},
		{Name: "Lamp", Type: "MESH", Mesh: "Lamp"},
	}
}

func names(objs []*scene.Object) []string {
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Name)
	}
	return out
}

func TestSelectObjects_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	_, err := s.SelectObjects(nil)
	if !errors.Is(err, ErrNoObjects) {
		t.Errorf("expected ErrNoObjects, got: %v", err)
	}
}

func TestSelectObjects_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	got, err := s.SelectObjects(testObjects()[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Crate" {
		t.Errorf("expected [Crate], got %v", names(got))
	}
	// Should not prompt for single item
	if buf.Len() > 0 {
		t.Errorf("expected no output for single item, got: %s", buf.String())
	}
}

func TestSelectObjects_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty input selects all", input: "\n", want: []string{"Crate", "Rig", "Lamp"}},
		{name: "single", input: "2\n", want: []string{"Rig"}},
		{name: "comma separated", input: "1,3\n", want: []string{"Crate", "Lamp"}},
		{name: "document order kept", input: "3, 1\n", want: []string{"Crate", "Lamp"}},
		{name: "duplicates collapse", input: "2 2\n", want: []string{"Rig"}},
		{name: "no trailing newline", input: "3", want: []string{"Lamp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			got, err := s.SelectObjects(testObjects())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(names(got), ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestSelectObjects_InvalidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "zero", input: "0\n"},
		{name: "out of range", input: "4\n"},
		{name: "negative", input: "-1\n"},
		{name: "not a number", input: "abc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			_, err := s.SelectObjects(testObjects())
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("expected ErrInvalidSelection, got: %v", err)
			}
		})
	}
}

func TestSelectObjects_EOF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	_, err := s.SelectObjects(testObjects())
	if !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestSelectObjects_ReadError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(errReader{}, &buf)

	_, err := s.SelectObjects(testObjects())
	if err == nil || errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected read error, got: %v", err)
	}
}

func TestSelectObjects_OutputFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader("1\n"), &buf)

	if _, err := s.SelectObjects(testObjects()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Objects:", "[1] Crate (mesh)", "[2] Rig (armature)", "Select [all]:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	doc := &scene.Document{
		Materials: []*scene.MaterialDef{{Name: "Wood"}},
	}
	obj := &scene.Object{
		Name:      "Crate",
		Type:      "MESH",
		Mesh:      "CrateMesh",
		Materials: []string{"Wood", "", "Ghost"},
		Modifiers: []scene.Modifier{{Name: "LOD1_Decimate", Type: "DECIMATE"}},
	}

	got := Describe(doc, obj)
	for _, want := range []string{
		"Name:  Crate",
		"Type:  mesh",
		"Mesh:  CrateMesh",
		"Scale: (1, 1, 1)",
		"1. Wood\n",
		"2. <empty>",
		"3. Ghost (missing)",
		"Modifier: LOD1_Decimate (DECIMATE)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe() missing %q in:\n%s", want, got)
		}
	}

	rig := &scene.Object{Name: "Rig", Type: "ARMATURE", Bones: []string{"a", "b"}, Hidden: true}
	got = Describe(nil, rig)
	if strings.Contains(got, "Mesh:") {
		t.Errorf("armature preview should not list a mesh:\n%s", got)
	}
	if !strings.Contains(got, "Bones: 2") || !strings.Contains(got, "Hidden") {
		t.Errorf("armature preview missing bones or hidden flag:\n%s", got)
	}
}
