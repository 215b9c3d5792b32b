package prompt

import (
	"fmt"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/logging"
	"github.com/thoreinstein/meshkit/internal/scene"
)

// PickObjects lets the user choose objects. On a terminal it opens a
// multi-select fuzzy finder with a preview of each object; otherwise it
// falls back to the numbered Selector on stdin.
func PickObjects(doc *scene.Document, objs []*scene.Object) ([]*scene.Object, error) {
	if len(objs) == 0 {
		return nil, ErrNoObjects
	}
	if !logging.IsTTY(os.Stdin) {
		return NewSelector().SelectObjects(objs)
	}

	idxs, err := fuzzyfinder.FindMulti(
		objs,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", objs[i].Name, objs[i].Kind())
		},
		fuzzyfinder.WithPromptString("objects> "),
		fuzzyfinder.WithHeader("Tab to mark, Enter to accept"),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return Describe(doc, objs[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	return ordered(objs, idxs), nil
}

// Describe renders the preview text for an object: type, mesh, scale and
// material slots with their resolution status.
func Describe(doc *scene.Document, o *scene.Object) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:  %s\n", o.Name)
	fmt.Fprintf(&sb, "Type:  %s\n", o.Kind())
	if o.Kind() == scene.KindMesh {
		fmt.Fprintf(&sb, "Mesh:  %s\n", o.Mesh)
	}
	fmt.Fprintf(&sb, "Scale: %s\n", o.ScaleOrIdentity())
	if o.Hidden {
		sb.WriteString("Hidden\n")
	}

	if len(o.Materials) > 0 {
		sb.WriteString("\nMaterials:\n")
		for i, name := range o.Materials {
			switch {
			case name == "":
				fmt.Fprintf(&sb, "  %d. <empty>\n", i+1)
			case doc != nil && doc.Material(name) == nil:
				fmt.Fprintf(&sb, "  %d. %s (missing)\n", i+1, name)
			default:
				fmt.Fprintf(&sb, "  %d. %s\n", i+1, name)
			}
		}
	}

	if len(o.Bones) > 0 {
		fmt.Fprintf(&sb, "\nBones: %d\n", len(o.Bones))
	}
	for _, m := range o.Modifiers {
		fmt.Fprintf(&sb, "Modifier: %s (%s)\n", m.Name, m.Type)
	}
	return sb.String()
}
