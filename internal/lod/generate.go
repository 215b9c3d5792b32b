package lod

import (
	"fmt"
	"log/slog"

	"github.com/thoreinstein/meshkit/internal/action"
	"github.com/thoreinstein/meshkit/internal/scene"
)

// Cancel reasons.
const (
	ReasonNoSelection = "No objects selected"
	ReasonNoMesh      = "Select at least one mesh object"
	ReasonGenerated   = "LODs generated"
)

// Decimator applies a decimation request to a derived object.
type Decimator interface {
	Decimate(obj *scene.Object, spec Spec) error
}

// ModifierDecimator records each request as a Decimate modifier on the
// object, the way the host stores a non-destructive decimation.
type ModifierDecimator struct{}

// ModifierName returns the modifier name used for level i.
func ModifierName(i int) string {
	return fmt.Sprintf("LOD%d_Decimate", i)
}

// Decimate appends the modifier.
func (ModifierDecimator) Decimate(obj *scene.Object, spec Spec) error {
	m := scene.Modifier{
		Name:         ModifierName(spec.Index),
		Type:         "DECIMATE",
		DecimateType: spec.Type.HostName(),
	}
	switch spec.Type {
	case UnSubdivide:
		m.Iterations = spec.Iterations()
	default:
		m.Ratio = spec.Parameter
		m.Triangulate = true
	}
	obj.Modifiers = append(obj.Modifiers, m)
	return nil
}

// Config holds the generator settings.
type Config struct {
	Count int
	Type  DecimateType
	Step  float64
	// Objects overrides the document selection. Nil means the visible
	// selected objects.
	Objects []*scene.Object
	Logger  *slog.Logger
}

// Check reports settings outside the generator bounds.
func (c Config) Check() string {
	switch {
	case c.Count < MinCount || c.Count > MaxCount:
		return fmt.Sprintf("LOD count must be between %d and %d", MinCount, MaxCount)
	case c.Type != Collapse && c.Type != UnSubdivide:
		return fmt.Sprintf("Unknown decimate type: %s", c.Type)
	case c.Type == Collapse && (c.Step < MinStep || c.Step > MaxStep):
		return fmt.Sprintf("Decimate step must be between %.2f and %.1f", MinStep, MaxStep)
	}
	return ""
}

// Generate renames each selected mesh to "<base>_LOD0" and adds count
// decimated copies to doc. Non-mesh objects are skipped. A decimator error
// stops the run; objects created before it stay in the document.
func Generate(doc *scene.Document, cfg Config, dec Decimator) action.Outcome {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if dec == nil {
		dec = ModifierDecimator{}
	}

	if reason := cfg.Check(); reason != "" {
		return action.Cancelled(reason)
	}

	objs := cfg.Objects
	if objs == nil {
		objs = scene.Visible(doc.Selected())
	}
	if len(objs) == 0 {
		return action.Cancelled(ReasonNoSelection)
	}
	if !hasMesh(objs) {
		return action.Cancelled(ReasonNoMesh)
	}

	var created []string
	for _, obj := range objs {
		if obj.Kind() != scene.KindMesh {
			logger.Info("skipping non-mesh object", "object", obj.Name, "type", obj.Type)
			continue
		}

		base := BaseName(obj.Name)
		doc.RenameObject(obj, BaseObjectName(base))
		obj.Mesh = obj.Name

		for _, spec := range Plan(base, cfg.Count, cfg.Type, cfg.Step) {
			lodObj := obj.Clone()
			lodObj.Name = spec.TargetName
			lodObj.Selected = false
			name := doc.AddObject(lodObj)
			lodObj.Mesh = name

			if err := dec.Decimate(lodObj, spec); err != nil {
				logger.Error("decimation failed", "object", name, "error", err)
				return action.Failed(fmt.Sprintf("Failed to decimate %s", name), created...)
			}
			logger.Debug("generated LOD", "object", name, "type", spec.Type, "parameter", spec.Parameter)
			created = append(created, name)
		}
	}

	return action.Succeeded(ReasonGenerated, created...)
}

func hasMesh(objs []*scene.Object) bool {
	for _, o := range objs {
		if o.Kind() == scene.KindMesh {
			return true
		}
	}
	return false
}
