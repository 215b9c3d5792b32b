package validator

import (
	"context"
	"log/slog"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/thoreinstein/meshkit/internal/logging"
	"github.com/thoreinstein/meshkit/internal/paths"
	"github.com/thoreinstein/meshkit/internal/scene"
)

// ScaleTolerance is the largest deviation from 1.0 still treated as an
// applied scale. A deviation equal to the tolerance fails.
const ScaleTolerance = 0.001

// scaleEpsilon absorbs binary rounding so that decimal inputs such as
// 1.001 land on the tolerance boundary instead of just under it.
const scaleEpsilon = 1e-9

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var axisNames = [3]string{"X", "Y", "Z"}

// Messages emitted by the checks.
const (
	MsgInvalidName      = "Invalid object name"
	MsgValidName        = "Valid name"
	MsgScaleNotApplied  = "Scale not applied on axis: "
	MsgValidScale       = "Valid scale (1.0 on all axes)"
	MsgMeshMismatch     = "Object name doesn't match mesh name"
	MsgMeshMatched      = "Mesh and Object names matched"
	MsgNoMaterial       = "No material assigned"
	MsgMaterialAssigned = "Material(s) assigned"
	MsgBrokenTextures   = "Missing or broken textures"
	MsgTexturesOK       = "Textures present or packed"
)

// FileChecker reports whether an absolute path exists.
type FileChecker func(path string) bool

// Option configures a Validator.
type Option func(*Validator)

// Validator runs the export-readiness checks.
type Validator struct {
	projectDir string
	exists     FileChecker
	logger     *slog.Logger
}

// New creates a Validator. Without options image paths resolve against the
// working directory and existence is checked with os.Stat.
func New(opts ...Option) *Validator {
	v := &Validator{
		exists: paths.Exists,
		logger: logging.NewDiscard(),
	}
	if wd, err := os.Getwd(); err == nil {
		v.projectDir = wd
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithProjectDir sets the directory "//" and relative image paths resolve against.
func WithProjectDir(dir string) Option {
	return func(v *Validator) {
		v.projectDir = dir
	}
}

// WithFileChecker replaces the on-disk existence check.
func WithFileChecker(fc FileChecker) Option {
	return func(v *Validator) {
		if fc != nil {
			v.exists = fc
		}
	}
}

// WithLogger sets the logger used for trace output.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Validate is shorthand for New(opts...).Validate(candidates).
func Validate(candidates []scene.Candidate, opts ...Option) *Summary {
	return New(opts...).Validate(candidates)
}

// Validate checks every non-hidden candidate in order and returns a fresh
// Summary. Hidden candidates are skipped and do not appear in the details.
func (v *Validator) Validate(candidates []scene.Candidate) *Summary {
	details := make([]Detail, 0, len(candidates))
	for _, c := range candidates {
		if c.Hidden() {
			continue
		}
		details = append(details, v.check(c))
	}
	s := summarize(details)
	v.logger.Debug("validated candidates",
		"count", len(details), "errors", s.ErrorCount, "warnings", s.WarningCount)
	return s
}

func (v *Validator) check(c scene.Candidate) Detail {
	r := &Result{}

	checkName(r, c.Name())
	checkScale(r, c.Scale())

	if c.Kind() == scene.KindMesh {
		checkMeshName(r, c.Name(), c.MeshName())
		slots := c.MaterialSlots()
		checkMaterials(r, slots)
		v.checkTextures(r, c.Name(), slots)
	}

	return newDetail(c.Name(), r)
}

func checkName(r *Result, name string) {
	if !nameRegex.MatchString(name) {
		r.AddError(FieldName, MsgInvalidName, name)
		return
	}
	r.AddInfo(FieldName, MsgValidName)
}

func checkScale(r *Result, scale scene.Vec3) {
	var axes []string
	for i, s := range scale {
		if ScaleOffAxis(s) {
			axes = append(axes, axisNames[i])
		}
	}
	if len(axes) > 0 {
		r.AddError(FieldScale, MsgScaleNotApplied+strings.Join(axes, ", "), scale)
		return
	}
	r.AddInfo(FieldScale, MsgValidScale)
}

// ScaleOffAxis reports whether a single scale component counts as unapplied.
func ScaleOffAxis(s float64) bool {
	return math.Abs(s-1.0) >= ScaleTolerance-scaleEpsilon
}

func checkMeshName(r *Result, name, mesh string) {
	if name != mesh {
		r.AddError(FieldMesh, MsgMeshMismatch, mesh)
		return
	}
	r.AddInfo(FieldMesh, MsgMeshMatched)
}

func checkMaterials(r *Result, slots []scene.Material) {
	for _, m := range slots {
		if m != nil {
			r.AddInfo(FieldMaterials, MsgMaterialAssigned)
			return
		}
	}
	r.AddWarning(FieldMaterials, MsgNoMaterial, nil)
}

// checkTextures walks every node-based material and requires each
// image-texture node to reference a packed image or an existing file.
// Materials without a shader graph, and graphs without texture nodes,
// pass vacuously.
func (v *Validator) checkTextures(r *Result, object string, slots []scene.Material) {
	var broken []string
	for _, m := range slots {
		if m == nil || !m.UsesNodes() {
			continue
		}
		for _, n := range m.Nodes() {
			if !n.IsImageTexture() {
				continue
			}
			if reason, ok := v.imageOK(n.Image()); !ok {
				broken = append(broken, m.Name()+": "+reason)
			}
		}
	}

	v.logger.Log(context.Background(), logging.LevelTrace, "checked textures",
		"object", object, "broken", len(broken))

	if len(broken) > 0 {
		issue := r.AddError(FieldTextures, MsgBrokenTextures, nil)
		issue.Context = map[string]string{"images": strings.Join(broken, "; ")}
		return
	}
	r.AddInfo(FieldTextures, MsgTexturesOK)
}

func (v *Validator) imageOK(img scene.Image) (string, bool) {
	if img == nil {
		return "<no image>", false
	}
	if img.Packed() {
		return "", true
	}
	if strings.TrimSpace(img.FilePath()) == "" {
		return img.Name() + " (no file path)", false
	}
	resolved := paths.Resolve(v.projectDir, img.FilePath())
	if !v.exists(resolved) {
		return img.Name() + " (" + img.FilePath() + ")", false
	}
	return "", true
}
