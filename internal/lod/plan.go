package lod

import (
	"fmt"
	"math"
	"strings"

	"github.com/thoreinstein/meshkit/internal/errors"
)

// DecimateType selects the decimation method.
type DecimateType string

const (
	// Collapse reduces by a face ratio.
	Collapse DecimateType = "collapse"
	// UnSubdivide reduces by undoing subdivision iterations.
	UnSubdivide DecimateType = "unsubdiv"
)

// HostName returns the host's spelling of the decimate type.
func (t DecimateType) HostName() string {
	return strings.ToUpper(string(t))
}

// ParseDecimateType validates a decimate type name.
func ParseDecimateType(s string) (DecimateType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "collapse":
		return Collapse, nil
	case "unsubdiv", "un-subdivide", "unsubdivide":
		return UnSubdivide, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidConfig, "unknown decimate type %q (valid: collapse, unsubdiv)", s)
	}
}

// Bounds and defaults of the generator settings.
const (
	MinCount     = 1
	MaxCount     = 10
	DefaultCount = 3

	MinStep     = 0.05
	MaxStep     = 1.0
	DefaultStep = 0.3

	// MinRatio keeps collapse ratios away from zero.
	MinRatio = 0.01

	baseSuffix = "_LOD0"
)

// Spec describes one derived object.
type Spec struct {
	Index      int          `json:"index" yaml:"index"`
	TargetName string       `json:"target_name" yaml:"target_name"`
	Type       DecimateType `json:"type" yaml:"type"`
	// Parameter is the ratio for Collapse and the iteration count for
	// UnSubdivide.
	Parameter float64 `json:"parameter" yaml:"parameter"`
}

// Iterations returns Parameter as an iteration count.
func (s Spec) Iterations() int {
	return int(math.Round(s.Parameter))
}

// BaseName strips one trailing "_LOD0" so a re-run does not stack suffixes.
func BaseName(name string) string {
	return strings.TrimSuffix(name, baseSuffix)
}

// BaseObjectName is the name the source object takes: "<base>_LOD0".
func BaseObjectName(name string) string {
	return BaseName(name) + baseSuffix
}

// Plan returns one Spec per level 1..count for the object named base.
// base may already carry the "_LOD0" suffix.
func Plan(base string, count int, typ DecimateType, step float64) []Spec {
	base = BaseName(base)
	specs := make([]Spec, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		specs = append(specs, Spec{
			Index:      i,
			TargetName: fmt.Sprintf("%s_LOD%d", base, i),
			Type:       typ,
			Parameter:  parameter(typ, step, i),
		})
	}
	return specs
}

func parameter(typ DecimateType, step float64, i int) float64 {
	if typ == UnSubdivide {
		return float64(2 * i)
	}
	// Rounded to drop float noise such as 0.7000000000000001.
	ratio := math.Round((1.0-step*float64(i))*1e9) / 1e9
	return math.Max(MinRatio, ratio)
}
