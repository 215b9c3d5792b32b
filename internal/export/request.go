package export

import (
	"strings"
)

// DefaultExtension is the output extension when none is configured.
const DefaultExtension = "fbx"

// Fixed FBX settings applied to every request.
const (
	ScaleOptionsAll = "FBX_SCALE_ALL"
	PathModeCopy    = "COPY"
	PathModeAuto    = "AUTO"
)

// DefaultObjectTypes are the host object types included in an export.
var DefaultObjectTypes = []string{"MESH", "ARMATURE"}

// Request is a single call to an Exporter.
type Request struct {
	// Objects is the export selection, in order.
	Objects []string
	// OutputPath is the absolute file to write.
	OutputPath string
	// Source is the host project file the objects live in, if known.
	Source string

	ApplyUnitScale     bool
	ScaleOptions       string
	BakeSpaceTransform bool
	ObjectTypes        []string
	AddLeafBones       bool
	BakeAnimation      bool
	PathMode           string
	EmbedTextures      bool
}

// NewRequest builds a request with the fixed FBX settings plus the
// source file and the animation and texture flags from cfg.
func NewRequest(objects []string, output string, cfg Config) Request {
	pathMode := PathModeAuto
	if cfg.IncludeTextures {
		pathMode = PathModeCopy
	}
	return Request{
		Objects:            objects,
		OutputPath:         output,
		Source:             cfg.Source,
		ApplyUnitScale:     true,
		ScaleOptions:       ScaleOptionsAll,
		BakeSpaceTransform: true,
		ObjectTypes:        append([]string(nil), DefaultObjectTypes...),
		AddLeafBones:       false,
		BakeAnimation:      cfg.IncludeAnimations,
		PathMode:           pathMode,
		EmbedTextures:      cfg.IncludeTextures,
	}
}

// NormalizeFileName trims whitespace and appends ".<ext>" unless the name
// already ends with it, compared case-insensitively. A blank name stays
// blank.
func NormalizeFileName(name, ext string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	if strings.HasSuffix(strings.ToLower(name), "."+strings.ToLower(ext)) {
		return name
	}
	return name + "." + ext
}
