// Package rename applies prefix and suffix substitutions to scene element
// names.
package rename

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/meshkit/internal/action"
	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/scene"
)

// Mode selects which anchor is matched and where the replacement goes.
type Mode string

const (
	// PrefixPrefix replaces a leading match with a new prefix.
	PrefixPrefix Mode = "prefix_prefix"
	// PrefixSuffix removes a leading match and appends the replacement.
	PrefixSuffix Mode = "prefix_suffix"
	// SuffixPrefix removes a trailing match and prepends the replacement.
	SuffixPrefix Mode = "suffix_prefix"
	// SuffixSuffix replaces a trailing match with a new suffix.
	SuffixSuffix Mode = "suffix_suffix"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{PrefixPrefix, PrefixSuffix, SuffixPrefix, SuffixSuffix}

// Target selects which kind of element is renamed.
type Target string

const (
	TargetObject   Target = "object"
	TargetBone     Target = "bone"
	TargetMaterial Target = "material"
	TargetTexture  Target = "texture"
)

// Targets lists the valid targets in display order.
var Targets = []Target{TargetObject, TargetBone, TargetMaterial, TargetTexture}

// Cancel reasons.
const (
	ReasonEmptyOld    = "Old string is empty."
	ReasonNoArmature  = "Select an armature."
	ReasonNoSelection = "No objects selected"
)

// ParseMode validates a mode name. Arrow spellings such as
// "prefix->suffix" are accepted.
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("->", "_", "→", "_", "-", "_").Replace(norm)
	for _, m := range Modes {
		if Mode(norm) == m {
			return m, nil
		}
	}
	return "", errors.Wrapf(errors.ErrInvalidConfig, "unknown rename mode %q", s)
}

// ParseTarget validates a target name. Plural forms are accepted.
func ParseTarget(s string) (Target, error) {
	norm := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for _, t := range Targets {
		if Target(norm) == t {
			return t, nil
		}
	}
	return "", errors.Wrapf(errors.ErrInvalidConfig, "unknown rename target %q", s)
}

// Replace applies one substitution. The name is returned unchanged when
// the anchor for mode does not match. old must not be empty.
func Replace(name, old, replacement string, mode Mode) string {
	switch mode {
	case PrefixPrefix:
		if rest, ok := strings.CutPrefix(name, old); ok {
			return replacement + rest
		}
	case SuffixSuffix:
		if rest, ok := strings.CutSuffix(name, old); ok {
			return rest + replacement
		}
	case PrefixSuffix:
		if rest, ok := strings.CutPrefix(name, old); ok {
			return rest + replacement
		}
	case SuffixPrefix:
		if rest, ok := strings.CutSuffix(name, old); ok {
			return replacement + rest
		}
	}
	return name
}

// Config describes one rename run.
type Config struct {
	Old    string
	New    string
	Mode   Mode
	Target Target
	// Objects overrides the document selection for TargetObject. Nil means
	// the visible selected objects.
	Objects []*scene.Object
}

// Change records one renamed element.
type Change struct {
	Kind string
	From string
	To   string
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s -> %s", c.Kind, c.From, c.To)
}

// Apply renames the targeted elements of doc in place. Elements whose
// names do not match the anchor are left alone. The outcome lists every
// change as "<kind> <from> -> <to>".
func Apply(doc *scene.Document, cfg Config) action.Outcome {
	if cfg.Old == "" {
		return action.Cancelled(ReasonEmptyOld)
	}

	var changes []Change
	record := func(kind, from, to string) {
		if from != to {
			changes = append(changes, Change{Kind: kind, From: from, To: to})
		}
	}

	switch cfg.Target {
	case TargetObject:
		objs := cfg.Objects
		if objs == nil {
			objs = scene.Visible(doc.Selected())
		}
		if len(objs) == 0 {
			return action.Cancelled(ReasonNoSelection)
		}
		for _, o := range objs {
			from := o.Name
			if to := Replace(from, cfg.Old, cfg.New, cfg.Mode); to != from {
				record(string(TargetObject), from, doc.RenameObject(o, to))
			}
		}
	case TargetBone:
		arm := doc.ActiveObject()
		if arm == nil || arm.Kind() != scene.KindArmature {
			return action.Cancelled(ReasonNoArmature)
		}
		for i, from := range arm.Bones {
			if to := Replace(from, cfg.Old, cfg.New, cfg.Mode); to != from {
				arm.Bones[i] = uniqueBone(arm.Bones, i, to)
				record(string(TargetBone), from, arm.Bones[i])
			}
		}
	case TargetMaterial:
		for _, m := range doc.Materials {
			from := m.Name
			if to := Replace(from, cfg.Old, cfg.New, cfg.Mode); to != from {
				record(string(TargetMaterial), from, doc.RenameMaterial(m, to))
			}
		}
	case TargetTexture:
		for _, t := range doc.Textures {
			from := t.Name
			if to := Replace(from, cfg.Old, cfg.New, cfg.Mode); to != from {
				record(string(TargetTexture), from, doc.RenameTexture(t, to))
			}
		}
	default:
		return action.Cancelledf("Unknown target: %s", cfg.Target)
	}

	items := make([]string, len(changes))
	for i, c := range changes {
		items[i] = c.String()
	}
	return action.Succeeded(fmt.Sprintf("Renamed %d element(s).", len(changes)), items...)
}

// uniqueBone returns name, suffixed ".NNN" if another bone of the same
// armature already uses it.
func uniqueBone(bones []string, self int, name string) string {
	taken := func(n string) bool {
		for i, b := range bones {
			if i != self && b == n {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for i := 1; ; i++ {
		c := fmt.Sprintf("%s.%03d", name, i)
		if !taken(c) {
			return c
		}
	}
}
