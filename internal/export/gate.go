package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/meshkit/internal/action"
	"github.com/thoreinstein/meshkit/internal/paths"
	"github.com/thoreinstein/meshkit/internal/scene"
	"github.com/thoreinstein/meshkit/internal/validator"
)

// Outcome reasons.
const (
	ReasonNoSelection   = "No visible objects selected."
	ReasonEmptyFileName = "FBX filename is empty."
	ReasonInvalid       = "Fix validation issues before export."
	ReasonCompleted     = "Export completed."
	ReasonBatchFailed   = "Failed to export file."
	ReasonDirFailed     = "Failed to create export directory."
)

// HintEnterFileName is shown while a batch export has no file name.
const HintEnterFileName = "Enter File Name"

// State is a step of a single Gate.Run.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateBlocked    State = "blocked"
	StateReady      State = "ready"
	StateExporting  State = "exporting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Exporter writes the selected objects to a file.
type Exporter interface {
	Export(ctx context.Context, req Request) error
}

// StateHook observes state transitions.
type StateHook func(from, to State)

// Config holds the export settings.
type Config struct {
	IncludeAnimations bool
	IncludeTextures   bool
	// Each exports one file per candidate instead of one batch file.
	Each bool
	// Destination is the absolute output directory.
	Destination string
	// FileName is the batch output file; required unless Each is set.
	FileName string
	// Extension defaults to DefaultExtension.
	Extension string
	// Source is the host project file, passed through to the exporter.
	Source string
}

func (c Config) extension() string {
	ext := strings.TrimPrefix(strings.TrimSpace(c.Extension), ".")
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

// Hints returns the lines the validation panel shows under the summary to
// explain why the export button is disabled.
func Hints(s *validator.Summary, cfg Config) []string {
	var hints []string
	if !cfg.Each && NormalizeFileName(cfg.FileName, cfg.extension()) == "" {
		hints = append(hints, HintEnterFileName)
	}
	if s != nil && !s.AllValid {
		hints = append(hints, ReasonInvalid)
	}
	return hints
}

// Gate admits an export only when every candidate validates.
type Gate struct {
	exporter  Exporter
	validator *validator.Validator
	logger    *slog.Logger
	hook      StateHook
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithValidator sets the validator used for re-validation.
func WithValidator(v *validator.Validator) GateOption {
	return func(g *Gate) {
		if v != nil {
			g.validator = v
		}
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *slog.Logger) GateOption {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithStateHook registers a transition observer.
func WithStateHook(h StateHook) GateOption {
	return func(g *Gate) {
		g.hook = h
	}
}

// NewGate creates a Gate around exporter.
func NewGate(exporter Exporter, opts ...GateOption) *Gate {
	g := &Gate{
		exporter:  exporter,
		validator: validator.New(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// run tracks one invocation so the Gate itself holds no per-call state.
type run struct {
	g     *Gate
	state State
}

func (r *run) to(next State) {
	r.g.logger.Debug("export state", "from", r.state, "to", next)
	if r.g.hook != nil {
		r.g.hook(r.state, next)
	}
	r.state = next
}

// Run validates candidates and exports them according to cfg. Hidden
// candidates are dropped first. The exporter is never called unless every
// remaining candidate validates and the output name is usable.
func (g *Gate) Run(ctx context.Context, candidates []scene.Candidate, cfg Config) action.Outcome {
	r := &run{g: g, state: StateIdle}
	r.to(StateValidating)

	visible := make([]scene.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Hidden() {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		r.to(StateBlocked)
		return action.Cancelled(ReasonNoSelection)
	}

	summary := g.validator.Validate(visible)
	if !summary.AllValid {
		g.logger.Info("export blocked by validation",
			"errors", summary.ErrorCount, "objects", summary.Failed())
		r.to(StateBlocked)
		return action.Cancelled(ReasonInvalid)
	}

	fileName := NormalizeFileName(cfg.FileName, cfg.extension())
	if !cfg.Each && fileName == "" {
		r.to(StateBlocked)
		return action.Cancelled(ReasonEmptyFileName)
	}
	r.to(StateReady)

	r.to(StateExporting)
	if err := paths.EnsureDir(cfg.Destination, paths.DefaultDirPerm); err != nil {
		g.logger.Error("creating export directory", "path", cfg.Destination, "error", err)
		r.to(StateFailed)
		return action.Failed(ReasonDirFailed)
	}

	var written []string
	if cfg.Each {
		for _, c := range visible {
			out := filepath.Join(cfg.Destination, c.Name()+"."+cfg.extension())
			if err := g.export(ctx, []string{c.Name()}, out, cfg); err != nil {
				r.to(StateFailed)
				return action.Failed(fmt.Sprintf("Failed to export %s", c.Name()), written...)
			}
			written = append(written, out)
		}
	} else {
		names := make([]string, len(visible))
		for i, c := range visible {
			names[i] = c.Name()
		}
		out := filepath.Join(cfg.Destination, fileName)
		if err := g.export(ctx, names, out, cfg); err != nil {
			r.to(StateFailed)
			return action.Failed(ReasonBatchFailed)
		}
		written = append(written, out)
	}

	r.to(StateSucceeded)
	return action.Succeeded(ReasonCompleted, written...)
}

func (g *Gate) export(ctx context.Context, objects []string, out string, cfg Config) error {
	if err := g.exporter.Export(ctx, NewRequest(objects, out, cfg)); err != nil {
		g.logger.Error("export failed", "output", out, "objects", objects, "error", err)
		return err
	}
	g.logger.Info("exported", "output", out, "objects", len(objects))
	return nil
}
