package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/paths"
)

// ErrNoCommand is returned when no exporter command is configured.
var ErrNoCommand = errors.New("no exporter command configured")

// maxStderrTail bounds how much exporter stderr is carried into errors.
const maxStderrTail = 2048

// CommandExporter runs an external program once per request. Each
// argument of Args may contain placeholders that are expanded from the
// request:
//
//	{output}          absolute output file
//	{objects}         comma-separated object names
//	{source}          host project file
//	{bake_anim}       "true" or "false"
//	{embed_textures}  "true" or "false"
//	{path_mode}       COPY or AUTO
//	{object_types}    comma-separated host object types
//	{scale_options}   FBX scale option
//
// A non-zero exit status is a failure. The output file must exist after a
// successful run.
type CommandExporter struct {
	Args []string
	// Dir is the working directory of the command.
	Dir string
	// Stderr, if set, also receives the command's stderr as it runs.
	Stderr io.Writer
	Logger *slog.Logger
}

// Export runs the command for req.
func (e *CommandExporter) Export(ctx context.Context, req Request) error {
	if len(e.Args) == 0 {
		return ErrNoCommand
	}

	args := Expand(e.Args, req)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = e.Dir

	var stderrBuf bytes.Buffer
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, e.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if e.Logger != nil {
		e.Logger.Debug("running exporter", "args", args)
	}

	if err := cmd.Run(); err != nil {
		if tail := stderrTail(stderrBuf.String()); tail != "" {
			return errors.Wrapf(err, "exporter %s: %s", args[0], tail)
		}
		return errors.Wrapf(err, "exporter %s", args[0])
	}

	if !paths.Exists(req.OutputPath) {
		return errors.Newf("exporter %s did not write %s", args[0], req.OutputPath)
	}
	return nil
}

// Expand substitutes request placeholders in every argument.
func Expand(template []string, req Request) []string {
	r := strings.NewReplacer(
		"{output}", req.OutputPath,
		"{objects}", strings.Join(req.Objects, ","),
		"{source}", req.Source,
		"{bake_anim}", strconv.FormatBool(req.BakeAnimation),
		"{embed_textures}", strconv.FormatBool(req.EmbedTextures),
		"{path_mode}", req.PathMode,
		"{object_types}", strings.Join(req.ObjectTypes, ","),
		"{scale_options}", req.ScaleOptions,
	)
	out := make([]string, len(template))
	for i, a := range template {
		out[i] = r.Replace(a)
	}
	return out
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderrTail {
		s = "..." + s[len(s)-maxStderrTail:]
	}
	return s
}
