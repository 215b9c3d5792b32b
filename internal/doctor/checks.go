package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/thoreinstein/meshkit/internal/scene"
)

// ConfigCheck reports whether the configuration loaded and validated.
type ConfigCheck struct {
	// Source is the file the configuration was read from, or "" for defaults.
	Source string
	// Err is the load error, if any.
	Err error
}

var _ Check = (*ConfigCheck)(nil)

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	source := c.Source
	if source == "" {
		source = "defaults"
	}

	if c.Err != nil {
		result.Status = SeverityError
		result.Message = c.Err.Error()
		result.Details = map[string]any{"source": source}
		result.FixHint = "fix the reported keys or run with --config pointing at a valid file"
		return result
	}

	result.Status = SeverityPass
	result.Message = "configuration loaded from " + source
	return result
}

// ExporterCheck verifies that the exporter command can be started.
type ExporterCheck struct {
	Command []string
	// LookPath resolves the program; exec.LookPath when nil.
	LookPath func(file string) (string, error)
}

var _ Check = (*ExporterCheck)(nil)

func (c *ExporterCheck) Name() string     { return "exporter" }
func (c *ExporterCheck) Category() string { return "export" }

func (c *ExporterCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if len(c.Command) == 0 {
		result.Status = SeverityWarning
		result.Message = "no exporter command configured; export is unavailable"
		result.FixHint = "set export.command in config.yaml"
		return result
	}

	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	program := c.Command[0]
	resolved, err := lookPath(program)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("exporter %q not found", program)
		result.Details = map[string]any{"error": err.Error()}
		result.FixHint = "install the program or use an absolute path in export.command"
		return result
	}

	result.Status = SeverityPass
	result.Message = "exporter found at " + resolved
	return result
}

// BackupDirCheck verifies that scene snapshots can be written.
type BackupDirCheck struct {
	Dir     string
	Enabled bool
}

var _ Check = (*BackupDirCheck)(nil)

func (c *BackupDirCheck) Name() string     { return "backup-dir" }
func (c *BackupDirCheck) Category() string { return "filesystem" }

func (c *BackupDirCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Dir},
	}

	if !c.Enabled {
		result.Status = SeverityInfo
		result.Message = "backups are disabled; lod and rename overwrite scenes without a snapshot"
		return result
	}

	// The directory is created on first use, so test the nearest existing
	// ancestor.
	dir := c.Dir
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				result.Status = SeverityError
				result.Message = dir + " is not a directory"
				return result
			}
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if err := probeWritable(dir); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot write to %s", dir)
		result.Details["error"] = err.Error()
		result.FixHint = "chmod u+w " + dir + " or set backup.dir"
		return result
	}

	result.Status = SeverityPass
	if dir == c.Dir {
		result.Message = "backup directory is writable"
	} else {
		result.Message = "backup directory will be created under " + dir
	}
	return result
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".meshkit-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// SceneCheck loads a scene manifest and reports dangling references.
type SceneCheck struct {
	Path string
}

var _ Check = (*SceneCheck)(nil)

func (c *SceneCheck) Name() string     { return "scene" }
func (c *SceneCheck) Category() string { return "scene" }

func (c *SceneCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Path},
	}

	doc, err := scene.Load(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}

	if problems := doc.Lint(); len(problems) > 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d problem(s) in %s", len(problems), filepath.Base(c.Path))
		result.Details["problems"] = problems
		result.FixHint = "re-export the manifest from the host scene"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d object(s), %d material(s), %d image(s)",
		len(doc.Objects), len(doc.Materials), len(doc.Images))
	return result
}
