package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/meshkit/internal/action"
	"github.com/thoreinstein/meshkit/internal/backup"
	"github.com/thoreinstein/meshkit/internal/cli/prompt"
	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/scene"
)

// selectionFlags override the selection stored in the scene manifest.
type selectionFlags struct {
	objects []string
	pick    bool
}

func (f *selectionFlags) register(c *cobra.Command) {
	c.Flags().StringArrayVar(&f.objects, "object", nil,
		"act on the named object instead of the scene selection (repeatable)")
	c.Flags().BoolVar(&f.pick, "pick", false,
		"choose objects interactively")
}

// override reports whether the flags replace the manifest selection.
func (f *selectionFlags) override() bool {
	return len(f.objects) > 0 || f.pick
}

// resolve returns the objects named by --object, narrowed by --pick. With
// neither flag it returns the manifest selection.
func (f *selectionFlags) resolve(doc *scene.Document) ([]*scene.Object, error) {
	objs := doc.Selected()
	if len(f.objects) > 0 {
		var missing []string
		objs, missing = doc.Select(f.objects)
		if len(missing) > 0 {
			return nil, errors.NewUserError(
				errors.Wrapf(errors.ErrNotFound, "object(s) %s", strings.Join(missing, ", ")),
				"Object names are case-sensitive")
		}
	}

	if f.pick {
		pool := scene.Visible(doc.Objects)
		if len(f.objects) > 0 {
			pool = scene.Visible(objs)
		}
		picked, err := prompt.PickObjects(doc, pool)
		if err != nil {
			if errors.Is(err, prompt.ErrSelectionCancelled) || errors.Is(err, prompt.ErrNoObjects) {
				return nil, errors.NewUserError(err, "")
			}
			return nil, errors.NewSystemError(err, "")
		}
		objs = picked
	}

	return objs, nil
}

// loadScene reads the manifest at path.
func loadScene(path string) (*scene.Document, error) {
	doc, err := scene.Load(path)
	if err != nil {
		if errors.Is(err, errors.ErrUnsupportedFormat) {
			return nil, errors.NewUserError(err, "Scene manifests end in .yaml, .yml, .json or .toml")
		}
		return nil, errors.NewUserError(err, "Check the scene path and its contents")
	}
	return doc, nil
}

// newBackupManager builds a snapshot manager from the loaded configuration.
func newBackupManager() *backup.Manager {
	return backup.NewManager(
		backup.WithBackupDir(cfg.BackupDir()),
		backup.WithRetentionCount(cfg.Backup.Retention),
	)
}

// saveScene writes doc back to disk, snapshotting the previous contents
// first unless backups are disabled.
func saveScene(doc *scene.Document, op string, noBackup bool) error {
	if cfg.Backup.Enabled && !noBackup {
		if err := backup.EnsureBackedUp(newBackupManager(), doc.Path(), op); err != nil {
			return errors.NewSystemError(err, "Use --no-backup to write without a snapshot")
		}
	}
	if err := doc.Save(); err != nil {
		return errors.NewSystemError(err, "")
	}
	return nil
}

// printOutcome writes the outcome reason followed by its items.
func printOutcome(w io.Writer, o action.Outcome) {
	switch o.Status {
	case action.StatusSucceeded:
		fmt.Fprintln(w, color.GreenString("✓ %s", o.Reason))
	case action.StatusCancelled:
		fmt.Fprintln(w, color.YellowString("! %s", o.Reason))
	default:
		fmt.Fprintln(w, color.RedString("✗ %s", o.Reason))
	}
	for _, item := range o.Items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

// outcomeError maps an outcome to the process exit status: cancelled runs
// are user errors, failed runs are system errors.
func outcomeError(o action.Outcome) error {
	switch o.Status {
	case action.StatusSucceeded:
		return nil
	case action.StatusCancelled:
		return errors.NewUserError(errors.New(o.Reason), "")
	default:
		return errors.NewSystemError(errors.New(o.Reason), "")
	}
}
