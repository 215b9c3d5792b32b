package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/meshkit/internal/backup"
	"github.com/thoreinstein/meshkit/internal/errors"
)

var backupListJSON bool

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output in JSON format")
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage scene snapshots",
	Long: `Manage the snapshots meshkit takes before it rewrites a scene manifest.

The lod and rename commands snapshot a scene the first time they write it.
Snapshots are kept per scene under backup.dir (default
$XDG_DATA_HOME/meshkit/backups), and only the newest backup.retention are
kept.`,
	Example: `  # List snapshots of a scene
  meshkit backup list scene.yaml

  # Undo the last rewrite
  meshkit backup restore scene.yaml

  See Also:
    meshkit backup list    - List available snapshots
    meshkit backup restore - Restore a snapshot`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list <scene>",
	Short: "List snapshots of a scene",
	Long:  `List the snapshots of a scene manifest, most recent first.`,
	Example: `  # List snapshots
  meshkit backup list scene.yaml

  # Output as JSON
  meshkit backup list scene.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <scene> [backup-id]",
	Short: "Restore a scene from a snapshot",
	Long: `Restore a scene manifest from a snapshot. Without a backup ID the most
recent snapshot is used.

The snapshot is verified before it is written. If the scene changed since
the snapshot, its current contents are snapshotted first so the restore can
itself be undone.`,
	Example: `  # Restore the most recent snapshot
  meshkit backup restore scene.yaml

  # Restore a specific snapshot
  meshkit backup restore scene.yaml 20260123T100712.123`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBackupRestore,
}

// backupInfo represents a single snapshot in JSON output.
type backupInfo struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Operation      string    `json:"operation"`
	Size           int64     `json:"size"`
	MeshkitVersion string    `json:"meshkit_version"`
}

func runBackupList(cmd *cobra.Command, args []string) error {
	return listBackups(cmd.OutOrStdout(), newBackupManager(), args[0], backupListJSON)
}

func listBackups(w io.Writer, mgr *backup.Manager, scenePath string, asJSON bool) error {
	manifests, err := mgr.List(scenePath)
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.NewSystemError(errors.Wrapf(err, "listing backups for %s", scenePath), "")
	}

	infos := make([]backupInfo, len(manifests))
	for i, m := range manifests {
		var size int64
		for _, f := range m.Files {
			size += f.Size
		}
		infos[i] = backupInfo{
			ID:             m.ID,
			CreatedAt:      m.CreatedAt,
			Operation:      m.Operation,
			Size:           size,
			MeshkitVersion: m.MeshkitVersion,
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(infos), "encoding JSON")
	}

	if len(infos) == 0 {
		fmt.Fprintf(w, "No backups found for %s\n", scenePath)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tOPERATION\tSIZE")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			info.ID,
			info.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			info.Operation,
			info.Size)
	}
	return errors.Wrap(tw.Flush(), "writing backup list")
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	var id string
	if len(args) > 1 {
		id = args[1]
	}
	return restoreBackup(cmd.OutOrStdout(), newBackupManager(), args[0], id)
}

func restoreBackup(w io.Writer, mgr *backup.Manager, scenePath, id string) error {
	if id == "" {
		latest, err := mgr.Latest(scenePath)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(err, "Run: meshkit backup list "+scenePath)
			}
			return errors.NewSystemError(err, "")
		}
		id = latest.ID
	}

	manifest, err := mgr.Restore(scenePath, id)
	if err != nil {
		switch {
		case errors.Is(err, backup.ErrNoBackupsFound), errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err, "Run: meshkit backup list "+scenePath)
		case errors.Is(err, backup.ErrBackupCorrupted):
			return errors.NewSystemError(err, "The snapshot is damaged; pick another one")
		default:
			return errors.NewSystemError(err, "")
		}
	}

	fmt.Fprintf(w, "Restored %s from backup %s\n", manifest.Scene, manifest.ID)
	return nil
}
