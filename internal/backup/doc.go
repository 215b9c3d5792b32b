// Package backup snapshots scene manifests before meshkit rewrites them.
//
// Each snapshot is stored in a timestamped directory containing:
//
//   - manifest.json: Metadata about the snapshot including file hashes
//   - A copy of the scene manifest with preserved permissions
//
// Snapshot locations follow this hierarchy:
//
//	$XDG_DATA_HOME/meshkit/backups/
//	└── {scene-name}-{path-hash}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {scene file}
//
// # Creating Backups
//
// The lod and rename commands call [EnsureBackedUp] before saving, which
// takes one snapshot per scene per run and prunes old ones:
//
//	mgr := backup.NewManager(backup.WithRetentionCount(10))
//	if err := backup.EnsureBackedUp(mgr, "props.yaml", "lod"); err != nil {
//	    return err
//	}
//
// # Restoring Backups
//
// [Manager.Restore] verifies the snapshot's SHA256 checksum and writes it
// back atomically. If the scene changed since the snapshot, the current
// version is snapshotted first so the restore can itself be undone.
//
//	manifest, err := mgr.Restore("props.yaml", "20260123T100712.000")
//
// # Listing Backups
//
// [Manager.List] returns snapshots newest first; [Manager.Latest] returns
// only the newest.
//
// # Error Handling
//
//   - [ErrNoBackupsFound]: No snapshots exist for the scene
//   - [ErrBackupCorrupted]: Snapshot file integrity check failed
package backup
