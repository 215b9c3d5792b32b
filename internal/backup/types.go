package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// Default configuration values.
const (
	// DefaultRetentionCount is the default number of snapshots kept per scene.
	DefaultRetentionCount = 10
)

// manifestFile is the metadata file inside each snapshot directory.
const manifestFile = "manifest.json"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no snapshots exist for the scene.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates backup file integrity verification failed.
	// This occurs when a file's SHA256 hash doesn't match the manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// BackupManifest contains metadata about a scene snapshot.
// It is stored as manifest.json in each backup directory.
type BackupManifest struct {
	// Version is the manifest format version for forward compatibility.
	Version int `json:"version"`

	// CreatedAt is when the backup was created.
	CreatedAt time.Time `json:"created_at"`

	// Scene is the absolute path of the scene manifest that was saved.
	Scene string `json:"scene"`

	// Operation names the command that triggered the snapshot (lod, rename,
	// restore).
	Operation string `json:"operation,omitempty"`

	// Files contains metadata for each backed up file.
	Files []BackupFile `json:"files"`

	// MeshkitVersion is the version of meshkit that created this backup.
	MeshkitVersion string `json:"meshkit_version"`

	// ID is the backup identifier (timestamp format: 20260123T100712.123).
	// This field is populated when loading from disk but not stored in JSON.
	ID string `json:"-"`
}

// BackupFile contains metadata for a single backed up file.
type BackupFile struct {
	// OriginalPath is the absolute path where the file was located.
	OriginalPath string `json:"original_path"`

	// RelPath is the relative path within the backup directory.
	RelPath string `json:"rel_path"`

	// SHA256Hash is the hex-encoded SHA256 hash of the file contents.
	SHA256Hash string `json:"sha256_hash"`

	// Mode is the file's permission bits.
	Mode fs.FileMode `json:"mode"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`
}
