package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/paths"
	"github.com/thoreinstein/meshkit/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// idLayout is the snapshot ID format. Millisecond precision keeps IDs
// sortable and distinct for back-to-back rewrites.
const idLayout = "20060102T150405.000"

// Manager handles backup creation, restoration, and management.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.rootDir = dir
		}
	}
}

// WithRetentionCount sets the number of snapshots to retain per scene.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RetentionCount returns the number of snapshots kept per scene.
func (m *Manager) RetentionCount() int {
	return m.retentionCount
}

// Backup snapshots a scene manifest before it is rewritten. op names the
// triggering command and is recorded in the manifest.
func (m *Manager) Backup(scene, op string) (*BackupManifest, error) {
	abs, err := absScene(scene)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "scene %s", scene)
		}
		return nil, errors.Wrapf(err, "stat %s", scene)
	}
	if info.IsDir() {
		return nil, errors.Newf("%s is a directory", scene)
	}

	backupID, backupPath, err := m.reserveID(abs)
	if err != nil {
		return nil, err
	}

	bf, err := backupFile(abs, backupPath)
	if err != nil {
		os.RemoveAll(backupPath)
		return nil, errors.Wrapf(err, "backing up file %s", scene)
	}

	manifest := &BackupManifest{
		Version:        ManifestVersion,
		CreatedAt:      m.now().UTC(),
		Scene:          abs,
		Operation:      op,
		Files:          []BackupFile{*bf},
		MeshkitVersion: Version,
		ID:             backupID,
	}

	// Write manifest
	if err := fileutil.AtomicWriteJSON(filepath.Join(backupPath, manifestFile), manifest); err != nil {
		os.RemoveAll(backupPath)
		return nil, errors.Wrap(err, "writing manifest")
	}

	return manifest, nil
}

// reserveID creates a fresh snapshot directory. A "-N" suffix is added
// when another snapshot of the same scene already uses the timestamp.
func (m *Manager) reserveID(abs string) (string, string, error) {
	base := m.now().UTC().Format(idLayout)
	if err := os.MkdirAll(m.sceneBackupDir(abs), 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = base + "-" + strconv.Itoa(i)
		}
		path := m.backupPath(abs, id)
		err := os.Mkdir(path, 0o755)
		if err == nil {
			return id, path, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
}

// backupFile copies a single file into the snapshot directory.
func backupFile(src, backupPath string) (*BackupFile, error) {
	relPath := filepath.Base(src)
	dst := filepath.Join(backupPath, relPath)

	hash, mode, size, err := copyFile(src, dst)
	if err != nil {
		return nil, err
	}

	return &BackupFile{
		OriginalPath: src,
		RelPath:      relPath,
		SHA256Hash:   hash,
		Mode:         mode,
		Size:         size,
	}, nil
}

// Restore writes a snapshot back over its scene. The snapshot is verified
// first. If the current file differs from the snapshot it is itself backed
// up with operation "restore", so a restore can be undone.
func (m *Manager) Restore(scene, backupID string) (*BackupManifest, error) {
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}

	manifest, err := m.Get(scene, backupID)
	if err != nil {
		return nil, err
	}

	backupPath := m.backupPath(manifest.Scene, backupID)
	savedCurrent := false

	for _, bf := range manifest.Files {
		srcPath := filepath.Join(backupPath, bf.RelPath)

		// Verify integrity before restoring
		hash, err := hashFile(srcPath)
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if hash != bf.SHA256Hash {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.RelPath)
		}

		if current, err := hashFile(bf.OriginalPath); err == nil {
			if current == bf.SHA256Hash {
				continue
			}
			if !savedCurrent {
				if _, err := m.Backup(manifest.Scene, "restore"); err != nil {
					return nil, errors.Wrap(err, "saving current scene before restore")
				}
				savedCurrent = true
			}
		}

		data, err := fileutil.ReadFileWithLimit(srcPath)
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}

		// Ensure parent directory exists
		if err := os.MkdirAll(filepath.Dir(bf.OriginalPath), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", bf.OriginalPath)
		}

		if err := fileutil.AtomicWriteFile(bf.OriginalPath, data, bf.Mode.Perm()); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", bf.OriginalPath)
		}
	}

	return manifest, nil
}

// Latest returns the newest snapshot of a scene.
func (m *Manager) Latest(scene string) (*BackupManifest, error) {
	manifests, err := m.List(scene)
	if err != nil {
		return nil, err
	}
	return &manifests[0], nil
}

// List returns all snapshots of a scene, sorted by date (newest first).
func (m *Manager) List(scene string) ([]BackupManifest, error) {
	abs, err := absScene(scene)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.sceneBackupDir(abs))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]BackupManifest, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		manifest, err := m.Get(abs, entry.Name())
		if err != nil {
			// Skip invalid backup directories
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	// Sort by date, newest first; IDs break ties.
	slices.SortFunc(manifests, func(a, b BackupManifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(b.ID, a.ID)
	})

	return manifests, nil
}

// compareIDs orders IDs by timestamp and then by numeric collision suffix.
func compareIDs(a, b string) int {
	aBase, aN := splitID(a)
	bBase, bN := splitID(b)
	if c := strings.Compare(aBase, bBase); c != 0 {
		return c
	}
	return aN - bN
}

func splitID(id string) (string, int) {
	base, suffix, ok := strings.Cut(id, "-")
	if !ok {
		return id, 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return id, 0
	}
	return base, n
}

// Prune removes old snapshots beyond the specified retention count.
// Keeps the most recent 'keep' snapshots of the scene.
func (m *Manager) Prune(scene string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(scene)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil // Nothing to prune
		}
		return err
	}

	// Already sorted newest first, delete everything beyond 'keep'
	for i := keep; i < len(manifests); i++ {
		backupPath := m.backupPath(manifests[i].Scene, manifests[i].ID)
		if err := os.RemoveAll(backupPath); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}

	return nil
}

// Get returns the manifest for a specific snapshot.
func (m *Manager) Get(scene, backupID string) (*BackupManifest, error) {
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}
	abs, err := absScene(scene)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(m.backupPath(abs, backupID), manifestFile)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest BackupManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = backupID
	return &manifest, nil
}

func absScene(scene string) (string, error) {
	if scene == "" {
		return "", errors.New("scene path is required")
	}
	abs, err := filepath.Abs(scene)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", scene)
	}
	return abs, nil
}

// hashFile computes the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies a file from src to dst, returning the SHA256 hash, mode
// and size. The destination file is created with 0644 permissions
// initially, then updated to match the source file's permissions.
func copyFile(src, dst string) (hash string, mode fs.FileMode, size int64, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	// Create destination file
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "creating destination file")
	}

	// Compute hash while copying
	h := sha256.New()
	w := io.MultiWriter(dstFile, h)

	size, err = io.Copy(w, srcFile)
	if err != nil {
		dstFile.Close()
		return "", 0, 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, 0, errors.Wrap(err, "closing destination file")
	}

	// Set permissions to match source
	if err := os.Chmod(dst, mode); err != nil {
		return "", 0, 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, size, nil
}
