package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// sceneKey returns the directory name snapshots of a scene are grouped
// under: the file's base name plus a short hash of its absolute path, so
// two "scene.yaml" files in different projects never share history.
func sceneKey(absScene string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(absScene)))
	base := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, filepath.Base(absScene))
	return base + "-" + hex.EncodeToString(sum[:4])
}

// sceneBackupDir returns the snapshot directory for a scene.
// Returns {root}/{scene-key}/
func (m *Manager) sceneBackupDir(absScene string) string {
	return filepath.Join(m.rootDir, sceneKey(absScene))
}

// backupPath returns the full path to a specific snapshot directory.
// Returns {root}/{scene-key}/{id}/
func (m *Manager) backupPath(absScene, backupID string) string {
	return filepath.Join(m.sceneBackupDir(absScene), backupID)
}
