package backup

import (
	"path/filepath"
	"sync"

	"github.com/thoreinstein/meshkit/internal/errors"
)

// backupOnce tracks per-scene backup state within a session.
// This prevents redundant snapshots when several rewrites hit one scene.
var (
	backupOnce  = make(map[string]*sync.Once)
	backupMutex sync.Mutex
)

// EnsureBackedUp snapshots scene before its first modification in this
// session and prunes old snapshots down to the manager's retention count.
//
// The function is safe for concurrent calls and will only create one
// snapshot per scene regardless of how many times it's called. A failed
// snapshot is not remembered, so the next call retries.
func EnsureBackedUp(mgr *Manager, scene, op string) error {
	key, err := filepath.Abs(scene)
	if err != nil {
		key = scene
	}

	backupMutex.Lock()
	once, exists := backupOnce[key]
	if !exists {
		once = &sync.Once{}
		backupOnce[key] = once
	}
	backupMutex.Unlock()

	var backupErr error
	once.Do(func() {
		if _, backupErr = mgr.Backup(scene, op); backupErr != nil {
			// Reset the Once so caller can retry
			backupMutex.Lock()
			delete(backupOnce, key)
			backupMutex.Unlock()
			return
		}
		backupErr = mgr.Prune(scene, mgr.RetentionCount())
	})

	if backupErr != nil {
		return errors.Wrapf(backupErr, "creating backup for %s", scene)
	}

	return nil
}

// ResetBackupState clears the backup state for all scenes.
// This is primarily useful for testing to reset state between tests.
func ResetBackupState() {
	backupMutex.Lock()
	defer backupMutex.Unlock()
	backupOnce = make(map[string]*sync.Once)
}
