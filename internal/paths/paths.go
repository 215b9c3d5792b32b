package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/meshkit/internal/errors"
)

// AppName names the config and data subdirectories.
const AppName = "meshkit"

// ProjectPrefix marks a path as relative to the project directory.
const ProjectPrefix = "//"

// DefaultDirPerm is the permission for export destination directories.
const DefaultDirPerm = 0o755

// ErrInvalidPath indicates the provided path is malformed.
var ErrInvalidPath = errors.New("invalid path")

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns <ConfigHome>/meshkit.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns the default root for scene manifest snapshots:
// <DataHome>/meshkit/backups.
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// IsProjectRelative reports whether p uses the "//" project prefix.
func IsProjectRelative(p string) bool {
	return strings.HasPrefix(p, ProjectPrefix)
}

// Resolve turns a host-style path into an absolute, cleaned path.
// "//" and plain relative paths are joined onto projectDir; "~/" is expanded
// to the user's home directory; absolute paths are only cleaned. An empty
// path resolves to projectDir itself.
func Resolve(projectDir, p string) string {
	switch {
	case IsProjectRelative(p):
		p = filepath.FromSlash(strings.TrimPrefix(p, ProjectPrefix))
		return filepath.Join(projectDir, p)
	case p == "~" || strings.HasPrefix(p, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(projectDir, filepath.FromSlash(p))
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used. It returns nil if the directory
// already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" || strings.ContainsRune(path, '\x00') {
		return errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}
