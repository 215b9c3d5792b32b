package doctor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/meshkit/internal/errors"
)

func TestConfigCheck(t *testing.T) {
	ok := (&ConfigCheck{Source: "/etc/meshkit.yaml"}).Run()
	assert.Equal(t, SeverityPass, ok.Status)
	assert.Contains(t, ok.Message, "/etc/meshkit.yaml")

	defaults := (&ConfigCheck{}).Run()
	assert.Contains(t, defaults.Message, "defaults")

	bad := (&ConfigCheck{Err: errors.Wrap(errors.ErrInvalidConfig, "lod.count: 99")}).Run()
	assert.Equal(t, SeverityError, bad.Status)
	assert.Contains(t, bad.Message, "lod.count")
	assert.NotEmpty(t, bad.FixHint)
}

func TestExporterCheck(t *testing.T) {
	found := func(file string) (string, error) { return "/usr/bin/" + file, nil }
	missing := func(string) (string, error) { return "", errors.New("executable file not found in $PATH") }

	tests := []struct {
		name     string
		check    *ExporterCheck
		want     Severity
		contains string
	}{
		{"not configured", &ExporterCheck{}, SeverityWarning, "no exporter command"},
		{"found", &ExporterCheck{Command: []string{"blender", "-b"}, LookPath: found}, SeverityPass, "/usr/bin/blender"},
		{"missing", &ExporterCheck{Command: []string{"blender"}, LookPath: missing}, SeverityError, `"blender" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.check.Run()
			assert.Equal(t, tt.want, got.Status)
			assert.Contains(t, got.Message, tt.contains)
		})
	}
}

func TestBackupDirCheck(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		got := (&BackupDirCheck{Dir: "/nowhere"}).Run()
		assert.Equal(t, SeverityInfo, got.Status)
	})

	t.Run("existing writable", func(t *testing.T) {
		dir := t.TempDir()
		got := (&BackupDirCheck{Dir: dir, Enabled: true}).Run()
		assert.Equal(t, SeverityPass, got.Status)
		assert.Equal(t, "backup directory is writable", got.Message)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "probe file must be removed")
	})

	t.Run("created on first use", func(t *testing.T) {
		dir := t.TempDir()
		got := (&BackupDirCheck{Dir: filepath.Join(dir, "a", "b"), Enabled: true}).Run()
		assert.Equal(t, SeverityPass, got.Status)
		assert.Contains(t, got.Message, dir)
	})

	t.Run("file in the way", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "backups")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		got := (&BackupDirCheck{Dir: file, Enabled: true}).Run()
		assert.Equal(t, SeverityError, got.Status)
	})

	t.Run("read-only", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced")
		}
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		got := (&BackupDirCheck{Dir: dir, Enabled: true}).Run()
		assert.Equal(t, SeverityError, got.Status)
		assert.Contains(t, got.FixHint, dir)
	})
}

func TestSceneCheck(t *testing.T) {
	dir := t.TempDir()

	clean := filepath.Join(dir, "clean.yaml")
	require.NoError(t, os.WriteFile(clean, []byte(`objects:
  - name: Crate
    type: mesh
    materials: [Wood]
materials:
  - name: Wood
`), 0o644))

	dangling := filepath.Join(dir, "dangling.yaml")
	require.NoError(t, os.WriteFile(dangling, []byte(`active: Rig
objects:
  - name: Crate
    type: mesh
    materials: [Steel]
`), 0o644))

	got := (&SceneCheck{Path: clean}).Run()
	assert.Equal(t, SeverityPass, got.Status)
	assert.Equal(t, "1 object(s), 1 material(s), 0 image(s)", got.Message)

	got = (&SceneCheck{Path: dangling}).Run()
	assert.Equal(t, SeverityWarning, got.Status)
	assert.Len(t, got.Details["problems"], 2)

	got = (&SceneCheck{Path: filepath.Join(dir, "missing.yaml")}).Run()
	assert.Equal(t, SeverityError, got.Status)
}
