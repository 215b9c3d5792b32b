package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/meshkit/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInit(t *testing.T) {
	// Reset viper state
	viper.Reset()

	Init()

	// Check defaults are set
	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if viper.GetInt("lod.count") != 3 {
		t.Errorf("expected lod.count default 3, got %d", viper.GetInt("lod.count"))
	}
	if viper.GetString("export.path") != "//" {
		t.Errorf("expected export.path default //, got %q", viper.GetString("export.path"))
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	Init()

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.True(t, cfg.Export.IncludeAnimations)
	assert.True(t, cfg.Export.IncludeTextures)
	assert.False(t, cfg.Export.Each)
	assert.Equal(t, "fbx", cfg.Export.Extension)
	assert.Empty(t, cfg.Export.Command)
	assert.Equal(t, LODConfig{Count: 3, DecimateType: "collapse", DecimateStep: 0.3}, cfg.LOD)
	assert.Equal(t, RenameConfig{Mode: "prefix_prefix", Target: "object"}, cfg.Rename)
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, 10, cfg.Backup.Retention)
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()
	Init()

	path := writeConfig(t, `
export:
  each: true
  path: //build/fbx
  command: [blender, -b, "{source}", --python, export.py, --, "{output}"]
lod:
  count: 5
  decimate_type: unsubdiv
backup:
  retention: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Export.Each)
	assert.Equal(t, "//build/fbx", cfg.Export.Path)
	assert.Equal(t, []string{"blender", "-b", "{source}", "--python", "export.py", "--", "{output}"}, cfg.Export.Command)
	assert.Equal(t, 5, cfg.LOD.Count)
	assert.Equal(t, "unsubdiv", cfg.LOD.DecimateType)
	assert.InDelta(t, 0.3, cfg.LOD.DecimateStep, 1e-9, "untouched keys keep defaults")
	assert.Equal(t, 3, cfg.Backup.Retention)
	assert.Equal(t, path, Used())
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("MESHKIT_LOD_COUNT", "7")
	t.Setenv("MESHKIT_EXPORT_FILE_NAME", "level")
	Init()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.LOD.Count)
	assert.Equal(t, "level", cfg.Export.FileName)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	// Load with non-existent config file should error
	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() with non-existent explicit path should error")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "lod count out of range",
			content: "lod:\n  count: 11\n",
			wantErr: "lod.count: out of range: 11",
		},
		{
			name:    "unknown decimate type",
			content: "lod:\n  decimate_type: planar\n",
			wantErr: `lod.decimate_type: invalid value: "planar"`,
		},
		{
			name:    "unknown rename mode",
			content: "rename:\n  mode: middle\n",
			wantErr: `rename.mode: invalid value: "middle"`,
		},
		{
			name:    "version",
			content: "version: 0\n",
			wantErr: "version must be >= 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			Init()

			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load(writeConfig(t, "lod: [unterminated\n"))
	assert.Error(t, err)
}

func TestBackupDir(t *testing.T) {
	cfg := &Config{}
	assert.NotEmpty(t, cfg.BackupDir())

	dir := t.TempDir()
	cfg.Backup.Dir = dir
	assert.Equal(t, dir, cfg.BackupDir())
}
