package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thoreinstein/meshkit/internal/backup"
)

const propsScene = `objects:
  - name: Crate
    type: mesh
    mesh: Crate
    selected: true
    materials: [Wood]
  - name: SM_Barrel
    type: mesh
    mesh: SM_Barrel
    materials: [Wood]
  - name: Bad Name
    type: mesh
    mesh: Bad Name
    materials: [Wood]
  - name: Lamp
    type: mesh
    mesh: Lamp
    hidden: true
materials:
  - name: Wood
    use_nodes: true
    nodes:
      - type: TEX_IMAGE
        image: WoodDiffuse
images:
  - name: WoodDiffuse
    packed: true
`

// testEnv is a project directory holding a scene manifest and a config
// file whose backups stay inside the directory.
type testEnv struct {
	dir     string
	scene   string
	config  string
	backups string
}

func newTestEnv(t *testing.T, manifest, extraConfig string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		scene:   filepath.Join(dir, "props.yaml"),
		config:  filepath.Join(dir, "config.yaml"),
		backups: filepath.Join(dir, "backups"),
	}

	if err := os.WriteFile(env.scene, []byte(manifest), 0o644); err != nil {
		t.Fatalf("writing scene: %v", err)
	}

	cfgYAML := "backup:\n  dir: " + env.backups + "\n" + extraConfig
	if err := os.WriteFile(env.config, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return env
}

// run executes the root command with the env's config file.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, append(args, "--config", e.config)...)
}

func (e *testEnv) readScene(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.scene)
	if err != nil {
		t.Fatalf("reading scene: %v", err)
	}
	return string(data)
}

// execute runs rootCmd with fresh flag, viper and backup state and returns
// what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	backup.ResetBackupState()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	if stderr.Len() > 0 {
		t.Logf("stderr:\n%s", stderr.String())
	}
	return stdout.String(), err
}

// resetFlags restores every flag of c and its subcommands to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// containsLine reports whether any line of s starts with word after
// trimming indentation.
func containsLine(s, word string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), word) {
			return true
		}
	}
	return false
}
