package commands

import (
	"strings"
	"testing"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/lod"
	"github.com/thoreinstein/meshkit/internal/scene"
)

func TestLODCommand_Generate(t *testing.T) {
	env := newTestEnv(t, propsScene, "")

	out, err := env.run(t, "lod", env.scene, "--count", "2")
	if err != nil {
		t.Fatalf("lod failed: %v", err)
	}
	if !strings.Contains(out, lod.ReasonGenerated) {
		t.Errorf("output missing %q\nGot:\n%s", lod.ReasonGenerated, out)
	}

	doc, err := scene.Load(env.scene)
	if err != nil {
		t.Fatalf("reloading scene: %v", err)
	}
	if doc.Object("Crate") != nil || doc.Object("Crate_LOD0") == nil {
		t.Error("base object should be renamed to Crate_LOD0")
	}
	lod2 := doc.Object("Crate_LOD2")
	if lod2 == nil {
		t.Fatal("Crate_LOD2 missing from saved scene")
	}
	if len(lod2.Modifiers) != 1 || lod2.Modifiers[0].Name != "LOD2_Decimate" {
		t.Errorf("unexpected modifiers: %+v", lod2.Modifiers)
	}
	if doc.Object("Crate_LOD3") != nil {
		t.Error("only two levels requested")
	}

	mgr := newBackupManager()
	manifests, err := mgr.List(env.scene)
	if err != nil {
		t.Fatalf("listing backups: %v", err)
	}
	if len(manifests) != 1 || manifests[0].Operation != "lod" {
		t.Errorf("expected one lod snapshot, got %+v", manifests)
	}
}

func TestLODCommand_ConfigDefaults(t *testing.T) {
	env := newTestEnv(t, propsScene, "lod:\n  count: 1\n  decimate_type: unsubdiv\n")

	if _, err := env.run(t, "lod", env.scene, "--no-backup"); err != nil {
		t.Fatalf("lod failed: %v", err)
	}

	doc, err := scene.Load(env.scene)
	if err != nil {
		t.Fatalf("reloading scene: %v", err)
	}
	lod1 := doc.Object("Crate_LOD1")
	if lod1 == nil || len(lod1.Modifiers) != 1 {
		t.Fatalf("Crate_LOD1 with one modifier expected, got %+v", lod1)
	}
	if got := lod1.Modifiers[0]; got.DecimateType != "UNSUBDIV" || got.Iterations != 2 {
		t.Errorf("unexpected modifier %+v", got)
	}
	if doc.Object("Crate_LOD2") != nil {
		t.Error("config count of 1 should create one level")
	}
	if _, err := newBackupManager().List(env.scene); err == nil {
		t.Error("--no-backup should skip the snapshot")
	}
}

func TestLODCommand_DryRun(t *testing.T) {
	env := newTestEnv(t, propsScene, "")

	out, err := env.run(t, "lod", env.scene, "--dry-run")
	if err != nil {
		t.Fatalf("lod failed: %v", err)
	}
	if !strings.Contains(out, "Crate_LOD3") || !strings.Contains(out, "Dry run") {
		t.Errorf("dry run should list the planned objects\nGot:\n%s", out)
	}
	if env.readScene(t) != propsScene {
		t.Error("dry run must not rewrite the scene")
	}
}

func TestLODCommand_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"count too high", []string{"--count", "11"}, "LOD count must be between 1 and 10"},
		{"step too small", []string{"--step", "0.01"}, "Decimate step must be between"},
		{"unknown type", []string{"--type", "planar"}, "planar"},
		{"nothing selected", []string{"--object", "Lamp"}, lod.ReasonNoSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, propsScene, "")

			out, err := env.run(t, append([]string{"lod", env.scene}, tt.args...)...)
			if code := errors.ExitCode(err); code != errors.ExitUser {
				t.Fatalf("exit code = %d, want %d (err: %v)", code, errors.ExitUser, err)
			}
			if !strings.Contains(out+err.Error(), tt.want) {
				t.Errorf("expected %q in output or error\nout: %s\nerr: %v", tt.want, out, err)
			}
			if env.readScene(t) != propsScene {
				t.Error("rejected run must not rewrite the scene")
			}
		})
	}
}
