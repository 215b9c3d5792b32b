package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/rename"
	"github.com/thoreinstein/meshkit/internal/scene"
)

var (
	renameSelection selectionFlags
	renameOld       string
	renameNew       string
	renameMode      string
	renameTarget    string
	renameDryRun    bool
	renameNoBackup  bool
)

func init() {
	renameSelection.register(renameCmd)
	renameCmd.Flags().StringVar(&renameOld, "old", "",
		"text to match")
	renameCmd.Flags().StringVar(&renameNew, "new", "",
		"replacement text (empty removes the match)")
	renameCmd.Flags().StringVarP(&renameMode, "mode", "m", string(rename.PrefixPrefix),
		"match and insert anchors: "+joinModes())
	renameCmd.Flags().StringVarP(&renameTarget, "target", "t", string(rename.TargetObject),
		"what to rename: object, bone, material, texture")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false,
		"show the renames without writing the scene")
	renameCmd.Flags().BoolVar(&renameNoBackup, "no-backup", false,
		"do not snapshot the scene before writing it")
	rootCmd.AddCommand(renameCmd)
}

func joinModes() string {
	names := make([]string, len(rename.Modes))
	for i, m := range rename.Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

var renameCmd = &cobra.Command{
	Use:   "rename <scene>",
	Short: "Replace a prefix or suffix in object, bone, material or texture names",
	Long: `Replace --old with --new at the start or end of names.

The mode names where --old is matched and where --new goes:
prefix_prefix and suffix_suffix swap in place, prefix_suffix moves a
leading match to the end and suffix_prefix moves a trailing match to the
front. Names that do not match are left alone.

Objects are the visible selection (or --object), bones belong to the
active armature, materials and textures are renamed scene-wide. Names
that collide get a numeric suffix.`,
	Example: `  # SM_Crate -> Crate for the selected objects
  meshkit rename scene.yaml --old SM_

  # Crate_old -> old_Crate
  meshkit rename scene.yaml --old _old --new old_ --mode suffix_prefix

  # Rename bones of the active armature
  meshkit rename scene.yaml --old mixamorig: --target bone --dry-run

  See Also: meshkit backup`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	modeName := cfg.Rename.Mode
	if cmd.Flags().Changed("mode") {
		modeName = renameMode
	}
	targetName := cfg.Rename.Target
	if cmd.Flags().Changed("target") {
		targetName = renameTarget
	}

	mode, err := rename.ParseMode(modeName)
	if err != nil {
		return errors.NewUserError(err, "Valid modes: "+joinModes())
	}
	target, err := rename.ParseTarget(targetName)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	doc, err := loadScene(args[0])
	if err != nil {
		return err
	}

	rcfg := rename.Config{
		Old:    renameOld,
		New:    renameNew,
		Mode:   mode,
		Target: target,
	}
	if renameSelection.override() {
		objs, err := renameSelection.resolve(doc)
		if err != nil {
			return err
		}
		rcfg.Objects = scene.Visible(objs)
	}

	outcome := rename.Apply(doc, rcfg)
	printOutcome(cmd.OutOrStdout(), outcome)
	if !outcome.OK() {
		return outcomeError(outcome)
	}

	switch {
	case renameDryRun:
		fmt.Fprintln(cmd.OutOrStdout(), "Dry run: scene not written.")
		return nil
	case len(outcome.Items) == 0:
		return nil
	}
	return saveScene(doc, "rename", renameNoBackup)
}
