package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/export"
	"github.com/thoreinstein/meshkit/internal/logging"
	"github.com/thoreinstein/meshkit/internal/scene"
	"github.com/thoreinstein/meshkit/internal/validator"
	"github.com/thoreinstein/meshkit/pkg/fileutil"
)

var (
	validateSelection selectionFlags
	validateAll       bool
	validateFormat    string
	validateReport    string
)

func init() {
	validateSelection.register(validateCmd)
	validateCmd.Flags().BoolVar(&validateAll, "all", false,
		"also list clean objects and the checks they passed")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text",
		"report format: text, json, yaml")
	validateCmd.Flags().StringVar(&validateReport, "report", "",
		"write the report to a file instead of stdout")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <scene>",
	Short: "Check the selected objects against the export rules",
	Long: `Check every visible selected object of a scene manifest.

Each object must have a name made of letters, digits and underscores and a
scale of (1, 1, 1). Meshes additionally need a mesh datablock named like the
object, at least one material, and every image texture their materials use
must be packed or exist on disk.

The report lists objects with errors or warnings. Use --all to include clean
objects and the checks they passed. The exit status is 1 when any object
has an error.`,
	Example: `  # Check the selection stored in the manifest
  meshkit validate scene.yaml

  # Check two named objects and show everything
  meshkit validate scene.yaml --object Crate --object Barrel --all

  # Machine-readable report
  meshkit validate scene.yaml --format json --report report.json

  See Also: meshkit export`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := validator.ParseFormat(validateFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	doc, err := loadScene(args[0])
	if err != nil {
		return err
	}

	objs, err := validateSelection.resolve(doc)
	if err != nil {
		return err
	}

	visible := scene.Visible(objs)
	if len(visible) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No visible objects selected")
		return errors.NewUserError(errors.ErrNoSelection, "Select objects in the manifest or pass --object")
	}

	v := validator.New(
		validator.WithProjectDir(doc.ProjectRoot()),
		validator.WithLogger(logging.FromContext(cmd.Context())),
	)
	summary := v.Validate(doc.Candidates(visible))

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if validateReport != "" {
		out = &buf
	}

	if err := validator.NewReporter(out, format, validator.WithAll(validateAll)).Report(summary); err != nil {
		return errors.NewSystemError(err, "")
	}
	if format == validator.FormatText {
		for _, hint := range export.Hints(summary, exportConfig(doc)) {
			fmt.Fprintln(out, hint)
		}
	}

	if validateReport != "" {
		if err := fileutil.AtomicWriteFile(validateReport, buf.Bytes(), 0o644); err != nil {
			return errors.NewSystemError(err, "Check that the report directory exists")
		}
	}

	if !summary.AllValid {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrValidationFailed, "%s", strings.Join(summary.Failed(), ", ")), "")
	}
	return nil
}
