package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/export"
	"github.com/thoreinstein/meshkit/internal/logging"
	"github.com/thoreinstein/meshkit/internal/paths"
	"github.com/thoreinstein/meshkit/internal/scene"
	"github.com/thoreinstein/meshkit/internal/validator"
)

var (
	exportSelection    selectionFlags
	exportDest         string
	exportFileName     string
	exportEach         bool
	exportNoAnimations bool
	exportNoTextures   bool
)

func init() {
	exportSelection.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportDest, "dest", "d", "",
		`output directory; "//" is the project directory (default: export.path)`)
	exportCmd.Flags().StringVar(&exportFileName, "file-name", "",
		"batch output file name (default: export.file_name)")
	exportCmd.Flags().BoolVar(&exportEach, "each", false,
		"write one file per object")
	exportCmd.Flags().BoolVar(&exportNoAnimations, "no-animations", false,
		"do not bake animation")
	exportCmd.Flags().BoolVar(&exportNoTextures, "no-textures", false,
		"do not copy or embed textures")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <scene>",
	Short: "Validate and export the selected objects",
	Long: `Validate the visible selected objects and, only if every one passes,
hand them to the configured exporter command.

Objects are exported as one batch file named by --file-name, or one file
per object with --each. Per-object exports stop at the first failure; files
already written are kept.

The exporter is the argv template in export.command. Its arguments may use
the placeholders {output}, {objects}, {source}, {bake_anim},
{embed_textures}, {path_mode}, {object_types} and {scale_options}.`,
	Example: `  # Export the selection as props.fbx next to the scene
  meshkit export scene.yaml --file-name props

  # One file per object into a build directory
  meshkit export scene.yaml --each --dest //build/fbx

  See Also: meshkit validate`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// exportConfig merges the export flags over the loaded configuration.
func exportConfig(doc *scene.Document) export.Config {
	dest := cfg.Export.Path
	if exportDest != "" {
		dest = exportDest
	}
	fileName := cfg.Export.FileName
	if exportFileName != "" {
		fileName = exportFileName
	}
	return export.Config{
		IncludeAnimations: cfg.Export.IncludeAnimations && !exportNoAnimations,
		IncludeTextures:   cfg.Export.IncludeTextures && !exportNoTextures,
		Each:              cfg.Export.Each || exportEach,
		Destination:       paths.Resolve(doc.ProjectRoot(), dest),
		FileName:          fileName,
		Extension:         cfg.Export.Extension,
		Source:            doc.SourcePath(),
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(cfg.Export.Command) == 0 {
		return errors.NewConfigError(export.ErrNoCommand)
	}

	doc, err := loadScene(args[0])
	if err != nil {
		return err
	}

	objs, err := exportSelection.resolve(doc)
	if err != nil {
		return err
	}

	logger := logging.FromContext(cmd.Context())
	v := validator.New(
		validator.WithProjectDir(doc.ProjectRoot()),
		validator.WithLogger(logger),
	)
	exporter := &export.CommandExporter{
		Args:   cfg.Export.Command,
		Dir:    doc.ProjectRoot(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger,
	}
	gate := export.NewGate(exporter,
		export.WithValidator(v),
		export.WithLogger(logger),
	)

	candidates := doc.Candidates(objs)
	outcome := gate.Run(cmd.Context(), candidates, exportConfig(doc))

	if outcome.Reason == export.ReasonInvalid {
		summary := v.Validate(doc.Candidates(scene.Visible(objs)))
		if err := validator.NewReporter(cmd.ErrOrStderr(), validator.FormatText).Report(summary); err != nil {
			logger.Warn("writing validation report", "error", err)
		}
	}

	printOutcome(cmd.OutOrStdout(), outcome)
	return outcomeError(outcome)
}
