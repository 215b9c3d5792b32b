package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/meshkit/internal/config"
	"github.com/thoreinstein/meshkit/internal/doctor"
	"github.com/thoreinstein/meshkit/internal/errors"
)

var (
	doctorJSON bool
	doctorAll  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show passed checks too")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [scene]",
	Short: "Diagnose setup issues",
	Long: `Run diagnostic checks on the meshkit setup.

Checks that the configuration loads, that the exporter command can be
found and that scene snapshots can be written. With a scene argument the
manifest is also loaded and checked for references to missing objects,
materials or images.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Check the setup
  meshkit doctor

  # Also check a scene manifest, as JSON
  meshkit doctor scene.yaml --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")

func runDoctor(cmd *cobra.Command, args []string) error {
	runner := doctor.NewRunner(&doctor.ConfigCheck{Source: config.Used(), Err: configLoadErr})
	if cfg != nil {
		runner.AddCheck(&doctor.ExporterCheck{Command: cfg.Export.Command})
		runner.AddCheck(&doctor.BackupDirCheck{Dir: cfg.BackupDir(), Enabled: cfg.Backup.Enabled})
	}
	if len(args) == 1 {
		runner.AddCheck(&doctor.SceneCheck{Path: args[0]})
	}

	report := runner.Run()

	w := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		outputDoctorText(w, report, doctorAll)
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if problems, ok := result.Details["problems"].([]string); ok {
			for _, p := range problems {
				fmt.Fprintf(w, "    - %s\n", p)
			}
		}
		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
