package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/meshkit/internal/config"
	"github.com/thoreinstein/meshkit/internal/errors"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration meshkit runs with, as YAML.

Values come from the defaults, then config.yaml (./config.yaml or
$XDG_CONFIG_HOME/meshkit/config.yaml, or --config), then MESHKIT_*
environment variables such as MESHKIT_LOD_COUNT.`,
	Example: `  # Show the configuration
  meshkit config

  # See the effect of an override
  MESHKIT_EXPORT_EACH=true meshkit config

See Also: meshkit export, meshkit lod`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configLoadErr != nil {
			return errors.NewUserError(configLoadErr, "Fix the value above in "+configSource())
		}
		return printConfig(cmd.OutOrStdout(), cfg, configSource())
	},
}

// configSource names where the configuration was read from.
func configSource() string {
	if used := config.Used(); used != "" {
		return used
	}
	if configFile != "" {
		return configFile
	}
	return "defaults"
}

func printConfig(w io.Writer, c *config.Config, source string) error {
	fmt.Fprintf(w, "# source: %s\n", source)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return errors.Wrap(enc.Close(), "encoding config")
}
