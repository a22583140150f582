package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gitflow-tools/gitflow/internal/config"
	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
	"github.com/gitflow-tools/gitflow/internal/logging"
)

// Output formats of config show.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// ConfigShowFlags holds flags specific to the config show command.
type ConfigShowFlags struct {
	// OutputFormat specifies the output format (yaml or json).
	OutputFormat string
}

// AddConfigCommand adds the config command group.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the gitflow configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigShowCmd(flags, &ConfigShowFlags{}))
	root.AddCommand(cmd)
}

// newConfigShowCmd creates the 'config show' subcommand for displaying configuration.
func newConfigShowCmd(flags *GlobalFlags, sf *ConfigShowFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective gitflow configuration after merging all sources:

  - built-in defaults
  - global ~/.gitflow/config.yaml
  - project .gitflow.yaml (or --config)
  - GITFLOW_* environment variables

Examples:
  gitflow config show
  gitflow config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := GetLogger().WithContext(cmd.Context())
			return runConfigShow(ctx, cmd.OutOrStdout(), flags, sf)
		},
	}
	cmd.Flags().StringVarP(&sf.OutputFormat, "output", "o", formatYAML, "output format (yaml or json)")
	return cmd
}

func runConfigShow(ctx context.Context, w io.Writer, flags *GlobalFlags, sf *ConfigShowFlags) error {
	if sf.OutputFormat != formatYAML && sf.OutputFormat != formatJSON {
		return fmt.Errorf("output format %q (use %s or %s): %w",
			sf.OutputFormat, formatYAML, formatJSON, gferrors.ErrUnsupported)
	}

	dir := flags.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}
	cfg, err := config.Load(ctx, config.LoadOptions{ProjectDir: dir, ConfigFile: flags.ConfigFile})
	if err != nil {
		return err
	}
	return writeConfig(w, cfg, sf.OutputFormat)
}

// writeConfig encodes cfg. Credentials embedded in values are redacted.
func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	var data []byte
	var err error
	if format == formatJSON {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return gferrors.Wrap(err, "encode configuration")
	}
	_, err = logging.NewFilteringWriter(w).Write(data)
	return err
}
