// Package commands wires the adapter's operations to a CLI. Each subcommand
// gathers flags, runs one reports.Service operation, and renders the
// structured result as YAML; no column formatting happens here.
package commands

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tallygate-dev/tallygate/internal/analytics"
	"github.com/tallygate-dev/tallygate/internal/buildinfo"
	"github.com/tallygate-dev/tallygate/internal/classify"
	"github.com/tallygate-dev/tallygate/internal/config"
	"github.com/tallygate-dev/tallygate/internal/reports"
	"github.com/tallygate-dev/tallygate/internal/transport"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	endpoint   string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tallygate",
		Short:   "Domain-level reports and commands over the Tally XML gateway",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to tallygate.yaml (optional)")
	rootCmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "engine endpoint, overrides config and TALLY_URL")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log transport activity to stderr")

	rootCmd.AddCommand(newReportCommand(opts))
	rootCmd.AddCommand(newCreateCommand(opts))
	rootCmd.AddCommand(newBackupCommand(opts))

	return rootCmd
}

// buildService assembles a reports.Service from flags, an optional .env
// file, the optional YAML config, and environment overrides, in that
// precedence order (flags win).
func buildService(opts *rootOptions) (*reports.Service, error) {
	// A .env beside the binary is a convenience for local runs; absence is
	// not an error.
	_ = godotenv.Load()

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.FromEnv(cfg); err != nil {
		return nil, err
	}
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}

	table := classify.DefaultTable()
	if cfg.KeywordTable != "" {
		loaded, err := classify.LoadTable(cfg.KeywordTable)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	log := zap.NewNop()
	if opts.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("building logger: %w", err)
		}
		log = dev
	}

	t := transport.NewHTTP(cfg.Endpoint, cfg.Timeout(), log)
	return reports.NewService(t, table, analytics.PlaceholderBudget{}, log), nil
}

// render writes a result as YAML.
func render(w io.Writer, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// run executes one service operation and renders its result.
func run(cmd *cobra.Command, opts *rootOptions, op func(*reports.Service) (any, error)) error {
	svc, err := buildService(opts)
	if err != nil {
		return err
	}
	result, err := op(svc)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), result)
}
