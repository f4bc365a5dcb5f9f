package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/burstworld/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is reported by --version. It is set at build time with -ldflags.
var Version = "dev"

// EnvPrefix prefixes the environment variables that mirror each flag, with
// dashes replaced by underscores: BURSTWORLD_LOG_LEVEL, BURSTWORLD_TICKS...
const EnvPrefix = "BURSTWORLD"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated session
// config, a boolean indicating if the program should exit cleanly (help,
// version, or nothing to run), or an ExitError.
func Parse(args []string, output io.Writer) (*session.Config, bool, error) {
	slog.Debug("CLI parser started.")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg *session.Config
	cmd := &cobra.Command{
		Use:   "burstworld [flags] [MANIFEST_PATH]",
		Short: "Run an entity-component world assembled from plugins.",
		Long: `BurstWorld - a plugin-assembled entity-component simulation.

MANIFEST_PATH is a single .hcl or .yaml file, or a directory of them. The
manifest enables catalog plugins in order and sets the tick loop options.

Every flag can also be set through the environment, e.g. BURSTWORLD_LOG_LEVEL.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("manifest")
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			slog.Debug("Manifest path determined.", "path", path)

			if path == "" {
				slog.Debug("No manifest path provided, printing usage and exiting.")
				return cmd.Help()
			}

			c, err := session.NewConfig(session.Config{
				ManifestPath:    path,
				LogFormat:       strings.ToLower(v.GetString("log-format")),
				LogLevel:        strings.ToLower(v.GetString("log-level")),
				HealthcheckPort: v.GetInt("healthcheck-port"),
				Ticks:           v.GetInt("ticks"),
				Trace:           v.GetBool("trace"),
			})
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringP("manifest", "m", "", "Path to the manifest file or directory.")
	flags.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	flags.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.Int("ticks", 0, "Number of ticks to run, overriding the manifest. 0 keeps the manifest value.")
	flags.Bool("trace", false, "Write tick and system trace spans to the output.")
	if err := v.BindPFlags(flags); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
