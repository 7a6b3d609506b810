// Package cli implements the venice command.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	venice "github.com/veniceai/venice-go"
	"github.com/veniceai/venice-go/internal/cliconf"
	"github.com/veniceai/venice-go/internal/logging"
)

// version is injected at build time via -ldflags.
var version = "dev"

var (
	jsonOutput bool
	noColor    bool
	verbose    bool
	quiet      bool
	apiKeyFlag string
)

var rootCmd = &cobra.Command{
	Use:          "venice",
	Short:        "Interact with the Venice.ai API",
	Long:         "A CLI for the Venice.ai API: chat completions, image generation, model listing, and API key management.",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose && quiet {
			verbose = false
		}
		l := newConfiguredLogger()
		ctx := logging.WithLogger(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "API key (overrides config and VENICE_API_KEY)")

	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
}

// ExecuteContext runs the root command with the given context.
// Commands access it via cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newClient builds a venice.Client from the config file, environment, and
// flags. Retries and rate limiting are always on for CLI use.
func newClient(ctx context.Context) (*venice.Client, error) {
	cfg, err := cliconf.Load("")
	if err != nil {
		logging.FromContext(ctx).Warn("config file is malformed, using defaults", "err", err)
	}

	apiKey := cfg.APIKey
	if apiKeyFlag != "" {
		apiKey = apiKeyFlag
	}

	opts := []venice.Option{
		venice.WithRetries(),
		venice.WithRateLimiting(),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, venice.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, venice.WithTimeout(time.Duration(cfg.Timeout*float64(time.Second))))
	}

	return venice.New(apiKey, opts...)
}
