package cli

import (
	"github.com/spf13/cobra"

	"github.com/veniceai/venice-go/internal/cliconf"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		outln(cliconf.ConfigFile())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconf.Load("")
		if err != nil {
			return err
		}
		// Never print the key itself.
		masked := cfg
		if masked.APIKey != "" {
			masked.APIKey = "(set)"
		}
		return outJSON(masked)
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store the API key in the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliconf.Load("")
		if err != nil {
			return err
		}
		cfg.APIKey = args[0]
		if err := cliconf.Save(cfg, ""); err != nil {
			return err
		}
		if !quiet {
			out("saved to %s\n", cliconf.ConfigFile())
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
}
