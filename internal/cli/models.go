package cli

import (
	"github.com/spf13/cobra"

	venice "github.com/veniceai/venice-go"
)

var modelsLimit int

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		paginator := client.ListModelsPaginator(venice.PageParams{Limit: modelsLimit})
		models, err := paginator.AllPages(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outJSON(models)
		}

		for _, m := range models {
			if quiet {
				outln(m.ID)
				continue
			}
			out("%-40s %s\n", m.ID, m.OwnedBy)
		}
		return nil
	},
}

var traitsCmd = &cobra.Command{
	Use:   "traits [model-id]",
	Short: "List model traits",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		modelID := ""
		if len(args) > 0 {
			modelID = args[0]
		}

		resp, err := client.GetModelTraits(cmd.Context(), modelID)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outJSON(resp.Data)
		}

		for _, t := range resp.Data {
			out("%-24s %s\n", t.Name, t.Description)
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().IntVar(&modelsLimit, "limit", 0, "Page size (0 uses the server default)")
	modelsCmd.AddCommand(traitsCmd)
}
