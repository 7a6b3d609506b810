package cli

import (
	"time"

	"github.com/spf13/cobra"

	venice "github.com/veniceai/venice-go"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		paginator := client.ListAPIKeysPaginator(venice.PageParams{})
		keys, err := paginator.AllPages(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outJSON(keys)
		}
		for _, k := range keys {
			status := "active"
			if k.Revoked {
				status = "revoked"
			}
			created := time.Unix(k.Created, 0).Format("2006-01-02")
			out("%-28s ...%s  %-8s %s  %s\n", k.ID, k.LastChars, status, created, k.Name)
		}
		return nil
	},
}

var keysCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := client.CreateAPIKey(cmd.Context(), venice.CreateAPIKeyRequest{Name: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outJSON(resp.Data)
		}
		if !quiet {
			outln("Created key. The full secret is shown only once:")
		}
		outln(resp.Data.Key)
		return nil
	},
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <key-id>",
	Short: "Delete an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := client.DeleteAPIKey(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return outJSON(resp)
		}
		if resp.Deleted {
			out("deleted %s\n", resp.ID)
		} else {
			out("key %s was not deleted\n", resp.ID)
		}
		return nil
	},
}

func init() {
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysCreateCmd)
	keysCmd.AddCommand(keysDeleteCmd)
}
