package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	venice "github.com/veniceai/venice-go"
	"github.com/veniceai/venice-go/internal/cliconf"
	"github.com/veniceai/venice-go/internal/logging"
)

var (
	chatModel     string
	chatSystem    string
	chatStream    bool
	chatMaxTokens int64
)

var chatCmd = &cobra.Command{
	Use:   "chat <prompt>",
	Short: "Send a chat completion",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		model := chatModel
		if model == "" {
			cfg, _ := cliconf.Load("")
			model = cfg.Model
		}

		var messages []venice.ChatMessage
		if chatSystem != "" {
			messages = append(messages, venice.SystemMessage(chatSystem))
		}
		messages = append(messages, venice.UserMessage(strings.Join(args, " ")))

		req := venice.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
		}
		if chatMaxTokens > 0 {
			req.MaxTokens = venice.Int64(chatMaxTokens)
		}

		if chatStream {
			return runChatStream(cmd, client, req)
		}

		resp, err := client.CreateChatCompletion(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outJSON(resp)
		}
		outln(resp.FirstContent())
		return nil
	},
}

func runChatStream(cmd *cobra.Command, client *venice.Client, req venice.ChatCompletionRequest) error {
	logger := logging.FromContext(cmd.Context())

	stream, err := client.CreateChatCompletionStream(cmd.Context(), req)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *venice.ParseError
			if errors.As(err, &parseErr) {
				logger.Debug("skipping malformed chunk", "err", parseErr)
				continue
			}
			return err
		}
		out("%s", chunk.FirstContent())
	}
	outln()
	return nil
}

func init() {
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "Model ID (defaults to the configured model)")
	chatCmd.Flags().StringVar(&chatSystem, "system", "", "System prompt")
	chatCmd.Flags().BoolVarP(&chatStream, "stream", "s", false, "Stream the response as it is generated")
	chatCmd.Flags().Int64Var(&chatMaxTokens, "max-tokens", 0, "Maximum tokens to generate")
}
