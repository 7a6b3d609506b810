// Package venice is a typed client for the Venice.ai HTTP API: chat
// completions (including server-sent-event streaming), image generation and
// upscaling, model listing, and API key management.
//
// Construct a Client with an API key, then call the endpoint methods. Every
// operation takes a context.Context, returns a typed response carrying the
// rate-limit snapshot parsed from the response headers, and classifies
// failures into the error types in this package.
//
//	client, err := venice.New(os.Getenv("VENICE_API_KEY"),
//		venice.WithRetries(),
//		venice.WithRateLimiting(),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.CreateChatCompletion(ctx, venice.ChatCompletionRequest{
//		Model:    "llama-3.3-70b",
//		Messages: []venice.ChatMessage{venice.UserMessage("Tell me about AI")},
//	})
package venice

// DefaultBaseURL is the production Venice.ai API endpoint.
const DefaultBaseURL = "https://api.venice.ai/api/v1"

// Bool returns a pointer to v. Helper for optional request fields.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v. Helper for optional request fields.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v. Helper for optional request fields.
func Float64(v float64) *float64 { return &v }
