package venice

import (
	"context"
	"net/url"
)

// Chat message roles.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleUser, Content: content}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleAssistant, Content: content}
}

// VeniceParameters carries vendor-specific generation switches.
type VeniceParameters struct {
	IncludeVeniceSystemPrompt *bool  `json:"include_venice_system_prompt,omitempty"`
	EnableWebSearch           string `json:"enable_web_search,omitempty"`
	CharacterSlug             string `json:"character_slug,omitempty"`
}

// ChatCompletionRequest describes a chat completion call.
type ChatCompletionRequest struct {
	Model            string            `json:"model"`
	Messages         []ChatMessage     `json:"messages"`
	MaxTokens        *int64            `json:"max_tokens,omitempty"`
	Temperature      *float64          `json:"temperature,omitempty"`
	TopP             *float64          `json:"top_p,omitempty"`
	Stream           bool              `json:"stream,omitempty"`
	VeniceParameters *VeniceParameters `json:"venice_parameters,omitempty"`
}

// ChatChoice is one generated completion.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Usage reports token accounting for a completion.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// ChatCompletionResponse is the non-streaming chat completion result.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *Usage       `json:"usage,omitempty"`

	// RateLimit is the header snapshot from this response, if present.
	RateLimit *RateLimitInfo `json:"-"`
}

// FirstContent returns the content of the first choice, or "" when the
// response carries none.
func (r *ChatCompletionResponse) FirstContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// ChunkDelta is the incremental message fragment inside a streamed chunk.
// Role is only set on the first chunk of a choice.
type ChunkDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// ChunkChoice is one choice slot within a streamed chunk.
type ChunkChoice struct {
	Index        int        `json:"index"`
	Delta        ChunkDelta `json:"delta"`
	FinishReason string     `json:"finish_reason,omitempty"`
}

// ChatCompletionChunk is a single streamed completion event.
type ChatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

// FirstContent returns the delta content of the first choice, or "".
func (c *ChatCompletionChunk) FirstContent() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Delta.Content
}

func validateChatRequest(req ChatCompletionRequest) error {
	if req.Model == "" {
		return &InvalidInputError{Message: "model must not be empty"}
	}
	if len(req.Messages) == 0 {
		return &InvalidInputError{Message: "messages must not be empty"}
	}
	return nil
}

// CreateChatCompletion requests a complete (non-streaming) chat completion.
// The request's Stream field is forced off.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if err := validateChatRequest(req); err != nil {
		return nil, err
	}
	req.Stream = false

	var out ChatCompletionResponse
	info, err := c.post(ctx, "chat/completions", req, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// CreateChatCompletionStream requests a streaming chat completion. The
// request's Stream field is forced on. The returned stream must be closed
// by the caller.
func (c *Client) CreateChatCompletionStream(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionStream, error) {
	if err := validateChatRequest(req); err != nil {
		return nil, err
	}
	req.Stream = true

	resp, _, err := c.postStream(ctx, "chat/completions", req)
	if err != nil {
		return nil, err
	}
	return newStream[ChatCompletionChunk](resp.Body), nil
}

// ModelFeatureSuffix describes one prompt suffix that toggles an optional
// model feature (appended to the model ID as ":<id>").
type ModelFeatureSuffix struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	Example         string   `json:"example"`
	SupportedModels []string `json:"supported_models"`
}

// ModelFeatureSuffixesResponse wraps the feature-suffix listing.
type ModelFeatureSuffixesResponse struct {
	Data   []ModelFeatureSuffix `json:"data"`
	Object string               `json:"object"`

	RateLimit *RateLimitInfo `json:"-"`
}

// GetModelFeatureSuffixes lists the feature suffixes chat models accept,
// optionally filtered to one model ID. Pass "" to list all suffixes.
func (c *Client) GetModelFeatureSuffixes(ctx context.Context, modelID string) (*ModelFeatureSuffixesResponse, error) {
	var query url.Values
	if modelID != "" {
		query = url.Values{"model": {modelID}}
	}

	var out ModelFeatureSuffixesResponse
	info, err := c.get(ctx, "chat/model_feature_suffix", query, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}
