package venice

import (
	"context"
	"net/url"
	"strings"
)

// Model describes one model available through the API.
type Model struct {
	ID                      string        `json:"id"`
	Object                  string        `json:"object"`
	OwnedBy                 string        `json:"owned_by"`
	MaxTokens               *int64        `json:"max_tokens,omitempty"`
	ContextSize             *int64        `json:"context_size,omitempty"`
	SupportsStreaming       bool          `json:"supports_streaming"`
	SupportsImageGeneration bool          `json:"supports_image_generation"`
	SupportsChatCompletions bool          `json:"supports_chat_completions"`
	SupportsFunctionCalling bool          `json:"supports_function_calling"`
	Pricing                 *ModelPricing `json:"pricing,omitempty"`
}

// ModelPricing is the per-1K-token cost of a model.
type ModelPricing struct {
	Prompt     *float64 `json:"prompt,omitempty"`
	Completion *float64 `json:"completion,omitempty"`
}

// ListModelsResponse is one page of the model listing.
type ListModelsResponse struct {
	Data       []Model `json:"data"`
	Object     string  `json:"object"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`

	RateLimit *RateLimitInfo `json:"-"`
}

func (r *ListModelsResponse) PageItems() []Model     { return r.Data }
func (r *ListModelsResponse) PageHasMore() bool      { return r.HasMore }
func (r *ListModelsResponse) PageNextCursor() string { return r.NextCursor }

// ListModels fetches the first page of models with the vendor's default
// page size.
func (c *Client) ListModels(ctx context.Context) (*ListModelsResponse, error) {
	return c.ListModelsWithParams(ctx, PageParams{})
}

// ListModelsWithParams fetches one page of models.
func (c *Client) ListModelsWithParams(ctx context.Context, params PageParams) (*ListModelsResponse, error) {
	var out ListModelsResponse
	info, err := c.get(ctx, "models", params.Values(), &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// ListModelsPaginator returns a paginator over the model listing.
func (c *Client) ListModelsPaginator(params PageParams) *Paginator[Model] {
	fetch := func(ctx context.Context, p PageParams) (PageInfo[Model], *RateLimitInfo, error) {
		resp, err := c.ListModelsWithParams(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		return resp, resp.RateLimit, nil
	}
	return NewPaginator(fetch, params)
}

// ModelTrait describes one trait models may carry.
type ModelTrait struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Models      []string `json:"models,omitempty"`
}

// ModelTraitsResponse is the trait listing.
type ModelTraitsResponse struct {
	Data   []ModelTrait `json:"data"`
	Object string       `json:"object"`

	RateLimit *RateLimitInfo `json:"-"`
}

// GetModelTraits lists model traits, optionally filtered to one model ID.
// Pass "" to list traits for all models.
func (c *Client) GetModelTraits(ctx context.Context, modelID string) (*ModelTraitsResponse, error) {
	var query url.Values
	if modelID != "" {
		query = url.Values{"model": {modelID}}
	}

	var out ModelTraitsResponse
	info, err := c.get(ctx, "models/traits", query, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// IsModelCompatible reports whether a model supports the named feature:
// either the model ID carries a ":feature" suffix, or the feature appears
// among the model's traits.
func (c *Client) IsModelCompatible(ctx context.Context, modelID, feature string) (bool, error) {
	if modelID == "" || feature == "" {
		return false, &InvalidInputError{Message: "model ID and feature must not be empty"}
	}
	if strings.HasSuffix(modelID, ":"+feature) {
		return true, nil
	}

	resp, err := c.GetModelTraits(ctx, strings.SplitN(modelID, ":", 2)[0])
	if err != nil {
		return false, err
	}
	for _, trait := range resp.Data {
		if trait.ID == feature || trait.Name == feature {
			return true, nil
		}
	}
	return false, nil
}

// ModelCompatibility maps a source model to compatibility scores against
// other models.
type ModelCompatibility struct {
	SourceModel   string             `json:"source_model"`
	Compatibility map[string]float64 `json:"compatibility"`
	Notes         string             `json:"notes,omitempty"`
}

// CompatibilityMappingResponse is the compatibility-mapping listing.
type CompatibilityMappingResponse struct {
	Data   []ModelCompatibility `json:"data"`
	Object string               `json:"object"`

	RateLimit *RateLimitInfo `json:"-"`
}

// GetCompatibilityMapping lists model compatibility mappings, optionally
// filtered to one source model ID. Pass "" for all mappings.
func (c *Client) GetCompatibilityMapping(ctx context.Context, sourceModel string) (*CompatibilityMappingResponse, error) {
	var query url.Values
	if sourceModel != "" {
		query = url.Values{"source_model": {sourceModel}}
	}

	var out CompatibilityMappingResponse
	info, err := c.get(ctx, "models/compatibility_mapping", query, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}
