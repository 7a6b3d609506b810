package venice

import (
	"context"
	"fmt"
)

// APIKeyRateLimits holds the per-key budgets the vendor enforces.
type APIKeyRateLimits struct {
	RequestsPerMinute *int64 `json:"requests_per_minute,omitempty"`
	RequestsPerDay    *int64 `json:"requests_per_day,omitempty"`
	TokensPerMinute   *int64 `json:"tokens_per_minute,omitempty"`
}

// APIKey describes one existing API key. The key material itself is never
// returned by the listing endpoint, only its trailing characters.
type APIKey struct {
	ID         string            `json:"id"`
	Object     string            `json:"object,omitempty"`
	Name       string            `json:"name,omitempty"`
	Created    int64             `json:"created"`
	LastChars  string            `json:"last_chars"`
	Revoked    bool              `json:"revoked"`
	RateLimits *APIKeyRateLimits `json:"rate_limits,omitempty"`
}

// ListAPIKeysResponse is one page of the API key listing.
type ListAPIKeysResponse struct {
	Data       []APIKey `json:"data"`
	Object     string   `json:"object,omitempty"`
	HasMore    bool     `json:"has_more"`
	NextCursor string   `json:"next_cursor"`

	RateLimit *RateLimitInfo `json:"-"`
}

func (r *ListAPIKeysResponse) PageItems() []APIKey    { return r.Data }
func (r *ListAPIKeysResponse) PageHasMore() bool      { return r.HasMore }
func (r *ListAPIKeysResponse) PageNextCursor() string { return r.NextCursor }

// ListAPIKeys fetches the first page of API keys with the vendor's default
// page size.
func (c *Client) ListAPIKeys(ctx context.Context) (*ListAPIKeysResponse, error) {
	return c.ListAPIKeysWithParams(ctx, PageParams{})
}

// ListAPIKeysWithParams fetches one page of API keys.
func (c *Client) ListAPIKeysWithParams(ctx context.Context, params PageParams) (*ListAPIKeysResponse, error) {
	var out ListAPIKeysResponse
	info, err := c.get(ctx, "api_keys", params.Values(), &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// ListAPIKeysPaginator returns a paginator over the API key listing.
func (c *Client) ListAPIKeysPaginator(params PageParams) *Paginator[APIKey] {
	fetch := func(ctx context.Context, p PageParams) (PageInfo[APIKey], *RateLimitInfo, error) {
		resp, err := c.ListAPIKeysWithParams(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		return resp, resp.RateLimit, nil
	}
	return NewPaginator(fetch, params)
}

// CreateAPIKeyRequest describes a key creation call.
type CreateAPIKeyRequest struct {
	Name       string            `json:"name"`
	RateLimits *APIKeyRateLimits `json:"rate_limits,omitempty"`
}

// CreatedAPIKey is a freshly minted key. Key holds the full secret and is
// only returned at creation time.
type CreatedAPIKey struct {
	ID         string            `json:"id"`
	Object     string            `json:"object"`
	Name       string            `json:"name"`
	Created    int64             `json:"created"`
	Key        string            `json:"key"`
	RateLimits *APIKeyRateLimits `json:"rate_limits,omitempty"`
}

// CreateAPIKeyResponse wraps a created key.
type CreateAPIKeyResponse struct {
	Data   CreatedAPIKey `json:"data"`
	Object string        `json:"object"`

	RateLimit *RateLimitInfo `json:"-"`
}

// CreateAPIKey creates a new API key.
func (c *Client) CreateAPIKey(ctx context.Context, req CreateAPIKeyRequest) (*CreateAPIKeyResponse, error) {
	if req.Name == "" {
		return nil, &InvalidInputError{Message: "name must not be empty"}
	}

	var out CreateAPIKeyResponse
	info, err := c.post(ctx, "api_keys", req, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// DeleteAPIKeyResponse confirms a key deletion.
type DeleteAPIKeyResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
	Object  string `json:"object"`

	RateLimit *RateLimitInfo `json:"-"`
}

// DeleteAPIKey deletes the API key with the given ID.
func (c *Client) DeleteAPIKey(ctx context.Context, keyID string) (*DeleteAPIKeyResponse, error) {
	if keyID == "" {
		return nil, &InvalidInputError{Message: "key ID must not be empty"}
	}

	var out DeleteAPIKeyResponse
	info, err := c.del(ctx, fmt.Sprintf("api_keys/%s", keyID), &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// GenerateWeb3KeyRequest describes a Web3 key generation call.
type GenerateWeb3KeyRequest struct {
	WalletAddress string `json:"wallet_address"`
	Name          string `json:"name,omitempty"`
}

// Web3KeyData is a freshly minted wallet-bound key.
type Web3KeyData struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	Name          string `json:"description"`
	CreatedAt     string `json:"createdAt"`
	Key           string `json:"key"`
	WalletAddress string `json:"wallet_address"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
}

// GenerateWeb3KeyResponse wraps a generated Web3 key.
type GenerateWeb3KeyResponse struct {
	Data   Web3KeyData `json:"data"`
	Object string      `json:"object"`

	RateLimit *RateLimitInfo `json:"-"`
}

// GenerateWeb3Key generates an API key bound to a wallet address.
func (c *Client) GenerateWeb3Key(ctx context.Context, req GenerateWeb3KeyRequest) (*GenerateWeb3KeyResponse, error) {
	if req.WalletAddress == "" {
		return nil, &InvalidInputError{Message: "wallet address must not be empty"}
	}

	var out GenerateWeb3KeyResponse
	info, err := c.post(ctx, "api_keys/generate_web3_key", req, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}
