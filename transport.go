package venice

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/veniceai/venice-go/internal/httpclient"
)

// joinURL joins a base URL and an endpoint with exactly one separating
// slash, regardless of trailing/leading slashes on either part.
func joinURL(base, endpoint string) (string, error) {
	joined := strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(endpoint, "/")
	if _, err := url.Parse(joined); err != nil {
		return "", &InvalidInputError{Message: fmt.Sprintf("invalid URL %q: %v", joined, err)}
	}
	return joined, nil
}

// checkStatus classifies a completed response by status code. 429 maps to
// *RateLimitError carrying the header snapshot; other non-2xx statuses map
// to *APIError with the code/message extracted from the body. Returns nil
// for 2xx.
func checkStatus(resp *httpclient.Response, info *RateLimitInfo) error {
	if resp.StatusCode == 429 {
		return &RateLimitError{Message: info.String(), Info: info}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, resp.Body)
	}
	return nil
}
