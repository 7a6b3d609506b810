package httpclient

import "net/http"

// WithHeader returns an option that sets key to value on the outgoing
// request, replacing any prior value.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithBearer returns an option that authenticates the request with a
// bearer token.
func WithBearer(token string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}
