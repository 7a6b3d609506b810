package venice

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/veniceai/venice-go/internal/httpclient"
)

// ImageGenerateRequest describes an image generation call.
type ImageGenerateRequest struct {
	Model          string   `json:"model"`
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negative_prompt,omitempty"`
	StylePreset    string   `json:"style_preset,omitempty"`
	Height         *int64   `json:"height,omitempty"`
	Width          *int64   `json:"width,omitempty"`
	Steps          *int64   `json:"steps,omitempty"`
	CfgScale       *float64 `json:"cfg_scale,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
	SafeMode       *bool    `json:"safe_mode,omitempty"`
	ReturnBinary   *bool    `json:"return_binary,omitempty"`
	HideWatermark  *bool    `json:"hide_watermark,omitempty"`
}

// ImageTiming reports processing durations for a generation request.
type ImageTiming struct {
	TotalMS *float64 `json:"total_ms,omitempty"`
}

// ImageGenerateResponse is the image generation result. Images holds
// base64-encoded image payloads.
type ImageGenerateResponse struct {
	ID     string       `json:"id"`
	Images []string     `json:"images"`
	Timing *ImageTiming `json:"timing,omitempty"`

	RateLimit *RateLimitInfo `json:"-"`
}

// GenerateImage requests image generation.
func (c *Client) GenerateImage(ctx context.Context, req ImageGenerateRequest) (*ImageGenerateResponse, error) {
	if req.Model == "" {
		return nil, &InvalidInputError{Message: "model must not be empty"}
	}
	if req.Prompt == "" {
		return nil, &InvalidInputError{Message: "prompt must not be empty"}
	}

	var out ImageGenerateResponse
	info, err := c.post(ctx, "image/generate", req, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// ImageStyle is one style preset usable with GenerateImage.
type ImageStyle struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	SamplePrompt    string   `json:"sample_prompt,omitempty"`
	SampleImageURL  string   `json:"sample_image_url,omitempty"`
	SupportedModels []string `json:"supported_models,omitempty"`
}

// ListImageStylesResponse is the style-preset listing.
type ListImageStylesResponse struct {
	Data   []ImageStyle `json:"data"`
	Object string       `json:"object"`

	RateLimit *RateLimitInfo `json:"-"`
}

// ListImageStyles lists the available style presets.
func (c *Client) ListImageStyles(ctx context.Context) (*ListImageStylesResponse, error) {
	var out ListImageStylesResponse
	info, err := c.get(ctx, "image/styles", nil, &out)
	if err != nil {
		return nil, err
	}
	out.RateLimit = info
	return &out, nil
}

// ImageUpscaleRequest describes an upscale call. Exactly one of ImageURL or
// ImageData (base64-encoded source image) must be set. Scale defaults to 2
// and must be 2 or 4.
type ImageUpscaleRequest struct {
	Model     string
	ImageURL  string
	ImageData string
	Scale     int
}

// ImageUpscaleResponse carries the upscaled image bytes and the MIME type
// reported by the server.
type ImageUpscaleResponse struct {
	ImageData []byte
	MimeType  string

	RateLimit *RateLimitInfo
}

// UpscaleImage upscales an image. The endpoint takes multipart form data
// and answers with the raw upscaled image.
func (c *Client) UpscaleImage(ctx context.Context, req ImageUpscaleRequest) (*ImageUpscaleResponse, error) {
	if req.Model == "" {
		return nil, &InvalidInputError{Message: "model must not be empty"}
	}

	scale := req.Scale
	if scale == 0 {
		scale = 2
	}
	if scale != 2 && scale != 4 {
		return nil, &InvalidInputError{Message: fmt.Sprintf("scale must be 2 or 4, got %d", scale)}
	}

	form := httpclient.NewForm()
	form.Text("model", req.Model)
	form.Text("scale", strconv.Itoa(scale))

	switch {
	case req.ImageURL != "":
		form.Text("image_url", req.ImageURL)
	case req.ImageData != "":
		decoded, err := base64.StdEncoding.DecodeString(req.ImageData)
		if err != nil {
			return nil, &InvalidInputError{Message: fmt.Sprintf("image data is not valid base64: %v", err)}
		}
		form.File("image", "image.png", "image/png", decoded)
	default:
		return nil, &InvalidInputError{Message: "either image URL or image data must be provided"}
	}

	data, mimeType, info, err := c.postMultipartBinary(ctx, "image/upscale", form)
	if err != nil {
		return nil, err
	}
	return &ImageUpscaleResponse{ImageData: data, MimeType: mimeType, RateLimit: info}, nil
}
