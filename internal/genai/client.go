// Package genai wraps the text-to-image generation endpoint. Results come
// back either inline as base64 or as a short-lived fetch URL; both are
// persisted to disk under the prompt's slug.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"colormypage/pipeline/internal/config"
	"colormypage/pipeline/internal/prompts"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	prefix     string
	model      string
	size       string
	quality    string
	log        zerolog.Logger
}

func NewClient(cfg config.GenAIConfig, logger zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing generation API key")
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		prefix:     cfg.PromptPrefix,
		model:      cfg.Model,
		size:       cfg.Size,
		quality:    cfg.Quality,
		log:        logger,
	}, nil
}

// Result is one generated image, inline-encoded or fetchable by URL.
type Result struct {
	B64JSON string `json:"b64_json"`
	URL     string `json:"url"`
}

type generateRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type generateResponse struct {
	Data  []Result `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate requests n images for promptText, with any configured prefix
// prepended.
func (c *Client) Generate(ctx context.Context, promptText string, n int) ([]Result, error) {
	if c.prefix != "" {
		promptText = c.prefix + " " + promptText
	}

	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  promptText,
		N:       n,
		Size:    c.size,
		Quality: c.quality,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generation API: %w", err)
	}
	defer resp.Body.Close()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil {
			return nil, fmt.Errorf("generation API %d: %s", resp.StatusCode, decoded.Error.Message)
		}
		return nil, fmt.Errorf("generation API returned %d", resp.StatusCode)
	}

	return decoded.Data, nil
}

// Acquire generates n images for spec and writes each to outDir as
// {slug}.png, or {slug}-{i}.png when n > 1. A result carrying neither
// inline bytes nor a URL is logged and skipped; a failed URL fetch aborts
// the whole prompt. Returns the paths written.
func (c *Client) Acquire(ctx context.Context, spec prompts.Spec, n int, outDir string) ([]string, error) {
	results, err := c.Generate(ctx, spec.Title, n)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	key := spec.Slug()
	var saved []string
	for i, res := range results {
		suffix := ""
		if n > 1 {
			suffix = fmt.Sprintf("-%d", i+1)
		}
		path := filepath.Join(outDir, key+suffix+".png")

		data, err := c.resolve(ctx, res)
		if err != nil {
			return saved, err
		}
		if data == nil {
			c.log.Error().
				Str("slug", key).
				Int("result", i).
				Msg("result has neither inline data nor url, skipping")
			continue
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return saved, fmt.Errorf("write %s: %w", path, err)
		}
		c.log.Info().Str("path", path).Msg("image saved")
		saved = append(saved, path)
	}

	return saved, nil
}

// resolve returns the image bytes for a result, or nil when the result is
// empty in both fields.
func (c *Client) resolve(ctx context.Context, res Result) ([]byte, error) {
	if res.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(res.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode inline image: %w", err)
		}
		return data, nil
	}

	if res.URL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("build fetch request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch image url: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch image url: status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read image body: %w", err)
		}
		return data, nil
	}

	return nil, nil
}
