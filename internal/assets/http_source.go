package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ClientConfig holds the configuration for the HTTP asset source.
type ClientConfig struct {
	// BaseURL is the root under which assets/hints and assets/answers live.
	BaseURL string

	// Timeout for asset requests.
	Timeout time.Duration
}

// DefaultClientConfig returns the default configuration, reading from
// environment variables.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL: getEnv("ASSETS_BASE_URL", ""),
		Timeout: 30 * time.Second,
	}
}

// getEnv returns an environment variable value or a default if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// HTTPSource fetches hint and answer resources over HTTP.
type HTTPSource struct {
	config     ClientConfig
	httpClient *http.Client
}

// NewHTTPSource creates a new HTTP asset source.
func NewHTTPSource(config ClientConfig) *HTTPSource {
	return &HTTPSource{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Hint returns the hint text for the identifier.
func (s *HTTPSource) Hint(ctx context.Context, id string) (string, error) {
	return s.fetch(ctx, HintPath(id))
}

// Answer returns the expected answer text for the identifier.
func (s *HTTPSource) Answer(ctx context.Context, id string) (string, error) {
	return s.fetch(ctx, AnswerPath(id))
}

// fetch performs a single GET for a plain-text resource.
func (s *HTTPSource) fetch(ctx context.Context, path string) (string, error) {
	url := strings.TrimSuffix(s.config.BaseURL, "/") + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("asset error (status %d): %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(body), nil
}
