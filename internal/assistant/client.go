// Package assistant talks to a local LLM runtime (Ollama generate API) and
// keeps the chat transcript shown by the dashboard.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/model"
)

// Generator produces a reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Client calls POST {baseURL}/api/generate without streaming.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	log     *logrus.Entry
}

// NewClient returns a client for the runtime at baseURL using model.
func NewClient(baseURL, modelName string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = model.DefaultLLMURL
	}
	if modelName == "" {
		modelName = model.DefaultLLMModel
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		http:    &http.Client{Timeout: timeout},
		log:     logging.NewLogger("assistant"),
	}
}

// Generate sends prompt and returns the model's full response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt, Model: c.model})
	if err != nil {
		return "", fmt.Errorf("assistant: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("assistant: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant: generate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("assistant: read response: %w", err)
	}

	var out generateResponse
	decodeErr := json.Unmarshal(body, &out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && out.Error != "" {
			return "", fmt.Errorf("assistant: generate: status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("assistant: generate: status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("assistant: decode response: %w", decodeErr)
	}

	c.log.WithFields(logrus.Fields{
		"model":   c.model,
		"elapsed": time.Since(start),
		"chars":   len(out.Response),
	}).Debug("generate done")
	return out.Response, nil
}
