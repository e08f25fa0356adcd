// Package neural is a thin client for a local Ollama instance, backing the
// optional /summary command.
package neural

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	BaseURL string
	Model   string
	http    *http.Client
}

func NewClient(url, model string) *Client {
	if url == "" {
		url = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &Client{
		BaseURL: url,
		Model:   model,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type completionResponse struct {
	Response string `json:"response"`
}

// Generate runs a single non-streaming completion.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{Model: c.Model, Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var result completionResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return result.Response, nil
}

// SummarizeDay condenses a daily note into a few sentences.
func (c *Client) SummarizeDay(ctx context.Context, date, content string) (string, error) {
	prompt := fmt.Sprintf(`Task: Summarize this daily journal note for %s in 3-4 sentences, in the language of the note.
Note:
%s
Summary:`, date, content)
	return c.Generate(ctx, prompt)
}

// SuggestTasks proposes follow-up tasks based on the note.
func (c *Client) SuggestTasks(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf(`Task: Based on this daily journal note, suggest up to 3 follow-up tasks.
Constraint: One task per line, formatted as "- [ ] task text", in the language of the note.
Note:
%s
Tasks:`, content)
	return c.Generate(ctx, prompt)
}
