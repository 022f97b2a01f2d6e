// Package llm wraps the OpenAI-compatible chat completions endpoint the
// analysis and generation providers talk to. Only `(system role, prompt) ->
// text` is exposed; model internals stay out of scope.
package llm

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "os"
    "strings"
    "time"
)

const defaultModel = "GLM-4-Flash-250414"

type Client struct {
    BaseURL    string
    APIKey     string
    Model      string
    HTTPClient *http.Client
}

// NewClientFromEnv builds a client from LLM_BASE_URL, LLM_API_KEY and
// LLM_MODEL. The surrounding service layer owns the timeout budget.
func NewClientFromEnv() *Client {
    model := os.Getenv("LLM_MODEL")
    if model == "" {
        model = defaultModel
    }
    return &Client{
        BaseURL:    strings.TrimRight(os.Getenv("LLM_BASE_URL"), "/"),
        APIKey:     os.Getenv("LLM_API_KEY"),
        Model:      model,
        HTTPClient: &http.Client{Timeout: 60 * time.Second},
    }
}

type message struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type chatRequest struct {
    Model       string    `json:"model"`
    Messages    []message `json:"messages"`
    Temperature float64   `json:"temperature"`
    MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
    Choices []struct {
        Message message `json:"message"`
    } `json:"choices"`
    Error *struct {
        Message string `json:"message"`
    } `json:"error,omitempty"`
}

// Complete sends one chat turn and returns the completion text.
func (c *Client) Complete(ctx context.Context, systemRole, prompt string, temperature float64, maxTokens int) (string, error) {
    body, err := json.Marshal(chatRequest{
        Model: c.Model,
        Messages: []message{
            {Role: "system", Content: systemRole},
            {Role: "user", Content: prompt},
        },
        Temperature: temperature,
        MaxTokens:   maxTokens,
    })
    if err != nil {
        return "", err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
    if err != nil {
        return "", err
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+c.APIKey)

    resp, err := c.HTTPClient.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil {
        return "", err
    }
    if resp.StatusCode != http.StatusOK {
        return "", fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
    }

    var parsed chatResponse
    if err := json.Unmarshal(raw, &parsed); err != nil {
        return "", fmt.Errorf("decode completion response: %w", err)
    }
    if parsed.Error != nil {
        return "", fmt.Errorf("completion endpoint error: %s", parsed.Error.Message)
    }
    if len(parsed.Choices) == 0 {
        return "", fmt.Errorf("completion response contained no choices")
    }
    return parsed.Choices[0].Message.Content, nil
}
