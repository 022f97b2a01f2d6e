package llm

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestCompleteReturnsFirstChoice(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "/chat/completions", r.URL.Path)
        require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

        var req chatRequest
        require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
        require.Len(t, req.Messages, 2)
        assert.Equal(t, "system", req.Messages[0].Role)

        json.NewEncoder(w).Encode(map[string]any{
            "choices": []map[string]any{
                {"message": map[string]string{"role": "assistant", "content": "generated copy"}},
            },
        })
    }))
    defer srv.Close()

    c := &Client{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model", HTTPClient: srv.Client()}

    got, err := c.Complete(context.Background(), "you are a copywriter", "write something", 0.8, 100)
    require.NoError(t, err)
    assert.Equal(t, "generated copy", got)
}

func TestCompleteNonOKStatus(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "quota exceeded", http.StatusTooManyRequests)
    }))
    defer srv.Close()

    c := &Client{BaseURL: srv.URL, APIKey: "k", Model: "m", HTTPClient: srv.Client()}

    _, err := c.Complete(context.Background(), "s", "p", 0.5, 10)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "429")
}

func TestCompleteEmptyChoices(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
    }))
    defer srv.Close()

    c := &Client{BaseURL: srv.URL, APIKey: "k", Model: "m", HTTPClient: srv.Client()}

    _, err := c.Complete(context.Background(), "s", "p", 0.5, 10)
    require.Error(t, err)
}
