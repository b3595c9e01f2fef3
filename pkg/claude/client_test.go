package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-3-haiku-20240307", body["model"])
		assert.EqualValues(t, 600, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-haiku-20240307",
			"content": [{"type": "text", "text": "Respuesta de prueba."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 7}
		}`))
	}))
	defer srv.Close()

	client := NewClient("", WithRequestOptions(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
	))
	resp, err := client.CreateMessage(context.Background(), MessageRequest{
		MaxTokens: 600,
		Messages:  []Message{{Role: "user", Content: "pregunta"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Respuesta de prueba.", resp.Text())
	assert.Equal(t, "end_turn", resp.StopReason)
	assert.EqualValues(t, 12, resp.Usage.InputTokens)
}

func TestCreateMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid key"}}`))
	}))
	defer srv.Close()

	client := NewClient("", WithRequestOptions(
		option.WithAPIKey("bad-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	))
	_, err := client.CreateMessage(context.Background(), MessageRequest{
		MaxTokens: 100,
		Messages:  []Message{{Role: "user", Content: "pregunta"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude: create message")
}

func TestMessageResponseText(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		{Type: "text", Text: "uno "},
		{Type: "tool_use", Text: "ignorado"},
		{Type: "text", Text: "dos"},
	}}
	assert.Equal(t, "uno dos", resp.Text())
}
