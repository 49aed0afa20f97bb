package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetly/sync-client/internal/client/rest"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, error) { return s.token, nil }

func TestClient_Chat_TokenTravelsInBody(t *testing.T) {
	var payload map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]string{"response": "On track.", "thread_id": payload["thread_id"].(string)})
	}))
	defer srv.Close()

	client := NewClient(rest.New(srv.URL, false, nil), staticTokens{token: "tok1"})
	answer, err := client.Chat(context.Background(), "How is the sprint going?", "p1", "u1")

	require.NoError(t, err)
	assert.Equal(t, "On track.", answer)
	assert.Empty(t, auth, "this instance has no header interceptor")
	assert.Equal(t, "How is the sprint going?", payload["message"])
	assert.Equal(t, "p1", payload["project_id"])
	assert.Equal(t, "u1", payload["user_id"])
	assert.Equal(t, "tok1", payload["token"])
	assert.NotEmpty(t, payload["thread_id"])
}

func TestClient_Chat_ThreadIDStableAcrossCalls(t *testing.T) {
	var threads []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		threads = append(threads, payload["thread_id"].(string))
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	client := NewClient(rest.New(srv.URL, false, nil), staticTokens{})
	_, err := client.Chat(context.Background(), "first", "", "u1")
	require.NoError(t, err)
	_, err = client.Chat(context.Background(), "second", "", "u1")
	require.NoError(t, err)

	require.Len(t, threads, 2)
	assert.Equal(t, threads[0], threads[1], "one client instance is one conversation")
}

func TestClient_Chat_DefaultUserID(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	client := NewClient(rest.New(srv.URL, false, nil), staticTokens{})
	_, err := client.Chat(context.Background(), "hello", "", "")

	require.NoError(t, err)
	assert.Equal(t, "1", payload["user_id"])
	_, hasToken := payload["token"]
	assert.False(t, hasToken, "empty token stays off the wire")
}
