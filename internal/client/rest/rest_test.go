package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, error) { return s.token, nil }

func TestClient_JSON_AttachTokenFlag(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	attached := New(srv.URL, true, staticTokens{token: "tok1"})
	_, status, err := attached.JSON(context.Background(), http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bearer tok1", auth)

	detached := New(srv.URL, false, staticTokens{token: "tok1"})
	_, _, err = detached.JSON(context.Background(), http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, auth, "attachToken=false must never set the header")
}

func TestClient_JSON_NoHeaderWithoutSession(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, true, staticTokens{})
	_, _, err := client.JSON(context.Background(), http.MethodGet, "/x", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClient_JSON_NonOKStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"nope"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, false, nil)
	body, status, err := client.JSON(context.Background(), http.MethodPost, "/x", nil, map[string]string{"a": "b"})

	require.NoError(t, err, "the gateway decodes error shapes, not the builder")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"detail":"nope"}`, string(body))
}

func TestClient_JSON_TransportErrorSurfaces(t *testing.T) {
	client := New("http://127.0.0.1:1", false, nil) // nothing listening
	_, _, err := client.JSON(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
}
