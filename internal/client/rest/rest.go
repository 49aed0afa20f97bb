package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// TokenSource yields the current session token. An empty string means no
// session is active and no Authorization header is attached.
type TokenSource interface {
	Token() (string, error)
}

// Client is the outbound request builder shared by every backend client.
// Whether the bearer token is attached automatically is a declared
// configuration per backend instance, not an accident of which code path
// built the request: the primary API and the meeting-analysis instance get
// attachToken=true, the project-assistant instance gets false and carries
// the token as a body field instead.
type Client struct {
	baseURL     string
	attachToken bool
	tokens      TokenSource
	httpClient  *http.Client
}

func New(baseURL string, attachToken bool, tokens TokenSource) *Client {
	return &Client{
		baseURL:     baseURL,
		attachToken: attachToken,
		tokens:      tokens,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// JSON performs one request with an optional JSON body and returns the raw
// response body and status code. Non-2xx statuses are not errors here; the
// calling gateway decodes the backend's error shape itself.
func (c *Client) JSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req); err != nil {
		return nil, 0, err
	}

	return c.do(req)
}

// Multipart uploads a single file under the given form field.
func (c *Client) Multipart(ctx context.Context, path, field, filename string, file io.Reader) ([]byte, int, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, 0, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, 0, fmt.Errorf("copy file into form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, 0, fmt.Errorf("finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path, nil), &buf)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := c.authorize(req); err != nil {
		return nil, 0, err
	}

	return c.do(req)
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) authorize(req *http.Request) error {
	if !c.attachToken || c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
