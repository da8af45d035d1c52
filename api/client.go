package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/fixoncall/fixoncall-client/internal/errors"
)

const maxErrorBody = 1 << 20

// Client sends JSON requests to the remote service. Authorization is the job of the
// http.Client's transport, normally a gateway pipeline.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[api.NewClient] invalid base url %q", baseURL)
	}
	if httpClient == nil {
		return nil, errors.New("[api.NewClient] http client is required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}, nil
}

// Do sends in (if not nil) as JSON and decodes a 2xx body into out (if not nil).
// Non-2xx answers come back as *APIError; transport failures are returned wrapped.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrapf(err, "[api.Do] encoding %s %s", method, path)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return apperrors.Wrapf(err, "[api.Do] building %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("[api.Do] %s %s: %w: %w", method, path, ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrapf(err, "[api.Do] decoding %s %s", method, path)
	}
	return nil
}

// raw performs a call whose payload shape the client does not model.
func (c *Client) raw(ctx context.Context, method, path string, query url.Values, in any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.Do(ctx, method, path, query, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pathID(id string) string {
	return url.PathEscape(id)
}
