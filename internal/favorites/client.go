package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the /api/users/favorites endpoints with a bearer
// token. It implements API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient builds a Client for the given API base URL (e.g.
// "http://localhost:8080") and access token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope mirrors the API response wrapper; only the fields the client
// needs are decoded.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("%s %s: %s", method, path, msg)
	}
	return &env, nil
}

// ListFavorites fetches the user's favorite trails and returns their IDs.
func (c *Client) ListFavorites(ctx context.Context) ([]uint64, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/users/favorites", nil)
	if err != nil {
		return nil, err
	}
	var trails []struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &trails); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	ids := make([]uint64, 0, len(trails))
	for _, t := range trails {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (c *Client) AddFavorite(ctx context.Context, trailID uint64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/favorites/%d", trailID), nil)
	return err
}

func (c *Client) RemoveFavorite(ctx context.Context, trailID uint64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/favorites/%d", trailID), nil)
	return err
}
