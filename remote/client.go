package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 5 * time.Second

// Client talks to the student administration backend.
type Client struct {
	BaseURL   string
	Token     string
	UserAgent string
	Client    *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

// WithHTTPClient sends requests through hc. A nil hc keeps the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.Client = hc
		}
	}
}

// WithTimeout bounds every request, including one the backend never answers.
// The timeout is set on a copy, so a client passed to WithHTTPClient is left as is.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.Client
			hc.Timeout = d
			c.Client = &hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: "studentctl",
		Client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeleteStudent issues DELETE /teacher/students/{id}.
//
// A 2xx answer is decoded into the returned response; an empty body counts
// as success. Any other status yields an *APIError.
func (c *Client) DeleteStudent(ctx context.Context, id string) (*OperationResponse, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	endpoint := c.BaseURL + "/teacher/students/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("delete student %s: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for student %s: %w", id, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var out OperationResponse
		if len(body) > 0 && json.Unmarshal(body, &out) == nil {
			apiErr.Response = &out
		}
		return nil, apiErr
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return &OperationResponse{Success: true}, nil
	}

	var out OperationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response for student %s: %w", id, err)
	}
	return &out, nil
}
