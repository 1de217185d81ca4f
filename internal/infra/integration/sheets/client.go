package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("spreadsheet script url is not configured")

type Client struct {
	scriptURL  string
	httpClient *http.Client
}

func NewClient(scriptURL string) *Client {
	return &Client{
		scriptURL:  scriptURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithHTTP lets callers supply their own http.Client.
func NewClientWithHTTP(scriptURL string, httpClient *http.Client) *Client {
	return &Client{scriptURL: scriptURL, httpClient: httpClient}
}

func (s Submission) form() url.Values {
	return url.Values{
		"name":      {s.Name},
		"email":     {s.Email},
		"phone":     {s.Phone},
		"hasClinic": {s.HasClinic},
		"billing":   {s.Billing},
		"mainBlock": {s.MainBlock},
	}
}

// Submit posts the form. Only transport failures are errors; any HTTP status
// counts as delivered, matching a browser's opaque cross-origin post.
func (c *Client) Submit(ctx context.Context, sub Submission) (Result, error) {
	if c.scriptURL == "" {
		return Result{}, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, strings.NewReader(sub.form().Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("post to spreadsheet script: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return Result{StatusCode: resp.StatusCode}, nil
}
