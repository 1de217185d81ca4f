// Package adminapi is the HTTP client for the admin API used by the
// operator console and CLI.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

// APIError is a non-2xx response. Reason is the server's error message when
// the body carried one.
type APIError struct {
	StatusCode int
	Reason     string
	Code       string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return NewClientWithHTTP(baseURL, &http.Client{Jar: jar, Timeout: 30 * time.Second}), nil
}

// NewClientWithHTTP expects httpClient to carry a cookie jar.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type envelope struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Leads   []entity.Lead `json:"leads"`
	Lead    *entity.Lead  `json:"lead"`
}

// Login stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	return err
}

func (c *Client) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/admin/leads", nil)
	if err != nil {
		return nil, err
	}
	if env.Leads == nil {
		return []entity.Lead{}, nil
	}
	return env.Leads, nil
}

// ListHiddenLeads returns the leads parked in a hidden status.
func (c *Client) ListHiddenLeads(ctx context.Context) ([]entity.Lead, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/admin/leads/hidden", nil)
	if err != nil {
		return nil, err
	}
	if env.Leads == nil {
		return []entity.Lead{}, nil
	}
	return env.Leads, nil
}

func (c *Client) UpdateLead(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	env, err := c.do(ctx, http.MethodPatch, "/api/admin/leads/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	return env.Lead, nil
}

// CreateLead posts to the public intake endpoint.
func (c *Client) CreateLead(ctx context.Context, lead map[string]string) (string, error) {
	body, err := c.raw(ctx, http.MethodPost, "/api/leads", lead)
	if err != nil {
		return "", err
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.ID, nil
}

// ExportLeads downloads the server-built workbook for filter.
func (c *Client) ExportLeads(ctx context.Context, filter string) ([]byte, error) {
	return c.raw(ctx, http.MethodGet, "/api/admin/leads/export?status="+url.QueryEscape(filter), nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*envelope, error) {
	body, err := c.raw(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Reason: env.Error, Code: env.Code}
	}
	return &env, nil
}

func (c *Client) raw(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.Reason = env.Error
			apiErr.Code = env.Code
		}
		return nil, apiErr
	}
	return body, nil
}
