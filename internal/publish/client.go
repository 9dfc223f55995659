package publish

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
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx answer from the site API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Client talks to the admin REST API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    httpDoer
}

// NewClient returns a client for baseURL, e.g. http://localhost:3001.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
		return
	}
	c.http = client
}

func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

// Login exchanges admin credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return errors.New("login response did not include a token")
	}
	c.token = out.Token
	return nil
}

// Apply performs the REST call that corresponds to one change.
func (c *Client) Apply(ctx context.Context, change Change) error {
	if err := change.Validate(); err != nil {
		return err
	}

	base := resourcePath(change.Type)
	switch change.Action {
	case ActionCreate:
		return c.do(ctx, http.MethodPost, base, change.Data, nil)
	case ActionUpdate:
		return c.do(ctx, http.MethodPut, base+"/"+url.PathEscape(change.ID), change.Data, nil)
	case ActionVisibility:
		return c.do(ctx, http.MethodPut, base+"/"+url.PathEscape(change.ID), visibilityBody(change), nil)
	case ActionDelete:
		return c.do(ctx, http.MethodDelete, base+"/"+url.PathEscape(change.ID), nil, nil)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, change.Action)
}

func resourcePath(typ EntityType) string {
	switch typ {
	case EntitySection:
		return "/api/home-sections"
	case EntityPost:
		return "/api/blog-posts"
	default:
		return "/api/sliders"
	}
}

// visibilityBody sends {published} for posts and {active} otherwise. The flag is
// read from "visible" first, then from the entity's own field name.
func visibilityBody(change Change) map[string]interface{} {
	field := "active"
	if change.Type == EntityPost {
		field = "published"
	}

	value, ok := change.Data["visible"]
	if !ok {
		value = change.Data[field]
	}
	visible := value == true || value == "true"
	return map[string]interface{}{field: visible}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "bionutrex-cmsctl/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
