package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/EO-DataHub/eodhp-admin-console/internal/appconfig"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// CSRFHeader carries the anti-forgery token on mutating requests.
	CSRFHeader = "X-CSRFToken"
	// RequestIDHeader tags every outbound request for correlation with backend logs.
	RequestIDHeader = "X-Request-ID"
)

// Client is a client for the showcase backend's list and admin endpoints.
type Client struct {
	BaseURL    *url.URL
	CSRFToken  string
	Endpoints  appconfig.EndpointsConfig
	HTTPClient *http.Client
	Log        zerolog.Logger
}

// NewClient creates a client that authenticates with the configured session
// cookie, the way a same-origin browser request would.
func NewClient(backend appconfig.BackendConfig, endpoints appconfig.EndpointsConfig) (*Client, error) {
	base, err := url.Parse(backend.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", backend.URL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if backend.Session != "" {
		jar.SetCookies(base, []*http.Cookie{{
			Name:  backend.SessionCookie,
			Value: backend.Session,
			Path:  "/",
		}})
	}

	return &Client{
		BaseURL:   base,
		CSRFToken: backend.CSRFToken,
		Endpoints: endpoints,
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: backend.Timeout,
		},
		Log: log.With().Str("component", "client").Logger(),
	}, nil
}

// FetchUsers retrieves the user list.
func (c *Client) FetchUsers(ctx context.Context) ([]models.User, error) {
	return fetchList[models.User](ctx, c, c.Endpoints.Users)
}

// FetchGroups retrieves the group list.
func (c *Client) FetchGroups(ctx context.Context) ([]models.Group, error) {
	return fetchList[models.Group](ctx, c, c.Endpoints.Groups)
}

// FetchProjects retrieves the project list.
func (c *Client) FetchProjects(ctx context.Context) ([]models.Project, error) {
	return fetchList[models.Project](ctx, c, c.Endpoints.Projects)
}

// fetchList issues a GET and decodes a JSON array. A JSON null decodes to an
// empty list.
func fetchList[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	respBody, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(respBody, &records); err != nil {
		return nil, &ParseError{URL: c.resolve(endpoint), Err: err}
	}
	return records, nil
}

// SubmitAction posts to an admin mutation endpoint. A failed mutation is
// reported as an *HTTPError whose message is the backend's error text.
func (c *Client) SubmitAction(ctx context.Context, endpoint string) (*models.ActionResult, error) {
	respBody, statusCode, err := c.makeRequest(ctx, http.MethodPost, endpoint, "", nil)
	if err != nil {
		return nil, err
	}

	// Bodies that are not JSON are treated as empty
	var body models.Response
	_ = json.Unmarshal(respBody, &body)

	if !isSuccess(statusCode) {
		message := body.Error
		if message == "" {
			message = fallbackMessage
		}
		return nil, &HTTPError{Message: message, Status: statusCode}
	}

	return &models.ActionResult{Endpoint: endpoint, Message: body.Message}, nil
}

// get issues a GET and returns the body of a successful response.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	respBody, statusCode, err := c.makeRequest(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(statusCode) {
		return nil, &HTTPError{Status: statusCode}
	}
	return respBody, nil
}

// resolve turns an endpoint path into an absolute URL on the backend origin.
func (c *Client) resolve(endpoint string) string {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return c.BaseURL.String() + endpoint
	}
	return c.BaseURL.ResolveReference(ref).String()
}

// Helper function for making HTTP requests to the backend. Transport failures
// are returned as *NetworkError; the status code is returned as-is.
func (c *Client) makeRequest(ctx context.Context, method, endpoint, contentType string, body []byte) ([]byte, int, error) {
	target := c.resolve(endpoint)

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// The token header is omitted when no token is known; enforcement is left
	// to the backend.
	if method != http.MethodGet && c.CSRFToken != "" {
		req.Header.Set(CSRFHeader, c.CSRFToken)
	}

	logger := c.Log.With().
		Str("method", method).
		Str("url", target).
		Str("request_id", requestID).
		Logger()
	if method != http.MethodGet && c.CSRFToken == "" {
		logger.Debug().Msg("no anti-forgery token known, sending without header")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("request failed")
		return nil, 0, &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &NetworkError{Method: method, URL: target, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	logger.Debug().Int("status", resp.StatusCode).Msg("request completed")
	return respBody, resp.StatusCode, nil
}
