package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/logger"
)

// bodyPreviewLimit bounds how much of an unparseable body is logged
const bodyPreviewLimit = 500

// Client fetches follower pages for one target account
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	pageSize   int
	logger     logger.Logger
}

// NewClient creates a followers client for the endpoint at baseURL, sending
// headers verbatim on every request
func NewClient(baseURL string, headers map[string]string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers:  make(map[string]string, len(headers)),
		baseURL:  baseURL,
		pageSize: DefaultPageSize,
		logger:   log,
	}
	c.SetHeaders(headers)
	return c
}

// SetHeaders sets multiple headers at once
func (c *Client) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		c.headers[key] = value
	}
}

// SetPageSize overrides the number of followers requested per page
func (c *Client) SetPageSize(n int) {
	if n > 0 {
		c.pageSize = n
	}
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Err:     err,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// checkResponseStatus turns any non-2xx status into an http_status error.
// The log message differs by status so an operator can tell throttling from
// an expired session.
func (c *Client) checkResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	fields := map[string]interface{}{
		"status": resp.StatusCode,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		fields["url"] = resp.Request.URL.String()
	}

	var message string
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		message = "access denied"
		c.logger.WarnWithFields("access denied, credentials may have expired", fields)
	case http.StatusTooManyRequests:
		message = "rate limit exceeded"
		c.logger.WarnWithFields("rate limit exceeded", fields)
	case http.StatusNotFound:
		message = "resource not found"
		c.logger.WarnWithFields("resource not found", fields)
	default:
		message = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		c.logger.ErrorWithFields("unexpected API status", fields)
	}

	return &errs.Error{
		Type:    errs.ErrorTypeHTTPStatus,
		Message: message,
		Code:    resp.StatusCode,
	}
}

// FetchFollowersPage performs exactly one request for the page after cursor.
// It never sleeps and never retries.
func (c *Client) FetchFollowersPage(ctx context.Context, cursor Cursor) (*Page, error) {
	url := GetFollowersURL(c.baseURL, cursor, c.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Err:     err,
		}
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	var response FollowersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		preview := string(body)
		if len(preview) > bodyPreviewLimit {
			preview = preview[:bodyPreviewLimit]
		}
		c.logger.ErrorWithFields("response is not JSON, likely a security challenge or expired cookie", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": preview,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeChallenge,
			Message: fmt.Sprintf("response is not JSON: %v", err),
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	if response.Status != "ok" {
		c.logger.ErrorWithFields("API status not ok", map[string]interface{}{
			"url":        url,
			"api_status": response.Status,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeAPIStatus,
			Message: fmt.Sprintf("API status %q", response.Status),
			Code:    resp.StatusCode,
		}
	}

	page := response.toPage()
	c.logger.DebugWithFields("followers page decoded", map[string]interface{}{
		"cursor":   string(cursor),
		"users":    len(page.Usernames),
		"has_more": page.HasMore,
		"next":     string(page.NextCursor),
	})

	return page, nil
}
