// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/common/metrics"
)

// DefaultLoginPath is where the user is sent after any unauthorized response.
const DefaultLoginPath = "/auth/login"

// Navigator moves the user to another entry point of the application.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Session is the part of the session context the transport needs.
type Session interface {
	Token() string
	Clear(ctx context.Context) error
}

// Response is a successful (status < 400) reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	LoginPath  string
	Session    Session
	Navigator  Navigator
	Logger     logger.Logger
	HTTPClient *http.Client
}

// Client performs JSON requests against the remote API. It attaches the bearer token when the session
// holds one, and on every 401 clears the session and navigates to the login path. It never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	loginPath  string
	session    Session
	navigator  Navigator
	logger     logger.Logger
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		loginPath:  loginPath,
		session:    opts.Session,
		navigator:  opts.Navigator,
		logger:     log,
	}
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends one request. body is JSON encoded unless it is nil, []byte or json.RawMessage.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	start := time.Now()
	status := 0
	defer func() {
		metrics.APIRequestsTotal.WithLabelValues("http", method, strconv.Itoa(status)).Inc()
		metrics.APIRequestDuration.WithLabelValues("http", method).Observe(time.Since(start).Seconds())
	}()

	reader, err := encodeBody(body)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot encode request body: %v", err), nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+ensureSlash(path), reader)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("No response from API", map[string]interface{}{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return nil, errors.NewNetworkError(err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx, method, path)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode, data)
	}

	c.logger.Debug("API request completed", map[string]interface{}{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) handleUnauthorized(ctx context.Context, method, path string) {
	metrics.APIUnauthorizedTotal.Inc()

	if c.session != nil {
		if err := c.session.Clear(ctx); err != nil {
			c.logger.Error("Failed to clear session after 401", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	c.logger.Warn("Unauthorized response, session cleared", map[string]interface{}{
		"method":   method,
		"path":     path,
		"redirect": c.loginPath,
	})
	if c.navigator != nil {
		c.navigator.Navigate(c.loginPath)
	}
}

type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

// statusError builds the error for a status >= 400, keeping the server's message and error fields.
// A server-signaled code in the body wins over the one derived from the status.
func statusError(status int, data []byte) *errors.StandardError {
	var body errorBody
	_ = json.Unmarshal(data, &body)

	details := ""
	if len(body.Details) > 0 {
		var s string
		if json.Unmarshal(body.Details, &s) == nil {
			details = s
		} else {
			details = string(body.Details)
		}
	}

	stdErr := errors.NewStatusError(status, body.Message, details)
	if code, ok := errors.ServerCode(body.Code); ok {
		stdErr.Code = code
	}
	if body.Error != "" {
		stdErr.Metadata = map[string]interface{}{"error": body.Error}
	}
	return stdErr
}

func encodeBody(body interface{}) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}

func ensureSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
