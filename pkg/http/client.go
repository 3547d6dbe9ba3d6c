package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/viniapp/viniapp-node/internal/log"
)

// Client represents default http client that can be used to send requests to third party services
type Client struct {
	base http.Client
}

// StatusError is returned when the server answers with a non 2xx status
type StatusError struct {
	StatusCode int
	Body       []byte
}

// Error satisfies the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("http request failed with status %v, error: %v", e.StatusCode, string(e.Body))
}

// StatusCode returns the http status carried by err, or 0 if err is not a StatusError
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// RequestOption customizes an outgoing request
type RequestOption func(r *http.Request)

// WithBasicAuth sets basic authentication credentials
func WithBasicAuth(user, password string) RequestOption {
	return func(r *http.Request) {
		r.SetBasicAuth(user, password)
	}
}

// WithHeader adds a header
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// NewClient returns new instance of custom client
func NewClient(c http.Client) *Client {
	return &Client{
		base: c,
	}
}

// NewRetryableClient returns a client that retries connection errors and 5xx responses retryMax times
func NewRetryableClient(retryMax int) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = nil
	return NewClient(http.Client{
		Transport: &retryablehttp.RoundTripper{
			Client: rc,
		},
	})
}

// Post send posts request to url with additional headers
func (c *Client) Post(ctx context.Context, url string, req []byte, opts ...RequestOption) ([]byte, error) {
	reqBody := bytes.NewBuffer(req)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reqBody)
	if err != nil {
		return nil, err
	}

	addRequestIDToHeader(ctx, request)
	for _, opt := range opts {
		opt(request)
	}

	return executeRequest(ctx, c, request)
}

// Get send request to url with requestID headers
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url,
		http.NoBody)
	if err != nil {
		return nil, err
	}

	addRequestIDToHeader(ctx, req)
	for _, opt := range opts {
		opt(req)
	}

	return executeRequest(ctx, c, req)
}

// addRequestIDToHeader adds headers to request
func addRequestIDToHeader(ctx context.Context, r *http.Request) {
	r.Header.Add("Content-Type", "application/json")
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		r.Header.Add(middleware.RequestIDHeader, requestID)
	}
}

// executeRequest contains common logic of request execution
func executeRequest(ctx context.Context, c *Client, r *http.Request) ([]byte, error) {
	resp, err := c.base.Do(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			log.Error(ctx, "can not close body", "err", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.WithStack(&StatusError{StatusCode: resp.StatusCode, Body: body})
	}

	return body, nil
}
