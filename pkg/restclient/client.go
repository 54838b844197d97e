// Package restclient wraps an HTTP transport with get/post/put/delete calls that
// return the response body as text.
package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/samvad-hq/restutils/pkg/httpclient"
)

// ContentTypeJSON is sent with every POST and PUT payload.
const ContentTypeJSON = "application/json; charset=utf-8"

// Client issues requests against a fixed base URL with a fixed header set.
// It is immutable once built and safe for concurrent use when its transport is.
type Client struct {
	baseURL   string
	headers   map[string]string
	transport httpclient.Transport
}

// BaseURL returns the prefix prepended to every endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Headers returns a copy of the headers attached to every request.
func (c *Client) Headers() map[string]string { return copyHeaders(c.headers) }

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, endpoint string) (string, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// Post encodes body as JSON and POSTs it.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode %s %s body: %w", http.MethodPost, endpoint, err)
	}
	return c.do(ctx, http.MethodPost, endpoint, payload)
}

// Put sends body verbatim; the caller is responsible for encoding it.
func (c *Client) Put(ctx context.Context, endpoint string, body string) (string, error) {
	return c.do(ctx, http.MethodPut, endpoint, []byte(body))
}

// PutJSON encodes body as JSON the same way Post does and PUTs it.
func (c *Client) PutJSON(ctx context.Context, endpoint string, body any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode %s %s body: %w", http.MethodPut, endpoint, err)
	}
	return c.do(ctx, http.MethodPut, endpoint, payload)
}

// Delete performs a DELETE request without a payload.
func (c *Client) Delete(ctx context.Context, endpoint string) (string, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) (string, error) {
	req := httpclient.Request{
		Method:  method,
		URL:     c.baseURL + endpoint,
		Headers: c.requestHeaders(payload != nil),
		Body:    payload,
	}

	resp, err := c.transport.Execute(ctx, req)
	if err != nil {
		return "", &TransportError{Method: method, URL: req.URL, Err: err}
	}
	return classify(req, resp)
}

// requestHeaders returns the configured headers, with the JSON content type
// overriding any caller value when the request has a payload.
func (c *Client) requestHeaders(withPayload bool) map[string]string {
	if !withPayload {
		return copyHeaders(c.headers)
	}
	out := make(map[string]string, len(c.headers)+1)
	for k, v := range c.headers {
		if http.CanonicalHeaderKey(k) == "Content-Type" {
			continue
		}
		out[k] = v
	}
	out["Content-Type"] = ContentTypeJSON
	return out
}

func classify(req httpclient.Request, resp httpclient.Response) (string, error) {
	body := resp.Body()
	code := resp.StatusCode()
	if code >= 200 && code < 300 && body != nil {
		return string(body), nil
	}
	return "", &RequestFailedError{
		Method:      req.Method,
		URL:         req.URL,
		StatusCode:  code,
		Status:      resp.Status(),
		Header:      resp.Header(),
		Body:        string(body),
		BodyPresent: body != nil,
	}
}
