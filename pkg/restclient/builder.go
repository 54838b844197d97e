package restclient

import (
	"fmt"

	"github.com/samvad-hq/restutils/pkg/httpclient"
)

// Builder stages the settings of a Client. It performs no validation:
// a Client built without a base URL fails on its first call instead.
type Builder struct {
	baseURL   string
	headers   map[string]string
	transport httpclient.Transport
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BaseURL sets the prefix prepended to every endpoint, replacing any previous value.
func (b *Builder) BaseURL(baseURL string) *Builder {
	b.baseURL = baseURL
	return b
}

// Headers sets the headers attached to every request. The map replaces,
// rather than merges with, any previously staged headers.
func (b *Builder) Headers(headers map[string]string) *Builder {
	b.headers = headers
	return b
}

// Transport sets the transport the client executes requests with.
// Without one, Build uses httpclient.Default().
func (b *Builder) Transport(t httpclient.Transport) *Builder {
	b.transport = t
	return b
}

// Build returns a Client holding a private copy of the staged headers.
func (b *Builder) Build() *Client {
	transport := b.transport
	if transport == nil {
		transport = httpclient.Default()
	}
	return &Client{
		baseURL:   b.baseURL,
		headers:   copyHeaders(b.headers),
		transport: transport,
	}
}

// String describes the staged settings for diagnostics.
func (b *Builder) String() string {
	return fmt.Sprintf("RestClient.Builder(baseURL=%s, headers=%v)", b.baseURL, b.headers)
}

func copyHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = v
	}
	return out
}
