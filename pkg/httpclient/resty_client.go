package httpclient

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures a RestyTransport.
type Options struct {
	// Timeout of zero keeps resty's default (no timeout).
	Timeout  time.Duration
	LogLevel LogLevel
	Logger   Logger
}

// RestyTransport adapts resty.Client to the httpclient.Transport interface.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport creates a new RestyTransport with the specified options.
func NewRestyTransport(opts Options) *RestyTransport {
	log := ensureLogger(opts.Logger)
	c := newRestyBaseClient(opts.Timeout)
	c.SetLogger(restyLogger{log: log})
	installLogging(c, opts.LogLevel, log)
	return &RestyTransport{client: c}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Execute performs a single HTTP exchange. Transport failures are returned as resty reports them.
func (r *RestyTransport) Execute(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

// Body never returns nil for a response read off the wire.
func (r *restyResponseAdapter) Body() []byte {
	if b := r.resp.Body(); b != nil {
		return b
	}
	return []byte{}
}

func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Status() string      { return r.resp.Status() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }

var (
	defaultMu        sync.Mutex
	defaultTransport Transport
)

// Default returns the process-wide shared transport, creating it on first use.
func Default() Transport {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultTransport == nil {
		defaultTransport = NewRestyTransport(Options{})
	}
	return defaultTransport
}

// SetDefault replaces the shared transport. A nil transport resets it to a fresh default on next use.
func SetDefault(t Transport) {
	defaultMu.Lock()
	defaultTransport = t
	defaultMu.Unlock()
}
