package httpclient

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// LogLevel controls how much of each exchange the transport logs.
type LogLevel int

const (
	LogNone LogLevel = iota
	LogBasic
	LogHeaders
	LogBody
)

// String returns the config spelling of the level.
func (l LogLevel) String() string {
	switch l {
	case LogBasic:
		return "basic"
	case LogHeaders:
		return "headers"
	case LogBody:
		return "body"
	default:
		return "none"
	}
}

// ParseLogLevel maps a config value onto a LogLevel. Unknown values disable logging.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return LogBasic
	case "headers":
		return LogHeaders
	case "body":
		return LogBody
	default:
		return LogNone
	}
}

// installLogging registers response and error hooks on the resty client.
func installLogging(c *resty.Client, level LogLevel, log Logger) {
	if level == LogNone {
		return
	}

	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.InfoObj("http exchange", "http_exchange", exchangeFields(resp, level))
		return nil
	})

	c.OnError(func(req *resty.Request, err error) {
		log.WarnObj("http transport failure", "http_error", map[string]any{
			"method": req.Method,
			"url":    req.URL,
			"error":  err.Error(),
		})
	})
}

func exchangeFields(resp *resty.Response, level LogLevel) map[string]any {
	req := resp.Request
	fields := map[string]any{
		"method":     req.Method,
		"url":        req.URL,
		"status":     resp.StatusCode(),
		"elapsed_ms": resp.Time().Milliseconds(),
	}
	if level >= LogHeaders {
		fields["request_headers"] = flattenHeader(req.Header)
		fields["response_headers"] = flattenHeader(resp.Header())
	}
	if level >= LogBody {
		if b, ok := req.Body.([]byte); ok {
			fields["request_body"] = string(b)
		}
		fields["response_body"] = string(resp.Body())
	}
	return fields
}

func flattenHeader(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}
