package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

func TestRestyTransportSendsRequestVerbatim(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotHeader string
		gotCT     string
		gotBody   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Test")
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("X-Reply", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))
	defer srv.Close()

	tr := NewRestyTransport(Options{})
	resp, err := tr.Execute(context.Background(), Request{
		Method: http.MethodPut,
		URL:    srv.URL + "/items/1",
		Headers: map[string]string{
			"X-Test":       "1",
			"Content-Type": "application/json; charset=utf-8",
		},
		Body: []byte("not {json"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/items/1" {
		t.Fatalf("expected /items/1, got %s", gotPath)
	}
	if gotHeader != "1" {
		t.Fatalf("missing header, got %q", gotHeader)
	}
	if gotCT != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", gotCT)
	}
	if gotBody != "not {json" {
		t.Fatalf("body was altered: %q", gotBody)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode())
	}
	if string(resp.Body()) != "created" {
		t.Fatalf("unexpected body %q", resp.Body())
	}
	if resp.Header().Get("X-Reply") != "yes" {
		t.Fatalf("missing response header")
	}
}

func TestRestyTransportEmptyBodyIsPresent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewRestyTransport(Options{}).Execute(context.Background(), Request{
		Method: http.MethodDelete,
		URL:    srv.URL + "/x",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.Body() == nil {
		t.Fatalf("expected non-nil empty body for a wire response")
	}
	if len(resp.Body()) != 0 {
		t.Fatalf("expected empty body, got %q", resp.Body())
	}
}

func TestRestyTransportReturnsTransportErrorUnwrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	resp, err := NewRestyTransport(Options{}).Execute(context.Background(), Request{
		Method: http.MethodGet,
		URL:    addr + "/x",
	})
	if err == nil {
		t.Fatalf("expected error from closed server")
	}
	if resp != nil {
		t.Fatalf("expected nil response on transport failure")
	}
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		t.Fatalf("expected *url.Error, got %T: %v", err, err)
	}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level string
	msg   string
	key   string
	obj   interface{}
}

func (l *recordingLogger) add(level, msg, key string, obj interface{}) {
	l.mu.Lock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, key: key, obj: obj})
	l.mu.Unlock()
}

func (l *recordingLogger) InfoObj(msg, key string, obj interface{})  { l.add("info", msg, key, obj) }
func (l *recordingLogger) DebugObj(msg, key string, obj interface{}) { l.add("debug", msg, key, obj) }
func (l *recordingLogger) WarnObj(msg, key string, obj interface{})  { l.add("warn", msg, key, obj) }
func (l *recordingLogger) ErrorObj(msg, key string, obj interface{}) { l.add("error", msg, key, obj) }

func (l *recordingLogger) find(key string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.key == key {
			return e, true
		}
	}
	return logEntry{}, false
}

func TestRestyTransportLogsExchangeByLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	cases := []struct {
		level       LogLevel
		wantHeaders bool
		wantBody    bool
	}{
		{level: LogBasic},
		{level: LogHeaders, wantHeaders: true},
		{level: LogBody, wantHeaders: true, wantBody: true},
	}

	for _, tc := range cases {
		t.Run(tc.level.String(), func(t *testing.T) {
			log := &recordingLogger{}
			tr := NewRestyTransport(Options{LogLevel: tc.level, Logger: log})
			_, err := tr.Execute(context.Background(), Request{
				Method: http.MethodPost,
				URL:    srv.URL + "/ping",
				Body:   []byte(`{"a":1}`),
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}

			entry, ok := log.find("http_exchange")
			if !ok {
				t.Fatalf("expected http_exchange log entry")
			}
			fields := entry.obj.(map[string]any)
			if fields["method"] != http.MethodPost {
				t.Fatalf("unexpected method field %v", fields["method"])
			}
			if fields["status"] != http.StatusOK {
				t.Fatalf("unexpected status field %v", fields["status"])
			}
			if _, ok := fields["response_headers"]; ok != tc.wantHeaders {
				t.Fatalf("response_headers present=%v, want %v", ok, tc.wantHeaders)
			}
			if _, ok := fields["response_body"]; ok != tc.wantBody {
				t.Fatalf("response_body present=%v, want %v", ok, tc.wantBody)
			}
			if tc.wantBody {
				if fields["response_body"] != "pong" {
					t.Fatalf("unexpected response_body %v", fields["response_body"])
				}
				if fields["request_body"] != `{"a":1}` {
					t.Fatalf("unexpected request_body %v", fields["request_body"])
				}
			}
		})
	}
}

func TestRestyTransportNoLoggingAtLevelNone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	log := &recordingLogger{}
	tr := NewRestyTransport(Options{Logger: log})
	if _, err := tr.Execute(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := log.find("http_exchange"); ok {
		t.Fatalf("expected no exchange log at level none")
	}
}

func TestRestyTransportLogsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	log := &recordingLogger{}
	tr := NewRestyTransport(Options{LogLevel: LogBasic, Logger: log})
	if _, err := tr.Execute(context.Background(), Request{Method: http.MethodGet, URL: addr}); err == nil {
		t.Fatalf("expected transport error")
	}
	entry, ok := log.find("http_error")
	if !ok {
		t.Fatalf("expected http_error log entry")
	}
	if entry.level != "warn" {
		t.Fatalf("expected warn level, got %s", entry.level)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":         LogNone,
		"none":     LogNone,
		"BASIC":    LogBasic,
		" headers": LogHeaders,
		"body":     LogBody,
		"verbose":  LogNone,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultIsSharedAndReplaceable(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	SetDefault(nil)
	a := Default()
	b := Default()
	if a != b {
		t.Fatalf("expected Default to return the same transport")
	}

	custom := NewRestyTransport(Options{})
	SetDefault(custom)
	if Default() != Transport(custom) {
		t.Fatalf("expected SetDefault to install the custom transport")
	}
}
