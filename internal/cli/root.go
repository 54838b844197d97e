package cli

import (
	"fmt"
	"strings"

	"github.com/samvad-hq/restutils/internal/config"
	"github.com/samvad-hq/restutils/internal/logger"
	"github.com/samvad-hq/restutils/pkg/restclient"
	"github.com/spf13/cobra"
)

// app carries what every verb command needs to build a client.
type app struct {
	cfg         *config.Config
	log         logger.Logger
	baseURL     string
	headersFile string
}

// NewRootCommand builds the restctl command tree. Requests go through
// httpclient.Default(), so the caller installs the transport beforehand.
func NewRootCommand(cfg *config.Config, log logger.Logger) *cobra.Command {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	a := &app{cfg: cfg, log: log}

	root := &cobra.Command{
		Use:   "restctl",
		Short: "Send JSON REST requests against a base URL",
		Long: `restctl issues GET, POST, PUT and DELETE requests against a configured
base URL and prints the response body.

The base URL and default headers come from REST_BASE_URL and
REST_HEADERS_FILE, or from the --base-url and --headers-file flags.

Examples:
  restctl get /items --base-url http://localhost:8080/api
  restctl post /items --data '{"name":"a"}'
  restctl post /items --data-file item.yaml
  restctl put /items/1 --data '{"name":"b"}'
  restctl delete /items/1`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Base URL prepended to every endpoint (overrides REST_BASE_URL)")
	root.PersistentFlags().StringVar(&a.headersFile, "headers-file", "", "YAML/JSON file with default headers (overrides REST_HEADERS_FILE)")

	root.AddCommand(
		newGetCommand(a),
		newPostCommand(a),
		newPutCommand(a),
		newDeleteCommand(a),
	)
	return root
}

// client builds a RestClient from config with flag overrides applied.
func (a *app) client() (*restclient.Client, error) {
	baseURL := a.cfg.BaseURL
	if strings.TrimSpace(a.baseURL) != "" {
		baseURL = a.baseURL
	}
	headersFile := a.cfg.HeadersFile
	if strings.TrimSpace(a.headersFile) != "" {
		headersFile = a.headersFile
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base URL is empty (set REST_BASE_URL or --base-url)")
	}

	headers, err := config.LoadHeaders(headersFile)
	if err != nil {
		return nil, fmt.Errorf("load headers: %w", err)
	}

	b := restclient.NewBuilder().BaseURL(baseURL).Headers(headers)
	a.log.DebugObj("rest client configured", "client", b.String())
	return b.Build(), nil
}

// report logs a failed call with whatever classification the error carries.
// It logs at warn level; the caller prints the returned error.
func (a *app) report(method, endpoint string, err error) error {
	fields := map[string]any{
		"method":   method,
		"endpoint": endpoint,
		"error":    err.Error(),
	}
	switch {
	case restclient.IsRequestFailed(err):
		fields["kind"] = "request_failed"
		fields["status"] = restclient.StatusCode(err)
	case restclient.IsTransportError(err):
		fields["kind"] = "transport"
	}
	a.log.WarnObj("request failed", "request_error", fields)
	return err
}
