package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// headersFile represents the structure of a request headers file.
type headersFile struct {
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// LoadHeaders reads the default request headers from a YAML/JSON file.
// An empty path yields no headers.
func LoadHeaders(path string) (map[string]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open headers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read headers file: %w", err)
	}

	parsed, err := parseHeadersFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return sanitizeHeaders(parsed.Headers), nil
}

// parseHeadersFile attempts to decode the headers file content.
func parseHeadersFile(data []byte, ext string) (headersFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var out headersFile
		if err := d.fn(data, &out); err == nil {
			return out, nil
		}
	}

	return headersFile{}, errors.New("headers file format not recognized (expected YAML or JSON)")
}

// sanitizeHeaders trims and removes empty headers.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
