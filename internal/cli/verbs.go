package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// dataFlags holds the body sources shared by post and put.
type dataFlags struct {
	data     string
	dataFile string
}

func (d *dataFlags) register(cmd *cobra.Command, dataUsage string) {
	cmd.Flags().StringVarP(&d.data, "data", "d", "", dataUsage)
	cmd.Flags().StringVar(&d.dataFile, "data-file", "", "Read the request body from a file")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <endpoint>",
		Short: "Send a GET request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			body, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return a.report(http.MethodGet, args[0], err)
			}
			return printBody(cmd, body)
		},
	}
}

func newPostCommand(a *app) *cobra.Command {
	var df dataFlags
	cmd := &cobra.Command{
		Use:   "post <endpoint>",
		Short: "Send a POST request with a JSON body",
		Long: `Send a POST request. The body given with --data (JSON) or --data-file
(.json, .yaml or .yml) is decoded and re-encoded as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := df.structured()
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			body, err := c.Post(cmd.Context(), args[0], value)
			if err != nil {
				return a.report(http.MethodPost, args[0], err)
			}
			return printBody(cmd, body)
		},
	}
	df.register(cmd, "JSON request body")
	return cmd
}

func newPutCommand(a *app) *cobra.Command {
	var df dataFlags
	cmd := &cobra.Command{
		Use:   "put <endpoint>",
		Short: "Send a PUT request with a raw body",
		Long:  `Send a PUT request. The body is sent exactly as given; it is not validated or re-encoded.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := df.raw()
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			body, err := c.Put(cmd.Context(), args[0], raw)
			if err != nil {
				return a.report(http.MethodPut, args[0], err)
			}
			return printBody(cmd, body)
		},
	}
	df.register(cmd, "Raw request body")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <endpoint>",
		Short: "Send a DELETE request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			body, err := c.Delete(cmd.Context(), args[0])
			if err != nil {
				return a.report(http.MethodDelete, args[0], err)
			}
			return printBody(cmd, body)
		},
	}
}

// raw returns the body text as given.
func (d *dataFlags) raw() (string, error) {
	if d.dataFile == "" {
		return d.data, nil
	}
	b, err := os.ReadFile(d.dataFile)
	if err != nil {
		return "", fmt.Errorf("read data file: %w", err)
	}
	return string(b), nil
}

// structured decodes the body into a generic value for JSON encoding.
func (d *dataFlags) structured() (any, error) {
	if d.dataFile == "" {
		if strings.TrimSpace(d.data) == "" {
			return nil, errors.New("post requires --data or --data-file")
		}
		return decodeJSON([]byte(d.data))
	}

	b, err := os.ReadFile(d.dataFile)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(d.dataFile)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("decode yaml data file: %w", err)
		}
		return v, nil
	default:
		return decodeJSON(b)
	}
}

// decodeJSON keeps numbers as json.Number so they re-encode unchanged.
func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json data: %w", err)
	}
	return v, nil
}

func printBody(cmd *cobra.Command, body string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), body)
	return err
}
