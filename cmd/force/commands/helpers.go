// Package commands implements the force CLI subcommands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/trestletech/goforce/internal/constants"
	"github.com/trestletech/goforce/pkg/force"
	"github.com/trestletech/goforce/pkg/forceclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrNotAuthenticated   = errors.New("not authenticated: run 'force login' or pass --instance and --session")
	ErrUsernameRequired   = errors.New("username is required")
	ErrTypeRequired       = errors.New("at least one metadata type is required")
	ErrHomeDirUnavailable = errors.New("cannot determine home directory")
)

// CLIConfig is the persisted shape of ~/.force/config.yml.
type CLIConfig struct {
	InstanceURL string `yaml:"instance_url,omitempty"`
	SessionID   string `yaml:"session_id,omitempty"`
	APIVersion  string `yaml:"api_version,omitempty"`
	LoginURL    string `yaml:"login_url,omitempty"`
	Username    string `yaml:"username,omitempty"`
}

// configFilePath returns the active config file, defaulting to
// ~/.force/config.yml.
func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHomeDirUnavailable, err)
	}

	return filepath.Join(home, ".force", "config.yml"), nil
}

// saveConfig writes the config file, creating its directory when needed.
func saveConfig(config *CLIConfig) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// CreateClient builds a client from the effective flag/env/config settings.
func CreateClient() (force.Client, error) {
	instanceURL := viper.GetString("instance_url")
	sessionID := viper.GetString("session_id")

	if instanceURL == "" || sessionID == "" {
		return nil, ErrNotAuthenticated
	}

	config := &force.Config{
		InstanceURL: instanceURL,
		SessionID:   sessionID,
		APIVersion:  viper.GetString("api_version"),
		Debug:       viper.GetBool("verbose"),
		Cache:       force.DefaultCacheConfig(),
	}

	if viper.GetBool("verbose") {
		config.Logger = stderrLogger{}
	}

	return forceclient.New(context.Background(), config)
}

// stderrLogger writes structured lines to stderr for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	var sb strings.Builder

	sb.WriteString(level)
	sb.WriteString(" ")
	sb.WriteString(msg)

	for k, v := range fields {
		fmt.Fprintf(&sb, " %s=%v", k, v)
	}

	fmt.Fprintln(os.Stderr, sb.String())
}

// RenderResult writes a result in the configured output format.
func RenderResult(result *force.Result) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(resultDocument(result)); err != nil {
			return fmt.Errorf("encoding result to JSON: %w", err)
		}

		return nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		if err := encoder.Encode(resultDocument(result)); err != nil {
			return fmt.Errorf("encoding result to YAML: %w", err)
		}

		return nil
	default:
		return renderTable(result)
	}
}

// resultDocument converts rows into plain maps with Null markers dropped,
// which encode cleanly in JSON and YAML.
func resultDocument(result *force.Result) []map[string]interface{} {
	docs := make([]map[string]interface{}, len(result.Rows))

	for i, row := range result.Rows {
		doc := make(map[string]interface{}, len(row))

		for k, v := range row {
			if force.IsNull(v) {
				doc[k] = nil

				continue
			}

			doc[k] = v
		}

		docs[i] = doc
	}

	return docs
}

func renderTable(result *force.Result) error {
	if len(result.Rows) == 0 {
		_, _ = os.Stdout.WriteString("No results\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	headers := make([]any, len(result.Columns))
	for i, col := range result.Columns {
		headers[i] = col
	}

	table.Header(headers...)

	for _, row := range result.Rows {
		cells := make([]any, len(result.Columns))
		for i, col := range result.Columns {
			cells[i] = CellString(row[col])
		}

		_ = table.Append(cells...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// CellString formats one result value for table output. Nulls render empty,
// nested structures render compactly.
func CellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case force.NullValue:
		return ""
	case string:
		return v
	case force.ResultRecord:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(data)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = CellString(item)
		}

		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
