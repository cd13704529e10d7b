package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/amishk599/jobdigest/internal/model"
)

// Environment variables read by the search pipeline.
const (
	EnvRecipientEmail   = "RECIPIENT_EMAIL"
	EnvGmailUser        = "GMAIL_USER"
	EnvGmailAppPassword = "GMAIL_APP_PASSWORD"
)

// Environment variables read by the feed pipeline.
const (
	EnvEmailUser     = "EMAIL_USER"
	EnvEmailPass     = "EMAIL_PASS"
	EnvEmailReceiver = "EMAIL_RECEIVER"
)

// MailEnv holds the sender credentials and the single recipient for one
// pipeline.
type MailEnv struct {
	Recipient string
	User      string
	Password  string
}

// OTelConfig controls the optional tracing exporter.
type OTelConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string // set by the binary, not read from env
	Endpoint       string
	Protocol       string // "grpc" or "http/protobuf"
	Headers        map[string]string
	Insecure       bool
	SampleRatio    float64
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadSearchMail reads the search pipeline's mail settings. All three
// variables are required; the returned *model.MissingEnvError lists every
// one that is unset.
func LoadSearchMail() (MailEnv, error) {
	env := MailEnv{
		Recipient: os.Getenv(EnvRecipientEmail),
		User:      os.Getenv(EnvGmailUser),
		Password:  os.Getenv(EnvGmailAppPassword),
	}

	var missing []string
	if env.Recipient == "" {
		missing = append(missing, EnvRecipientEmail)
	}
	if env.User == "" {
		missing = append(missing, EnvGmailUser)
	}
	if env.Password == "" {
		missing = append(missing, EnvGmailAppPassword)
	}
	if len(missing) > 0 {
		return MailEnv{}, &model.MissingEnvError{Keys: missing}
	}
	return env, nil
}

// LoadFeedMail reads the feed pipeline's mail settings. Unset values are
// returned empty; they fail later when the message is sent.
func LoadFeedMail() MailEnv {
	return MailEnv{
		Recipient: os.Getenv(EnvEmailReceiver),
		User:      os.Getenv(EnvEmailUser),
		Password:  os.Getenv(EnvEmailPass),
	}
}

// LoadOTel reads tracing settings from the standard OTEL_* variables.
func LoadOTel() OTelConfig {
	endpoint := envString("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	return OTelConfig{
		Enabled:     envBool("OTEL_ENABLED", false),
		ServiceName: envString("OTEL_SERVICE_NAME", "jobdigest"),
		Endpoint:    endpoint,
		Protocol:    strings.ToLower(envString("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),
		Headers:     parseHeaders(envString("OTEL_EXPORTER_OTLP_HEADERS", "")),
		Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", endpoint == "" || strings.HasPrefix(endpoint, "http://")),
		SampleRatio: clamp01(envFloat("OTEL_TRACES_SAMPLE_RATIO", 1.0)),
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func envFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// parseHeaders parses "k1=v1,k2=v2" into a map, skipping malformed pairs.
func parseHeaders(raw string) map[string]string {
	headers := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		headers[k] = strings.TrimSpace(v)
	}
	return headers
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
