package spec

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Settings configures loader behavior.
type Settings struct {
	// HTTPTimeout bounds the single HTTP request made for URL inputs.
	HTTPTimeout time.Duration
	// MaxBytes caps the size of a downloaded document. Zero means no cap.
	MaxBytes int64
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout: 10 * time.Second,
		MaxBytes:    32 << 20,
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithMaxBytes(n int64) Option           { return func(s *Settings) { s.MaxBytes = n } }

// IsURL reports whether input looks like an absolute URL rather than a path.
func IsURL(input string) bool {
	u, err := url.Parse(input)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Load reads the raw bytes of a document from a filesystem path or an
// http/https URL. file:// URLs are blocked. URL inputs get one best-effort
// GET; there are no retries.
func Load(ctx context.Context, input string, opts ...Option) ([]byte, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &SpecError{Code: InputError, Message: "spec: input is empty"}
	}

	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	if IsURL(input) {
		u, _ := url.Parse(input)
		scheme := strings.ToLower(u.Scheme)
		if scheme == "file" {
			return nil, &SpecError{Code: InputError, Message: "spec: file:// URLs are blocked", Location: input}
		}
		if scheme != "http" && scheme != "https" {
			return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("spec: unsupported URL scheme %q (only http/https allowed)", scheme), Location: input}
		}
		raw, err := fetch(ctx, input, settings)
		if err != nil {
			return nil, &SpecError{Code: NetworkError, Message: fmt.Sprintf("fetch %s: %v", input, err), Location: input, Cause: err}
		}
		return raw, nil
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: input, Cause: err}
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("read file %s: %v", abs, err), Location: abs, Cause: err}
	}
	return raw, nil
}

// LoadDefinition loads input and parses it into a Definition.
func LoadDefinition(ctx context.Context, input string, loadOpts []Option, parseOpts ...ParseOption) (*Definition, error) {
	raw, err := Load(ctx, input, loadOpts...)
	if err != nil {
		return nil, err
	}
	return parseBytes(ctx, raw, append([]ParseOption{WithLocation(input)}, parseOpts...))
}

func fetch(ctx context.Context, rawURL string, settings Settings) ([]byte, error) {
	client := &http.Client{Timeout: settings.HTTPTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var r io.Reader = resp.Body
	if settings.MaxBytes > 0 {
		r = io.LimitReader(resp.Body, settings.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if settings.MaxBytes > 0 && int64(len(data)) > settings.MaxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", settings.MaxBytes)
	}
	return data, nil
}
