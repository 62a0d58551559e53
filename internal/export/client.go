package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/colorterm/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

const (
	DefaultEndpoint = "http://localhost:8080/generate"
	DefaultTimeout  = 30 * time.Second

	// maxBundleSize bounds the response body read into memory.
	maxBundleSize = 16 << 20
)

var (
	ErrTransport = errors.New("render service unreachable")
	ErrStatus    = errors.New("render service rejected request")
	ErrEmptyBody = errors.New("render service returned an empty body")
	ErrTooLarge  = errors.New("render service response exceeds bundle size limit")
)

// Artifact is a bundle returned by the render service.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Client talks to the render service.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     ports.Logger
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger ports.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.With("component", "export")
		}
	}
}

// NewClient creates a client for the given endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured service URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Fetch posts req and returns the bundle. Requests carry no credentials and ask
// intermediaries not to cache. There is no retry.
func (c *Client) Fetch(ctx context.Context, req Request) (*Artifact, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, cterrors.NewExportError("encode", 0, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, cterrors.NewExportError("request", 0, fmt.Errorf("%w: %v", ErrTransport, err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/zip")
	httpReq.Header.Set("Cache-Control", "no-cache")
	if id := ports.GetCorrelationID(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error(ctx, "render request failed", "endpoint", c.endpoint, "error", err)
		return nil, cterrors.NewExportError("request", 0, fmt.Errorf("%w: %w", ErrTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn(ctx, "render service returned error status",
			"status", resp.StatusCode,
			"target", string(req.GenerateMode),
		)
		cause := ErrStatus
		if msg := strings.TrimSpace(string(detail)); msg != "" {
			cause = fmt.Errorf("%w: %s", ErrStatus, msg)
		}
		return nil, cterrors.NewExportError("status", resp.StatusCode, cause)
	}

	// One byte past the limit tells an oversized bundle from one that fits exactly.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize+1))
	if err != nil {
		return nil, cterrors.NewExportError("read", resp.StatusCode, fmt.Errorf("%w: %w", ErrTransport, err))
	}
	if len(data) > maxBundleSize {
		c.logger.Error(ctx, "render response exceeds bundle size limit",
			"target", string(req.GenerateMode),
			"limit_bytes", maxBundleSize,
		)
		return nil, cterrors.NewExportError("read", resp.StatusCode, ErrTooLarge)
	}
	if len(data) == 0 {
		return nil, cterrors.NewExportError("read", resp.StatusCode, ErrEmptyBody)
	}

	filename, ok := FilenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if !ok {
		filename = req.DefaultFilename()
		c.logger.Warn(ctx, "render response has no attachment filename, using fallback", "filename", filename)
	}

	c.logger.Info(ctx, "theme bundle received",
		"target", string(req.GenerateMode),
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Artifact{
		Filename:    filename,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Export fetches the bundle for req and saves it into dir.
func (c *Client) Export(ctx context.Context, req Request, dir string) (string, error) {
	artifact, err := c.Fetch(ctx, req)
	if err != nil {
		return "", err
	}
	dest, err := Save(dir, artifact)
	if err != nil {
		c.logger.Error(ctx, "saving theme bundle failed", "dir", dir, "error", err)
		return "", err
	}
	c.logger.Info(ctx, "theme bundle saved", "path", dest)
	return dest, nil
}

// FilenameFromDisposition extracts the attachment filename from a
// Content-Disposition header. Quoted, unquoted and RFC 5987 filename* forms are
// accepted. The result is percent-decoded exactly once and reduced to a bare
// file name.
func FilenameFromDisposition(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}

	var name string
	// mime already decodes filename*; only the plain and scanned forms are
	// still percent-encoded.
	decoded := false
	if _, params, err := mime.ParseMediaType(header); err == nil {
		name = params["filename"]
		decoded = strings.Contains(strings.ToLower(header), "filename*=")
	} else {
		name = scanFilename(header)
	}
	if name == "" {
		return "", false
	}

	if !decoded {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	name = path.Base(filepath.ToSlash(strings.ReplaceAll(name, `\`, "/")))
	switch name {
	case "", ".", "..", "/":
		return "", false
	}
	return name, true
}

// scanFilename handles headers mime rejects, such as unquoted names with spaces.
func scanFilename(header string) string {
	for _, part := range strings.Split(header, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "filename*":
			if _, encoded, ok := strings.Cut(value, "''"); ok {
				return strings.Trim(encoded, `"`)
			}
		case "filename":
			return strings.Trim(strings.TrimSpace(value), `"`)
		}
	}
	return ""
}

// Save writes the artifact into dir. The bundle is written to a temporary file
// and renamed into place, so a failed save leaves nothing behind.
func Save(dir string, artifact *Artifact) (string, error) {
	if artifact == nil || len(artifact.Data) == 0 {
		return "", cterrors.NewExportError("save", 0, ErrEmptyBody)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", cterrors.NewExportError("save", 0, err)
	}

	name := artifact.Filename
	if name == "" {
		name = "colorterm.zip"
	}
	dest := filepath.Join(dir, filepath.Base(name))

	tmp, err := os.CreateTemp(dir, ".colorterm-*.tmp")
	if err != nil {
		return "", cterrors.NewExportError("save", 0, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(artifact.Data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", cterrors.NewExportError("save", 0, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", cterrors.NewExportError("save", 0, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", cterrors.NewExportError("save", 0, err)
	}
	return dest, nil
}
