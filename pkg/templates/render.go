// pkg/templates/render.go
//
// Centralized template rendering with size limits, timeout enforcement and
// rate limiting for config-file generation.

package templates

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"text/template"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxTemplateSize bounds template input to prevent resource exhaustion.
	DefaultMaxTemplateSize = 1 * 1024 * 1024 // 1MB

	// DefaultTemplateTimeout bounds template execution.
	DefaultTemplateTimeout = 30 * time.Second

	RateLimitBurst     = 5
	RateLimitPerMinute = 30
)

var (
	globalRateLimiter = rate.NewLimiter(rate.Every(time.Minute/RateLimitPerMinute), RateLimitBurst)
	rateLimiterMu     sync.Mutex
)

// RenderOptions tunes a single render call.
type RenderOptions struct {
	MaxSize             int64
	Timeout             time.Duration
	DisableRateLimiting bool
	Perm                os.FileMode
}

// DefaultRenderOptions returns the standard limits.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		MaxSize: DefaultMaxTemplateSize,
		Timeout: DefaultTemplateTimeout,
		Perm:    0644,
	}
}

// Renderer renders text templates under the configured limits.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a new template renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.L()
	}
	return &Renderer{
		logger: logger.Named("template-renderer"),
	}
}

// RenderString renders a template from a string with the given data.
func (r *Renderer) RenderString(ctx context.Context, tmplStr string, data interface{}, opts *RenderOptions) (string, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	if !opts.DisableRateLimiting {
		rateLimiterMu.Lock()
		allowed := globalRateLimiter.Allow()
		rateLimiterMu.Unlock()
		if !allowed {
			r.logger.Warn("Template rendering rate limit exceeded")
			return "", fmt.Errorf("rate limit exceeded for template operations (max %d/min)", RateLimitPerMinute)
		}
	}

	if int64(len(tmplStr)) > opts.MaxSize {
		return "", fmt.Errorf("template size %d exceeds limit %d", len(tmplStr), opts.MaxSize)
	}

	renderCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tmpl, err := template.New("template").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	resultChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			errChan <- fmt.Errorf("failed to execute template: %w", err)
			return
		}
		resultChan <- buf.String()
	}()

	select {
	case <-renderCtx.Done():
		return "", fmt.Errorf("template rendering timed out after %s", opts.Timeout)
	case err := <-errChan:
		return "", err
	case result := <-resultChan:
		return result, nil
	}
}

// RenderToFile renders a template string and writes the output to a file.
func (r *Renderer) RenderToFile(ctx context.Context, tmplStr, outputPath string, data interface{}, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	result, err := r.RenderString(ctx, tmplStr, data, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(result), opts.Perm); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}

	r.logger.Debug("Template rendered to file",
		zap.String("output", outputPath),
		zap.Int("size", len(result)))

	return nil
}
