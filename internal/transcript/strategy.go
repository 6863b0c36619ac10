// Package transcript fetches YouTube caption tracks through a chain of
// scraping strategies.
package transcript

import (
	"context"

	"github.com/lukman83/youtube-mcp/internal/models"
)

// Request identifies the caption track to fetch.
type Request struct {
	VideoID  string
	Language string
}

// Strategy is one way of obtaining a transcript.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, req Request) (*models.Transcript, error)
}

// ProgressFunc is a callback for reporting progress messages.
type ProgressFunc func(msg string)

type progressKey struct{}

// WithProgress returns a context carrying the given progress callback.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// ReportProgress calls the progress callback in ctx, if any.
func ReportProgress(ctx context.Context, msg string) {
	if fn, ok := ctx.Value(progressKey{}).(ProgressFunc); ok && fn != nil {
		fn(msg)
	}
}
