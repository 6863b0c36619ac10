// Package dispatch resolves tool names to handlers and wraps every outcome in
// an MCP tool result envelope.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lukman83/youtube-mcp/internal/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
)

// Handler runs one tool call against a raw argument mapping.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Typed adapts a service method taking a parameter struct into a Handler.
// Arguments are bound and validated by Bind before fn runs.
func Typed[T, R any](fn func(context.Context, T) (R, error)) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		params, err := Bind[T](args)
		if err != nil {
			return nil, err
		}
		return fn(ctx, params)
	}
}

// Dispatcher maps tool names to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *logrus.Entry
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		log:      logger.With("dispatch"),
	}
}

// Register binds name to h, replacing any previous handler.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// Has reports whether name is registered.
func (d *Dispatcher) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[name]
	return ok
}

// Names returns registered tool names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named handler and returns its raw result.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (result any, err error) {
	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, d.unknown(name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return h(ctx, args)
}

// Call runs the named handler and always returns a well-formed envelope:
// failures come back with IsError set rather than as a Go error.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	start := time.Now()
	result, err := d.Invoke(ctx, name, args)
	entry := d.log.WithFields(logrus.Fields{
		"tool":     name,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("tool call failed")
		return ErrorResult(err)
	}

	text, err := Render(result)
	if err != nil {
		entry.WithError(err).Error("encode tool result")
		return ErrorResult(fmt.Errorf("encode result: %w", err))
	}
	entry.Info("tool call")
	return mcp.NewToolResultText(text)
}

// ErrorResult wraps err in an error-flagged envelope.
func ErrorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}

// Render formats a result the way every tool returns it: indented JSON.
func Render(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *Dispatcher) unknown(name string) error {
	e := &UnknownToolError{Name: name}
	if name == "" {
		return e
	}
	if matches := fuzzy.Find(name, d.Names()); len(matches) > 0 {
		e.Suggestion = matches[0].Str
	}
	return e
}
