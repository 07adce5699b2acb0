package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// debugFilter prints every filtering decision to stderr. Toggled by SetFilterDebug.
var debugFilter bool

// SetFilterDebug enables verbose tracing of the filtering handler.
func SetFilterDebug(enabled bool) {
	debugFilter = enabled
}

// filteringHandler wraps a base slog.Handler to add tag and package filtering.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}
	if !h.allowPackage(r) || !h.allowTag(r) {
		return nil
	}
	return h.baseHandler.Handle(ctx, r)
}

// allowPackage resolves the caller's package from the record PC.
func (h *filteringHandler) allowPackage(r slog.Record) bool {
	if r.PC == 0 || (h.cfg.enabledPackagesSet == nil && h.cfg.disabledPackagesSet == nil) {
		return true
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return true
	}
	pkg := strings.ToLower(filepath.Base(filepath.Dir(frame.File)))

	if foundInSet(h.cfg.disabledPackagesSet, pkg) {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: Message from disabled package '%s'\n", pkg)
		}
		return false
	}
	if h.cfg.enabledPackagesSet != nil && !foundInSet(h.cfg.enabledPackagesSet, pkg) {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: Package '%s' not in enabled list\n", pkg)
		}
		return false
	}
	return true
}

func (h *filteringHandler) allowTag(r slog.Record) bool {
	var tagValue string
	var tagFound bool

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tagValue = strings.ToLower(a.Value.String())
			tagFound = true
			return false
		}
		return true
	})

	if !tagFound {
		// Untagged messages are dropped once specific tags are requested
		return h.cfg.enabledTagsSet == nil
	}
	if foundInSet(h.cfg.disabledTagsSet, tagValue) {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: Message with disabled tag '%s'\n", tagValue)
		}
		return false
	}
	if h.cfg.enabledTagsSet != nil && !foundInSet(h.cfg.enabledTagsSet, tagValue) {
		if debugFilter {
			fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: Tag '%s' not in enabled list\n", tagValue)
		}
		return false
	}
	return true
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
