package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on Logger. It implements
// ResolverHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	Logger *log.Logger
}

// InstallLogHooks registers LogHooks on l for all event categories.
func InstallLogHooks(l *log.Logger) {
	h := LogHooks{Logger: l}
	SetResolverHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h LogHooks) OnMetadataLoad(_ context.Context, dataset string, dimensions int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("metadata load failed", "dataset", dataset, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.Logger.Debug("metadata loaded", "dataset", dataset, "dimensions", dimensions, "took", d.Round(time.Millisecond))
}

func (h LogHooks) OnDimensionMapped(_ context.Context, dataset, dimension string, changed bool) {
	h.Logger.Debug("dimension mapped", "dataset", dataset, "dimension", dimension, "changed", changed)
}

func (h LogHooks) OnURLBuilt(_ context.Context, dataset string, params int) {
	h.Logger.Debug("url built", "dataset", dataset, "params", params)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ ResolverHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ HTTPHooks     = LogHooks{}
)
