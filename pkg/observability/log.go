package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline, cache and server events to a logger at debug
// level, and failures at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks { return &LogHooks{logger: logger} }

func (h *LogHooks) OnBatchStart(_ context.Context, batchID string, diagrams int) {
	h.logger.Debug("batch started", "batch", batchID, "diagrams", diagrams)
}

func (h *LogHooks) OnBatchComplete(_ context.Context, batchID string, diagrams, invalid int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("batch failed", "batch", batchID, "error", err, "duration", d)
		return
	}
	h.logger.Debug("batch complete", "batch", batchID, "diagrams", diagrams, "invalid", invalid, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, index int, format string) {
	h.logger.Debug("render started", "index", index, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, index int, format string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "index", index, "format", format, "error", err)
		return
	}
	h.logger.Debug("render complete", "index", index, "format", format, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

// RegisterLogHooks installs LogHooks for every hook category.
func RegisterLogHooks(logger *log.Logger) {
	h := NewLogHooks(logger)
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
