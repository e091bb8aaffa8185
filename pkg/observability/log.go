package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// both [PipelineHooks] and [CacheHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("trace")}
}

func (h *LogHooks) OnStageStart(_ context.Context, runID, stage string) {
	h.logger.Debug("stage start", "run", runID, "stage", stage)
}

func (h *LogHooks) OnStageComplete(_ context.Context, runID, stage string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "run", runID, "stage", stage, "duration", d, "err", err)
		return
	}
	h.logger.Debug("stage done", "run", runID, "stage", stage, "duration", d)
}

func (h *LogHooks) OnArtifact(_ context.Context, runID, format string, size int) {
	h.logger.Debug("artifact", "run", runID, "format", format, "bytes", size)
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

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
