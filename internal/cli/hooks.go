package cli

import (
	"context"
	"time"

	"github.com/matzehuels/panelayout/pkg/observability"
)

// logHooks reports pipeline, cache and server events as debug log lines,
// using the logger attached to each event's context.
type logHooks struct{}

func (logHooks) OnFormatStart(ctx context.Context, leafCount int) {
	loggerFromContext(ctx).Debug("format start", "leaves", leafCount)
}

func (logHooks) OnFormatComplete(ctx context.Context, nodeCount int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("format failed", "duration", d, "error", err)
		return
	}
	loggerFromContext(ctx).Debug("format done", "nodes", nodeCount, "duration", d)
}

func (logHooks) OnReplayStart(ctx context.Context, opCount int) {
	loggerFromContext(ctx).Debug("replay start", "ops", opCount)
}

func (logHooks) OnOpApplied(ctx context.Context, op string, d time.Duration) {
	loggerFromContext(ctx).Debug("op applied", "op", op, "duration", d)
}

func (logHooks) OnReplayComplete(ctx context.Context, applied int, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("replay done", "applied", applied, "duration", d, "error", err)
}

func (logHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache hit", "type", keyType)
}

func (logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache miss", "type", keyType)
}

func (logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debug("cache set", "type", keyType, "bytes", size)
}

func (logHooks) OnRequest(ctx context.Context, method, route string) {}

func (logHooks) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	loggerFromContext(ctx).Info("request", "method", method, "route", route, "status", status, "duration", d)
}

// RegisterHooks installs the logging hooks. main calls it once at startup.
func RegisterHooks() {
	h := logHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetServerHooks(h)
}
