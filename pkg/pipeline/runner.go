package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelayout/pkg/cache"
	perrors "github.com/matzehuels/panelayout/pkg/errors"
	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
	"github.com/matzehuels/panelayout/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeFormat = "format"
	keyTypeReplay = "replay"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that caching behaves the same everywhere.
//
// The Runner holds no results, only its cache, engine and logger, so
// multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine *layout.Engine
	Logger *log.Logger

	// TTL overrides the per-stage cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching, a nil engine means [layout.Default] and a nil
// logger means [log.Default].
func NewRunner(c cache.Cache, keyer cache.Keyer, engine *layout.Engine, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if engine == nil {
		engine = layout.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Engine: engine,
		Logger: logger,
	}
}

// Execute runs the complete format → replay → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, d layout.Draft, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	result := &Result{}

	// Stage 1: Format
	start := time.Now()
	l, hit, err := r.FormatWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, perrors.Wrap(perrors.GetCode(err), err, "format")
	}
	result.Stats.FormatTime = time.Since(start)
	result.CacheInfo.FormatHit = hit

	logger.Info("formatted layout",
		"leaves", len(l.Leaves()),
		"nodes", l.Len(),
		"cached", hit,
		"duration", result.Stats.FormatTime)

	// Stage 2: Replay
	if len(opts.Ops) > 0 {
		start = time.Now()
		var steps []StepResult
		l, steps, hit, err = r.ReplayWithCacheInfo(ctx, l, opts)
		if err != nil {
			return nil, err
		}
		result.Steps = steps
		result.Stats.ReplayTime = time.Since(start)
		result.CacheInfo.ReplayHit = hit

		logger.Info("replayed script",
			"ops", len(opts.Ops),
			"cached", hit,
			"duration", result.Stats.ReplayTime)
	}
	result.Layout = l
	result.Stats.LeafCount = len(l.Leaves())
	result.Stats.NodeCount = l.Len()
	result.Stats.OpCount = len(opts.Ops)
	if h, err := hashLayout(l); err == nil {
		result.LayoutHash = h
	}

	// Stage 3: Render
	start = time.Now()
	artifacts, err := Render(l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FormatWithCacheInfo formats d with caching and reports whether the
// snapshot came from the cache. The key covers the draft, the target size,
// the root key and the engine constraints.
func (r *Runner) FormatWithCacheInfo(ctx context.Context, d layout.Draft, opts Options) (*layout.Layout, bool, error) {
	if err := opts.ValidateForFormat(); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnFormatStart(ctx, countLeaves(d))
	start := time.Now()

	draftHash, err := cache.HashValue(d)
	if err != nil {
		return nil, false, perrors.Wrap(perrors.ErrCodeInternal, err, "hash draft")
	}
	cacheKey := r.Keyer.FormatKey(draftHash, opts.FormatKeyOpts(r.Engine.Constraints()))

	if !opts.Refresh {
		if l, ok := r.cached(ctx, cacheKey, keyTypeFormat); ok {
			hooks.OnFormatComplete(ctx, l.Len(), time.Since(start), nil)
			return l, true, nil
		}
	}

	l, err := r.Engine.Format(d, opts.Size(), opts.RootKey)
	if err != nil {
		hooks.OnFormatComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	r.store(ctx, cacheKey, keyTypeFormat, l)
	hooks.OnFormatComplete(ctx, l.Len(), time.Since(start), nil)
	return l, false, nil
}

// Format is a convenience wrapper that calls FormatWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Format(ctx context.Context, d layout.Draft, opts Options) (*layout.Layout, error) {
	l, _, err := r.FormatWithCacheInfo(ctx, d, opts)
	return l, err
}

// Apply replays ops against l in order without caching. It stops at the
// first failing op and returns the snapshot reached so far, the results of
// the ops applied before it and an error naming the op's index.
func (r *Runner) Apply(ctx context.Context, l *layout.Layout, ops []pkgio.Op) (*layout.Layout, []StepResult, error) {
	hooks := observability.Pipeline()
	hooks.OnReplayStart(ctx, len(ops))
	start := time.Now()

	steps := make([]StepResult, 0, len(ops))
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			hooks.OnReplayComplete(ctx, len(steps), time.Since(start), err)
			return l, steps, err
		}
		opStart := time.Now()
		next, res, err := ApplyOp(r.Engine, l, op)
		if err != nil {
			err = perrors.Wrap(perrors.GetCode(err), err, "op %d (%s)", i, op.Op)
			hooks.OnReplayComplete(ctx, len(steps), time.Since(start), err)
			return l, steps, err
		}
		res.Index = i
		hooks.OnOpApplied(ctx, string(op.Op), time.Since(opStart))
		r.Logger.Debug("applied op",
			"index", i,
			"op", op.Op,
			"changed", res.Changed,
			"applied", res.Applied)
		steps = append(steps, res)
		l = next
	}
	hooks.OnReplayComplete(ctx, len(steps), time.Since(start), nil)
	return l, steps, nil
}

// ReplayWithCacheInfo applies opts.Ops to l, caching the final snapshot under
// the hashes of l and the script. Step results are only available on a
// miss.
func (r *Runner) ReplayWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (*layout.Layout, []StepResult, bool, error) {
	if err := opts.ValidateForReplay(); err != nil {
		return nil, nil, false, err
	}
	layoutHash, err := hashLayout(l)
	if err != nil {
		return nil, nil, false, err
	}
	scriptHash, err := cache.HashValue(opts.Ops)
	if err != nil {
		return nil, nil, false, perrors.Wrap(perrors.ErrCodeInternal, err, "hash script")
	}
	cacheKey := r.Keyer.ReplayKey(layoutHash, scriptHash, ReplayKeyOpts(r.Engine.Constraints()))

	if !opts.Refresh {
		if cached, ok := r.cached(ctx, cacheKey, keyTypeReplay); ok {
			return cached, nil, true, nil
		}
	}

	next, steps, err := r.Apply(ctx, l, opts.Ops)
	if err != nil {
		return nil, steps, false, err
	}
	r.store(ctx, cacheKey, keyTypeReplay, next)
	return next, steps, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cached loads a snapshot from the cache. Undecodable entries count as
// misses so the caller recomputes them.
func (r *Runner) cached(ctx context.Context, key, keyType string) (*layout.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	l, err := pkgio.ReadLayout(bytes.NewReader(data))
	if err != nil {
		r.Logger.Debug("discarding undecodable cache entry", "type", keyType, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return l, true
}

// store writes a snapshot to the cache. Failures are logged, not returned:
// a cache that cannot be written only costs a recomputation later.
func (r *Runner) store(ctx context.Context, key, keyType string, l *layout.Layout) {
	var buf bytes.Buffer
	if err := pkgio.WriteLayout(&buf, l); err != nil {
		r.Logger.Warn("encode snapshot for cache", "error", err)
		return
	}
	ttl := cache.TTLFormat
	if keyType == keyTypeReplay {
		ttl = cache.TTLReplay
	}
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, buf.Len())
}

// applyLogger sets the runner's logger on options if not already set, so a
// per-run logger can override the runner's.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashLayout returns the content hash of a snapshot's JSON encoding.
func hashLayout(l *layout.Layout) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteLayout(&buf, l); err != nil {
		return "", fmt.Errorf("hash layout: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

func countLeaves(d layout.Draft) int {
	if !d.IsContainer() {
		return 1
	}
	n := 0
	for _, c := range d.Children {
		n += countLeaves(c)
	}
	return n
}
