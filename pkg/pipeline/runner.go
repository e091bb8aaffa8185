package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/desvart/qsnap/pkg/cache"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	qio "github.com/desvart/qsnap/pkg/io"
	"github.com/desvart/qsnap/pkg/observability"
	"github.com/desvart/qsnap/pkg/render"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL overrides the default lifetime of cached entries when positive.
	TTL time.Duration
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// means [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs layout and render for a dataset.
func (r *Runner) Execute(ctx context.Context, ds qio.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	layoutStart := time.Now()
	doc, hit, err := r.LayoutWithCacheInfo(ctx, result.RunID, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = doc
	result.CacheInfo.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)
	if ds.Table != nil {
		result.Stats.Categories = ds.Table.NumCategories()
		result.Stats.Years = ds.Table.NumYears()
	}
	logger.Info("computed layout",
		"kind", doc.Kind,
		"categories", result.Stats.Categories,
		"years", result.Stats.Years,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result.Document, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo assembles the chart document, reusing a cached one
// for the same dataset, kind and style. The returned document carries runID
// and the image size of opts.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, runID string, ds qio.Dataset, opts Options) (render.Document, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return render.Document{}, false, err
	}

	key := ""
	if inputHash, err := cache.HashJSON(ds); err == nil {
		key = r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())
	}

	if key != "" && !opts.Refresh {
		if data, ok := r.get(ctx, "layout", key); ok {
			if doc, err := render.UnmarshalDocument(data); err == nil {
				doc.RunID, doc.Image = runID, opts.Image
				return doc, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached layout", "key", key)
		}
	}

	doc, err := Layout(ctx, runID, ds, opts)
	if err != nil {
		return render.Document{}, false, err
	}

	if key != "" {
		if data, err := render.MarshalDocument(doc); err == nil {
			r.set(ctx, "layout", key, data, cache.TTLLayout)
		}
	}
	doc.RunID = runID
	return doc, false, nil
}

// RenderWithCacheInfo renders opts.Formats from a document. JSON is always
// marshaled afresh since it carries the run ID; every other format is
// cached by the document's content and the image size.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc render.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if doc.Kind != opts.Kind {
		return nil, false, qerrors.New(qerrors.ErrCodeInvalidInput, "document is a %s chart, options ask for %s", doc.Kind, opts.Kind)
	}
	doc.Image = opts.Image

	keyed := doc
	keyed.RunID = ""
	docHash, err := cache.HashJSON(keyed)
	if err != nil {
		return nil, false, fmt.Errorf("hash document: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if format == FormatJSON || opts.Refresh {
			missing = append(missing, format)
			continue
		}
		if data, ok := r.get(ctx, "artifact", r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, doc, missing)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if format != FormatJSON {
			r.set(ctx, "artifact", r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
		}
	}
	return artifacts, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads the cache and reports the outcome to the cache hooks. Backend
// errors count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes the cache. Failures are logged, never returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
