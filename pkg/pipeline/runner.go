package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/contextviz/contextviz/pkg/cache"
	"github.com/contextviz/contextviz/pkg/observability"
	"github.com/contextviz/contextviz/pkg/perspective"
	"github.com/contextviz/contextviz/pkg/render"
)

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	inputsHash := r.inputsHash(opts)

	// Stage 1: Compose
	composeStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, result.RunID)
	levels, composeHit, err := r.composeLevels(ctx, opts, inputsHash)
	result.Stats.ComposeTime = time.Since(composeStart)
	observability.Pipeline().OnComposeComplete(ctx, result.RunID, len(levels), result.Stats.ComposeTime, err)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Levels = levels
	result.CacheInfo.ComposeHit = composeHit

	opts.Logger.Info("composed perspective levels",
		"run", result.RunID,
		"levels", len(levels),
		"duration", result.Stats.ComposeTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, result.RunID, opts.Formats)
	err = r.renderLevels(ctx, levels, opts, result, inputsHash)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, result.RunID, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	opts.Logger.Info("rendered artifacts",
		"run", result.RunID,
		"formats", opts.Formats,
		"artifacts", len(result.Artifacts),
		"cache_hits", result.CacheInfo.RenderHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compose runs only the compose stage.
func (r *Runner) Compose(ctx context.Context, opts Options) ([]perspective.Level, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return opts.composer().Compose(ctx, opts.inputs())
}

// composeLevels returns the level set for the options, consulting the
// levels cache first. A corrupt cache entry is dropped and recomputed.
func (r *Runner) composeLevels(ctx context.Context, opts Options, inputsHash string) ([]perspective.Level, bool, error) {
	key := r.Keyer.LevelsKey(inputsHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var levels []perspective.Level
			if err := json.Unmarshal(data, &levels); err == nil && len(levels) == perspective.LevelCount {
				observability.Cache().OnCacheHit(ctx, "levels")
				return levels, true, nil
			}
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "levels")
	}

	levels, err := opts.composer().Compose(ctx, opts.inputs())
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(levels); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLevels); err == nil {
			observability.Cache().OnCacheSet(ctx, "levels", len(data))
		}
	}
	return levels, false, nil
}

// renderLevels renders every level in every requested format, consulting
// the artifact cache before doing any work. JSON artifacts carry the run
// ID, so they are rendered fresh each time rather than cached.
func (r *Runner) renderLevels(ctx context.Context, levels []perspective.Level, opts Options, result *Result, inputsHash string) error {
	for _, level := range levels {
		for _, format := range opts.Formats {
			name := fmt.Sprintf("%s.%s", level.Label, format)

			cacheable := format != render.FormatJSON
			key := r.Keyer.ArtifactKey(inputsHash, cache.ArtifactKeyOpts{
				Format: format,
				Level:  level.Label,
				Scale:  opts.Scale,
			})

			if cacheable && !opts.Refresh {
				if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
					observability.Cache().OnCacheHit(ctx, "artifact")
					result.Artifacts[name] = data
					result.CacheInfo.RenderHits++
					continue
				}
				observability.Cache().OnCacheMiss(ctx, "artifact")
			}

			data, err := render.Render(level, format,
				render.WithRunID(result.RunID),
				render.WithScale(opts.Scale))
			if err != nil {
				return fmt.Errorf("level %s as %s: %w", level.Label, format, err)
			}
			result.Artifacts[name] = data
			result.CacheInfo.RenderMisses++

			if cacheable {
				if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
					observability.Cache().OnCacheSet(ctx, "artifact", len(data))
				}
			}
		}
	}
	return nil
}

// inputsHash hashes the serializable options so identical runs share
// cache entries.
func (r *Runner) inputsHash(opts Options) string {
	data, _ := json.Marshal(opts)
	return cache.Hash(data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
