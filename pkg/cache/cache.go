// Package cache provides artifact caching for the rendering pipeline.
//
// Rendered artifacts are derived data: they are keyed by a hash of the
// inputs and render options, so a repeated invocation with identical
// measurements serves the bytes straight from disk. User inputs themselves
// are never stored — only derived artifacts with bounded TTLs.
package cache

import (
	"context"
	"time"
)

// TTLs per cached object class. Artifacts are cheap to recompute, so the
// TTL mainly bounds disk growth.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLLevels   = 24 * time.Hour
)

// Cache stores opaque byte values under string keys with expiration.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render options that distinguish artifact
// cache entries for the same composed levels.
type ArtifactKeyOpts struct {
	Format string
	Level  string
	Scale  float64
}

// Keyer generates cache keys.
type Keyer interface {
	// LevelsKey keys a composed level set by the hash of its inputs.
	LevelsKey(inputsHash string) string

	// ArtifactKey keys one rendered artifact.
	ArtifactKey(levelsHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LevelsKey generates a key for a composed level set.
func (k *DefaultKeyer) LevelsKey(inputsHash string) string {
	return hashKey("levels", inputsHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(levelsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", levelsHash, opts)
}
