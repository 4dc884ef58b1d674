package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/contextviz/contextviz/pkg/observability"
	"github.com/contextviz/contextviz/pkg/render"
)

// artifactWriteParams bundles everything needed to write pipeline artifacts
// to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte // keyed "<label>.<format>"
	labels    []string          // level labels in fixed order
	formats   []string
	output    string // output base path; empty means current directory
	cached    bool
}

// writeArtifacts writes each artifact to "<base>_<label>.<format>" and prints
// a summary. With a single level and format the file is "<base>.<format>".
// An empty output base falls back to the level label alone.
func writeArtifacts(ctx context.Context, p artifactWriteParams) error {
	base := basePath(p.output)

	var written []string
	for _, label := range p.labels {
		for _, format := range p.formats {
			data, ok := p.artifacts[label+"."+format]
			if !ok {
				continue
			}

			path := artifactPath(base, label, format, len(p.labels) == 1 && len(p.formats) == 1)
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			err := os.WriteFile(path, data, 0o644)
			observability.Pipeline().OnExport(ctx, path, len(data), err)
			if err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}

	printSuccess("Generated %d file(s)", len(written))
	for _, path := range written {
		printFile(path)
	}
	printStats(len(p.labels), len(written), p.cached)
	return nil
}

// artifactPath builds the output file name for one artifact.
func artifactPath(base, label, format string, single bool) string {
	if base == "" {
		return label + "." + format
	}
	if single {
		return base + "." + format
	}
	return base + "_" + label + "." + format
}

// basePath strips a known format extension from the output path so that
// "--output out.svg --format svg,png" produces out.svg and out.png rather
// than out.svg.png.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if render.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
