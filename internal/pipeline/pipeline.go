package pipeline

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/AnyUserName/epdconv/internal/convert"
	"github.com/AnyUserName/epdconv/internal/encoder"
	"github.com/AnyUserName/epdconv/internal/logging"
	"github.com/AnyUserName/epdconv/internal/manifest"
	"github.com/AnyUserName/epdconv/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Device
	Params    convert.Params
	Formats   []string // output formats; unknown ones are dropped
	Workers   int
	Seed      uint64 // 0 picks a random seed, recorded in the manifest
	Logger    *slog.Logger
}

// Pipeline converts every image of a directory tree.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	log      *slog.Logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64() | 1
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		log:      logging.For(cfg.Logger, logging.ComponentPipeline),
	}
}

// Run executes the full build pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	if err := p.cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", convert.ErrAllocation, err)
	}
	formats := p.registry.ResolveFormats(p.cfg.Formats)
	p.log.Debug(p.registry.String(), "selected", formats)

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.log.Info("scan complete", "images", len(sources), "workers", p.cfg.Workers)

	// Step 2: Convert images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.log.Debug("processing", "key", s.Key)

			results[idx] = processImage(s, p.cfg, formats, p.registry)

			if results[idx].err == nil {
				p.log.Debug("done", "key", s.Key, "outputs", len(results[idx].asset.Outputs))
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)
	m.Palette = p.cfg.Profile.Palette.Name()
	m.Canvas = manifest.Size{Width: p.cfg.Profile.CanvasW, Height: p.cfg.Profile.CanvasH}
	m.Params = flatten(p.cfg.Params)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			p.log.Error("convert failed", "err", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		p.log.Warn("partial build", "failed", len(errs), "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers: p.cfg.Workers,
		Seed:    p.cfg.Seed,
	}
	m.Stats.Failed = len(errs)
	m.ComputeStats()
	return m, nil
}

func flatten(p convert.Params) map[string]string {
	v := p.Values()
	out := make(map[string]string, len(v))
	for k := range v {
		out[k] = v.Get(k)
	}
	return out
}
