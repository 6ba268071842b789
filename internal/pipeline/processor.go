package pipeline

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/AnyUserName/epdconv/internal/convert"
	"github.com/AnyUserName/epdconv/internal/encoder"
	"github.com/AnyUserName/epdconv/internal/hasher"
	"github.com/AnyUserName/epdconv/internal/manifest"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: decode, convert, encode, write.
func processImage(src Source, cfg Config, formats []string, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	img, _, err := convert.DecodeFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	// Each image gets its own noise stream, keyed by name so the output
	// does not depend on scheduling.
	conv := &convert.Converter{
		Profile: cfg.Profile,
		Rand:    rand.New(rand.NewPCG(cfg.Seed, xxhash.Sum64String(src.Key))),
		Logger:  cfg.Logger,
	}
	res, err := conv.Convert(img, cfg.Params)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: src.Format,
			Size:   src.Size,
		},
		Histogram: res.Raster.Histogram(cfg.Profile.Palette.Len()),
		ElapsedMS: res.Elapsed.Milliseconds(),
	}

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
		result.err = fmt.Errorf("create output dir for %s: %w", src.Key, err)
		return result
	}

	out := &encoder.Output{Profile: cfg.Profile, Raster: res.Raster, Buffer: res.Buffer}
	for _, format := range formats {
		enc := registry.Get(format)
		if enc == nil {
			continue
		}

		data, err := enc.Encode(out)
		if err != nil {
			result.err = fmt.Errorf("encode %s as %s: %w", src.Key, format, err)
			return result
		}

		// Content hash for filename.
		contentHash := hasher.ContentHash(data, 16)

		// Build filename: key.hash.ext
		fileName := fmt.Sprintf("%s.%s.%s",
			filepath.Base(src.Key), contentHash[:8], enc.Extension())
		relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

		outPath := filepath.Join(cfg.OutputDir, relPath)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			result.err = fmt.Errorf("write %s: %w", relPath, err)
			return result
		}

		result.asset.Outputs = append(result.asset.Outputs, manifest.Output{
			Format: format,
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   relPath,
		})
	}

	return result
}
