package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/epdconv/internal/manifest"
	"github.com/AnyUserName/epdconv/internal/pipeline"
)

var (
	buildOutDir  string
	buildProfile string
	buildWorkers int
	buildFormats []string
	buildSeed    uint64
	buildParams  paramFlags
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Convert a directory of images and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, gif, bmp, tiff, webp),
converts each one with the selected device profile, writes the requested
formats (bin, c, png) and a manifest file.

Output filenames are content-addressed: <key>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./epdconv_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "", "device profile (env "+envProfile+")")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().StringSliceVarP(&buildFormats, "format", "f", []string{"bin", "png"}, "output formats: bin, c, png")
	buildCmd.Flags().Uint64Var(&buildSeed, "seed", 0, "base noise seed (0 = random, recorded in manifest)")
	addParamFlags(buildCmd, &buildParams)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := resolveProfile(buildProfile)
	params := buildParams.params()

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (canvas %dx%d, palette %s)", prof.Name, prof.CanvasW, prof.CanvasH, prof.Palette.Name())
	logVerbose("params:  %s", params.Values().Encode())

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Params:    params,
		Formats:   buildFormats,
		Workers:   buildWorkers,
		Seed:      buildSeed,
		Logger:    logger,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, manifestPath, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, manifestPath string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             epdconv build complete               ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Profile:     %s (%dx%d, %s)\n", m.Profile, m.Canvas.Width, m.Canvas.Height, m.Palette)
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", stats.Failed)
	}
	fmt.Printf("  Outputs:     %d\n", stats.TotalOutputs)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d  (seed %d)\n", m.BuildInfo.Workers, m.BuildInfo.Seed)
	}
	fmt.Println()

	// Slowest conversions.
	if len(m.Assets) > 0 {
		type assetTime struct {
			key string
			ms  int64
		}
		var items []assetTime
		for key, a := range m.Assets {
			items = append(items, assetTime{key, a.ElapsedMS})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].ms != items[j].ms {
				return items[i].ms > items[j].ms
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d slowest:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %6d ms\n", truncKey(it.key, 40), it.ms)
		}
		fmt.Println()
	}

	fmt.Printf("  Formats:     %s\n", strings.Join(detectOutputFormats(m), ", "))
	fmt.Printf("  Manifest:    %s\n", manifestPath)
	fmt.Println()
}

func detectOutputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			set[o.Format] = true
		}
	}
	var out []string
	for _, f := range []string{"bin", "c", "png"} {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
