package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/epdconv/internal/manifest"
	"github.com/AnyUserName/epdconv/internal/palette"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a build output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

// manifestPath accepts either a manifest file or the directory holding it.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, manifest.FileName), nil
	}
	return path, nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	fmt.Printf("  Canvas:           %dx%d\n", m.Canvas.Width, m.Canvas.Height)
	fmt.Printf("  Palette:          %s\n", m.Palette)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Seed:             %d\n", m.BuildInfo.Seed)
	}
	if len(m.Params) > 0 {
		keys := make([]string, 0, len(m.Params))
		for k := range m.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("  Params:")
		for _, k := range keys {
			fmt.Printf("    %-16s %s\n", k, m.Params[k])
		}
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	if s.Failed > 0 {
		fmt.Printf("  Failed sources:   %d\n", s.Failed)
	}
	fmt.Printf("  Total outputs:    %d\n", s.TotalOutputs)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, o := range a.Outputs {
			fs := formatStats[o.Format]
			fs.count++
			fs.bytes += o.Size
			formatStats[o.Format] = fs
		}
	}

	fmt.Println("  Format breakdown:")
	for _, f := range []string{"bin", "c", "png"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-4s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Ink usage per palette index.
	total := 0
	for _, n := range s.IndexTotals {
		total += n
	}
	if total > 0 {
		p, _ := palette.Lookup(m.Palette)
		fmt.Println("  Palette usage:")
		for i, n := range s.IndexTotals {
			label := fmt.Sprintf("index %d", i)
			if p != nil && i < p.Len() {
				c := p.Color(i)
				label = fmt.Sprintf("index %d #%02x%02x%02x", i, uint8(c.R), uint8(c.G), uint8(c.B))
			}
			fmt.Printf("    %-20s %5.1f%%\n", label, float64(n)/float64(total)*100)
		}
		fmt.Println()
	}

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if len(a.Outputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no outputs", key))
		}
		if len(a.Histogram) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q missing histogram", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
