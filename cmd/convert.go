package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/epdconv/internal/convert"
	"github.com/AnyUserName/epdconv/internal/encoder"
)

var (
	convertOut     string
	convertProfile string
	convertFormats []string
	convertDevice  string
	convertSeed    uint64
	convertParams  paramFlags
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert one image for a panel",
	Long: `Converts a single image with the selected device profile and writes
one file per requested format:

  bin  packed frame buffer, ready for the panel
  c    C array literal for firmware
  png  palette preview

With --device the frame buffer is also written to that path as one
serialized display update.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output path without extension (default: input name in current dir)")
	convertCmd.Flags().StringVarP(&convertProfile, "profile", "p", "", "device profile (env "+envProfile+")")
	convertCmd.Flags().StringSliceVarP(&convertFormats, "format", "f", []string{"bin"}, "output formats: bin, c, png")
	convertCmd.Flags().StringVar(&convertDevice, "device", "", "also write the frame buffer to this path")
	convertCmd.Flags().Uint64Var(&convertSeed, "seed", 0, "noise seed (0 = random)")
	addParamFlags(convertCmd, &convertParams)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	input := args[0]
	prof := resolveProfile(convertProfile)
	params := convertParams.params()

	logVerbose("input:   %s", input)
	logVerbose("profile: %s (canvas %dx%d, panel %dx%d, palette %s)",
		prof.Name, prof.CanvasW, prof.CanvasH, prof.PanelW, prof.PanelH, prof.Palette.Name())
	logVerbose("params:  %s", params.Values().Encode())

	img, format, err := convert.DecodeFile(input)
	if err != nil {
		return err
	}
	logVerbose("decoded %s %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())

	conv := convert.New(prof)
	conv.Logger = logger
	if convertSeed != 0 {
		conv.Rand = rand.New(rand.NewPCG(convertSeed, convertSeed))
	}

	var res *convert.Result
	if convertDevice != "" {
		res, err = convert.NewDisplay(conv, convert.FileWriter{Path: convertDevice}).Show(img, params)
	} else {
		res, err = conv.Convert(img, params)
	}
	if err != nil {
		return err
	}

	base := convertOut
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	registry := encoder.NewRegistry()
	out := &encoder.Output{Profile: prof, Raster: res.Raster, Buffer: res.Buffer}
	for _, f := range registry.ResolveFormats(convertFormats) {
		enc := registry.Get(f)
		data, err := enc.Encode(out)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f, err)
		}
		path := base + "." + enc.Extension()
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("  %-4s %s (%s)\n", f, path, formatBytes(int64(len(data))))
	}
	if convertDevice != "" {
		fmt.Printf("  sent %s to %s\n", formatBytes(int64(len(res.Buffer))), convertDevice)
	}
	logVerbose("converted in %s", res.Elapsed)
	return nil
}
