package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List device profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Printf("  %-20s %-9s %-9s %-6s %-4s %-9s %-10s %s\n",
		"NAME", "CANVAS", "PANEL", "ROTATE", "BPP", "INVERTED", "PALETTE", "BUFFER")
	for _, name := range profiles.Names() {
		d := profiles.Get(name)
		fmt.Printf("  %-20s %-9s %-9s %-6d %-4d %-9t %-10s %s\n",
			name,
			fmt.Sprintf("%dx%d", d.CanvasW, d.CanvasH),
			fmt.Sprintf("%dx%d", d.PanelW, d.PanelH),
			d.Rotate,
			d.BitsPerPixel,
			d.Inverted,
			d.Palette.Name(),
			formatBytes(int64(d.BufferSize())),
		)
	}
	fmt.Println()
	return nil
}
