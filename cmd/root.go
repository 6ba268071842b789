package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/epdconv/internal/logging"
	"github.com/AnyUserName/epdconv/internal/profile"
)

// Environment variables read as flag defaults (also from .env).
const (
	envProfile  = "EPDCONV_PROFILE"
	envProfiles = "EPDCONV_PROFILES"
)

var (
	version      = "0.1.0"
	verbose      bool
	profilesFile string

	logger   *slog.Logger
	profiles *profile.Set
)

var rootCmd = &cobra.Command{
	Use:   "epdconv",
	Short: "Photo converter for multi-color e-paper panels",
	Long: `epdconv turns photos into fixed-palette images for 4- and 6-color
e-paper panels: tone adjustment, rotation and letterboxing onto the panel
canvas, error diffusion to the panel palette, and packing into the panel's
frame buffer layout or a C array for firmware.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger = logging.Setup(verbose)

		profiles = profile.NewSet()
		path := profilesFile
		if path == "" {
			path = os.Getenv(envProfiles)
		}
		if path != "" {
			if err := profiles.LoadFile(path); err != nil {
				return err
			}
			logVerbose("profiles loaded from %s", path)
		}
		return nil
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "epdconv: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&profilesFile, "profiles", "", "YAML file with extra device profiles (env "+envProfiles+")")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"epdconv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose logs a debug record; shown only when --verbose is set.
func logVerbose(format string, args ...any) {
	logging.For(logger, logging.ComponentCLI).Debug(fmt.Sprintf(format, args...))
}

// resolveProfile picks the named profile, falling back to $EPDCONV_PROFILE
// and then the default. Unknown names warn and use the default geometry.
func resolveProfile(name string) profile.Device {
	if name == "" {
		name = os.Getenv(envProfile)
	}
	if name == "" {
		name = profile.DefaultName
	}
	if _, ok := profiles.Lookup(name); !ok {
		logging.For(logger, logging.ComponentProfile).Warn("unknown profile, using default geometry",
			"profile", name, "default", profile.DefaultName)
	}
	return profiles.Get(name)
}
