package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/liamweeks/raytracer/pkg/config"
	"github.com/liamweeks/raytracer/pkg/core"
	"github.com/liamweeks/raytracer/pkg/loaders"
	"github.com/liamweeks/raytracer/pkg/output"
	"github.com/liamweeks/raytracer/pkg/renderer"
	"github.com/liamweeks/raytracer/pkg/scene"
)

const (
	appName           = "raytracer"
	version           = "v0.1.0"
	defaultConfigPath = "config.yaml"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree with its own viper instance
func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Recursive diffuse ray tracer",
		Long: `Renders spheres lit by a sky gradient with recursive diffuse bounces.

Settings come from built-in defaults, an optional YAML config file,
RAYTRACER_* environment variables and command-line flags, in increasing
order of precedence.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")

	rootCmd.AddCommand(
		newRenderCmd(v, &cfgFile),
		newScenesCmd(),
		newConfigCmd(),
		newCompareCmd(),
	)
	return rootCmd
}

func newRenderCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene",
		Long: `Render a built-in scene and write it to every output path.
Paths ending in .ppm or .txt are written as plain PPM, .png as PNG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *cfgFile)
			if err != nil {
				return err
			}
			return runRender(cfg, cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), cfg.Quiet))
		},
	}

	defaults := config.DefaultConfig()
	flags := cmd.Flags()
	flags.String("scene", defaults.Scene, "scene to render (see 'scenes')")
	flags.Int("width", defaults.Width, "image width in pixels")
	flags.Int("height", defaults.Height, "image height in pixels (0 keeps 16:9)")
	flags.Int("samples", defaults.SamplesPerPixel, "samples per pixel")
	flags.Int("max-depth", defaults.MaxDepth, "maximum ray bounces")
	flags.Float64("min-hit-distance", defaults.MinHitDistance, "minimum hit distance along a ray")
	flags.Int64("seed", defaults.Seed, "random seed")
	flags.StringSliceP("output", "o", defaults.Outputs, "output paths")
	flags.BoolP("quiet", "q", defaults.Quiet, "disable progress logging")

	bindings := map[string]string{
		"scene":             "scene",
		"width":             "width",
		"height":            "height",
		"samples_per_pixel": "samples",
		"max_depth":         "max-depth",
		"min_hit_distance":  "min-hit-distance",
		"seed":              "seed",
		"outputs":           "output",
		"quiet":             "quiet",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}

	return cmd
}

// runRender renders cfg.Scene and writes a summary to out
func runRender(cfg *config.Config, out io.Writer, logger core.Logger) error {
	s, err := scene.NewScene(cfg.Scene, cfg.SamplingConfig())
	if err != nil {
		return err
	}

	sink, err := output.CreateAll(cfg.Outputs)
	if err != nil {
		return fmt.Errorf("failed to open outputs: %w", err)
	}

	rt := renderer.NewRaytracer(s, s.SamplingConfig, core.NewSeededSampler(cfg.Seed))
	rt.SetLogger(logger)

	sampling := rt.Config()
	logger.Printf("Rendering %q (%d objects) at %dx%d, %d samples per pixel, max depth %d",
		cfg.Scene, s.GetPrimitiveCount(), sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth)

	stats, err := rt.Render(sink)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(out, "Render completed in %v\n", stats.Duration)
	fmt.Fprintf(out, "Pixels: %d, samples: %d\n", stats.TotalPixels, stats.TotalSamples)
	fmt.Fprintf(out, "Luminance: mean %.4f, std dev %.4f\n", stats.MeanLuminance, stats.StdDevLuminance)
	fmt.Fprintf(out, "Mean pixel variance: %.6f\n", stats.MeanPixelVariance)
	for _, path := range cfg.Outputs {
		fmt.Fprintf(out, "Render saved as %s\n", path)
	}
	return nil
}

func newLogger(w io.Writer, quiet bool) core.Logger {
	if quiet {
		return core.NopLogger{}
	}
	return log.New(w, "", log.LstdFlags)
}

func newScenesCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes := scene.ListScenes()
			out := cmd.OutOrStdout()

			if asYAML {
				data, err := yaml.Marshal(scenes)
				if err != nil {
					return fmt.Errorf("failed to marshal scenes: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			for _, info := range scenes {
				fmt.Fprintf(out, "  %-8s %s: %s\n", info.ID, info.DisplayName, info.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print scenes as YAML")
	return cmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("failed to check %s: %w", path, err)
				}
			}

			if err := config.Save(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}

func newCompareCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "compare <image-a> <image-b>",
		Short: "Report the mean absolute channel difference between two images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := compareImages(cmd.OutOrStdout(), args[0], args[1])
			if err != nil {
				return err
			}
			if threshold >= 0 && diff > threshold {
				return fmt.Errorf("difference %.4f exceeds threshold %.4f", diff, threshold)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", -1, "fail when the difference exceeds this value (negative disables)")
	return cmd
}

// compareImages prints the average luminance of both images and their mean
// absolute channel difference, which it returns
func compareImages(out io.Writer, pathA, pathB string) (float64, error) {
	a, err := loaders.LoadImage(pathA)
	if err != nil {
		return 0, err
	}
	b, err := loaders.LoadImage(pathB)
	if err != nil {
		return 0, err
	}
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	diff, err := renderer.MeanAbsoluteDifference(a.Pixels, b.Pixels)
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(out, "Average luminance: %s %.4f, %s %.4f\n",
		pathA, renderer.CalculateAverageLuminance(a.Pixels), pathB, renderer.CalculateAverageLuminance(b.Pixels))
	fmt.Fprintf(out, "Mean absolute difference: %.4f\n", diff)
	return diff, nil
}
