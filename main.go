package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

const defaultScene = "spheres"

// glogLogger routes renderer output through glog
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Offline CPU path tracer",
		Long: `raytracer renders the built-in scenes with a tiled, multi-threaded
Monte Carlo path tracer and writes the result as PNG or PPM.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(newRenderCmd(), newScenesCmd())
	return rootCmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a built-in scene to an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRenderConfig(cmd)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, glogLogger{})
		},
	}

	flags := cmd.Flags()
	flags.String("scene", defaultScene, "Scene name (see 'raytracer scenes')")
	flags.String("config", "", "YAML render config; flags override its values")
	flags.Int("width", 0, "Image width in pixels (default: scene width)")
	flags.Int("spp", 0, "Samples per pixel (default: scene setting)")
	flags.Int("depth", 0, "Maximum bounce depth (default: scene setting)")
	flags.Int("tile-size", 0, "Tile edge length in pixels")
	flags.Int("workers", 0, "Number of parallel workers (0 = all CPUs)")
	flags.Uint64("seed", 0, "Random seed")
	flags.String("seed-mode", "", "Random stream per 'pixel' or per 'tile'")
	flags.String("aggregation", "", "Tile merge strategy: 'merge' or 'locked'")
	flags.String("integrator", "", "Integrator: 'path' or 'normal'")
	flags.String("texture", "", "Image texture for the earth and final scenes")
	flags.StringP("output", "o", "", "Output file, .png or .ppm (default: output/<scene>/render_<timestamp>.png)")
	return cmd
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, group := range scene.ListScenes() {
				fmt.Fprintf(out, "%s:\n", group.Name)
				for _, info := range group.Scenes {
					fmt.Fprintf(out, "  %-14s %s\n", info.ID, info.Description)
				}
			}
		},
	}
}

// loadRenderConfig reads --config, if any, and layers the explicitly set
// flags over it
func loadRenderConfig(cmd *cobra.Command) (config.RenderConfig, error) {
	var file config.RenderConfig
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.RenderConfig{}, err
	}
	if path != "" {
		file, err = config.Load(path)
		if err != nil {
			return config.RenderConfig{}, err
		}
	}

	flagConfig, err := configFromFlags(cmd)
	if err != nil {
		return config.RenderConfig{}, err
	}
	merged := file.Merge(flagConfig)
	if err := merged.Validate(); err != nil {
		return config.RenderConfig{}, fmt.Errorf("invalid render flags: %w", err)
	}
	return merged, nil
}

// configFromFlags returns a config holding only the flags the user set
func configFromFlags(cmd *cobra.Command) (config.RenderConfig, error) {
	var cfg config.RenderConfig
	flags := cmd.Flags()

	stringFlags := map[string]**string{
		"scene":       &cfg.Scene,
		"seed-mode":   &cfg.SeedMode,
		"aggregation": &cfg.Aggregation,
		"integrator":  &cfg.Integrator,
		"texture":     &cfg.Texture,
		"output":      &cfg.Output,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return config.RenderConfig{}, err
		}
		*dst = &v
	}

	intFlags := map[string]**int{
		"width":     &cfg.Width,
		"spp":       &cfg.SamplesPerPixel,
		"depth":     &cfg.MaxDepth,
		"tile-size": &cfg.TileSize,
		"workers":   &cfg.Workers,
	}
	for name, dst := range intFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return config.RenderConfig{}, err
		}
		*dst = &v
	}

	if flags.Changed("seed") {
		v, err := flags.GetUint64("seed")
		if err != nil {
			return config.RenderConfig{}, err
		}
		cfg.Seed = &v
	}
	return cfg, nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

func runRender(ctx context.Context, cfg config.RenderConfig, logger core.Logger) error {
	sceneName := defaultScene
	if cfg.Scene != nil {
		sceneName = *cfg.Scene
	}

	s, err := scene.Create(sceneName, cfg.SceneOptions())
	if err != nil {
		return err
	}
	cfg.Apply(s)

	base := renderer.DefaultRenderOptions()
	base.SamplesPerPixel = s.SamplesPerPixel
	options := cfg.RenderOptions(base)

	kind := scene.IntegratorPath
	if cfg.Integrator != nil {
		kind = *cfg.Integrator
	}
	integratorInst, err := s.Integrator(kind)
	if err != nil {
		return err
	}

	bvh := s.BVHStats()
	logger.Printf("Scene %s: %d shapes, BVH %d nodes over %d primitives (depth %d)\n",
		s.Name, len(s.Shapes), bvh.Nodes, bvh.Primitives, bvh.MaxDepth)

	raytracer := renderer.NewRaytracer(s.World, s.Camera(), integratorInst, options, logger)
	fb, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	outputPath := defaultOutputPath(sceneName, time.Now())
	if cfg.Output != nil {
		outputPath = *cfg.Output
	}
	if err := loaders.SaveImage(outputPath, fb); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	logger.Printf("Render completed in %v (%d samples, %.0f samples/sec, %d workers)\n",
		stats.Duration, stats.TotalSamples, stats.SamplesPerSecond(), stats.Workers)
	logger.Printf("Average luminance: %.4f\n", renderer.AverageLuminance(fb))
	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

func main() {
	// Log to stderr unless the user asks for glog's file output
	_ = flag.Set("logtostderr", "true")

	err := newRootCmd().ExecuteContext(context.Background())
	if err != nil {
		glog.Errorf("Error: %v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
