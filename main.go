package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/tlond/ray-tracing-weakend/pkg/loaders"
	"github.com/tlond/ray-tracing-weakend/pkg/output"
	"github.com/tlond/ray-tracing-weakend/pkg/renderer"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

// Options holds the parsed command line
type Options struct {
	Scene      string
	ConfigPath string
	Width      int
	Samples    int
	Depth      int
	Seed       int64
	Workers    int
	TileSize   int
	Output     string
	ThumbWidth int
	Help       bool
}

func parseFlags(args []string, stderr io.Writer) (Options, *flag.FlagSet, error) {
	var opts Options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.Scene, "scene", "default", "Built-in scene: "+sceneNames())
	fs.StringVar(&opts.ConfigPath, "config", "", "JSON scene file (overrides -scene)")
	fs.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 = scene default); height follows the aspect ratio")
	fs.IntVar(&opts.Samples, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", 0, "Maximum bounces (0 = scene default)")
	fs.Int64Var(&opts.Seed, "seed", renderer.DefaultConfig().Seed, "Random seed for scene generation and sampling")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.TileSize, "tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	fs.StringVar(&opts.Output, "out", "", "Output file; .ppm, .png, .jpg (default output/<scene>/render_<timestamp>.png)")
	fs.IntVar(&opts.ThumbWidth, "thumb", 0, "Also write a thumbnail of this width next to the output (0 = none)")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	err := fs.Parse(args)
	return opts, fs, err
}

func sceneNames() string {
	var names []string
	for _, info := range scene.ListScenes() {
		names = append(names, info.ID)
	}
	return strings.Join(names, ", ")
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
}

// createScene loads a JSON scene file when given, otherwise a built-in scene
func createScene(name, configPath string, seed int64) (*scene.Scene, error) {
	if configPath != "" {
		return loaders.LoadJSONScene(configPath)
	}
	return scene.ByName(name, seed)
}

// applyOverrides replaces scene sampling settings with positive command line values.
// A new width keeps the camera aspect ratio.
func applyOverrides(sc *scene.Scene, opts Options) {
	override := scene.SamplingConfig{
		SamplesPerPixel: opts.Samples,
		MaxDepth:        opts.Depth,
	}
	if opts.Width > 0 {
		override.Width = opts.Width
		override.Height = scene.HeightForWidth(opts.Width, sc.CameraConfig.AspectRatio)
	}
	sc.SamplingConfig = scene.MergeSamplingConfig(sc.SamplingConfig, override)
}

// sceneName is the built-in scene name, or the scene file's base name when -config is set
func sceneName(opts Options) string {
	if opts.ConfigPath != "" {
		return strings.TrimSuffix(filepath.Base(opts.ConfigPath), filepath.Ext(opts.ConfigPath))
	}
	return opts.Scene
}

func outputPath(opts Options) string {
	if opts.Output != "" {
		return opts.Output
	}
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", sceneName(opts), fmt.Sprintf("render_%s.png", timestamp))
}

func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".ppm") {
		ext = ".png"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb" + ext
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.Help {
		printHelp(stdout, fs)
		return nil
	}

	sc, err := createScene(opts.Scene, opts.ConfigPath, opts.Seed)
	if err != nil {
		return fmt.Errorf("error creating scene: %w", err)
	}
	applyOverrides(sc, opts)

	config := renderer.Config{
		TileSize:   opts.TileSize,
		NumWorkers: opts.Workers,
		Seed:       opts.Seed,
	}
	logger := renderer.NewDefaultLogger()
	logger.Printf("Scene %q: %d spheres\n", sceneName(opts), sc.GetPrimitiveCount())

	fb, stats, err := renderer.Render(ctx, sc, config, logger)
	if err != nil {
		return err
	}

	path := outputPath(opts)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := output.Save(path, fb); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}
	fmt.Fprintf(stdout, "Render saved as %s (%dx%d, %.0f samples/pixel, %v)\n",
		path, fb.Width, fb.Height, stats.AverageSamples(), stats.Elapsed.Round(time.Millisecond))

	if opts.ThumbWidth > 0 {
		thumbPath := thumbnailPath(path)
		if err := output.Save(thumbPath, output.Thumbnail(fb, opts.ThumbWidth)); err != nil {
			return fmt.Errorf("error saving thumbnail: %w", err)
		}
		fmt.Fprintf(stdout, "Thumbnail saved as %s\n", thumbPath)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
