package renderer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/integrator"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

// ErrInvalidConfig is returned for non-positive image size, sample count, depth or tile size
var ErrInvalidConfig = errors.New("invalid render configuration")

// DefaultLogger implements core.Logger through the standard logger
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains the parallel execution settings of a render
type Config struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; equal seeds give byte-identical images
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// Renderer renders a scene into a framebuffer using a tile worker pool
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRenderer creates a renderer with a path tracing integrator bound to the scene's sampling config
func NewRenderer(sc *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if sc == nil {
		return nil, fmt.Errorf("nil scene: %w", ErrInvalidConfig)
	}
	if err := validate(sc.SamplingConfig, config); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		scene:      sc,
		integrator: integrator.NewPathTracingIntegrator(sc.SamplingConfig),
		config:     config,
		logger:     logger,
	}, nil
}

func validate(sampling scene.SamplingConfig, config Config) error {
	switch {
	case sampling.Width <= 0 || sampling.Height <= 0:
		return fmt.Errorf("image size %dx%d: %w", sampling.Width, sampling.Height, ErrInvalidConfig)
	case sampling.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel %d: %w", sampling.SamplesPerPixel, ErrInvalidConfig)
	case sampling.MaxDepth <= 0:
		return fmt.Errorf("max depth %d: %w", sampling.MaxDepth, ErrInvalidConfig)
	case config.TileSize <= 0:
		return fmt.Errorf("tile size %d: %w", config.TileSize, ErrInvalidConfig)
	}
	return nil
}

// Render traces every pixel of the scene. When ctx is cancelled no further tiles are started,
// tiles already in flight finish, and the partial framebuffer is returned with ctx.Err().
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	sampling := r.scene.SamplingConfig
	width, height := sampling.Width, sampling.Height

	fb := NewFramebuffer(width, height)
	tiles := NewTileGrid(width, height, r.config.TileSize)
	tilesPerRow := (width + r.config.TileSize - 1) / r.config.TileSize

	raytracer := NewRaytracer(r.scene, r.integrator, width, height, sampling.SamplesPerPixel)
	pool := NewWorkerPool(raytracer, len(tiles), r.config.NumWorkers, r.config.Seed)

	r.logger.Printf("Rendering %dx%d, %d samples/pixel, depth %d, %d tiles on %d workers\n",
		width, height, sampling.SamplesPerPixel, sampling.MaxDepth, len(tiles), pool.GetNumWorkers())

	stats := RenderStats{TotalTiles: len(tiles)}
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range pool.Results() {
			stats.Add(result.Stats)
			if stats.TilesDone%tilesPerRow == 0 || stats.TilesDone == stats.TotalTiles {
				r.logger.Printf("Tiles %d/%d done\n", stats.TilesDone, stats.TotalTiles)
			}
		}
	}()

	pool.Start()
	var dispatchErr error
	for _, tile := range tiles {
		if dispatchErr = pool.SubmitTask(ctx, TileTask{Tile: tile, Framebuffer: fb}); dispatchErr != nil {
			break
		}
	}
	pool.Stop()
	<-collected

	stats.Elapsed = time.Since(start)
	if dispatchErr != nil {
		r.logger.Printf("Render cancelled after %d/%d tiles: %v\n", stats.TilesDone, stats.TotalTiles, dispatchErr)
		return fb, stats, dispatchErr
	}

	r.logger.Printf("Render completed in %v (%.0f samples/pixel)\n", stats.Elapsed, stats.AverageSamples())
	return fb, stats, nil
}

// Render is a convenience wrapper around NewRenderer and (*Renderer).Render
func Render(ctx context.Context, sc *scene.Scene, config Config, logger core.Logger) (*Framebuffer, RenderStats, error) {
	r, err := NewRenderer(sc, config, logger)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return r.Render(ctx)
}
