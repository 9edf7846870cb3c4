package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tlond/ray-tracing-weakend/pkg/renderer"
	"github.com/tlond/ray-tracing-weakend/web/server"
)

func main() {
	defaults := renderer.DefaultConfig()
	port := flag.Int("port", 8080, "Port to serve on")
	tileSize := flag.Int("tile", defaults.TileSize, "Tile size in pixels")
	workers := flag.Int("workers", defaults.NumWorkers, "Render workers per request (0 = CPU count)")
	seed := flag.Int64("seed", defaults.Seed, "Default seed when a request omits one")
	flag.Parse()

	if *tileSize <= 0 || *workers < 0 {
		log.Printf("Invalid render settings: tile=%d workers=%d", *tileSize, *workers)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webServer := server.NewServer(*port).WithRenderConfig(renderer.Config{
		TileSize:   *tileSize,
		NumWorkers: *workers,
		Seed:       *seed,
	})

	log.Printf("Sphere Raytracer Web Server (tile=%d workers=%d seed=%d)", *tileSize, *workers, *seed)
	log.Printf("Try http://localhost:%d/api/render?scene=default&width=400&spp=50", *port)

	if err := webServer.Start(ctx); err != nil {
		log.Printf("Error running server: %v", err)
		os.Exit(1)
	}
}
