package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tlond/ray-tracing-weakend/pkg/output"
	"github.com/tlond/ray-tracing-weakend/pkg/renderer"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

// Request limits
const (
	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 1000

	shutdownTimeout = 5 * time.Second
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	renderer renderer.Config
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, renderer: renderer.DefaultConfig()}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string        `json:"scene"`           // Built-in scene name
	Width           int           `json:"width"`           // Image width (0 = scene default); height follows the aspect ratio
	SamplesPerPixel int           `json:"samplesPerPixel"` // Samples per pixel (0 = scene default)
	MaxDepth        int           `json:"maxDepth"`        // Maximum bounces (0 = scene default)
	Seed            int64         `json:"seed"`            // Scene and sampling seed
	Format          output.Format `json:"format"`          // png, jpeg or ppm
	Stream          bool          `json:"stream"`          // Stream console output and the result as server-sent events
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// WithRenderConfig replaces the tile size, worker count and default seed used for renders
func (s *Server) WithRenderConfig(config renderer.Config) *Server {
	s.renderer = config
	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully. Request contexts derive
// from ctx, so cancelling it also stops renders in flight.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting web server on http://localhost%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.ByName(sceneName, s.renderer.Seed)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"spheres":         sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minWidth, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":        map[string]int{"min": 1, "max": maxDepth},
		},
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:  query.Get("scene"),
		Format: output.Format(query.Get("format")),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}

	switch req.Format {
	case "":
		req.Format = output.FormatPNG
	case output.FormatPNG, output.FormatJPEG, output.FormatPPM:
	default:
		return nil, fmt.Errorf("format must be png, jpeg or ppm, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", s.renderer.Seed); err != nil {
		return nil, err
	}
	if value := query.Get("stream"); value != "" {
		if req.Stream, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid stream: %s", value)
		}
	}

	// Performance warning
	if req.Width*req.Width > 800*800 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// createScene builds the requested scene with the request's overrides applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.ByName(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}

	override := scene.SamplingConfig{
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
	}
	if req.Width > 0 {
		override.Width = req.Width
		override.Height = scene.HeightForWidth(req.Width, sceneObj.CameraConfig.AspectRatio)
	}
	sceneObj.SamplingConfig = scene.MergeSamplingConfig(sceneObj.SamplingConfig, override)
	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
