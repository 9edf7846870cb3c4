package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/output"
	"github.com/tlond/ray-tracing-weakend/pkg/renderer"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

var renderCounter atomic.Int64

var contentTypes = map[output.Format]string{
	output.FormatPNG:  "image/png",
	output.FormatJPEG: "image/jpeg",
	output.FormatPPM:  "image/x-portable-pixmap",
}

// Stats represents render statistics
type Stats struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Tiles          int     `json:"tiles"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// RenderResult is the final event of a streamed render
type RenderResult struct {
	Format    output.Format `json:"format"`
	ImageData string        `json:"imageData"` // Base64 encoded image
	Stats     Stats         `json:"stats"`
}

func newStats(fb *renderer.Framebuffer, stats renderer.RenderStats) Stats {
	return Stats{
		Width:          fb.Width,
		Height:         fb.Height,
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   int64(stats.TotalSamples),
		AverageSamples: stats.AverageSamples(),
		Tiles:          stats.TotalTiles,
		ElapsedMs:      stats.Elapsed.Milliseconds(),
	}
}

// handleRender renders a scene and responds with the encoded image, or with server-sent
// events when stream=true. Client disconnection cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	config := s.renderer
	config.Seed = req.Seed

	if req.Stream {
		s.streamRender(r.Context(), w, renderID, sceneObj, config, req.Format)
		return
	}

	fb, stats, err := renderer.Render(r.Context(), sceneObj, config, NewWebLogger(renderID, nil))
	if err != nil {
		s.handleRenderError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleRenderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client is gone; nothing useful to send
		return
	case errors.Is(err, renderer.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
	}
}

type renderOutcome struct {
	fb    *renderer.Framebuffer
	stats renderer.RenderStats
	err   error
}

// streamRender forwards console messages as "console" events while rendering, then sends
// a "complete" event with the encoded image or an "error" event
func (s *Server) streamRender(ctx context.Context, w http.ResponseWriter, renderID string, sceneObj *scene.Scene, config renderer.Config, format output.Format) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	s.setSSEHeaders(w)

	consoleChan := make(chan ConsoleMessage, 100)
	outcome := make(chan renderOutcome, 1)
	go func(logger core.Logger) {
		fb, stats, err := renderer.Render(ctx, sceneObj, config, logger)
		// The renderer has stopped logging once Render returns
		close(consoleChan)
		outcome <- renderOutcome{fb: fb, stats: stats, err: err}
	}(NewWebLogger(renderID, consoleChan))

	for msg := range consoleChan {
		data, _ := json.Marshal(msg)
		sendSSEEvent(w, flusher, "console", string(data))
	}

	result := <-outcome
	if result.err != nil {
		if ctx.Err() == nil {
			sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", result.err))
		}
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, result.fb, format); err != nil {
		sendSSEEvent(w, flusher, "error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	data, err := json.Marshal(RenderResult{
		Format:    format,
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats:     newStats(result.fb, result.stats),
	})
	if err != nil {
		sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	sendSSEEvent(w, flusher, "complete", string(data))
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
