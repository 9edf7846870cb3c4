package renderer

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile        Tile
	Framebuffer *Framebuffer // Shared output; tiles never overlap
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Stats  RenderStats
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	random      *rand.Rand // Owned by this worker, reseeded per pixel
	seed        int64
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers (0 = CPU count)
func NewWorkerPool(raytracer *Raytracer, numTiles, numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask),             // Unbuffered so dispatch can stop on cancellation
		resultQueue: make(chan TileResult, numTiles), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			random:      rand.New(rand.NewSource(seed)),
			seed:        seed,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue and waits for in-flight tiles to finish
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask hands a tile to the next idle worker, or returns ctx.Err() if cancelled first
func (wp *WorkerPool) SubmitTask(ctx context.Context, task TileTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.taskQueue <- task:
		return nil
	}
}

// Results returns the channel of completed tiles, closed by Stop
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats := w.raytracer.RenderBounds(task.Tile.Bounds, task.Framebuffer, w.random, w.seed)
		stats.TilesDone = 1
		w.resultQueue <- TileResult{
			TileID: task.Tile.ID,
			Stats:  stats,
		}
	}
}
