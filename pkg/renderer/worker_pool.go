package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
)

// RowTask represents one scanline to render
type RowTask struct {
	Y int
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Y       int
	Samples int
	Error   error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders rows with its own random stream
type Worker struct {
	ID          int
	raytracer   *Raytracer
	image       *Image
	sampler     *core.RandomSampler
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// DefaultNumWorkers returns the number of logical CPUs, as reported by the host
func DefaultNumWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// NewWorkerPool creates a worker pool writing rows of img
func NewWorkerPool(raytracer *Raytracer, img *Image, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultNumWorkers()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, img.Height),   // Buffer for every row
		resultQueue: make(chan RowResult, img.Height), // Buffer for every result
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			image:       img,
			sampler:     core.NewSeededSampler(0, 0), // Re-seeded for every pixel
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop waits for queued rows to finish and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Rows are disjoint slices of the shared image, so no locking is needed
		samples, err := w.raytracer.RenderRow(ctx, task.Y, w.image.Row(task.Y), w.sampler)
		w.resultQueue <- RowResult{
			Y:       task.Y,
			Samples: samples,
			Error:   err,
		}
	}
}
