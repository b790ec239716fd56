package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/integrator"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// maxByteColor keeps a fully saturated channel at 255 after scaling by 256
const maxByteColor = 0.999

// Raytracer renders a scene into an 8-bit image
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     scene.SamplingConfig
	numWorkers int
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using the scene's sampling configuration.
// numWorkers <= 0 selects one worker per logical CPU.
func NewRaytracer(s *scene.Scene, numWorkers int, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      s,
		integrator: integrator.NewPathTracingIntegrator(s.SamplingConfig),
		config:     s.SamplingConfig,
		numWorkers: numWorkers,
		logger:     logger,
	}
}

// RenderPixel computes the final bytes of pixel (x, y). The sampler is re-seeded from
// the scene seed and the pixel's linear index, so the result does not depend on which
// worker renders the pixel or in what order.
func (rt *Raytracer) RenderPixel(x, y int, sampler *core.RandomSampler) [3]uint8 {
	sampler.Reseed(rt.config.Seed, uint64(y*rt.config.Width+x))

	camera := rt.scene.Camera
	width := float32(rt.config.Width)
	height := float32(rt.config.Height)

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Jitter within the pixel
		jitter := sampler.Get2D()
		u := (float32(x) + jitter.X) / width
		v := (float32(y) + jitter.Y) / height

		ray := camera.GetRay(u, v)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.scene, sampler))
	}

	return vec3ToBytes(colorAccum.Divide(float32(rt.config.SamplesPerPixel)))
}

// RenderRow renders row y into row, which must hold Width RGB triples.
// The context is checked between pixels.
func (rt *Raytracer) RenderRow(ctx context.Context, y int, row []uint8, sampler *core.RandomSampler) (int, error) {
	samples := 0
	for x := 0; x < rt.config.Width; x++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		p := rt.RenderPixel(x, y, sampler)
		copy(row[x*3:x*3+3], p[:])
		samples += rt.config.SamplesPerPixel
	}
	return samples, nil
}

// Render renders the whole image in parallel, one row per task
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	img := NewImage(rt.config.Width, rt.config.Height)

	pool := NewWorkerPool(rt, img, rt.numWorkers)
	stats := RenderStats{
		TotalPixels:     rt.config.Width * rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d at %d spp (max depth %d) with %d workers\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, stats.NumWorkers)

	pool.Start(ctx)
	for y := 0; y < rt.config.Height; y++ {
		pool.SubmitTask(RowTask{Y: y})
	}
	pool.Stop()

	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.TotalSamples += result.Samples
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
	}
	stats.Elapsed = time.Since(start)

	if renderErr != nil {
		rt.logger.Printf("Render cancelled after %v: %v\n", stats.Elapsed, renderErr)
		return nil, stats, fmt.Errorf("render cancelled: %w", renderErr)
	}

	rt.logger.Printf("Render complete: %s\n", stats)
	return img, stats, nil
}

// vec3ToBytes converts a linear color to bytes with gamma 2 correction and clamping
func vec3ToBytes(c core.Vec3) [3]uint8 {
	c = c.Sqrt().Clamp(0, maxByteColor).Multiply(256)
	return [3]uint8{uint8(c.X), uint8(c.Y), uint8(c.Z)}
}
