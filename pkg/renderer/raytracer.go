package renderer

import (
	"image"
	"math"
	"math/rand"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/integrator"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

// maxChannel keeps byte(256*c) below 256 after clamping
const maxChannel = 0.999

var (
	screenRange  = core.NewInterval(-1, 1)
	channelRange = core.NewInterval(0, maxChannel)
)

// Raytracer samples pixels through the scene camera and an integrator
type Raytracer struct {
	scene           *scene.Scene
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewRaytracer creates a raytracer for a width x height image
func NewRaytracer(sc *scene.Scene, integ integrator.Integrator, width, height, samplesPerPixel int) *Raytracer {
	return &Raytracer{
		scene:           sc,
		integrator:      integ,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// PixelCenter returns the screen-space point at the center of pixel (x, y)
func (rt *Raytracer) PixelCenter(x, y int) core.Vec2 {
	return core.NDCToScreen(core.RasterToNDC(x, y, rt.width, rt.height))
}

// jitter offsets a screen point uniformly within one pixel footprint in each direction,
// staying inside the [-1,1] screen square
func (rt *Raytracer) jitter(center core.Vec2, sampler core.Sampler) core.Vec2 {
	offset := sampler.Get2D()
	return core.NewVec2(
		screenRange.Clamp(center.X+(2*offset.X-1)/float64(rt.width)),
		screenRange.Clamp(center.Y+(2*offset.Y-1)/float64(rt.height)),
	)
}

// SamplePixel returns the average linear radiance of the jittered samples for pixel (x, y)
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Color {
	if rt.samplesPerPixel <= 0 {
		return core.Color{}
	}

	center := rt.PixelCenter(x, y)
	colorAccum := core.Color{}
	for sample := 0; sample < rt.samplesPerPixel; sample++ {
		ray := rt.scene.Camera.GenerateWorldRay(rt.jitter(center, sampler))
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.scene, sampler))
	}
	return colorAccum.Multiply(1.0 / float64(rt.samplesPerPixel))
}

// RenderBounds renders pixels within the bounds into fb. The generator is reseeded for every
// pixel, so a pixel's value depends only on seed and its position.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, fb *Framebuffer, random *rand.Rand, seed int64) RenderStats {
	sampler := core.NewRandomSampler(random)
	stats := RenderStats{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			random.Seed(PixelSeed(seed, y*rt.width+x))
			fb.SetRGB(x, y, QuantizeColor(rt.SamplePixel(x, y, sampler)))
			stats.TotalPixels++
			stats.TotalSamples += rt.samplesPerPixel
		}
	}

	return stats
}

// QuantizeColor gamma-2 encodes a linear color and maps it to bytes. NaN channels become 0.
func QuantizeColor(c core.Color) [3]byte {
	encoded := c.Sqrt()
	return [3]byte{toByte(encoded.X), toByte(encoded.Y), toByte(encoded.Z)}
}

func toByte(v float64) byte {
	if math.IsNaN(v) {
		return 0
	}
	return byte(256 * channelRange.Clamp(v))
}

// PixelSeed mixes the render seed with a pixel index (splitmix64 finalizer)
func PixelSeed(seed int64, pixelIndex int) int64 {
	z := uint64(seed) + uint64(pixelIndex+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
