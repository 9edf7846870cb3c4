package core

// Vec2 is a 2D point, used for raster, NDC and screen-space coordinates
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// RasterToNDC maps the center of pixel (x, y) into [0,1]x[0,1] with y growing downward
func RasterToNDC(x, y, width, height int) Vec2 {
	return Vec2{
		X: (float64(x) + 0.5) / float64(width),
		Y: (float64(y) + 0.5) / float64(height),
	}
}

// NDCToScreen maps [0,1]x[0,1] NDC into [-1,1]x[-1,1] screen space with y growing upward
func NDCToScreen(p Vec2) Vec2 {
	return Vec2{X: 2*p.X - 1, Y: 1 - 2*p.Y}
}
