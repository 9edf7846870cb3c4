package geometry

import (
	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
)

// ShapeList is an ordered collection of shapes queried by exhaustive linear scan
type ShapeList struct {
	shapes []Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape
func (l *ShapeList) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Len returns the number of shapes
func (l *ShapeList) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *ShapeList) Shapes() []Shape {
	return l.shapes
}

// Hit returns the nearest intersection over all shapes within the interval
func (l *ShapeList) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := interval.End

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, interval.WithEnd(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
