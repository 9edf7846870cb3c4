package geometry

import (
	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection with t strictly inside the interval.
type Shape interface {
	Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool)
}
