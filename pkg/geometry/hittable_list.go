package geometry

import "github.com/liamweeks/raytracer/pkg/core"

// HittableList is an ordered collection of shapes answering nearest-hit
// queries. It is itself a Shape, so lists may nest.
type HittableList struct {
	shapes []Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	l := &HittableList{}
	for _, shape := range shapes {
		l.Add(shape)
	}
	return l
}

// Add appends a shape to the list
func (l *HittableList) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Clear removes every shape
func (l *HittableList) Clear() {
	l.shapes = nil
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.shapes)
}

// Hit tests every shape and returns the closest intersection
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
