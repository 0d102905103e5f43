// Package feedermap draws the radial feeder status map and resolves clicks on it.
//
// Layout is a pure function of (index, count, surface size). Hit testing
// recomputes positions with the same function instead of caching them from
// the draw pass, so both must stay free of randomness.
package feedermap

import (
	"math"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

const (
	// RadiusFactor scales min(width, height) to the feeder line length.
	RadiusFactor = 0.4
	// LabelOffset is the extra distance along the ray for feeder labels.
	LabelOffset = 20.0
	// HitRadius is the click tolerance around a feeder node, in pixels.
	HitRadius = 10.0
)

// Point is a position on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Feeder is a single node on the map.
type Feeder struct {
	ID     string        `json:"id"`
	Label  string        `json:"label"`
	Status models.Status `json:"status"`
}

// FromOutages converts outage records to feeders, keeping their order.
func FromOutages(outages []*models.Outage) []Feeder {
	feeders := make([]Feeder, len(outages))
	for i, o := range outages {
		feeders[i] = Feeder{ID: o.ID, Label: o.Feeder, Status: o.Status}
	}
	return feeders
}

// Center returns the midpoint of a width x height surface.
func Center(width, height float64) Point {
	return Point{X: width / 2, Y: height / 2}
}

// Length returns the center-to-node distance for a surface.
func Length(width, height float64) float64 {
	return math.Min(width, height) * RadiusFactor
}

// Angle returns the angle in radians of feeder index out of count.
func Angle(index, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(index) / float64(count) * 2 * math.Pi
}

// Endpoint returns the node position of feeder index out of count.
func Endpoint(index, count int, width, height float64) Point {
	return along(index, count, width, height, Length(width, height))
}

// LabelPoint returns the label anchor of feeder index out of count.
func LabelPoint(index, count int, width, height float64) Point {
	return along(index, count, width, height, Length(width, height)+LabelOffset)
}

func along(index, count int, width, height, dist float64) Point {
	c := Center(width, height)
	a := Angle(index, count)
	return Point{
		X: c.X + math.Cos(a)*dist,
		Y: c.Y + math.Sin(a)*dist,
	}
}

// Placement is a feeder with its computed geometry.
type Placement struct {
	Feeder   Feeder `json:"feeder"`
	Endpoint Point  `json:"endpoint"`
	Label    Point  `json:"label"`
}

// Layout computes placements for all feeders on a width x height surface.
func Layout(feeders []Feeder, width, height float64) []Placement {
	n := len(feeders)
	out := make([]Placement, n)
	for i, f := range feeders {
		out[i] = Placement{
			Feeder:   f,
			Endpoint: Endpoint(i, n, width, height),
			Label:    LabelPoint(i, n, width, height),
		}
	}
	return out
}
