package feedermap

import "github.com/good-yellow-bee/powerconnect/internal/models"

// Drawing constants.
const (
	GridSpacing   = 30.0
	GridColor     = "#e5e7eb"
	StationColor  = "#60a5fa"
	StationRadius = 15.0
	NodeRadius    = 8.0
	LabelColor    = "#374151"
	LabelSize     = 12.0
	LineWidth     = 2.0
	ActiveWidth   = 3.0
)

// Surface is anything the map can be drawn on.
type Surface interface {
	Size() (width, height float64)
	Clear()
	Line(x1, y1, x2, y2 float64, color string, width float64)
	Circle(cx, cy, r float64, color string)
	Text(x, y float64, text, color string, size float64)
}

// Render clears the surface and draws the full map. Feeder activeID, if
// present, gets a wider connecting line. A nil surface is a no-op.
func Render(s Surface, feeders []Feeder, activeID string) {
	if s == nil {
		return
	}
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}

	s.Clear()

	for y := 0.0; y < height; y += GridSpacing {
		s.Line(0, y, width, y, GridColor, 1)
	}
	for x := 0.0; x < width; x += GridSpacing {
		s.Line(x, 0, x, height, GridColor, 1)
	}

	c := Center(width, height)
	s.Circle(c.X, c.Y, StationRadius, StationColor)

	for _, p := range Layout(feeders, width, height) {
		color := ColorFor(p.Feeder.Status)
		lw := LineWidth
		if activeID != "" && p.Feeder.ID == activeID {
			lw = ActiveWidth
		}
		s.Line(c.X, c.Y, p.Endpoint.X, p.Endpoint.Y, color, lw)
		s.Circle(p.Endpoint.X, p.Endpoint.Y, NodeRadius, color)
		s.Text(p.Label.X, p.Label.Y, p.Feeder.Label, LabelColor, LabelSize)
	}
}

// ColorFor maps a status to its map colour.
func ColorFor(status models.Status) string {
	return status.Color()
}
