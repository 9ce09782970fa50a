package document

import (
	"fmt"

	apperrors "github.com/pixelsmith/pixelsmith/internal/errors"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Vertex is one polygon corner.
type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shape is a named rect or polygon. Exactly one of Rect and Polygon is set.
type Shape struct {
	Name    string   `json:"name"`
	Rect    *Rect    `json:"rect,omitempty"`
	Polygon []Vertex `json:"polygon,omitempty"`
}

// validateShape rejects shapes with no payload or both payloads.
func validateShape(s Shape) error {
	hasRect := s.Rect != nil
	hasPolygon := len(s.Polygon) > 0
	if hasRect == hasPolygon {
		return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("shape %q must carry exactly one of rect or polygon", s.Name))
	}
	return nil
}

func copyShape(s Shape) Shape {
	out := s
	if s.Rect != nil {
		r := *s.Rect
		out.Rect = &r
	}
	if s.Polygon != nil {
		out.Polygon = make([]Vertex, len(s.Polygon))
		copy(out.Polygon, s.Polygon)
	}
	return out
}
