package label

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planmark/siteplan-mcp/internal/geometry"
)

// Type classifies what a polygon label marks on the plan.
type Type string

// Label types recognized by the annotation engine.
const (
	TypePlot    Type = "plot"
	TypeBlock   Type = "block"
	TypeAmenity Type = "amenity"
)

// ParseType validates a label type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePlot, TypeBlock, TypeAmenity:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown label type %q", s)
}

// Label is one polygon annotation on a plan image.
//
// Points are stored as a closed ring (the first point repeated as the
// last). Optional attributes (block/house numbers, fill color, area)
// are filled by the pixel analyses or by the user; an absent area is
// genuinely unknown and is never encoded as zero.
type Label struct {
	ID          string           `json:"id"`
	Type        Type             `json:"type"`
	Points      []geometry.Point `json:"points"`
	BlockNumber int              `json:"blockNumber,omitempty"`
	HouseNumber int              `json:"houseNumber,omitempty"`
	Color       string           `json:"color,omitempty"`
	Area        *float64         `json:"area,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// New creates a label of the given type around the polygon, closing the
// ring if needed.
//
// Ids are UUIDs rather than the timestamp compositions an interactive
// editor might reach for: batch creation makes thousands of labels within
// one millisecond, and a clock-derived id scheme collides there.
func New(typ Type, points []geometry.Point) Label {
	now := time.Now().UTC()
	return Label{
		ID:        uuid.NewString(),
		Type:      typ,
		Points:    geometry.CloseRing(points),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MovePoint replaces the vertex at index with p, as a point-drag edit.
//
// When the first point of a closed ring moves, the duplicated closing
// point mirrors it so the ring stays closed; the same applies in reverse
// when the closing point itself is dragged.
func (l *Label) MovePoint(index int, p geometry.Point) error {
	if index < 0 || index >= len(l.Points) {
		return fmt.Errorf("point index %d out of range [0,%d)", index, len(l.Points))
	}

	closed := geometry.IsClosed(l.Points)
	l.Points[index] = p
	if closed {
		switch index {
		case 0:
			l.Points[len(l.Points)-1] = p
		case len(l.Points) - 1:
			l.Points[0] = p
		}
	}
	l.UpdatedAt = time.Now().UTC()
	return nil
}
