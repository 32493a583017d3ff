// Package geometry computes the connector drawings between linked cards.
//
// Every link component with at least two laid-out members gets one vertical
// spine and one horizontal branch per member. The spine's x offset is
// derived from a hash of the component's member ids so that neighbouring
// components rarely overlap and a component keeps its offset across
// recomputes.
package geometry

import (
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/abhisek/pyqtrack/internal/connectivity"
	"github.com/abhisek/pyqtrack/internal/links"
)

const (
	SpineBaseX  = 10
	SpineSpread = 30
)

// Point is a position in screen units.
type Point struct {
	X, Y float64
}

// Rect is the bounding box of a rendered card in screen units.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Branch is the horizontal segment from the spine to a member's left edge.
// Coordinates are relative to the container origin.
type Branch struct {
	ID string  // sub-question id
	Y  float64 // member's vertical centre
	TX float64 // member's left edge
}

// Connector is the drawing for one link component.
type Connector struct {
	ID       string // member ids, sorted and comma-joined
	SpineX   float64
	SpineY1  float64
	SpineY2  float64
	Branches []Branch
	Color    string
	Style    links.Style
}

// Compute returns one connector per component of edges that has at least
// two members present in rects. Members missing from rects are skipped.
// The result is sorted by connector ID.
func Compute(edges []links.LinkEdge, rects map[string]Rect, origin Point) []Connector {
	var out []Connector
	for _, comp := range connectivity.Components(edges) {
		ids := comp.IDs()

		var branches []Branch
		for _, id := range ids {
			r, ok := rects[id]
			if !ok {
				continue
			}
			branches = append(branches, Branch{
				ID: id,
				Y:  r.CenterY() - origin.Y,
				TX: r.X - origin.X,
			})
		}
		if len(branches) < 2 {
			continue
		}

		key := comp.Key()
		c := Connector{
			ID:       key,
			SpineX:   SpineX(key),
			SpineY1:  branches[0].Y,
			SpineY2:  branches[0].Y,
			Branches: branches,
			Color:    links.DefaultColor,
			Style:    links.StyleSolid,
		}
		for _, b := range branches[1:] {
			c.SpineY1 = min(c.SpineY1, b.Y)
			c.SpineY2 = max(c.SpineY2, b.Y)
		}
		if e, ok := links.FirstTouching(edges, comp); ok {
			c.Color = e.Visual.Color
			c.Style = e.Visual.Style
		}
		// Top-to-bottom so renderers can walk branches in screen order.
		slices.SortStableFunc(c.Branches, func(a, b Branch) int {
			switch {
			case a.Y < b.Y:
				return -1
			case a.Y > b.Y:
				return 1
			}
			return strings.Compare(a.ID, b.ID)
		})
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Connector) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// SpineX returns the spine offset for a component key.
func SpineX(key string) float64 {
	h := int64(Hash(key))
	if h < 0 {
		h = -h
	}
	return float64(SpineBaseX + h%SpineSpread)
}

// Hash is the 32-bit polynomial rolling hash h = h*31 + c over the UTF-16
// code units of s, wrapping on overflow.
func Hash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}
