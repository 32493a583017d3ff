// Package links holds the cross-references between sub-questions.
package links

import (
	"github.com/google/uuid"

	"github.com/abhisek/pyqtrack/internal/connectivity"
)

// Style is the visual line style of a link.
type Style string

const (
	StyleSolid  Style = "solid"  // Synchronised completion
	StyleDotted Style = "dotted" // Related but independent
)

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return s == StyleSolid || s == StyleDotted
}

// Color is a named palette entry.
type Color struct {
	Name  string
	Value string
}

// Palette is the fixed set of link colours, in picker order.
var Palette = []Color{
	{Name: "Blue", Value: "#3B82F6"},
	{Name: "Green", Value: "#10B981"},
	{Name: "Orange", Value: "#F59E0B"},
	{Name: "Purple", Value: "#8B5CF6"},
	{Name: "Red", Value: "#EF4444"},
	{Name: "Pink", Value: "#EC4899"},
}

// DefaultColor is the colour preselected in the link dialog.
var DefaultColor = Palette[0].Value

// ColorName returns the palette name for a hex value, or the value itself.
func ColorName(value string) string {
	for _, c := range Palette {
		if c.Value == value {
			return c.Name
		}
	}
	return value
}

// Visual describes how a link is drawn.
type Visual struct {
	Style Style  `json:"style"`
	Color string `json:"color"`
}

// LinkEdge joins two sub-questions by identifier. From and To are weak
// references: either may name a sub-question that no longer exists.
type LinkEdge struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Visual Visual `json:"visual"`
	Sync   bool   `json:"sync"`
}

// Endpoints implements connectivity.Edge.
func (e LinkEdge) Endpoints() (string, string) {
	return e.From, e.To
}

// Touches reports whether either endpoint is in the component.
func (e LinkEdge) Touches(c connectivity.Component) bool {
	return c.Has(e.From) || c.Has(e.To)
}

// New creates an edge with a fresh identifier. Solid links synchronise
// completion; dotted links are visual only. Endpoints are not validated.
func New(from, to string, style Style, color string) LinkEdge {
	if !style.Valid() {
		style = StyleSolid
	}
	if color == "" {
		color = DefaultColor
	}
	return LinkEdge{
		ID:     uuid.New().String(),
		From:   from,
		To:     to,
		Visual: Visual{Style: style, Color: color},
		Sync:   style == StyleSolid,
	}
}

// Append returns a new slice with e added. The input is not modified.
func Append(edges []LinkEdge, e LinkEdge) []LinkEdge {
	out := make([]LinkEdge, len(edges), len(edges)+1)
	copy(out, edges)
	return append(out, e)
}

// SyncOnly returns the edges that participate in completion propagation.
func SyncOnly(edges []LinkEdge) []LinkEdge {
	var out []LinkEdge
	for _, e := range edges {
		if e.Sync {
			out = append(out, e)
		}
	}
	return out
}

// FirstTouching returns the first edge, in store order, with an endpoint in c.
func FirstTouching(edges []LinkEdge, c connectivity.Component) (LinkEdge, bool) {
	for _, e := range edges {
		if e.Touches(c) {
			return e, true
		}
	}
	return LinkEdge{}, false
}

// Involving returns every edge with id as an endpoint.
func Involving(edges []LinkEdge, id string) []LinkEdge {
	var out []LinkEdge
	for _, e := range edges {
		if e.From == id || e.To == id {
			out = append(out, e)
		}
	}
	return out
}
