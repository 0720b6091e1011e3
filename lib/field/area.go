// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// ErrUnknownShape is returned by [AreaFromRecord] when a record's type
// is neither "rectangle" nor "circle".
var ErrUnknownShape = errors.New("unknown area shape")

// Area is a user-defined region on the ground plane.
//
// The shape variant is fixed at creation. [Area.Apply] refuses patches
// that would change it, and every dimension is kept at or above
// [geometry.MinSize].
type Area struct {
	// ID is opaque and immutable after creation.
	ID string

	// Shape is a [geometry.Rect] or [geometry.Circle].
	Shape geometry.Shape

	// Center is the shape's center on the ground plane.
	Center geometry.Vec2

	// Color is a "#rrggbb" display color.
	Color string

	// Name is the display label.
	Name string

	// ZIndex orders areas for painting and hit-testing. Higher values
	// paint later and win hit-tests. Values need not be contiguous.
	ZIndex int

	// Archived areas are logically deleted: retained for restore but
	// excluded from rendering, hit-testing and sync.
	Archived bool

	// AssignedAgentIDs and Directories are metadata owned by other
	// parts of the system and carried through untouched.
	AssignedAgentIDs []string
	Directories      []string
}

// Kind returns the area's shape variant.
func (area Area) Kind() geometry.Kind {
	if area.Shape == nil {
		return ""
	}
	return area.Shape.Kind()
}

// Contains reports whether point lies inside the area.
func (area Area) Contains(point geometry.Vec2) bool {
	return geometry.Contains(area.Center, area.Shape, point)
}

// Clone returns a copy that shares no slices with area.
func (area Area) Clone() Area {
	area.AssignedAgentIDs = slices.Clone(area.AssignedAgentIDs)
	area.Directories = slices.Clone(area.Directories)
	return area
}

// AreaPatch is a partial update. Nil fields are left unchanged.
type AreaPatch struct {
	Center           *geometry.Vec2
	Shape            geometry.Shape
	Color            *string
	Name             *string
	ZIndex           *int
	Archived         *bool
	AssignedAgentIDs *[]string
	Directories      *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (patch AreaPatch) IsEmpty() bool {
	return patch.Center == nil && patch.Shape == nil && patch.Color == nil &&
		patch.Name == nil && patch.ZIndex == nil && patch.Archived == nil &&
		patch.AssignedAgentIDs == nil && patch.Directories == nil
}

// Apply returns area with patch applied. A shape of a different kind
// than the area's is ignored; a shape of the same kind is clamped.
func (area Area) Apply(patch AreaPatch) Area {
	result := area.Clone()
	if patch.Center != nil {
		result.Center = *patch.Center
	}
	if patch.Shape != nil && patch.Shape.Kind() == area.Kind() {
		result.Shape = patch.Shape.Clamped()
	}
	if patch.Color != nil {
		result.Color = *patch.Color
	}
	if patch.Name != nil {
		result.Name = *patch.Name
	}
	if patch.ZIndex != nil {
		result.ZIndex = *patch.ZIndex
	}
	if patch.Archived != nil {
		result.Archived = *patch.Archived
	}
	if patch.AssignedAgentIDs != nil {
		result.AssignedAgentIDs = slices.Clone(*patch.AssignedAgentIDs)
	}
	if patch.Directories != nil {
		result.Directories = slices.Clone(*patch.Directories)
	}
	return result
}

// AreaRecord is the flat serialized form of an [Area]. Width and
// Height are meaningful only for rectangles, Radius only for circles.
type AreaRecord struct {
	ID               string        `json:"id"`
	Type             string        `json:"type"`
	Center           geometry.Vec2 `json:"center"`
	Width            float64       `json:"width,omitempty"`
	Height           float64       `json:"height,omitempty"`
	Radius           float64       `json:"radius,omitempty"`
	Color            string        `json:"color,omitempty"`
	Name             string        `json:"name,omitempty"`
	ZIndex           int           `json:"z_index"`
	Archived         bool          `json:"archived,omitempty"`
	AssignedAgentIDs []string      `json:"assigned_agent_ids,omitempty"`
	Directories      []string      `json:"directories,omitempty"`
}

// Record converts area to its serialized form.
func (area Area) Record() AreaRecord {
	record := AreaRecord{
		ID:               area.ID,
		Type:             string(area.Kind()),
		Center:           area.Center,
		Color:            area.Color,
		Name:             area.Name,
		ZIndex:           area.ZIndex,
		Archived:         area.Archived,
		AssignedAgentIDs: slices.Clone(area.AssignedAgentIDs),
		Directories:      slices.Clone(area.Directories),
	}
	switch shape := area.Shape.(type) {
	case geometry.Rect:
		record.Width = shape.Width
		record.Height = shape.Height
	case geometry.Circle:
		record.Radius = shape.Radius
	}
	return record
}

// AreaFromRecord converts a serialized record into an Area. The record
// must have an ID and a known type; dimensions for the other variant
// are ignored and the variant's own dimensions are clamped.
func AreaFromRecord(record AreaRecord) (Area, error) {
	if record.ID == "" {
		return Area{}, fmt.Errorf("area record has no id")
	}
	kind, ok := geometry.ParseKind(record.Type)
	if !ok {
		return Area{}, fmt.Errorf("area %s: %w: %q", record.ID, ErrUnknownShape, record.Type)
	}

	var shape geometry.Shape
	switch kind {
	case geometry.KindRectangle:
		shape = geometry.Rect{Width: record.Width, Height: record.Height}
	case geometry.KindCircle:
		shape = geometry.Circle{Radius: record.Radius}
	}

	return Area{
		ID:               record.ID,
		Shape:            shape.Clamped(),
		Center:           record.Center,
		Color:            record.Color,
		Name:             record.Name,
		ZIndex:           record.ZIndex,
		Archived:         record.Archived,
		AssignedAgentIDs: slices.Clone(record.AssignedAgentIDs),
		Directories:      slices.Clone(record.Directories),
	}, nil
}
