// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fieldcanvas

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bureau-foundation/fieldmap/lib/field"
	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// Glyphs.
const (
	glyphEmpty      = ' '
	glyphPreview    = '·'
	glyphHandle     = '■'
	glyphMoveHandle = '✥'
	glyphStructure  = '█'
	glyphAgent      = '@'
)

type cell struct {
	glyph      rune
	foreground colorful.Color
	background colorful.Color
	bold       bool
}

type grid struct {
	width  int
	height int
	cells  []cell
}

func newGrid(width, height int, background colorful.Color) *grid {
	cells := make([]cell, width*height)
	for index := range cells {
		cells[index] = cell{glyph: glyphEmpty, background: background}
	}
	return &grid{width: width, height: height, cells: cells}
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// Render composes the current frame: areas in z-order, then
// structures, agents, the draw preview and resize handles.
func (canvas *Canvas) Render() string {
	viewport := canvas.viewport
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return ""
	}
	frame := newGrid(viewport.Width, viewport.Height, themeColor(canvas.theme.Background))

	for _, visual := range canvas.sortedAreas() {
		canvas.rasterizeArea(frame, visual)
	}
	for _, visual := range canvas.sortedAreas() {
		canvas.labelArea(frame, visual.area)
	}
	canvas.rasterizeStructures(frame)
	canvas.rasterizeAgents(frame)
	for visual := range canvas.outline {
		canvas.rasterizeOutline(frame, visual.center, visual.shape)
	}
	for visual := range canvas.handles {
		canvas.rasterizeHandle(frame, visual)
	}
	return frame.String()
}

func (canvas *Canvas) sortedAreas() []*areaVisual {
	visuals := make([]*areaVisual, 0, len(canvas.areas))
	for visual := range canvas.areas {
		if !visual.area.Archived {
			visuals = append(visuals, visual)
		}
	}
	slices.SortFunc(visuals, func(a, b *areaVisual) int {
		if order := cmp.Compare(a.area.ZIndex, b.area.ZIndex); order != 0 {
			return order
		}
		return cmp.Compare(a.area.ID, b.area.ID)
	})
	return visuals
}

// cellBounds returns the range of cells a shape can touch, clipped to
// the viewport.
func (canvas *Canvas) cellBounds(center geometry.Vec2, shape geometry.Shape) (minX, minY, maxX, maxY int) {
	half := shape.HalfExtent()
	minX, minY = canvas.viewport.WorldToCell(center.Sub(half))
	maxX, maxY = canvas.viewport.WorldToCell(center.Add(half))
	minX, minY = max(minX-1, 0), max(minY-1, 0)
	maxX = min(maxX+1, canvas.viewport.Width-1)
	maxY = min(maxY+1, canvas.viewport.Height-1)
	return minX, minY, maxX, maxY
}

func (canvas *Canvas) cellInside(center geometry.Vec2, shape geometry.Shape, x, y int) bool {
	return geometry.Contains(center, shape, canvas.viewport.CellToWorld(x, y))
}

// edgeGlyph picks a box-drawing glyph for a boundary cell from which
// of its neighbors lie outside the shape.
func edgeGlyph(top, bottom, left, right bool) rune {
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return 0
}

func (canvas *Canvas) boundaryGlyph(center geometry.Vec2, shape geometry.Shape, x, y int) rune {
	return edgeGlyph(
		!canvas.cellInside(center, shape, x, y-1),
		!canvas.cellInside(center, shape, x, y+1),
		!canvas.cellInside(center, shape, x-1, y),
		!canvas.cellInside(center, shape, x+1, y),
	)
}

func (canvas *Canvas) rasterizeArea(frame *grid, visual *areaVisual) {
	area := visual.area
	if area.Shape == nil {
		return
	}
	fill := parseColor(area.Color)
	edge := fill
	if visual.style.Selected {
		edge = brighten(fill, 0.4)
	}
	pulsing := canvas.pulses[area.ID]
	if pulsing {
		edge = themeColor(canvas.theme.Pulse)
	}

	minX, minY, maxX, maxY := canvas.cellBounds(area.Center, area.Shape)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !canvas.cellInside(area.Center, area.Shape, x, y) {
				continue
			}
			target := frame.at(x, y)
			target.background = blend(target.background, fill, visual.style.Opacity)
			glyph := canvas.boundaryGlyph(area.Center, area.Shape, x, y)
			if glyph == 0 {
				// Interior fill hides the outlines of areas below.
				target.glyph = glyphEmpty
				continue
			}
			target.glyph = glyph
			target.foreground = edge
			target.bold = visual.style.Selected || pulsing
		}
	}
}

func (canvas *Canvas) labelArea(frame *grid, area field.Area) {
	if area.Name == "" || area.Shape == nil {
		return
	}
	minX, _, maxX, _ := canvas.cellBounds(area.Center, area.Shape)
	available := maxX - minX - 3
	label := fitLabel(area.Name, available)
	if label == "" {
		return
	}
	anchorX, anchorY := canvas.viewport.WorldToCell(geometry.LabelAnchor(area.Center, area.Shape))
	// One row inside the top edge.
	canvas.writeText(frame, label, anchorX-labelWidth(label)/2, anchorY+1, themeColor(canvas.theme.NormalText), false)
}

func (canvas *Canvas) writeText(frame *grid, text string, x, y int, foreground colorful.Color, bold bool) {
	for _, glyph := range text {
		if target := frame.at(x, y); target != nil {
			target.glyph = glyph
			target.foreground = foreground
			target.bold = bold
		}
		x++
	}
}

func (canvas *Canvas) rasterizeStructures(frame *grid) {
	ids := slices.Sorted(maps.Keys(canvas.structures))
	selectedBackground := themeColor(canvas.theme.SelectedBackground)
	for _, structureID := range ids {
		structure := canvas.structures[structureID]
		color := themeColor(canvas.theme.Structure)
		if structure.Color != "" {
			color = parseColor(structure.Color)
		}
		selected := structureID == canvas.selectedStructure
		footprint := structure.Footprint()
		minX, minY, maxX, maxY := canvas.cellBounds(structure.Position, footprint)
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if !canvas.structureCovers(structure, x, y, canvas.viewport.CellToWorld(x, y)) {
					continue
				}
				target := frame.at(x, y)
				target.glyph = glyphStructure
				target.foreground = color
				if selected {
					target.background = selectedBackground
					target.foreground = brighten(color, 0.3)
				}
			}
		}
	}
}

func (canvas *Canvas) rasterizeAgents(frame *grid) {
	ids := slices.Sorted(maps.Keys(canvas.agents))
	selectedBackground := themeColor(canvas.theme.SelectedBackground)
	for _, agentID := range ids {
		agent := canvas.agents[agentID]
		x, y := canvas.viewport.WorldToCell(agent.Position)
		target := frame.at(x, y)
		if target == nil {
			continue
		}
		target.glyph = agentGlyph(agent)
		target.foreground = themeColor(canvas.theme.AgentStatusColor(agent.Status))
		target.bold = agent.TaskCount > 0
		if _, selected := canvas.selectedAgents[agentID]; selected {
			target.background = selectedBackground
			target.bold = true
		}
	}
}

// agentGlyph is the upper-cased first letter of the agent's class, or
// '@' when the class is empty.
func agentGlyph(agent field.Agent) rune {
	for _, letter := range agent.Class {
		if unicode.IsLetter(letter) || unicode.IsDigit(letter) {
			return unicode.ToUpper(letter)
		}
		break
	}
	return glyphAgent
}

func (canvas *Canvas) rasterizeOutline(frame *grid, center geometry.Vec2, shape geometry.Shape) {
	color := themeColor(canvas.theme.Preview)
	minX, minY, maxX, maxY := canvas.cellBounds(center, shape)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !canvas.cellInside(center, shape, x, y) {
				continue
			}
			if canvas.boundaryGlyph(center, shape, x, y) == 0 {
				continue
			}
			target := frame.at(x, y)
			target.glyph = glyphPreview
			target.foreground = color
		}
	}
}

func (canvas *Canvas) rasterizeHandle(frame *grid, visual *handleVisual) {
	x, y := canvas.viewport.WorldToCell(visual.handle.Position)
	target := frame.at(x, y)
	if target == nil {
		return
	}
	target.glyph = glyphHandle
	if visual.handle.Type == geometry.HandleMove {
		target.glyph = glyphMoveHandle
	}
	target.foreground = themeColor(canvas.theme.Handle)
	target.bold = true
}

// String renders the grid, emitting one styled run per stretch of
// cells that share colors.
func (g *grid) String() string {
	var output strings.Builder
	var run strings.Builder
	for y := range g.height {
		if y > 0 {
			output.WriteByte('\n')
		}
		var current cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(current.foreground.Hex())).
				Background(lipgloss.Color(current.background.Hex())).
				Bold(current.bold)
			output.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := range g.width {
			next := g.cells[y*g.width+x]
			if run.Len() > 0 && !sameStyle(current, next) {
				flush()
			}
			current = next
			run.WriteRune(next.glyph)
		}
		flush()
	}
	return output.String()
}

func sameStyle(a, b cell) bool {
	return a.foreground.Hex() == b.foreground.Hex() &&
		a.background.Hex() == b.background.Hex() &&
		a.bold == b.bold
}
