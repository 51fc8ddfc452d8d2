package generate

import (
	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/grid"
)

// CarveCorridor stamps floor along path, widening each point to a square
// of half-width floor(corridorWidth/2) clamped to the grid bounds. The
// same stamping applies whether the path came from an L-shaped route, a
// Bresenham line, or an A*-routed path.
func CarveCorridor(g *grid.Grid, path []dungeonstate.Point, corridorWidth int) {
	half := corridorWidth / 2
	for i, p := range path {
		if i > 0 {
			g.DrawLine(path[i-1].X, path[i-1].Y, p.X, p.Y, grid.Floor)
		}
		stampSquare(g, p.X, p.Y, half)
	}
	if len(path) == 1 {
		stampSquare(g, path[0].X, path[0].Y, half)
	}
}

func stampSquare(g *grid.Grid, cx, cy, half int) {
	g.FillRect(cx-half, cy-half, 2*half+1, 2*half+1, grid.Floor)
}

// LRoute builds an L-shaped path between two points: one axis moves
// first (chosen 50/50 by horizontalFirst), then the other.
func LRoute(from, to dungeonstate.Point, horizontalFirst bool) []dungeonstate.Point {
	if horizontalFirst {
		corner := dungeonstate.Point{X: to.X, Y: from.Y}
		return []dungeonstate.Point{from, corner, to}
	}
	corner := dungeonstate.Point{X: from.X, Y: to.Y}
	return []dungeonstate.Point{from, corner, to}
}
