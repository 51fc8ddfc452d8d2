package validation

import (
	"fmt"

	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/grid"
)

// spacingBuffer is the minimum gap enforced between any two rooms' bounds,
// matching pkg/generate's own placement spacing.
const spacingBuffer = 1

// reachabilityTolerance is the radius (in cells) within which a room
// center not landing on exactly the flood-filled region still counts as
// reached, absorbing floored centers that sit on a wall corner.
const reachabilityTolerance = 1

// Validate runs the full invariant check suite over a, honoring
// profile's grid/reachability skip. It never returns an error; every
// outcome is encoded in the returned Report.
func Validate(a *dungeonstate.Artifact, profile dungeonstate.ValidationProfile) *Report {
	report := &Report{
		Rooms:       validateRooms(a),
		Connections: validateConnections(a),
	}

	if profile != dungeonstate.ProfileProduction {
		report.Grid = validateGrid(a)
		report.Reachability = validateReachability(a)
	}

	report.Metrics = CollectMetrics(a)

	report.Valid = report.Rooms.passed() && report.Connections.passed() &&
		report.Grid.passed() && report.Reachability.passed()

	if len(a.Rooms) == 0 {
		report.addWarning("artifact has no rooms")
	}

	return report
}

func validateRooms(a *dungeonstate.Artifact) Section {
	sec := Section{Name: "rooms"}
	seenIDs := make(map[int]bool, len(a.Rooms))

	for _, r := range a.Rooms {
		bounds := r.X >= 0 && r.Y >= 0 && r.X+r.Width <= a.Width && r.Y+r.Height <= a.Height
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("room[%d].bounds", r.ID), bounds,
			fmt.Sprintf("room %d at (%d,%d) %dx%d within %dx%d grid", r.ID, r.X, r.Y, r.Width, r.Height, a.Width, a.Height),
		))

		positive := r.Width > 0 && r.Height > 0
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("room[%d].positiveDims", r.ID), positive,
			fmt.Sprintf("room %d dims %dx%d", r.ID, r.Width, r.Height),
		))

		wantCX, wantCY := dungeonstate.Center(r.X, r.Y, r.Width, r.Height)
		centerOK := r.CenterX == wantCX && r.CenterY == wantCY
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("room[%d].center", r.ID), centerOK,
			fmt.Sprintf("room %d center (%d,%d) expected (%d,%d)", r.ID, r.CenterX, r.CenterY, wantCX, wantCY),
		))

		unique := !seenIDs[r.ID]
		seenIDs[r.ID] = true
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("room[%d].uniqueID", r.ID), unique,
			fmt.Sprintf("room ID %d", r.ID),
		))
	}

	for i := 0; i < len(a.Rooms); i++ {
		for j := i + 1; j < len(a.Rooms); j++ {
			overlap := a.Rooms[i].Overlaps(a.Rooms[j], spacingBuffer)
			sec.Results = append(sec.Results, hardResult(
				fmt.Sprintf("room[%d,%d].noOverlap", a.Rooms[i].ID, a.Rooms[j].ID), !overlap,
				fmt.Sprintf("rooms %d and %d within spacing buffer %d", a.Rooms[i].ID, a.Rooms[j].ID, spacingBuffer),
			))
		}
	}

	return sec
}

func validateConnections(a *dungeonstate.Artifact) Section {
	sec := Section{Name: "connections"}
	roomsByID := make(map[int]dungeonstate.Room, len(a.Rooms))
	for _, r := range a.Rooms {
		roomsByID[r.ID] = r
	}

	for i, c := range a.Connections {
		from, fromOK := roomsByID[c.FromRoomID]
		to, toOK := roomsByID[c.ToRoomID]
		refsValid := fromOK && toOK
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("connection[%d].refsValid", i), refsValid,
			fmt.Sprintf("connection %d -> %d references existing rooms", c.FromRoomID, c.ToRoomID),
		))
		if !refsValid {
			continue
		}

		pathNonEmpty := len(c.Path) >= 2
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("connection[%d].pathNonEmpty", i), pathNonEmpty,
			fmt.Sprintf("connection %d -> %d has %d waypoints", c.FromRoomID, c.ToRoomID, len(c.Path)),
		))
		if !pathNonEmpty {
			continue
		}

		start, end := c.Path[0], c.Path[len(c.Path)-1]
		startOK := withinRadius(start, dungeonstate.Point{X: from.CenterX, Y: from.CenterY}, reachabilityTolerance) ||
			pointInRoom(start, from)
		endOK := withinRadius(end, dungeonstate.Point{X: to.CenterX, Y: to.CenterY}, reachabilityTolerance) ||
			pointInRoom(end, to)
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("connection[%d].endpointsAnchored", i), startOK && endOK,
			fmt.Sprintf("connection %d -> %d path endpoints near room centers", c.FromRoomID, c.ToRoomID),
		))

		withinGrid := true
		for _, p := range c.Path {
			if p.X < 0 || p.Y < 0 || p.X >= a.Width || p.Y >= a.Height {
				withinGrid = false
				break
			}
		}
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("connection[%d].waypointsInBounds", i), withinGrid,
			fmt.Sprintf("connection %d -> %d waypoints inside %dx%d grid", c.FromRoomID, c.ToRoomID, a.Width, a.Height),
		))
	}

	return sec
}

func pointInRoom(p dungeonstate.Point, r dungeonstate.Room) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func withinRadius(a, b dungeonstate.Point, radius int) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= radius && dy <= radius
}

func validateGrid(a *dungeonstate.Artifact) Section {
	sec := Section{Name: "grid"}
	dimsMatch := len(a.Terrain) == a.Width*a.Height
	sec.Results = append(sec.Results, hardResult(
		"grid.dimensionsMatch", dimsMatch,
		fmt.Sprintf("terrain length %d vs width*height %d", len(a.Terrain), a.Width*a.Height),
	))
	return sec
}

func validateReachability(a *dungeonstate.Artifact) Section {
	sec := Section{Name: "reachability"}
	if len(a.Rooms) == 0 {
		return sec
	}

	g := grid.New(a.Width, a.Height)
	for i, v := range a.Terrain {
		if i >= a.Width*a.Height {
			break
		}
		g.Set(i%a.Width, i/a.Width, v)
	}

	origin := a.Rooms[0]
	region := g.FloodFillFrom(origin.CenterX, origin.CenterY)

	for _, r := range a.Rooms[1:] {
		reached := cellNear(region, r.CenterX, r.CenterY, reachabilityTolerance)
		sec.Results = append(sec.Results, hardResult(
			fmt.Sprintf("reachability.room[%d]", r.ID), reached,
			fmt.Sprintf("room %d reachable from room %d within %d-cell tolerance", r.ID, origin.ID, reachabilityTolerance),
		))
	}

	return sec
}

func cellNear(region map[[2]int]bool, x, y, radius int) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if region[[2]int{x + dx, y + dy}] {
				return true
			}
		}
	}
	return false
}
