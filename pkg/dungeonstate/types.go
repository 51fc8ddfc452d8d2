package dungeonstate

import (
	"fmt"

	"github.com/dshills/roguecore/pkg/grid"
	"github.com/dshills/roguecore/pkg/seed"
)

// Algorithm names a concrete generator composition.
type Algorithm string

const (
	AlgorithmBSP      Algorithm = "bsp"
	AlgorithmCellular Algorithm = "cellular"
	AlgorithmHybrid   Algorithm = "hybrid"
)

// RoomType distinguishes a rectangular BSP room from an irregular
// cellular-automaton cavern.
type RoomType string

const (
	RoomNormal RoomType = "normal"
	RoomCavern RoomType = "cavern"
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Room is one placed room, BSP-rectangular or cellular-cavern. CenterX/
// CenterY are floored; the validator accepts both exact and floored
// centers.
type Room struct {
	ID                   int
	X, Y                 int
	Width, Height        int
	CenterX, CenterY     int
	Type                 RoomType
	Seed                 uint64
	ConnectionCount      int
	IsDeadEnd            bool
	DistanceFromEntrance int
}

// Center computes the floored center of a w x h rectangle at (x, y).
func Center(x, y, w, h int) (int, int) {
	return x + w/2, y + h/2
}

// NewRoom builds a Room with its center derived from its bounds.
func NewRoom(id, x, y, w, h int, typ RoomType, seed uint64) Room {
	cx, cy := Center(x, y, w, h)
	return Room{ID: id, X: x, Y: y, Width: w, Height: h, CenterX: cx, CenterY: cy, Type: typ, Seed: seed}
}

// Overlaps reports whether r overlaps other, with r expanded by spacing
// cells on every side.
func (r Room) Overlaps(other Room, spacing int) bool {
	ax0, ay0 := r.X-spacing, r.Y-spacing
	ax1, ay1 := r.X+r.Width+spacing, r.Y+r.Height+spacing
	bx0, by0 := other.X, other.Y
	bx1, by1 := other.X+other.Width, other.Y+other.Height
	return ax0 < bx1 && bx0 < ax1 && ay0 < by1 && by0 < ay1
}

// Connection is a routed corridor between two rooms.
type Connection struct {
	FromRoomID   int
	ToRoomID     int
	PathLength   int
	Path         []Point
	Type         string
	DoorPosition *Point
	Metadata     map[string]string
}

// SpawnDescriptor is a deterministic content-generation output consumed
// by pkg/worldload to instantiate prefabs.
type SpawnDescriptor struct {
	TemplateID        string
	Position          Point
	Tags              []string
	Metadata          map[string]string
	Weight            float64
	DistanceFromStart int
}

// State is the working artifact a pkg/generate pass mutates: the grid
// under construction plus whatever rooms/connections/spawns have been
// discovered by the passes that already ran. Pass.Run receives a State
// and returns a new one; passes never mutate a State another pass still
// holds.
type State struct {
	Grid        *grid.Grid
	Rooms       []Room
	Connections []Connection
	Spawns      []SpawnDescriptor
	PlayerSpawn Point
	NextRoomID  int
}

// NewState allocates an empty working state for a width x height run,
// the grid filled with walls.
func NewState(width, height int) *State {
	return &State{Grid: grid.New(width, height)}
}

// Clone deep-copies the state, including the grid, so a pass's returned
// value never aliases mutable storage another pass (or a captured
// snapshot) still references.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{
		Grid:        s.Grid.Clone(),
		Rooms:       append([]Room(nil), s.Rooms...),
		Connections: append([]Connection(nil), s.Connections...),
		Spawns:      append([]SpawnDescriptor(nil), s.Spawns...),
		PlayerSpawn: s.PlayerSpawn,
		NextRoomID:  s.NextRoomID,
	}
	return out
}

// AddRoom appends room with a freshly allocated ID and returns the
// stamped room.
func (s *State) AddRoom(x, y, w, h int, typ RoomType, rngSeed uint64) Room {
	r := NewRoom(s.NextRoomID, x, y, w, h, typ, rngSeed)
	s.NextRoomID++
	s.Rooms = append(s.Rooms, r)
	return r
}

// Artifact is the immutable, complete output of one generation run:
// terrain bytes, rooms, connections, spawns and a stable checksum over
// all of them, plus the seed that produced it.
type Artifact struct {
	Width       int
	Height      int
	Terrain     []byte
	Rooms       []Room
	Connections []Connection
	Spawns      []SpawnDescriptor
	PlayerSpawn Point
	Checksum    uint32
	Seed        seed.DungeonSeed
}

// String gives a one-line human summary, handy for verbose CLI output
// and log lines.
func (a *Artifact) String() string {
	return fmt.Sprintf("Artifact[%dx%d rooms=%d connections=%d spawns=%d checksum=%08x]",
		a.Width, a.Height, len(a.Rooms), len(a.Connections), len(a.Spawns), a.Checksum)
}
