package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/roguecore/pkg/dungeonstate"
)

func twoRoomArtifact() *dungeonstate.Artifact {
	width, height := 20, 10
	terrain := make([]byte, width*height)
	set := func(x, y int) { terrain[y*width+x] = 1 }
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			set(x, y)
		}
	}
	for y := 1; y < 4; y++ {
		for x := 10; x < 13; x++ {
			set(x, y)
		}
	}
	for x := 3; x < 11; x++ {
		set(x, 2)
	}

	r0 := dungeonstate.NewRoom(0, 1, 1, 3, 3, dungeonstate.RoomNormal, 1)
	r1 := dungeonstate.NewRoom(1, 10, 1, 3, 3, dungeonstate.RoomNormal, 2)

	conn := dungeonstate.Connection{
		FromRoomID: 0,
		ToRoomID:   1,
		PathLength: 8,
		Path: []dungeonstate.Point{
			{X: r0.CenterX, Y: r0.CenterY},
			{X: 5, Y: 2}, {X: 6, Y: 2}, {X: 7, Y: 2},
			{X: r1.CenterX, Y: r1.CenterY},
		},
	}

	return &dungeonstate.Artifact{
		Width:       width,
		Height:      height,
		Terrain:     terrain,
		Rooms:       []dungeonstate.Room{r0, r1},
		Connections: []dungeonstate.Connection{conn},
	}
}

func TestValidate_WellFormedArtifactPasses(t *testing.T) {
	a := twoRoomArtifact()
	report := Validate(a, dungeonstate.ProfileFull)

	require.NotNil(t, report.Metrics)
	assert.True(t, report.Valid, report.Summary())
	assert.Empty(t, report.FailedConstraints())
}

func TestValidate_OverlappingRoomsFailHard(t *testing.T) {
	a := twoRoomArtifact()
	a.Rooms[1] = dungeonstate.NewRoom(1, 2, 1, 3, 3, dungeonstate.RoomNormal, 2)

	report := Validate(a, dungeonstate.ProfileFull)

	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.FailedConstraints())
}

func TestValidate_ConnectionReferencingMissingRoomFails(t *testing.T) {
	a := twoRoomArtifact()
	a.Connections[0].ToRoomID = 99

	report := Validate(a, dungeonstate.ProfileFull)

	assert.False(t, report.Connections.passed())
}

func TestValidate_UnreachableRoomFailsReachability(t *testing.T) {
	a := twoRoomArtifact()
	// sever the corridor so room 1 is isolated
	for x := 3; x < 11; x++ {
		a.Terrain[2*a.Width+x] = 0
	}
	a.Connections = nil

	report := Validate(a, dungeonstate.ProfileFull)

	assert.False(t, report.Reachability.passed())
	assert.False(t, report.Valid)
}

func TestValidate_ProductionProfileSkipsGridAndReachability(t *testing.T) {
	a := twoRoomArtifact()
	for x := 3; x < 11; x++ {
		a.Terrain[2*a.Width+x] = 0
	}
	a.Connections = nil

	report := Validate(a, dungeonstate.ProfileProduction)

	assert.Empty(t, report.Grid.Results)
	assert.Empty(t, report.Reachability.Results)
	assert.True(t, report.Valid)
}

func TestCollectMetrics_FloorRatioAndRoomDensity(t *testing.T) {
	a := twoRoomArtifact()
	m := CollectMetrics(a)

	assert.Greater(t, m.FloorRatio, 0.0)
	assert.Greater(t, m.RoomDensity, 0.0)
	assert.Equal(t, 2, m.DeadEndCount)
	assert.Contains(t, m.SpawnDensityByRoom, 0)
	assert.Contains(t, m.SpawnDensityByRoom, 1)
}
