package dungeonstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/roguecore/pkg/seed"
)

func TestNewRoom_CenterIsFloored(t *testing.T) {
	r := NewRoom(0, 0, 0, 5, 4, RoomNormal, 1)
	assert.Equal(t, 2, r.CenterX)
	assert.Equal(t, 2, r.CenterY)
}

func TestRoom_OverlapsRespectsSpacing(t *testing.T) {
	a := NewRoom(0, 0, 0, 4, 4, RoomNormal, 1)
	b := NewRoom(1, 4, 0, 4, 4, RoomNormal, 2)

	assert.False(t, a.Overlaps(b, 0))
	assert.True(t, a.Overlaps(b, 1))
}

func TestState_CloneIsIndependent(t *testing.T) {
	s := NewState(10, 10)
	s.AddRoom(1, 1, 3, 3, RoomNormal, 1)
	clone := s.Clone()

	clone.AddRoom(5, 5, 2, 2, RoomNormal, 2)
	clone.Grid.Set(0, 0, 9)

	assert.Len(t, s.Rooms, 1)
	assert.Len(t, clone.Rooms, 2)
	assert.NotEqual(t, s.Grid.Get(0, 0), clone.Grid.Get(0, 0))
}

func TestConfig_ValidateRejectsBadDimensions(t *testing.T) {
	cfg := Config{Width: 5, Height: 5, Algorithm: AlgorithmBSP, RoomSizeRange: RoomSizeRange{Min: 3, Max: 4}}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestConfig_ValidateAcceptsSaneConfig(t *testing.T) {
	cfg := Config{
		Width: 40, Height: 40, Algorithm: AlgorithmCellular,
		RoomSizeRange: RoomSizeRange{Min: 4, Max: 10}, RoomCount: 5,
	}
	assert.NoError(t, cfg.Validate())
}

func TestChecksum_IsStableForIdenticalInput(t *testing.T) {
	terrain := []byte{1, 0, 1, 0}
	rooms := []Room{NewRoom(0, 0, 0, 2, 2, RoomNormal, 1)}
	conns := []Connection{{FromRoomID: 0, ToRoomID: 0, Path: []Point{{X: 0, Y: 0}}}}
	spawns := []SpawnDescriptor{{TemplateID: "rat", Position: Point{X: 1, Y: 1}}}

	c1 := Checksum(terrain, rooms, conns, spawns)
	c2 := Checksum(terrain, rooms, conns, spawns)
	assert.Equal(t, c1, c2)

	c3 := Checksum([]byte{1, 1, 1, 0}, rooms, conns, spawns)
	assert.NotEqual(t, c1, c3)
}

func TestFinalize_StampsSeedAndChecksum(t *testing.T) {
	s := NewState(4, 4)
	s.AddRoom(0, 0, 2, 2, RoomNormal, 1)
	sd := seed.FromPrimary(123)

	a := Finalize(s, sd)
	assert.Equal(t, sd, a.Seed)
	assert.NotZero(t, a.Checksum)
}
