package dungeonstate

import (
	"encoding/binary"
	"hash/crc32"
	"sort"

	"github.com/dshills/roguecore/pkg/seed"
)

// Checksum computes a stable checksum over terrain, rooms, connections
// and spawns: re-running generation with the same seed and config must
// reproduce the same value bit-for-bit. Every slice is already in
// deterministic order by the time this runs (rooms by ID, connections
// and spawns by discovery order), so no re-sorting happens here beyond
// a defensive room-ID sort.
func Checksum(terrain []byte, rooms []Room, connections []Connection, spawns []SpawnDescriptor) uint32 {
	h := crc32.NewIEEE()
	var buf [8]byte

	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v*1e6)))
		h.Write(buf[:])
	}

	h.Write(terrain)

	sortedRooms := append([]Room(nil), rooms...)
	sort.Slice(sortedRooms, func(i, j int) bool { return sortedRooms[i].ID < sortedRooms[j].ID })
	for _, r := range sortedRooms {
		writeInt(r.ID)
		writeInt(r.X)
		writeInt(r.Y)
		writeInt(r.Width)
		writeInt(r.Height)
		writeInt(r.CenterX)
		writeInt(r.CenterY)
		h.Write([]byte(r.Type))
	}

	for _, c := range connections {
		writeInt(c.FromRoomID)
		writeInt(c.ToRoomID)
		writeInt(c.PathLength)
		for _, p := range c.Path {
			writeInt(p.X)
			writeInt(p.Y)
		}
	}

	for _, s := range spawns {
		h.Write([]byte(s.TemplateID))
		writeInt(s.Position.X)
		writeInt(s.Position.Y)
		writeFloat(s.Weight)
		for _, t := range s.Tags {
			h.Write([]byte(t))
		}
	}

	return h.Sum32()
}

// Finalize builds the immutable Artifact from a completed working State
// and the seed that produced it, stamping its checksum.
func Finalize(s *State, sd seed.DungeonSeed) *Artifact {
	terrain := append([]byte(nil), s.Grid.Cells()...)
	return &Artifact{
		Width:       s.Grid.Width(),
		Height:      s.Grid.Height(),
		Terrain:     terrain,
		Rooms:       append([]Room(nil), s.Rooms...),
		Connections: append([]Connection(nil), s.Connections...),
		Spawns:      append([]SpawnDescriptor(nil), s.Spawns...),
		PlayerSpawn: s.PlayerSpawn,
		Checksum:    Checksum(terrain, s.Rooms, s.Connections, s.Spawns),
		Seed:        sd,
	}
}
