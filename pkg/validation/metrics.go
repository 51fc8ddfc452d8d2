package validation

import "github.com/dshills/roguecore/pkg/dungeonstate"

// Metrics is the spatial/connectivity/content statistics collected over
// a finished Artifact.
type Metrics struct {
	FloorRatio                  float64
	RoomDensity                 float64
	AverageConnectionPathLength float64
	DeadEndCount                int
	SpawnDensityByRoom          map[int]float64
}

// CollectMetrics computes Metrics over a's terrain, rooms, connections and
// spawns. It never fails: every quantity degrades to zero on empty input
// rather than dividing by zero.
func CollectMetrics(a *dungeonstate.Artifact) *Metrics {
	m := &Metrics{SpawnDensityByRoom: make(map[int]float64, len(a.Rooms))}

	totalCells := a.Width * a.Height
	if totalCells > 0 {
		floor := 0
		for _, v := range a.Terrain {
			if v != 0 {
				floor++
			}
		}
		m.FloorRatio = float64(floor) / float64(totalCells)
	}

	if totalCells > 0 {
		roomArea := 0
		for _, r := range a.Rooms {
			roomArea += r.Width * r.Height
		}
		m.RoomDensity = float64(roomArea) / float64(totalCells)
	}

	if len(a.Connections) > 0 {
		total := 0
		for _, c := range a.Connections {
			total += c.PathLength
		}
		m.AverageConnectionPathLength = float64(total) / float64(len(a.Connections))
	}

	degree := make(map[int]int, len(a.Rooms))
	for _, c := range a.Connections {
		degree[c.FromRoomID]++
		degree[c.ToRoomID]++
	}
	for _, r := range a.Rooms {
		if degree[r.ID] <= 1 {
			m.DeadEndCount++
		}
	}

	roomArea := make(map[int]int, len(a.Rooms))
	for _, r := range a.Rooms {
		roomArea[r.ID] = r.Width * r.Height
	}
	spawnCount := make(map[int]int, len(a.Rooms))
	for _, s := range a.Spawns {
		rid, ok := nearestRoomID(a.Rooms, s.Position)
		if !ok {
			continue
		}
		spawnCount[rid]++
	}
	for _, r := range a.Rooms {
		area := roomArea[r.ID]
		if area == 0 {
			continue
		}
		m.SpawnDensityByRoom[r.ID] = float64(spawnCount[r.ID]) / float64(area)
	}

	return m
}

// nearestRoomID attributes a spawn point to the room whose bounds contain
// it; spawns placed along corridors (traps) attribute to no room.
func nearestRoomID(rooms []dungeonstate.Room, p dungeonstate.Point) (int, bool) {
	for _, r := range rooms {
		if p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height {
			return r.ID, true
		}
	}
	return 0, false
}
