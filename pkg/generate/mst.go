package generate

import "github.com/dshills/roguecore/pkg/dungeonstate"

// edge is one candidate room-to-room link, keyed by center-to-center
// Manhattan distance.
type edge struct {
	from, to int
	dist     int
}

func manhattan(a, b dungeonstate.Room) int {
	return absInt(a.CenterX-b.CenterX) + absInt(a.CenterY-b.CenterY)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GreedyMST builds a spanning tree over rooms by repeatedly connecting
// the unconnected room nearest (Manhattan, center-to-center) to the
// already-connected set. O(n^3) over the room count, which stays small
// enough that a heap-based Prim/Kruskal would buy nothing. Returns the
// (fromRoomID, toRoomID) edges in the order they were added, which is
// also the deterministic order connections get built in.
func GreedyMST(rooms []dungeonstate.Room) []edge {
	if len(rooms) < 2 {
		return nil
	}
	connected := map[int]bool{0: true}
	var edges []edge
	for len(connected) < len(rooms) {
		best := edge{dist: -1}
		for ci := range rooms {
			if !connected[ci] {
				continue
			}
			for ui := range rooms {
				if connected[ui] {
					continue
				}
				d := manhattan(rooms[ci], rooms[ui])
				if best.dist == -1 || d < best.dist ||
					(d == best.dist && (rooms[ci].ID < rooms[best.from].ID ||
						(rooms[ci].ID == rooms[best.from].ID && rooms[ui].ID < rooms[best.to].ID))) {
					best = edge{from: ci, to: ui, dist: d}
				}
			}
		}
		edges = append(edges, edge{from: rooms[best.from].ID, to: rooms[best.to].ID, dist: best.dist})
		connected[best.to] = true
	}
	return edges
}
