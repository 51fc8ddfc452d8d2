package generate

import (
	"context"
	"sort"

	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/grid"
	"github.com/dshills/roguecore/pkg/pass"
	"github.com/dshills/roguecore/pkg/rerr"
	"github.com/dshills/roguecore/pkg/rng"
)

// unionFind is a minimal union-find over a fixed number of elements, used
// to label 4-connected floor regions after cellular-automaton smoothing.
type unionFind struct{ parent, rank []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p, rank: make([]int, n)}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// randomFill sets the border to wall and the interior to floor with
// probability initialFillRatio.
func randomFill(r *rng.RNG, g *grid.Grid, fillRatio float64) {
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				g.Set(x, y, grid.Wall)
				continue
			}
			if r.Float64Range(0, 1) < fillRatio {
				g.Set(x, y, grid.Floor)
			} else {
				g.Set(x, y, grid.Wall)
			}
		}
	}
}

// stepAutomaton runs one cellular-automaton smoothing iteration in place
// using an 8-connected neighbor count: a floor survives with neighbors
// >= deathLimit, a wall is born with neighbors >= birthLimit.
func stepAutomaton(g *grid.Grid, birthLimit, deathLimit int) {
	w, h := g.Width(), g.Height()
	next := grid.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				next.Set(x, y, grid.Wall)
				continue
			}
			neighbors := g.CountNeighbors(x, y, grid.Floor, true)
			if g.Get(x, y) == grid.Floor {
				if neighbors >= deathLimit {
					next.Set(x, y, grid.Floor)
				} else {
					next.Set(x, y, grid.Wall)
				}
			} else {
				if neighbors >= birthLimit {
					next.Set(x, y, grid.Floor)
				} else {
					next.Set(x, y, grid.Wall)
				}
			}
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, next.Get(x, y))
		}
	}
}

type region struct {
	label                  int
	cells                  []dungeonstate.Point
	minX, minY, maxX, maxY int
}

// labelRegions assigns every floor cell to a 4-connected component and
// returns each region sorted by descending size, ties broken by the
// lowest (y, x) cell for determinism.
func labelRegions(g *grid.Grid) []region {
	w, h := g.Width(), g.Height()
	uf := newUnionFind(w * h)
	idx := func(x, y int) int { return y*w + x }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.Get(x, y) != grid.Floor {
				continue
			}
			if x > 0 && g.Get(x-1, y) == grid.Floor {
				uf.union(idx(x, y), idx(x-1, y))
			}
			if y > 0 && g.Get(x, y-1) == grid.Floor {
				uf.union(idx(x, y), idx(x, y-1))
			}
		}
	}

	byRoot := make(map[int]*region)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.Get(x, y) != grid.Floor {
				continue
			}
			root := uf.find(idx(x, y))
			reg, ok := byRoot[root]
			if !ok {
				reg = &region{label: root, minX: x, minY: y, maxX: x, maxY: y}
				byRoot[root] = reg
			}
			reg.cells = append(reg.cells, dungeonstate.Point{X: x, Y: y})
			if x < reg.minX {
				reg.minX = x
			}
			if x > reg.maxX {
				reg.maxX = x
			}
			if y < reg.minY {
				reg.minY = y
			}
			if y > reg.maxY {
				reg.maxY = y
			}
		}
	}

	out := make([]region, 0, len(byRoot))
	for _, r := range byRoot {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].cells) != len(out[j].cells) {
			return len(out[i].cells) > len(out[j].cells)
		}
		return out[i].cells[0].Y < out[j].cells[0].Y ||
			(out[i].cells[0].Y == out[j].cells[0].Y && out[i].cells[0].X < out[j].cells[0].X)
	})
	return out
}

// CellularPass fills, smooths, labels connected regions and keeps either
// only the largest (KeepLargestOnly) or every region at or above
// MinRegionSize, erasing the rest back to wall. Each kept region becomes
// one cavern-type Room covering its bounding box. Requires the layout
// stream.
var CellularPass = pass.Pass[dungeonstate.Config, *dungeonstate.State]{
	ID:              "cellular.shape",
	RequiredStreams: []pass.Stream{pass.StreamLayout},
	Run: func(_ context.Context, pc *pass.Context[dungeonstate.Config], in *dungeonstate.State) (*dungeonstate.State, error) {
		cfg := pc.Config.Cellular
		out := in.Clone()
		r := pc.Stream(pass.StreamLayout)

		randomFill(r, out.Grid, cfg.InitialFillRatio)
		for i := 0; i < cfg.Iterations; i++ {
			stepAutomaton(out.Grid, cfg.BirthLimit, cfg.DeathLimit)
		}

		regions := labelRegions(out.Grid)
		if len(regions) == 0 {
			return nil, rerr.New(rerr.CodeRoomPlacementFailed, "cellular: no floor region survived smoothing")
		}

		var kept []region
		if cfg.KeepLargestOnly {
			kept = regions[:1]
		} else {
			for _, reg := range regions {
				if len(reg.cells) >= cfg.MinRegionSize {
					kept = append(kept, reg)
				}
			}
			if len(kept) == 0 {
				kept = regions[:1]
			}
		}

		keptSet := make(map[int]bool, len(kept))
		for _, reg := range kept {
			keptSet[reg.label] = true
		}

		discard := make(map[dungeonstate.Point]bool)
		for _, reg := range regions {
			if keptSet[reg.label] {
				continue
			}
			for _, c := range reg.cells {
				discard[c] = true
			}
		}
		for p := range discard {
			out.Grid.Set(p.X, p.Y, grid.Wall)
		}

		sort.Slice(kept, func(i, j int) bool { return len(kept[i].cells) > len(kept[j].cells) })
		for _, reg := range kept {
			w := reg.maxX - reg.minX + 1
			h := reg.maxY - reg.minY + 1
			out.AddRoom(reg.minX, reg.minY, w, h, dungeonstate.RoomCavern, r.NextU64())
		}

		if len(out.Rooms) > 0 {
			out.PlayerSpawn = dungeonstate.Point{X: out.Rooms[0].CenterX, Y: out.Rooms[0].CenterY}
		}
		return out, nil
	},
}

// CellularConnectPass links every kept region's room into one tree, the
// same greedy-MST-plus-L-corridor strategy BSP uses, so a multi-region
// Cellular run (KeepLargestOnly=false) stays fully reachable. A single-
// region run is a no-op. Requires the connections stream.
var CellularConnectPass = pass.Pass[dungeonstate.Config, *dungeonstate.State]{
	ID:              "cellular.connect",
	RequiredStreams: []pass.Stream{pass.StreamConnections},
	Run: func(_ context.Context, pc *pass.Context[dungeonstate.Config], in *dungeonstate.State) (*dungeonstate.State, error) {
		out := in.Clone()
		if len(out.Rooms) < 2 {
			return out, nil
		}
		connRNG := pc.Stream(pass.StreamConnections)
		const corridorWidth = 2

		roomByID := make(map[int]dungeonstate.Room, len(out.Rooms))
		for _, rm := range out.Rooms {
			roomByID[rm.ID] = rm
		}
		edges := GreedyMST(out.Rooms)
		for _, e := range edges {
			from := roomByID[e.from]
			to := roomByID[e.to]
			fromP := dungeonstate.Point{X: from.CenterX, Y: from.CenterY}
			toP := dungeonstate.Point{X: to.CenterX, Y: to.CenterY}
			path := LRoute(fromP, toP, connRNG.Bool())
			CarveCorridor(out.Grid, path, corridorWidth)
			out.Connections = append(out.Connections, dungeonstate.Connection{
				FromRoomID: e.from, ToRoomID: e.to,
				PathLength: absInt(toP.X-fromP.X) + absInt(toP.Y-fromP.Y),
				Path:       path, Type: "corridor",
			})
		}
		return out, nil
	},
}
