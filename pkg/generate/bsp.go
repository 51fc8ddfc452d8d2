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

type bspLeaf struct {
	x, y, w, h, depth int
}

func (l bspLeaf) canHostRoom(minRoomSize, padding int) bool {
	need := 2*minRoomSize + 2*padding
	return l.w >= need || l.h >= need
}

// splitBSPLeaves recursively partitions root, splitting the longer axis
// with bias, stopping at maxDepth or when neither axis can host another
// split.
func splitBSPLeaves(r *rng.RNG, root bspLeaf, cfg dungeonstate.BSPConfig) []bspLeaf {
	if root.depth >= cfg.MaxDepth || !root.canHostRoom(cfg.MinRoomSize, cfg.Padding) {
		return []bspLeaf{root}
	}

	splitHorizontal := root.h > root.w
	// Bias toward splitting the longer dimension, but allow the other
	// axis with low probability so trees aren't perfectly axis-locked.
	if root.w == root.h {
		splitHorizontal = r.Bool()
	} else if r.Float64Range(0, 1) < 0.15 {
		splitHorizontal = !splitHorizontal
	}

	ratio := r.Float64Range(cfg.SplitRatioMin, cfg.SplitRatioMax)

	var a, b bspLeaf
	if splitHorizontal {
		splitAt := int(float64(root.h) * ratio)
		if splitAt < cfg.MinRoomSize+cfg.Padding || root.h-splitAt < cfg.MinRoomSize+cfg.Padding {
			return []bspLeaf{root}
		}
		a = bspLeaf{x: root.x, y: root.y, w: root.w, h: splitAt, depth: root.depth + 1}
		b = bspLeaf{x: root.x, y: root.y + splitAt, w: root.w, h: root.h - splitAt, depth: root.depth + 1}
	} else {
		splitAt := int(float64(root.w) * ratio)
		if splitAt < cfg.MinRoomSize+cfg.Padding || root.w-splitAt < cfg.MinRoomSize+cfg.Padding {
			return []bspLeaf{root}
		}
		a = bspLeaf{x: root.x, y: root.y, w: splitAt, h: root.h, depth: root.depth + 1}
		b = bspLeaf{x: root.x + splitAt, y: root.y, w: root.w - splitAt, h: root.h, depth: root.depth + 1}
	}

	out := splitBSPLeaves(r, a, cfg)
	out = append(out, splitBSPLeaves(r, b, cfg)...)
	return out
}

// placeRoomInLeaf picks a uniform random size in [minRoomSize,maxRoomSize]
// intersected with the leaf's available area, and a random inset. Returns
// ok=false when the leaf cannot host the minimum room size: the caller
// skips that leaf, it never fails the whole pipeline.
func placeRoomInLeaf(r *rng.RNG, leaf bspLeaf, cfg dungeonstate.BSPConfig) (x, y, w, h int, ok bool) {
	avail := leaf
	avail.x += cfg.Padding
	avail.y += cfg.Padding
	avail.w -= 2 * cfg.Padding
	avail.h -= 2 * cfg.Padding
	if avail.w < cfg.MinRoomSize || avail.h < cfg.MinRoomSize {
		return 0, 0, 0, 0, false
	}

	maxW := min(cfg.MaxRoomSize, avail.w)
	maxH := min(cfg.MaxRoomSize, avail.h)
	w = r.IntRange(cfg.MinRoomSize, maxW)
	h = r.IntRange(cfg.MinRoomSize, maxH)

	insetX := r.IntRange(0, avail.w-w)
	insetY := r.IntRange(0, avail.h-h)
	return avail.x + insetX, avail.y + insetY, w, h, true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// BSPLayoutPass partitions the grid and places one room per leaf that can
// host the minimum room size. Requires the layout and rooms streams.
var BSPLayoutPass = pass.Pass[dungeonstate.Config, *dungeonstate.State]{
	ID:              "bsp.layout",
	RequiredStreams: []pass.Stream{pass.StreamLayout, pass.StreamRooms},
	Run: func(_ context.Context, pc *pass.Context[dungeonstate.Config], in *dungeonstate.State) (*dungeonstate.State, error) {
		cfg := pc.Config.BSP
		out := in.Clone()
		out.Grid.Fill(grid.Wall)

		layoutRNG := pc.Stream(pass.StreamLayout)
		roomsRNG := pc.Stream(pass.StreamRooms)

		root := bspLeaf{x: 0, y: 0, w: pc.Config.Width, h: pc.Config.Height, depth: 0}
		leaves := splitBSPLeaves(layoutRNG, root, cfg)

		sort.Slice(leaves, func(i, j int) bool {
			if leaves[i].y != leaves[j].y {
				return leaves[i].y < leaves[j].y
			}
			return leaves[i].x < leaves[j].x
		})

		skipped := 0
		for _, leaf := range leaves {
			x, y, w, h, ok := placeRoomInLeaf(roomsRNG, leaf, cfg)
			if !ok {
				skipped++
				pc.Trace.Record(pass.Event{
					System: "bsp.layout", Question: "place room in leaf",
					Chosen: "skip", Reason: "leaf too small for minRoomSize",
				})
				continue
			}
			room := out.AddRoom(x, y, w, h, dungeonstate.RoomNormal, roomsRNG.NextU64())
			out.Grid.FillRect(room.X, room.Y, room.Width, room.Height, grid.Floor)
		}

		if len(out.Rooms) == 0 {
			return nil, rerr.New(rerr.CodeRoomPlacementFailed, "bsp: no leaf could host a room")
		}
		return out, nil
	},
}

// BSPCorridorPass connects every room into one tree via a greedy MST over
// center-to-center Manhattan distance, then carves an L-shaped corridor
// for each MST edge. Requires the connections stream.
var BSPCorridorPass = pass.Pass[dungeonstate.Config, *dungeonstate.State]{
	ID:              "bsp.corridors",
	RequiredStreams: []pass.Stream{pass.StreamConnections},
	Run: func(_ context.Context, pc *pass.Context[dungeonstate.Config], in *dungeonstate.State) (*dungeonstate.State, error) {
		out := in.Clone()
		connRNG := pc.Stream(pass.StreamConnections)
		width := pc.Config.BSP.CorridorWidth
		if width < 1 {
			width = 1
		}

		roomByID := make(map[int]dungeonstate.Room, len(out.Rooms))
		for _, r := range out.Rooms {
			roomByID[r.ID] = r
		}

		edges := GreedyMST(out.Rooms)
		if len(edges) == 0 && len(out.Rooms) > 1 {
			return nil, rerr.New(rerr.CodePathConnectionFailed, "bsp: could not build room graph")
		}

		for _, e := range edges {
			from := roomByID[e.from]
			to := roomByID[e.to]
			fromP := dungeonstate.Point{X: from.CenterX, Y: from.CenterY}
			toP := dungeonstate.Point{X: to.CenterX, Y: to.CenterY}
			horizontalFirst := connRNG.Bool()
			path := LRoute(fromP, toP, horizontalFirst)
			CarveCorridor(out.Grid, path, width)

			out.Connections = append(out.Connections, dungeonstate.Connection{
				FromRoomID: e.from,
				ToRoomID:   e.to,
				PathLength: absInt(toP.X-fromP.X) + absInt(toP.Y-fromP.Y),
				Path:       path,
				Type:       "corridor",
			})

			fr := roomByID[e.from]
			fr.ConnectionCount++
			roomByID[e.from] = fr
			tr := roomByID[e.to]
			tr.ConnectionCount++
			roomByID[e.to] = tr
		}

		for i, r := range out.Rooms {
			out.Rooms[i] = roomByID[r.ID]
			out.Rooms[i].IsDeadEnd = out.Rooms[i].ConnectionCount <= 1
		}

		if len(out.Rooms) > 0 {
			out.PlayerSpawn = dungeonstate.Point{X: out.Rooms[0].CenterX, Y: out.Rooms[0].CenterY}
		}
		return out, nil
	},
}
