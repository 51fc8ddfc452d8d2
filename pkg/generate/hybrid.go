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

type hybridZone struct {
	x, y, w, h int
	natural    bool
}

// splitHybridZones recursively halves root along an alternating axis
// with a split point drawn from [35%, 65%], stopping once the zone count
// is in [minZones,maxZones] or neither axis can host two zones of
// minZoneSize. pending is the number of sibling zones still waiting on
// the recursion stack, so the count includes zones not yet finished.
func splitHybridZones(r *rng.RNG, root hybridZone, minZones, maxZones, minZoneSize int, axisVertical bool, pending int, zones *[]hybridZone) {
	canSplitH := root.w >= 2*minZoneSize
	canSplitV := root.h >= 2*minZoneSize
	total := len(*zones) + pending + 1
	splitAgain := total < maxZones && (total < minZones || r.Bool())

	if !splitAgain || (!canSplitH && !canSplitV) {
		*zones = append(*zones, root)
		return
	}

	useVertical := axisVertical
	if useVertical && !canSplitV {
		useVertical = false
	}
	if !useVertical && !canSplitH {
		useVertical = true
	}
	if !canSplitH && !canSplitV {
		*zones = append(*zones, root)
		return
	}

	ratio := r.Float64Range(0.35, 0.65)
	if useVertical {
		splitAt := int(float64(root.h) * ratio)
		if splitAt < minZoneSize || root.h-splitAt < minZoneSize {
			*zones = append(*zones, root)
			return
		}
		a := hybridZone{x: root.x, y: root.y, w: root.w, h: splitAt}
		b := hybridZone{x: root.x, y: root.y + splitAt, w: root.w, h: root.h - splitAt}
		splitHybridZones(r, a, minZones, maxZones, minZoneSize, !useVertical, pending+1, zones)
		splitHybridZones(r, b, minZones, maxZones, minZoneSize, !useVertical, pending, zones)
	} else {
		splitAt := int(float64(root.w) * ratio)
		if splitAt < minZoneSize || root.w-splitAt < minZoneSize {
			*zones = append(*zones, root)
			return
		}
		a := hybridZone{x: root.x, y: root.y, w: splitAt, h: root.h}
		b := hybridZone{x: root.x + splitAt, y: root.y, w: root.w - splitAt, h: root.h}
		splitHybridZones(r, a, minZones, maxZones, minZoneSize, !useVertical, pending+1, zones)
		splitHybridZones(r, b, minZones, maxZones, minZoneSize, !useVertical, pending, zones)
	}
}

// runBSPZone generates a local BSP layout + corridor tree in a
// zone.w x zone.h coordinate frame.
func runBSPZone(layoutRNG, roomsRNG, connRNG *rng.RNG, w, h int, cfg dungeonstate.BSPConfig) *dungeonstate.State {
	local := dungeonstate.NewState(w, h)
	local.Grid.Fill(grid.Wall)

	root := bspLeaf{x: 0, y: 0, w: w, h: h, depth: 0}
	leaves := splitBSPLeaves(layoutRNG, root, cfg)
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].y != leaves[j].y {
			return leaves[i].y < leaves[j].y
		}
		return leaves[i].x < leaves[j].x
	})

	for _, leaf := range leaves {
		x, y, rw, rh, ok := placeRoomInLeaf(roomsRNG, leaf, cfg)
		if !ok {
			continue
		}
		room := local.AddRoom(x, y, rw, rh, dungeonstate.RoomNormal, roomsRNG.NextU64())
		local.Grid.FillRect(room.X, room.Y, room.Width, room.Height, grid.Floor)
	}

	if len(local.Rooms) == 0 {
		return local
	}

	roomByID := make(map[int]dungeonstate.Room, len(local.Rooms))
	for _, rm := range local.Rooms {
		roomByID[rm.ID] = rm
	}
	width := cfg.CorridorWidth
	if width < 1 {
		width = 1
	}
	for _, e := range GreedyMST(local.Rooms) {
		from, to := roomByID[e.from], roomByID[e.to]
		fromP := dungeonstate.Point{X: from.CenterX, Y: from.CenterY}
		toP := dungeonstate.Point{X: to.CenterX, Y: to.CenterY}
		path := LRoute(fromP, toP, connRNG.Bool())
		CarveCorridor(local.Grid, path, width)
		local.Connections = append(local.Connections, dungeonstate.Connection{
			FromRoomID: e.from, ToRoomID: e.to,
			PathLength: absInt(toP.X-fromP.X) + absInt(toP.Y-fromP.Y),
			Path: path, Type: "corridor",
		})
	}
	return local
}

// runCellularZone generates a local cellular cavern in a w x h coordinate
// frame, keeping only the largest region.
func runCellularZone(layoutRNG *rng.RNG, w, h int, cfg dungeonstate.CellularConfig) *dungeonstate.State {
	local := dungeonstate.NewState(w, h)
	randomFill(layoutRNG, local.Grid, cfg.InitialFillRatio)
	for i := 0; i < cfg.Iterations; i++ {
		stepAutomaton(local.Grid, cfg.BirthLimit, cfg.DeathLimit)
	}
	regions := labelRegions(local.Grid)
	if len(regions) == 0 {
		return local
	}
	main := regions[0]
	discard := make(map[dungeonstate.Point]bool)
	for _, reg := range regions[1:] {
		for _, c := range reg.cells {
			discard[c] = true
		}
	}
	for p := range discard {
		local.Grid.Set(p.X, p.Y, grid.Wall)
	}
	rw := main.maxX - main.minX + 1
	rh := main.maxY - main.minY + 1
	local.AddRoom(main.minX, main.minY, rw, rh, dungeonstate.RoomCavern, layoutRNG.NextU64())
	return local
}

// HybridPass splits the dungeon rectangle into zones, generates each
// zone's interior with BSP or Cellular (chosen by naturalRatio), copies
// every zone's local grid/rooms/connections into the main coordinate
// frame, and carves transition corridors between adjacent zones.
// Requires layout, rooms and connections: it drives all three
// sub-generators' worth of randomness from one pass so zone assignment
// and corridor choices stay isolated from the streams a plain BSP or
// Cellular run consumes.
var HybridPass = pass.Pass[dungeonstate.Config, *dungeonstate.State]{
	ID:              "hybrid.zones",
	RequiredStreams: []pass.Stream{pass.StreamLayout, pass.StreamRooms, pass.StreamConnections},
	Run: func(_ context.Context, pc *pass.Context[dungeonstate.Config], in *dungeonstate.State) (*dungeonstate.State, error) {
		cfg := pc.Config.Hybrid
		out := in.Clone()
		out.Grid.Fill(grid.Wall)

		layoutRNG := pc.Stream(pass.StreamLayout)
		roomsRNG := pc.Stream(pass.StreamRooms)
		connRNG := pc.Stream(pass.StreamConnections)

		minZoneSize := cfg.MinZoneSize
		if minZoneSize <= 0 {
			minZoneSize = 12
		}

		root := hybridZone{x: 0, y: 0, w: pc.Config.Width, h: pc.Config.Height}
		var zones []hybridZone
		splitHybridZones(layoutRNG, root, cfg.ZoneSplit.MinZones, cfg.ZoneSplit.MaxZones, minZoneSize, layoutRNG.Bool(), 0, &zones)

		if len(zones) == 0 {
			return nil, rerr.New(rerr.CodeRoomPlacementFailed, "hybrid: zone split produced no zones")
		}

		sort.Slice(zones, func(i, j int) bool {
			if zones[i].y != zones[j].y {
				return zones[i].y < zones[j].y
			}
			return zones[i].x < zones[j].x
		})

		hadNatural, hadConstructed := false, false
		zoneRoomRanges := make([][2]int, len(zones))

		for zi := range zones {
			zones[zi].natural = layoutRNG.Float64Range(0, 1) < cfg.ZoneSplit.NaturalRatio
			var local *dungeonstate.State
			if zones[zi].natural {
				local = runCellularZone(layoutRNG, zones[zi].w, zones[zi].h, cfg.Cellular)
				hadNatural = true
			} else {
				local = runBSPZone(layoutRNG, roomsRNG, connRNG, zones[zi].w, zones[zi].h, cfg.BSP)
				hadConstructed = true
			}

			startRoomIdx := len(out.Rooms)
			idOffset := out.NextRoomID
			localIDRemap := make(map[int]int, len(local.Rooms))
			for _, r := range local.Rooms {
				shifted := r
				shifted.ID = idOffset + r.ID
				shifted.X += zones[zi].x
				shifted.Y += zones[zi].y
				shifted.CenterX += zones[zi].x
				shifted.CenterY += zones[zi].y
				localIDRemap[r.ID] = shifted.ID
				out.Rooms = append(out.Rooms, shifted)
			}
			out.NextRoomID = idOffset + len(local.Rooms)
			zoneRoomRanges[zi] = [2]int{startRoomIdx, len(out.Rooms)}

			for _, c := range local.Connections {
				shiftedPath := make([]dungeonstate.Point, len(c.Path))
				for i, p := range c.Path {
					shiftedPath[i] = dungeonstate.Point{X: p.X + zones[zi].x, Y: p.Y + zones[zi].y}
				}
				out.Connections = append(out.Connections, dungeonstate.Connection{
					FromRoomID: localIDRemap[c.FromRoomID],
					ToRoomID:   localIDRemap[c.ToRoomID],
					PathLength: c.PathLength,
					Path:       shiftedPath,
					Type:       c.Type,
				})
			}

			for ly := 0; ly < zones[zi].h; ly++ {
				for lx := 0; lx < zones[zi].w; lx++ {
					out.Grid.Set(zones[zi].x+lx, zones[zi].y+ly, local.Grid.Get(lx, ly))
				}
			}
		}

		// Connect every zone to its next neighbor in scan order with a
		// transition corridor of width transitionWidth, so the zones form
		// one walkable chain.
		transitionWidth := cfg.TransitionWidth
		if transitionWidth < 1 {
			transitionWidth = 1
		}
		for zi := 1; zi < len(zones); zi++ {
			prevRange := zoneRoomRanges[zi-1]
			curRange := zoneRoomRanges[zi]
			if prevRange[0] == prevRange[1] || curRange[0] == curRange[1] {
				continue
			}
			fromRoom := out.Rooms[prevRange[1]-1]
			toRoom := out.Rooms[curRange[0]]
			fromP := dungeonstate.Point{X: fromRoom.CenterX, Y: fromRoom.CenterY}
			toP := dungeonstate.Point{X: toRoom.CenterX, Y: toRoom.CenterY}
			path := LRoute(fromP, toP, connRNG.Bool())
			CarveCorridor(out.Grid, path, transitionWidth)
			out.Connections = append(out.Connections, dungeonstate.Connection{
				FromRoomID: fromRoom.ID, ToRoomID: toRoom.ID,
				PathLength: absInt(toP.X-fromP.X) + absInt(toP.Y-fromP.Y),
				Path: path, Type: "transition",
			})
		}

		if !hadNatural {
			pc.Trace.Record(pass.Event{System: "hybrid.zones", Question: "zone mix", Chosen: "all-constructed", Reason: "naturalRatio never selected a cellular zone this run"})
		}
		if !hadConstructed {
			pc.Trace.Record(pass.Event{System: "hybrid.zones", Question: "zone mix", Chosen: "all-natural", Reason: "naturalRatio selected cellular for every zone this run"})
		}

		if len(out.Rooms) > 0 {
			out.PlayerSpawn = dungeonstate.Point{X: out.Rooms[0].CenterX, Y: out.Rooms[0].CenterY}
		} else {
			return nil, rerr.New(rerr.CodeRoomPlacementFailed, "hybrid: no zone produced a room")
		}
		return out, nil
	},
}
