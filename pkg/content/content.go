package content

import (
	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/rng"
)

// Pools bundles every TemplatePool the generator draws from. A nil field
// is treated as an empty pool (Select always reports "skip").
type Pools struct {
	Enemies     *TemplatePool
	Guardians   *TemplatePool
	Items       *TemplatePool
	RareItems   *TemplatePool
	Decorations *TemplatePool
	Traps       *TemplatePool
}

// DefaultPools returns the built-in pools from template.go, enough to
// generate content without any YAML configuration.
func DefaultPools() Pools {
	return Pools{
		Enemies:     DefaultEnemyPool(),
		Guardians:   DefaultGuardianPool(),
		Items:       DefaultItemPool(),
		RareItems:   DefaultRarePool(),
		Decorations: DefaultDecorationPool(),
		Traps:       DefaultTrapPool(),
	}
}

const treasureRoomChance = 0.15

// Generate deterministically emits SpawnDescriptors for every room and
// corridor, using only r (the "details" stream).
// Per room: with probability 0.15 the room becomes a treasure room (if
// enabled), spawning 1-3 strong guardians and 3-6 rare items; otherwise
// it spawns enemies, items, and (with decorationChance) decorations,
// scaled by room area and the config's density knobs. Per corridor: with
// probability trapChance, one trap is placed at the corridor's midpoint.
func Generate(rooms []dungeonstate.Room, connections []dungeonstate.Connection, cfg dungeonstate.ContentConfig, r *rng.RNG, pools Pools) []dungeonstate.SpawnDescriptor {
	var spawns []dungeonstate.SpawnDescriptor

	for _, room := range rooms {
		spawns = append(spawns, roomSpawns(room, cfg, r, pools)...)
	}

	if cfg.EnableTraps {
		for _, conn := range connections {
			if r.Float64Range(0, 1) >= cfg.TrapChance {
				continue
			}
			mid := midpoint(conn.Path)
			id, ok := pools.Traps.Select(r, cfg.Difficulty)
			if !ok {
				continue
			}
			spawns = append(spawns, dungeonstate.SpawnDescriptor{
				TemplateID: id,
				Position:   mid,
				Tags:       []string{"trap"},
			})
		}
	}

	return spawns
}

func roomSpawns(room dungeonstate.Room, cfg dungeonstate.ContentConfig, r *rng.RNG, pools Pools) []dungeonstate.SpawnDescriptor {
	if cfg.EnableTreasureRooms && r.Float64Range(0, 1) < treasureRoomChance {
		return treasureRoomSpawns(room, cfg, r, pools)
	}
	return normalRoomSpawns(room, cfg, r, pools)
}

func treasureRoomSpawns(room dungeonstate.Room, cfg dungeonstate.ContentConfig, r *rng.RNG, pools Pools) []dungeonstate.SpawnDescriptor {
	var out []dungeonstate.SpawnDescriptor
	guardianCount := r.IntRange(1, 3)
	for i := 0; i < guardianCount; i++ {
		id, ok := pools.Guardians.Select(r, cfg.Difficulty)
		if !ok {
			continue
		}
		out = append(out, dungeonstate.SpawnDescriptor{
			TemplateID: id,
			Position:   innerPosition(room, r),
			Tags:       []string{"guardian", "treasure-room"},
		})
	}
	itemCount := r.IntRange(3, 6)
	for i := 0; i < itemCount; i++ {
		id, ok := pools.RareItems.Select(r, cfg.Difficulty)
		if !ok {
			continue
		}
		out = append(out, dungeonstate.SpawnDescriptor{
			TemplateID: id,
			Position:   innerPosition(room, r),
			Tags:       []string{"loot", "rare", "treasure-room"},
		})
	}
	return out
}

func normalRoomSpawns(room dungeonstate.Room, cfg dungeonstate.ContentConfig, r *rng.RNG, pools Pools) []dungeonstate.SpawnDescriptor {
	var out []dungeonstate.SpawnDescriptor
	area := room.Width * room.Height

	enemyCount := int(float64(area/30) * cfg.EnemyDensity * r.Float64Range(0.5, 1.0))
	for i := 0; i < enemyCount; i++ {
		id, ok := pools.Enemies.Select(r, cfg.Difficulty)
		if !ok {
			continue
		}
		out = append(out, dungeonstate.SpawnDescriptor{
			TemplateID: id,
			Position:   innerPosition(room, r),
			Tags:       []string{"enemy"},
		})
	}

	itemCount := int(float64(area/50) * cfg.ItemDensity * r.Float64Range(0.3, 1.0))
	for i := 0; i < itemCount; i++ {
		id, ok := pools.Items.Select(r, cfg.Difficulty)
		if !ok {
			continue
		}
		out = append(out, dungeonstate.SpawnDescriptor{
			TemplateID: id,
			Position:   innerPosition(room, r),
			Tags:       []string{"loot"},
		})
	}

	if r.Float64Range(0, 1) < cfg.DecorationChance {
		decCount := r.IntRange(1, 3)
		for i := 0; i < decCount; i++ {
			id, ok := pools.Decorations.Select(r, cfg.Difficulty)
			if !ok {
				continue
			}
			out = append(out, dungeonstate.SpawnDescriptor{
				TemplateID: id,
				Position:   innerPosition(room, r),
				Tags:       []string{"decoration"},
			})
		}
	}

	return out
}

// innerPosition returns a uniformly random position inside room's inner
// rectangle (1-cell inset on every side). Rooms too small for an inset
// (width or height <= 2) fall back to the room center.
func innerPosition(room dungeonstate.Room, r *rng.RNG) dungeonstate.Point {
	if room.Width <= 2 || room.Height <= 2 {
		return dungeonstate.Point{X: room.CenterX, Y: room.CenterY}
	}
	x := room.X + 1 + r.Intn(room.Width-2)
	y := room.Y + 1 + r.Intn(room.Height-2)
	return dungeonstate.Point{X: x, Y: y}
}

func midpoint(path []dungeonstate.Point) dungeonstate.Point {
	if len(path) == 0 {
		return dungeonstate.Point{}
	}
	return path[len(path)/2]
}
