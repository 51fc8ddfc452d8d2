package worldload

import (
	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/ecs"
	"github.com/dshills/roguecore/pkg/rerr"
)

// PositionComponentKey is the component key this package attaches a
// Position value under. Register it with
// ecs.RegisterComponentKind[Position](registry, PositionComponentKey)
// before constructing a Loader so spawned entities receive one.
const PositionComponentKey = "worldload.Position"

// Position is the grid coordinate a loaded entity spawns at.
type Position struct {
	X, Y int
}

// PlayerPrefabName is the prefab a Loader spawns at the artifact's
// PlayerSpawn point. Callers register a prefab under this name before
// calling Load; if none is registered, Load reports an error rather than
// silently skipping the player.
const PlayerPrefabName = "player"

// Loader adopts a finished dungeonstate.Artifact into a live ecs.World.
// It performs no generation or validation of its own; callers run
// pkg/generate and, optionally, pkg/validation first.
type Loader struct {
	Prefabs *ecs.PrefabRegistry
}

// NewLoader constructs a Loader bound to prefabs, which must already
// know how to apply PositionComponentKey (via RegisterComponentKind)
// and have a "player" prefab (or whatever PlayerPrefabName names)
// registered.
func NewLoader(prefabs *ecs.PrefabRegistry) *Loader {
	return &Loader{Prefabs: prefabs}
}

// Load installs a.Terrain into world's GameMap resource, spawns the
// player at a.PlayerSpawn, and spawns one prefab instance per
// a.Spawns[i]. The terrain slice is adopted by reference; the caller
// must not mutate or retain it after calling Load.
func (l *Loader) Load(world *ecs.World, a *dungeonstate.Artifact) error {
	if a == nil {
		return rerr.New(rerr.CodeConfigInvalid, "cannot load a nil artifact")
	}

	gm := &GameMap{}
	gm.SetRawTiles(a.Terrain, a.Width, a.Height)
	ecs.SetResource(world, GameMapResourceKey, gm)

	playerPos := Position{X: a.PlayerSpawn.X, Y: a.PlayerSpawn.Y}
	if _, err := l.Prefabs.Spawn(world, PlayerPrefabName, map[string]ecs.ComponentInit{
		PositionComponentKey: func() any { return playerPos },
	}); err != nil {
		return rerr.Wrap(err, rerr.CodeConfigInvalid, "spawning player prefab")
	}

	for _, s := range a.Spawns {
		if err := l.spawnOne(world, s); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) spawnOne(world *ecs.World, s dungeonstate.SpawnDescriptor) error {
	pos := Position{X: s.Position.X, Y: s.Position.Y}
	overrides := map[string]ecs.ComponentInit{
		PositionComponentKey: func() any { return pos },
	}
	_, err := l.Prefabs.Spawn(world, s.TemplateID, overrides)
	if err != nil {
		return rerr.Wrapf(err, rerr.CodeConfigInvalid, "spawning %q at (%d,%d)", s.TemplateID, s.Position.X, s.Position.Y)
	}
	return nil
}
