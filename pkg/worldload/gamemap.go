package worldload

// GameMapResourceKey is the ecs.World resource key GameMap is installed
// under.
const GameMapResourceKey = "worldload.GameMap"

// GameMap is the world's terrain resource. It is installed once per load
// and never copied; callers that need the terrain read it through the
// World's resource store rather than retaining a reference of their own.
type GameMap struct {
	Width, Height int
	tiles         []byte
}

// SetRawTiles adopts tiles as the map's backing storage in O(1) — no
// copy, matching the "terrain bytes are moved or adopted, never
// duplicated" contract. The caller must not retain or mutate tiles after
// the call.
func (m *GameMap) SetRawTiles(tiles []byte, width, height int) {
	m.tiles = tiles
	m.Width = width
	m.Height = height
}

// Tile returns the byte at (x, y), or 0 (wall) if out of bounds.
func (m *GameMap) Tile(x, y int) byte {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.tiles[y*m.Width+x]
}

// Tiles exposes the adopted terrain array read-only.
func (m *GameMap) Tiles() []byte {
	return m.tiles
}
