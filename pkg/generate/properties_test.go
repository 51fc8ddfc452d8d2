package generate

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/grid"
	"github.com/dshills/roguecore/pkg/seed"
	"github.com/dshills/roguecore/pkg/validation"
)

// randomConfig draws a Config that is guaranteed to pass Config.Validate,
// covering all three algorithms and a range of sizes and room counts.
func randomConfig(t *rapid.T) dungeonstate.Config {
	width := rapid.IntRange(20, 80).Draw(t, "width")
	height := rapid.IntRange(20, 80).Draw(t, "height")
	algo := rapid.SampledFrom([]dungeonstate.Algorithm{
		dungeonstate.AlgorithmBSP,
		dungeonstate.AlgorithmCellular,
		dungeonstate.AlgorithmHybrid,
	}).Draw(t, "algorithm")
	primary := rapid.Uint32().Draw(t, "primarySeed")

	maxRooms := (width * height) / 25
	if maxRooms > 20 {
		maxRooms = 20
	}
	if maxRooms < 1 {
		maxRooms = 1
	}
	roomCount := rapid.IntRange(1, maxRooms).Draw(t, "roomCount")

	return dungeonstate.Config{
		Width:         width,
		Height:        height,
		Seed:          seed.FromPrimary(primary),
		Algorithm:     algo,
		RoomSizeRange: dungeonstate.RoomSizeRange{Min: 4, Max: 8},
		RoomCount:     roomCount,
		BSP:           dungeonstate.DefaultBSPConfig(),
		Cellular:      dungeonstate.DefaultCellularConfig(),
		Hybrid:        dungeonstate.DefaultHybridConfig(),
		Content:       dungeonstate.DefaultContentConfig(),
		Profile:       dungeonstate.ProfileFull,
	}
}

// TestProperty_RoomsStayInBoundsAndDoNotOverlap checks the universal
// room-placement invariants across randomly drawn configs and all three
// algorithms.
func TestProperty_RoomsStayInBoundsAndDoNotOverlap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := randomConfig(t)
		result := Generate(context.Background(), cfg)
		artifact, err := result.Unwrap()
		if err != nil {
			t.Skip("generation failed for this draw: " + err.Error())
		}

		for _, r := range artifact.Rooms {
			if r.X < 0 || r.Y < 0 || r.X+r.Width > artifact.Width || r.Y+r.Height > artifact.Height {
				t.Fatalf("room %d out of bounds: %+v", r.ID, r)
			}
			if r.Width <= 0 || r.Height <= 0 {
				t.Fatalf("room %d has non-positive extent: %+v", r.ID, r)
			}
		}

		for i := 0; i < len(artifact.Rooms); i++ {
			for j := i + 1; j < len(artifact.Rooms); j++ {
				if artifact.Rooms[i].Overlaps(artifact.Rooms[j], 0) {
					t.Fatalf("rooms %d and %d overlap", artifact.Rooms[i].ID, artifact.Rooms[j].ID)
				}
			}
		}
	})
}

// TestProperty_TerrainMatchesDimensions checks that the flattened terrain
// byte slice always agrees with Width*Height, and every byte is either
// grid.Wall or grid.Floor.
func TestProperty_TerrainMatchesDimensions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := randomConfig(t)
		result := Generate(context.Background(), cfg)
		artifact, err := result.Unwrap()
		if err != nil {
			t.Skip("generation failed for this draw: " + err.Error())
		}

		if len(artifact.Terrain) != artifact.Width*artifact.Height {
			t.Fatalf("terrain length %d != width*height %d", len(artifact.Terrain), artifact.Width*artifact.Height)
		}
		for _, b := range artifact.Terrain {
			if b != grid.Wall && b != grid.Floor {
				t.Fatalf("terrain byte %d is neither wall nor floor", b)
			}
		}
	})
}

// TestProperty_SameSeedIsByteIdentical: generation is a pure function of
// (config, seed) and must reproduce the exact same terrain and checksum
// on every re-run.
func TestProperty_SameSeedIsByteIdentical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := randomConfig(t)

		r1 := Generate(context.Background(), cfg)
		a1, err1 := r1.Unwrap()
		r2 := Generate(context.Background(), cfg)
		a2, err2 := r2.Unwrap()

		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("determinism broken: first run err=%v, second run err=%v", err1, err2)
		}
		if err1 != nil {
			return
		}

		if a1.Checksum != a2.Checksum {
			t.Fatalf("checksums differ across identical runs: %08x vs %08x", a1.Checksum, a2.Checksum)
		}
		if string(a1.Terrain) != string(a2.Terrain) {
			t.Fatal("terrain differs across identical runs")
		}
		if len(a1.Rooms) != len(a2.Rooms) {
			t.Fatalf("room counts differ across identical runs: %d vs %d", len(a1.Rooms), len(a2.Rooms))
		}
	})
}

// TestProperty_EveryRoomIsReachable: every room's center must be
// reachable from the player spawn.
func TestProperty_EveryRoomIsReachable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := randomConfig(t)
		result := Generate(context.Background(), cfg)
		artifact, err := result.Unwrap()
		if err != nil {
			t.Skip("generation failed for this draw: " + err.Error())
		}
		if len(artifact.Rooms) < 2 {
			return
		}

		report := validation.Validate(artifact, dungeonstate.ProfileFull)
		for _, res := range report.Reachability.Results {
			if res.Hard && !res.Satisfied {
				t.Fatalf("not every room is reachable:\n%s", report.Summary())
			}
		}
	})
}
