package generate

import (
	"context"

	"github.com/dshills/roguecore/pkg/content"
	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/pass"
)

// ContentPass runs content.Generate over the finished rooms and
// connections using only the details stream, appending the resulting
// spawn descriptors to the state. It is appended to every algorithm's
// pass chain so a dungeon's Artifact.Spawns field is always populated
// from the same isolated stream regardless of which generator produced
// the terrain.
func ContentPass(pools content.Pools) pass.Pass[dungeonstate.Config, *dungeonstate.State] {
	return pass.Pass[dungeonstate.Config, *dungeonstate.State]{
		ID:              "content.spawns",
		RequiredStreams: []pass.Stream{pass.StreamDetails},
		Run: func(_ context.Context, pc *pass.Context[dungeonstate.Config], in *dungeonstate.State) (*dungeonstate.State, error) {
			out := in.Clone()
			detailsRNG := pc.Stream(pass.StreamDetails)
			out.Spawns = content.Generate(out.Rooms, out.Connections, pc.Config.Content, detailsRNG, pools)
			return out, nil
		},
	}
}
