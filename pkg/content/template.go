package content

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/roguecore/pkg/rerr"
	"github.com/dshills/roguecore/pkg/rng"
)

// Template is one weighted entry in a TemplatePool: an entity template ID,
// a selection weight, and the difficulty window it is eligible in.
type Template struct {
	ID            string   `yaml:"id" json:"id"`
	Weight        float64  `yaml:"weight" json:"weight"`
	MinDifficulty int      `yaml:"minDifficulty" json:"minDifficulty"`
	MaxDifficulty int      `yaml:"maxDifficulty" json:"maxDifficulty"`
	Tags          []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// eligible reports whether difficulty falls in the template's window.
func (t Template) eligible(difficulty int) bool {
	return difficulty >= t.MinDifficulty && difficulty <= t.MaxDifficulty
}

// TemplatePool is a named, YAML-loadable weighted table used for
// loot/enemy/decoration selection. It carries template IDs and weights
// only; what an ID means is the consuming game's business.
type TemplatePool struct {
	Name      string     `yaml:"name" json:"name"`
	Templates []Template `yaml:"templates" json:"templates"`
}

// LoadTemplatePool reads a TemplatePool from a YAML file.
func LoadTemplatePool(path string) (*TemplatePool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerr.Wrap(err, rerr.CodeConfigInvalid, "reading template pool file "+path)
	}
	var pool TemplatePool
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return nil, rerr.Wrap(err, rerr.CodeConfigInvalid, "parsing template pool YAML")
	}
	return &pool, nil
}

// Select samples one template ID from the pool's entries eligible for
// difficulty, weighted by Template.Weight, using r (the details stream).
// Ineligible or zero-weight entries are excluded from the draw. Returns
// ("", false) on an empty eligible pool so callers can skip silently.
func (p *TemplatePool) Select(r *rng.RNG, difficulty int) (string, bool) {
	if p == nil {
		return "", false
	}
	var ids []string
	var weights []float64
	for _, t := range p.Templates {
		if !t.eligible(difficulty) {
			continue
		}
		ids = append(ids, t.ID)
		weights = append(weights, t.Weight)
	}
	idx := r.WeightedChoice(weights)
	if idx < 0 {
		return "", false
	}
	return ids[idx], true
}

// DefaultEnemyPool returns a small built-in pool so callers can generate
// content without supplying a YAML file.
func DefaultEnemyPool() *TemplatePool {
	return &TemplatePool{Name: "default-enemies", Templates: []Template{
		{ID: "rat", Weight: 5, MinDifficulty: 1, MaxDifficulty: 4},
		{ID: "skeleton", Weight: 4, MinDifficulty: 2, MaxDifficulty: 7},
		{ID: "goblin", Weight: 4, MinDifficulty: 2, MaxDifficulty: 8},
		{ID: "ogre", Weight: 2, MinDifficulty: 5, MaxDifficulty: 10},
		{ID: "wraith", Weight: 1, MinDifficulty: 7, MaxDifficulty: 10},
	}}
}

// DefaultGuardianPool returns a built-in pool for treasure-room guardians.
func DefaultGuardianPool() *TemplatePool {
	return &TemplatePool{Name: "default-guardians", Templates: []Template{
		{ID: "ogre", Weight: 3, MinDifficulty: 3, MaxDifficulty: 10},
		{ID: "wraith", Weight: 2, MinDifficulty: 5, MaxDifficulty: 10},
		{ID: "golem", Weight: 1, MinDifficulty: 6, MaxDifficulty: 10},
	}}
}

// DefaultItemPool returns a small built-in pool for ordinary room loot.
func DefaultItemPool() *TemplatePool {
	return &TemplatePool{Name: "default-items", Templates: []Template{
		{ID: "gold_pile", Weight: 5, MinDifficulty: 1, MaxDifficulty: 10},
		{ID: "potion", Weight: 4, MinDifficulty: 1, MaxDifficulty: 10},
		{ID: "scroll", Weight: 2, MinDifficulty: 2, MaxDifficulty: 10},
	}}
}

// DefaultRarePool returns a built-in pool for treasure-room loot.
func DefaultRarePool() *TemplatePool {
	return &TemplatePool{Name: "default-rare-items", Templates: []Template{
		{ID: "enchanted_blade", Weight: 3, MinDifficulty: 3, MaxDifficulty: 10},
		{ID: "rare_gem", Weight: 4, MinDifficulty: 2, MaxDifficulty: 10},
		{ID: "ancient_relic", Weight: 1, MinDifficulty: 6, MaxDifficulty: 10},
	}}
}

// DefaultDecorationPool returns a built-in pool for room decorations.
func DefaultDecorationPool() *TemplatePool {
	return &TemplatePool{Name: "default-decorations", Templates: []Template{
		{ID: "rubble", Weight: 3, MinDifficulty: 1, MaxDifficulty: 10},
		{ID: "banner", Weight: 2, MinDifficulty: 1, MaxDifficulty: 10},
		{ID: "statue", Weight: 1, MinDifficulty: 1, MaxDifficulty: 10},
	}}
}

// DefaultTrapPool returns a built-in pool for corridor traps.
func DefaultTrapPool() *TemplatePool {
	return &TemplatePool{Name: "default-traps", Templates: []Template{
		{ID: "spike_trap", Weight: 3, MinDifficulty: 1, MaxDifficulty: 10},
		{ID: "dart_trap", Weight: 2, MinDifficulty: 1, MaxDifficulty: 10},
		{ID: "gas_trap", Weight: 1, MinDifficulty: 4, MaxDifficulty: 10},
	}}
}
