package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"conquest-server/internal/universe"
)

// Balance holds the gameplay tunables. Zero values fall back to defaults.
type Balance struct {
	GalaxyName           string             `yaml:"galaxy_name"`
	SystemsPerGalaxy     int                `yaml:"systems_per_galaxy"`
	GenerationRate       float64            `yaml:"generation_rate"`
	ConquestDifficulty   float64            `yaml:"conquest_difficulty"`
	TerraformingBaseCost uint64             `yaml:"terraforming_base_cost"`
	TerraformingDuration uint64             `yaml:"terraforming_duration"`
	RouteCapacity        uint64             `yaml:"route_capacity"`
	StartingResources    universe.Resources `yaml:"starting_resources"`
}

func DefaultBalance() Balance {
	return Balance{
		GalaxyName:           "Milky Way",
		SystemsPerGalaxy:     20,
		GenerationRate:       1.0,
		ConquestDifficulty:   1.1,
		TerraformingBaseCost: 1000,
		TerraformingDuration: 100,
		RouteCapacity:        1000,
		StartingResources: universe.Resources{
			universe.ResourceEnergy:     1000,
			universe.ResourceMinerals:   500,
			universe.ResourcePopulation: 100,
			universe.ResourceTechnology: 50,
			universe.ResourceFood:       200,
		},
	}
}

// LoadBalance reads a YAML balance file over the defaults. A missing file
// yields the defaults.
func LoadBalance(path string) (Balance, error) {
	if path == "" {
		return DefaultBalance(), nil
	}

	f, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultBalance(), nil
	}
	if err != nil {
		return Balance{}, fmt.Errorf("failed to read balance file: %w", err)
	}

	var b Balance
	if err := yaml.Unmarshal(f, &b); err != nil {
		return Balance{}, fmt.Errorf("failed to parse balance file: %w", err)
	}
	if err := b.validate(); err != nil {
		return Balance{}, err
	}
	return b.withDefaults(), nil
}

func (b Balance) validate() error {
	if b.SystemsPerGalaxy < 0 {
		return fmt.Errorf("systems_per_galaxy must not be negative")
	}
	if b.GenerationRate < 0 {
		return fmt.Errorf("generation_rate must not be negative")
	}
	if b.ConquestDifficulty < 0 {
		return fmt.Errorf("conquest_difficulty must not be negative")
	}
	for t := range b.StartingResources {
		if !t.Valid() {
			return fmt.Errorf("unknown starting resource %q", t)
		}
	}
	return nil
}

func (b Balance) withDefaults() Balance {
	d := DefaultBalance()
	if b.GalaxyName == "" {
		b.GalaxyName = d.GalaxyName
	}
	if b.SystemsPerGalaxy == 0 {
		b.SystemsPerGalaxy = d.SystemsPerGalaxy
	}
	if b.GenerationRate == 0 {
		b.GenerationRate = d.GenerationRate
	}
	if b.ConquestDifficulty == 0 {
		b.ConquestDifficulty = d.ConquestDifficulty
	}
	if b.TerraformingBaseCost == 0 {
		b.TerraformingBaseCost = d.TerraformingBaseCost
	}
	if b.TerraformingDuration == 0 {
		b.TerraformingDuration = d.TerraformingDuration
	}
	if b.RouteCapacity == 0 {
		b.RouteCapacity = d.RouteCapacity
	}
	if len(b.StartingResources) == 0 {
		b.StartingResources = d.StartingResources
	}
	return b
}
