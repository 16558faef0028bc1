package galaxy

import (
	"log/slog"

	"conquest-server/internal/planet"
	"conquest-server/internal/random"
	"conquest-server/internal/system"
	"conquest-server/internal/universe"
)

type Generator struct {
	rng      random.Source
	counters *universe.Counters
	systems  *system.Generator
	logger   *slog.Logger
}

// NewGenerator wires the planet and system generators onto one random
// source and id counter set.
func NewGenerator(rng random.Source, counters *universe.Counters, logger *slog.Logger) *Generator {
	planets := planet.NewGenerator(rng, counters, logger)
	return &Generator{
		rng:      rng,
		counters: counters,
		systems:  system.NewGenerator(rng, counters, planets, logger),
		logger:   logger,
	}
}

// GenerateGalaxy creates a galaxy with systemCount systems and all their planets.
func (g *Generator) GenerateGalaxy(name string, systemCount int) (*universe.Galaxy, []*universe.SolarSystem, []*universe.Planet) {
	logger := g.logger.With("component", "galaxy_generator", "operation", "generate_galaxy", "name", name, "systems", systemCount)
	logger.Debug("Generating galaxy")

	gal := &universe.Galaxy{
		ID:   g.counters.Galaxy(),
		Name: name,
	}

	systems := make([]*universe.SolarSystem, 0, systemCount)
	var planets []*universe.Planet
	for i := 0; i < systemCount; i++ {
		sys, ps := g.systems.GenerateSolarSystem(gal.ID, i)
		gal.SolarSystems = append(gal.SolarSystems, sys.ID)
		systems = append(systems, sys)
		planets = append(planets, ps...)
	}
	gal.Modifiers = g.generateModifiers()

	logger.Info("Galaxy generated", "galaxy_id", gal.ID, "planets", len(planets))
	return gal, systems, planets
}

func pct(t universe.ModifierType, v float64) universe.Modifier {
	return universe.Modifier{Type: t, Value: v, IsPercentage: true}
}

func (g *Generator) generateModifiers() []universe.Modifier {
	var mods []universe.Modifier
	switch g.rng.IntN(5) {
	case 0: // spiral
		mods = append(mods, pct(universe.ModifierResearchBonus, 25))
	case 1: // elliptical
		mods = append(mods, pct(universe.ModifierMineralMultiplier, 50))
	case 2: // irregular
		mods = append(mods,
			pct(universe.ModifierEnergyMultiplier, 30),
			pct(universe.ModifierTechnologyMultiplier, 20),
		)
	case 3: // dwarf
		mods = append(mods, pct(universe.ModifierPopulationMultiplier, 40))
	default: // barred spiral
		mods = append(mods, pct(universe.ModifierTradeBonus, 35))
	}

	if random.Chance(g.rng, 0.3) {
		mods = append(mods, pct(universe.ModifierDefensiveBonus, random.FloatRange(g.rng, 10, 50)))
	}
	return mods
}
