package system

import (
	"fmt"
	"log/slog"
	"math"

	"conquest-server/internal/planet"
	"conquest-server/internal/random"
	"conquest-server/internal/universe"
)

const (
	gridSize     = 10
	gridSpacing  = 200.0
	minPlanets   = 3
	maxPlanets   = 8
	baseRingSize = 30.0
	ringSpacing  = 15.0
)

var (
	namePrefixes = []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta"}
	nameSuffixes = []string{"Sector", "Quadrant", "Region", "Zone", "Cluster", "Nebula", "Star", "System"}
)

type Generator struct {
	rng      random.Source
	counters *universe.Counters
	planets  *planet.Generator
	logger   *slog.Logger
}

func NewGenerator(rng random.Source, counters *universe.Counters, planets *planet.Generator, logger *slog.Logger) *Generator {
	return &Generator{
		rng:      rng,
		counters: counters,
		planets:  planets,
		logger:   logger,
	}
}

// GenerateSolarSystem builds the system at index within a galaxy together
// with its planets. Index 0 always holds exactly one guaranteed Terran world.
func (g *Generator) GenerateSolarSystem(galaxyID uint64, index int) (*universe.SolarSystem, []*universe.Planet) {
	logger := g.logger.With("component", "system_generator", "operation", "generate_system", "galaxy_id", galaxyID, "index", index)

	sys := &universe.SolarSystem{
		ID:        g.counters.System(),
		GalaxyID:  galaxyID,
		Name:      g.generateName(index),
		Position:  gridPosition(index),
		Modifiers: g.generateModifiers(),
	}

	count := random.Range(g.rng, minPlanets, maxPlanets+1)
	terranIndex := -1
	if index == 0 {
		terranIndex = g.rng.IntN(count)
	}

	planets := make([]*universe.Planet, 0, count)
	for i := 0; i < count; i++ {
		pos := PlanetPosition(sys.Position, i, count)
		var p *universe.Planet
		if i == terranIndex {
			p = g.planets.GeneratePlanetWithClass(universe.PlanetClassTerran, pos, sys.ID)
		} else {
			p = g.planets.GeneratePlanet(pos, sys.ID)
		}
		sys.Planets = append(sys.Planets, p.ID)
		planets = append(planets, p)
	}

	logger.Debug("Solar system generated", "system_id", sys.ID, "planets", count)
	return sys, planets
}

func gridPosition(index int) universe.Position {
	return universe.Position{
		X: float64(index%gridSize) * gridSpacing,
		Y: float64(index/gridSize) * gridSpacing,
	}
}

// PlanetPosition places planet i of n on an orbital ring around center.
func PlanetPosition(center universe.Position, i, n int) universe.Position {
	radius := baseRingSize + float64(i)*ringSpacing
	angle := float64(i) * 2 * math.Pi / float64(n)
	return universe.Position{
		X: center.X + math.Cos(angle)*radius,
		Y: center.Y + math.Sin(angle)*radius,
	}
}

func (g *Generator) generateName(index int) string {
	prefix := namePrefixes[index%len(namePrefixes)]
	suffix := nameSuffixes[g.rng.IntN(len(nameSuffixes))]
	return fmt.Sprintf("%s %s %d", prefix, suffix, index+1)
}

func pct(t universe.ModifierType, v float64) universe.Modifier {
	return universe.Modifier{Type: t, Value: v, IsPercentage: true}
}

func (g *Generator) generateModifiers() []universe.Modifier {
	switch g.rng.IntN(4) {
	case 0: // binary
		return []universe.Modifier{
			pct(universe.ModifierEnergyMultiplier, 75),
			pct(universe.ModifierRadiation, 25),
		}
	case 1: // single
		return []universe.Modifier{
			pct(universe.ModifierPopulationMultiplier, 20),
		}
	case 2: // multiple
		return []universe.Modifier{
			pct(universe.ModifierTechnologyMultiplier, 40),
			pct(universe.ModifierMineralMultiplier, 30),
		}
	default: // young
		return []universe.Modifier{
			pct(universe.ModifierMineralMultiplier, 60),
			pct(universe.ModifierPopulationPenalty, -30),
		}
	}
}
