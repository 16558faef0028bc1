package system

import (
	"log/slog"
	"math"
	"testing"

	"conquest-server/internal/planet"
	"conquest-server/internal/random"
	"conquest-server/internal/universe"
)

func newGenerator(seed uint64) *Generator {
	counters := universe.NewCounters()
	rng := random.New(seed)
	return NewGenerator(rng, &counters, planet.NewGenerator(rng, &counters, slog.Default()), slog.Default())
}

func TestFirstSystemHasAtLeastOneTerran(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g := newGenerator(seed)
		sys, planets := g.GenerateSolarSystem(1, 0)

		if len(planets) < minPlanets || len(planets) > maxPlanets {
			t.Fatalf("seed %d: %d planets, want %d..%d", seed, len(planets), minPlanets, maxPlanets)
		}
		if len(sys.Planets) != len(planets) {
			t.Fatalf("seed %d: system lists %d planets, generated %d", seed, len(sys.Planets), len(planets))
		}
		terran := 0
		for _, p := range planets {
			if p.Class == universe.PlanetClassTerran {
				terran++
			}
		}
		if terran == 0 {
			t.Fatalf("seed %d: no terran planet in first system", seed)
		}
	}
}

func TestSystemNameUsesIndex(t *testing.T) {
	g := newGenerator(1)
	sys, _ := g.GenerateSolarSystem(1, 9)
	if sys.Name[:4] != "Beta" {
		t.Errorf("name = %q, want Beta prefix", sys.Name)
	}
	if sys.Name[len(sys.Name)-2:] != "10" {
		t.Errorf("name = %q, want suffix 10", sys.Name)
	}
}

func TestPlanetPositionRings(t *testing.T) {
	center := universe.Position{X: 100, Y: 100}
	p := PlanetPosition(center, 0, 4)
	if p.X != 130 || p.Y != 100 {
		t.Errorf("ring 0 = %+v, want {130 100}", p)
	}
	p = PlanetPosition(center, 2, 4)
	if math.Abs(p.X-40) > 1e-9 || math.Abs(p.Y-100) > 1e-9 {
		t.Errorf("ring 2 = %+v, want {40 100}", p)
	}
}

func TestGridPosition(t *testing.T) {
	p := gridPosition(23)
	if p.X != 3*gridSpacing || p.Y != 2*gridSpacing {
		t.Errorf("gridPosition(23) = %+v", p)
	}
}
