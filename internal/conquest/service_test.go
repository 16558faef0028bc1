package conquest

import (
	"log/slog"
	"maps"
	"testing"

	"conquest-server/internal/resource"
	"conquest-server/internal/universe"
)

func newService() *Service {
	return NewService(resource.NewLedger(), slog.Default())
}

func newState(p *universe.Planet) *universe.State {
	state := universe.NewState(1)
	state.SolarSystems[p.SolarSystemID] = &universe.SolarSystem{ID: p.SolarSystemID, Planets: []uint64{p.ID}}
	state.Planets[p.ID] = p
	return state
}

func TestConquestCost(t *testing.T) {
	tests := []struct {
		name      string
		modifiers []universe.Modifier
		bonus     float64
		want      universe.Resources
	}{
		{
			name: "base",
			want: universe.Resources{universe.ResourceEnergy: 110, universe.ResourceMinerals: 55, universe.ResourcePopulation: 27},
		},
		{
			name:      "defensive",
			modifiers: []universe.Modifier{{Type: universe.ModifierDefensiveBonus, Value: 20.7, IsPercentage: true}},
			want:      universe.Resources{universe.ResourceEnergy: 155, universe.ResourceMinerals: 55, universe.ResourcePopulation: 27},
		},
		{
			name:      "penalty",
			modifiers: []universe.Modifier{{Type: universe.ModifierResourcePenalty, Value: -60, IsPercentage: true}},
			want:      universe.Resources{universe.ResourceEnergy: 44, universe.ResourceMinerals: 22, universe.ResourcePopulation: 11},
		},
		{
			name:  "conquest speed bonus",
			bonus: 2,
			want:  universe.Resources{universe.ResourceEnergy: 55, universe.ResourceMinerals: 27, universe.ResourcePopulation: 13},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &universe.Planet{Modifiers: tt.modifiers}
			got := ConquestCost(p, 1.1, tt.bonus)
			if !maps.Equal(got, tt.want) {
				t.Errorf("ConquestCost = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttemptInsufficientResources(t *testing.T) {
	s := newService()
	p := &universe.Planet{ID: 2, State: universe.PlanetStateUnexplored, SolarSystemID: 9, Resources: universe.Resources{}}
	state := newState(p)
	state.EmpireResources = universe.Resources{universe.ResourceEnergy: 50}

	res := s.Attempt(state, 2, 1.1, 1)
	if res.Outcome != OutcomeInsufficientResources {
		t.Fatalf("Outcome = %s, want %s", res.Outcome, OutcomeInsufficientResources)
	}
	want := universe.Resources{universe.ResourceEnergy: 110, universe.ResourceMinerals: 55, universe.ResourcePopulation: 27}
	if !maps.Equal(res.Required, want) {
		t.Errorf("Required = %v, want %v", res.Required, want)
	}
	if res.Available[universe.ResourceEnergy] != 50 {
		t.Errorf("Available = %v", res.Available)
	}
	if p.State != universe.PlanetStateUnexplored || state.EmpireResources[universe.ResourceEnergy] != 50 {
		t.Error("failed conquest mutated state")
	}
	if state.ExploredSystems.Has(9) {
		t.Error("failed conquest explored the system")
	}
}

func TestAttemptSuccess(t *testing.T) {
	s := newService()
	p := &universe.Planet{ID: 2, State: universe.PlanetStateUnexplored, SolarSystemID: 9}
	state := newState(p)
	state.EmpireResources = universe.Resources{
		universe.ResourceEnergy:     1000,
		universe.ResourceMinerals:   500,
		universe.ResourcePopulation: 100,
		universe.ResourceFood:       200,
	}

	res := s.Attempt(state, 2, 1.1, 1)
	if !res.Succeeded() {
		t.Fatalf("Outcome = %s", res.Outcome)
	}
	if p.State != universe.PlanetStateConquered {
		t.Errorf("planet state = %s", p.State)
	}
	want := universe.Resources{
		universe.ResourceEnergy:     890,
		universe.ResourceMinerals:   445,
		universe.ResourcePopulation: 73,
		universe.ResourceFood:       200,
	}
	if !maps.Equal(state.EmpireResources, want) {
		t.Errorf("empire = %v, want %v", state.EmpireResources, want)
	}
	if !state.DiscoveredSystems.Has(9) || !state.ExploredSystems.Has(9) {
		t.Error("system not discovered and explored")
	}
}

func TestAttemptStates(t *testing.T) {
	s := newService()
	tests := []struct {
		state universe.PlanetState
		want  Outcome
	}{
		{universe.PlanetStateConquered, OutcomeAlreadyConquered},
		{universe.PlanetStateExplored, OutcomeAlreadyExplored},
		{universe.PlanetStateTerraforming, OutcomeCurrentlyTerraforming},
		{"owned_by_aliens", OutcomeInvalidState},
		{"", OutcomeInvalidState},
	}
	for _, tt := range tests {
		state := newState(&universe.Planet{ID: 1, State: tt.state})
		if got := s.Attempt(state, 1, 1.1, 1).Outcome; got != tt.want {
			t.Errorf("state %q: Outcome = %s, want %s", tt.state, got, tt.want)
		}
		if state.Planets[1].State != tt.state {
			t.Errorf("state %q: planet state changed to %s", tt.state, state.Planets[1].State)
		}
	}
	if got := s.Attempt(universe.NewState(1), 42, 1.1, 1).Outcome; got != OutcomePlanetNotFound {
		t.Errorf("unknown planet: Outcome = %s", got)
	}
}

func TestTerraformingLifecycle(t *testing.T) {
	s := newService()
	p := &universe.Planet{
		ID:        1,
		State:     universe.PlanetStateConquered,
		Resources: universe.Resources{universe.ResourceMinerals: 500},
		Modifiers: []universe.Modifier{
			{Type: universe.ModifierPopulationPenalty, Value: -80, IsPercentage: true},
			{Type: universe.ModifierPopulationPenalty, Value: -10, IsPercentage: true},
			{Type: universe.ModifierMineralMultiplier, Value: 50, IsPercentage: true},
		},
	}

	if s.StartTerraforming(p, 1, TerraformRequest{
		Target: universe.ModifierPopulationPenalty,
		Cost:   universe.Resources{universe.ResourceMinerals: 1000},
	}) {
		t.Fatal("unaffordable project started")
	}
	if p.State != universe.PlanetStateConquered || p.Resources[universe.ResourceMinerals] != 500 {
		t.Fatal("failed start mutated planet")
	}

	ok := s.StartTerraforming(p, 1, TerraformRequest{
		Target:   universe.ModifierPopulationPenalty,
		Cost:     universe.Resources{universe.ResourceMinerals: 300},
		Duration: 4,
	})
	if !ok || p.State != universe.PlanetStateTerraforming {
		t.Fatalf("start = %v, state = %s", ok, p.State)
	}
	s.StartTerraforming(p, 2, TerraformRequest{Target: universe.ModifierRadiation, Duration: 8})
	if p.TerraformingProjects[0].Name != "Terraform PopulationPenalty" {
		t.Errorf("project name = %q", p.TerraformingProjects[0].Name)
	}

	last := 0.0
	for tick := 1; tick <= 4; tick++ {
		done := s.UpdateTerraforming(p, universe.SpeedNormal, 1)
		if tick < 4 {
			if len(done) != 0 {
				t.Fatalf("tick %d: completed early", tick)
			}
			if p.TerraformingProjects[0].Progress <= last {
				t.Fatalf("tick %d: progress did not increase", tick)
			}
			last = p.TerraformingProjects[0].Progress
		}
	}

	count := 0
	for _, m := range p.Modifiers {
		if m.Type == universe.ModifierPopulationPenalty {
			count++
			if m.Value != TerraformBonus {
				t.Errorf("modifier value = %v, want %v", m.Value, TerraformBonus)
			}
		}
	}
	if count != 1 {
		t.Errorf("%d population penalty modifiers, want 1", count)
	}
	if p.State != universe.PlanetStateTerraforming || len(p.TerraformingProjects) != 1 {
		t.Fatalf("state = %s with %d projects, want terraforming with 1", p.State, len(p.TerraformingProjects))
	}

	s.UpdateTerraforming(p, universe.SpeedFastest, 1)
	if p.State != universe.PlanetStateConquered || len(p.TerraformingProjects) != 0 {
		t.Errorf("state = %s with %d projects, want conquered with none", p.State, len(p.TerraformingProjects))
	}
}
