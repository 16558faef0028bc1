package universe

import (
	"encoding/json"
	"testing"
)

func TestCountersNeverReuse(t *testing.T) {
	c := NewCounters()
	seen := map[uint64]bool{}
	for i := 0; i < 10; i++ {
		id := c.Planet()
		if seen[id] {
			t.Fatalf("planet id %d handed out twice", id)
		}
		seen[id] = true
	}

	var zero Counters
	if id := zero.Route(); id != 1 {
		t.Errorf("zero counter Route() = %d, want 1", id)
	}
}

func TestNormalizeRepairsCounters(t *testing.T) {
	s := &State{
		Planets: map[uint64]*Planet{
			7: {ID: 7, Buildings: []Building{{ID: 12}}},
		},
		InTransit: []ResourceInTransit{{ID: 4}},
	}
	s.Normalize(Resources{ResourceEnergy: 1000})

	if s.Speed != SpeedNormal {
		t.Errorf("Speed = %d, want %d", s.Speed, SpeedNormal)
	}
	if s.Counters.NextPlanetID != 8 {
		t.Errorf("NextPlanetID = %d, want 8", s.Counters.NextPlanetID)
	}
	if s.Counters.NextBuildingID != 13 {
		t.Errorf("NextBuildingID = %d, want 13", s.Counters.NextBuildingID)
	}
	if s.Counters.NextShipmentID != 5 {
		t.Errorf("NextShipmentID = %d, want 5", s.Counters.NextShipmentID)
	}
	if s.EmpireResources.Get(ResourceEnergy) != 1000 {
		t.Errorf("EmpireResources not defaulted: %v", s.EmpireResources)
	}
	if s.Planets[7].Storage == nil {
		t.Error("planet storage left nil")
	}
}

func TestNormalizeDropsNullEntries(t *testing.T) {
	var s State
	blob := `{"galaxies":{"1":null},"solar_systems":{"2":null},"planets":{"1":null,"3":{"id":3,"state":"conquered"}},"routes":{"5":null}}`
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		t.Fatal(err)
	}
	s.Normalize(nil)

	if len(s.Galaxies) != 0 || len(s.SolarSystems) != 0 || len(s.Routes) != 0 {
		t.Errorf("null entries kept: galaxies=%d systems=%d routes=%d", len(s.Galaxies), len(s.SolarSystems), len(s.Routes))
	}
	if _, ok := s.Planets[1]; ok {
		t.Error("null planet kept")
	}
	if p, ok := s.Planets[3]; !ok || p.Storage == nil {
		t.Error("valid planet lost or left without storage")
	}
}

func TestNormalizePlanetState(t *testing.T) {
	project := []TerraformingProject{{ID: 1, Duration: 10}}
	tests := []struct {
		name         string
		state        PlanetState
		projects     []TerraformingProject
		want         PlanetState
		wantProjects int
	}{
		{"unknown", "owned_by_aliens", nil, PlanetStateUnexplored, 0},
		{"empty", "", nil, PlanetStateUnexplored, 0},
		{"terraforming without projects", PlanetStateTerraforming, nil, PlanetStateConquered, 0},
		{"conquered with projects", PlanetStateConquered, project, PlanetStateTerraforming, 1},
		{"unowned with projects", PlanetStateExplored, project, PlanetStateExplored, 0},
		{"unexplored", PlanetStateUnexplored, nil, PlanetStateUnexplored, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Planets: map[uint64]*Planet{
				1: {ID: 1, State: tt.state, TerraformingProjects: tt.projects},
			}}
			s.Normalize(nil)

			p := s.Planets[1]
			if p.State != tt.want {
				t.Errorf("State = %q, want %q", p.State, tt.want)
			}
			if len(p.TerraformingProjects) != tt.wantProjects {
				t.Errorf("projects = %d, want %d", len(p.TerraformingProjects), tt.wantProjects)
			}
		})
	}
}

func TestIDSetJSONIsSorted(t *testing.T) {
	data, err := json.Marshal(NewIDSet(9, 2, 5))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[2,5,9]" {
		t.Errorf("Marshal = %s, want [2,5,9]", data)
	}

	var back IDSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Has(5) || len(back) != 3 {
		t.Errorf("Unmarshal = %v", back.Sorted())
	}
}

func TestPlanetCloneIsDeep(t *testing.T) {
	p := &Planet{
		ID:        1,
		Resources: Resources{ResourceMinerals: 10},
		Buildings: []Building{{ID: 1, ProductionQueue: []ProductionOrder{{Product: ResourceAlloys}}}},
	}
	c := p.Clone()
	c.Resources[ResourceMinerals] = 99
	c.Buildings[0].ProductionQueue[0].Progress = 0.5

	if p.Resources[ResourceMinerals] != 10 {
		t.Error("clone shares resources map")
	}
	if p.Buildings[0].ProductionQueue[0].Progress != 0 {
		t.Error("clone shares production queue")
	}
}
