package galaxy

import "conquest-server/internal/universe"

// SystemProgress is the conquered fraction of a system's planets.
func SystemProgress(state *universe.State, systemID uint64) float64 {
	planets := state.SystemPlanets(systemID)
	if len(planets) == 0 {
		return 0
	}
	owned := 0
	for _, p := range planets {
		if p.State.Owned() {
			owned++
		}
	}
	return float64(owned) / float64(len(planets))
}

// ConquestProgress is the conquered fraction of a galaxy's planets.
func ConquestProgress(state *universe.State, galaxyID uint64) float64 {
	gal, ok := state.Galaxies[galaxyID]
	if !ok {
		return 0
	}
	total, owned := 0, 0
	for _, sysID := range gal.SolarSystems {
		for _, p := range state.SystemPlanets(sysID) {
			total++
			if p.State.Owned() {
				owned++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(owned) / float64(total)
}

// RefreshConquered recomputes IsConquered for the system holding planetID and
// its galaxy.
func RefreshConquered(state *universe.State, planetID uint64) {
	p, ok := state.Planets[planetID]
	if !ok {
		return
	}
	sys, ok := state.SolarSystems[p.SolarSystemID]
	if !ok {
		return
	}
	sys.IsConquered = SystemProgress(state, sys.ID) >= 1

	gal, ok := state.Galaxies[sys.GalaxyID]
	if !ok {
		return
	}
	for _, id := range gal.SolarSystems {
		if s, ok := state.SolarSystems[id]; !ok || !s.IsConquered {
			gal.IsConquered = false
			return
		}
	}
	gal.IsConquered = true
}
