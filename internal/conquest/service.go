package conquest

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"conquest-server/internal/resource"
	"conquest-server/internal/universe"
)

// TerraformBonus is the modifier value a finished project installs.
const TerraformBonus = 50.0

var baseCost = universe.Resources{
	universe.ResourceEnergy:     100,
	universe.ResourceMinerals:   50,
	universe.ResourcePopulation: 25,
}

type Service struct {
	ledger *resource.Ledger
	logger *slog.Logger
}

func NewService(ledger *resource.Ledger, logger *slog.Logger) *Service {
	return &Service{
		ledger: ledger,
		logger: logger,
	}
}

// ConquestCost prices a planet. Defensive bonuses add energy, resource
// penalties discount every entry, difficulty scales every entry and the
// conquest speed bonus divides the result. Each step truncates.
func ConquestCost(p *universe.Planet, difficulty, conquestBonus float64) universe.Resources {
	cost := baseCost.Clone()
	for _, m := range p.Modifiers {
		switch m.Type {
		case universe.ModifierDefensiveBonus:
			cost[universe.ResourceEnergy] += uint64(m.Value * 2)
		case universe.ModifierResourcePenalty:
			factor := 1 - abs(m.Value)/100
			for t, v := range cost {
				cost[t] = truncate(float64(v) * factor)
			}
		}
	}
	for t, v := range cost {
		cost[t] = truncate(float64(v) * difficulty)
	}
	if conquestBonus > 0 && conquestBonus != 1 {
		for t, v := range cost {
			cost[t] = truncate(float64(v) / conquestBonus)
		}
	}
	return cost
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func truncate(v float64) uint64 {
	if v <= 0 {
		return 0
	}
	return uint64(v)
}

// Attempt tries to conquer planetID, paying from the empire pool. On success
// the planet's system becomes discovered and explored.
func (s *Service) Attempt(state *universe.State, planetID uint64, difficulty, conquestBonus float64) Result {
	logger := s.logger.With("component", "conquest", "operation", "attempt", "planet_id", planetID)

	p, ok := state.Planets[planetID]
	if !ok {
		return Result{Outcome: OutcomePlanetNotFound, PlanetID: planetID}
	}

	switch p.State {
	case universe.PlanetStateConquered:
		return Result{Outcome: OutcomeAlreadyConquered, PlanetID: planetID}
	case universe.PlanetStateExplored:
		return Result{Outcome: OutcomeAlreadyExplored, PlanetID: planetID}
	case universe.PlanetStateTerraforming:
		return Result{Outcome: OutcomeCurrentlyTerraforming, PlanetID: planetID}
	case universe.PlanetStateUnexplored:
	default:
		return Result{Outcome: OutcomeInvalidState, PlanetID: planetID}
	}

	cost := ConquestCost(p, difficulty, conquestBonus)
	if !s.ledger.Deduct(state.EmpireResources, cost) {
		logger.Debug("Conquest unaffordable", "required", cost)
		return Result{
			Outcome:   OutcomeInsufficientResources,
			PlanetID:  planetID,
			Required:  cost,
			Available: state.EmpireResources.Clone(),
		}
	}

	p.State = universe.PlanetStateConquered
	if _, ok := state.SolarSystems[p.SolarSystemID]; ok {
		state.DiscoveredSystems.Add(p.SolarSystemID)
		state.ExploredSystems.Add(p.SolarSystemID)
	}

	logger.Debug("Planet conquered", "cost", cost)
	return Result{Outcome: OutcomeSuccess, PlanetID: planetID, Cost: cost}
}

// StartTerraforming pays req.Cost from the planet's own resources and queues
// the project. Nothing changes when the planet cannot pay.
func (s *Service) StartTerraforming(p *universe.Planet, projectID uint64, req TerraformRequest) bool {
	if !s.ledger.Deduct(p.Resources, req.Cost) {
		return false
	}

	p.TerraformingProjects = append(p.TerraformingProjects, universe.TerraformingProject{
		ID:                projectID,
		Name:              projectName(req.Target),
		TargetModifier:    req.Target,
		RequiredResources: req.Cost.Clone(),
		Duration:          max(req.Duration, 1),
		EnergyCost:        req.EnergyCost,
	})
	p.State = universe.PlanetStateTerraforming

	s.logger.Debug("Terraforming started",
		"component", "terraforming",
		"planet_id", p.ID,
		"project_id", projectID,
		"target", req.Target,
	)
	return true
}

func projectName(t universe.ModifierType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return fmt.Sprintf("Terraform %s", strings.Join(words, ""))
}

// UpdateTerraforming advances every project on p by one tick and applies the
// ones that finish. It returns the modifier types that were completed.
func (s *Service) UpdateTerraforming(p *universe.Planet, speed universe.GameSpeed, bonus float64) []universe.ModifierType {
	if len(p.TerraformingProjects) == 0 {
		return nil
	}
	if bonus <= 0 {
		bonus = 1
	}

	var completed []universe.ModifierType
	for i := range p.TerraformingProjects {
		project := &p.TerraformingProjects[i]
		if project.Progress >= 1 {
			continue
		}
		project.Progress += (1 / float64(max(project.Duration, 1))) * float64(speed) * bonus
		if project.Progress >= 1 {
			project.Progress = 1
			completed = append(completed, project.TargetModifier)
		}
	}

	for _, target := range completed {
		applyTerraforming(p, target)
	}
	p.TerraformingProjects = slices.DeleteFunc(p.TerraformingProjects, func(tp universe.TerraformingProject) bool {
		return tp.Progress >= 1
	})

	if len(p.TerraformingProjects) == 0 && p.State == universe.PlanetStateTerraforming {
		p.State = universe.PlanetStateConquered
	}
	return completed
}

func applyTerraforming(p *universe.Planet, target universe.ModifierType) {
	p.Modifiers = slices.DeleteFunc(p.Modifiers, func(m universe.Modifier) bool {
		return m.Type == target
	})
	p.Modifiers = append(p.Modifiers, universe.Modifier{
		Type:         target,
		Value:        TerraformBonus,
		IsPercentage: true,
	})
}
