package conquest

import "conquest-server/internal/universe"

type Outcome string

const (
	OutcomeSuccess               Outcome = "success"
	OutcomePlanetNotFound        Outcome = "planet_not_found"
	OutcomeAlreadyConquered      Outcome = "already_conquered"
	OutcomeAlreadyExplored       Outcome = "already_explored"
	OutcomeCurrentlyTerraforming Outcome = "currently_terraforming"
	OutcomeInsufficientResources Outcome = "insufficient_resources"
	OutcomeInvalidState          Outcome = "invalid_state"
)

// Result is the outcome of a conquest attempt. Cost is set on success;
// Required and Available are set when the empire could not pay.
type Result struct {
	Outcome   Outcome            `json:"outcome"`
	PlanetID  uint64             `json:"planet_id"`
	Cost      universe.Resources `json:"cost,omitempty"`
	Required  universe.Resources `json:"required,omitempty"`
	Available universe.Resources `json:"available,omitempty"`
}

func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// TerraformRequest describes a project to start on a planet.
type TerraformRequest struct {
	Target     universe.ModifierType `json:"target_modifier"`
	Cost       universe.Resources    `json:"cost"`
	Duration   uint64                `json:"duration"`
	EnergyCost uint64                `json:"energy_cost"`
}
