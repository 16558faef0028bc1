package game

import (
	"conquest-server/internal/prestige"
	"conquest-server/internal/transport"
	"conquest-server/internal/universe"
)

// GameStatistics is the summary a presentation layer polls every tick.
type GameStatistics struct {
	CurrentTick      uint64             `json:"current_tick"`
	ConqueredPlanets int                `json:"conquered_planets"`
	TotalPlanets     int                `json:"total_planets"`
	TotalBuildings   int                `json:"total_buildings"`
	TotalResources   uint64             `json:"total_resources"`
	EmpireResources  universe.Resources `json:"empire_resources"`
	PrestigePoints   uint64             `json:"prestige_points"`
	Speed            universe.GameSpeed `json:"game_speed"`
	IsPaused         bool               `json:"is_paused"`
	GalaxyID         uint64             `json:"galaxy_id"`
	ConquestProgress float64            `json:"conquest_progress"`
}

type SystemView struct {
	*universe.SolarSystem
	Discovered bool               `json:"discovered"`
	Explored   bool               `json:"explored"`
	Progress   float64            `json:"progress"`
	PlanetList []*universe.Planet `json:"planet_list,omitempty"`
}

type GalaxyView struct {
	*universe.Galaxy
	Progress float64      `json:"progress"`
	Systems  []SystemView `json:"systems"`
}

type PrestigeStatus struct {
	prestige.Statistics
	Progress      float64 `json:"progress"`
	PendingPoints uint64  `json:"pending_points"`
	Efficiency    float64 `json:"efficiency"`
	CanPrestige   bool    `json:"can_prestige"`
}

type PrestigeResult struct {
	Points   uint64                   `json:"points"`
	Bonuses  []universe.PrestigeBonus `json:"bonuses"`
	GalaxyID uint64                   `json:"galaxy_id"`
}

type TransportStatus struct {
	transport.Statistics
	Routes    []*universe.TransportRoute   `json:"routes"`
	InTransit []universe.ResourceInTransit `json:"in_transit"`
}
