package universe

type ResourceType string

const (
	ResourceEnergy     ResourceType = "energy"
	ResourceMinerals   ResourceType = "minerals"
	ResourcePopulation ResourceType = "population"
	ResourceTechnology ResourceType = "technology"
	ResourceFood       ResourceType = "food"

	ResourceAlloys      ResourceType = "alloys"
	ResourceElectronics ResourceType = "electronics"
	ResourceMedicine    ResourceType = "medicine"

	ResourceStarships       ResourceType = "starships"
	ResourceAdvancedWeapons ResourceType = "advanced_weapons"
	ResourceAISystems       ResourceType = "ai_systems"

	ResourceDysonSpheres     ResourceType = "dyson_spheres"
	ResourceGalacticNetworks ResourceType = "galactic_networks"
)

// BasicResources are generated by planets rather than manufactured.
var BasicResources = []ResourceType{
	ResourceEnergy,
	ResourceMinerals,
	ResourcePopulation,
	ResourceTechnology,
	ResourceFood,
}

// AllResources lists every resource in tier order.
var AllResources = []ResourceType{
	ResourceEnergy, ResourceMinerals, ResourcePopulation, ResourceTechnology, ResourceFood,
	ResourceAlloys, ResourceElectronics, ResourceMedicine,
	ResourceStarships, ResourceAdvancedWeapons, ResourceAISystems,
	ResourceDysonSpheres, ResourceGalacticNetworks,
}

func (r ResourceType) IsBasic() bool {
	for _, b := range BasicResources {
		if b == r {
			return true
		}
	}
	return false
}

func (r ResourceType) Valid() bool {
	for _, v := range AllResources {
		if v == r {
			return true
		}
	}
	return false
}

type ModifierType string

const (
	ModifierEnergyMultiplier     ModifierType = "energy_multiplier"
	ModifierMineralMultiplier    ModifierType = "mineral_multiplier"
	ModifierPopulationMultiplier ModifierType = "population_multiplier"
	ModifierTechnologyMultiplier ModifierType = "technology_multiplier"
	ModifierFoodMultiplier       ModifierType = "food_multiplier"
	ModifierResearchBonus        ModifierType = "research_bonus"
	ModifierManufacturingBonus   ModifierType = "manufacturing_bonus"
	ModifierTradeBonus           ModifierType = "trade_bonus"
	ModifierDefensiveBonus       ModifierType = "defensive_bonus"
	ModifierResourcePenalty      ModifierType = "resource_penalty"
	ModifierPopulationPenalty    ModifierType = "population_penalty"
	ModifierRadiation            ModifierType = "radiation"
	ModifierToxicAtmosphere      ModifierType = "toxic_atmosphere"
)

var allModifiers = []ModifierType{
	ModifierEnergyMultiplier, ModifierMineralMultiplier, ModifierPopulationMultiplier,
	ModifierTechnologyMultiplier, ModifierFoodMultiplier, ModifierResearchBonus,
	ModifierManufacturingBonus, ModifierTradeBonus, ModifierDefensiveBonus,
	ModifierResourcePenalty, ModifierPopulationPenalty, ModifierRadiation,
	ModifierToxicAtmosphere,
}

func (m ModifierType) Valid() bool {
	for _, v := range allModifiers {
		if v == m {
			return true
		}
	}
	return false
}

// Modifier adjusts a rate. Percentage modifiers scale by (1 + Value/100),
// flat ones add Value.
type Modifier struct {
	Type         ModifierType `json:"type"`
	Value        float64      `json:"value"`
	IsPercentage bool         `json:"is_percentage"`
}

type PlanetClass string

const (
	PlanetClassBarren      PlanetClass = "barren"
	PlanetClassTerran      PlanetClass = "terran"
	PlanetClassGasGiant    PlanetClass = "gas_giant"
	PlanetClassOcean       PlanetClass = "ocean"
	PlanetClassDesert      PlanetClass = "desert"
	PlanetClassIce         PlanetClass = "ice"
	PlanetClassVolcanic    PlanetClass = "volcanic"
	PlanetClassToxic       PlanetClass = "toxic"
	PlanetClassCrystalline PlanetClass = "crystalline"
	PlanetClassMetallic    PlanetClass = "metallic"
)

type PlanetState string

const (
	PlanetStateUnexplored   PlanetState = "unexplored"
	PlanetStateExplored     PlanetState = "explored"
	PlanetStateConquered    PlanetState = "conquered"
	PlanetStateTerraforming PlanetState = "terraforming"
)

func (s PlanetState) Valid() bool {
	switch s {
	case PlanetStateUnexplored, PlanetStateExplored, PlanetStateConquered, PlanetStateTerraforming:
		return true
	}
	return false
}

// Owned reports whether the empire controls the planet.
func (s PlanetState) Owned() bool {
	return s == PlanetStateConquered || s == PlanetStateTerraforming
}

type BuildingType string

const (
	BuildingBasicManufacturing    BuildingType = "basic_manufacturing"
	BuildingAdvancedManufacturing BuildingType = "advanced_manufacturing"
	BuildingElectronics           BuildingType = "electronics"
	BuildingPharmaceuticals       BuildingType = "pharmaceuticals"
	BuildingShipyard              BuildingType = "shipyard"
	BuildingWeapons               BuildingType = "weapons"
	BuildingResearch              BuildingType = "research"
	BuildingHousing               BuildingType = "housing"
)

var AllBuildings = []BuildingType{
	BuildingBasicManufacturing, BuildingAdvancedManufacturing, BuildingElectronics,
	BuildingPharmaceuticals, BuildingShipyard, BuildingWeapons, BuildingResearch,
	BuildingHousing,
}

func (b BuildingType) Valid() bool {
	for _, v := range AllBuildings {
		if v == b {
			return true
		}
	}
	return false
}

// GameSpeed multiplies per tick increments. It never changes tick cadence.
type GameSpeed uint64

const (
	SpeedNormal  GameSpeed = 1
	SpeedFast    GameSpeed = 10
	SpeedFaster  GameSpeed = 100
	SpeedFastest GameSpeed = 1000
)

func (s GameSpeed) Valid() bool {
	switch s {
	case SpeedNormal, SpeedFast, SpeedFaster, SpeedFastest:
		return true
	}
	return false
}

type PrestigeBonusType string

const (
	BonusResourceMultiplier  PrestigeBonusType = "resource_multiplier"
	BonusResearchSpeed       PrestigeBonusType = "research_speed"
	BonusConquestSpeed       PrestigeBonusType = "conquest_speed"
	BonusTerraformingSpeed   PrestigeBonusType = "terraforming_speed"
	BonusTransportEfficiency PrestigeBonusType = "transport_efficiency"
	BonusBuildingEfficiency  PrestigeBonusType = "building_efficiency"
	BonusStartingResources   PrestigeBonusType = "starting_resources"
	BonusGalaxyModifier      PrestigeBonusType = "galaxy_modifier"
)

type PrestigeBonus struct {
	Type         PrestigeBonusType `json:"type"`
	Value        float64           `json:"value"`
	IsPercentage bool              `json:"is_percentage"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Galaxy struct {
	ID           uint64     `json:"id"`
	Name         string     `json:"name"`
	SolarSystems []uint64   `json:"solar_systems"`
	Modifiers    []Modifier `json:"modifiers"`
	IsConquered  bool       `json:"is_conquered"`
}

type SolarSystem struct {
	ID          uint64     `json:"id"`
	GalaxyID    uint64     `json:"galaxy_id"`
	Name        string     `json:"name"`
	Planets     []uint64   `json:"planets"`
	Modifiers   []Modifier `json:"modifiers"`
	Position    Position   `json:"position"`
	IsConquered bool       `json:"is_conquered"`
}

type Planet struct {
	ID                   uint64                `json:"id"`
	Name                 string                `json:"name"`
	Class                PlanetClass           `json:"class"`
	State                PlanetState           `json:"state"`
	Resources            Resources             `json:"resources"`
	Modifiers            []Modifier            `json:"modifiers"`
	TerraformingProjects []TerraformingProject `json:"terraforming_projects"`
	Buildings            []Building            `json:"buildings"`
	Storage              Resources             `json:"storage"`
	Position             Position              `json:"position"`
	SolarSystemID        uint64                `json:"solar_system_id"`
}

// Building returns a pointer into the planet's building list.
func (p *Planet) Building(id uint64) *Building {
	for i := range p.Buildings {
		if p.Buildings[i].ID == id {
			return &p.Buildings[i]
		}
	}
	return nil
}

// HasModifier reports whether any modifier of type t is present.
func (p *Planet) HasModifier(t ModifierType) bool {
	for _, m := range p.Modifiers {
		if m.Type == t {
			return true
		}
	}
	return false
}

type Building struct {
	ID              uint64            `json:"id"`
	Type            BuildingType      `json:"type"`
	ProductionQueue []ProductionOrder `json:"production_queue"`
	Efficiency      float64           `json:"efficiency"`
	IsActive        bool              `json:"is_active"`
	Level           uint32            `json:"level"`
}

type ProductionOrder struct {
	Product  ResourceType `json:"product"`
	Quantity uint64       `json:"quantity"`
	Priority uint8        `json:"priority"`
	Progress float64      `json:"progress"`
}

type TerraformingProject struct {
	ID                uint64       `json:"id"`
	Name              string       `json:"name"`
	TargetModifier    ModifierType `json:"target_modifier"`
	RequiredResources Resources    `json:"required_resources"`
	Progress          float64      `json:"progress"`
	Duration          uint64       `json:"duration"`
	EnergyCost        uint64       `json:"energy_cost"`
}

type TransportRoute struct {
	ID         uint64  `json:"id"`
	FromPlanet uint64  `json:"from_planet"`
	ToPlanet   uint64  `json:"to_planet"`
	Capacity   uint64  `json:"capacity"`
	Efficiency float64 `json:"efficiency"`
	EnergyCost uint64  `json:"energy_cost"`
	Distance   float64 `json:"distance"`
}

type ResourceInTransit struct {
	ID           uint64       `json:"id"`
	ResourceType ResourceType `json:"resource_type"`
	Amount       uint64       `json:"amount"`
	FromPlanet   uint64       `json:"from_planet"`
	ToPlanet     uint64       `json:"to_planet"`
	ArrivalTime  uint64       `json:"arrival_time"`
	RouteID      uint64       `json:"route_id,omitempty"`
}
