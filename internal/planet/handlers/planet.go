package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"conquest-server/internal/conquest"
	"conquest-server/internal/game"
	"conquest-server/internal/shared/errors"
	"conquest-server/internal/shared/response"
	"conquest-server/internal/universe"
)

// Runner executes fn on the simulation goroutine.
type Runner interface {
	Do(ctx context.Context, fn func(*game.Engine)) error
}

type PlanetHandler struct {
	runner Runner
	logger *slog.Logger
}

func NewPlanetHandler(runner Runner, logger *slog.Logger) *PlanetHandler {
	return &PlanetHandler{runner: runner, logger: logger}
}

func (h *PlanetHandler) do(r *http.Request, fn func(*game.Engine)) error {
	if err := h.runner.Do(r.Context(), fn); err != nil {
		return errors.WrapUnavailable("simulation unavailable", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name, err)
	}
	return id, nil
}

func (h *PlanetHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_owned_planets")

	var ids []uint64
	if err := h.do(r, func(e *game.Engine) { ids = e.OwnedPlanetIDs() }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if ids == nil {
		ids = []uint64{}
	}
	response.Success(w, http.StatusOK, ids)
}

func (h *PlanetHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_planet")

	planetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var (
		p  *universe.Planet
		ok bool
	)
	if err := h.do(r, func(e *game.Engine) { p, ok = e.Planet(planetID) }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("planet %d not found", planetID))
		return
	}
	response.Success(w, http.StatusOK, p)
}

type conquestCostResponse struct {
	PlanetID uint64             `json:"planet_id"`
	Cost     universe.Resources `json:"cost"`
}

func (h *PlanetHandler) ConquestCost(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "conquest_cost")

	planetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var (
		cost universe.Resources
		ok   bool
	)
	if err := h.do(r, func(e *game.Engine) { cost, ok = e.ConquestCost(planetID) }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("planet %d not found", planetID))
		return
	}
	response.Success(w, http.StatusOK, conquestCostResponse{PlanetID: planetID, Cost: cost})
}

// Conquer answers 200 on success and 409 with the outcome when the attempt
// was refused, so clients can show what was missing.
func (h *PlanetHandler) Conquer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "conquer_planet")

	planetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var result conquest.Result
	if err := h.do(r, func(e *game.Engine) { result = e.AttemptPlanetConquest(planetID) }); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	switch {
	case result.Outcome == conquest.OutcomePlanetNotFound:
		response.Error(w, r, logger, errors.NotFoundf("planet %d not found", planetID))
	case result.Succeeded():
		logger.Info("Planet conquered", "planet_id", planetID)
		response.Success(w, http.StatusOK, result)
	default:
		response.Success(w, http.StatusConflict, result)
	}
}

type terraformRequest struct {
	Target universe.ModifierType `json:"target_modifier"`
}

type projectResponse struct {
	ProjectID uint64                    `json:"project_id"`
	Request   conquest.TerraformRequest `json:"request"`
}

func (h *PlanetHandler) Terraform(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "terraform_planet")

	planetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	var req terraformRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !req.Target.Valid() {
		response.Error(w, r, logger, errors.Validationf("unknown target modifier %q", req.Target))
		return
	}

	var (
		resp  projectResponse
		found bool
		ok    bool
	)
	err = h.do(r, func(e *game.Engine) {
		if found = e.HasPlanet(planetID); !found {
			return
		}
		resp.Request = e.DefaultTerraformRequest(req.Target)
		resp.ProjectID, ok = e.StartTerraformingProject(planetID, resp.Request)
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !found {
		response.Error(w, r, logger, errors.NotFoundf("planet %d not found", planetID))
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.Conflictf("cannot terraform planet %d", planetID))
		return
	}
	response.Success(w, http.StatusCreated, resp)
}

type buildingRequest struct {
	Type universe.BuildingType `json:"type"`
}

type buildingResponse struct {
	BuildingID uint64 `json:"building_id"`
}

func (h *PlanetHandler) AddBuilding(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "add_building")

	planetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	var req buildingRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !req.Type.Valid() {
		response.Error(w, r, logger, errors.Validationf("unknown building type %q", req.Type))
		return
	}

	var (
		buildingID uint64
		found, ok  bool
	)
	err = h.do(r, func(e *game.Engine) {
		if found = e.HasPlanet(planetID); found {
			buildingID, ok = e.AddBuilding(planetID, req.Type)
		}
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !found {
		response.Error(w, r, logger, errors.NotFoundf("planet %d not found", planetID))
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.Conflictf("cannot build %s on planet %d", req.Type, planetID))
		return
	}
	response.Success(w, http.StatusCreated, buildingResponse{BuildingID: buildingID})
}

type orderRequest struct {
	Product  universe.ResourceType `json:"product"`
	Quantity uint64                `json:"quantity"`
	Priority uint8                 `json:"priority"`
}

// buildingCommand resolves the planet and building path values, runs fn on
// the simulation and reports a missing building as 404.
func (h *PlanetHandler) buildingCommand(w http.ResponseWriter, r *http.Request, logger *slog.Logger, fn func(e *game.Engine, planetID, buildingID uint64)) bool {
	planetID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return false
	}
	buildingID, err := pathID(r, "buildingID")
	if err != nil {
		response.Error(w, r, logger, err)
		return false
	}

	var found bool
	err = h.do(r, func(e *game.Engine) {
		p, ok := e.Planet(planetID)
		if found = ok && p.Building(buildingID) != nil; found {
			fn(e, planetID, buildingID)
		}
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return false
	}
	if !found {
		response.Error(w, r, logger, errors.NotFoundf("building %d not found on planet %d", buildingID, planetID))
		return false
	}
	return true
}

func (h *PlanetHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "add_production_order")

	var req orderRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !req.Product.Valid() || req.Quantity == 0 {
		response.Error(w, r, logger, errors.Validation("product must be known and quantity positive"))
		return
	}

	var ok bool
	if !h.buildingCommand(w, r, logger, func(e *game.Engine, planetID, buildingID uint64) {
		ok = e.AddProductionOrder(planetID, buildingID, req.Product, req.Quantity, req.Priority)
	}) {
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.Conflictf("building cannot produce %s", req.Product))
		return
	}
	response.Success(w, http.StatusCreated, req)
}

type upgradeResponse struct {
	Level uint32 `json:"level"`
}

func (h *PlanetHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "upgrade_building")

	var (
		level uint32
		ok    bool
	)
	if !h.buildingCommand(w, r, logger, func(e *game.Engine, planetID, buildingID uint64) {
		level, ok = e.UpgradeBuilding(planetID, buildingID)
	}) {
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.Conflictf("insufficient resources to upgrade past level %d", level))
		return
	}
	response.Success(w, http.StatusOK, upgradeResponse{Level: level})
}

type toggleResponse struct {
	Active bool `json:"active"`
}

func (h *PlanetHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "toggle_building")

	var active bool
	if !h.buildingCommand(w, r, logger, func(e *game.Engine, planetID, buildingID uint64) {
		active, _ = e.ToggleBuilding(planetID, buildingID)
	}) {
		return
	}
	response.Success(w, http.StatusOK, toggleResponse{Active: active})
}
