package handlers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"conquest-server/internal/game"
	"conquest-server/internal/shared/errors"
	"conquest-server/internal/shared/response"
	"conquest-server/internal/universe"
)

// Runner executes commands on the simulation goroutine and writes saves.
type Runner interface {
	Do(ctx context.Context, fn func(*game.Engine)) error
	SaveNow(ctx context.Context) error
}

type GameHandler struct {
	runner Runner
	logger *slog.Logger
}

func NewGameHandler(runner Runner, logger *slog.Logger) *GameHandler {
	return &GameHandler{runner: runner, logger: logger}
}

func (h *GameHandler) do(r *http.Request, fn func(*game.Engine)) error {
	if err := h.runner.Do(r.Context(), fn); err != nil {
		return errors.WrapUnavailable("simulation unavailable", err)
	}
	return nil
}

// query runs fn on the simulation and writes its result as 200.
func query[T any](h *GameHandler, w http.ResponseWriter, r *http.Request, handler string, fn func(*game.Engine) T) {
	var out T
	if err := h.do(r, func(e *game.Engine) { out = fn(e) }); err != nil {
		response.Error(w, r, h.logger.With("handler", handler), err)
		return
	}
	response.Success(w, http.StatusOK, out)
}

func (h *GameHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	query(h, w, r, "get_stats", (*game.Engine).Statistics)
}

func (h *GameHandler) GetProductionOrder(w http.ResponseWriter, r *http.Request) {
	query(h, w, r, "get_production_order", (*game.Engine).ProductionOrder)
}

func (h *GameHandler) GetPrestige(w http.ResponseWriter, r *http.Request) {
	query(h, w, r, "get_prestige", (*game.Engine).PrestigeStatus)
}

func (h *GameHandler) GetTransport(w http.ResponseWriter, r *http.Request) {
	query(h, w, r, "get_transport", (*game.Engine).TransportStatus)
}

func (h *GameHandler) GetGalaxy(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_galaxy")

	var (
		view game.GalaxyView
		ok   bool
	)
	if err := h.do(r, func(e *game.Engine) { view, ok = e.Galaxy() }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("no active galaxy"))
		return
	}
	response.Success(w, http.StatusOK, view)
}

func (h *GameHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_system")

	systemID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid system ID format", err))
		return
	}

	var (
		view game.SystemView
		ok   bool
	)
	if err := h.do(r, func(e *game.Engine) { view, ok = e.System(systemID) }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("system %d not found", systemID))
		return
	}
	response.Success(w, http.StatusOK, view)
}

type productionCostResponse struct {
	Product universe.ResourceType `json:"product"`
	Cost    universe.Resources    `json:"cost"`
}

func (h *GameHandler) GetProductionCost(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_production_cost")

	product := universe.ResourceType(r.PathValue("product"))
	var (
		cost universe.Resources
		ok   bool
	)
	if err := h.do(r, func(e *game.Engine) { cost, ok = e.ProductionCost(product) }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("unknown product %q", product))
		return
	}
	response.Success(w, http.StatusOK, productionCostResponse{Product: product, Cost: cost})
}

func (h *GameHandler) PerformPrestige(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "perform_prestige")

	var (
		result game.PrestigeResult
		ok     bool
	)
	if err := h.do(r, func(e *game.Engine) { result, ok = e.PerformPrestige() }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.Conflictf("prestige requirements not met"))
		return
	}
	logger.Info("Prestige performed", "points", result.Points, "galaxy_id", result.GalaxyID)
	response.Success(w, http.StatusOK, result)
}

type routeRequest struct {
	From     uint64 `json:"from"`
	To       uint64 `json:"to"`
	Capacity uint64 `json:"capacity"`
}

type routeResponse struct {
	RouteID uint64 `json:"route_id"`
}

func (h *GameHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "create_route")

	var req routeRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var (
		routeID   uint64
		found, ok bool
	)
	err := h.do(r, func(e *game.Engine) {
		if found = e.HasPlanet(req.From) && e.HasPlanet(req.To); found {
			routeID, ok = e.CreateRoute(req.From, req.To, req.Capacity)
		}
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !found {
		response.Error(w, r, logger, errors.NotFoundf("route endpoints %d -> %d not found", req.From, req.To))
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.Conflictf("cannot create route from planet %d", req.From))
		return
	}
	response.Success(w, http.StatusCreated, routeResponse{RouteID: routeID})
}

type transportRequest struct {
	From     uint64                `json:"from"`
	To       uint64                `json:"to"`
	Resource universe.ResourceType `json:"resource"`
	Amount   uint64                `json:"amount"`
}

type transportResponse struct {
	ShipmentID uint64 `json:"shipment_id"`
}

func (h *GameHandler) StartTransport(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "start_transport")

	var req transportRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !req.Resource.Valid() || req.Amount == 0 {
		response.Error(w, r, logger, errors.Validation("resource must be known and amount positive"))
		return
	}

	var (
		shipmentID uint64
		found, ok  bool
	)
	err := h.do(r, func(e *game.Engine) {
		if found = e.HasPlanet(req.From) && e.HasPlanet(req.To); found {
			shipmentID, ok = e.StartResourceTransport(req.From, req.To, req.Resource, req.Amount)
		}
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !found {
		response.Error(w, r, logger, errors.NotFoundf("transport endpoints %d -> %d not found", req.From, req.To))
		return
	}
	if !ok {
		response.Error(w, r, logger, errors.Conflictf("cannot ship %d %s from planet %d", req.Amount, req.Resource, req.From))
		return
	}
	response.Success(w, http.StatusCreated, transportResponse{ShipmentID: shipmentID})
}

type speedRequest struct {
	Speed universe.GameSpeed `json:"speed"`
}

func (h *GameHandler) SetSpeed(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "set_speed")

	var req speedRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if !req.Speed.Valid() {
		response.Error(w, r, logger, errors.Validationf("speed must be 1, 10, 100 or 1000, got %d", req.Speed))
		return
	}

	if err := h.do(r, func(e *game.Engine) { e.SetSpeed(req.Speed) }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, req)
}

type pauseResponse struct {
	Paused bool `json:"paused"`
}

func (h *GameHandler) TogglePause(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "toggle_pause")

	var paused bool
	if err := h.do(r, func(e *game.Engine) { paused = e.TogglePause() }); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	logger.Info("Pause toggled", "paused", paused)
	response.Success(w, http.StatusOK, pauseResponse{Paused: paused})
}

func (h *GameHandler) Save(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "save")

	if err := h.runner.SaveNow(r.Context()); err != nil {
		if stderrors.Is(err, game.ErrRunnerStopped) {
			err = errors.WrapUnavailable("simulation unavailable", err)
		} else {
			err = errors.WrapInternal("failed to save game", err)
		}
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusNoContent, nil)
}
