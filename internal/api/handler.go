package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"risk_service/internal/core"
	"risk_service/internal/domain/model"
	"risk_service/internal/ws"
)

// Resolver runs the point-to-risk pipeline.
type Resolver interface {
	Resolve(ctx context.Context, point model.GeoPoint) (*model.Resolution, error)
	NearbyPoints(lat, lng float64, count int) []model.RiskPoint
}

// HistoryLister reads back persisted resolutions.
type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error)
}

// ResolutionPublisher emits resolved selections to the event stream.
type ResolutionPublisher interface {
	PublishResolution(ctx context.Context, res *model.Resolution) error
}

type Handler struct {
	resolver   Resolver
	selections *core.SelectionStore
	history    HistoryLister
	publisher  ResolutionPublisher
	hub        *ws.Hub
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewHandler wires the HTTP surface. history, publisher and hub may be nil
// when the corresponding backend is not configured.
func NewHandler(resolver Resolver, selections *core.SelectionStore, history HistoryLister, publisher ResolutionPublisher, hub *ws.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		resolver:   resolver,
		selections: selections,
		history:    history,
		publisher:  publisher,
		hub:        hub,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type selectionRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	ClientID string  `json:"client_id"`
}

// handleCreateSelection resolves a clicked point. The response always
// carries a complete resolution; degraded upstream calls surface as
// warnings, never as errors.
func (h *Handler) handleCreateSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ClientID == "" {
		req.ClientID = "default"
	}

	point := model.GeoPoint{Lat: req.Lat, Lng: req.Lng}
	if !point.InPeru() {
		writeError(w, http.StatusBadRequest, "point is outside Peru bounds")
		return
	}

	token := h.selections.Begin(req.ClientID)

	res, err := h.resolver.Resolve(r.Context(), point)
	if err != nil {
		h.selections.Clear(req.ClientID)
		if errors.Is(err, core.ErrGeocoderUnavailable) {
			writeError(w, http.StatusServiceUnavailable,
				"El servicio de geocodificación no está disponible.")
			return
		}
		h.logger.Error("resolve failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve selection")
		return
	}
	res.Token = token

	if !h.selections.Complete(req.ClientID, token, res) {
		// A newer click replaced this selection while we were resolving.
		writeJSON(w, http.StatusOK, map[string]any{
			"stale":      true,
			"resolution": res,
		})
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishResolution(r.Context(), res); err != nil {
			h.logger.Warn("failed to publish resolution", "error", err)
		}
	}
	if h.hub != nil {
		h.hub.BroadcastResolution(res)
	}

	writeJSON(w, http.StatusOK, res)
}

// handleGetSelection returns the client's current selection, if any.
func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = "default"
	}

	res, state, ok := h.selections.Get(clientID)
	if !ok {
		writeError(w, http.StatusNotFound, "no active selection")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":      state,
		"resolution": res,
	})
}

func (h *Handler) handleDeleteSelection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = "default"
	}
	h.selections.Clear(clientID)
	w.WriteHeader(http.StatusNoContent)
}

// handleNearby returns the synthetic scatter for a map viewport without
// running the full pipeline.
func (h *Handler) handleNearby(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	point := model.GeoPoint{Lat: lat, Lng: lng}
	if !point.InPeru() {
		writeError(w, http.StatusBadRequest, "point is outside Peru bounds")
		return
	}

	count := 0
	if c, err := strconv.Atoi(r.URL.Query().Get("count")); err == nil {
		count = c
	}

	writeJSON(w, http.StatusOK, h.resolver.NearbyPoints(lat, lng, count))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, "history is not enabled")
		return
	}

	limit := 20
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = l
	}

	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleWebsocket upgrades the connection and attaches it to the hub.
func (h *Handler) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		writeError(w, http.StatusNotFound, "websocket streaming is not enabled")
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	client := ws.NewClient(h.hub, conn, h.logger)
	client.Register()
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
