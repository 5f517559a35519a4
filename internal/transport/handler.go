// Package transport exposes the driver's read-only HTTP API: terminal
// outcomes and the per-auction competition audit trail.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/clearbid/driver-backend/internal/model"
)

// Ledger is the read access the API needs.
type Ledger interface {
	OutcomeByAuction(ctx context.Context, auctionID int64) (*model.Outcome, error)
	CompetitionByAuction(ctx context.Context, auctionID int64) ([]model.CompetitionEntry, error)
}

// Handler serves the read-only API.
type Handler struct {
	logger *zap.Logger
	ledger Ledger
}

// NewHandler builds the API handler.
func NewHandler(ledger Ledger, logger *zap.Logger) *Handler {
	return &Handler{logger: logger, ledger: ledger}
}

// Router assembles the HTTP routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/outcomes/{auctionID}", h.outcome)
		r.Get("/solver_competition/{auctionID}", h.competition)
	})
	return r
}

type outcomeResponse struct {
	AuctionID     int64      `json:"auctionId"`
	Reason        string     `json:"reason"`
	WinningSolver string     `json:"winningSolver,omitempty"`
	OrderUIDs     []string   `json:"orderUids"`
	TxHash        string     `json:"txHash,omitempty"`
	BlockNumber   *uint64    `json:"blockNumber,omitempty"`
	Detail        string     `json:"detail,omitempty"`
	RecordedAt    time.Time  `json:"recordedAt"`
	ReorgedAt     *time.Time `json:"reorgedAt,omitempty"`
	Anomaly       string     `json:"anomaly,omitempty"`
}

type competitionEntryResponse struct {
	Solver        string    `json:"solver"`
	Score         string    `json:"score"`
	OrderUIDs     []string  `json:"orderUids"`
	InvalidReason string    `json:"invalidReason,omitempty"`
	ArrivedAt     time.Time `json:"arrivedAt"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) outcome(w http.ResponseWriter, r *http.Request) {
	auctionID, err := auctionIDParam(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	outcome, err := h.ledger.OutcomeByAuction(r.Context(), auctionID)
	if err != nil {
		h.logger.Error("load outcome", zap.Int64("auction_id", auctionID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	if outcome == nil {
		h.respondError(w, http.StatusNotFound, errors.New("no outcome for auction"))
		return
	}

	resp := outcomeResponse{
		AuctionID:     outcome.AuctionID,
		Reason:        string(outcome.Reason),
		WinningSolver: outcome.WinningSolver,
		OrderUIDs:     uidStrings(outcome.OrderUIDs),
		BlockNumber:   outcome.BlockNumber,
		Detail:        outcome.Detail,
		RecordedAt:    outcome.RecordedAt,
		ReorgedAt:     outcome.ReorgedAt,
		Anomaly:       outcome.Anomaly,
	}
	if outcome.TxHash != nil {
		resp.TxHash = outcome.TxHash.Hex()
	}
	h.respond(w, http.StatusOK, resp)
}

func (h *Handler) competition(w http.ResponseWriter, r *http.Request) {
	auctionID, err := auctionIDParam(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	entries, err := h.ledger.CompetitionByAuction(r.Context(), auctionID)
	if err != nil {
		h.logger.Error("load competition", zap.Int64("auction_id", auctionID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	if len(entries) == 0 {
		h.respondError(w, http.StatusNotFound, errors.New("no competition data for auction"))
		return
	}

	resp := make([]competitionEntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = competitionEntryResponse{
			Solver:        entry.Solver,
			Score:         entry.Score.String(),
			OrderUIDs:     uidStrings(entry.OrderUIDs),
			InvalidReason: entry.InvalidReason,
			ArrivedAt:     entry.ArrivedAt,
		}
	}
	h.respond(w, http.StatusOK, resp)
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, err error) {
	h.respond(w, status, map[string]string{"error": err.Error()})
}

func auctionIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "auctionID")
	auctionID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || auctionID <= 0 {
		return 0, errors.New("auction id must be a positive integer")
	}
	return auctionID, nil
}

func uidStrings(uids []model.OrderUID) []string {
	out := make([]string, len(uids))
	for i, uid := range uids {
		out[i] = uid.String()
	}
	return out
}
