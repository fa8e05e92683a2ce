package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/campusmarket/recommender/internal/domain"
	"github.com/campusmarket/recommender/internal/service"
)

// RecommendationReader reads previously persisted recommendation lists.
type RecommendationReader interface {
	FetchRecommendations(ctx context.Context, userID string) (domain.Recommendations, error)
}

// APIHandlers exposes HTTP handlers for the recommendations API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.RecommendationService
	reader  RecommendationReader
	workers int
}

// NewAPIHandlers constructs an APIHandlers instance. workers bounds the batch
// fan-out triggered by refresh requests.
func NewAPIHandlers(logger *slog.Logger, svc *service.RecommendationService, reader RecommendationReader, workers int) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
		reader:  reader,
		workers: workers,
	}
}

func (h *APIHandlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload refreshRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if payload.UserID != "" {
		rec, err := h.service.RecomputeUser(r.Context(), payload.UserID)
		if err != nil {
			h.logger.Error("failed to recompute recommendations", "error", err, "userId", payload.UserID)
			writeError(w, http.StatusInternalServerError, "failed to recompute recommendations")
			return
		}
		respondJSON(w, http.StatusOK, refreshUserResponse{
			UserID:          payload.UserID,
			ForUserCount:    len(rec.ForUser),
			FromFriendCount: len(rec.FromFriends),
		})
		return
	}

	result, err := h.service.RecomputeAll(r.Context(), h.workers)
	if err != nil {
		h.logger.Error("batch recomputation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "batch recomputation failed")
		return
	}

	resp := refreshBatchResponse{
		RunID:     result.RunID,
		Processed: result.Processed,
	}
	for userID, userErr := range result.Failed {
		resp.FailedUsers = append(resp.FailedUsers, failedUser{UserID: userID, Error: userErr.Error()})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/recommendations/")
	userID = strings.Trim(userID, "/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	rec, err := h.reader.FetchRecommendations(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to fetch recommendations", "error", err, "userId", userID)
		writeError(w, http.StatusInternalServerError, "failed to fetch recommendations")
		return
	}

	resp := recommendationsResponse{
		UserID:      userID,
		ForUser:     []recommendationEntry{},
		FromFriends: []recommendationEntry{},
	}
	for _, entry := range rec.ForUser {
		resp.ForUser = append(resp.ForUser, toEntryResponse(entry))
	}
	for _, entry := range rec.FromFriends {
		resp.FromFriends = append(resp.FromFriends, toEntryResponse(entry))
	}

	respondJSON(w, http.StatusOK, resp)
}

// --- Request & Response DTOs ---

type refreshRequest struct {
	UserID string `json:"userId"`
}

type refreshUserResponse struct {
	UserID          string `json:"userId"`
	ForUserCount    int    `json:"userRecommendations"`
	FromFriendCount int    `json:"friendsRecommendations"`
}

type failedUser struct {
	UserID string `json:"userId"`
	Error  string `json:"error"`
}

type refreshBatchResponse struct {
	RunID       string       `json:"runId"`
	Processed   int          `json:"processed"`
	FailedUsers []failedUser `json:"failedUsers,omitempty"`
}

type recommendationEntry struct {
	ItemID        string  `json:"itemId"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	SellerName    string  `json:"sellerName"`
	ImageURL      string  `json:"imageUrl"`
	PurchaseCount int     `json:"purchaseCount"`
	Source        string  `json:"source"`
}

type recommendationsResponse struct {
	UserID      string                `json:"userId"`
	ForUser     []recommendationEntry `json:"userRecommendations"`
	FromFriends []recommendationEntry `json:"friendsRecommendations"`
}

func toEntryResponse(entry domain.RecommendationEntry) recommendationEntry {
	return recommendationEntry{
		ItemID:        entry.ID,
		Category:      entry.Category,
		Description:   entry.Description,
		Price:         entry.Price,
		Quantity:      entry.Quantity,
		SellerName:    entry.SellerName,
		ImageURL:      entry.ImageURL,
		PurchaseCount: entry.PurchaseCount,
		Source:        entry.Source,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
