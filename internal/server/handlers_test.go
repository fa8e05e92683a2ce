package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusmarket/recommender/internal/domain"
	"github.com/campusmarket/recommender/internal/service"
	"github.com/campusmarket/recommender/internal/store"
)

func testHandlers(t *testing.T) (*APIHandlers, *store.MemoryClient) {
	t.Helper()
	mem := store.NewMemoryClient()
	ctx := context.Background()

	if err := mem.SeedUsers(ctx, []domain.User{
		{ID: "U1", FriendIDs: []string{"U2"}},
		{ID: "U2"},
	}); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	if err := mem.SeedListings(ctx, []domain.MarketplaceItem{
		{ID: "a1", Category: "books", SellerID: "s1"},
		{ID: "b1", Category: "books", SellerID: "s2"},
	}); err != nil {
		t.Fatalf("seed listings: %v", err)
	}
	if err := mem.SeedPurchases(ctx, []domain.Purchase{
		{UserID: "U1", ItemID: "a1"},
		{UserID: "U2", ItemID: "b1"},
	}); err != nil {
		t.Fatalf("seed purchases: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewRecommendationService(mem, mem, logger, 10)
	return NewAPIHandlers(logger, svc, mem, 2), mem
}

func TestHandleRefreshSingleUser(t *testing.T) {
	handlers, mem := testHandlers(t)

	body := bytes.NewBufferString(`{"userId":"U1"}`)
	req := httptest.NewRequest(http.MethodPost, "/recommendations/refresh", body)
	rec := httptest.NewRecorder()

	handlers.handleRefresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload refreshUserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.UserID != "U1" {
		t.Fatalf("expected userId U1, got %s", payload.UserID)
	}
	if _, ok := mem.Written()["U1"]; !ok {
		t.Fatal("refresh did not persist recommendations")
	}
	if _, ok := mem.Written()["U2"]; ok {
		t.Fatal("single-user refresh must not touch other users")
	}
}

func TestHandleRefreshAllUsers(t *testing.T) {
	handlers, mem := testHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/recommendations/refresh", nil)
	rec := httptest.NewRecorder()

	handlers.handleRefresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload refreshBatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Processed != 2 {
		t.Fatalf("expected 2 processed users, got %d", payload.Processed)
	}
	if payload.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if len(payload.FailedUsers) != 0 {
		t.Fatalf("expected no failures, got %v", payload.FailedUsers)
	}
	if got := len(mem.Written()); got != 2 {
		t.Fatalf("expected recommendations written for 2 users, got %d", got)
	}
}

func TestHandleRecommendations(t *testing.T) {
	handlers, _ := testHandlers(t)

	// Populate the sink first.
	refreshReq := httptest.NewRequest(http.MethodPost, "/recommendations/refresh", bytes.NewBufferString(`{"userId":"U1"}`))
	handlers.handleRefresh(httptest.NewRecorder(), refreshReq)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/U1", nil)
	rec := httptest.NewRecorder()

	handlers.handleRecommendations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload recommendationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// U1 purchased a1 (books); b1 shares the category and U2 bought it.
	if len(payload.ForUser) != 1 || payload.ForUser[0].ItemID != "b1" {
		t.Fatalf("unexpected userRecommendations: %+v", payload.ForUser)
	}
	if len(payload.FromFriends) != 1 || payload.FromFriends[0].PurchaseCount != 1 {
		t.Fatalf("unexpected friendsRecommendations: %+v", payload.FromFriends)
	}
}

func TestHandleRecommendationsMissingID(t *testing.T) {
	handlers, _ := testHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/", nil)
	rec := httptest.NewRecorder()

	handlers.handleRecommendations(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleRefreshRejectsGet(t *testing.T) {
	handlers, _ := testHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/refresh", nil)
	rec := httptest.NewRecorder()

	handlers.handleRefresh(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
