package maps_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/branchout-app/branchout/internal/app/features/maps"
	"github.com/branchout-app/branchout/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*maps.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := maps.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleSet(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "settler")

	body := strings.NewReader(`{"city": "Columbia", "state": "Missouri"}`)
	req := testutil.NewAuthenticatedJSONRequest("POST", "/location", body, testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleSet(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Location saved.")

	count, err := fixtures.DB().Collection("locations").CountDocuments(ctx, bson.M{"user_id": user.ID, "city": "Columbia"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 location, got %d", count)
	}
}

func TestHandleSet_Twice(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "mover")
	fixtures.CreateLocation(ctx, user.ID, "Austin", "Texas")

	body := strings.NewReader(`{"city": "Dallas", "state": "Texas"}`)
	req := testutil.NewAuthenticatedJSONRequest("POST", "/location", body, testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleSet(rec, req)

	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "Location already set; update it instead.")
}

func TestHandleUpdate_NoLocation(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "drifter")

	body := strings.NewReader(`{"city": "Nowhere", "state": "Kansas"}`)
	req := testutil.NewAuthenticatedJSONRequest("PUT", "/location", body, testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleUpdate(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "No location set.")
}

func TestHandleUpdate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "relocator")
	fixtures.CreateLocation(ctx, user.ID, "Portland", "Oregon")

	body := strings.NewReader(`{"city": "Eugene", "state": "Oregon"}`)
	req := testutil.NewAuthenticatedJSONRequest("PUT", "/location", body, testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleUpdate(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Location updated.")
	rec.AssertContains(t, "Eugene")
}

func TestHandleNearby_AwardsBranchingOut(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "searcher")
	fixtures.CreateLocation(ctx, user.ID, "Madison", "Wisconsin")
	fixtures.CreateMilestones(ctx, user.ID)

	neighbor := fixtures.CreateUser(ctx, "neighbor")
	fixtures.CreateLocation(ctx, neighbor.ID, "madison", "WISCONSIN")

	farAway := fixtures.CreateUser(ctx, "faraway")
	fixtures.CreateLocation(ctx, farAway.ID, "Madison", "Alabama")

	req := testutil.NewAuthenticatedRequest("GET", "/location/nearby", testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleNearby(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Nearby users found.")
	rec.AssertContains(t, `Milestone \"Branching Out\" received!`)
	rec.AssertContains(t, neighbor.ID.Hex())
	if strings.Contains(rec.Body.String(), farAway.ID.Hex()) {
		t.Errorf("expected only same-state matches; body: %s", rec.Body.String())
	}
	if strings.Count(rec.Body.String(), user.ID.Hex()) > 0 {
		t.Errorf("expected the caller excluded from results; body: %s", rec.Body.String())
	}
}

func TestHandleNearby_NoLocation(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "lost")

	req := testutil.NewAuthenticatedRequest("GET", "/location/nearby", testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleNearby(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Set your location before searching nearby.")
}

func TestHandleDelete(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "leaver")
	fixtures.CreateLocation(ctx, user.ID, "Denver", "Colorado")

	req := testutil.NewAuthenticatedRequest("DELETE", "/location", testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleDelete(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Location deleted.")

	count, err := fixtures.DB().Collection("locations").CountDocuments(ctx, bson.M{"user_id": user.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no locations after delete, got %d", count)
	}
}
