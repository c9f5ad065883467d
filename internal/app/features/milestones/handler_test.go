package milestones_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/branchout-app/branchout/internal/app/features/milestones"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/branchout-app/branchout/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*milestones.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := milestones.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleGet_ReturnsLedger(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "badgeholder")
	fixtures.CreateMilestones(ctx, user.ID, models.BadgeCreatedAccount, models.BadgePostSuperstar)

	req := testutil.NewAuthenticatedRequest("GET", "/milestones", testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleGet(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"Post Superstar":true`)
	rec.AssertContains(t, `"Comment Guru":false`)
}

func TestHandleGet_NoLedger(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "fresh")

	req := testutil.NewAuthenticatedRequest("GET", "/milestones", testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleGet(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "No milestones ledger for this account yet.")
}

func TestHandleInitialize(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "migrated")

	req := testutil.NewAuthenticatedRequest("POST", "/milestones", testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleInitialize(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Milestones initialized.")

	// Every catalogue badge starts unearned.
	for _, b := range models.BadgeCatalogue() {
		rec.AssertContains(t, `"`+string(b)+`":false`)
	}
}

func TestHandleInitialize_Twice(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "repeat")
	fixtures.CreateMilestones(ctx, user.ID, models.BadgeBranchingOut)

	req := testutil.NewAuthenticatedRequest("POST", "/milestones", testutil.UserFor(user.ID, user.Username))
	rec := testutil.NewRecorder()

	handler.HandleInitialize(rec, req)

	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "Milestones already initialized.")

	// The existing ledger is untouched.
	getReq := testutil.NewAuthenticatedRequest("GET", "/milestones", testutil.UserFor(user.ID, user.Username))
	getRec := testutil.NewRecorder()
	handler.HandleGet(getRec, getReq)
	getRec.AssertStatus(t, http.StatusOK)
	if !strings.Contains(getRec.Body.String(), `"Branching Out":true`) {
		t.Errorf("expected earned badge to survive a duplicate initialize; body: %s", getRec.Body.String())
	}
}
