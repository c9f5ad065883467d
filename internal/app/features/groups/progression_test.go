package groups_test

import (
	"net/http"
	"strings"
	"testing"

	commentsfeature "github.com/branchout-app/branchout/internal/app/features/comments"
	"github.com/branchout-app/branchout/internal/app/features/groups"
	loginfeature "github.com/branchout-app/branchout/internal/app/features/login"
	postsfeature "github.com/branchout-app/branchout/internal/app/features/posts"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/branchout-app/branchout/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Walks a brand-new account through every award path in order: first sign-in,
// joining a group, posting, and commenting. Each step must produce its badge
// through the real handler, and only once all gate badges are earned does
// community-group creation go through.
func TestBadgeProgression_SignInToGroupCreation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sessions := auth.NewSessionManager("test-session-key-0123456789ABCDEF", "branchout-test", "", false, logger)

	loginHandler := loginfeature.NewHandler(db, sessions, logger)
	groupsHandler := groups.NewHandler(db, logger)
	postsHandler := postsfeature.NewHandler(db, logger)
	commentsHandler := commentsfeature.NewHandler(db, logger)

	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	host := fixtures.CreateUser(ctx, "host")
	hostGroup := fixtures.CreateGroup(ctx, "Founders Circle", host.ID)

	sprout := fixtures.CreateUser(ctx, "sprout")

	// First sign-in creates the ledger and earns the account badge.
	rec := testutil.NewRecorder()
	loginHandler.HandleLogin(rec, testutil.NewJSONRequest("POST", "/login",
		strings.NewReader(`{"username": "sprout", "password": "test-password"}`)))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `Milestone \"Getting Started: Created Account\" received!`)

	// Group creation is still gated on the two content badges.
	rec = testutil.NewRecorder()
	groupsHandler.HandleCreate(rec, testutil.NewAuthenticatedJSONRequest("POST", "/groups",
		strings.NewReader(`{"name": "Too Early"}`), testutil.UserFor(sprout.ID, sprout.Username)))
	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "You are unable to create a group because you are missing the following badges: Comment Guru, Post Superstar")

	// Joining the host's group earns Building Community.
	req := testutil.NewAuthenticatedRequest("POST", "/groups/"+hostGroup.ID.Hex()+"/join", testutil.UserFor(sprout.ID, sprout.Username))
	req = testutil.WithChiURLParam(req, "id", hostGroup.ID.Hex())
	rec = testutil.NewRecorder()
	groupsHandler.HandleJoin(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `Milestone \"Building Community\" received!`)

	// A first post earns Post Superstar.
	rec = testutil.NewRecorder()
	postsHandler.HandleCreate(rec, testutil.NewAuthenticatedJSONRequest("POST", "/posts",
		strings.NewReader(`{"group_id": "`+hostGroup.ID.Hex()+`", "content": "hello everyone"}`),
		testutil.UserFor(sprout.ID, sprout.Username)))
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `Milestone \"Post Superstar\" received!`)

	var post models.Post
	if err := db.Collection("posts").FindOne(ctx, bson.M{"author": sprout.ID}).Decode(&post); err != nil {
		t.Fatalf("failed to load the new post: %v", err)
	}

	// A first comment earns Comment Guru, the last gate badge.
	rec = testutil.NewRecorder()
	commentsHandler.HandleCreate(rec, testutil.NewAuthenticatedJSONRequest("POST", "/comments",
		strings.NewReader(`{"post_id": "`+post.ID.Hex()+`", "content": "replying to myself"}`),
		testutil.UserFor(sprout.ID, sprout.Username)))
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, `Milestone \"Comment Guru\" received!`)

	// The gate now passes and the group starts with an empty roster.
	rec = testutil.NewRecorder()
	groupsHandler.HandleCreate(rec, testutil.NewAuthenticatedJSONRequest("POST", "/groups",
		strings.NewReader(`{"name": "Sprout Society", "description": "Earned the hard way"}`),
		testutil.UserFor(sprout.ID, sprout.Username)))
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Group created.")

	var created models.Group
	if err := db.Collection("groups").FindOne(ctx, bson.M{"name": "Sprout Society"}).Decode(&created); err != nil {
		t.Fatalf("failed to load the created group: %v", err)
	}
	if created.Owner != sprout.ID {
		t.Errorf("owner: got %s, want %s", created.Owner.Hex(), sprout.ID.Hex())
	}
	if len(created.Members) != 0 {
		t.Errorf("expected empty roster, got %d members", len(created.Members))
	}

	// The ledger shows four earned badges and an unearned Branching Out.
	count, err := db.Collection("milestones").CountDocuments(ctx, bson.M{
		"user_id": sprout.ID,
		"badges." + string(models.BadgeCreatedAccount):    true,
		"badges." + string(models.BadgeBuildingCommunity): true,
		"badges." + string(models.BadgePostSuperstar):     true,
		"badges." + string(models.BadgeCommentGuru):       true,
		"badges." + string(models.BadgeBranchingOut):      false,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Error("expected a ledger with exactly the four earned badges")
	}
}
