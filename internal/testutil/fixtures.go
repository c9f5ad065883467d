package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/branchout-app/branchout/internal/app/system/authutil"
	"github.com/branchout-app/branchout/internal/app/system/normalize"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given username. The password is
// always "test-password".
func (f *Fixtures) CreateUser(ctx context.Context, username string) models.User {
	f.t.Helper()

	hash, err := authutil.HashPassword("test-password")
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   normalize.Username(username),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateGroup creates a community group owned by owner, with the given
// members already joined.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, owner primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()
	return f.createGroup(ctx, name, owner, false, members)
}

// CreateResourceGroup creates a resource group owned by owner, with the
// given resource ids already attached.
func (f *Fixtures) CreateResourceGroup(ctx context.Context, name string, owner primitive.ObjectID, resources ...primitive.ObjectID) models.Group {
	f.t.Helper()
	return f.createGroup(ctx, name, owner, true, resources)
}

func (f *Fixtures) createGroup(ctx context.Context, name string, owner primitive.ObjectID, resource bool, members []primitive.ObjectID) models.Group {
	f.t.Helper()

	if members == nil {
		members = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test group description",
		Owner:       owner,
		Members:     members,
		Resource:    resource,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

// CreateMilestones creates a badge ledger for the user with the given
// badges earned and every other catalogue badge unearned.
func (f *Fixtures) CreateMilestones(ctx context.Context, userID primitive.ObjectID, earned ...models.Badge) models.MilestoneEntry {
	f.t.Helper()

	badges := make(map[models.Badge]bool, len(models.BadgeCatalogue()))
	for _, b := range models.BadgeCatalogue() {
		badges[b] = false
	}
	for _, b := range earned {
		badges[b] = true
	}

	now := time.Now().UTC()
	entry := models.MilestoneEntry{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Badges:    badges,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("milestones").InsertOne(ctx, entry); err != nil {
		f.t.Fatalf("failed to create test milestones: %v", err)
	}

	return entry
}

// CreatePost creates a test post authored by author in the given group.
func (f *Fixtures) CreatePost(ctx context.Context, author, groupID primitive.ObjectID, content string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Author:    author,
		GroupID:   groupID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}

	return post
}

// CreateComment creates a test comment by author on the given post.
func (f *Fixtures) CreateComment(ctx context.Context, author, postID primitive.ObjectID, content string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Author:    author,
		PostID:    postID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}

	return comment
}

// CreateLocation creates a test location for the user.
func (f *Fixtures) CreateLocation(ctx context.Context, userID primitive.ObjectID, city, state string) models.Location {
	f.t.Helper()

	now := time.Now().UTC()
	loc := models.Location{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		City:      city,
		CityCI:    text.Fold(city),
		State:     state,
		StateCI:   text.Fold(state),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("locations").InsertOne(ctx, loc); err != nil {
		f.t.Fatalf("failed to create test location: %v", err)
	}

	return loc
}
