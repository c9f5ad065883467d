package poststore_test

import (
	"errors"
	"testing"

	poststore "github.com/branchout-app/branchout/internal/app/store/posts"
	"github.com/branchout-app/branchout/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := primitive.NewObjectID()
	group := primitive.NewObjectID()

	post, err := store.Create(ctx, author, group, "hello world")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if post.Author != author || post.GroupID != group {
		t.Error("author/group not stored as given")
	}
}

func TestStore_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	post, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "x")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := store.Exists(ctx, post.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("expected Exists true for stored post")
	}

	ok, err = store.Exists(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("expected Exists false for unknown id")
	}
}

func TestStore_ListByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := primitive.NewObjectID()
	group := primitive.NewObjectID()

	if _, err := store.Create(ctx, author, group, "first"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, author, group, "second")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, author, primitive.NewObjectID(), "elsewhere"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := store.ListByGroup(ctx, group)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != second.ID {
		t.Error("expected posts sorted newest first")
	}
}

func TestStore_UpdateContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := primitive.NewObjectID()
	post, err := store.Create(ctx, author, primitive.NewObjectID(), "before")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.UpdateContent(ctx, post.ID, author, "after")
	if err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	if updated.Content != "after" {
		t.Errorf("Content: got %q, want %q", updated.Content, "after")
	}

	stored, err := store.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Content != "after" {
		t.Errorf("stored Content: got %q, want %q", stored.Content, "after")
	}
}

func TestStore_UpdateContent_WrongAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	post, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "before")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.UpdateContent(ctx, post.ID, primitive.NewObjectID(), "after"); !errors.Is(err, poststore.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}

	kept, err := store.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if kept.Content != "before" {
		t.Errorf("Content: got %q, want unchanged %q", kept.Content, "before")
	}
}

func TestStore_UpdateContent_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.UpdateContent(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "x"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := primitive.NewObjectID()
	post, err := store.Create(ctx, author, primitive.NewObjectID(), "gone soon")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, post.ID, author); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, post.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected post gone, got %v", err)
	}
}

func TestStore_Delete_WrongAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	post, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "kept")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, post.ID, primitive.NewObjectID()); !errors.Is(err, poststore.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
	if _, err := store.GetByID(ctx, post.ID); err != nil {
		t.Fatalf("expected post kept, got %v", err)
	}
}

func TestStore_ListByAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := primitive.NewObjectID()

	if _, err := store.Create(ctx, author, primitive.NewObjectID(), "mine"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "theirs"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := store.ListByAuthor(ctx, author)
	if err != nil {
		t.Fatalf("ListByAuthor failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Content != "mine" {
		t.Errorf("Content: got %q, want %q", posts[0].Content, "mine")
	}
}
