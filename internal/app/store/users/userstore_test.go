package userstore_test

import (
	"testing"

	userstore "github.com/branchout-app/branchout/internal/app/store/users"
	"github.com/branchout-app/branchout/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user, err := store.Create(ctx, "alice", "secret-password")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if user.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if user.Username != "alice" {
		t.Errorf("Username: got %q, want %q", user.Username, "alice")
	}
	if user.UsernameCI != "alice" {
		t.Errorf("UsernameCI: got %q, want %q", user.UsernameCI, "alice")
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret-password" {
		t.Error("expected password to be stored hashed")
	}
}

func TestStore_Create_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "bob", "pw-one"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, "BOB", "pw-two")
	if err != userstore.ErrDuplicateUsername {
		t.Errorf("expected ErrDuplicateUsername for case-variant, got %v", err)
	}
}

func TestStore_Create_EmptyFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "", "password"); err == nil {
		t.Error("expected error for empty username")
	}
	if _, err := store.Create(ctx, "carol", ""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestStore_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "dave", "correct horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	user, err := store.Authenticate(ctx, "Dave", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("ID: got %v, want %v", user.ID, created.ID)
	}
}

func TestStore_Authenticate_BadCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "erin", "right"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Wrong password and unknown user look the same to the caller.
	if _, err := store.Authenticate(ctx, "erin", "wrong"); err != userstore.ErrBadCredentials {
		t.Errorf("wrong password: expected ErrBadCredentials, got %v", err)
	}
	if _, err := store.Authenticate(ctx, "nobody", "right"); err != userstore.ErrBadCredentials {
		t.Errorf("unknown user: expected ErrBadCredentials, got %v", err)
	}
}

func TestStore_GetByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "Frank", "pw")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByUsername(ctx, "frank")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"zoe", "amy", "mia"} {
		if _, err := store.Create(ctx, name, "pw"); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	want := []string{"amy", "mia", "zoe"}
	for i, u := range users {
		if u.Username != want[i] {
			t.Errorf("users[%d]: got %q, want %q", i, u.Username, want[i])
		}
	}
}
