package indexes_test

import (
	"testing"

	"github.com/branchout-app/branchout/internal/app/system/indexes"
	"github.com/branchout-app/branchout/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// SetupTestDB already ran EnsureAll once; this exercises the
	// reuse path as well as a clean run.
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_CreatesExpectedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expected := map[string][]string{
		"users": {
			"uniq_users_usernameci",
		},
		"groups": {
			"uniq_groups_nameci",
			"idx_groups_owner__id",
			"idx_groups_members",
			"idx_groups_resource__id",
		},
		"milestones": {
			"uniq_milestones_user",
		},
		"posts": {
			"idx_posts_author__id",
			"idx_posts_group__id",
		},
		"comments": {
			"idx_comments_author__id",
			"idx_comments_post__id",
		},
		"locations": {
			"uniq_locations_user",
			"idx_locations_cityci_stateci",
		},
		"login_records": {
			"idx_logins_user_created",
			"idx_logins_created",
		},
	}

	for coll, want := range expected {
		names := indexNames(t, db, coll)
		for _, name := range want {
			if !names[name] {
				t.Errorf("expected index %q to exist on %s collection", name, coll)
			}
		}
	}
}

func TestEnsureAll_UniqueIndexEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection("groups").InsertOne(ctx, bson.M{"name_ci": "hiking club"})
	if err != nil {
		t.Fatalf("Insert group failed: %v", err)
	}

	_, err = db.Collection("groups").InsertOne(ctx, bson.M{"name_ci": "hiking club"})
	if err == nil {
		t.Error("expected duplicate key error for unique index on groups.name_ci")
	}
}
