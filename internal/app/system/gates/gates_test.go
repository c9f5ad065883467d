package gates_test

import (
	"strings"
	"testing"

	"github.com/branchout-app/branchout/internal/app/system/gates"
	"github.com/branchout-app/branchout/internal/domain/models"
)

func entryWith(earned ...models.Badge) *models.MilestoneEntry {
	badges := make(map[models.Badge]bool, len(models.BadgeCatalogue()))
	for _, b := range models.BadgeCatalogue() {
		badges[b] = false
	}
	for _, b := range earned {
		badges[b] = true
	}
	return &models.MilestoneEntry{Badges: badges}
}

func TestMissingForCommunityGroup_NoLedger(t *testing.T) {
	missing := gates.MissingForCommunityGroup(nil)
	if len(missing) != 3 {
		t.Fatalf("expected all 3 badges missing, got %v", missing)
	}
}

func TestMissingForCommunityGroup_FreshLedger(t *testing.T) {
	missing := gates.MissingForCommunityGroup(entryWith())
	if len(missing) != 3 {
		t.Fatalf("expected all 3 badges missing, got %v", missing)
	}
}

func TestMissingForCommunityGroup_TwoOfThree(t *testing.T) {
	missing := gates.MissingForCommunityGroup(entryWith(
		models.BadgeCreatedAccount,
		models.BadgePostSuperstar,
	))
	if len(missing) != 1 || missing[0] != models.BadgeCommentGuru {
		t.Fatalf("expected exactly Comment Guru missing, got %v", missing)
	}
}

func TestMissingForCommunityGroup_AllHeld(t *testing.T) {
	missing := gates.MissingForCommunityGroup(entryWith(
		models.BadgeCreatedAccount,
		models.BadgePostSuperstar,
		models.BadgeCommentGuru,
	))
	if len(missing) != 0 {
		t.Fatalf("expected gate open, got missing %v", missing)
	}
}

func TestMissingForCommunityGroup_UnrelatedBadgesIgnored(t *testing.T) {
	missing := gates.MissingForCommunityGroup(entryWith(
		models.BadgeBuildingCommunity,
		models.BadgeBranchingOut,
	))
	if len(missing) != 3 {
		t.Fatalf("unrelated badges must not open the gate, got %v", missing)
	}
}

func TestRefusalMessage(t *testing.T) {
	msg := gates.RefusalMessage([]models.Badge{models.BadgeCommentGuru})
	if !strings.Contains(msg, "Comment Guru") {
		t.Errorf("expected the missing badge to be named, got %q", msg)
	}
	if strings.Contains(msg, "Post Superstar") {
		t.Errorf("message must list only missing badges, got %q", msg)
	}
}
