// internal/app/system/gates/gates.go

// Package gates holds the badge preconditions applied before privileged
// actions. Gates are pure functions over a ledger snapshot so they can be
// checked in one place by the handler and unit-tested without a database.
package gates

import (
	"fmt"
	"strings"

	"github.com/branchout-app/branchout/internal/domain/models"
)

// CommunityGroupBadges are the badges a user must hold before creating a
// community group. Resource-group creation is ungated.
var CommunityGroupBadges = []models.Badge{
	models.BadgeCommentGuru,
	models.BadgePostSuperstar,
	models.BadgeCreatedAccount,
}

// MissingForCommunityGroup returns the required badges the entry does not
// hold, in the order of CommunityGroupBadges. A nil entry (no ledger yet)
// is missing all of them. An empty result means the gate is open.
func MissingForCommunityGroup(entry *models.MilestoneEntry) []models.Badge {
	var missing []models.Badge
	for _, b := range CommunityGroupBadges {
		if entry == nil || !entry.Earned(b) {
			missing = append(missing, b)
		}
	}
	return missing
}

// RefusalMessage formats the message returned to a caller blocked by the
// gate, naming exactly the badges still missing.
func RefusalMessage(missing []models.Badge) string {
	names := make([]string, len(missing))
	for i, b := range missing {
		names[i] = string(b)
	}
	return fmt.Sprintf("You are unable to create a group because you are missing the following badges: %s", strings.Join(names, ", "))
}
