// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/branchout-app/branchout/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the groups collection. Every roster mutation is a single
// conditional update whose filter carries the full precondition, so two
// concurrent joins (or a join racing a leave) can never silently drop a
// member: the losing writer matches nothing and the state is re-read to
// report the precise error.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

var (
	ErrDuplicateGroupName = errors.New("a group with this name already exists")
	ErrNotOwner           = errors.New("user is not the owner of this group")
	ErrAlreadyMember      = errors.New("user is already in this group")
	ErrNotMember          = errors.New("user is not in this group")
	ErrResourceGroup      = errors.New("users cannot join resource groups")
	ErrNotResourceGroup   = errors.New("group does not hold resources")
	ErrResourceInGroup    = errors.New("resource is already in this group")
	ErrResourceNotInGroup = errors.New("resource is not in this group")
)

// GetByID loads a group. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByName loads a group by its folded name.
func (s *Store) GetByName(ctx context.Context, name string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(name)}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Create inserts a group with an empty roster and the caller as owner.
// Name uniqueness is global across resource and community groups; a folded
// collision returns ErrDuplicateGroupName. The badge gate for community
// groups belongs to the caller, never here.
func (s *Store) Create(ctx context.Context, owner primitive.ObjectID, name, description string, resource bool) (models.Group, error) {
	now := time.Now().UTC()
	g := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: description,
		Owner:       owner,
		Members:     []primitive.ObjectID{},
		Resource:    resource,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, err
	}
	return g, nil
}

// Join adds the user to a community group's roster. Fails with
// mongo.ErrNoDocuments (absent group), ErrResourceGroup, or
// ErrAlreadyMember (member or owner).
func (s *Store) Join(ctx context.Context, user, groupID primitive.ObjectID) (models.Group, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":      groupID,
			"resource": false,
			"owner":    bson.M{"$ne": user},
			"members":  bson.M{"$ne": user},
		},
		bson.M{
			"$addToSet": bson.M{"members": user},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return models.Group{}, err
	}
	if res.MatchedCount == 0 {
		g, err := s.GetByID(ctx, groupID)
		if err != nil {
			return models.Group{}, err
		}
		if g.Resource {
			return models.Group{}, ErrResourceGroup
		}
		return models.Group{}, ErrAlreadyMember
	}
	return s.GetByID(ctx, groupID)
}

// Leave removes the user from a group's roster. Absent group and
// non-member both mean there is no membership record to remove.
func (s *Store) Leave(ctx context.Context, user, groupID primitive.ObjectID) (models.Group, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "members": user},
		bson.M{
			"$pull": bson.M{"members": user},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return models.Group{}, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, groupID); err != nil {
			return models.Group{}, err
		}
		return models.Group{}, ErrNotMember
	}
	return s.GetByID(ctx, groupID)
}

// AddResource attaches a post/comment id to a resource group. Only the
// owner may do this, and only once per resource. The resource's existence
// is the caller's concern.
func (s *Store) AddResource(ctx context.Context, owner, resourceID, groupID primitive.ObjectID) (models.Group, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":      groupID,
			"resource": true,
			"owner":    owner,
			"members":  bson.M{"$ne": resourceID},
		},
		bson.M{
			"$addToSet": bson.M{"members": resourceID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return models.Group{}, err
	}
	if res.MatchedCount == 0 {
		g, err := s.GetByID(ctx, groupID)
		if err != nil {
			return models.Group{}, err
		}
		if !g.Resource {
			return models.Group{}, ErrNotResourceGroup
		}
		if g.Owner != owner {
			return models.Group{}, ErrNotOwner
		}
		return models.Group{}, ErrResourceInGroup
	}
	return s.GetByID(ctx, groupID)
}

// RemoveResource detaches a resource from a resource group; owner only.
func (s *Store) RemoveResource(ctx context.Context, owner, groupID, resourceID primitive.ObjectID) (models.Group, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "owner": owner, "members": resourceID},
		bson.M{
			"$pull": bson.M{"members": resourceID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return models.Group{}, err
	}
	if res.MatchedCount == 0 {
		g, err := s.GetByID(ctx, groupID)
		if err != nil {
			return models.Group{}, err
		}
		if g.Owner != owner {
			return models.Group{}, ErrNotOwner
		}
		return models.Group{}, ErrResourceNotInGroup
	}
	return s.GetByID(ctx, groupID)
}

// Delete removes a group by name. Hard delete: references to the id held
// elsewhere (posts, ledgers) are left dangling on purpose.
func (s *Store) Delete(ctx context.Context, owner primitive.ObjectID, name string) error {
	g, err := s.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if g.Owner != owner {
		return ErrNotOwner
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"_id": g.ID, "owner": owner})
	return err
}

// AssertOwner verifies the user owns the group. Intended to be called
// before UpdateName/UpdateDescription, which trust the caller.
func (s *Store) AssertOwner(ctx context.Context, groupID, user primitive.ObjectID) error {
	g, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g.Owner != user {
		return ErrNotOwner
	}
	return nil
}

// UpdateName renames a group. Caller must have asserted ownership.
func (s *Store) UpdateName(ctx context.Context, groupID primitive.ObjectID, name string) (models.Group, error) {
	_, err := s.c.UpdateByID(ctx, groupID, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, err
	}
	return s.GetByID(ctx, groupID)
}

// UpdateDescription replaces a group's description; empty clears it.
// Caller must have asserted ownership.
func (s *Store) UpdateDescription(ctx context.Context, groupID primitive.ObjectID, description string) (models.Group, error) {
	_, err := s.c.UpdateByID(ctx, groupID, bson.M{"$set": bson.M{
		"description": description,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return models.Group{}, err
	}
	return s.GetByID(ctx, groupID)
}

// List returns all groups, newest first.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	return s.find(ctx, bson.M{})
}

// ListResourceGroups returns all resource groups, newest first.
func (s *Store) ListResourceGroups(ctx context.Context) ([]models.Group, error) {
	return s.find(ctx, bson.M{"resource": true})
}

// ListForUser returns every group the user owns or is a member of.
// Membership is id equality on the user reference.
func (s *Store) ListForUser(ctx context.Context, user primitive.ObjectID) ([]models.Group, error) {
	return s.find(ctx, bson.M{"$or": []bson.M{
		{"owner": user},
		{"members": user},
	}})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
