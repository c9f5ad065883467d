// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"errors"
	"time"

	"github.com/branchout-app/branchout/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// ErrNotAuthor means the caller tried to edit or delete someone else's post.
var ErrNotAuthor = errors.New("user is not the author of this post")

// Create inserts a post. Group membership is the caller's concern.
func (s *Store) Create(ctx context.Context, author, groupID primitive.ObjectID, content string) (models.Post, error) {
	now := time.Now().UTC()
	p := models.Post{
		ID:        primitive.NewObjectID(),
		Author:    author,
		GroupID:   groupID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// GetByID loads a post. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Exists reports whether a post with this id exists. Used by the resource
// existence check when attaching to resource groups.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateContent replaces the post's content. The author precondition rides
// in the filter; a miss is re-read to tell an absent post from someone
// else's.
func (s *Store) UpdateContent(ctx context.Context, id, author primitive.ObjectID, content string) (models.Post, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "author": author},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return models.Post{}, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return models.Post{}, err
		}
		return models.Post{}, ErrNotAuthor
	}
	return s.GetByID(ctx, id)
}

// Delete removes the author's post. Fails with mongo.ErrNoDocuments (absent
// post) or ErrNotAuthor.
func (s *Store) Delete(ctx context.Context, id, author primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "author": author})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNotAuthor
	}
	return nil
}

// List returns all posts, newest first.
func (s *Store) List(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, bson.M{})
}

// ListByAuthor returns the author's posts, newest first.
func (s *Store) ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"author": author})
}

// ListByGroup returns all posts in a group, newest first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"group_id": groupID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
