// internal/app/store/comments/commentstore.go
package commentstore

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

// ErrNotAuthor means the caller tried to edit or delete someone else's comment.
var ErrNotAuthor = errors.New("user is not the author of this comment")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// Create inserts a comment. The post's existence is the caller's concern.
func (s *Store) Create(ctx context.Context, author, postID primitive.ObjectID, content string) (models.Comment, error) {
	now := time.Now().UTC()
	c := models.Comment{
		ID:        primitive.NewObjectID(),
		Author:    author,
		PostID:    postID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// GetByID loads a comment. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	var c models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// Exists reports whether a comment with this id exists.
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

// UpdateContent replaces the comment's content. The author precondition
// rides in the filter; a miss is re-read to tell an absent comment from
// someone else's.
func (s *Store) UpdateContent(ctx context.Context, id, author primitive.ObjectID, content string) (models.Comment, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "author": author},
		bson.M{"$set": bson.M{"content": content, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return models.Comment{}, err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return models.Comment{}, err
		}
		return models.Comment{}, ErrNotAuthor
	}
	return s.GetByID(ctx, id)
}

// Delete removes the author's comment. Fails with mongo.ErrNoDocuments
// (absent comment) or ErrNotAuthor.
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

// List returns all comments, newest first.
func (s *Store) List(ctx context.Context) ([]models.Comment, error) {
	return s.find(ctx, bson.M{})
}

// ListByAuthor returns the author's comments, newest first.
func (s *Store) ListByAuthor(ctx context.Context, author primitive.ObjectID) ([]models.Comment, error) {
	return s.find(ctx, bson.M{"author": author})
}

// ListByPost returns a post's comments, newest first.
func (s *Store) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return s.find(ctx, bson.M{"post_id": postID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
