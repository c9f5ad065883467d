// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/branchout-app/branchout/internal/app/system/authutil"
	"github.com/branchout-app/branchout/internal/app/system/normalize"
	"github.com/branchout-app/branchout/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	ErrBadCredentials    = errors.New("invalid username or password")
	errEmptyUsername     = errors.New("username is required")
	errEmptyPassword     = errors.New("password is required")
)

// Create registers an account with a bcrypt-hashed password.
func (s *Store) Create(ctx context.Context, username, password string) (models.User, error) {
	username = normalize.Param(username)
	if username == "" {
		return models.User{}, errEmptyUsername
	}
	if password == "" {
		return models.User{}, errEmptyPassword
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   normalize.Username(username),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate verifies the password for the username and returns the
// account. Wrong username and wrong password are indistinguishable.
func (s *Store) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.GetByUsername(ctx, username)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrBadCredentials
		}
		return models.User{}, err
	}
	if !authutil.CheckPassword(u.PasswordHash, password) {
		return models.User{}, ErrBadCredentials
	}
	return u, nil
}

// GetByID loads a user. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByUsername looks up an account case-insensitively.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": normalize.Username(username)}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// List returns all accounts sorted by folded username.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
