package repository

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "roomhub/internal/bookings/errors"
	"roomhub/pkg/config"
	"roomhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository is the read-only view of the identity service's user
// collection this service needs: requester display names and the admin
// notification target. Every query projects away the credential fields, so
// a password hash can never travel through this repository.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindAdminEmail resolves the email address of a user flagged admin.
	FindAdminEmail(ctx context.Context) (string, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection("Users"),
	}
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	opts := options.FindOne().SetProjection(bson.M{
		"username": 1,
		"email":    1,
		"is_admin": 1,
	})

	var user model.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) FindAdminEmail(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"email": 1})

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"is_admin": true}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", bookingserrors.ErrNoAdmin
		}
		return "", fmt.Errorf("failed to find admin user: %w", err)
	}

	return user.Email, nil
}
