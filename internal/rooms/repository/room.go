package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	roomserrors "roomhub/internal/rooms/errors"
	"roomhub/pkg/config"
	"roomhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Rooms"
)

type RoomRepository interface {
	// Create inserts a room; a unique index on name makes duplicates fail
	// with ErrDuplicateName.
	Create(ctx context.Context, room *model.MeetingRoom) error
	FindByID(ctx context.Context, id string) (*model.MeetingRoom, error)
	Find(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, error)
	Count(ctx context.Context, query *model.RoomQuery) (int64, error)
	Update(ctx context.Context, id string, room *model.MeetingRoom) error
	Delete(ctx context.Context, id string) error
}

type mongoRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRoomRepository) Create(ctx context.Context, room *model.MeetingRoom) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	room.CreatedAt = now
	room.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, room)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return roomserrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to create meeting room: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		room.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id string) (*model.MeetingRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	var room model.MeetingRoom
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, roomserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find meeting room: %w", err)
	}

	return &room, nil
}

func (r *mongoRoomRepository) Find(ctx context.Context, query *model.RoomQuery) ([]*model.MeetingRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64(query.PageNo-1) * int64(query.PageSize)).
		SetLimit(int64(query.PageSize))

	cursor, err := r.collection.Find(ctx, buildRoomFilter(query), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find meeting rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.MeetingRoom
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode meeting rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) Count(ctx context.Context, query *model.RoomQuery) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildRoomFilter(query))
	if err != nil {
		return 0, fmt.Errorf("failed to count meeting rooms: %w", err)
	}
	return count, nil
}

func buildRoomFilter(query *model.RoomQuery) bson.M {
	filter := bson.M{}

	if query.Name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(query.Name)}
	}
	if query.Location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(query.Location)}
	}
	if query.Equipment != "" {
		filter["equipment"] = bson.M{"$regex": regexp.QuoteMeta(query.Equipment)}
	}
	if query.Capacity > 0 {
		filter["capacity"] = bson.M{"$gte": query.Capacity}
	}

	return filter
}

func (r *mongoRoomRepository) Update(ctx context.Context, id string, room *model.MeetingRoom) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        room.Name,
			"capacity":    room.Capacity,
			"location":    room.Location,
			"equipment":   room.Equipment,
			"description": room.Description,
			"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return roomserrors.ErrDuplicateName
		}
		return fmt.Errorf("failed to update meeting room: %w", err)
	}

	if result.MatchedCount == 0 {
		return roomserrors.ErrNotFound
	}

	return nil
}

func (r *mongoRoomRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete meeting room: %w", err)
	}

	if result.DeletedCount == 0 {
		return roomserrors.ErrNotFound
	}

	return nil
}
