package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"twixt_backend/internal/adapters"
	"twixt_backend/internal/domain/user"
	errors2 "twixt_backend/internal/errors"
)

type MongoUserStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoUserStorage(adapter *adapters.AdapterMongo) *MongoUserStorage {
	return &MongoUserStorage{adapter: adapter}
}

// idFilter builds an _id filter from the hex form user IDs travel in
// (sessions, game seats). The stored _id is a real ObjectID, so the hex
// must be converted back before filtering; a malformed ID matches nothing.
func idFilter(id string) (bson.D, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.D{{Key: "_id", Value: oid}}, true
}

func (m MongoUserStorage) CheckExists(username string) bool {
	_, ok := m.GetUser(username)
	return ok
}

func (m MongoUserStorage) GetUser(username string) (user.User, bool) {
	collection := m.adapter.Database.Collection("users")
	filter := bson.D{{Key: "username", Value: username}}

	var result user.User
	err := collection.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return user.User{}, false
	}
	return result, true
}

func (m MongoUserStorage) GetUserByID(id string) (user.User, bool) {
	filter, ok := idFilter(id)
	if !ok {
		return user.User{}, false
	}
	collection := m.adapter.Database.Collection("users")

	var result user.User
	err := collection.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return user.User{}, false
	}
	return result, true
}

func (m MongoUserStorage) CreateUser(username, email, password string) (user.User, error) {
	_, found := m.GetUser(username)
	if found {
		return user.User{}, errors2.ErrUserExists
	}
	collection := m.adapter.Database.Collection("users")
	newUser := user.User{
		Username:       username,
		Email:          email,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		Rating:         0,
		CurrentGameKey: "",
		Statistic: user.UserStatistic{
			Wins:   0,
			Losses: 0,
		},
		PasswordHash: password,
	}
	result, err := collection.InsertOne(context.TODO(), newUser)
	if err != nil {
		slog.Error(err.Error())
		return user.User{}, errors2.ErrInternal
	}
	newUser.ID = result.InsertedID.(primitive.ObjectID)
	return newUser, nil
}

func (m MongoUserStorage) AddWin(userID string) error {
	return m.incStatistic(userID, "statistic.wins")
}

func (m MongoUserStorage) AddLose(userID string) error {
	return m.incStatistic(userID, "statistic.losses")
}

func (m MongoUserStorage) incStatistic(userID string, field string) error {
	filter, ok := idFilter(userID)
	if !ok {
		return errors2.ErrUserNotFound
	}
	collection := m.adapter.Database.Collection("users")
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := collection.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		slog.Error(err.Error())
		return errors2.ErrInternal
	}
	if res.MatchedCount == 0 {
		return errors2.ErrUserNotFound
	}
	return nil
}
