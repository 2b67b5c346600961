package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"twixt_backend/internal/bootstrap"
	"twixt_backend/internal/domain/game"
	"twixt_backend/internal/statuses"
)

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string) {
	gameKeySecret = uuid.New().String()
	for {
		gameKeyPublic = generateHash(gameKeySecret)

		if g.CheckPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameKeySecret, gameKeyPublic
		}
		gameKeySecret = uuid.New().String()
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"game_key_public": gameKeyPublic,
	}
	err := collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true
	}
	return false
}

func (g *GameRepository) PutGame(ctx context.Context, gameData game.Game) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	_, err := collection.InsertOne(ctx, gameData)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return false
	}

	g.log.Infof("game inserted successfully with key: %s", gameData.GameKeySecret)

	return true
}

// AddPlayer puts userId into the free seat of the game and flips the game
// to active: both players present means the game can start.
func (g *GameRepository) AddPlayer(ctx context.Context, userId string, gameKeySecret string) (game.Game, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	filter := bson.M{"game_key_secret": gameKeySecret}

	var current game.Game
	if err := collection.FindOne(ctx, filter).Decode(&current); err != nil {
		g.log.Errorf("игра с ключом %s не найдена: %v", gameKeySecret, err)
		return game.Game{}, false
	}

	startedAt := time.Now()

	update := bson.M{}
	if current.PlayerRed == "" {
		update = bson.M{"$set": bson.M{
			"player_red": userId,
			"status":     statuses.StatusActive,
			"started_at": startedAt,
		}}
	} else if current.PlayerBlack == "" {
		update = bson.M{"$set": bson.M{
			"player_black": userId,
			"status":       statuses.StatusActive,
			"started_at":   startedAt,
		}}
	} else {
		g.log.Errorf("в игре %s нет свободного места", current.GameKeyPublic)
		return game.Game{}, false
	}

	opts := options.Update().SetUpsert(false)

	res, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		g.log.Errorf("failed to update game in database: %v", err)
		return game.Game{}, false
	}
	if res.MatchedCount == 0 {
		g.log.Infof("игра с ключом %s не найдена", gameKeySecret)
		return game.Game{}, false
	}

	var updatedGame game.Game
	err = collection.FindOne(ctx, filter).Decode(&updatedGame)
	if err != nil {
		g.log.Errorf("failed to reload updated game: %v", err)
		return game.Game{}, false
	}

	g.log.Infof("пользователь %s добавлен к игре %s", userId, updatedGame.GameKeyPublic)

	return updatedGame, true
}

func (g *GameRepository) GetGameBySecretKey(ctx context.Context, gameKeySecret string) game.Game {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	filter := bson.M{"game_key_secret": gameKeySecret}

	var result game.Game
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			g.log.Errorf("игра с ключом %s не найдена", gameKeySecret)
		}
	}

	return result
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{
				"game_key_public": gameKeyPublic,
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}

	foundGame := game.Game{}

	err := collection.FindOne(ctx, filter).Decode(&foundGame)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return foundGame, nil
	} else if err != nil {
		g.log.Error(err)
		return foundGame, err
	}

	return foundGame, nil
}

func (g *GameRepository) HasUserActiveGameByUserId(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"player_red": userID},
					{"player_black": userID},
				},
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}
	err := collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		g.log.Error(err)
		return false, err
	}

	return true, nil
}

func (g *GameRepository) GetActiveGameByUserId(ctx context.Context, userID string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"player_red": userID},
					{"player_black": userID},
				},
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}

	var result game.Game
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		g.log.Error(err)
		return game.Game{}, err
	}

	return result, nil
}

// CompleteGame marks the game finished with winner's color ("" for a
// walkover with no winner recorded).
func (g *GameRepository) CompleteGame(ctx context.Context, gameKeySecret string, winner string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")

	update := bson.M{"$set": bson.M{
		"status": statuses.StatusCompleted,
		"winner": winner,
	}}

	res, err := collection.UpdateOne(ctx, bson.M{"game_key_secret": gameKeySecret}, update)
	if err != nil {
		g.log.Error(err)
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (g *GameRepository) LeaveGameBySecretKey(ctx context.Context, gameKeySecret string, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")

	play := g.GetGameBySecretKey(ctx, gameKeySecret)
	winner := ""
	if play.PlayerRed == userID && play.PlayerBlack != "" {
		winner = "black"
	} else if play.PlayerBlack == userID && play.PlayerRed != "" {
		winner = "red"
	}

	update := bson.M{"$set": bson.M{
		"status": statuses.StatusCompleted,
		"winner": winner,
	}}

	_, err := collection.UpdateOne(ctx, bson.M{"game_key_secret": gameKeySecret}, update)
	if err != nil {
		g.log.Error(err)
		return err
	}
	return nil
}

// The current move log lives in redis under the secret key so a
// reconnecting client can replay the whole game.

func (g *GameRepository) SaveMoves(key string, moves []game.Move) error {
	data, err := json.Marshal(moves)
	if err != nil {
		return err
	}
	return g.redis.Set(context.Background(), key, data, 0).Err()
}

func (g *GameRepository) LoadMoves(key string) ([]game.Move, error) {
	data, err := g.redis.Get(context.Background(), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var moves []game.Move
	if err := json.Unmarshal([]byte(data), &moves); err != nil {
		return nil, err
	}
	return moves, nil
}
