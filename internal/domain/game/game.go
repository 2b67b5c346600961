package game

import (
	"time"

	"github.com/gorilla/websocket"
)

type Game struct {
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	StartedAt     *time.Time      `json:"started_at,omitempty" bson:"started_at,omitempty"`
	Status        string          `json:"status" bson:"status"`
	GameKeySecret string          `json:"game_key_secret" bson:"game_key_secret"` // уникальный ключ
	GameKeyPublic string          `json:"game_key_public" bson:"game_key_public"`
	CurrentTurn   string          `json:"current_turn" bson:"current_turn"` // color
	Moves         []Move          `json:"moves" bson:"moves"`
	Winner        string          `json:"winner,omitempty" bson:"winner,omitempty"`
	PlayerRed     string          `json:"player_red" bson:"player_red"`
	PlayerBlack   string          `json:"player_black" bson:"player_black"`
	PlayerRedWS   *websocket.Conn `json:"-" bson:"-"`
	PlayerBlackWS *websocket.Conn `json:"-" bson:"-"`
}

type CreateGameRequest struct {
	IsCreatorRed bool `json:"is_creator_red"`
}

type GameCreateResponse struct {
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key"`
}

type GameJoinRequest struct {
	GameKey string `json:"game_key"`
	UserID  string `json:"user_id"`
}

type GameStateResponse struct {
	Move     Move   `json:"move"`
	Win      bool   `json:"win"`
	Winner   string `json:"winner,omitempty"`
	NextTurn string `json:"next_turn"`
}
