package game

import (
	"context"
	"time"

	"twixt_backend/internal/domain/board"
	"twixt_backend/internal/domain/game"
	"twixt_backend/internal/errors"
	"twixt_backend/internal/statuses"
	"twixt_backend/internal/usecase/auth"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string)
	PutGame(ctx context.Context, gameData game.Game) bool
	AddPlayer(ctx context.Context, userId string, gameKeySecret string) (game.Game, bool)
	GetGameBySecretKey(ctx context.Context, gameKeySecret string) game.Game
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error)
	HasUserActiveGameByUserId(ctx context.Context, userID string) (bool, error)
	GetActiveGameByUserId(ctx context.Context, userID string) (game.Game, error)
	LeaveGameBySecretKey(ctx context.Context, secretKey string, userID string) error
	CompleteGame(ctx context.Context, gameKeySecret string, winner string) error
	SaveMoves(key string, moves []game.Move) error
	LoadMoves(key string) ([]game.Move, error)
}

type GameUseCase struct {
	store       GameStore
	userUsecase *auth.AuthUsecaseHandler
}

func NewGameUseCase(store GameStore, auth *auth.AuthUsecaseHandler) *GameUseCase {
	return &GameUseCase{store: store, userUsecase: auth}
}

func (g *GameUseCase) CreateGame(ctx context.Context, newGameRequest game.CreateGameRequest, creatorID string) (err error, gameKeyPublic string, gameKeySecret string) {
	gameKeySecret, gameKeyPublic = g.store.GenerateGameKeys(ctx)

	newGame := game.Game{
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		Status:        statuses.StatusWaitOpponent,
		CurrentTurn:   board.Red.String(), // red opens
		CreatedAt:     time.Now(),
	}

	if newGameRequest.IsCreatorRed {
		newGame.PlayerRed = creatorID
	} else {
		newGame.PlayerBlack = creatorID
	}

	ok := g.store.PutGame(ctx, newGame)
	if !ok {
		return errors.ErrCreateGameFailed, "", ""
	}
	return nil, gameKeyPublic, gameKeySecret
}

func (g *GameUseCase) JoinGame(ctx context.Context, gameKeyPublic string, userID string) (game.Game, error) {
	play, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Game{}, err
	}
	if play.GameKeySecret == "" {
		return game.Game{}, errors.ErrGameNotFound
	}

	updatedGame, ok := g.store.AddPlayer(ctx, userID, play.GameKeySecret)
	if !ok {
		return game.Game{}, errors.ErrJoinGameFailed
	}

	if err := g.store.SaveMoves(updatedGame.GameKeySecret, updatedGame.Moves); err != nil {
		return game.Game{}, err
	}

	return updatedGame, nil
}

func (g *GameUseCase) LeaveGame(ctx context.Context, userID string) (bool, error) {
	play, err := g.store.GetActiveGameByUserId(ctx, userID)
	if err != nil {
		return false, err
	}
	if play.PlayerRed != "" && play.PlayerBlack != "" {
		// leaving a running two-player game counts as a loss
		if err := g.userUsecase.AddLose(userID); err != nil {
			return false, err
		}
		opponent := play.PlayerRed
		if userID == play.PlayerRed {
			opponent = play.PlayerBlack
		}
		if err := g.userUsecase.AddWin(opponent); err != nil {
			return false, err
		}
	}
	if err := g.store.LeaveGameBySecretKey(ctx, play.GameKeySecret, userID); err != nil {
		return false, err
	}
	return true, nil
}

func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	play, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Game{}, err
	}

	if play.GameKeySecret == "" {
		return game.Game{}, errors.ErrGameNotFound
	}

	moves, err := g.store.LoadMoves(play.GameKeySecret)
	if err == nil && moves != nil {
		play.Moves = moves
	}

	return play, nil
}

func (g *GameUseCase) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Game, error) {
	gameFromDb := g.store.GetGameBySecretKey(ctx, gameKeySecret)

	if gameFromDb.GameKeySecret == "" {
		return game.Game{}, errors.ErrGameNotFound
	}

	return gameFromDb, nil
}

func (g *GameUseCase) IsUserInGame(play game.Game, userID string) bool {
	return play.PlayerRed == userID || play.PlayerBlack == userID
}

func (g *GameUseCase) HasUserActiveGamesByUserId(ctx context.Context, userID string) (bool, error) {
	return g.store.HasUserActiveGameByUserId(ctx, userID)
}

// RestoreBoard replays a stored move log onto a fresh board. The log only
// ever contains moves the board accepted, so replay cannot fail; a
// corrupted entry is skipped.
func RestoreBoard(moves []game.Move) *board.Board {
	b := board.New()
	for _, mv := range moves {
		applyToBoard(b, mv)
	}
	return b
}

func applyToBoard(b *board.Board, mv game.Move) bool {
	color := board.PlayerFromString(mv.Color)
	p := board.Peg{X: mv.X, Y: mv.Y}
	q := board.Peg{X: mv.X2, Y: mv.Y2}

	switch mv.Kind {
	case game.MovePlacePeg:
		return b.PlacePeg(p, color)
	case game.MovePlaceBarrier:
		return b.PlaceBarrier(p, q, color)
	case game.MoveRemovePeg:
		return b.RemovePeg(p, color)
	case game.MoveRemoveBarrier:
		return b.RemoveBarrier(p, q, color)
	}
	return false
}

// ApplyMove validates mv against the running game, applies it to the live
// board, persists the grown move log and reports whether the move won the
// game. The board core only signals success or failure; the win check after
// a barrier placement is this layer's job.
func (g *GameUseCase) ApplyMove(ctx context.Context, play *game.Game, b *board.Board, mv game.Move) (win bool, err error) {
	if play.Status != statuses.StatusActive {
		return false, errors.ErrGameNotActive
	}

	color := board.PlayerFromString(mv.Color)
	if color == board.None {
		return false, errors.ErrIllegalMove
	}

	// one new peg per turn; barrier work is free within the owner's color
	if mv.Kind == game.MovePlacePeg && mv.Color != play.CurrentTurn {
		return false, errors.ErrNotYourTurn
	}

	if !applyToBoard(b, mv) {
		return false, errors.ErrIllegalMove
	}

	play.Moves = append(play.Moves, mv)
	if mv.Kind == game.MovePlacePeg {
		if color == board.Red {
			play.CurrentTurn = board.Black.String()
		} else {
			play.CurrentTurn = board.Red.String()
		}
	}

	if err := g.store.SaveMoves(play.GameKeySecret, play.Moves); err != nil {
		return false, err
	}

	if mv.Kind == game.MovePlaceBarrier && b.GameWon(color) {
		if err := g.finishGame(ctx, play, color); err != nil {
			return true, err
		}
		return true, nil
	}

	return false, nil
}

func (g *GameUseCase) finishGame(ctx context.Context, play *game.Game, winner board.Player) error {
	play.Status = statuses.StatusCompleted
	play.Winner = winner.String()

	if err := g.store.CompleteGame(ctx, play.GameKeySecret, play.Winner); err != nil {
		return err
	}

	winnerID, loserID := play.PlayerRed, play.PlayerBlack
	if winner == board.Black {
		winnerID, loserID = play.PlayerBlack, play.PlayerRed
	}
	if winnerID != "" {
		if err := g.userUsecase.AddWin(winnerID); err != nil {
			return err
		}
	}
	if loserID != "" {
		if err := g.userUsecase.AddLose(loserID); err != nil {
			return err
		}
	}
	return nil
}
