package game

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"twixt_backend/internal/adapters"
	"twixt_backend/internal/bootstrap"
	"twixt_backend/internal/delivery/auth"
	boardDomain "twixt_backend/internal/domain/board"
	"twixt_backend/internal/domain/game"
	"twixt_backend/internal/httpresponse"
	repo "twixt_backend/internal/repository"
	"twixt_backend/internal/statuses"
	gameuc "twixt_backend/internal/usecase/game"
	"twixt_backend/internal/utils"
)

type GameHandler struct {
	cfg         bootstrap.Config
	log         *zap.SugaredLogger
	gameUC      *gameuc.GameUseCase
	authHandler *auth.AuthHandler
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// activeGame pairs the persisted game record with the live board it is
// replayed onto. mu serializes the two player connections: the board is
// single-owner state.
type activeGame struct {
	mu    sync.Mutex
	play  *game.Game
	board *boardDomain.Board
}

// stale reports whether the cached record predates the opponent joining:
// the creator may open the websocket while the game still waits for a
// second player, and joining happens over HTTP behind the cache's back.
func (ag *activeGame) stale() bool {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.play.Status != statuses.StatusActive ||
		ag.play.PlayerRed == "" || ag.play.PlayerBlack == ""
}

// refresh folds the freshly loaded record into the cached one. Only the
// fields the join flow changes are copied; a waiting game cannot have
// accepted moves, so the cached move log stays authoritative.
func (ag *activeGame) refresh(latest game.Game) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.play.Status = latest.Status
	ag.play.StartedAt = latest.StartedAt
	ag.play.PlayerRed = latest.PlayerRed
	ag.play.PlayerBlack = latest.PlayerBlack
	ag.play.CurrentTurn = latest.CurrentTurn
}

var activeGames = make(map[string]*activeGame)
var activeGamesMu sync.RWMutex

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis, authHandler *auth.AuthHandler) *GameHandler {
	return &GameHandler{
		cfg:         cfg,
		log:         log,
		gameUC:      gameuc.NewGameUseCase(repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database), authHandler.Usecase()),
		authHandler: authHandler,
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("Only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var newGameRequest game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &newGameRequest); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	alreadyInGame, err := g.gameUC.HasUserActiveGamesByUserId(ctx, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}
	if alreadyInGame {
		g.log.Errorf("пользователь %s уже состоит в игре", userID)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "user already has an active game")
		return
	}

	err, gameKeyPublic, gameKeySecret := g.gameUC.CreateGame(ctx, newGameRequest, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := game.GameCreateResponse{
		PublicKey: gameKeyPublic,
		SecretKey: gameKeySecret,
	}

	g.log.Info("New game created with key: " + gameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		g.log.Error("Only POST method is allowed")
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized, "not authorized")
		return
	}

	var joinRequest game.GameJoinRequest
	if err := utils.DecodeJSONRequest(r, &joinRequest); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	if joinRequest.GameKey == "" {
		g.log.Error("неверный json: пустой ключ игры")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "game_key is required")
		return
	}

	ctx := r.Context()

	alreadyInGame, err := g.gameUC.HasUserActiveGamesByUserId(ctx, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
		return
	}
	if alreadyInGame {
		g.log.Errorf("пользователь %s уже состоит в игре", userID)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "user already has an active game")
		return
	}

	joined, err := g.gameUC.JoinGame(ctx, joinRequest.GameKey, userID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	g.log.Infof("пользователь %s присоединился к игре %s", userID, joined.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "joined"})
}

func (g *GameHandler) GetGameById(w http.ResponseWriter, r *http.Request) {
	var req game.GameJoinRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	play, err := g.gameUC.GetGameByPublicKey(r.Context(), req.GameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound, err.Error())
		return
	}

	// the secret key stays server side
	play.GameKeySecret = ""
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, play)
}

// HandleLeaveGame forfeits the caller's running game.
func (g *GameHandler) HandleLeaveGame(w http.ResponseWriter, r *http.Request) {
	userID := g.authHandler.GetUserID(w, r)
	if userID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized, "not authorized")
		return
	}

	ok, err := g.gameUC.LeaveGame(r.Context(), userID)
	if err != nil || !ok {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "leave failed")
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "left"})
}

func (g *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := r.URL.Query().Get("game_id")
	playerID := g.authHandler.GetUserID(w, r)

	if gameID == "" || playerID == "" {
		g.log.Error("отсутствуют поля gameID или playerID")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "missing game_id or player")
		return
	}

	play, err := g.gameUC.GetGameByPublicKey(ctx, gameID)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound, err.Error())
		return
	}

	if !g.gameUC.IsUserInGame(play, playerID) {
		g.log.Error("пользователь не в игре!")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "player is not in this game")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error:", err)
		return
	}

	activeGamesMu.Lock()
	ag, ok := activeGames[gameID]
	if !ok {
		ag = &activeGame{
			play:  &play,
			board: gameuc.RestoreBoard(play.Moves),
		}
		activeGames[gameID] = ag
	} else if ag.stale() {
		ag.refresh(play)
	}
	activeGamesMu.Unlock()

	var playerWS **websocket.Conn
	var opponentWS **websocket.Conn
	var color string

	switch playerID {
	case ag.play.PlayerRed:
		playerWS, opponentWS = &ag.play.PlayerRedWS, &ag.play.PlayerBlackWS
		color = boardDomain.Red.String()
	case ag.play.PlayerBlack:
		playerWS, opponentWS = &ag.play.PlayerBlackWS, &ag.play.PlayerRedWS
		color = boardDomain.Black.String()
	default:
		g.log.Error("Unknown player id:", playerID)
		conn.Close()
		return
	}

	ag.mu.Lock()
	if *playerWS != nil {
		(*playerWS).WriteMessage(websocket.TextMessage, []byte("replaced by a new connection"))
		(*playerWS).Close()
	}
	*playerWS = conn
	ag.mu.Unlock()

	defer func() {
		conn.Close()
		ag.mu.Lock()
		if *playerWS == conn {
			*playerWS = nil
		}
		ag.mu.Unlock()
	}()

	for {
		var move game.Move
		if err = conn.ReadJSON(&move); err != nil {
			g.log.Error("read error:", err)
			return
		}

		// the session decides the color, not the payload
		move.Color = color

		ag.mu.Lock()
		win, err := g.gameUC.ApplyMove(ctx, ag.play, ag.board, move)
		if err != nil {
			ag.mu.Unlock()
			g.log.Error(err)
			conn.WriteMessage(websocket.TextMessage, []byte(err.Error()))
			continue
		}

		resp := game.GameStateResponse{
			Move:     move,
			Win:      win,
			Winner:   ag.play.Winner,
			NextTurn: ag.play.CurrentTurn,
		}

		if err := conn.WriteJSON(resp); err != nil {
			g.log.Error("write error:", err)
		}

		if *opponentWS != nil {
			if err := (*opponentWS).WriteJSON(resp); err != nil {
				g.log.Error("Write to opponent error:", err)
				(*opponentWS).Close()
				*opponentWS = nil
			}
		}
		ag.mu.Unlock()

		if win {
			g.log.Infof("игра %s завершена, победил %s", gameID, ag.play.Winner)
			activeGamesMu.Lock()
			delete(activeGames, gameID)
			activeGamesMu.Unlock()
			return
		}
	}
}

type JsonOKResponse struct {
	Text string `json:"text"`
}
