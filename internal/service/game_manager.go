// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/chess-analysis-backend/internal/model"
	"github.com/benbeisheim/chess-analysis-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager keeps the in-memory analysis sessions.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	return gm.CreateGameFromBoard(gameID, model.StandardBoard())
}

func (gm *GameManager) CreateGameFromBoard(gameID string, board *model.Board) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGameFromBoard(gameID, board)
	log.Infof("created game %s, %s to move", gameID, board.MoveMaker())
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

// ListGames returns the session IDs in sorted order.
func (gm *GameManager) ListGames() []string {
	gm.mu.RLock()
	ids := maps.Keys(gm.games)
	gm.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return ErrGameNotFound
	}
	delete(gm.games, gameID)
	log.Infof("deleted game %s", gameID)
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, from, to int, promotion model.PieceType) (model.MoveTransition, model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MoveTransition{}, model.GameState{}, err
	}

	transition, state := game.MakeMove(from, to, promotion)
	return transition, state, nil
}

func (gm *GameManager) Undo(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.Undo()
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn model.Watcher) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(clientID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string, conn model.Watcher) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(clientID, conn)
}

// SendTo writes msg to one watcher of a game. Without a game there is no
// broadcaster to share the connection with, so the write goes straight out.
func (gm *GameManager) SendTo(gameID string, conn model.Watcher, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return conn.WriteJSON(msg)
	}

	return game.SendTo(conn, msg)
}
