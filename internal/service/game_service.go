package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-analysis-backend/internal/model"
	"github.com/benbeisheim/chess-analysis-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrInvalidSetup     = errors.New("invalid setup")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)

// SetupRequest places pieces on an empty board.
type SetupRequest struct {
	Pieces []model.Piece  `json:"pieces"`
	ToMove model.Alliance `json:"toMove"`
}

// MoveResult reports a move attempt; State is the game after it.
type MoveResult struct {
	Status model.MoveStatus `json:"status"`
	Move   *model.MoveView  `json:"move,omitempty"`
	State  model.GameState  `json:"state"`
}

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) SetupGame(req SetupRequest) (string, error) {
	builder := model.NewBuilder()
	for _, piece := range req.Pieces {
		builder.SetPiece(piece)
	}
	if req.ToMove != "" {
		builder.SetMoveMaker(req.ToMove)
	}
	board, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGameFromBoard(gameID, board); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) ListGames() []string {
	return gs.gameManager.ListGames()
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string) ([]model.MoveView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return model.NewMoveViews(game.Board().CurrentPlayer().LegalMoves()), nil
}

func (gs *GameService) HandleMove(gameID string, clientID string, move ws.MovePayload) (MoveResult, error) {
	promotion := model.PieceType(move.Promotion)
	switch promotion {
	case "", model.Queen, model.Rook, model.Bishop, model.Knight:
	default:
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, move.Promotion)
	}

	transition, state, err := gs.gameManager.MakeMove(gameID, move.From, move.To, promotion)
	if err != nil {
		return MoveResult{}, err
	}
	log.Debugf("client %s move %d-%d in game %s: %s", clientID, move.From, move.To, gameID, transition.Status)

	result := MoveResult{Status: transition.Status, State: state}
	if !transition.Move.IsNull() {
		view := model.NewMoveView(transition.Move)
		result.Move = &view
	}
	return result, nil
}

func (gs *GameService) Undo(gameID string) (model.GameState, error) {
	return gs.gameManager.Undo(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn model.Watcher) error {
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn model.Watcher) {
	gs.gameManager.UnregisterConnection(gameID, clientID, conn)
}

func (gs *GameService) SendTo(gameID string, conn model.Watcher, msg ws.Message) error {
	return gs.gameManager.SendTo(gameID, conn, msg)
}
