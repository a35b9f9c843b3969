package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-analysis-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Watcher receives state pushes for a game. *websocket.Conn satisfies it.
type Watcher interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// GameConnections holds the watchers of one game keyed by client ID. Every
// write to a watcher happens under mu.
type GameConnections struct {
	connections map[string]Watcher // clientID -> connection
	mu          sync.Mutex
}

// Game is an analysis session: the current immutable Board plus the moves
// that led to it. A new Board is adopted only when a move transition is
// done.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	history     []Move
	connections *GameConnections
}

type GameState struct {
	ID          string     `json:"id"`
	Board       BoardState `json:"boardState"`
	MoveHistory []MoveView `json:"moveHistory"`
}

func NewGame(id string) *Game {
	return NewGameFromBoard(id, StandardBoard())
}

func NewGameFromBoard(id string, board *Board) *Game {
	return &Game{
		ID:          id,
		board:       board,
		history:     make([]Move, 0),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Watcher),
	}
}

func (g *Game) Board() *Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	return GameState{
		ID:          g.ID,
		Board:       NewBoardState(g.board),
		MoveHistory: NewMoveViews(g.history),
	}
}

// MakeMove plays the move from one coordinate to another for the side to
// move. The transition is returned whatever its status, with the game state
// it left behind; only a done transition changes the game.
func (g *Game) MakeMove(from, to int, promotion PieceType) (MoveTransition, GameState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	move := CreateMove(g.board, from, to, promotion)
	transition := g.board.CurrentPlayer().MakeMove(move)
	if !transition.Status.IsDone() {
		log.Debugf("game %s: move %s-%s rejected: %s", g.ID, CoordinateName(from), CoordinateName(to), transition.Status)
		return transition, g.state()
	}
	g.board = transition.Board
	g.history = append(g.history, move)
	state := g.state()

	log.Infof("game %s: played %s, %s to move (%s)", g.ID, move, state.Board.ToMove, state.Board.Status)
	// broadcast before releasing g.mu so watchers see moves in play order
	g.broadcastState(state)
	return transition, state
}

// Undo returns to the board before the last played move.
func (g *Game) Undo() (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	previous := g.board.Previous()
	if previous == nil || len(g.history) == 0 {
		return GameState{}, fmt.Errorf("game %s: %w", g.ID, ErrNothingToUndo)
	}
	g.board = previous
	g.history = g.history[:len(g.history)-1]
	state := g.state()

	log.Infof("game %s: took back a move, %s to move", g.ID, state.Board.ToMove)
	g.broadcastState(state)
	return state, nil
}

// RegisterConnection adds conn as the watcher for clientID. A second
// connection for a client that is already watching is closed and the
// first one kept.
func (g *Game) RegisterConnection(clientID string, conn Watcher) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[clientID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered watcher %s", g.ID, clientID)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.broadcastState(g.state())
	return nil
}

// UnregisterConnection removes conn if it is the watcher registered for
// clientID. A rejected duplicate leaves the registered watcher in place.
func (g *Game) UnregisterConnection(clientID string, conn Watcher) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[clientID]; exists && current == conn {
		log.Infof("game %s: unregistered watcher %s", g.ID, clientID)
		delete(g.connections.connections, clientID)
	}
}

// SendTo writes msg to conn alone. It shares the lock of broadcastState,
// since a websocket allows one writer at a time.
func (g *Game) SendTo(conn Watcher, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	return conn.WriteJSON(msg)
}

func (g *Game) WatcherCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	return len(g.connections.connections)
}

// broadcastState writes state to every watcher under the connections lock.
// Callers hold g.mu.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for clientID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("game %s: dropping watcher %s: %v", g.ID, clientID, err)
			delete(g.connections.connections, clientID)
		}
	}
}
