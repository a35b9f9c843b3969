package model

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbeisheim/chess-analysis-backend/internal/ws"
)

type fakeWatcher struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	fail     bool
}

func (w *fakeWatcher) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("broken pipe")
	}
	if msg, ok := v.(ws.Message); ok {
		w.messages = append(w.messages, msg)
	}
	return nil
}

func (w *fakeWatcher) WriteMessage(int, []byte) error {
	return nil
}

func (w *fakeWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWatcher) lastState(t *testing.T) GameState {
	t.Helper()
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.messages) == 0 {
		t.Fatal("no messages received")
	}
	msg := w.messages[len(w.messages)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("message type %s", msg.Type)
	}
	var state GameState
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return state
}

func (w *fakeWatcher) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.messages)
}

func TestGameMakeMoveAdoptsOnlyDoneBoards(t *testing.T) {
	game := NewGame("g1")
	start := game.Board()

	tr, state := game.MakeMove(sq("e2"), sq("e5"), "")
	if tr.Status != IllegalMove || !tr.Move.IsNull() {
		t.Fatalf("e2-e5: %+v", tr)
	}
	if game.Board() != start || state.Board.ToMove != White || len(state.MoveHistory) != 0 {
		t.Fatal("rejected move changed the game")
	}

	tr, moved := game.MakeMove(sq("e2"), sq("e4"), "")
	if tr.Status != Done {
		t.Fatalf("e2-e4: %s", tr.Status)
	}
	if game.Board() != tr.Board {
		t.Fatal("done move not adopted")
	}
	if state := game.GetState(); len(moved.MoveHistory) != 1 || len(state.MoveHistory) != 1 {
		t.Errorf("result history %d, game history %d", len(moved.MoveHistory), len(state.MoveHistory))
	}
	state = moved
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].Kind != PawnJump {
		t.Errorf("history = %+v", state.MoveHistory)
	}
	if state.Board.ToMove != Black || len(state.Board.LegalMoves) != 20 {
		t.Errorf("state = %s with %d moves", state.Board.ToMove, len(state.Board.LegalMoves))
	}
	if state.Board.LastMove == nil || state.Board.LastMove.To != sq("e4") {
		t.Errorf("last move = %+v", state.Board.LastMove)
	}
}

func TestGameUndo(t *testing.T) {
	game := NewGame("g1")
	start := game.Board()
	if _, err := game.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo at start: %v", err)
	}

	game.MakeMove(sq("g1"), sq("f3"), "")
	game.MakeMove(sq("g8"), sq("f6"), "")
	state, err := game.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if state.Board.ToMove != Black || len(state.MoveHistory) != 1 {
		t.Errorf("state after first undo = %s with %d moves", state.Board.ToMove, len(state.MoveHistory))
	}
	if _, err := game.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if game.Board() != start {
		t.Error("undo did not return to the start board")
	}
	if n := len(game.GetState().MoveHistory); n != 0 {
		t.Errorf("history length %d", n)
	}
}

func TestGameBroadcastsToWatchers(t *testing.T) {
	game := NewGame("g1")
	watcher := &fakeWatcher{}
	if err := game.RegisterConnection("alice", watcher); err != nil {
		t.Fatal(err)
	}
	if state := watcher.lastState(t); state.ID != "g1" || state.Board.ToMove != White {
		t.Errorf("initial state = %+v", state)
	}

	game.MakeMove(sq("d2"), sq("d4"), "")
	if state := watcher.lastState(t); state.Board.ToMove != Black || len(state.MoveHistory) != 1 {
		t.Errorf("state after d4 = %+v", state)
	}

	before := watcher.count()
	game.MakeMove(sq("d4"), sq("d6"), "")
	if watcher.count() != before {
		t.Error("rejected move was broadcast")
	}

	duplicate := &fakeWatcher{}
	if err := game.RegisterConnection("alice", duplicate); err != nil {
		t.Fatal(err)
	}
	if !duplicate.closed || game.WatcherCount() != 1 {
		t.Error("duplicate watcher should be closed and ignored")
	}

	broken := &fakeWatcher{fail: true}
	game.RegisterConnection("bob", broken)
	if game.WatcherCount() != 1 {
		t.Errorf("failing watcher kept, %d watchers", game.WatcherCount())
	}

	game.UnregisterConnection("alice", watcher)
	if game.WatcherCount() != 0 {
		t.Error("watcher not removed")
	}
}

func TestDuplicateWatcherLeavesFirstRegistered(t *testing.T) {
	game := NewGame("g1")
	healthy := &fakeWatcher{}
	duplicate := &fakeWatcher{}
	game.RegisterConnection("alice", healthy)
	game.RegisterConnection("alice", duplicate)

	// the duplicate's connection handler unregisters when its read loop ends
	game.UnregisterConnection("alice", duplicate)
	if game.WatcherCount() != 1 {
		t.Fatalf("%d watchers after duplicate left", game.WatcherCount())
	}

	before := healthy.count()
	game.MakeMove(sq("e2"), sq("e4"), "")
	if healthy.count() != before+1 {
		t.Errorf("healthy watcher got %d new messages, want 1", healthy.count()-before)
	}
	if state := healthy.lastState(t); state.Board.ToMove != Black {
		t.Errorf("state after e4 = %s to move", state.Board.ToMove)
	}
	if duplicate.count() != 0 {
		t.Errorf("duplicate received %d messages", duplicate.count())
	}
}

func TestSendToWritesOneWatcher(t *testing.T) {
	game := NewGame("g1")
	alice, bob := &fakeWatcher{}, &fakeWatcher{}
	game.RegisterConnection("alice", alice)
	game.RegisterConnection("bob", bob)
	aliceBefore, bobBefore := alice.count(), bob.count()

	if err := game.SendTo(alice, ws.Message{Type: ws.MessageTypeError, Payload: json.RawMessage(`"nope"`)}); err != nil {
		t.Fatal(err)
	}
	if alice.count() != aliceBefore+1 || bob.count() != bobBefore {
		t.Errorf("alice %d new, bob %d new", alice.count()-aliceBefore, bob.count()-bobBefore)
	}
}

func TestConcurrentMovesAndReplies(t *testing.T) {
	game := NewGame("g1")
	watcher := &exclusiveWatcher{}
	game.RegisterConnection("alice", watcher)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			game.MakeMove(sq("g1"), sq("f3"), "")
			game.Undo()
		}()
		go func() {
			defer wg.Done()
			game.SendTo(watcher, ws.Message{Type: ws.MessageTypeRejected})
		}()
	}
	wg.Wait()
	if watcher.overlaps() != 0 {
		t.Errorf("%d overlapping writes", watcher.overlaps())
	}
}

// exclusiveWatcher counts writes that start while another is in flight.
type exclusiveWatcher struct {
	fakeWatcher
	writing int32
	overlap int32
}

func (w *exclusiveWatcher) WriteJSON(v interface{}) error {
	if !atomic.CompareAndSwapInt32(&w.writing, 0, 1) {
		atomic.AddInt32(&w.overlap, 1)
		return nil
	}
	defer atomic.StoreInt32(&w.writing, 0)
	time.Sleep(100 * time.Microsecond)
	return w.fakeWatcher.WriteJSON(v)
}

func (w *exclusiveWatcher) overlaps() int32 {
	return atomic.LoadInt32(&w.overlap)
}

func TestGameFromBoardReportsMate(t *testing.T) {
	game := NewGameFromBoard("mate", mustFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1"))
	state := game.GetState()
	if state.Board.Status != Checkmate || !state.Board.IsCheck || len(state.Board.LegalMoves) != 0 {
		t.Errorf("state = %+v", state.Board)
	}
	if state.Board.LastMove != nil {
		t.Error("built board has no last move")
	}
	if _, err := game.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("undo: %v", err)
	}
}

func TestMoveViewJSON(t *testing.T) {
	board := mustFEN(t, "r7/1P6/8/8/8/8/8/8 w - - 0 1")
	view := NewMoveView(CreateMove(board, sq("b7"), sq("a8"), Rook))
	data, err := json.Marshal(view)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["kind"] != string(PawnPromotion) || got["promotion"] != string(Rook) {
		t.Errorf("json = %s", data)
	}
	if got["from"] != float64(sq("b7")) || got["to"] != float64(sq("a8")) {
		t.Errorf("json = %s", data)
	}
	if _, ok := got["captured"]; !ok {
		t.Errorf("capture missing from %s", data)
	}

	quiet := NewMoveView(CreateMove(StandardBoard(), sq("e2"), sq("e3"), ""))
	data, _ = json.Marshal(quiet)
	got = nil
	json.Unmarshal(data, &got)
	if _, ok := got["captured"]; ok {
		t.Errorf("quiet move has a capture: %s", data)
	}
	if _, ok := got["promotion"]; ok {
		t.Errorf("quiet move has a promotion: %s", data)
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{NullMove, "null"},
		{CreateMove(StandardBoard(), sq("g1"), sq("f3"), ""), "Ng1-f3"},
		{CreateMove(mustFEN(t, "8/8/8/3p4/4P3/8/8/8 w - - 0 1"), sq("e4"), sq("d5"), ""), "Pe4xd5"},
		{CreateMove(mustFEN(t, "8/1P6/8/8/8/8/8/8 w - - 0 1"), sq("b7"), sq("b8"), Knight), "Pb7-b8=N"},
		{CreateMove(mustFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1"), sq("e1"), sq("g1"), ""), "O-O"},
	}
	for _, tt := range tests {
		if got := tt.move.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
