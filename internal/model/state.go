package model

// MoveView is the JSON shape of a Move.
type MoveView struct {
	Kind      MoveKind  `json:"kind"`
	Piece     Piece     `json:"piece"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	Captured  *Piece    `json:"captured,omitempty"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func NewMoveView(move Move) MoveView {
	view := MoveView{
		Kind:      move.Kind,
		Piece:     move.MovedPiece,
		From:      move.Current(),
		To:        move.Destination,
		Promotion: move.PromotionType,
	}
	if move.IsAttack() {
		captured := move.AttackedPiece
		view.Captured = &captured
	}
	return view
}

func NewMoveViews(moves []Move) []MoveView {
	views := make([]MoveView, 0, len(moves))
	for _, m := range moves {
		views = append(views, NewMoveView(m))
	}
	return views
}

type BoardState struct {
	Cells      [NumCells]*Piece `json:"cells"`
	ToMove     Alliance         `json:"toMove"`
	IsCheck    bool             `json:"isCheck"`
	Status     GameStatus       `json:"status"`
	LegalMoves []MoveView       `json:"legalMoves"`
	LastMove   *MoveView        `json:"lastMove"`
}

func NewBoardState(board *Board) BoardState {
	player := board.CurrentPlayer()
	state := BoardState{
		ToMove:     board.MoveMaker(),
		IsCheck:    player.IsInCheck(),
		Status:     player.Status(),
		LegalMoves: NewMoveViews(player.LegalMoves()),
	}
	for i := 0; i < NumCells; i++ {
		if piece, ok := board.Piece(i); ok {
			state.Cells[i] = &piece
		}
	}
	if last := board.TransitionMove(); !last.IsNull() {
		view := NewMoveView(last)
		state.LastMove = &view
	}
	return state
}
