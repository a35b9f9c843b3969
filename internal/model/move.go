package model

import "fmt"

type MoveKind string

const (
	MajorMove           MoveKind = "major"
	MajorAttackMove     MoveKind = "attack"
	PawnMove            MoveKind = "pawn"
	PawnJump            MoveKind = "pawn_jump"
	PawnAttackMove      MoveKind = "pawn_attack"
	PawnEnPassantAttack MoveKind = "en_passant"
	PawnPromotion       MoveKind = "promotion"
	KingSideCastle      MoveKind = "castle_kingside"
	QueenSideCastle     MoveKind = "castle_queenside"
)

// Move is a single ply. It is a comparable value; the fields that do not
// apply to its Kind are left at their zero value.
type Move struct {
	Kind        MoveKind
	MovedPiece  Piece
	Destination int

	// AttackedPiece is set for every capturing move, including en passant
	// and capturing promotions.
	AttackedPiece Piece

	CastleRook            Piece
	CastleRookDestination int

	PromotionType PieceType
}

// NullMove stands for "no such move". It is never legal.
var NullMove = Move{}

func (m Move) IsNull() bool {
	return m == NullMove
}

func (m Move) Current() int {
	return m.MovedPiece.Coordinate
}

func (m Move) IsAttack() bool {
	return m.AttackedPiece.Type != ""
}

func (m Move) IsCastle() bool {
	return m.Kind == KingSideCastle || m.Kind == QueenSideCastle
}

func (m Move) IsPromotion() bool {
	return m.Kind == PawnPromotion
}

// Execute builds the board that results from playing m on board. The
// source board is never modified.
func (m Move) Execute(board *Board) *Board {
	mover := m.MovedPiece.Alliance
	builder := NewBuilder()
	for _, piece := range board.ActivePieces(mover) {
		if piece == m.MovedPiece || (m.IsCastle() && piece == m.CastleRook) {
			continue
		}
		builder.SetPiece(piece)
	}
	for _, piece := range board.ActivePieces(mover.Opponent()) {
		if m.IsAttack() && piece == m.AttackedPiece {
			continue
		}
		builder.SetPiece(piece)
	}
	moved := m.MovedPiece.MovePiece(m)
	builder.SetPiece(moved)
	if m.IsCastle() {
		builder.SetPiece(Piece{
			Type:       Rook,
			Alliance:   mover,
			Coordinate: m.CastleRookDestination,
			FirstMove:  false,
		})
	}
	if m.Kind == PawnJump {
		builder.SetEnPassantPawn(moved)
	}
	builder.SetMoveMaker(mover.Opponent())
	builder.setTransition(m, board)
	return builder.build()
}

func (m Move) String() string {
	if m.IsNull() {
		return "null"
	}
	switch m.Kind {
	case KingSideCastle:
		return "O-O"
	case QueenSideCastle:
		return "O-O-O"
	}
	sep := "-"
	if m.IsAttack() {
		sep = "x"
	}
	s := fmt.Sprintf("%s%s%s%s", m.MovedPiece, CoordinateName(m.Current()), sep, CoordinateName(m.Destination))
	if m.IsPromotion() {
		s += "=" + m.PromotionType.getPieceNotation()
	}
	return s
}

// CreateMove looks up the current player's pseudo-legal move from one
// coordinate to another. promotion selects the promoted kind and defaults
// to a queen. NullMove is returned when nothing matches.
func CreateMove(board *Board, from, to int, promotion PieceType) Move {
	if promotion == "" {
		promotion = Queen
	}
	for _, move := range board.pseudoLegalMoves(board.moveMaker) {
		if move.Current() != from || move.Destination != to {
			continue
		}
		if move.IsPromotion() && move.PromotionType != promotion {
			continue
		}
		return move
	}
	return NullMove
}
