package model

import (
	"sync"

	"golang.org/x/exp/slices"
)

// Player is one side's view of a Board. Its legal moves are derived from the
// pseudo-legal moves of its pieces by dropping those that leave its own
// king attacked.
type Player struct {
	board    *Board
	alliance Alliance
	king     Piece
	hasKing  bool

	legalOnce  sync.Once
	legalMoves []Move
}

func newPlayer(board *Board, alliance Alliance) *Player {
	p := &Player{board: board, alliance: alliance}
	for _, piece := range board.ActivePieces(alliance) {
		if piece.Type.IsKing() {
			p.king, p.hasKing = piece, true
			break
		}
	}
	return p
}

func (p *Player) Alliance() Alliance {
	return p.alliance
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) King() (Piece, bool) {
	return p.king, p.hasKing
}

func (p *Player) ActivePieces() []Piece {
	return p.board.ActivePieces(p.alliance)
}

func (p *Player) Opponent() *Player {
	return p.board.Player(p.alliance.Opponent())
}

// LegalMoves returns a copy of the legal moves; they are computed once per
// board.
func (p *Player) LegalMoves() []Move {
	return slices.Clone(p.legalSet())
}

// OpponentMoves returns the opponent's pseudo-legal moves on this board.
func (p *Player) OpponentMoves() []Move {
	return slices.Clone(p.board.pseudoLegalMoves(p.alliance.Opponent()))
}

func (p *Player) legalSet() []Move {
	p.legalOnce.Do(func() {
		p.legalMoves = []Move{}
		for _, move := range p.board.pseudoLegalMoves(p.alliance) {
			if !kingAttacked(move.Execute(p.board), p.alliance) {
				p.legalMoves = append(p.legalMoves, move)
			}
		}
	})
	return p.legalMoves
}

func kingAttacked(board *Board, alliance Alliance) bool {
	king, ok := board.Player(alliance).King()
	return ok && board.IsAttacked(king.Coordinate, alliance.Opponent())
}

func (p *Player) IsMoveLegal(move Move) bool {
	return slices.Contains(p.legalSet(), move)
}

func (p *Player) IsInCheck() bool {
	return kingAttacked(p.board, p.alliance)
}

func (p *Player) IsInCheckMate() bool {
	return p.IsInCheck() && len(p.legalSet()) == 0
}

func (p *Player) IsInStaleMate() bool {
	return !p.IsInCheck() && len(p.legalSet()) == 0
}

func (p *Player) Status() GameStatus {
	switch {
	case p.IsInCheckMate():
		return Checkmate
	case p.IsInStaleMate():
		return Stalemate
	}
	return Ongoing
}

// IsKingSideCastleCapable reports castling rights: king and kingside rook
// unmoved on their home cells. Attacks and blockers are not considered.
func (p *Player) IsKingSideCastleCapable() bool {
	return p.castleCapable(7)
}

func (p *Player) IsQueenSideCastleCapable() bool {
	return p.castleCapable(0)
}

func (p *Player) castleCapable(rookX int) bool {
	if !p.hasKing || !p.king.FirstMove || p.king.Coordinate != p.alliance.kingHome() {
		return false
	}
	_, ok := castleRook(p.board, p.alliance, Position{X: rookX, Y: p.alliance.backRow()}.Coordinate())
	return ok
}

// IsCastled reports whether this side castled on the way to this board.
func (p *Player) IsCastled() bool {
	for b := p.board; b != nil; b = b.previous {
		if m := b.transitionMove; m.IsCastle() && m.MovedPiece.Alliance == p.alliance {
			return true
		}
	}
	return false
}

// MakeMove tries move on this player's board. Rejected moves return the
// original board untouched.
func (p *Player) MakeMove(move Move) MoveTransition {
	if p.alliance != p.board.moveMaker || !p.IsMoveLegal(move) {
		return MoveTransition{Board: p.board, Move: move, Status: IllegalMove}
	}
	return p.applyMove(move)
}

func (p *Player) applyMove(move Move) MoveTransition {
	next := move.Execute(p.board)
	if kingAttacked(next, p.alliance) {
		return MoveTransition{Board: p.board, Move: move, Status: LeavesPlayerInCheck}
	}
	return MoveTransition{Board: next, Move: move, Status: Done}
}
