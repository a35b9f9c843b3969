package model

import (
	"strings"
	"sync"
)

// Board is an immutable position: 64 cells, the pieces of each side and the
// side to move. Derived move data is computed on first use and cached, so a
// Board may be shared between goroutines.
type Board struct {
	cells       [NumCells]*Cell
	whitePieces []Piece
	blackPieces []Piece
	moveMaker   Alliance

	enPassantPawn  *Piece
	transitionMove Move
	previous       *Board

	whitePlayer *Player
	blackPlayer *Player

	derived [2]derivedMoves
}

type derivedMoves struct {
	attackOnce sync.Once
	attacked   [NumCells]bool

	pseudoOnce sync.Once
	pseudo     []Move
}

var backRowTypes = [NumCellsRow]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StandardBoard returns the initial position with White to move.
func StandardBoard() *Board {
	builder := NewBuilder()
	for x := 0; x < NumCellsRow; x++ {
		builder.SetPiece(NewPiece(backRowTypes[x], Black, Position{X: x, Y: Black.backRow()}.Coordinate()))
		builder.SetPiece(NewPiece(Pawn, Black, Position{X: x, Y: Black.pawnStartRow()}.Coordinate()))
		builder.SetPiece(NewPiece(Pawn, White, Position{X: x, Y: White.pawnStartRow()}.Coordinate()))
		builder.SetPiece(NewPiece(backRowTypes[x], White, Position{X: x, Y: White.backRow()}.Coordinate()))
	}
	return builder.SetMoveMaker(White).MustBuild()
}

func (b *Board) Cell(coordinate int) *Cell {
	return b.cells[coordinate]
}

// Piece returns the piece on coordinate. Coordinates off the board are
// reported as empty.
func (b *Board) Piece(coordinate int) (Piece, bool) {
	if !IsValidCoordinate(coordinate) {
		return Piece{}, false
	}
	return b.cells[coordinate].Piece()
}

// ActivePieces returns the pieces of alliance ordered by coordinate. The
// slice is shared and must not be modified.
func (b *Board) ActivePieces(alliance Alliance) []Piece {
	if alliance.IsBlack() {
		return b.blackPieces
	}
	return b.whitePieces
}

func (b *Board) MoveMaker() Alliance {
	return b.moveMaker
}

func (b *Board) WhitePlayer() *Player {
	return b.whitePlayer
}

func (b *Board) BlackPlayer() *Player {
	return b.blackPlayer
}

func (b *Board) Player(alliance Alliance) *Player {
	if alliance.IsBlack() {
		return b.blackPlayer
	}
	return b.whitePlayer
}

func (b *Board) CurrentPlayer() *Player {
	return b.Player(b.moveMaker)
}

// EnPassantPawn is the pawn that jumped two rows on the previous ply, or nil.
func (b *Board) EnPassantPawn() *Piece {
	if b.enPassantPawn == nil {
		return nil
	}
	pawn := *b.enPassantPawn
	return &pawn
}

// TransitionMove is the move that produced this board, NullMove for built
// positions.
func (b *Board) TransitionMove() Move {
	return b.transitionMove
}

// Previous is the board TransitionMove was played on, nil for built
// positions.
func (b *Board) Previous() *Board {
	return b.previous
}

// IsAttacked reports whether a piece of alliance attacks coordinate.
func (b *Board) IsAttacked(coordinate int, by Alliance) bool {
	if !IsValidCoordinate(coordinate) {
		return false
	}
	return b.attackMap(by)[coordinate]
}

func (b *Board) Status() GameStatus {
	return b.CurrentPlayer().Status()
}

func (b *Board) derivedFor(alliance Alliance) *derivedMoves {
	if alliance.IsBlack() {
		return &b.derived[1]
	}
	return &b.derived[0]
}

// attackMap marks every cell a piece of alliance could capture on. Pawns
// attack diagonally whether or not the cell is occupied; castles never
// attack.
func (b *Board) attackMap(alliance Alliance) *[NumCells]bool {
	d := b.derivedFor(alliance)
	d.attackOnce.Do(func() {
		for _, piece := range b.ActivePieces(alliance) {
			if piece.Type == Pawn {
				from := PositionOf(piece.Coordinate)
				for _, dx := range []int{-1, 1} {
					if target := from.add(Position{X: dx, Y: alliance.Direction()}); boundaryCheck(target) {
						d.attacked[target.Coordinate()] = true
					}
				}
				continue
			}
			for _, move := range pieceMoves(b, piece, false) {
				d.attacked[move.Destination] = true
			}
		}
	})
	return &d.attacked
}

func (b *Board) pseudoLegalMoves(alliance Alliance) []Move {
	d := b.derivedFor(alliance)
	d.pseudoOnce.Do(func() {
		d.pseudo = []Move{}
		for _, piece := range b.ActivePieces(alliance) {
			d.pseudo = append(d.pseudo, piece.CalculateLegalMoves(b)...)
		}
	})
	return d.pseudo
}

func (b *Board) String() string {
	var sb strings.Builder
	for i := 0; i < NumCells; i++ {
		sb.WriteString(b.cells[i].String())
		if (i+1)%NumCellsRow == 0 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
