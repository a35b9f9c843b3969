package model

import (
	"errors"
	"fmt"
)

// Builder accumulates placements and commits them to one immutable Board.
type Builder struct {
	config        map[int]Piece
	moveMaker     Alliance
	enPassantPawn *Piece
	transition    Move
	previous      *Board
	errs          []error
}

func NewBuilder() *Builder {
	return &Builder{
		config:    make(map[int]Piece, NumCells),
		moveMaker: White,
	}
}

func (b *Builder) SetPiece(piece Piece) *Builder {
	if !IsValidCoordinate(piece.Coordinate) {
		b.errs = append(b.errs, fmt.Errorf("%w: %d", ErrInvalidCoordinate, piece.Coordinate))
		return b
	}
	if !piece.Type.Valid() || !piece.Alliance.Valid() {
		b.errs = append(b.errs, fmt.Errorf("%w: %q %q", ErrInvalidPiece, piece.Alliance, piece.Type))
		return b
	}
	if _, exists := b.config[piece.Coordinate]; exists {
		b.errs = append(b.errs, fmt.Errorf("%w: %d", ErrOccupiedCoordinate, piece.Coordinate))
		return b
	}
	b.config[piece.Coordinate] = piece
	return b
}

func (b *Builder) SetMoveMaker(alliance Alliance) *Builder {
	b.moveMaker = alliance
	return b
}

// SetEnPassantPawn marks the pawn that just jumped two rows.
func (b *Builder) SetEnPassantPawn(pawn Piece) *Builder {
	b.enPassantPawn = &pawn
	return b
}

func (b *Builder) setTransition(move Move, previous *Board) *Builder {
	b.transition = move
	b.previous = previous
	return b
}

// Build validates the placements and returns the board. Placement errors
// are caller bugs and abort construction.
func (b *Builder) Build() (*Board, error) {
	errs := append([]error{}, b.errs...)
	if !b.moveMaker.Valid() {
		errs = append(errs, fmt.Errorf("invalid side to move %q", b.moveMaker))
	}
	kings := map[Alliance]int{}
	for _, piece := range b.config {
		if piece.Type.IsKing() {
			kings[piece.Alliance]++
		}
	}
	for alliance, n := range kings {
		if n > 1 {
			errs = append(errs, fmt.Errorf("%w: %s has %d", ErrMultipleKings, alliance, n))
		}
	}
	if ep := b.enPassantPawn; ep != nil {
		if placed, ok := b.config[ep.Coordinate]; !ok || placed != *ep || ep.Type != Pawn {
			errs = append(errs, fmt.Errorf("%w: en passant pawn not on board", ErrInvalidPiece))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}
	return b.build(), nil
}

// MustBuild is Build for positions known to be well formed.
func (b *Builder) MustBuild() *Board {
	board, err := b.Build()
	if err != nil {
		panic(err)
	}
	return board
}

func (b *Builder) build() *Board {
	board := &Board{
		moveMaker:      b.moveMaker,
		enPassantPawn:  b.enPassantPawn,
		transitionMove: b.transition,
		previous:       b.previous,
	}
	for i := 0; i < NumCells; i++ {
		if piece, ok := b.config[i]; ok {
			board.cells[i] = NewCell(i, &piece)
			if piece.Alliance.IsWhite() {
				board.whitePieces = append(board.whitePieces, piece)
			} else {
				board.blackPieces = append(board.blackPieces, piece)
			}
			continue
		}
		board.cells[i] = NewCell(i, nil)
	}
	board.whitePlayer = newPlayer(board, White)
	board.blackPlayer = newPlayer(board, Black)
	return board
}
