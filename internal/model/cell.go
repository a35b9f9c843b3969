package model

import (
	"fmt"
	"strings"
)

// Cell is one board square, either empty or holding a single piece.
// Cells are immutable; empty cells are shared between boards.
type Cell struct {
	coordinate int
	piece      Piece
	occupied   bool
}

var emptyCells = createAllPossibleEmptyCells()

func createAllPossibleEmptyCells() [NumCells]*Cell {
	var cells [NumCells]*Cell
	for i := 0; i < NumCells; i++ {
		cells[i] = &Cell{coordinate: i}
	}
	return cells
}

// NewCell returns an occupied cell when piece is non-nil, otherwise the
// shared empty cell for the coordinate. A coordinate outside the board is a
// programming error and panics.
func NewCell(coordinate int, piece *Piece) *Cell {
	if !IsValidCoordinate(coordinate) {
		panic(fmt.Sprintf("model: cell coordinate %d out of range", coordinate))
	}
	if piece == nil {
		return emptyCells[coordinate]
	}
	return &Cell{coordinate: coordinate, piece: *piece, occupied: true}
}

func (c *Cell) Coordinate() int {
	return c.coordinate
}

func (c *Cell) IsOccupied() bool {
	return c.occupied
}

func (c *Cell) Piece() (Piece, bool) {
	return c.piece, c.occupied
}

func (c *Cell) String() string {
	if !c.occupied {
		return "-"
	}
	if c.piece.Alliance.IsBlack() {
		return strings.ToLower(c.piece.String())
	}
	return c.piece.String()
}
