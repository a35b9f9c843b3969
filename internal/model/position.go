package model

import "fmt"

const (
	NumCells     = 64
	NumCellsRow  = 8
	invalidCoord = -1
)

// Position is the column/row form of a coordinate. X is the file (0 = a),
// Y the row from Black's side (0 = rank 8).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func PositionOf(coordinate int) Position {
	return Position{X: coordinate % NumCellsRow, Y: coordinate / NumCellsRow}
}

func (p Position) Coordinate() int {
	if !boundaryCheck(p) {
		return invalidCoord
	}
	return p.Y*NumCellsRow + p.X
}

func (p Position) add(dir Position) Position {
	return Position{X: p.X + dir.X, Y: p.Y + dir.Y}
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < NumCellsRow && position.Y >= 0 && position.Y < NumCellsRow
}

func IsValidCoordinate(coordinate int) bool {
	return coordinate >= 0 && coordinate < NumCells
}

// CoordinateName renders a coordinate as a square name such as "e4". It is
// meant for logs and debug output only.
func CoordinateName(coordinate int) string {
	if !IsValidCoordinate(coordinate) {
		return "-"
	}
	return PositionOf(coordinate).getSquareNotation()
}
