package model

// Alliance identifies a side and the direction its pawns advance in.
type Alliance string

const (
	White Alliance = "white"
	Black Alliance = "black"
)

// Direction is the row delta of a forward step. Row 0 is Black's back rank,
// so White moves towards lower coordinates.
func (a Alliance) Direction() int {
	if a == Black {
		return 1
	}
	return -1
}

func (a Alliance) IsWhite() bool {
	return a == White
}

func (a Alliance) IsBlack() bool {
	return a == Black
}

func (a Alliance) Opponent() Alliance {
	if a == White {
		return Black
	}
	return White
}

func (a Alliance) Valid() bool {
	return a == White || a == Black
}

// pawnStartRow is the row a pawn of this alliance may double step from.
func (a Alliance) pawnStartRow() int {
	if a == Black {
		return 1
	}
	return 6
}

func (a Alliance) promotionRow() int {
	if a == Black {
		return 7
	}
	return 0
}

func (a Alliance) backRow() int {
	if a == Black {
		return 0
	}
	return 7
}

func (a Alliance) kingHome() int {
	return Position{X: 4, Y: a.backRow()}.Coordinate()
}
