package model

type MoveStatus string

const (
	Done                MoveStatus = "done"
	IllegalMove         MoveStatus = "illegal_move"
	LeavesPlayerInCheck MoveStatus = "leaves_player_in_check"
)

func (s MoveStatus) IsDone() bool {
	return s == Done
}

// MoveTransition is the outcome of Player.MakeMove. Board is the new
// position when Status is Done and the original one otherwise.
type MoveTransition struct {
	Board  *Board
	Move   Move
	Status MoveStatus
}
