package model

type GameStatus string

const (
	Ongoing   GameStatus = "ongoing"
	Checkmate GameStatus = "checkmate"
	Stalemate GameStatus = "stalemate"
)

func (s GameStatus) IsOver() bool {
	return s == Checkmate || s == Stalemate
}
