package model

import "errors"

var (
	ErrInvalidCoordinate  = errors.New("coordinate out of range")
	ErrOccupiedCoordinate = errors.New("coordinate already occupied")
	ErrInvalidPiece       = errors.New("invalid piece")
	ErrMultipleKings      = errors.New("more than one king per side")
	ErrNothingToUndo      = errors.New("nothing to undo")
)
