package model

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

func (p PieceType) Valid() bool {
	return p.getPieceNotation() != ""
}

func (p PieceType) IsKing() bool {
	return p == King
}

func (p PieceType) IsRook() bool {
	return p == Rook
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// promotionTypes is the order promotion moves are emitted in.
var promotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

// Piece is a comparable value: two pieces with the same kind, alliance,
// coordinate and first-move flag are equal and hash to the same map key.
type Piece struct {
	Type       PieceType `json:"type"`
	Alliance   Alliance  `json:"alliance"`
	Coordinate int       `json:"coordinate"`
	FirstMove  bool      `json:"firstMove"`
}

// NewPiece returns a piece that has not moved yet.
func NewPiece(pieceType PieceType, alliance Alliance, coordinate int) Piece {
	return Piece{Type: pieceType, Alliance: alliance, Coordinate: coordinate, FirstMove: true}
}

// CalculateLegalMoves returns the pseudo-legal moves of the piece on board.
// Moves that leave the own king attacked are not filtered here.
func (p Piece) CalculateLegalMoves(board *Board) []Move {
	return pieceMoves(board, p, true)
}

// MovePiece returns the piece as it stands after move: relocated, promoted
// when the move is a promotion, and no longer on its first move.
func (p Piece) MovePiece(move Move) Piece {
	moved := Piece{
		Type:       p.Type,
		Alliance:   p.Alliance,
		Coordinate: move.Destination,
		FirstMove:  false,
	}
	if move.Kind == PawnPromotion {
		moved.Type = move.PromotionType
	}
	return moved
}

func (p Piece) String() string {
	return p.Type.getPieceNotation()
}
