package model

import (
	"fmt"
	"strings"
	"testing"
)

// sq converts a square name such as "e4" to a coordinate.
func sq(name string) int {
	return Position{X: int(name[0] - 'a'), Y: 8 - int(name[1]-'0')}.Coordinate()
}

var fenTypes = map[byte]PieceType{'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King}

// parseFEN builds a board from FEN for tests. Pawns on their start row and
// kings/rooks backing a castling right are marked as not yet moved.
func parseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen %q: want at least 4 fields", fen)
	}
	rights := fields[2]
	hasRight := func(r byte) bool { return strings.IndexByte(rights, r) >= 0 }

	builder := NewBuilder()
	x, y := 0, 0
	for i := 0; i < len(fields[0]); i++ {
		ch := fields[0][i]
		switch {
		case ch == '/':
			x, y = 0, y+1
		case ch >= '1' && ch <= '8':
			x += int(ch - '0')
		default:
			alliance := White
			lower := ch
			if ch >= 'a' && ch <= 'z' {
				alliance = Black
			} else {
				lower = ch + ('a' - 'A')
			}
			pieceType, ok := fenTypes[lower]
			if !ok {
				return nil, fmt.Errorf("fen %q: bad piece %q", fen, ch)
			}
			pos := Position{X: x, Y: y}
			piece := Piece{Type: pieceType, Alliance: alliance, Coordinate: pos.Coordinate()}
			kingSide, queenSide := byte('K'), byte('Q')
			if alliance.IsBlack() {
				kingSide, queenSide = 'k', 'q'
			}
			switch pieceType {
			case Pawn:
				piece.FirstMove = y == alliance.pawnStartRow()
			case King:
				piece.FirstMove = hasRight(kingSide) || hasRight(queenSide)
			case Rook:
				piece.FirstMove = y == alliance.backRow() &&
					((x == 7 && hasRight(kingSide)) || (x == 0 && hasRight(queenSide)))
			}
			builder.SetPiece(piece)
			x++
		}
	}

	switch fields[1] {
	case "w":
		builder.SetMoveMaker(White)
	case "b":
		builder.SetMoveMaker(Black)
	default:
		return nil, fmt.Errorf("fen %q: bad side %q", fen, fields[1])
	}

	if ep := fields[3]; ep != "-" {
		target := PositionOf(sq(ep))
		jumped := White
		if fields[1] == "w" {
			jumped = Black
		}
		// the pawn stands one row past the target in its own direction
		at := Position{X: target.X, Y: target.Y + jumped.Direction()}.Coordinate()
		builder.SetEnPassantPawn(Piece{Type: Pawn, Alliance: jumped, Coordinate: at})
	}
	return builder.Build()
}

func mustFEN(t testing.TB, fen string) *Board {
	t.Helper()
	board, err := parseFEN(fen)
	if err != nil {
		t.Fatalf("parseFEN: %v", err)
	}
	return board
}

// toFEN writes the board in FEN so it can be handed to other move
// generators.
func toFEN(b *Board) string {
	var sb strings.Builder
	for y := 0; y < NumCellsRow; y++ {
		empty := 0
		for x := 0; x < NumCellsRow; x++ {
			piece, ok := b.Piece(Position{X: x, Y: y}.Coordinate())
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			s := piece.String()
			if piece.Alliance.IsBlack() {
				s = strings.ToLower(s)
			}
			sb.WriteString(s)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if y < NumCellsRow-1 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if b.MoveMaker().IsBlack() {
		side = "b"
	}

	rights := ""
	if b.WhitePlayer().IsKingSideCastleCapable() {
		rights += "K"
	}
	if b.WhitePlayer().IsQueenSideCastleCapable() {
		rights += "Q"
	}
	if b.BlackPlayer().IsKingSideCastleCapable() {
		rights += "k"
	}
	if b.BlackPlayer().IsQueenSideCastleCapable() {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}

	ep := "-"
	if pawn := b.EnPassantPawn(); pawn != nil {
		pos := PositionOf(pawn.Coordinate)
		ep = CoordinateName(Position{X: pos.X, Y: pos.Y - pawn.Alliance.Direction()}.Coordinate())
	}
	return fmt.Sprintf("%s %s %s %s 0 1", sb.String(), side, rights, ep)
}

func findMove(moves []Move, from, to string) (Move, bool) {
	for _, m := range moves {
		if m.Current() == sq(from) && m.Destination == sq(to) {
			return m, true
		}
	}
	return Move{}, false
}

func destinations(moves []Move) map[int]int {
	out := make(map[int]int)
	for _, m := range moves {
		out[m.Destination]++
	}
	return out
}

// play applies moves given as "from-to" pairs and fails on any rejection.
func play(t *testing.T, board *Board, moves ...string) *Board {
	t.Helper()
	for _, m := range moves {
		from, to, _ := strings.Cut(m, "-")
		move := CreateMove(board, sq(from), sq(to), "")
		transition := board.CurrentPlayer().MakeMove(move)
		if !transition.Status.IsDone() {
			t.Fatalf("move %s: status %s\n%s", m, transition.Status, board)
		}
		board = transition.Board
	}
	return board
}
