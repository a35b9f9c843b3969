package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = queenDirs
)

// pieceMoves dispatches on the piece kind. Castles are left out when
// withCastles is false, which is what attack maps need.
func pieceMoves(board *Board, piece Piece, withCastles bool) []Move {
	switch piece.Type {
	case Pawn:
		return pawnMoves(board, piece)
	case Knight:
		return stepMoves(board, piece, knightDirs)
	case Bishop:
		return slideMoves(board, piece, bishopDirs)
	case Rook:
		return slideMoves(board, piece, rookDirs)
	case Queen:
		return slideMoves(board, piece, queenDirs)
	case King:
		moves := stepMoves(board, piece, kingDirs)
		if withCastles {
			moves = append(moves, castleMoves(board, piece)...)
		}
		return moves
	}
	return nil
}

// targetMove returns the move onto target, or false when a friendly piece
// is standing there.
func targetMove(board *Board, piece Piece, target int) (Move, bool) {
	occupant, occupied := board.Piece(target)
	if !occupied {
		return Move{Kind: MajorMove, MovedPiece: piece, Destination: target}, true
	}
	if occupant.Alliance == piece.Alliance {
		return Move{}, false
	}
	return Move{Kind: MajorAttackMove, MovedPiece: piece, Destination: target, AttackedPiece: occupant}, true
}

func stepMoves(board *Board, piece Piece, dirs []Position) []Move {
	moves := []Move{}
	from := PositionOf(piece.Coordinate)
	for _, dir := range dirs {
		targetPos := from.add(dir)
		if !boundaryCheck(targetPos) {
			continue
		}
		if move, ok := targetMove(board, piece, targetPos.Coordinate()); ok {
			moves = append(moves, move)
		}
	}
	return moves
}

func slideMoves(board *Board, piece Piece, dirs []Position) []Move {
	moves := []Move{}
	from := PositionOf(piece.Coordinate)
	for _, dir := range dirs {
		for targetPos := from.add(dir); boundaryCheck(targetPos); targetPos = targetPos.add(dir) {
			move, ok := targetMove(board, piece, targetPos.Coordinate())
			if !ok {
				break
			}
			moves = append(moves, move)
			if move.IsAttack() {
				break
			}
		}
	}
	return moves
}

func pawnMoves(board *Board, piece Piece) []Move {
	moves := []Move{}
	from := PositionOf(piece.Coordinate)
	dir := piece.Alliance.Direction()
	promotionRow := piece.Alliance.promotionRow()

	one := from.add(Position{X: 0, Y: dir})
	if boundaryCheck(one) && !board.Cell(one.Coordinate()).IsOccupied() {
		step := Move{Kind: PawnMove, MovedPiece: piece, Destination: one.Coordinate()}
		if one.Y == promotionRow {
			moves = append(moves, promotions(step)...)
		} else {
			moves = append(moves, step)
		}
		two := one.add(Position{X: 0, Y: dir})
		if piece.FirstMove && from.Y == piece.Alliance.pawnStartRow() && !board.Cell(two.Coordinate()).IsOccupied() {
			moves = append(moves, Move{Kind: PawnJump, MovedPiece: piece, Destination: two.Coordinate()})
		}
	}

	for _, dx := range []int{-1, 1} {
		targetPos := from.add(Position{X: dx, Y: dir})
		if !boundaryCheck(targetPos) {
			continue
		}
		target := targetPos.Coordinate()
		if occupant, occupied := board.Piece(target); occupied {
			if occupant.Alliance == piece.Alliance {
				continue
			}
			attack := Move{Kind: PawnAttackMove, MovedPiece: piece, Destination: target, AttackedPiece: occupant}
			if targetPos.Y == promotionRow {
				moves = append(moves, promotions(attack)...)
			} else {
				moves = append(moves, attack)
			}
			continue
		}
		if ep := board.EnPassantPawn(); ep != nil && ep.Alliance != piece.Alliance &&
			ep.Coordinate == (Position{X: from.X + dx, Y: from.Y}).Coordinate() {
			moves = append(moves, Move{Kind: PawnEnPassantAttack, MovedPiece: piece, Destination: target, AttackedPiece: *ep})
		}
	}
	return moves
}

// promotions fans a move onto the last row out into one move per kind.
func promotions(base Move) []Move {
	moves := make([]Move, 0, len(promotionTypes))
	for _, t := range promotionTypes {
		m := base
		m.Kind = PawnPromotion
		m.PromotionType = t
		moves = append(moves, m)
	}
	return moves
}

func castleMoves(board *Board, king Piece) []Move {
	alliance := king.Alliance
	opponent := alliance.Opponent()
	if !king.FirstMove || king.Coordinate != alliance.kingHome() || board.IsAttacked(king.Coordinate, opponent) {
		return nil
	}
	row := alliance.backRow()
	at := func(x int) int { return Position{X: x, Y: row}.Coordinate() }
	free := func(xs ...int) bool {
		for _, x := range xs {
			if board.Cell(at(x)).IsOccupied() {
				return false
			}
		}
		return true
	}
	safe := func(xs ...int) bool {
		for _, x := range xs {
			if board.IsAttacked(at(x), opponent) {
				return false
			}
		}
		return true
	}

	moves := []Move{}
	if rook, ok := castleRook(board, alliance, at(7)); ok && free(5, 6) && safe(5, 6) {
		moves = append(moves, Move{
			Kind:                  KingSideCastle,
			MovedPiece:            king,
			Destination:           at(6),
			CastleRook:            rook,
			CastleRookDestination: at(5),
		})
	}
	if rook, ok := castleRook(board, alliance, at(0)); ok && free(1, 2, 3) && safe(3, 2) {
		moves = append(moves, Move{
			Kind:                  QueenSideCastle,
			MovedPiece:            king,
			Destination:           at(2),
			CastleRook:            rook,
			CastleRookDestination: at(3),
		})
	}
	return moves
}

func castleRook(board *Board, alliance Alliance, coordinate int) (Piece, bool) {
	rook, ok := board.Piece(coordinate)
	if !ok || !rook.Type.IsRook() || rook.Alliance != alliance || !rook.FirstMove {
		return Piece{}, false
	}
	return rook, true
}
