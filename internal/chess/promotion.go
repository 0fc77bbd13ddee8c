package chess

// NeedsPromotion reports whether p standing on l is a pawn on the opponent's back rank.
func NeedsPromotion(p Piece, l Location) bool {
	return p.Kind == Pawn && l.Row == p.Color.Opponent().backRank()
}

// PromotionChooser supplies the piece a pawn promotes to. Returning ok=false
// cancels the move.
type PromotionChooser interface {
	ChoosePromotion(c Color) (kind Kind, ok bool)
}

// ChooserFunc adapts a function to PromotionChooser.
type ChooserFunc func(c Color) (Kind, bool)

func (f ChooserFunc) ChoosePromotion(c Color) (Kind, bool) { return f(c) }

// AutoQueen always promotes to a queen.
var AutoQueen PromotionChooser = ChooserFunc(func(Color) (Kind, bool) { return Queen, true })

func validPromotion(k Kind) bool {
	switch k {
	case Knight, Bishop, Rook, Queen:
		return true
	}
	return false
}
