package bot

import (
	"sort"

	"bigtwo/internal/domain"
)

var moveSizes = []int{1, 2, 3, 5}

// LegalMoves returns every hand the viewer could play right now, weakest first.
// It returns nil when the viewer cannot act.
func LegalMoves(view domain.View) []domain.Classification {
	if !view.CanAct {
		return nil
	}
	var table *domain.Classification
	if view.LastPlayed != nil {
		table = &view.LastPlayed.Hand
	}

	hand := append([]domain.Card(nil), view.Hand...)
	domain.SortHand(hand)

	var moves []domain.Classification
	for _, size := range moveSizes {
		// Five-card hands can only follow five-card hands; everything else must match size.
		if table != nil && table.Size() != size {
			continue
		}
		combinations(hand, size, func(cards []domain.Card) {
			if view.MustIncludeOpeningCard && !domain.ContainsCard(cards, domain.OpeningCard) {
				return
			}
			c := domain.Classify(cards)
			if domain.CanPlayOver(c, table) {
				moves = append(moves, c)
			}
		})
	}
	sort.SliceStable(moves, func(i, j int) bool { return weaker(moves[i], moves[j]) })
	return moves
}

// weaker orders non-bombs before bombs, then by key, then bigger hands first so more cards are shed
// at the same cost.
func weaker(a, b domain.Classification) bool {
	if a.Type.IsBomb() != b.Type.IsBomb() {
		return !a.Type.IsBomb()
	}
	if cmp := a.Key.Compare(b.Key); cmp != 0 {
		return cmp < 0
	}
	return a.Size() > b.Size()
}

// combinations calls fn with every k-subset of cards. The slice passed to fn is a fresh copy.
func combinations(cards []domain.Card, k int, fn func([]domain.Card)) {
	if k <= 0 || k > len(cards) {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		pick := make([]domain.Card, k)
		for i, j := range idx {
			pick[i] = cards[j]
		}
		fn(pick)

		i := k - 1
		for i >= 0 && idx[i] == len(cards)-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
