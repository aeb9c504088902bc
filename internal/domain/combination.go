package domain

import "sort"

// HandType is the category of a played group of cards, enumerated in priority order.
type HandType int

const (
	Invalid HandType = iota
	Single
	Pair
	Triple
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var handTypeNames = map[HandType]string{
	Invalid:       "invalid",
	Single:        "single",
	Pair:          "pair",
	Triple:        "triple",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full_house",
	FourOfAKind:   "four_of_a_kind",
	StraightFlush: "straight_flush",
}

func (t HandType) String() string {
	if name, ok := handTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

// IsBomb reports whether the type may override any non-bomb five-card hand.
func (t HandType) IsBomb() bool {
	return t == FourOfAKind || t == StraightFlush
}

// Strength orders hands of the same type: Primary is a rank value, Secondary a suit value.
type Strength struct {
	Primary   int
	Secondary int
}

// Compare returns -1, 0 or 1.
func (s Strength) Compare(other Strength) int {
	switch {
	case s.Primary != other.Primary:
		if s.Primary < other.Primary {
			return -1
		}
		return 1
	case s.Secondary != other.Secondary:
		if s.Secondary < other.Secondary {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func strengthOf(c Card) Strength {
	return Strength{Primary: c.RankValue(), Secondary: c.SuitValue()}
}

// Classification is the result of classifying a selection of cards.
type Classification struct {
	Type  HandType
	Key   Strength
	Cards []Card // sorted ascending
}

// Valid reports whether the classification is playable at all.
func (c Classification) Valid() bool { return c.Type != Invalid }

// Size is the number of cards in the hand.
func (c Classification) Size() int { return len(c.Cards) }

// Compare orders classifications by type, then by key.
func (c Classification) Compare(other Classification) int {
	if c.Type != other.Type {
		if c.Type < other.Type {
			return -1
		}
		return 1
	}
	return c.Key.Compare(other.Key)
}

// lowRun is the special straight 3-4-5-A-2, topped by its 5.
var lowRun = [5]Rank{Rank3, Rank4, Rank5, RankA, Rank2}

// Classify maps a selection of cards to its hand type and strength key.
func Classify(cards []Card) Classification {
	sorted := append([]Card(nil), cards...)
	SortHand(sorted)
	invalid := Classification{Type: Invalid, Cards: sorted}

	if hasDuplicates(sorted) {
		return invalid
	}
	for _, c := range sorted {
		if !c.Valid() {
			return invalid
		}
	}

	n := len(sorted)
	if n == 0 {
		return invalid
	}
	top := sorted[n-1]
	switch n {
	case 1:
		return Classification{Type: Single, Key: strengthOf(top), Cards: sorted}
	case 2:
		if allSameRank(sorted) {
			return Classification{Type: Pair, Key: strengthOf(top), Cards: sorted}
		}
	case 3:
		if allSameRank(sorted) {
			return Classification{Type: Triple, Key: strengthOf(top), Cards: sorted}
		}
	case 5:
		return classifyFive(sorted)
	}
	return invalid
}

func classifyFive(sorted []Card) Classification {
	flush := isFlush(sorted)
	straightTop, straight := straightTopCard(sorted)

	if straight && flush {
		return Classification{Type: StraightFlush, Key: strengthOf(straightTop), Cards: sorted}
	}

	groups := rankGroups(sorted)
	if len(groups) == 2 {
		big, small := groups[0], groups[1]
		switch {
		case big.count == 4 && small.count == 1:
			return Classification{Type: FourOfAKind, Key: Strength{Primary: int(big.rank)}, Cards: sorted}
		case big.count == 3 && small.count == 2:
			return Classification{Type: FullHouse, Key: Strength{Primary: int(big.rank)}, Cards: sorted}
		}
	}

	if flush {
		return Classification{Type: Flush, Key: strengthOf(sorted[len(sorted)-1]), Cards: sorted}
	}
	if straight {
		return Classification{Type: Straight, Key: strengthOf(straightTop), Cards: sorted}
	}
	return Classification{Type: Invalid, Cards: sorted}
}

func allSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

func isFlush(cards []Card) bool {
	for _, c := range cards {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// straightTopCard detects a five-card run over the game rank order. The only run that is not
// consecutive in that order is 3-4-5-A-2, whose designated top card is the 5.
func straightTopCard(sorted []Card) (Card, bool) {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank == sorted[i-1].Rank {
			return Card{}, false
		}
	}

	if sorted[len(sorted)-1].Rank-sorted[0].Rank == Rank(len(sorted)-1) {
		return sorted[len(sorted)-1], true
	}

	for i, r := range lowRun {
		if sorted[i].Rank != r {
			return Card{}, false
		}
	}
	for _, c := range sorted {
		if c.Rank == Rank5 {
			return c, true
		}
	}
	return Card{}, false
}

type rankGroup struct {
	rank  Rank
	count int
}

// rankGroups returns rank multiplicities, largest group first.
func rankGroups(cards []Card) []rankGroup {
	counts := make(map[Rank]int)
	for _, c := range cards {
		counts[c.Rank]++
	}
	groups := make([]rankGroup, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, rankGroup{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}
