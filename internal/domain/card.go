package domain

import (
	"fmt"
	"strings"
)

// Suit is a card suit ordered by value: diamonds < clubs < hearts < spades.
type Suit int32

// Rank is a card rank ordered by game value: 3 is lowest, A is second highest and 2 is highest.
type Rank int32

const (
	SuitDiamonds Suit = iota
	SuitClubs
	SuitHearts
	SuitSpades
)

const (
	Rank3 Rank = iota
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	Rank2
)

// NumSuits and NumRanks describe the 52-card deck.
const (
	NumSuits = 4
	NumRanks = 13
)

var suitLetters = [NumSuits]string{"D", "C", "H", "S"}

var rankLabels = [NumRanks]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

func (s Suit) String() string {
	if s < 0 || int(s) >= NumSuits {
		return "?"
	}
	return suitLetters[s]
}

func (r Rank) String() string {
	if r < 0 || int(r) >= NumRanks {
		return "?"
	}
	return rankLabels[r]
}

// Card is a single playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// OpeningCard must be part of the first play of a round when the opener holds it.
var OpeningCard = Card{Suit: SuitDiamonds, Rank: Rank3}

// RankValue is the card's position in the game rank order (0 for 3, 12 for 2).
func (c Card) RankValue() int { return int(c.Rank) }

// SuitValue is the suit tie-break value (0 for diamonds, 3 for spades).
func (c Card) SuitValue() int { return int(c.Suit) }

// Power orders every card in the deck uniquely.
func (c Card) Power() int {
	return c.RankValue()*NumSuits + c.SuitValue()
}

// Beats reports whether c outranks other as a single card.
func (c Card) Beats(other Card) bool {
	return c.Power() > other.Power()
}

// ID returns the text id of the card, e.g. "10S" or "3D".
func (c Card) ID() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) String() string { return c.ID() }

// Valid reports whether the card has a known suit and rank.
func (c Card) Valid() bool {
	return c.Suit >= 0 && int(c.Suit) < NumSuits && c.Rank >= 0 && int(c.Rank) < NumRanks
}

// ParseCard parses a card id such as "3D", "10s" or "TH".
func ParseCard(id string) (Card, error) {
	s := strings.ToUpper(strings.TrimSpace(id))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: unknown card %q", ErrIllegalHand, id)
	}
	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]
	if rankPart == "T" {
		rankPart = "10"
	}

	card := Card{Suit: -1, Rank: -1}
	for i, l := range suitLetters {
		if l == suitPart {
			card.Suit = Suit(i)
		}
	}
	for i, l := range rankLabels {
		if l == rankPart {
			card.Rank = Rank(i)
		}
	}
	if !card.Valid() {
		return Card{}, fmt.Errorf("%w: unknown card %q", ErrIllegalHand, id)
	}
	return card, nil
}

// ParseCards parses a list of card ids.
func ParseCards(ids []string) ([]Card, error) {
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, err := ParseCard(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// CardIDs converts cards to their text ids.
func CardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return ids
}
