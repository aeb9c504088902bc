package domain

import "testing"

func classify(t *testing.T, ids ...string) Classification {
	t.Helper()
	return Classify(mustCards(t, ids...))
}

func TestCanPlayOver(t *testing.T) {
	tests := []struct {
		name     string
		table    []string
		new      []string
		expected bool
	}{
		{name: "Higher single beats lower single", table: []string{"3D"}, new: []string{"3C"}, expected: true},
		{name: "Lower single loses", table: []string{"KD"}, new: []string{"QS"}, expected: false},
		{name: "Equal strength does not beat", table: []string{"5H", "5S"}, new: []string{"5H", "5S"}, expected: false},
		{name: "Higher suit in pair", table: []string{"5D", "5C"}, new: []string{"5H", "5S"}, expected: true},
		{name: "Single cannot beat pair", table: []string{"4D", "4C"}, new: []string{"2S"}, expected: false},
		{name: "Pair cannot beat single", table: []string{"4D"}, new: []string{"2H", "2S"}, expected: false},
		{name: "Higher triple", table: []string{"4D", "4C", "4H"}, new: []string{"9D", "9C", "9H"}, expected: true},
		{name: "Higher straight", table: []string{"3D", "4C", "5H", "6S", "7D"}, new: []string{"4D", "5C", "6H", "7S", "8D"}, expected: true},
		{name: "Low run loses to three to seven", table: []string{"3H", "4C", "5H", "6S", "7D"}, new: []string{"3D", "4D", "5S", "AS", "2D"}, expected: false},
		{name: "Flush cannot beat straight", table: []string{"3D", "4C", "5H", "6S", "7D"}, new: []string{"3H", "7H", "9H", "JH", "KH"}, expected: false},
		{name: "Full house cannot beat flush", table: []string{"3H", "7H", "9H", "JH", "KH"}, new: []string{"8D", "8C", "8H", "4S", "4D"}, expected: false},
		{name: "Higher full house", table: []string{"8D", "8C", "8H", "4S", "4D"}, new: []string{"9D", "9C", "9H", "3S", "3D"}, expected: true},
		{name: "Quad chops flush", table: []string{"3H", "7H", "9H", "JH", "2H"}, new: []string{"4D", "4C", "4H", "4S", "3D"}, expected: true},
		{name: "Quad chops top straight", table: []string{"JD", "QC", "KH", "AS", "2S"}, new: []string{"3D", "3C", "3H", "3S", "4D"}, expected: true},
		{name: "Straight flush chops full house", table: []string{"AD", "AC", "AH", "KS", "KD"}, new: []string{"3S", "4S", "5S", "6S", "7S"}, expected: true},
		{name: "Straight flush chops quad", table: []string{"2D", "2C", "2H", "2S", "3D"}, new: []string{"3C", "4C", "5C", "AC", "2C"}, expected: true},
		{name: "Quad cannot beat straight flush", table: []string{"3S", "4S", "5S", "6S", "7S"}, new: []string{"2D", "2C", "2H", "2S", "3D"}, expected: false},
		{name: "Higher quad", table: []string{"5D", "5C", "5H", "5S", "3D"}, new: []string{"6D", "6C", "6H", "6S", "3C"}, expected: true},
		{name: "Higher straight flush", table: []string{"3S", "4S", "5S", "6S", "7S"}, new: []string{"4H", "5H", "6H", "7H", "8H"}, expected: true},
		{name: "Quad cannot chop single", table: []string{"2S"}, new: []string{"4D", "4C", "4H", "4S", "3D"}, expected: false},
		{name: "Straight cannot beat quad", table: []string{"4D", "4C", "4H", "4S", "3D"}, new: []string{"10D", "JC", "QH", "KS", "AD"}, expected: false},
		{name: "Invalid candidate", table: []string{"3D"}, new: []string{"5H", "6S"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := classify(t, tt.table...)
			if got := CanPlayOver(classify(t, tt.new...), &table); got != tt.expected {
				t.Fatalf("CanPlayOver() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCanPlayOverLead(t *testing.T) {
	if !CanPlayOver(classify(t, "3D"), nil) {
		t.Fatalf("any valid hand may lead")
	}
	if !CanPlayOver(classify(t, "3H", "7H", "9H", "JH", "KH"), nil) {
		t.Fatalf("any valid hand may lead")
	}
	if CanPlayOver(classify(t, "3D", "5C"), nil) {
		t.Fatalf("invalid hand must not lead")
	}
}

func TestNothingBeatsTwoOfSpades(t *testing.T) {
	top := classify(t, "2S")
	for _, c := range NewDeck() {
		if CanPlayOver(Classify([]Card{c}), &top) {
			t.Fatalf("%s beat the two of spades", c)
		}
	}
}

// Same-type ordering must match the strength key and be antisymmetric.
func TestCanPlayOverSameTypeOrdering(t *testing.T) {
	deck := NewDeck()
	var hands []Classification
	for _, c := range deck {
		hands = append(hands, Classify([]Card{c}))
	}
	for i := 0; i < len(deck); i++ {
		for j := i + 1; j < len(deck); j++ {
			if pair := Classify([]Card{deck[i], deck[j]}); pair.Valid() {
				hands = append(hands, pair)
			}
		}
	}

	for i := range hands {
		for j := range hands {
			a, b := hands[i], hands[j]
			if a.Type != b.Type {
				continue
			}
			ab := CanPlayOver(a, &b)
			ba := CanPlayOver(b, &a)
			if ab != (a.Key.Compare(b.Key) > 0) {
				t.Fatalf("CanPlayOver(%v, %v) = %v disagrees with key order", a.Cards, b.Cards, ab)
			}
			if ab && ba {
				t.Fatalf("%v and %v beat each other", a.Cards, b.Cards)
			}
		}
	}
}
