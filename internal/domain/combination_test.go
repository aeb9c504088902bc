package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		expected HandType
		key      Strength
	}{
		{name: "Single", cards: []string{"3D"}, expected: Single, key: Strength{0, 0}},
		{name: "Single two of spades", cards: []string{"2S"}, expected: Single, key: Strength{12, 3}},
		{name: "Pair", cards: []string{"5H", "5S"}, expected: Pair, key: Strength{2, 3}},
		{name: "Invalid: mixed pair", cards: []string{"5H", "6S"}, expected: Invalid},
		{name: "Triple", cards: []string{"9D", "9C", "9H"}, expected: Triple, key: Strength{6, 2}},
		{name: "Invalid: broken triple", cards: []string{"9D", "9C", "8H"}, expected: Invalid},
		{name: "Invalid: four cards", cards: []string{"9D", "9C", "9H", "9S"}, expected: Invalid},
		{name: "Invalid: duplicate card", cards: []string{"3D", "3D"}, expected: Invalid},
		{name: "Invalid: empty", cards: nil, expected: Invalid},
		{name: "Straight", cards: []string{"3D", "4C", "5H", "6S", "7D"}, expected: Straight, key: Strength{4, 0}},
		{name: "Straight unordered input", cards: []string{"7D", "5H", "3D", "6S", "4C"}, expected: Straight, key: Strength{4, 0}},
		{name: "Straight low run topped by five", cards: []string{"3D", "4C", "5H", "AS", "2D"}, expected: Straight, key: Strength{2, 2}},
		{name: "Straight ten to ace", cards: []string{"10D", "JC", "QH", "KS", "AD"}, expected: Straight, key: Strength{11, 0}},
		{name: "Straight jack to two", cards: []string{"JD", "QC", "KH", "AS", "2D"}, expected: Straight, key: Strength{12, 0}},
		{name: "Invalid: two to six", cards: []string{"2D", "3C", "4H", "5S", "6D"}, expected: Invalid},
		{name: "Flush", cards: []string{"3H", "7H", "9H", "JH", "KH"}, expected: Flush, key: Strength{10, 2}},
		{name: "Full house", cards: []string{"8D", "8C", "8H", "4S", "4D"}, expected: FullHouse, key: Strength{Primary: 5}},
		{name: "Full house low triple", cards: []string{"4D", "4C", "4H", "8S", "8D"}, expected: FullHouse, key: Strength{Primary: 1}},
		{name: "Four of a kind", cards: []string{"KD", "KC", "KH", "KS", "3D"}, expected: FourOfAKind, key: Strength{Primary: 10}},
		{name: "Straight flush", cards: []string{"3S", "4S", "5S", "6S", "7S"}, expected: StraightFlush, key: Strength{4, 3}},
		{name: "Straight flush low run", cards: []string{"3C", "4C", "5C", "AC", "2C"}, expected: StraightFlush, key: Strength{2, 1}},
		{name: "Invalid: five loose cards", cards: []string{"3D", "5C", "7H", "9S", "JD"}, expected: Invalid},
		{name: "Invalid: two pair plus one", cards: []string{"3D", "3C", "7H", "7S", "JD"}, expected: Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo := Classify(mustCards(t, tt.cards...))
			if combo.Type != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, combo.Type)
			}
			if tt.expected != Invalid && combo.Key != tt.key {
				t.Fatalf("key = %+v, want %+v", combo.Key, tt.key)
			}
		})
	}
}

func TestClassifyDoesNotReorderInput(t *testing.T) {
	cards := mustCards(t, "7D", "5H", "3D", "6S", "4C")
	Classify(cards)
	if cards[0].ID() != "7D" || cards[4].ID() != "4C" {
		t.Fatalf("input was reordered: %v", cards)
	}
}

func TestHandTypeString(t *testing.T) {
	if StraightFlush.String() != "straight_flush" || FullHouse.String() != "full_house" {
		t.Fatalf("unexpected names: %s %s", StraightFlush, FullHouse)
	}
	if !FourOfAKind.IsBomb() || !StraightFlush.IsBomb() || Flush.IsBomb() {
		t.Fatalf("unexpected bomb set")
	}
}
