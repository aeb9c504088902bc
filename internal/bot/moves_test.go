package bot

import (
	"testing"

	"bigtwo/internal/domain"
)

func cards(t *testing.T, ids ...string) []domain.Card {
	t.Helper()
	out, err := domain.ParseCards(ids)
	if err != nil {
		t.Fatalf("parse %v: %v", ids, err)
	}
	return out
}

func leadView(t *testing.T, ids ...string) domain.View {
	return domain.View{Viewer: 0, Hand: cards(t, ids...), CanAct: true}
}

func followView(t *testing.T, table []string, ids ...string) domain.View {
	v := leadView(t, ids...)
	v.CanPass = true
	v.LastPlayed = &domain.TablePlay{Seat: 1, Hand: domain.Classify(cards(t, table...))}
	return v
}

func TestLegalMovesLeadEnumeratesAllSizes(t *testing.T) {
	view := leadView(t, "3D", "3C", "3H", "4S", "5D", "6C", "7H")
	moves := LegalMoves(view)

	counts := map[domain.HandType]int{}
	for _, m := range moves {
		counts[m.Type]++
	}
	// 7 singles, 3 pairs of threes, 1 triple, straights 3-4-5-6-7 with any of three 3s.
	want := map[domain.HandType]int{
		domain.Single:   7,
		domain.Pair:     3,
		domain.Triple:   1,
		domain.Straight: 3,
	}
	for typ, n := range want {
		if counts[typ] != n {
			t.Errorf("%s: got %d want %d", typ, counts[typ], n)
		}
	}
	if moves[0].Type != domain.Single || moves[0].Cards[0] != domain.OpeningCard {
		t.Fatalf("weakest lead should be the 3D single, got %v", moves[0].Cards)
	}
}

func TestLegalMovesRespectsOpeningCard(t *testing.T) {
	view := leadView(t, "3D", "5C", "5H", "9S")
	view.MustIncludeOpeningCard = true
	for _, m := range LegalMoves(view) {
		if !domain.ContainsCard(m.Cards, domain.OpeningCard) {
			t.Fatalf("move %v omits the opening card", m.Cards)
		}
	}
}

func TestLegalMovesFollowing(t *testing.T) {
	tests := []struct {
		name  string
		table []string
		hand  []string
		want  [][]string
	}{
		{"single", []string{"9D"}, []string{"3D", "9C", "10S"}, [][]string{{"9C"}, {"10S"}}},
		{"pair", []string{"5H", "5S"}, []string{"4D", "4C", "6D", "6S"}, [][]string{{"6D", "6S"}}},
		{"nothing beats two of spades", []string{"2S"}, []string{"AS", "2H"}, nil},
		{
			"bomb chops straight",
			[]string{"9D", "10C", "JH", "QS", "KD"},
			[]string{"4D", "4C", "4H", "4S", "7C"},
			[][]string{{"4D", "4C", "4H", "4S", "7C"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moves := LegalMoves(followView(t, tt.table, tt.hand...))
			if len(moves) != len(tt.want) {
				t.Fatalf("got %d moves want %d", len(moves), len(tt.want))
			}
			for i, ids := range tt.want {
				want := domain.Classify(cards(t, ids...))
				if moves[i].Compare(want) != 0 || len(moves[i].Cards) != len(want.Cards) {
					t.Errorf("move %d: got %v want %v", i, moves[i].Cards, want.Cards)
				}
			}
		})
	}
}

func TestLegalMovesNotOnTurn(t *testing.T) {
	view := leadView(t, "3D")
	view.CanAct = false
	if moves := LegalMoves(view); moves != nil {
		t.Fatalf("expected no moves, got %v", moves)
	}
}

func TestCombinationsCount(t *testing.T) {
	hand := domain.NewDeck()[:13]
	n := 0
	combinations(hand, 5, func([]domain.Card) { n++ })
	if n != 1287 {
		t.Fatalf("got %d five-card subsets of 13, want 1287", n)
	}
}

func TestAgentPlay(t *testing.T) {
	agent := NewAgent(NewIdentity(0))
	if !IsBot(agent.ID) {
		t.Fatalf("agent id %q lacks bot prefix", agent.ID)
	}

	move := agent.Play(followView(t, []string{"2S"}, "3D", "AS"))
	if !move.Pass {
		t.Fatalf("expected pass, got %v", move.Cards)
	}

	move = agent.Play(leadView(t, "KH", "4C", "9S"))
	if move.Pass || len(move.Cards) != 1 || move.Cards[0].ID() != "4C" {
		t.Fatalf("expected lowest single 4C, got %+v", move)
	}

	idle := leadView(t, "4C")
	idle.CanAct = false
	if move := agent.Play(idle); !move.Pass {
		t.Fatalf("agent off turn should pass")
	}
}

type passingBrain struct{}

func (passingBrain) Choose(domain.View, []domain.Classification) Move { return Move{Pass: true} }

func TestAgentCannotPassLead(t *testing.T) {
	agent := &Agent{ID: "bot:x", Brain: passingBrain{}}
	move := agent.Play(leadView(t, "5C", "8D"))
	if move.Pass || move.Cards[0].ID() != "5C" {
		t.Fatalf("leading agent must play, got %+v", move)
	}
}

func TestIsBot(t *testing.T) {
	if IsBot("2c6b9d3e-user") {
		t.Fatal("plain user id detected as bot")
	}
	a, b := NewIdentity(1), NewIdentity(1)
	if a.UserID == b.UserID {
		t.Fatal("bot ids must be unique")
	}
	if a.DisplayName != b.DisplayName {
		t.Fatal("same index should give the same name")
	}
}
