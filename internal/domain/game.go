package domain

import "math/rand/v2"

// HandSize is the number of cards dealt to each connected seat.
const HandSize = 13

// MinPlayersToStart is the minimum number of connected seats required to start a round.
const MinPlayersToStart = 2

// RoundStatus is the lifecycle stage of the current round.
type RoundStatus string

const (
	StatusLobby      RoundStatus = "LOBBY"
	StatusInProgress RoundStatus = "IN_PROGRESS"
	StatusRoundOver  RoundStatus = "ROUND_OVER"
	StatusAborted    RoundStatus = "ABORTED"
)

// TablePlay is the hand currently on the table and the seat that played it.
type TablePlay struct {
	Seat int
	Hand Classification
}

// Table tracks trick and turn state for the current round.
type Table struct {
	LastPlayed    *TablePlay // nil while a trick is being led
	TrickStarter  int
	CurrentPlayer int
	PassCount     int
	RoundWinner   int
	Status        RoundStatus
}

// IsRoundOver reports whether the round ended with a winner.
func (t *Table) IsRoundOver() bool { return t.Status == StatusRoundOver }

// Game is the authoritative aggregate for one room: seats, table and deck.
// It is not safe for concurrent use; callers apply operations one at a time.
type Game struct {
	Seats Seats
	Table Table
	Deck  []Card

	openingPending bool
	rng            *rand.Rand
}

// JoinOutcome describes a committed join.
type JoinOutcome struct {
	Seat          int
	Reconnected   bool
	AlreadySeated bool
	TookOver      bool
}

// LeaveOutcome describes a committed disconnect.
type LeaveOutcome struct {
	Seat       int
	ForcedPass *PassOutcome
	Aborted    bool
	Fault      error
}

// NewGame creates an empty arena in the lobby. A nil rng uses a crypto-seeded source.
func NewGame(rng *rand.Rand) *Game {
	if rng == nil {
		rng = NewShuffleSource()
	}
	return &Game{
		Table: Table{
			TrickStarter:  NoSeat,
			CurrentPlayer: NoSeat,
			RoundWinner:   NoSeat,
			Status:        StatusLobby,
		},
		rng: rng,
	}
}

// InProgress reports whether a round is being played.
func (g *Game) InProgress() bool { return g.Table.Status == StatusInProgress }

// CanSeat reports whether identity could join right now.
func (g *Game) CanSeat(identity string) bool {
	if identity == "" {
		return false
	}
	_, err := g.Seats.seatFor(identity, !g.InProgress())
	return err == nil
}

// Join seats identity, reconnects it to its previous slot, or (outside a round) lets it take over
// a disconnected slot.
func (g *Game) Join(identity, displayName string) (JoinOutcome, error) {
	if identity == "" {
		return JoinOutcome{Seat: NoSeat}, ErrEmptyIdentity
	}
	seat, err := g.Seats.seatFor(identity, !g.InProgress())
	if err != nil {
		return JoinOutcome{Seat: NoSeat}, err
	}

	s := &g.Seats[seat]
	out := JoinOutcome{Seat: seat}
	switch {
	case s.Status == SeatOccupied && s.Identity == identity:
		out.AlreadySeated = true
	case s.Status == SeatDisconnected && s.Identity == identity:
		out.Reconnected = true
	case s.Status == SeatDisconnected:
		out.TookOver = true
		s.resetRound()
		s.Score = 0
	}

	s.Identity = identity
	if displayName != "" {
		s.DisplayName = displayName
	} else if s.DisplayName == "" || out.TookOver {
		s.DisplayName = identity
	}
	s.Status = SeatOccupied
	return out, nil
}

// Leave marks identity disconnected. During a round this may force a pass on its behalf or abort
// the round when fewer than two connected seats still hold cards. Unknown identities are ignored.
func (g *Game) Leave(identity string) LeaveOutcome {
	seat := g.Seats.IndexOf(identity)
	if seat == NoSeat || g.Seats[seat].Status != SeatOccupied {
		return LeaveOutcome{Seat: NoSeat}
	}

	wasTurn := g.InProgress() && g.Table.CurrentPlayer == seat
	s := &g.Seats[seat]
	s.Status = SeatDisconnected
	s.IsTurn = false

	out := LeaveOutcome{Seat: seat}
	if !g.InProgress() {
		return out
	}
	if g.Seats.ActiveCount() < MinPlayersToStart {
		g.abort()
		out.Aborted = true
		return out
	}
	if wasTurn {
		pass := g.applyPass(seat, true)
		out.ForcedPass = &pass
		out.Aborted = pass.Aborted
		out.Fault = pass.Fault
	}
	return out
}

// Start deals a new round to the connected seats.
func (g *Game) Start() error {
	if g.InProgress() {
		return ErrRoundInProgress
	}
	if g.Seats.ConnectedCount() < MinPlayersToStart {
		return ErrNotEnoughPlayers
	}

	deck := NewDeck()
	ShuffleDeck(deck, g.rng)

	var players []int
	for i := range g.Seats {
		g.Seats[i].resetRound()
		if g.Seats[i].Connected() {
			players = append(players, i)
		}
	}

	for k := 0; k < HandSize; k++ {
		for _, seat := range players {
			g.Seats[seat].Hand = append(g.Seats[seat].Hand, deck[0])
			deck = deck[1:]
		}
	}
	for _, seat := range players {
		SortHand(g.Seats[seat].Hand)
	}
	g.Deck = deck

	opener := g.holderOf(OpeningCard)
	if opener == NoSeat {
		opener = g.Seats.FirstConnected()
	}

	g.Table = Table{
		TrickStarter:  opener,
		CurrentPlayer: opener,
		RoundWinner:   NoSeat,
		Status:        StatusInProgress,
	}
	g.Seats.setTurn(opener)
	g.openingPending = true
	return nil
}

func (g *Game) holderOf(card Card) int {
	for i := range g.Seats {
		if g.Seats[i].Connected() && ContainsCard(g.Seats[i].Hand, card) {
			return i
		}
	}
	return NoSeat
}

// MustIncludeOpening reports whether seat's next play has to contain the opening card.
func (g *Game) MustIncludeOpening(seat int) bool {
	if !g.openingPending || seat < 0 || seat >= MaxSeats {
		return false
	}
	return ContainsCard(g.Seats[seat].Hand, OpeningCard)
}

func (g *Game) abort() {
	g.Table.Status = StatusAborted
	g.Table.RoundWinner = NoSeat
	g.Table.CurrentPlayer = NoSeat
	g.Seats.setTurn(NoSeat)
	g.openingPending = false
}
