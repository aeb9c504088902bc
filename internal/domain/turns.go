package domain

import "fmt"

// PlayOutcome describes a committed play.
type PlayOutcome struct {
	Seat      int
	Hand      Classification
	NextSeat  int // NoSeat when the round ended
	RoundOver bool
	Winner    int
	Aborted   bool
	Fault     error
}

// PassOutcome describes a committed pass, voluntary or forced by a disconnect.
type PassOutcome struct {
	Seat     int
	Forced   bool
	TrickWon bool
	Leader   int // new leader when TrickWon
	NextSeat int
	Aborted  bool
	Fault    error
}

// Play places cards from identity's hand on the table.
func (g *Game) Play(identity string, cards []Card) (PlayOutcome, error) {
	seat, err := g.actingSeat(identity)
	if err != nil {
		return PlayOutcome{Seat: NoSeat}, err
	}
	if len(cards) == 0 {
		return PlayOutcome{Seat: seat}, ErrEmptySelection
	}

	s := &g.Seats[seat]
	if !ContainsAll(s.Hand, cards) {
		return PlayOutcome{Seat: seat}, ErrCardsNotInHand
	}
	hand := Classify(cards)
	if !hand.Valid() {
		return PlayOutcome{Seat: seat}, ErrInvalidCombination
	}
	if g.MustIncludeOpening(seat) && !ContainsCard(hand.Cards, OpeningCard) {
		return PlayOutcome{Seat: seat}, ErrMustIncludeOpening
	}
	var table *Classification
	if g.Table.LastPlayed != nil {
		table = &g.Table.LastPlayed.Hand
	}
	if !CanPlayOver(hand, table) {
		return PlayOutcome{Seat: seat}, ErrDoesNotBeatTable
	}

	s.Hand = RemoveCards(s.Hand, hand.Cards)
	g.Table.LastPlayed = &TablePlay{Seat: seat, Hand: hand}
	g.Table.PassCount = 0
	g.Seats.clearPasses()
	g.Table.TrickStarter = seat
	g.openingPending = false

	out := PlayOutcome{Seat: seat, Hand: hand, NextSeat: NoSeat, Winner: NoSeat}
	if !s.HasCards() {
		g.Table.Status = StatusRoundOver
		g.Table.RoundWinner = seat
		g.Seats.setTurn(NoSeat)
		s.Score++
		out.RoundOver = true
		out.Winner = seat
		return out, nil
	}

	next, err := g.advance(seat)
	if err != nil {
		out.Aborted = true
		out.Fault = err
		return out, nil
	}
	out.NextSeat = next
	return out, nil
}

// Pass declines to beat the current table hand.
func (g *Game) Pass(identity string) (PassOutcome, error) {
	seat, err := g.actingSeat(identity)
	if err != nil {
		return PassOutcome{Seat: NoSeat}, err
	}
	if g.Table.LastPlayed == nil {
		return PassOutcome{Seat: seat}, ErrCannotPassLead
	}
	return g.applyPass(seat, false), nil
}

func (g *Game) actingSeat(identity string) (int, error) {
	if !g.InProgress() {
		return NoSeat, ErrRoundNotInProgress
	}
	seat := g.Seats.IndexOf(identity)
	if seat == NoSeat || !g.Seats[seat].Connected() {
		return NoSeat, ErrUnknownPlayer
	}
	if seat != g.Table.CurrentPlayer {
		return seat, ErrNotYourTurn
	}
	return seat, nil
}

// applyPass records a pass for seat. Forced passes skip the ownership and lead checks.
func (g *Game) applyPass(seat int, forced bool) PassOutcome {
	g.Seats[seat].HasPassed = true
	g.Table.PassCount++
	out := PassOutcome{Seat: seat, Forced: forced, Leader: NoSeat, NextSeat: NoSeat}

	if g.Table.LastPlayed == nil {
		// The leader dropped: hand the lead to the next eligible seat.
		next, err := g.advance(seat)
		if err != nil {
			out.Aborted, out.Fault = true, err
			return out
		}
		g.Table.TrickStarter = next
		out.NextSeat = next
		return out
	}

	if g.Table.PassCount >= g.activeInTrick()-1 {
		leader, err := g.resolveTrick()
		if err != nil {
			out.Aborted, out.Fault = true, err
			return out
		}
		out.TrickWon = true
		out.Leader = leader
		out.NextSeat = leader
		return out
	}

	next, err := g.advance(seat)
	if err != nil {
		out.Aborted, out.Fault = true, err
		return out
	}
	out.NextSeat = next
	return out
}

// activeInTrick counts the trick starter plus every other seat with cards that is still connected
// or has already passed in this trick.
func (g *Game) activeInTrick() int {
	n := 0
	for i := range g.Seats {
		s := &g.Seats[i]
		switch {
		case i == g.Table.TrickStarter:
			n++
		case s.HasCards() && (s.Connected() || s.HasPassed):
			n++
		}
	}
	return n
}

// resolveTrick clears the table and gives the lead to the last successful player.
func (g *Game) resolveTrick() (int, error) {
	leader := g.Table.TrickStarter
	g.Table.LastPlayed = nil
	g.Table.PassCount = 0
	g.Seats.clearPasses()

	if !g.eligible(leader) {
		next, err := g.advance(leader)
		if err != nil {
			return NoSeat, err
		}
		g.Table.TrickStarter = next
		return next, nil
	}
	g.Table.CurrentPlayer = leader
	g.Seats.setTurn(leader)
	return leader, nil
}

func (g *Game) eligible(i int) bool {
	s := &g.Seats[i]
	if !s.Connected() || !s.HasCards() || s.HasPassed {
		return false
	}
	if g.Table.LastPlayed != nil && i == g.Table.TrickStarter {
		return false
	}
	return true
}

// advance moves the turn to the next eligible seat after from. The scan is bounded to one lap;
// finding nobody aborts the round.
func (g *Game) advance(from int) (int, error) {
	for step := 1; step <= MaxSeats; step++ {
		i := (from + step) % MaxSeats
		if g.eligible(i) {
			g.Table.CurrentPlayer = i
			g.Seats.setTurn(i)
			return i, nil
		}
	}
	g.abort()
	return NoSeat, fmt.Errorf("%w: no eligible seat after %d", ErrConsistencyFault, from)
}
